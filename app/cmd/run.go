package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"go-kanban/app/api"
	"go-kanban/app/global"
	"go-kanban/app/migration"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "启动 HTTP 服务",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg.Init()
		defer func() {
			_ = global.Cache.Close()
			_ = global.Log.Sync()
		}()
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		server := api.NewServer(&cfg, global.Log, global.DB, global.Cache, global.Jwt)
		err := server.Run(ctx)
		global.Log.Info("HTTP 服务已退出", zap.Error(err))
		return err
	},
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "创建或更新数据表",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg.Init()
		defer func() { _ = global.Cache.Close() }()
		return migration.NewMigration(global.Log, global.DB).Setup()
	},
}

var (
	tokenSub string
	tokenTTL time.Duration
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "签发测试用 token",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg.Init()
		defer func() { _ = global.Cache.Close() }()
		if tokenSub == "" {
			tokenSub = uuid.NewString()
		}
		token, expire, err := global.Jwt.CreateToken(tokenSub, tokenTTL)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "sub:     %s\nexpires: %s\n\n%s\n", tokenSub, expire.Format(time.RFC3339), token)
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "打印版本",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), Version)
	},
}

// Version 构建时通过 -ldflags 注入
var Version = "1.0.0"

func init() {
	tokenCmd.Flags().StringVar(&tokenSub, "sub", "", "token 的 sub，默认随机 UUID")
	tokenCmd.Flags().DurationVar(&tokenTTL, "ttl", 168*time.Hour, "有效期")
}
