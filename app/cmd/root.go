package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/wuzfei/cfgstruct/cfgstruct"

	"go-kanban/app/global"
)

var (
	cfg      global.Config
	confFile string

	rootCmd = &cobra.Command{
		Use:          "kanban",
		Short:        "看板后端服务",
		SilenceUsage: true,
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&confFile, "config", "", "配置文件路径，支持 yaml/toml/json")
	defaults := cfgstruct.DefaultsFlag(rootCmd)
	for _, c := range []*cobra.Command{runCmd, migrateCmd, tokenCmd} {
		cfgstruct.Bind(c.Flags(), &cfg, defaults)
		c.PreRunE = loadConfig
		rootCmd.AddCommand(c)
	}
	rootCmd.AddCommand(versionCmd)
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
