package cmd

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const envPrefix = "KANBAN"

// legacyEnv 兼容部署清单中已有的环境变量名
var legacyEnv = map[string]string{
	"db.dsn":            "DATABASE_URL",
	"cache.url":         "REDIS_URL",
	"jwt.secret":        "SECRET_KEY",
	"jwt.algorithm":     "ALGORITHM",
	"api.cors-origins":  "CORS_ORIGINS",
	"app.env":           "ENV",
	"app.debug":         "DEBUG",
	"identity.base-url": "USER_SERVICE_URL",
}

// loadConfig 优先级：命令行 > 环境变量 > 配置文件 > 默认值
func loadConfig(cmd *cobra.Command, _ []string) error {
	v, err := newViper(confFile)
	if err != nil {
		return err
	}
	return overlay(cmd.Flags(), v)
}

func newViper(file string) (*viper.Viper, error) {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	for key, env := range legacyEnv {
		name := envPrefix + "_" + strings.NewReplacer(".", "_", "-", "_").Replace(strings.ToUpper(key))
		if err := v.BindEnv(key, name, env); err != nil {
			return nil, err
		}
	}
	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, err
		}
	}
	return v, nil
}

// overlay 把 viper 中的值写回未在命令行显式指定的 flag
func overlay(flags *pflag.FlagSet, v *viper.Viper) (err error) {
	flags.VisitAll(func(f *pflag.Flag) {
		if err != nil || f.Changed || !v.IsSet(f.Name) {
			return
		}
		err = flags.Set(f.Name, v.GetString(f.Name))
	})
	return
}
