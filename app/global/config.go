package global

import (
	"strings"

	errs2 "github.com/zeebo/errs"

	"go-kanban/app/pkg/cache"
	"go-kanban/app/pkg/db"
	"go-kanban/app/pkg/jwt"
	"go-kanban/app/pkg/log"
	"go-kanban/app/service/identity"
)

var Cfg *Config

type Config struct {
	App struct {
		Name    string `help:"服务名称" default:"Kanban Service"`
		Version string `help:"服务版本" default:"1.0.0"`
		Env     string `help:"运行环境" devDefault:"development" default:"production"`
		Debug   bool   `help:"调试模式，日志级别强制为 debug" devDefault:"true" default:"false"`
	}
	Api struct {
		Address     string `help:"监听地址" devDefault:"127.0.0.1:8000" default:"0.0.0.0:8000"`
		CorsOrigins string `help:"允许跨域的来源，逗号分隔" default:"http://localhost:3000,http://localhost:8000"`
	}
	Db       db.Config
	Cache    cache.Config
	JWT      jwt.Config
	Identity identity.Config
	Log      log.Config
}

// Origins 解析逗号分隔的跨域来源
func (c *Config) Origins() []string {
	var res []string
	for _, o := range strings.Split(c.Api.CorsOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			res = append(res, o)
		}
	}
	return res
}

func (c *Config) Init() {
	Cfg = c
	if c.App.Debug {
		c.Log.Level = "debug"
	}
	errs := errs2.Group{}
	errs.Add(initLog(&c.Log))
	errs.Add(
		initDB(&c.Db),
		initCache(&c.Cache),
		initJwt(&c.JWT),
	)
	if errs.Err() != nil {
		panic(errs.Err())
	}
}
