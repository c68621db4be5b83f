package db

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	mysqldrv "github.com/go-sql-driver/mysql"
	"github.com/zeebo/errs"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

const Mysql = "mysql"
const Postgresql = "postgres"
const Sqlite = "sqlite"

var ErrDB = errs.Class("DB")

type Config struct {
	Driver       string        `help:"数据库驱动[mysql|postgres|sqlite]" devDefault:"sqlite" default:"postgres"`
	Dsn          string        `help:"完整连接串，设置后忽略下面的分项配置" default:""`
	Host         string        `help:"数据库地址" default:"localhost"`
	Port         int           `help:"数据库端口" default:"5432"`
	Username     string        `help:"数据库帐号" default:"kanban"`
	Password     string        `help:"数据库密码" default:""`
	Database     string        `help:"数据库名称" default:"kanban"`
	Charset      string        `help:"数据库编码,mysql用" default:"utf8mb4"`
	SslMode      string        `help:"pg用" default:"disable"`
	TimeZone     string        `help:"时区" default:"UTC"`
	File         string        `help:"数据库文件，sqlite用" default:"kanban.db"`
	MaxOpenConns int           `help:"最大连接数" default:"30"`
	MaxIdleConns int           `help:"最大空闲连接数" default:"10"`
	ConnMaxLife  time.Duration `help:"连接最长存活时间" default:"30m"`
	LogLevel     string        `help:"数据库日志打印级别,可选[silent|error|warn|info]" devDefault:"info" default:"warn"`
}

// schemes URL 形式连接串的前缀与驱动对应关系
var schemes = []struct{ prefix, driver string }{
	{"postgresql://", Postgresql},
	{"postgres://", Postgresql},
	{"mysql://", Mysql},
	{"sqlite:///", Sqlite},
	{"sqlite://", Sqlite},
}

// resolve 按连接串前缀修正驱动；postgres 保留 URL 交给驱动解析，mysql 转成驱动的 DSN 格式
func (c *Config) resolve() (err error) {
	for _, s := range schemes {
		if !strings.HasPrefix(c.Dsn, s.prefix) {
			continue
		}
		c.Driver = s.driver
		switch s.driver {
		case Mysql:
			c.Dsn, err = c.mysqlDsn(c.Dsn)
		case Sqlite:
			c.Dsn = strings.TrimPrefix(c.Dsn, s.prefix)
		}
		return
	}
	return
}

// mysqlDsn mysql://user:pw@host:3306/db?k=v 转为 user:pw@tcp(host:3306)/db?parseTime=true&k=v
func (c *Config) mysqlDsn(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", ErrDB.New("数据库连接串错误：%v", err)
	}
	if u.Host == "" {
		return "", ErrDB.New("数据库连接串缺少地址：%s", u.Redacted())
	}
	cfg := mysqldrv.NewConfig()
	cfg.Net = "tcp"
	cfg.Addr = u.Host
	cfg.DBName = strings.TrimPrefix(u.Path, "/")
	cfg.ParseTime = true
	if u.User != nil {
		cfg.User = u.User.Username()
		cfg.Passwd, _ = u.User.Password()
	}
	cfg.Params = map[string]string{}
	for k, v := range u.Query() {
		if k != "parseTime" && len(v) > 0 {
			cfg.Params[k] = v[0]
		}
	}
	if _, ok := cfg.Params["charset"]; !ok && c.Charset != "" {
		cfg.Params["charset"] = c.Charset
	}
	return cfg.FormatDSN(), nil
}

func (c *Config) GetDsn() (dsn string, err error) {
	if c.Dsn != "" {
		if err = c.resolve(); err != nil {
			return
		}
		return c.Dsn, nil
	}
	switch c.Driver {
	case Mysql:
		dsn = fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t",
			c.Username, c.Password, c.Host, c.Port, c.Database, c.Charset, true)
	case Postgresql:
		dsn = fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%d sslmode=%s TimeZone=%s",
			c.Host, c.Username, c.Password, c.Database, c.Port, c.SslMode, c.TimeZone)
	case Sqlite:
		dsn = c.File
	default:
		err = ErrDB.New("数据库驱动错误：%s", c.Driver)
	}
	return
}

func (c *Config) Dialector() (dial gorm.Dialector, err error) {
	var dsn string
	dsn, err = c.GetDsn()
	if err != nil {
		return
	}
	switch c.Driver {
	case Mysql:
		dial = mysql.New(mysql.Config{
			DSN:                       dsn,
			DisableDatetimePrecision:  true,
			DontSupportRenameIndex:    true,
			DontSupportRenameColumn:   true,
			SkipInitializeWithVersion: false,
		})
		return
	case Postgresql:
		dial = postgres.New(postgres.Config{
			DSN: dsn,
		})
		return
	case Sqlite:
		dial = sqlite.Open(dsn)
		return
	}
	return nil, ErrDB.New("数据库驱动错误：%s", c.Driver)
}

// NewGormDB 不建外键：实体间引用完整性由应用层维护
func NewGormDB(cfg *Config, zapLog *zap.Logger) (*gorm.DB, error) {
	dail, err := cfg.Dialector()
	if err != nil {
		return nil, ErrDB.Wrap(err)
	}
	db, err := gorm.Open(dail, &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
		SkipDefaultTransaction:                   true,
		TranslateError:                           true,
		Logger:                                   getLogInterface(zapLog, cfg.LogLevel),
	})
	if err != nil {
		return nil, ErrDB.Wrap(err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, ErrDB.Wrap(err)
	}
	if cfg.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.ConnMaxLife > 0 {
		sqlDB.SetConnMaxLifetime(cfg.ConnMaxLife)
	}
	return db, nil
}
