package log

import (
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

type Config struct {
	Level      string `help:"日志级别[debug|info|warn|error]" devDefault:"debug" default:"info"`
	Format     string `help:"日志格式[json|console]" devDefault:"console" default:"json"`
	File       string `help:"日志文件，为空则不写文件" default:""`
	MaxSize    int    `help:"单个日志文件大小(MB)" default:"100"`
	MaxBackups int    `help:"保留旧日志文件个数" default:"7"`
	MaxAge     int    `help:"保留旧日志天数" default:"30"`
	Compress   bool   `help:"是否压缩旧日志" default:"true"`
	Stdout     bool   `help:"同时输出到控制台" default:"true"`
}

func NewLog(conf *Config) *zap.Logger {
	level := zap.NewAtomicLevel()
	if err := level.UnmarshalText([]byte(conf.Level)); err != nil {
		level.SetLevel(zapcore.InfoLevel)
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.TimeKey = "timestamp"
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	var encoder zapcore.Encoder
	if conf.Format == "console" {
		encCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
		encoder = zapcore.NewConsoleEncoder(encCfg)
	} else {
		encoder = zapcore.NewJSONEncoder(encCfg)
	}

	var sinks []zapcore.WriteSyncer
	if conf.File != "" {
		_ = os.MkdirAll(filepath.Dir(conf.File), 0o755)
		sinks = append(sinks, zapcore.AddSync(&lumberjack.Logger{
			Filename:   conf.File,
			MaxSize:    conf.MaxSize,
			MaxBackups: conf.MaxBackups,
			MaxAge:     conf.MaxAge,
			Compress:   conf.Compress,
		}))
	}
	if conf.Stdout || len(sinks) == 0 {
		sinks = append(sinks, zapcore.Lock(os.Stdout))
	}

	core := zapcore.NewCore(encoder, zapcore.NewMultiWriteSyncer(sinks...), level)
	return zap.New(core, zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel))
}
