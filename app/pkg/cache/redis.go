package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/zeebo/errs"
)

var ErrCache = errs.Class("cache")

type Config struct {
	Url         string        `help:"redis 连接串" default:"redis://localhost:6379/0"`
	DialTimeout time.Duration `help:"连接超时" default:"5s"`
}

// Client 目前只用于就绪探针
type Client struct {
	rdb *redis.Client
}

// NewClient 不在启动时 ping，缓存不可用只影响就绪状态
func NewClient(conf *Config) (*Client, error) {
	opts, err := redis.ParseURL(conf.Url)
	if err != nil {
		return nil, ErrCache.Wrap(err)
	}
	if conf.DialTimeout > 0 {
		opts.DialTimeout = conf.DialTimeout
	}
	return &Client{rdb: redis.NewClient(opts)}, nil
}

func (c *Client) Ping(ctx context.Context) error {
	return ErrCache.Wrap(c.rdb.Ping(ctx).Err())
}

func (c *Client) Close() error {
	return c.rdb.Close()
}
