package health

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

const (
	StatusHealthy  = "healthy"
	StatusReady    = "ready"
	StatusNotReady = "not_ready"
)

// Pinger 就绪探针依赖的外部组件
type Pinger interface {
	Ping(ctx context.Context) error
}

// dbPinger 对数据库执行 SELECT 1
type dbPinger struct {
	db *gorm.DB
}

func (p dbPinger) Ping(ctx context.Context) error {
	return p.db.WithContext(ctx).Exec("SELECT 1").Error
}

type Info struct {
	Service     string
	Version     string
	Environment string
}

type StatusRes struct {
	Status      string `json:"status"`
	Service     string `json:"service"`
	Version     string `json:"version"`
	Environment string `json:"environment"`
}

type LiveRes struct {
	Status  string `json:"status"`
	Service string `json:"service"`
}

type ReadyRes struct {
	Status  string            `json:"status"`
	Service string            `json:"service"`
	Checks  map[string]string `json:"checks"`
}

type Service struct {
	log     *zap.Logger
	info    Info
	timeout time.Duration
	checks  map[string]Pinger
}

func NewService(log *zap.Logger, info Info, db *gorm.DB, cache Pinger) *Service {
	return &Service{
		log:     log.Named("health"),
		info:    info,
		timeout: 5 * time.Second,
		checks: map[string]Pinger{
			"database": dbPinger{db: db},
			"redis":    cache,
		},
	}
}

func (srv *Service) Status() *StatusRes {
	return &StatusRes{
		Status:      StatusHealthy,
		Service:     srv.info.Service,
		Version:     srv.info.Version,
		Environment: srv.info.Environment,
	}
}

func (srv *Service) Live() *LiveRes {
	return &LiveRes{Status: "alive", Service: srv.info.Service}
}

// Ready 并行检查所有依赖，任一失败即 not_ready
func (srv *Service) Ready(ctx context.Context) (*ReadyRes, bool) {
	ctx, cancel := context.WithTimeout(ctx, srv.timeout)
	defer cancel()

	names := make([]string, 0, len(srv.checks))
	for name := range srv.checks {
		names = append(names, name)
	}
	errs := make([]error, len(names))
	var group errgroup.Group
	for i, name := range names {
		i, p := i, srv.checks[name]
		group.Go(func() error {
			errs[i] = p.Ping(ctx)
			return nil
		})
	}
	_ = group.Wait()

	res := &ReadyRes{Status: StatusReady, Service: srv.info.Service, Checks: make(map[string]string, len(names))}
	ok := true
	for i, name := range names {
		err := errs[i]
		if err != nil {
			ok = false
			res.Checks[name] = "unhealthy: " + err.Error()
			srv.log.Error("就绪检查失败", zap.String("check", name), zap.Error(err))
			continue
		}
		res.Checks[name] = StatusHealthy
	}
	if !ok {
		res.Status = StatusNotReady
	}
	return res, ok
}
