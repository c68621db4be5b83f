package api

import (
	"context"
	"errors"
	"net"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/cors"
	"github.com/wuzfei/cfgstruct/cfgstruct"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"go-kanban/app/api/middleware"
	"go-kanban/app/global"
	"go-kanban/app/internal/validate"
	"go-kanban/app/pkg/jwt"
	"go-kanban/app/service/cascade"
	"go-kanban/app/service/health"
	"go-kanban/app/service/identity"
	"go-kanban/app/service/notification"
	"go-kanban/app/service/project"
	"go-kanban/app/service/task"
	"go-kanban/app/service/ticket"
	"go-kanban/app/service/tickettype"
	"go-kanban/app/service/workspace"
)

type Server struct {
	config *global.Config
	log    *zap.Logger
	server http.Server

	identity     *identity.Service
	health       *health.Service
	workspace    *workspace.Service
	project      *project.Service
	ticket       *ticket.Service
	task         *task.Service
	ticketType   *tickettype.Service
	notification *notification.Service
}

func NewServer(conf *global.Config, log *zap.Logger, db *gorm.DB, cache health.Pinger, j *jwt.Jwt) *Server {
	engine := cascade.New(log)
	return &Server{
		config:   conf,
		log:      log,
		identity: identity.NewService(log.Named("identity"), j, &conf.Identity),
		health: health.NewService(log, health.Info{
			Service:     conf.App.Name,
			Version:     conf.App.Version,
			Environment: conf.App.Env,
		}, db, cache),
		workspace:    workspace.NewService(log, db, engine),
		project:      project.NewService(log, db, engine),
		ticket:       ticket.NewService(log, db, engine),
		task:         task.NewService(log, db),
		ticketType:   tickettype.NewService(log, db),
		notification: notification.NewService(log, db),
	}
}

// Handler gin 路由外包一层 CORS
func (s *Server) Handler() (http.Handler, error) {
	// 注册自定义验证标签
	if err := validate.RegisterValidation(); err != nil {
		return nil, err
	}
	engine := gin.New()
	engine.Use(middleware.Logger(s.log.Named("http")), middleware.Recovery(s.log), middleware.Metrics())
	ApiRoutes(engine, s)

	c := cors.New(cors.Options{
		AllowedOrigins:   s.config.Origins(),
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
	})
	return c.Handler(engine), nil
}

func (s *Server) Run(ctx context.Context) error {
	if cfgstruct.DefaultsType() == cfgstruct.DefaultsRelease && !s.config.App.Debug {
		gin.SetMode(gin.ReleaseMode)
	}
	handler, err := s.Handler()
	if err != nil {
		return err
	}
	s.server.Handler = handler

	listener, err := net.Listen("tcp", s.config.Api.Address)
	if err != nil {
		return err
	}
	s.log.Info("HTTP 服务启动", zap.String("address", listener.Addr().String()),
		zap.String("env", s.config.App.Env))
	ctx, cancel := context.WithCancel(ctx)
	var group errgroup.Group
	group.Go(func() error {
		<-ctx.Done()
		return s.server.Shutdown(context.Background())
	})
	group.Go(func() error {
		defer cancel()
		_err := s.server.Serve(listener)
		if errors.Is(_err, http.ErrServerClosed) {
			_err = nil
		}
		return _err
	})
	return group.Wait()
}
