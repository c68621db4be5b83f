package identity

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/zeebo/errs"
	"go.uber.org/zap"

	"go-kanban/app/internal/errcode"
	"go-kanban/app/metrics"
	"go-kanban/app/pkg/jwt"
)

var ErrIdentity = errs.Class("identity")

type Config struct {
	BaseUrl  string        `help:"用户服务地址" devDefault:"http://localhost:8080" default:"http://user-service:8080"`
	Timeout  time.Duration `help:"用户服务请求超时" default:"10s"`
	FailOpen bool          `help:"用户服务不可达时是否仅凭本地 token 校验放行" default:"true"`
}

type Service struct {
	log      *zap.Logger
	jwt      *jwt.Jwt
	users    *UserClient
	failOpen bool
}

func NewService(log *zap.Logger, j *jwt.Jwt, conf *Config) *Service {
	return &Service{
		log:      log,
		jwt:      j,
		users:    NewUserClient(conf.BaseUrl, conf.Timeout),
		failOpen: conf.FailOpen,
	}
}

// Verify 本地校验：签名、有效期、sub 必须是 UUID
func (srv *Service) Verify(token string) (uuid.UUID, error) {
	if token == "" {
		return uuid.Nil, errcode.ErrUnauthorized.New("Not authenticated")
	}
	sub, err := srv.jwt.ValidateToken(token)
	if err != nil {
		srv.log.Warn("JWT validation failed", zap.Error(err))
		return uuid.Nil, errcode.ErrUnauthorized.New("Could not validate credentials")
	}
	userId, err := uuid.Parse(sub)
	if err != nil {
		srv.log.Warn("JWT subject is not a UUID", zap.String("sub", sub))
		return uuid.Nil, errcode.ErrUnauthorized.New("Could not validate credentials")
	}
	return userId, nil
}

// VerifyRemote 本地校验通过后，再向用户服务确认用户存在。
// 用户服务明确返回不存在/未授权时拒绝；不可达时按 failOpen 决定是否放行
func (srv *Service) VerifyRemote(ctx context.Context, token string) (uuid.UUID, error) {
	userId, err := srv.Verify(token)
	if err != nil {
		return uuid.Nil, err
	}
	existence, err := srv.users.Check(ctx, userId, token)
	metrics.IdentityChecks.WithLabelValues(existence.String()).Inc()
	switch existence {
	case Exists:
		srv.log.Debug("user verified with user service", zap.Stringer("user_id", userId))
		return userId, nil
	case Absent:
		srv.log.Warn("user not found in user service", zap.Stringer("user_id", userId))
		return uuid.Nil, errcode.ErrUnauthorized.New("User not found")
	}
	srv.log.Error("error verifying user with user service",
		zap.Stringer("user_id", userId), zap.Error(ErrIdentity.Wrap(err)))
	if !srv.failOpen {
		return uuid.Nil, errcode.ErrUnauthorized.New("Could not verify user")
	}
	srv.log.Warn("falling back to JWT-only verification", zap.Stringer("user_id", userId))
	return userId, nil
}
