// Package testutil 测试共用的内存数据库和 token
package testutil

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"gorm.io/gorm"

	"go-kanban/app/migration"
	"go-kanban/app/pkg/db"
	"go-kanban/app/pkg/jwt"
)

const Secret = "test-secret"

// NewDB 每个测试独立的内存 sqlite，已完成迁移
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	conf := &db.Config{
		Driver:       db.Sqlite,
		Dsn:          fmt.Sprintf("file:%s?mode=memory&cache=shared", name),
		MaxOpenConns: 1,
		LogLevel:     "silent",
	}
	gdb, err := db.NewGormDB(conf, zaptest.NewLogger(t))
	require.NoError(t, err)
	require.NoError(t, migration.NewMigration(zaptest.NewLogger(t), gdb).Setup())
	t.Cleanup(func() {
		if sqlDB, err := gdb.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return gdb
}

func NewJwt(t *testing.T) *jwt.Jwt {
	t.Helper()
	j, err := jwt.NewJWT(&jwt.Config{Secret: Secret, Algorithm: "HS512"})
	require.NoError(t, err)
	return j
}

// Token 为 userId 签发一小时有效的 token
func Token(t *testing.T, j *jwt.Jwt, userId uuid.UUID) string {
	t.Helper()
	token, _, err := j.CreateToken(userId.String(), time.Hour)
	require.NoError(t, err)
	return token
}
