package ctx

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"go-kanban/app/internal/constants"
)

// BearerToken 从 Authorization 头取出 token，缺失或格式不对返回空串
func BearerToken(ctx *gin.Context) string {
	header := ctx.GetHeader(constants.ServiceHeaderAuth)
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

// SetIdentity 认证通过后写入当前用户
func SetIdentity(ctx *gin.Context, userId uuid.UUID, token string) {
	ctx.Set(constants.CtxUserId, userId)
	ctx.Set(constants.CtxToken, token)
}

func UserId(ctx *gin.Context) uuid.UUID {
	if v, ok := ctx.Get(constants.CtxUserId); ok {
		if id, ok := v.(uuid.UUID); ok {
			return id
		}
	}
	return uuid.Nil
}

func Token(ctx *gin.Context) string {
	return ctx.GetString(constants.CtxToken)
}
