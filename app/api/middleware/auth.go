package middleware

import (
	"github.com/gin-gonic/gin"

	ctx2 "go-kanban/app/api/ctx"
	"go-kanban/app/internal/response"
	"go-kanban/app/service/identity"
)

// Auth 本地校验 token，所有 /api 路由都要经过
func Auth(ids *identity.Service) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		token := ctx2.BearerToken(ctx)
		userId, err := ids.Verify(token)
		if err != nil {
			response.Fail(ctx, err)
			return
		}
		ctx2.SetIdentity(ctx, userId, token)
		ctx.Next()
	}
}

// VerifiedAuth 额外向用户服务确认用户存在，用于层级根节点的创建和删除
func VerifiedAuth(ids *identity.Service) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		token := ctx2.BearerToken(ctx)
		userId, err := ids.VerifyRemote(ctx.Request.Context(), token)
		if err != nil {
			response.Fail(ctx, err)
			return
		}
		ctx2.SetIdentity(ctx, userId, token)
		ctx.Next()
	}
}
