package api

import (
	"github.com/gin-gonic/gin"

	"go-kanban/app/internal/response"
	"go-kanban/app/service/common"
	"go-kanban/app/service/notification"
)

type NotificationCtl struct {
	service *notification.Service
}

// List 在通用分页结构上附带 unread_count
func (ctl *NotificationCtl) List(ctx *gin.Context) {
	pageParams := common.PageParams{}
	params := notification.ListReq{}
	if err := ctx.ShouldBindQuery(&pageParams); err != nil {
		response.BindFail(ctx, err)
		return
	}
	if err := ctx.ShouldBindQuery(&params); err != nil {
		response.BindFail(ctx, err)
		return
	}
	res, err := ctl.service.ListWithUnread(ctx.Request.Context(), scopeOf(ctx), pageParams.PageReq(), &params)
	response.Response(ctx, err, res)
}

func (ctl *NotificationCtl) UnreadCount(ctx *gin.Context) {
	n, err := ctl.service.UnreadCount(ctx.Request.Context(), scopeOf(ctx))
	response.Response(ctx, err, notification.UnreadCountRes{UnreadCount: n})
}

func (ctl *NotificationCtl) MarkRead(ctx *gin.Context) {
	id, err := common.ParseId("Notification", ctx.Param("id"))
	if err != nil {
		response.Fail(ctx, err)
		return
	}
	res, err := ctl.service.MarkRead(ctx.Request.Context(), scopeOf(ctx), id)
	response.Response(ctx, err, res)
}

func (ctl *NotificationCtl) MarkAllRead(ctx *gin.Context) {
	res, err := ctl.service.MarkAllRead(ctx.Request.Context(), scopeOf(ctx))
	response.Response(ctx, err, res)
}
