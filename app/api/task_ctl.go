package api

import (
	"github.com/gin-gonic/gin"

	"go-kanban/app/internal/response"
	"go-kanban/app/service/common"
	"go-kanban/app/service/task"
)

type TaskCtl struct {
	service *task.Service
}

// Complete PATCH /api/tasks/:id/complete
func (ctl *TaskCtl) Complete(ctx *gin.Context) {
	id, err := common.ParseId("Task", ctx.Param("id"))
	if err != nil {
		response.Fail(ctx, err)
		return
	}
	res, err := ctl.service.Complete(ctx.Request.Context(), scopeOf(ctx), id)
	response.Response(ctx, err, res)
}
