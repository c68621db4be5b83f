package api

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	ctx2 "go-kanban/app/api/ctx"
	"go-kanban/app/internal/response"
	"go-kanban/app/model"
	"go-kanban/app/service/common"
	"go-kanban/app/service/resource"
)

// ResourceCtl 所有实体共用的增删改查处理器
type ResourceCtl[M, C, U, F any, P interface {
	*M
	model.Record
}] struct {
	service *resource.Service[M, C, U, F, P]
	// parentParam 嵌套路由中上级 id 的路径参数名
	parentParam string
	idParam     string
}

func NewResourceCtl[M, C, U, F any, P interface {
	*M
	model.Record
}](srv *resource.Service[M, C, U, F, P]) *ResourceCtl[M, C, U, F, P] {
	return &ResourceCtl[M, C, U, F, P]{service: srv, idParam: "id"}
}

// Nested 挂在上级资源路径下，例如 /projects/:id/ticket-types/:type_id
func (ctl *ResourceCtl[M, C, U, F, P]) Nested(parentParam, idParam string) *ResourceCtl[M, C, U, F, P] {
	ctl.parentParam = parentParam
	ctl.idParam = idParam
	return ctl
}

func (ctl *ResourceCtl[M, C, U, F, P]) Create(ctx *gin.Context) {
	s, err := ctl.scope(ctx)
	if err != nil {
		response.Fail(ctx, err)
		return
	}
	params := new(C)
	if err = ctx.ShouldBindJSON(params); err != nil {
		response.BindFail(ctx, err)
		return
	}
	res, err := ctl.service.Create(ctx.Request.Context(), s, params)
	response.Created(ctx, err, res)
}

func (ctl *ResourceCtl[M, C, U, F, P]) List(ctx *gin.Context) {
	s, err := ctl.scope(ctx)
	if err != nil {
		response.Fail(ctx, err)
		return
	}
	params := common.PageParams{}
	filter := new(F)
	if err = ctx.ShouldBindQuery(&params); err != nil {
		response.BindFail(ctx, err)
		return
	}
	if err = ctx.ShouldBindQuery(filter); err != nil {
		response.BindFail(ctx, err)
		return
	}
	page := params.PageReq()
	total, list, err := ctl.service.List(ctx.Request.Context(), s, page, filter)
	response.Response(ctx, err, response.Page[*M]{
		Total:  total,
		Items:  list,
		Limit:  page.Limit,
		Offset: page.Offset,
	})
}

func (ctl *ResourceCtl[M, C, U, F, P]) Get(ctx *gin.Context) {
	s, id, err := ctl.scopeWithId(ctx)
	if err != nil {
		response.Fail(ctx, err)
		return
	}
	res, err := ctl.service.Get(ctx.Request.Context(), s, id)
	response.Response(ctx, err, res)
}

func (ctl *ResourceCtl[M, C, U, F, P]) Update(ctx *gin.Context) {
	s, id, err := ctl.scopeWithId(ctx)
	if err != nil {
		response.Fail(ctx, err)
		return
	}
	params := new(U)
	if err = ctx.ShouldBindJSON(params); err != nil {
		response.BindFail(ctx, err)
		return
	}
	res, err := ctl.service.Update(ctx.Request.Context(), s, id, params)
	response.Response(ctx, err, res)
}

func (ctl *ResourceCtl[M, C, U, F, P]) Delete(ctx *gin.Context) {
	s, id, err := ctl.scopeWithId(ctx)
	if err != nil {
		response.Fail(ctx, err)
		return
	}
	response.NoContent(ctx, ctl.service.Delete(ctx.Request.Context(), s, id))
}

func (ctl *ResourceCtl[M, C, U, F, P]) scope(ctx *gin.Context) (resource.Scope, error) {
	s := resource.Scope{Actor: ctx2.UserId(ctx)}
	if ctl.parentParam != "" {
		parent, err := common.ParseId("parent", ctx.Param(ctl.parentParam))
		if err != nil {
			return s, err
		}
		s.Parent = parent
	}
	return s, nil
}

func (ctl *ResourceCtl[M, C, U, F, P]) scopeWithId(ctx *gin.Context) (resource.Scope, uuid.UUID, error) {
	s, err := ctl.scope(ctx)
	if err != nil {
		return s, uuid.Nil, err
	}
	id, err := common.ParseId(ctl.service.Kind(), ctx.Param(ctl.idParam))
	return s, id, err
}

// scopeOf 非泛型处理器使用
func scopeOf(ctx *gin.Context) resource.Scope {
	return resource.Scope{Actor: ctx2.UserId(ctx)}
}
