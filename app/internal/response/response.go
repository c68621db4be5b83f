package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"go-kanban/app/internal/errcode"
)

type ErrorBody struct {
	Detail string `json:"detail"`
}

// Page 列表统一返回结构
type Page[T any] struct {
	Total  int64 `json:"total"`
	Items  []T   `json:"items"`
	Limit  int   `json:"limit"`
	Offset int   `json:"offset"`
}

// Status 业务错误分类到 HTTP 状态码
func Status(err error) int {
	switch {
	case errcode.ErrNotFound.Has(err):
		return http.StatusNotFound
	case errcode.ErrConflict.Has(err):
		return http.StatusConflict
	case errcode.ErrUnauthorized.Has(err):
		return http.StatusUnauthorized
	case errcode.ErrValidation.Has(err):
		return http.StatusUnprocessableEntity
	}
	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}

// Fail 写错误响应，500 不向调用方暴露内部错误
func Fail(ctx *gin.Context, err error) {
	code := Status(err)
	msg := errcode.Message(err)
	switch code {
	case http.StatusInternalServerError:
		_ = ctx.Error(err)
		msg = "Internal server error"
	case http.StatusUnauthorized:
		ctx.Header("WWW-Authenticate", "Bearer")
	}
	ctx.AbortWithStatusJSON(code, ErrorBody{Detail: msg})
}

// BindFail 请求体/参数绑定失败统一按 422 处理
func BindFail(ctx *gin.Context, err error) {
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		err = errcode.ErrValidation.Wrap(err)
	}
	Fail(ctx, err)
}

func Response(ctx *gin.Context, err error, data any) {
	if err != nil {
		Fail(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, data)
}

func Created(ctx *gin.Context, err error, data any) {
	if err != nil {
		Fail(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, data)
}

func NoContent(ctx *gin.Context, err error) {
	if err != nil {
		Fail(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}
