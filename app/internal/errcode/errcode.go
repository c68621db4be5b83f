package errcode

import (
	"strings"

	"github.com/zeebo/errs"
)

// 业务错误分类，由 response 统一映射为 HTTP 状态码
var (
	ErrNotFound     = errs.Class("not found")
	ErrConflict     = errs.Class("conflict")
	ErrUnauthorized = errs.Class("unauthorized")
	ErrValidation   = errs.Class("validation")
	ErrInternal     = errs.Class("internal")
)

// NotFound 实体不存在，或父级范围不匹配
func NotFound(kind string, id any) error {
	return ErrNotFound.New("%s %v not found", kind, id)
}

// Message 去掉 errs.Class 前缀，返回给调用方的描述
func Message(err error) string {
	msg := err.Error()
	for _, c := range []*errs.Class{&ErrNotFound, &ErrConflict, &ErrUnauthorized, &ErrValidation, &ErrInternal} {
		if c.Has(err) {
			return strings.TrimPrefix(msg, string(*c)+": ")
		}
	}
	return msg
}
