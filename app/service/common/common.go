package common

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"go-kanban/app/internal/constants"
	"go-kanban/app/internal/errcode"
)

// PageReq 分页参数，limit 1..100，默认 20
type PageReq struct {
	Limit  int
	Offset int
}

// PageParams 查询串中的分页参数，指针区分未传和显式传 0，limit=0 校验不通过
type PageParams struct {
	Limit  *int `form:"limit" binding:"omitempty,min=1,max=100"`
	Offset *int `form:"offset" binding:"omitempty,min=0"`
}

func (p *PageParams) PageReq() PageReq {
	page := PageReq{}
	if p.Limit != nil {
		page.Limit = *p.Limit
	}
	if p.Offset != nil {
		page.Offset = *p.Offset
	}
	page.Normalize()
	return page
}

// Normalize 补默认值并收紧边界
func (p *PageReq) Normalize() {
	if p.Limit <= 0 {
		p.Limit = constants.DefaultLimit
	}
	if p.Limit > constants.MaxLimit {
		p.Limit = constants.MaxLimit
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
}

func (p *PageReq) PageQuery() func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Offset(p.Offset).Limit(p.Limit)
	}
}

// ParseId 解析路径或查询参数中的 UUID
func ParseId(kind, raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, errcode.ErrValidation.New("invalid %s id %q", kind, raw)
	}
	return id, nil
}

// ParseOptionalId 空串表示不过滤
func ParseOptionalId(kind, raw string) (*uuid.UUID, error) {
	if raw == "" {
		return nil, nil
	}
	id, err := ParseId(kind, raw)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

// NotBlank 指针字段显式提交时不能为空串，omitempty 会放过空串
func NotBlank(name string, v *string) error {
	if v != nil && *v == "" {
		return errcode.ErrValidation.New("%s must not be empty", name)
	}
	return nil
}
