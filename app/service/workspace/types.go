package workspace

import "go-kanban/app/model/field"

type CreateReq struct {
	Name        string  `json:"name" binding:"required,min=1,max=100"`
	Description *string `json:"description" binding:"omitempty,max=500"`
}

type UpdateReq struct {
	Name        *string                `json:"name" binding:"omitempty,min=1,max=100"`
	Description field.Optional[string] `json:"description" binding:"omitempty,max=500"`
}

// ListReq 空间列表只有分页
type ListReq struct{}
