package tickettype

import "go-kanban/app/model/field"

type CreateReq struct {
	TypeName     string  `json:"type_name" binding:"required,min=1,max=100"`
	Description  *string `json:"description" binding:"omitempty,max=500"`
	Color        *string `json:"color" binding:"omitempty,hexcolor,len=7"`
	Icon         *string `json:"icon" binding:"omitempty,max=50"`
	DisplayOrder *int    `json:"display_order" binding:"omitempty,min=0"`
}

type UpdateReq struct {
	TypeName     *string                `json:"type_name" binding:"omitempty,min=1,max=100"`
	Description  field.Optional[string] `json:"description" binding:"omitempty,max=500"`
	Color        field.Optional[string] `json:"color" binding:"omitempty,hexcolor,len=7"`
	Icon         field.Optional[string] `json:"icon" binding:"omitempty,max=50"`
	DisplayOrder field.Optional[int]    `json:"display_order" binding:"omitempty,min=0"`
}

type ListReq struct {
	IncludeDeleted bool `form:"include_deleted"`
}
