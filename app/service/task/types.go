package task

import (
	"github.com/google/uuid"

	"go-kanban/app/model/field"
)

type CreateReq struct {
	Title       string           `json:"title" binding:"required,min=1,max=300"`
	Description *string          `json:"description" binding:"omitempty,max=2000"`
	Status      field.TaskStatus `json:"status" binding:"omitempty,enum"`
	TicketId    uuid.UUID        `json:"ticket_id" binding:"required"`
	AssigneeId  *uuid.UUID       `json:"assignee_id"`
	DueDate     *field.Date      `json:"due_date"`
}

type UpdateReq struct {
	Title       *string                    `json:"title" binding:"omitempty,min=1,max=300"`
	Description field.Optional[string]     `json:"description" binding:"omitempty,max=2000"`
	Status      *field.TaskStatus          `json:"status" binding:"omitempty,enum"`
	AssigneeId  field.Optional[uuid.UUID]  `json:"assignee_id"`
	DueDate     field.Optional[field.Date] `json:"due_date"`
}

type ListReq struct {
	TicketId   string           `form:"ticket_id" binding:"omitempty,uuid"`
	Status     field.TaskStatus `form:"status" binding:"omitempty,enum"`
	AssigneeId string           `form:"assignee_id" binding:"omitempty,uuid"`
}
