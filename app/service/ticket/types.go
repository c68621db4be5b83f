package ticket

import (
	"github.com/google/uuid"

	"go-kanban/app/model/field"
)

type CreateReq struct {
	Title        string             `json:"title" binding:"required,min=1,max=300"`
	Description  *string            `json:"description" binding:"omitempty,max=2000"`
	Status       field.TicketStatus `json:"status" binding:"omitempty,enum"`
	Priority     field.Priority     `json:"priority" binding:"omitempty,enum"`
	ProjectId    uuid.UUID          `json:"project_id" binding:"required"`
	AssigneeId   *uuid.UUID         `json:"assignee_id"`
	TicketTypeId *uuid.UUID         `json:"ticket_type_id"`
	ParentTicket *uuid.UUID         `json:"parent_ticket"`
	DueDate      *field.Date        `json:"due_date"`
}

type UpdateReq struct {
	Title        *string                    `json:"title" binding:"omitempty,min=1,max=300"`
	Description  field.Optional[string]     `json:"description" binding:"omitempty,max=2000"`
	Status       *field.TicketStatus        `json:"status" binding:"omitempty,enum"`
	Priority     *field.Priority            `json:"priority" binding:"omitempty,enum"`
	AssigneeId   field.Optional[uuid.UUID]  `json:"assignee_id"`
	TicketTypeId field.Optional[uuid.UUID]  `json:"ticket_type_id"`
	ParentTicket field.Optional[uuid.UUID]  `json:"parent_ticket"`
	DueDate      field.Optional[field.Date] `json:"due_date"`
}

type ListReq struct {
	ProjectId    string             `form:"project_id" binding:"omitempty,uuid"`
	Status       field.TicketStatus `form:"status" binding:"omitempty,enum"`
	Priority     field.Priority     `form:"priority" binding:"omitempty,enum"`
	AssigneeId   string             `form:"assignee_id" binding:"omitempty,uuid"`
	TicketTypeId string             `form:"ticket_type_id" binding:"omitempty,uuid"`
}
