package model

import (
	"github.com/google/uuid"

	"go-kanban/app/model/field"
)

type Ticket struct {
	Base
	Title        string             `gorm:"column:title;size:300;not null;index;comment:标题" json:"title"`
	Description  *string            `gorm:"column:description;type:text" json:"description"`
	Status       field.TicketStatus `gorm:"column:status;size:20;not null;default:OPEN;index;comment:状态" json:"status"`
	Priority     field.Priority     `gorm:"column:priority;size:20;not null;default:MEDIUM;index;comment:优先级" json:"priority"`
	ProjectId    uuid.UUID          `gorm:"column:project_id;size:36;not null;index;comment:所属项目" json:"project_id"`
	AssigneeId   *uuid.UUID         `gorm:"column:assignee_id;size:36;index;comment:负责人" json:"assignee_id"`
	TicketTypeId *uuid.UUID         `gorm:"column:ticket_type_id;size:36;index;comment:工单类型" json:"ticket_type_id"`
	ParentTicket *uuid.UUID         `gorm:"column:parent_ticket;size:36;index;comment:上级工单" json:"parent_ticket"`
	DueDate      *field.Date        `gorm:"column:due_date;comment:截止日期" json:"due_date"`
	IsDeleted    bool               `gorm:"column:is_deleted;not null;default:false;index" json:"is_deleted"`
}

func (Ticket) TableName() string {
	return "tickets"
}
