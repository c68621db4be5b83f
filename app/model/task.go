package model

import (
	"time"

	"github.com/google/uuid"

	"go-kanban/app/model/field"
)

type Task struct {
	Base
	Title       string           `gorm:"column:title;size:300;not null;index;comment:标题" json:"title"`
	Description *string          `gorm:"column:description;type:text" json:"description"`
	Status      field.TaskStatus `gorm:"column:status;size:20;not null;default:TODO;index;comment:状态" json:"status"`
	CompletedAt *time.Time       `gorm:"column:completed_at;comment:完成时间" json:"completed_at"`
	TicketId    uuid.UUID        `gorm:"column:ticket_id;size:36;not null;index;comment:所属工单" json:"ticket_id"`
	AssigneeId  *uuid.UUID       `gorm:"column:assignee_id;size:36;index;comment:负责人" json:"assignee_id"`
	DueDate     *field.Date      `gorm:"column:due_date;comment:截止日期" json:"due_date"`
	IsDeleted   bool             `gorm:"column:is_deleted;not null;default:false;index" json:"is_deleted"`
}

func (Task) TableName() string {
	return "tasks"
}

// MarkCompleted 状态置为 DONE 并记录完成时间
func (t *Task) MarkCompleted(now time.Time) {
	t.Status = field.TaskDone
	t.CompletedAt = &now
}
