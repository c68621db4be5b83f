package model

import (
	"github.com/google/uuid"

	"go-kanban/app/model/field"
)

// ProjectRole 项目内自定义角色
type ProjectRole struct {
	Base
	ProjectId   uuid.UUID `gorm:"column:project_id;size:36;not null;index" json:"project_id"`
	RoleName    string    `gorm:"column:role_name;size:100;not null;index" json:"role_name"`
	Description *string   `gorm:"column:description;type:text" json:"description"`
	Color       *string   `gorm:"column:color;size:7" json:"color"`
	IsDeleted   bool      `gorm:"column:is_deleted;not null;default:false;index" json:"is_deleted"`
}

func (ProjectRole) TableName() string {
	return "project_roles"
}

type ProjectMember struct {
	Base
	ProjectId uuid.UUID  `gorm:"column:project_id;size:36;not null;index" json:"project_id"`
	UserId    uuid.UUID  `gorm:"column:user_id;size:36;not null;index" json:"user_id"`
	RoleId    *uuid.UUID `gorm:"column:role_id;size:36;index" json:"role_id"`
	IsDeleted bool       `gorm:"column:is_deleted;not null;default:false;index" json:"is_deleted"`
}

func (ProjectMember) TableName() string {
	return "project_members"
}

type TicketMember struct {
	Base
	TicketId          uuid.UUID                 `gorm:"column:ticket_id;size:36;not null;index" json:"ticket_id"`
	UserId            uuid.UUID                 `gorm:"column:user_id;size:36;not null;index" json:"user_id"`
	ParticipationType field.TicketParticipation `gorm:"column:participation_type;size:20;not null;default:ASSIGNEE;index" json:"participation_type"`
	IsDeleted         bool                      `gorm:"column:is_deleted;not null;default:false;index" json:"is_deleted"`
}

func (TicketMember) TableName() string {
	return "ticket_members"
}

type TaskMember struct {
	Base
	TaskId            uuid.UUID               `gorm:"column:task_id;size:36;not null;index" json:"task_id"`
	UserId            uuid.UUID               `gorm:"column:user_id;size:36;not null;index" json:"user_id"`
	ParticipationType field.TaskParticipation `gorm:"column:participation_type;size:20;not null;default:ASSIGNEE;index" json:"participation_type"`
	IsDeleted         bool                    `gorm:"column:is_deleted;not null;default:false;index" json:"is_deleted"`
}

func (TaskMember) TableName() string {
	return "task_members"
}
