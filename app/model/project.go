package model

import (
	"github.com/google/uuid"

	"go-kanban/app/model/field"
)

type Project struct {
	Base
	Name        string              `gorm:"column:name;size:200;not null;index;comment:名称" json:"name"`
	Description *string             `gorm:"column:description;type:text;comment:简介说明" json:"description"`
	Status      field.ProjectStatus `gorm:"column:status;size:20;not null;default:PLANNING;index;comment:状态" json:"status"`
	Priority    field.Priority      `gorm:"column:priority;size:20;not null;default:MEDIUM;index;comment:优先级" json:"priority"`
	// 无外键：为分库分片预留
	WorkspaceId uuid.UUID   `gorm:"column:workspace_id;size:36;not null;index;comment:所属空间" json:"workspace_id"`
	StartDate   *field.Date `gorm:"column:start_date;comment:开始日期" json:"start_date"`
	EndDate     *field.Date `gorm:"column:end_date;comment:结束日期" json:"end_date"`
	IsDeleted   bool        `gorm:"column:is_deleted;not null;default:false;index;comment:软删除" json:"is_deleted"`
}

func (Project) TableName() string {
	return "projects"
}
