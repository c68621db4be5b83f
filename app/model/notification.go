package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"go-kanban/app/model/field"
)

// Notification 不属于层级结构，按接收人隔离
type Notification struct {
	Base
	UserId           uuid.UUID              `gorm:"column:user_id;size:36;not null;index;comment:接收人" json:"user_id"`
	NotificationType field.NotificationType `gorm:"column:notification_type;size:30;not null;index" json:"notification_type"`
	Title            string                 `gorm:"column:title;size:200;not null" json:"title"`
	Content          *string                `gorm:"column:content;type:text" json:"content"`
	TargetType       *string                `gorm:"column:target_type;size:50" json:"target_type"`
	TargetId         *uuid.UUID             `gorm:"column:target_id;size:36;index" json:"target_id"`
	ExtraData        datatypes.JSON         `gorm:"column:extra_data" json:"extra_data"`
	IsRead           bool                   `gorm:"column:is_read;not null;default:false;index" json:"is_read"`
	ReadAt           *time.Time             `gorm:"column:read_at" json:"read_at"`
}

func (Notification) TableName() string {
	return "notifications"
}
