package model

import (
	"github.com/google/uuid"

	"go-kanban/app/model/field"
)

// Comment 多态目标：项目、工单或任务
type Comment struct {
	Base
	TargetType field.TargetType `gorm:"column:target_type;size:20;not null;index" json:"target_type"`
	TargetId   uuid.UUID        `gorm:"column:target_id;size:36;not null;index" json:"target_id"`
	AuthorId   uuid.UUID        `gorm:"column:author_id;size:36;not null;index" json:"author_id"`
	Content    string           `gorm:"column:content;type:text;not null" json:"content"`
	ParentId   *uuid.UUID       `gorm:"column:parent_id;size:36;index" json:"parent_id"`
	IsDeleted  bool             `gorm:"column:is_deleted;not null;default:false;index" json:"is_deleted"`
}

func (Comment) TableName() string {
	return "comments"
}

type Attachment struct {
	Base
	TargetType field.TargetType `gorm:"column:target_type;size:20;not null;index" json:"target_type"`
	TargetId   uuid.UUID        `gorm:"column:target_id;size:36;not null;index" json:"target_id"`
	FileName   string           `gorm:"column:file_name;size:255;not null" json:"file_name"`
	FilePath   string           `gorm:"column:file_path;size:500;not null" json:"file_path"`
	FileSize   *int64           `gorm:"column:file_size" json:"file_size"`
	MimeType   *string          `gorm:"column:mime_type;size:100" json:"mime_type"`
	IsDeleted  bool             `gorm:"column:is_deleted;not null;default:false;index" json:"is_deleted"`
}

func (Attachment) TableName() string {
	return "attachments"
}
