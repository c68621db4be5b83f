package notification

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"go-kanban/app/model"
	"go-kanban/app/model/field"
)

type CreateReq struct {
	UserId           uuid.UUID              `json:"user_id" binding:"required"`
	NotificationType field.NotificationType `json:"notification_type" binding:"required,enum"`
	Title            string                 `json:"title" binding:"required,min=1,max=200"`
	Content          *string                `json:"content" binding:"omitempty,max=1000"`
	TargetType       *string                `json:"target_type" binding:"omitempty,max=50"`
	TargetId         *uuid.UUID             `json:"target_id"`
	ExtraData        datatypes.JSON         `json:"extra_data"`
}

// UpdateReq 通知只支持标记已读，不开放通用修改
type UpdateReq struct{}

type ListReq struct {
	IsRead           *bool                  `form:"is_read"`
	NotificationType field.NotificationType `form:"notification_type" binding:"omitempty,enum"`
}

type ListRes struct {
	Total       int64                 `json:"total"`
	UnreadCount int64                 `json:"unread_count"`
	Items       []*model.Notification `json:"items"`
	Limit       int                   `json:"limit"`
	Offset      int                   `json:"offset"`
}

type ReadRes struct {
	Id     uuid.UUID  `json:"id"`
	IsRead bool       `json:"is_read"`
	ReadAt *time.Time `json:"read_at"`
}

type MarkAllRes struct {
	Message string `json:"message"`
	Count   int64  `json:"count"`
}

type UnreadCountRes struct {
	UnreadCount int64 `json:"unread_count"`
}
