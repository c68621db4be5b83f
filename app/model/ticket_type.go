package model

import "github.com/google/uuid"

// TicketType 项目内自定义工单分类，软删除
type TicketType struct {
	Base
	ProjectId    uuid.UUID `gorm:"column:project_id;size:36;not null;index;comment:所属项目" json:"project_id"`
	TypeName     string    `gorm:"column:type_name;size:100;not null;index;comment:类型名" json:"type_name"`
	Description  *string   `gorm:"column:description;type:text" json:"description"`
	Color        *string   `gorm:"column:color;size:7;comment:主题色" json:"color"`
	Icon         *string   `gorm:"column:icon;size:50;comment:图标" json:"icon"`
	DisplayOrder *int      `gorm:"column:display_order;comment:排序" json:"display_order"`
	IsDeleted    bool      `gorm:"column:is_deleted;not null;default:false;index" json:"is_deleted"`
}

func (TicketType) TableName() string {
	return "ticket_types"
}
