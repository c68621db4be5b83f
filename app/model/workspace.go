package model

// Workspace 层级根节点，名称全局唯一
type Workspace struct {
	Base
	Name        string  `gorm:"column:name;size:100;not null;uniqueIndex;comment:空间名" json:"name"`
	Description *string `gorm:"column:description;type:text;comment:简介说明" json:"description"`
}

func (Workspace) TableName() string {
	return "workspaces"
}
