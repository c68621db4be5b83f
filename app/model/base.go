package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Base 所有主实体共享的主键、时间戳和审计字段。
// created_by/updated_by 引用外部用户服务，不做外键校验
type Base struct {
	ID        uuid.UUID  `gorm:"column:id;primaryKey;size:36" json:"id"`
	CreatedBy uuid.UUID  `gorm:"column:created_by;size:36;not null;index;comment:创建人" json:"created_by"`
	UpdatedBy *uuid.UUID `gorm:"column:updated_by;size:36;index;comment:最后修改人" json:"updated_by"`
	CreatedAt time.Time  `gorm:"column:created_at;not null;index" json:"created_at"`
	UpdatedAt time.Time  `gorm:"column:updated_at;not null" json:"updated_at"`
}

func (b *Base) BeforeCreate(*gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

func (b *Base) Identity() uuid.UUID {
	return b.ID
}

// StampCreated 写入创建人
func (b *Base) StampCreated(actor uuid.UUID) {
	b.CreatedBy = actor
}

// StampUpdated 写入最后修改人
func (b *Base) StampUpdated(actor uuid.UUID) {
	b.UpdatedBy = &actor
}

// Record 由嵌入 Base 的模型指针实现
type Record interface {
	Identity() uuid.UUID
	StampCreated(actor uuid.UUID)
	StampUpdated(actor uuid.UUID)
}
