package workspace

import (
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"go-kanban/app/internal/errcode"
	"go-kanban/app/model"
	"go-kanban/app/service/cascade"
	"go-kanban/app/service/common"
	"go-kanban/app/service/resource"
)

type Service = resource.Service[model.Workspace, CreateReq, UpdateReq, ListReq, *model.Workspace]

func NewService(log *zap.Logger, db *gorm.DB, engine *cascade.Engine) *Service {
	return resource.New[model.Workspace, CreateReq, UpdateReq, ListReq](db, log, &hooks{cascade: engine})
}

type hooks struct {
	cascade *cascade.Engine
}

func (h *hooks) Kind() string {
	return "Workspace"
}

func (h *hooks) Restrict(db *gorm.DB, _ resource.Scope) *gorm.DB {
	return db
}

func (h *hooks) ValidateParent(*gorm.DB, resource.Scope, *CreateReq) error {
	return nil
}

// CheckUnique 名称全局唯一
func (h *hooks) CheckUnique(tx *gorm.DB, m *model.Workspace) error {
	var n int64
	err := tx.Model(&model.Workspace{}).Where("name = ? AND id <> ?", m.Name, m.ID).Count(&n).Error
	if err != nil {
		return err
	}
	if n > 0 {
		return errcode.ErrConflict.New("Workspace '%s' already exists", m.Name)
	}
	return nil
}

func (h *hooks) Build(_ resource.Scope, req *CreateReq) *model.Workspace {
	return &model.Workspace{
		Name:        req.Name,
		Description: req.Description,
	}
}

func (h *hooks) Apply(_ *gorm.DB, m *model.Workspace, req *UpdateReq) (recheck bool, err error) {
	if err = common.NotBlank("name", req.Name); err != nil {
		return
	}
	if req.Name != nil && *req.Name != m.Name {
		m.Name = *req.Name
		recheck = true
	}
	if req.Description.Set {
		m.Description = req.Description.Ptr()
	}
	return
}

func (h *hooks) Filter(db *gorm.DB, _ *ListReq) (*gorm.DB, error) {
	return db, nil
}

func (h *hooks) Order(db *gorm.DB) *gorm.DB {
	return db.Order("created_at DESC")
}

// Delete 硬删除并级联项目、工单、任务
func (h *hooks) Delete(tx *gorm.DB, _ resource.Scope, id uuid.UUID) error {
	_, err := h.cascade.Workspace(tx, id)
	return err
}
