package project

import (
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"go-kanban/app/model"
	"go-kanban/app/model/field"
	"go-kanban/app/service/cascade"
	"go-kanban/app/service/common"
	"go-kanban/app/service/resource"
)

type Service = resource.Service[model.Project, CreateReq, UpdateReq, ListReq, *model.Project]

func NewService(log *zap.Logger, db *gorm.DB, engine *cascade.Engine) *Service {
	return resource.New[model.Project, CreateReq, UpdateReq, ListReq](db, log, &hooks{cascade: engine})
}

type hooks struct {
	cascade *cascade.Engine
}

func (h *hooks) Kind() string {
	return "Project"
}

func (h *hooks) Restrict(db *gorm.DB, _ resource.Scope) *gorm.DB {
	return db
}

func (h *hooks) ValidateParent(tx *gorm.DB, _ resource.Scope, req *CreateReq) error {
	return resource.LockParent(tx, &model.Workspace{}, "Workspace", req.WorkspaceId)
}

func (h *hooks) CheckUnique(*gorm.DB, *model.Project) error {
	return nil
}

func (h *hooks) Build(_ resource.Scope, req *CreateReq) *model.Project {
	m := &model.Project{
		Name:        req.Name,
		Description: req.Description,
		Status:      req.Status,
		Priority:    req.Priority,
		WorkspaceId: req.WorkspaceId,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
	}
	if m.Status == "" {
		m.Status = field.ProjectPlanning
	}
	if m.Priority == "" {
		m.Priority = field.PriorityMedium
	}
	return m
}

func (h *hooks) Apply(_ *gorm.DB, m *model.Project, req *UpdateReq) (bool, error) {
	if err := common.NotBlank("name", req.Name); err != nil {
		return false, err
	}
	if req.Name != nil {
		m.Name = *req.Name
	}
	if req.Description.Set {
		m.Description = req.Description.Ptr()
	}
	if req.Status != nil {
		m.Status = *req.Status
	}
	if req.Priority != nil {
		m.Priority = *req.Priority
	}
	if req.StartDate.Set {
		m.StartDate = req.StartDate.Ptr()
	}
	if req.EndDate.Set {
		m.EndDate = req.EndDate.Ptr()
	}
	return false, nil
}

func (h *hooks) Filter(db *gorm.DB, f *ListReq) (*gorm.DB, error) {
	workspaceId, err := common.ParseOptionalId("workspace", f.WorkspaceId)
	if err != nil {
		return nil, err
	}
	if workspaceId != nil {
		db = db.Where("workspace_id = ?", *workspaceId)
	}
	if f.Status != "" {
		db = db.Where("status = ?", f.Status)
	}
	if f.Priority != "" {
		db = db.Where("priority = ?", f.Priority)
	}
	return db, nil
}

func (h *hooks) Order(db *gorm.DB) *gorm.DB {
	return db.Order("created_at DESC")
}

// Delete 硬删除并级联工单、任务
func (h *hooks) Delete(tx *gorm.DB, _ resource.Scope, id uuid.UUID) error {
	_, err := h.cascade.Project(tx, id)
	return err
}
