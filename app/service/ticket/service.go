package ticket

import (
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"go-kanban/app/internal/errcode"
	"go-kanban/app/model"
	"go-kanban/app/model/field"
	"go-kanban/app/service/cascade"
	"go-kanban/app/service/common"
	"go-kanban/app/service/resource"
)

type Service = resource.Service[model.Ticket, CreateReq, UpdateReq, ListReq, *model.Ticket]

func NewService(log *zap.Logger, db *gorm.DB, engine *cascade.Engine) *Service {
	return resource.New[model.Ticket, CreateReq, UpdateReq, ListReq](db, log, &hooks{cascade: engine})
}

type hooks struct {
	cascade *cascade.Engine
}

func (h *hooks) Kind() string {
	return "Ticket"
}

func (h *hooks) Restrict(db *gorm.DB, _ resource.Scope) *gorm.DB {
	return db
}

func (h *hooks) ValidateParent(tx *gorm.DB, _ resource.Scope, req *CreateReq) error {
	if err := resource.LockParent(tx, &model.Project{}, "Project", req.ProjectId); err != nil {
		return err
	}
	return checkRefs(tx, req.ProjectId, req.TicketTypeId, req.ParentTicket)
}

// checkRefs 工单类型必须是同项目未删除的类型，上级工单必须在同一项目
func checkRefs(tx *gorm.DB, projectId uuid.UUID, typeId, parentId *uuid.UUID) error {
	if typeId != nil {
		err := resource.LockParent(tx, &model.TicketType{}, "Ticket type", *typeId,
			"project_id = ? AND is_deleted = ?", projectId, false)
		if err != nil {
			return err
		}
	}
	if parentId != nil {
		err := resource.LockParent(tx, &model.Ticket{}, "Ticket", *parentId, "project_id = ?", projectId)
		if err != nil {
			return err
		}
	}
	return nil
}

func (h *hooks) CheckUnique(*gorm.DB, *model.Ticket) error {
	return nil
}

func (h *hooks) Build(_ resource.Scope, req *CreateReq) *model.Ticket {
	m := &model.Ticket{
		Title:        req.Title,
		Description:  req.Description,
		Status:       req.Status,
		Priority:     req.Priority,
		ProjectId:    req.ProjectId,
		AssigneeId:   req.AssigneeId,
		TicketTypeId: req.TicketTypeId,
		ParentTicket: req.ParentTicket,
		DueDate:      req.DueDate,
	}
	if m.Status == "" {
		m.Status = field.TicketOpen
	}
	if m.Priority == "" {
		m.Priority = field.PriorityMedium
	}
	return m
}

func (h *hooks) Apply(tx *gorm.DB, m *model.Ticket, req *UpdateReq) (bool, error) {
	if err := common.NotBlank("title", req.Title); err != nil {
		return false, err
	}
	var typeId, parentId *uuid.UUID
	if req.TicketTypeId.Set {
		typeId = req.TicketTypeId.Ptr()
	}
	if req.ParentTicket.Set {
		parentId = req.ParentTicket.Ptr()
		if parentId != nil && *parentId == m.ID {
			return false, errcode.ErrValidation.New("ticket cannot be its own parent")
		}
	}
	if err := checkRefs(tx, m.ProjectId, typeId, parentId); err != nil {
		return false, err
	}

	if req.Title != nil {
		m.Title = *req.Title
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
	if req.AssigneeId.Set {
		m.AssigneeId = req.AssigneeId.Ptr()
	}
	if req.TicketTypeId.Set {
		m.TicketTypeId = typeId
	}
	if req.ParentTicket.Set {
		m.ParentTicket = parentId
	}
	if req.DueDate.Set {
		m.DueDate = req.DueDate.Ptr()
	}
	return false, nil
}

func (h *hooks) Filter(db *gorm.DB, f *ListReq) (*gorm.DB, error) {
	projectId, err := common.ParseOptionalId("project", f.ProjectId)
	if err != nil {
		return nil, err
	}
	assigneeId, err := common.ParseOptionalId("assignee", f.AssigneeId)
	if err != nil {
		return nil, err
	}
	typeId, err := common.ParseOptionalId("ticket type", f.TicketTypeId)
	if err != nil {
		return nil, err
	}
	if projectId != nil {
		db = db.Where("project_id = ?", *projectId)
	}
	if assigneeId != nil {
		db = db.Where("assignee_id = ?", *assigneeId)
	}
	if typeId != nil {
		db = db.Where("ticket_type_id = ?", *typeId)
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

// Delete 硬删除并级联任务
func (h *hooks) Delete(tx *gorm.DB, _ resource.Scope, id uuid.UUID) error {
	_, err := h.cascade.Ticket(tx, id)
	return err
}
