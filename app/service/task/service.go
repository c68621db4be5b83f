package task

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"go-kanban/app/internal/errcode"
	"go-kanban/app/model"
	"go-kanban/app/model/field"
	"go-kanban/app/service/common"
	"go-kanban/app/service/resource"
)

type Service struct {
	*resource.Service[model.Task, CreateReq, UpdateReq, ListReq, *model.Task]
	now func() time.Time
}

func NewService(log *zap.Logger, db *gorm.DB) *Service {
	h := &hooks{now: time.Now}
	return &Service{
		Service: resource.New[model.Task, CreateReq, UpdateReq, ListReq](db, log, h),
		now:     h.now,
	}
}

// Complete 唯一强制的状态流转：非 DONE -> DONE，重复完成返回冲突
func (srv *Service) Complete(ctx context.Context, s resource.Scope, id uuid.UUID) (*model.Task, error) {
	return srv.Mutate(ctx, s, id, "complete", func(m *model.Task) error {
		if m.Status == field.TaskDone {
			return errcode.ErrConflict.New("Task is already completed")
		}
		m.MarkCompleted(srv.now().UTC())
		return nil
	})
}

type hooks struct {
	now func() time.Time
}

func (h *hooks) Kind() string {
	return "Task"
}

func (h *hooks) Restrict(db *gorm.DB, _ resource.Scope) *gorm.DB {
	return db
}

func (h *hooks) ValidateParent(tx *gorm.DB, _ resource.Scope, req *CreateReq) error {
	return resource.LockParent(tx, &model.Ticket{}, "Ticket", req.TicketId)
}

func (h *hooks) CheckUnique(*gorm.DB, *model.Task) error {
	return nil
}

func (h *hooks) Build(_ resource.Scope, req *CreateReq) *model.Task {
	m := &model.Task{
		Title:       req.Title,
		Description: req.Description,
		Status:      field.TaskTodo,
		TicketId:    req.TicketId,
		AssigneeId:  req.AssigneeId,
		DueDate:     req.DueDate,
	}
	if req.Status != "" {
		h.setStatus(m, req.Status)
	}
	return m
}

// setStatus 进入 DONE 记录完成时间，离开 DONE 清空
func (h *hooks) setStatus(m *model.Task, status field.TaskStatus) {
	switch {
	case status == field.TaskDone && m.Status != field.TaskDone:
		m.MarkCompleted(h.now().UTC())
	case status != field.TaskDone:
		m.Status = status
		m.CompletedAt = nil
	}
}

func (h *hooks) Apply(_ *gorm.DB, m *model.Task, req *UpdateReq) (bool, error) {
	if err := common.NotBlank("title", req.Title); err != nil {
		return false, err
	}
	if req.Title != nil {
		m.Title = *req.Title
	}
	if req.Description.Set {
		m.Description = req.Description.Ptr()
	}
	if req.Status != nil {
		h.setStatus(m, *req.Status)
	}
	if req.AssigneeId.Set {
		m.AssigneeId = req.AssigneeId.Ptr()
	}
	if req.DueDate.Set {
		m.DueDate = req.DueDate.Ptr()
	}
	return false, nil
}

func (h *hooks) Filter(db *gorm.DB, f *ListReq) (*gorm.DB, error) {
	ticketId, err := common.ParseOptionalId("ticket", f.TicketId)
	if err != nil {
		return nil, err
	}
	assigneeId, err := common.ParseOptionalId("assignee", f.AssigneeId)
	if err != nil {
		return nil, err
	}
	if ticketId != nil {
		db = db.Where("ticket_id = ?", *ticketId)
	}
	if assigneeId != nil {
		db = db.Where("assignee_id = ?", *assigneeId)
	}
	if f.Status != "" {
		db = db.Where("status = ?", f.Status)
	}
	return db, nil
}

func (h *hooks) Order(db *gorm.DB) *gorm.DB {
	return db.Order("created_at DESC")
}

// Delete 任务是叶子节点，直接硬删除
func (h *hooks) Delete(tx *gorm.DB, _ resource.Scope, id uuid.UUID) error {
	r := tx.Where("id = ?", id).Delete(&model.Task{})
	if r.Error != nil {
		return r.Error
	}
	if r.RowsAffected == 0 {
		return errcode.NotFound("Task", id)
	}
	return nil
}
