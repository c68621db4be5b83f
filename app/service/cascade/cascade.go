// Package cascade 在应用层完成层级删除：库里没有外键，
// 先删后代再删目标，全部在调用方的事务内执行
package cascade

import (
	"errors"

	"github.com/google/uuid"
	"github.com/wuzfei/go-helper/slices"
	"github.com/zeebo/errs"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"go-kanban/app/internal/errcode"
	"go-kanban/app/metrics"
	"go-kanban/app/model"
)

var ErrCascade = errs.Class("cascade")

// Result 各层被删除的行数，不含根节点
type Result struct {
	Projects int64 `json:"projects"`
	Tickets  int64 `json:"tickets"`
	Tasks    int64 `json:"tasks"`
}

type Engine struct {
	log *zap.Logger
}

func New(log *zap.Logger) *Engine {
	return &Engine{log: log.Named("cascade")}
}

// Workspace 删除空间及其下全部项目、工单、任务
func (e *Engine) Workspace(tx *gorm.DB, id uuid.UUID) (res Result, err error) {
	defer func() { err = e.done("workspace", id, res, err) }()
	if err = lockRoot(tx, &model.Workspace{}, "Workspace", id); err != nil {
		return
	}
	var projectIds []uuid.UUID
	if err = tx.Model(&model.Project{}).Where("workspace_id = ?", id).Pluck("id", &projectIds).Error; err != nil {
		return
	}
	if len(projectIds) > 0 {
		var ticketIds []uuid.UUID
		if err = tx.Model(&model.Ticket{}).Where("project_id IN ?", projectIds).Pluck("id", &ticketIds).Error; err != nil {
			return
		}
		if res.Tasks, err = deleteTasks(tx, ticketIds); err != nil {
			return
		}
		if res.Tickets, err = deleteWhere(tx, &model.Ticket{}, "project_id IN ?", projectIds); err != nil {
			return
		}
		if res.Projects, err = deleteWhere(tx, &model.Project{}, "workspace_id = ?", id); err != nil {
			return
		}
		e.log.Debug("删除空间下的项目", zap.Stringer("workspace_id", id), zap.Strings("project_ids", idStrings(projectIds)))
	}
	err = deleteRoot(tx, &model.Workspace{}, id)
	return
}

// Project 删除项目及其下全部工单、任务
func (e *Engine) Project(tx *gorm.DB, id uuid.UUID) (res Result, err error) {
	defer func() { err = e.done("project", id, res, err) }()
	if err = lockRoot(tx, &model.Project{}, "Project", id); err != nil {
		return
	}
	var ticketIds []uuid.UUID
	if err = tx.Model(&model.Ticket{}).Where("project_id = ?", id).Pluck("id", &ticketIds).Error; err != nil {
		return
	}
	if len(ticketIds) > 0 {
		if res.Tasks, err = deleteTasks(tx, ticketIds); err != nil {
			return
		}
		if res.Tickets, err = deleteWhere(tx, &model.Ticket{}, "project_id = ?", id); err != nil {
			return
		}
		e.log.Debug("删除项目下的工单", zap.Stringer("project_id", id), zap.Strings("ticket_ids", idStrings(ticketIds)))
	}
	err = deleteRoot(tx, &model.Project{}, id)
	return
}

// Ticket 删除工单及其下全部任务
func (e *Engine) Ticket(tx *gorm.DB, id uuid.UUID) (res Result, err error) {
	defer func() { err = e.done("ticket", id, res, err) }()
	if err = lockRoot(tx, &model.Ticket{}, "Ticket", id); err != nil {
		return
	}
	if res.Tasks, err = deleteWhere(tx, &model.Task{}, "ticket_id = ?", id); err != nil {
		return
	}
	err = deleteRoot(tx, &model.Ticket{}, id)
	return
}

// done 统一日志和错误分类：NotFound 原样返回，其他存储错误归为 Internal
func (e *Engine) done(kind string, id uuid.UUID, res Result, err error) error {
	if err == nil {
		e.log.Info("级联删除完成", zap.String("kind", kind), zap.Stringer("id", id),
			zap.Int64("projects", res.Projects), zap.Int64("tickets", res.Tickets), zap.Int64("tasks", res.Tasks))
		metrics.CascadeRows.WithLabelValues("projects").Add(float64(res.Projects))
		metrics.CascadeRows.WithLabelValues("tickets").Add(float64(res.Tickets))
		metrics.CascadeRows.WithLabelValues("tasks").Add(float64(res.Tasks))
		return nil
	}
	if errcode.ErrNotFound.Has(err) {
		return err
	}
	e.log.Error("级联删除失败", zap.String("kind", kind), zap.Stringer("id", id), zap.Error(err))
	return errcode.ErrInternal.Wrap(ErrCascade.Wrap(err))
}

// lockRoot 锁定根节点行，防止与并发的子节点创建交错
func lockRoot(tx *gorm.DB, m any, kind string, id uuid.UUID) error {
	var found []uuid.UUID
	err := tx.Model(m).Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).Limit(1).Pluck("id", &found).Error
	if err != nil {
		return err
	}
	if len(found) == 0 {
		return errcode.NotFound(kind, id)
	}
	return nil
}

func deleteTasks(tx *gorm.DB, ticketIds []uuid.UUID) (int64, error) {
	if len(ticketIds) == 0 {
		return 0, nil
	}
	return deleteWhere(tx, &model.Task{}, "ticket_id IN ?", ticketIds)
}

func deleteWhere(tx *gorm.DB, m any, query string, args ...any) (int64, error) {
	r := tx.Where(query, args...).Delete(m)
	return r.RowsAffected, r.Error
}

func deleteRoot(tx *gorm.DB, m any, id uuid.UUID) error {
	r := tx.Where("id = ?", id).Delete(m)
	if r.Error != nil {
		return r.Error
	}
	if r.RowsAffected == 0 {
		return errors.New("root row vanished during cascade")
	}
	return nil
}

func idStrings(ids []uuid.UUID) []string {
	return slices.Map(ids, func(id uuid.UUID, _ int) string {
		return id.String()
	})
}
