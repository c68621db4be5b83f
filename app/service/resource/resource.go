// Package resource 通用的增删改查流程，各实体通过 Hooks 提供差异部分
package resource

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/zeebo/errs"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"go-kanban/app/internal/errcode"
	"go-kanban/app/metrics"
	"go-kanban/app/model"
	"go-kanban/app/service/common"
)

var ErrResource = errs.Class("resource")

// Scope 请求上下文：操作人，以及嵌套路由中的上级 id（没有则为 uuid.Nil）
type Scope struct {
	Actor  uuid.UUID
	Parent uuid.UUID
}

// Hooks 实体差异点
type Hooks[M, C, U, F any] interface {
	Kind() string
	// Restrict 按上级路径或操作人限定可见范围，Get/Update/Delete/List 都会经过
	Restrict(db *gorm.DB, s Scope) *gorm.DB
	ValidateParent(tx *gorm.DB, s Scope, req *C) error
	CheckUnique(tx *gorm.DB, m *M) error
	Build(s Scope, req *C) *M
	// Apply 只修改请求中出现的字段，返回是否需要重新检查唯一性
	Apply(tx *gorm.DB, m *M, req *U) (recheck bool, err error)
	Filter(db *gorm.DB, f *F) (*gorm.DB, error)
	Order(db *gorm.DB) *gorm.DB
	Delete(tx *gorm.DB, s Scope, id uuid.UUID) error
}

type Service[M, C, U, F any, P interface {
	*M
	model.Record
}] struct {
	db    *gorm.DB
	log   *zap.Logger
	hooks Hooks[M, C, U, F]
}

func New[M, C, U, F any, P interface {
	*M
	model.Record
}](db *gorm.DB, log *zap.Logger, hooks Hooks[M, C, U, F]) *Service[M, C, U, F, P] {
	return &Service[M, C, U, F, P]{
		db:    db,
		log:   log.Named(hooks.Kind()),
		hooks: hooks,
	}
}

func (srv *Service[M, C, U, F, P]) Kind() string {
	return srv.hooks.Kind()
}

// DB 供实体服务扩展自有操作
func (srv *Service[M, C, U, F, P]) DB(ctx context.Context) *gorm.DB {
	return srv.db.WithContext(ctx)
}

// Create 上级校验、唯一性检查和写入在同一事务内
func (srv *Service[M, C, U, F, P]) Create(ctx context.Context, s Scope, req *C) (m *M, err error) {
	err = srv.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := srv.hooks.ValidateParent(tx, s, req); err != nil {
			return err
		}
		m = srv.hooks.Build(s, req)
		if err := srv.hooks.CheckUnique(tx, m); err != nil {
			return err
		}
		P(m).StampCreated(s.Actor)
		return tx.Create(m).Error
	})
	if err != nil {
		return nil, srv.wrap("create", err)
	}
	srv.done("create", P(m).Identity(), s)
	return m, nil
}

func (srv *Service[M, C, U, F, P]) List(ctx context.Context, s Scope, page common.PageReq, f *F) (total int64, list []*M, err error) {
	page.Normalize()
	list = make([]*M, 0)
	db := srv.hooks.Restrict(srv.db.WithContext(ctx).Model(new(M)), s)
	if db, err = srv.hooks.Filter(db, f); err != nil {
		return 0, list, srv.wrap("list", err)
	}
	db = db.Session(&gorm.Session{})
	if err = db.Count(&total).Error; err != nil {
		return 0, list, srv.wrap("list", err)
	}
	if total == 0 {
		return
	}
	err = srv.hooks.Order(db).Scopes(page.PageQuery()).Find(&list).Error
	if err != nil {
		return 0, list, srv.wrap("list", err)
	}
	return
}

func (srv *Service[M, C, U, F, P]) Get(ctx context.Context, s Scope, id uuid.UUID) (*M, error) {
	m, err := srv.take(srv.db.WithContext(ctx), s, id, false)
	if err != nil {
		return nil, srv.wrap("get", err)
	}
	return m, nil
}

// Update 局部更新：读取加行锁，应用变更，必要时复查唯一性
func (srv *Service[M, C, U, F, P]) Update(ctx context.Context, s Scope, id uuid.UUID, req *U) (m *M, err error) {
	err = srv.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if m, err = srv.take(tx, s, id, true); err != nil {
			return err
		}
		recheck, err := srv.hooks.Apply(tx, m, req)
		if err != nil {
			return err
		}
		if recheck {
			if err = srv.hooks.CheckUnique(tx, m); err != nil {
				return err
			}
		}
		P(m).StampUpdated(s.Actor)
		return tx.Save(m).Error
	})
	if err != nil {
		return nil, srv.wrap("update", err)
	}
	srv.done("update", id, s)
	return m, nil
}

// Mutate 在行锁下执行自定义修改，用于 Update 之外的状态流转
func (srv *Service[M, C, U, F, P]) Mutate(ctx context.Context, s Scope, id uuid.UUID, op string, fn func(m *M) error) (m *M, err error) {
	err = srv.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if m, err = srv.take(tx, s, id, true); err != nil {
			return err
		}
		if err = fn(m); err != nil {
			return err
		}
		P(m).StampUpdated(s.Actor)
		return tx.Save(m).Error
	})
	if err != nil {
		return nil, srv.wrap(op, err)
	}
	srv.done(op, id, s)
	return m, nil
}

func (srv *Service[M, C, U, F, P]) Delete(ctx context.Context, s Scope, id uuid.UUID) error {
	err := srv.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return srv.hooks.Delete(tx, s, id)
	})
	if err != nil {
		return srv.wrap("delete", err)
	}
	srv.done("delete", id, s)
	return nil
}

func (srv *Service[M, C, U, F, P]) take(db *gorm.DB, s Scope, id uuid.UUID, lock bool) (*M, error) {
	m := new(M)
	db = srv.hooks.Restrict(db.Model(m), s)
	if lock {
		db = db.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	err := db.Where("id = ?", id).Take(m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errcode.NotFound(srv.hooks.Kind(), id)
	}
	if err != nil {
		return nil, err
	}
	return m, nil
}

// wrap 已分类的业务错误原样返回，唯一索引冲突转为 Conflict，其余视为存储故障
func (srv *Service[M, C, U, F, P]) wrap(op string, err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		srv.log.Warn("唯一索引冲突", zap.String("op", op), zap.Error(err))
		return errcode.ErrConflict.New("%s already exists", srv.hooks.Kind())
	}
	for _, c := range []*errs.Class{
		&errcode.ErrNotFound, &errcode.ErrConflict, &errcode.ErrUnauthorized,
		&errcode.ErrValidation, &errcode.ErrInternal,
	} {
		if c.Has(err) {
			return err
		}
	}
	srv.log.Error("存储操作失败", zap.String("op", op), zap.Error(err))
	return errcode.ErrInternal.Wrap(ErrResource.Wrap(err))
}

func (srv *Service[M, C, U, F, P]) done(op string, id uuid.UUID, s Scope) {
	metrics.EntityOps.WithLabelValues(srv.hooks.Kind(), op).Inc()
	srv.log.Debug(op, zap.Stringer("id", id), zap.Stringer("actor", s.Actor))
}

// LockParent 共享锁确认上级存在，事务结束前上级不会被级联删除
func LockParent(tx *gorm.DB, m any, kind string, id uuid.UUID, conds ...any) error {
	return lockRow(tx, "SHARE", m, kind, id, conds...)
}

// LockParentExclusive 排他锁确认上级存在，同一上级下的写入按锁排队，
// 用于只能在应用层检查的唯一性约束
func LockParentExclusive(tx *gorm.DB, m any, kind string, id uuid.UUID, conds ...any) error {
	return lockRow(tx, "UPDATE", m, kind, id, conds...)
}

func lockRow(tx *gorm.DB, strength string, m any, kind string, id uuid.UUID, conds ...any) error {
	var found []uuid.UUID
	db := tx.Model(m).Clauses(clause.Locking{Strength: strength}).Where("id = ?", id)
	if len(conds) > 0 {
		db = db.Where(conds[0], conds[1:]...)
	}
	if err := db.Limit(1).Pluck("id", &found).Error; err != nil {
		return err
	}
	if len(found) == 0 {
		return errcode.NotFound(kind, id)
	}
	return nil
}
