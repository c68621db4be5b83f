package notification

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"go-kanban/app/internal/errcode"
	"go-kanban/app/model"
	"go-kanban/app/service/common"
	"go-kanban/app/service/resource"
)

// Service 通知按接收人隔离，Scope.Actor 即当前用户
type Service struct {
	*resource.Service[model.Notification, CreateReq, UpdateReq, ListReq, *model.Notification]
	now func() time.Time
}

func NewService(log *zap.Logger, db *gorm.DB) *Service {
	return &Service{
		Service: resource.New[model.Notification, CreateReq, UpdateReq, ListReq](db, log, &hooks{}),
		now:     time.Now,
	}
}

// ListWithUnread 列表附带当前用户的未读总数
func (srv *Service) ListWithUnread(ctx context.Context, s resource.Scope, page common.PageReq, f *ListReq) (*ListRes, error) {
	page.Normalize()
	total, items, err := srv.List(ctx, s, page, f)
	if err != nil {
		return nil, err
	}
	unread, err := srv.UnreadCount(ctx, s)
	if err != nil {
		return nil, err
	}
	return &ListRes{
		Total:       total,
		UnreadCount: unread,
		Items:       items,
		Limit:       page.Limit,
		Offset:      page.Offset,
	}, nil
}

func (srv *Service) UnreadCount(ctx context.Context, s resource.Scope) (n int64, err error) {
	err = srv.DB(ctx).Model(&model.Notification{}).
		Where("user_id = ? AND is_read = ?", s.Actor, false).Count(&n).Error
	if err != nil {
		return 0, errcode.ErrInternal.Wrap(err)
	}
	return
}

// MarkRead 幂等：已读的通知原样返回
func (srv *Service) MarkRead(ctx context.Context, s resource.Scope, id uuid.UUID) (*ReadRes, error) {
	m, err := srv.Get(ctx, s, id)
	if err != nil {
		return nil, err
	}
	if !m.IsRead {
		m, err = srv.Mutate(ctx, s, id, "read", func(m *model.Notification) error {
			if !m.IsRead {
				now := srv.now().UTC()
				m.IsRead = true
				m.ReadAt = &now
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	return &ReadRes{Id: m.ID, IsRead: m.IsRead, ReadAt: m.ReadAt}, nil
}

// MarkAllRead 只影响当前用户的未读通知
func (srv *Service) MarkAllRead(ctx context.Context, s resource.Scope) (*MarkAllRes, error) {
	r := srv.DB(ctx).Model(&model.Notification{}).
		Where("user_id = ? AND is_read = ?", s.Actor, false).
		Updates(map[string]any{
			"is_read":    true,
			"read_at":    srv.now().UTC(),
			"updated_by": s.Actor,
		})
	if r.Error != nil {
		return nil, errcode.ErrInternal.Wrap(r.Error)
	}
	return &MarkAllRes{
		Message: fmt.Sprintf("%d notifications marked as read", r.RowsAffected),
		Count:   r.RowsAffected,
	}, nil
}

type hooks struct{}

func (h *hooks) Kind() string {
	return "Notification"
}

func (h *hooks) Restrict(db *gorm.DB, s resource.Scope) *gorm.DB {
	return db.Where("user_id = ?", s.Actor)
}

func (h *hooks) ValidateParent(_ *gorm.DB, _ resource.Scope, req *CreateReq) error {
	raw := bytes.TrimSpace(req.ExtraData)
	if len(raw) > 0 && !bytes.Equal(raw, []byte("null")) && raw[0] != '{' {
		return errcode.ErrValidation.New("extra_data must be a JSON object")
	}
	return nil
}

func (h *hooks) CheckUnique(*gorm.DB, *model.Notification) error {
	return nil
}

func (h *hooks) Build(_ resource.Scope, req *CreateReq) *model.Notification {
	m := &model.Notification{
		UserId:           req.UserId,
		NotificationType: req.NotificationType,
		Title:            req.Title,
		Content:          req.Content,
		TargetType:       req.TargetType,
		TargetId:         req.TargetId,
	}
	if raw := bytes.TrimSpace(req.ExtraData); len(raw) > 0 && !bytes.Equal(raw, []byte("null")) {
		m.ExtraData = req.ExtraData
	}
	return m
}

func (h *hooks) Apply(*gorm.DB, *model.Notification, *UpdateReq) (bool, error) {
	return false, nil
}

func (h *hooks) Filter(db *gorm.DB, f *ListReq) (*gorm.DB, error) {
	if f.IsRead != nil {
		db = db.Where("is_read = ?", *f.IsRead)
	}
	if f.NotificationType != "" {
		db = db.Where("notification_type = ?", f.NotificationType)
	}
	return db, nil
}

func (h *hooks) Order(db *gorm.DB) *gorm.DB {
	return db.Order("created_at DESC")
}

// Delete 硬删除，只能删除自己的通知
func (h *hooks) Delete(tx *gorm.DB, s resource.Scope, id uuid.UUID) error {
	r := tx.Where("id = ? AND user_id = ?", id, s.Actor).Delete(&model.Notification{})
	if r.Error != nil {
		return r.Error
	}
	if r.RowsAffected == 0 {
		return errcode.NotFound("Notification", id)
	}
	return nil
}
