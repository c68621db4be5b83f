package tickettype

import (
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"go-kanban/app/internal/errcode"
	"go-kanban/app/model"
	"go-kanban/app/service/common"
	"go-kanban/app/service/resource"
)

// Service 工单类型挂在项目路径下，Scope.Parent 为项目 id
type Service = resource.Service[model.TicketType, CreateReq, UpdateReq, ListReq, *model.TicketType]

func NewService(log *zap.Logger, db *gorm.DB) *Service {
	return resource.New[model.TicketType, CreateReq, UpdateReq, ListReq](db, log, &hooks{})
}

type hooks struct{}

func (h *hooks) Kind() string {
	return "Ticket type"
}

// Restrict 只限定项目，Get/Delete 能看到已删除的类型
func (h *hooks) Restrict(db *gorm.DB, s resource.Scope) *gorm.DB {
	return db.Where("project_id = ?", s.Parent)
}

// ValidateParent 项目行加排他锁，同一项目的类型写入串行，名称检查不会并发漏判
func (h *hooks) ValidateParent(tx *gorm.DB, s resource.Scope, _ *CreateReq) error {
	return lockProject(tx, s.Parent)
}

func lockProject(tx *gorm.DB, id uuid.UUID) error {
	return resource.LockParentExclusive(tx, &model.Project{}, "Project", id, "is_deleted = ?", false)
}

// CheckUnique 同一项目内未删除的类型名唯一，调用方需持有项目行锁
func (h *hooks) CheckUnique(tx *gorm.DB, m *model.TicketType) error {
	var n int64
	err := tx.Model(&model.TicketType{}).
		Where("project_id = ? AND type_name = ? AND is_deleted = ? AND id <> ?", m.ProjectId, m.TypeName, false, m.ID).
		Count(&n).Error
	if err != nil {
		return err
	}
	if n > 0 {
		return errcode.ErrConflict.New("Ticket type '%s' already exists in this project", m.TypeName)
	}
	return nil
}

func (h *hooks) Build(s resource.Scope, req *CreateReq) *model.TicketType {
	return &model.TicketType{
		ProjectId:    s.Parent,
		TypeName:     req.TypeName,
		Description:  req.Description,
		Color:        req.Color,
		Icon:         req.Icon,
		DisplayOrder: req.DisplayOrder,
	}
}

func (h *hooks) Apply(tx *gorm.DB, m *model.TicketType, req *UpdateReq) (recheck bool, err error) {
	if m.IsDeleted {
		return false, errcode.NotFound("Ticket type", m.ID)
	}
	if err = common.NotBlank("type_name", req.TypeName); err != nil {
		return
	}
	if req.TypeName != nil && *req.TypeName != m.TypeName {
		// 改名与新建争用同一把项目锁
		if err = resource.LockParentExclusive(tx, &model.Project{}, "Project", m.ProjectId); err != nil {
			return
		}
		m.TypeName = *req.TypeName
		recheck = true
	}
	if req.Description.Set {
		m.Description = req.Description.Ptr()
	}
	if req.Color.Set {
		m.Color = req.Color.Ptr()
	}
	if req.Icon.Set {
		m.Icon = req.Icon.Ptr()
	}
	if req.DisplayOrder.Set {
		m.DisplayOrder = req.DisplayOrder.Ptr()
	}
	return
}

func (h *hooks) Filter(db *gorm.DB, f *ListReq) (*gorm.DB, error) {
	if !f.IncludeDeleted {
		db = db.Where("is_deleted = ?", false)
	}
	return db, nil
}

// Order display_order 升序，空值排最后，再按创建时间升序
func (h *hooks) Order(db *gorm.DB) *gorm.DB {
	return db.Order("display_order IS NULL").Order("display_order ASC").Order("created_at ASC")
}

// Delete 软删除，重复删除返回冲突
func (h *hooks) Delete(tx *gorm.DB, s resource.Scope, id uuid.UUID) error {
	m := model.TicketType{}
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ? AND project_id = ?", id, s.Parent).Take(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errcode.NotFound("Ticket type", id)
	}
	if err != nil {
		return err
	}
	if m.IsDeleted {
		return errcode.ErrConflict.New("Ticket type %s is already deleted", id)
	}
	m.IsDeleted = true
	m.StampUpdated(s.Actor)
	return tx.Save(&m).Error
}
