package migration

import (
	"go.uber.org/zap"
	"gorm.io/gorm"

	"go-kanban/app/model"
)

type Migration struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewMigration(log *zap.Logger, db *gorm.DB) *Migration {
	return &Migration{
		db:  db,
		log: log,
	}
}

func (m *Migration) Setup() error {
	return m.createTables()
}

// Models 全部表结构，迁移时不创建外键
func Models() []any {
	return []any{
		&model.Workspace{},
		&model.Project{},
		&model.Ticket{},
		&model.Task{},
		&model.TicketType{},
		&model.ProjectRole{},
		&model.ProjectMember{},
		&model.TicketMember{},
		&model.TaskMember{},
		&model.Comment{},
		&model.Attachment{},
		&model.Notification{},
	}
}

func (m *Migration) createTables() error {
	err := m.db.AutoMigrate(Models()...)
	if err != nil {
		m.log.Error("创建表失败", zap.Error(err))
		return err
	}
	m.log.Info("数据表迁移完成", zap.Int("tables", len(Models())))
	return nil
}
