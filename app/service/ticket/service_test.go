package ticket

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"gorm.io/gorm"

	"go-kanban/app/internal/errcode"
	"go-kanban/app/internal/testutil"
	"go-kanban/app/model"
	"go-kanban/app/model/field"
	"go-kanban/app/service/cascade"
	"go-kanban/app/service/common"
	"go-kanban/app/service/resource"
)

var scope = resource.Scope{Actor: uuid.MustParse("12345678-1234-5678-1234-567812345678")}

type fixture struct {
	srv      *Service
	db       *gorm.DB
	project  uuid.UUID
	other    uuid.UUID
	liveType uuid.UUID
	deadType uuid.UUID
}

func setup(t *testing.T) fixture {
	log := zaptest.NewLogger(t)
	db := testutil.NewDB(t)
	ws := model.Workspace{Name: "ws"}
	ws.StampCreated(scope.Actor)
	require.NoError(t, db.Create(&ws).Error)

	f := fixture{srv: NewService(log, db, cascade.New(log)), db: db}
	for _, id := range []*uuid.UUID{&f.project, &f.other} {
		p := model.Project{Name: "p", WorkspaceId: ws.ID, Status: field.ProjectActive, Priority: field.PriorityMedium}
		p.StampCreated(scope.Actor)
		require.NoError(t, db.Create(&p).Error)
		*id = p.ID
	}
	for _, tc := range []struct {
		id      *uuid.UUID
		deleted bool
	}{{&f.liveType, false}, {&f.deadType, true}} {
		tt := model.TicketType{ProjectId: f.project, TypeName: uuid.NewString(), IsDeleted: tc.deleted}
		tt.StampCreated(scope.Actor)
		require.NoError(t, db.Create(&tt).Error)
		*tc.id = tt.ID
	}
	return f
}

func TestCreate(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	_, err := f.srv.Create(ctx, scope, &CreateReq{Title: "x", ProjectId: uuid.New()})
	assert.True(t, errcode.ErrNotFound.Has(err))

	tk, err := f.srv.Create(ctx, scope, &CreateReq{Title: "x", ProjectId: f.project, TicketTypeId: &f.liveType})
	require.NoError(t, err)
	assert.Equal(t, field.TicketOpen, tk.Status)
	assert.Equal(t, field.PriorityMedium, tk.Priority)
	assert.Equal(t, f.project, tk.ProjectId)

	_, err = f.srv.Create(ctx, scope, &CreateReq{Title: "x", ProjectId: f.project, TicketTypeId: &f.deadType})
	assert.True(t, errcode.ErrNotFound.Has(err))

	_, err = f.srv.Create(ctx, scope, &CreateReq{Title: "x", ProjectId: f.other, TicketTypeId: &f.liveType})
	assert.True(t, errcode.ErrNotFound.Has(err))

	child, err := f.srv.Create(ctx, scope, &CreateReq{Title: "child", ProjectId: f.project, ParentTicket: &tk.ID})
	require.NoError(t, err)
	assert.Equal(t, tk.ID, *child.ParentTicket)

	_, err = f.srv.Create(ctx, scope, &CreateReq{Title: "x", ProjectId: f.other, ParentTicket: &tk.ID})
	assert.True(t, errcode.ErrNotFound.Has(err))
}

func TestUpdate(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	assignee := uuid.New()
	tk, err := f.srv.Create(ctx, scope, &CreateReq{Title: "x", ProjectId: f.project, AssigneeId: &assignee})
	require.NoError(t, err)

	review := field.TicketReview
	got, err := f.srv.Update(ctx, scope, tk.ID, &UpdateReq{Status: &review, TicketTypeId: field.Some(f.liveType)})
	require.NoError(t, err)
	assert.Equal(t, field.TicketReview, got.Status)
	assert.Equal(t, f.liveType, *got.TicketTypeId)
	assert.Equal(t, assignee, *got.AssigneeId)

	got, err = f.srv.Update(ctx, scope, tk.ID, &UpdateReq{AssigneeId: field.Null[uuid.UUID]()})
	require.NoError(t, err)
	assert.Nil(t, got.AssigneeId)

	_, err = f.srv.Update(ctx, scope, tk.ID, &UpdateReq{TicketTypeId: field.Some(f.deadType)})
	assert.True(t, errcode.ErrNotFound.Has(err))

	_, err = f.srv.Update(ctx, scope, tk.ID, &UpdateReq{ParentTicket: field.Some(tk.ID)})
	assert.True(t, errcode.ErrValidation.Has(err))
}

func TestList(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	for _, req := range []CreateReq{
		{Title: "a", ProjectId: f.project, Status: field.TicketBlocked},
		{Title: "b", ProjectId: f.project},
		{Title: "c", ProjectId: f.other},
	} {
		req := req
		_, err := f.srv.Create(ctx, scope, &req)
		require.NoError(t, err)
	}

	total, list, err := f.srv.List(ctx, scope, common.PageReq{}, &ListReq{ProjectId: f.project.String()})
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	assert.Len(t, list, 2)

	total, _, err = f.srv.List(ctx, scope, common.PageReq{}, &ListReq{Status: field.TicketBlocked})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
}

func TestDeleteCascades(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	tk, err := f.srv.Create(ctx, scope, &CreateReq{Title: "x", ProjectId: f.project})
	require.NoError(t, err)
	task := model.Task{Title: "k", TicketId: tk.ID, Status: field.TaskTodo}
	task.StampCreated(scope.Actor)
	require.NoError(t, f.db.Create(&task).Error)

	require.NoError(t, f.srv.Delete(ctx, scope, tk.ID))
	var n int64
	require.NoError(t, f.db.Model(&model.Task{}).Where("id = ?", task.ID).Count(&n).Error)
	assert.Zero(t, n)
	_, err = f.srv.Get(ctx, scope, tk.ID)
	assert.True(t, errcode.ErrNotFound.Has(err))
}
