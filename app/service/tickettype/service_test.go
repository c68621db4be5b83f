package tickettype

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"gorm.io/gorm"

	"go-kanban/app/internal/errcode"
	"go-kanban/app/internal/testutil"
	"go-kanban/app/model"
	"go-kanban/app/model/field"
	"go-kanban/app/service/common"
	"go-kanban/app/service/resource"
)

var actor = uuid.MustParse("12345678-1234-5678-1234-567812345678")

func newProject(t *testing.T, db *gorm.DB, deleted bool) resource.Scope {
	p := model.Project{Name: "p", WorkspaceId: uuid.New(), Status: field.ProjectActive, Priority: field.PriorityMedium, IsDeleted: deleted}
	p.StampCreated(actor)
	require.NoError(t, db.Create(&p).Error)
	return resource.Scope{Actor: actor, Parent: p.ID}
}

func intPtr(i int) *int {
	return &i
}

func TestCreateUniquePerProject(t *testing.T) {
	db := testutil.NewDB(t)
	srv := NewService(zaptest.NewLogger(t), db)
	ctx := context.Background()
	a, b := newProject(t, db, false), newProject(t, db, false)

	first, err := srv.Create(ctx, a, &CreateReq{TypeName: "Bug"})
	require.NoError(t, err)
	assert.Equal(t, a.Parent, first.ProjectId)

	_, err = srv.Create(ctx, b, &CreateReq{TypeName: "Bug"})
	require.NoError(t, err)

	_, err = srv.Create(ctx, a, &CreateReq{TypeName: "Bug"})
	assert.True(t, errcode.ErrConflict.Has(err))

	require.NoError(t, srv.Delete(ctx, a, first.ID))
	_, err = srv.Create(ctx, a, &CreateReq{TypeName: "Bug"})
	require.NoError(t, err)
}

func TestCreateParent(t *testing.T) {
	db := testutil.NewDB(t)
	srv := NewService(zaptest.NewLogger(t), db)
	ctx := context.Background()

	_, err := srv.Create(ctx, resource.Scope{Actor: actor, Parent: uuid.New()}, &CreateReq{TypeName: "Bug"})
	assert.True(t, errcode.ErrNotFound.Has(err))

	_, err = srv.Create(ctx, newProject(t, db, true), &CreateReq{TypeName: "Bug"})
	assert.True(t, errcode.ErrNotFound.Has(err))
}

func TestSoftDelete(t *testing.T) {
	db := testutil.NewDB(t)
	srv := NewService(zaptest.NewLogger(t), db)
	ctx := context.Background()
	s := newProject(t, db, false)
	tt, err := srv.Create(ctx, s, &CreateReq{TypeName: "Bug"})
	require.NoError(t, err)

	require.NoError(t, srv.Delete(ctx, s, tt.ID))
	err = srv.Delete(ctx, s, tt.ID)
	assert.True(t, errcode.ErrConflict.Has(err))

	got, err := srv.Get(ctx, s, tt.ID)
	require.NoError(t, err)
	assert.True(t, got.IsDeleted)
	assert.Equal(t, actor, *got.UpdatedBy)

	_, err = srv.Update(ctx, s, tt.ID, &UpdateReq{Icon: field.Some("bug")})
	assert.True(t, errcode.ErrNotFound.Has(err))

	other := newProject(t, db, false)
	_, err = srv.Get(ctx, other, tt.ID)
	assert.True(t, errcode.ErrNotFound.Has(err))
	assert.True(t, errcode.ErrNotFound.Has(srv.Delete(ctx, other, tt.ID)))
}

func TestRenameRechecksUnique(t *testing.T) {
	db := testutil.NewDB(t)
	srv := NewService(zaptest.NewLogger(t), db)
	ctx := context.Background()
	s := newProject(t, db, false)
	_, err := srv.Create(ctx, s, &CreateReq{TypeName: "Bug"})
	require.NoError(t, err)
	feat, err := srv.Create(ctx, s, &CreateReq{TypeName: "Feature"})
	require.NoError(t, err)

	name := "Bug"
	_, err = srv.Update(ctx, s, feat.ID, &UpdateReq{TypeName: &name})
	assert.True(t, errcode.ErrConflict.Has(err))

	name = "Feature"
	got, err := srv.Update(ctx, s, feat.ID, &UpdateReq{TypeName: &name, Color: field.Some("#FF5733")})
	require.NoError(t, err)
	assert.Equal(t, "#FF5733", *got.Color)
}

func TestListOrder(t *testing.T) {
	db := testutil.NewDB(t)
	srv := NewService(zaptest.NewLogger(t), db)
	ctx := context.Background()
	s := newProject(t, db, false)

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	rows := []struct {
		name  string
		order *int
	}{
		{"none-early", nil},
		{"two", intPtr(2)},
		{"zero", intPtr(0)},
		{"none-late", nil},
		{"two-late", intPtr(2)},
	}
	for i, r := range rows {
		m := model.TicketType{ProjectId: s.Parent, TypeName: r.name, DisplayOrder: r.order}
		m.StampCreated(actor)
		m.CreatedAt = base.Add(time.Duration(i) * time.Minute)
		require.NoError(t, db.Create(&m).Error)
	}
	deleted := model.TicketType{ProjectId: s.Parent, TypeName: "gone", IsDeleted: true}
	deleted.StampCreated(actor)
	require.NoError(t, db.Create(&deleted).Error)

	total, list, err := srv.List(ctx, s, common.PageReq{}, &ListReq{})
	require.NoError(t, err)
	assert.EqualValues(t, 5, total)
	var names []string
	for _, m := range list {
		names = append(names, m.TypeName)
	}
	assert.Equal(t, []string{"zero", "two", "two-late", "none-early", "none-late"}, names)

	total, list, err = srv.List(ctx, s, common.PageReq{Limit: 2}, &ListReq{IncludeDeleted: true})
	require.NoError(t, err)
	assert.EqualValues(t, 6, total)
	assert.Len(t, list, 2)
}
