package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"gorm.io/gorm"

	"go-kanban/app/global"
	"go-kanban/app/internal/testutil"
	"go-kanban/app/model"
	"go-kanban/app/pkg/jwt"
)

type fakeCache struct {
	err error
}

func (f fakeCache) Ping(context.Context) error {
	return f.err
}

type env struct {
	t       *testing.T
	handler http.Handler
	db      *gorm.DB
	jwt     *jwt.Jwt
	user    uuid.UUID
	token   string
	// userStatus 模拟用户服务返回的状态码
	userStatus int
}

func newEnv(t *testing.T, cacheErr error) *env {
	gin.SetMode(gin.TestMode)
	e := &env{t: t, db: testutil.NewDB(t), jwt: testutil.NewJwt(t), user: uuid.New(), userStatus: http.StatusOK}
	e.token = testutil.Token(t, e.jwt, e.user)

	users := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(e.userStatus)
	}))
	t.Cleanup(users.Close)

	conf := &global.Config{}
	conf.App.Name = "Kanban Service"
	conf.App.Version = "1.0.0"
	conf.App.Env = "test"
	conf.Api.CorsOrigins = "http://localhost:3000"
	conf.Identity.BaseUrl = users.URL
	conf.Identity.Timeout = time.Second
	conf.Identity.FailOpen = true

	srv := NewServer(conf, zaptest.NewLogger(t), e.db, fakeCache{err: cacheErr}, e.jwt)
	handler, err := srv.Handler()
	require.NoError(t, err)
	e.handler = handler
	return e
}

func (e *env) do(method, path, token string, body any) *httptest.ResponseRecorder {
	e.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(e.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	e.handler.ServeHTTP(w, req)
	return w
}

// create 断言 201 并返回 id
func (e *env) create(path string, body any) string {
	e.t.Helper()
	w := e.do("POST", path, e.token, body)
	require.Equal(e.t, http.StatusCreated, w.Code, w.Body.String())
	var res struct {
		Id string `json:"id"`
	}
	require.NoError(e.t, json.Unmarshal(w.Body.Bytes(), &res))
	return res.Id
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	res := map[string]any{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res), w.Body.String())
	return res
}

func TestUnauthorizedBeforeLookup(t *testing.T) {
	e := newEnv(t, nil)
	// 表不存在时任何实体查询都会 500，401 说明认证先于查询
	require.NoError(t, e.db.Migrator().DropTable(&model.Workspace{}, &model.Task{}))

	expired, _, err := e.jwt.CreateToken(e.user.String(), -time.Minute)
	require.NoError(t, err)
	foreign, err := jwt.NewJWT(&jwt.Config{Secret: "other-secret", Algorithm: "HS512"})
	require.NoError(t, err)
	tampered := testutil.Token(t, foreign, e.user)

	for _, token := range []string{"", expired, tampered, "garbage"} {
		w := e.do("GET", "/api/workspaces/"+uuid.NewString(), token, nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "Bearer", w.Header().Get("WWW-Authenticate"))
		assert.Contains(t, decode(t, w), "detail")

		w = e.do("DELETE", "/api/tasks/"+uuid.NewString(), token, nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	}
}

func TestWorkspaceVerifiedCreate(t *testing.T) {
	e := newEnv(t, nil)

	e.userStatus = http.StatusNotFound
	w := e.do("POST", "/api/workspaces/", e.token, map[string]any{"name": "alpha"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	e.userStatus = http.StatusServiceUnavailable
	w = e.do("POST", "/api/workspaces/", e.token, map[string]any{"name": "alpha"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	res := decode(t, w)
	assert.Equal(t, "alpha", res["name"])
	assert.Equal(t, e.user.String(), res["created_by"])

	e.userStatus = http.StatusOK
	w = e.do("POST", "/api/workspaces", e.token, map[string]any{"name": "alpha"})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "Workspace 'alpha' already exists", decode(t, w)["detail"])
}

func TestValidation(t *testing.T) {
	e := newEnv(t, nil)
	cases := []struct {
		path string
		body any
	}{
		{"/api/workspaces/", map[string]any{"name": ""}},
		{"/api/workspaces/", map[string]any{"description": "x"}},
		{"/api/projects/", map[string]any{"name": "p", "workspace_id": uuid.NewString(), "status": "DONE"}},
		{"/api/projects/", map[string]any{"name": "p", "workspace_id": "not-a-uuid"}},
		{"/api/notifications/", map[string]any{"user_id": uuid.NewString(), "notification_type": "NOPE", "title": "x"}},
	}
	for _, tc := range cases {
		w := e.do("POST", tc.path, e.token, tc.body)
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code, "%s %v: %s", tc.path, tc.body, w.Body.String())
	}

	for _, query := range []string{"limit=500", "limit=0", "limit=-1", "offset=-1", "limit=abc"} {
		w := e.do("GET", "/api/projects/?"+query, e.token, nil)
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code, query)
		w = e.do("GET", "/api/notifications/?"+query, e.token, nil)
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code, query)
	}
	w := e.do("GET", "/api/projects/?limit=1&offset=0", e.token, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	w = e.do("GET", "/api/projects/not-a-uuid", e.token, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestHierarchyFlow(t *testing.T) {
	e := newEnv(t, nil)

	w := e.do("POST", "/api/projects/", e.token, map[string]any{"name": "p", "workspace_id": uuid.NewString()})
	assert.Equal(t, http.StatusNotFound, w.Code)

	wsId := e.create("/api/workspaces/", map[string]any{"name": "alpha"})
	projectId := e.create("/api/projects/", map[string]any{"name": "board", "workspace_id": wsId, "start_date": "2024-03-01"})
	typeId := e.create("/api/projects/"+projectId+"/ticket-types/", map[string]any{"type_name": "Bug", "color": "#FF5733", "display_order": 1})
	ticketId := e.create("/api/tickets/", map[string]any{"title": "login fails", "project_id": projectId, "ticket_type_id": typeId})
	taskId := e.create("/api/tasks/", map[string]any{"title": "reproduce", "ticket_id": ticketId})

	w = e.do("GET", "/api/projects/"+projectId, e.token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, wsId, decode(t, w)["workspace_id"])
	assert.Equal(t, "2024-03-01", decode(t, w)["start_date"])

	w = e.do("PATCH", "/api/tasks/"+taskId+"/complete", e.token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	res := decode(t, w)
	assert.Equal(t, "DONE", res["status"])
	assert.NotNil(t, res["completed_at"])
	assert.Equal(t, e.user.String(), res["updated_by"])

	w = e.do("PATCH", "/api/tasks/"+taskId+"/complete", e.token, nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = e.do("PATCH", "/api/tickets/"+ticketId, e.token, map[string]any{"status": "IN_PROGRESS", "description": nil})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "IN_PROGRESS", decode(t, w)["status"])

	w = e.do("GET", "/api/tickets/?project_id="+projectId+"&limit=1", e.token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	page := decode(t, w)
	assert.EqualValues(t, 1, page["total"])
	assert.EqualValues(t, 1, page["limit"])
	assert.EqualValues(t, 0, page["offset"])

	w = e.do("DELETE", "/api/workspaces/"+wsId, e.token, nil)
	require.Equal(t, http.StatusNoContent, w.Code)
	for _, path := range []string{
		"/api/workspaces/" + wsId,
		"/api/projects/" + projectId,
		"/api/tickets/" + ticketId,
		"/api/tasks/" + taskId,
	} {
		w = e.do("GET", path, e.token, nil)
		assert.Equal(t, http.StatusNotFound, w.Code, path)
	}
	// 工单类型不参与级联
	var n int64
	require.NoError(t, e.db.Model(&model.TicketType{}).Where("id = ?", typeId).Count(&n).Error)
	assert.EqualValues(t, 1, n)
}

func TestTicketTypeRoutes(t *testing.T) {
	e := newEnv(t, nil)
	wsId := e.create("/api/workspaces/", map[string]any{"name": "alpha"})
	projectId := e.create("/api/projects/", map[string]any{"name": "board", "workspace_id": wsId})
	base := "/api/projects/" + projectId + "/ticket-types/"
	typeId := e.create(base, map[string]any{"type_name": "Bug"})

	w := e.do("POST", base, e.token, map[string]any{"type_name": "Bug"})
	assert.Equal(t, http.StatusConflict, w.Code)
	w = e.do("POST", base, e.token, map[string]any{"type_name": "Task", "color": "red"})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = e.do("DELETE", base+typeId, e.token, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	w = e.do("DELETE", base+typeId, e.token, nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = e.do("GET", base, e.token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 0, decode(t, w)["total"])
	w = e.do("GET", base+"?include_deleted=true", e.token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 1, decode(t, w)["total"])

	w = e.do("GET", "/api/projects/"+uuid.NewString()+"/ticket-types/"+typeId, e.token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestNotificationRoutes(t *testing.T) {
	e := newEnv(t, nil)
	other := uuid.New()
	id := e.create("/api/notifications/", map[string]any{
		"user_id": e.user, "notification_type": "MENTION", "title": "you were mentioned",
		"extra_data": map[string]any{"ticket": "T-1"},
	})
	e.create("/api/notifications/", map[string]any{"user_id": e.user, "notification_type": "TICKET_CREATED", "title": "new"})
	e.create("/api/notifications/", map[string]any{"user_id": other, "notification_type": "MENTION", "title": "not yours"})

	w := e.do("GET", "/api/notifications/unread-count", e.token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 2, decode(t, w)["unread_count"])

	w = e.do("PATCH", "/api/notifications/"+id+"/read", e.token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	first := decode(t, w)
	assert.Equal(t, true, first["is_read"])
	w = e.do("PATCH", "/api/notifications/"+id+"/read", e.token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	second := decode(t, w)
	assert.Equal(t, first["id"], second["id"])
	assert.Equal(t, true, second["is_read"])
	firstAt, err := time.Parse(time.RFC3339Nano, first["read_at"].(string))
	require.NoError(t, err)
	secondAt, err := time.Parse(time.RFC3339Nano, second["read_at"].(string))
	require.NoError(t, err)
	assert.True(t, firstAt.Equal(secondAt))

	w = e.do("GET", "/api/notifications/?is_read=false", e.token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	page := decode(t, w)
	assert.EqualValues(t, 1, page["total"])
	assert.EqualValues(t, 1, page["unread_count"])

	w = e.do("POST", "/api/notifications/mark-all-read", e.token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 1, decode(t, w)["count"])

	otherToken := testutil.Token(t, e.jwt, other)
	w = e.do("GET", "/api/notifications/unread-count", otherToken, nil)
	assert.EqualValues(t, 1, decode(t, w)["unread_count"])
	w = e.do("GET", "/api/notifications/"+id, otherToken, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = e.do("DELETE", "/api/notifications/"+id, e.token, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestHealth(t *testing.T) {
	e := newEnv(t, nil)
	w := e.do("GET", "/health", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, map[string]any{"status": "healthy", "service": "Kanban Service", "version": "1.0.0", "environment": "test"}, decode(t, w))

	w = e.do("GET", "/health/live", "", nil)
	assert.Equal(t, "alive", decode(t, w)["status"])

	w = e.do("GET", "/health/ready", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ready", decode(t, w)["status"])

	w = e.do("GET", "/metrics", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "kanban_http_requests_total")

	w = e.do("GET", "/", "", nil)
	assert.Equal(t, "/health", decode(t, w)["health"])
}

func TestHealthNotReady(t *testing.T) {
	e := newEnv(t, errors.New("dial tcp: connection refused"))
	w := e.do("GET", "/health/ready", "", nil)
	require.Equal(t, http.StatusServiceUnavailable, w.Code)
	res := decode(t, w)
	assert.Equal(t, "not_ready", res["status"])
	checks := res["checks"].(map[string]any)
	assert.Equal(t, "healthy", checks["database"])
	assert.Equal(t, "unhealthy: dial tcp: connection refused", checks["redis"])
}

func TestCors(t *testing.T) {
	e := newEnv(t, nil)
	req := httptest.NewRequest("OPTIONS", "/api/workspaces/", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", "POST")
	w := httptest.NewRecorder()
	e.handler.ServeHTTP(w, req)
	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))
}
