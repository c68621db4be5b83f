package api

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"go-kanban/app/api/middleware"
)

// collection 集合路由同时注册带和不带结尾斜杠的路径，避免重定向
func collection(g *gin.RouterGroup, method string, handlers ...gin.HandlerFunc) {
	g.Handle(method, "", handlers...)
	g.Handle(method, "/", handlers...)
}

func ApiRoutes(engine *gin.Engine, s *Server) {
	healthCtl := HealthCtl{service: s.health}
	engine.GET("/", healthCtl.Banner)
	engine.GET("/metrics", gin.WrapH(promhttp.Handler()))
	h := engine.Group("/health")
	{
		h.GET("", healthCtl.Status)
		h.GET("/live", healthCtl.Live)
		h.GET("/ready", healthCtl.Ready)
	}

	api := engine.Group("/api", middleware.Auth(s.identity))

	verified := middleware.VerifiedAuth(s.identity)
	workspaceCtl := NewResourceCtl(s.workspace)
	workspaces := api.Group("/workspaces")
	{
		collection(workspaces, "POST", verified, workspaceCtl.Create)
		collection(workspaces, "GET", workspaceCtl.List)
		workspaces.GET("/:id", workspaceCtl.Get)
		workspaces.PATCH("/:id", workspaceCtl.Update)
		workspaces.DELETE("/:id", verified, workspaceCtl.Delete)
	}

	projectCtl := NewResourceCtl(s.project)
	ticketTypeCtl := NewResourceCtl(s.ticketType).Nested("id", "type_id")
	projects := api.Group("/projects")
	{
		collection(projects, "POST", projectCtl.Create)
		collection(projects, "GET", projectCtl.List)
		projects.GET("/:id", projectCtl.Get)
		projects.PATCH("/:id", projectCtl.Update)
		projects.DELETE("/:id", projectCtl.Delete)

		ticketTypes := projects.Group("/:id/ticket-types")
		collection(ticketTypes, "POST", ticketTypeCtl.Create)
		collection(ticketTypes, "GET", ticketTypeCtl.List)
		ticketTypes.GET("/:type_id", ticketTypeCtl.Get)
		ticketTypes.PATCH("/:type_id", ticketTypeCtl.Update)
		ticketTypes.DELETE("/:type_id", ticketTypeCtl.Delete)
	}

	ticketCtl := NewResourceCtl(s.ticket)
	tickets := api.Group("/tickets")
	{
		collection(tickets, "POST", ticketCtl.Create)
		collection(tickets, "GET", ticketCtl.List)
		tickets.GET("/:id", ticketCtl.Get)
		tickets.PATCH("/:id", ticketCtl.Update)
		tickets.DELETE("/:id", ticketCtl.Delete)
	}

	taskCtl := NewResourceCtl(s.task.Service)
	taskExtCtl := TaskCtl{service: s.task}
	tasks := api.Group("/tasks")
	{
		collection(tasks, "POST", taskCtl.Create)
		collection(tasks, "GET", taskCtl.List)
		tasks.GET("/:id", taskCtl.Get)
		tasks.PATCH("/:id", taskCtl.Update)
		tasks.PATCH("/:id/complete", taskExtCtl.Complete)
		tasks.DELETE("/:id", taskCtl.Delete)
	}

	notificationCtl := NewResourceCtl(s.notification.Service)
	notificationExtCtl := NotificationCtl{service: s.notification}
	notifications := api.Group("/notifications")
	{
		collection(notifications, "POST", notificationCtl.Create)
		collection(notifications, "GET", notificationExtCtl.List)
		notifications.GET("/unread-count", notificationExtCtl.UnreadCount)
		notifications.POST("/mark-all-read", notificationExtCtl.MarkAllRead)
		notifications.GET("/:id", notificationCtl.Get)
		notifications.PATCH("/:id/read", notificationExtCtl.MarkRead)
		notifications.DELETE("/:id", notificationCtl.Delete)
	}
}
