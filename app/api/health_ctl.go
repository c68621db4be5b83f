package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"go-kanban/app/service/health"
)

type HealthCtl struct {
	service *health.Service
}

func (ctl *HealthCtl) Status(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, ctl.service.Status())
}

func (ctl *HealthCtl) Live(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, ctl.service.Live())
}

// Ready 任一依赖不可用返回 503
func (ctl *HealthCtl) Ready(ctx *gin.Context) {
	res, ok := ctl.service.Ready(ctx.Request.Context())
	code := http.StatusOK
	if !ok {
		code = http.StatusServiceUnavailable
	}
	ctx.JSON(code, res)
}

// Banner GET /
func (ctl *HealthCtl) Banner(ctx *gin.Context) {
	status := ctl.service.Status()
	ctx.JSON(http.StatusOK, gin.H{
		"message": status.Service + " API",
		"version": status.Version,
		"health":  "/health",
	})
}
