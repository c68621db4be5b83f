package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"go-kanban/app/metrics"
)

// Metrics 按路由模板统计，未匹配的路由归为 unmatched
func Metrics() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		start := time.Now()
		ctx.Next()
		route := ctx.FullPath()
		if route == "" {
			route = "unmatched"
		}
		metrics.HttpRequests.WithLabelValues(ctx.Request.Method, route, strconv.Itoa(ctx.Writer.Status())).Inc()
		metrics.HttpDuration.WithLabelValues(ctx.Request.Method, route).Observe(time.Since(start).Seconds())
	}
}
