package api

import (
	"net/http"

	"MatchBoard/internal/service"

	"github.com/gin-contrib/pprof"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// NewRouter 组装全部路由。refresh 为 nil 时不注册刷新接口
func NewRouter(dashboard *service.DashboardService, refresh *service.RefreshService, logger *logrus.Logger) *gin.Engine {
	r := gin.Default()

	// 注册ppof 方便调试和监测性能问题
	pprof.Register(r)

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	NewDashboardHandler(dashboard, logger).Register(r)
	NewPageHandler(dashboard, logger).Register(r)
	if refresh != nil {
		r.POST("/api/jobs/refresh", NewRefreshHandler(refresh, logger).Refresh)
	}
	return r
}
