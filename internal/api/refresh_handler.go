package api

import (
	"errors"
	"net/http"

	"MatchBoard/internal/jobs"
	"MatchBoard/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// RefreshHandler 手动触发数仓刷新
type RefreshHandler struct {
	refresh *service.RefreshService
	logger  *logrus.Logger
}

// NewRefreshHandler 创建 RefreshHandler
func NewRefreshHandler(refresh *service.RefreshService, logger *logrus.Logger) *RefreshHandler {
	return &RefreshHandler{refresh: refresh, logger: logger}
}

// Refresh 触发 ETL 任务并清空快照
// POST /api/jobs/refresh
func (h *RefreshHandler) Refresh(c *gin.Context) {
	run, err := h.refresh.Refresh(c.Request.Context())
	if err != nil {
		status := http.StatusBadGateway
		if errors.Is(err, jobs.ErrNotConfigured) {
			status = http.StatusServiceUnavailable
		}
		h.logger.WithError(err).Error("Refresh failed")
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusAccepted, run)
}
