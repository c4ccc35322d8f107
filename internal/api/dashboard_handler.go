package api

import (
	"errors"
	"net/http"
	"strconv"

	"MatchBoard/internal/analytics"
	"MatchBoard/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// DashboardHandler 提供给前端图表的 JSON 接口
type DashboardHandler struct {
	dashboard *service.DashboardService
	logger    *logrus.Logger
}

// NewDashboardHandler 创建 DashboardHandler
func NewDashboardHandler(dashboard *service.DashboardService, logger *logrus.Logger) *DashboardHandler {
	return &DashboardHandler{dashboard: dashboard, logger: logger}
}

// Register 注册 /api 下的只读路由
func (h *DashboardHandler) Register(r gin.IRoutes) {
	r.GET("/api/filters", h.Filters)
	r.GET("/api/matches", h.ListMatches)
	r.GET("/api/matches/:match_id/report", h.MatchReport)
	r.GET("/api/league-table", h.LeagueTable)
	r.GET("/api/results-by-team", h.ResultsByTeam)
	r.GET("/api/goals-by-location", h.GoalsByLocation)
	r.GET("/api/team-record", h.TeamRecord)
}

func (h *DashboardHandler) fail(c *gin.Context, op string, err error) {
	status := http.StatusInternalServerError
	if errors.Is(err, service.ErrMatchNotFound) {
		status = http.StatusNotFound
	}
	h.logger.WithError(err).WithField("op", op).Error("请求处理失败")
	c.JSON(status, gin.H{"error": err.Error()})
}

func (h *DashboardHandler) criteria(c *gin.Context) (analytics.Criteria, bool) {
	criteria, err := parseCriteria(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return criteria, false
	}
	return criteria, true
}

// Filters 下拉框选项
// GET /api/filters
func (h *DashboardHandler) Filters(c *gin.Context) {
	opts, err := h.dashboard.Filters(c.Request.Context())
	if err != nil {
		h.fail(c, "Filters", err)
		return
	}
	c.JSON(http.StatusOK, opts)
}

// ListMatches 筛选后的比赛列表
// GET /api/matches?team=U10%20Reds&from=2024-09-01&to=2024-12-31&limit=20
func (h *DashboardHandler) ListMatches(c *gin.Context) {
	criteria, ok := h.criteria(c)
	if !ok {
		return
	}
	limit, err := parseLimit(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	list, err := h.dashboard.RecentMatches(c.Request.Context(), criteria, limit)
	if err != nil {
		h.fail(c, "ListMatches", err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// MatchReport 比赛报告
// GET /api/matches/:match_id/report
func (h *DashboardHandler) MatchReport(c *gin.Context) {
	matchID, err := strconv.ParseInt(c.Param("match_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "match_id 必须为整数"})
		return
	}
	report, err := h.dashboard.MatchReport(c.Request.Context(), matchID)
	if err != nil {
		h.fail(c, "MatchReport", err)
		return
	}
	c.JSON(http.StatusOK, report)
}

// LeagueTable 积分榜
// GET /api/league-table
func (h *DashboardHandler) LeagueTable(c *gin.Context) {
	criteria, ok := h.criteria(c)
	if !ok {
		return
	}
	view, err := h.dashboard.LeagueTable(c.Request.Context(), criteria)
	if err != nil {
		h.fail(c, "LeagueTable", err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// ResultsByTeam 按球队的胜负平
// GET /api/results-by-team
func (h *DashboardHandler) ResultsByTeam(c *gin.Context) {
	criteria, ok := h.criteria(c)
	if !ok {
		return
	}
	view, err := h.dashboard.ResultsByTeam(c.Request.Context(), criteria)
	if err != nil {
		h.fail(c, "ResultsByTeam", err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// GoalsByLocation 场地进球地图数据
// GET /api/goals-by-location
func (h *DashboardHandler) GoalsByLocation(c *gin.Context) {
	criteria, ok := h.criteria(c)
	if !ok {
		return
	}
	view, err := h.dashboard.GoalsByLocation(c.Request.Context(), criteria)
	if err != nil {
		h.fail(c, "GoalsByLocation", err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// TeamRecord 球队战绩
// GET /api/team-record
func (h *DashboardHandler) TeamRecord(c *gin.Context) {
	criteria, ok := h.criteria(c)
	if !ok {
		return
	}
	view, err := h.dashboard.TeamRecord(c.Request.Context(), criteria)
	if err != nil {
		h.fail(c, "TeamRecord", err)
		return
	}
	c.JSON(http.StatusOK, view)
}
