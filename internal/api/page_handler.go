package api

import (
	"net/http"

	"MatchBoard/internal/service"
	"MatchBoard/internal/views"

	"github.com/a-h/templ"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// PageHandler 服务端渲染的 HTML 页面
type PageHandler struct {
	dashboard *service.DashboardService
	logger    *logrus.Logger
}

// NewPageHandler 创建 PageHandler
func NewPageHandler(dashboard *service.DashboardService, logger *logrus.Logger) *PageHandler {
	return &PageHandler{dashboard: dashboard, logger: logger}
}

// Register 注册页面路由
func (h *PageHandler) Register(r gin.IRoutes) {
	r.GET("/", h.Matches)
	r.GET("/league", h.League)
	r.GET("/results", h.Results)
}

func (h *PageHandler) render(c *gin.Context, status int, component templ.Component) {
	templ.Handler(component, templ.WithStatus(status)).ServeHTTP(c.Writer, c.Request)
}

func (h *PageHandler) fail(c *gin.Context, status int, err error) {
	if status >= http.StatusInternalServerError {
		h.logger.WithError(err).WithField("path", c.Request.URL.Path).Error("页面渲染失败")
	}
	h.render(c, status, views.Error(err.Error()))
}

// Matches 比赛列表页
// GET /
func (h *PageHandler) Matches(c *gin.Context) {
	criteria, err := parseCriteria(c)
	if err != nil {
		h.fail(c, http.StatusBadRequest, err)
		return
	}
	ctx := c.Request.Context()
	opts, err := h.dashboard.Filters(ctx)
	if err != nil {
		h.fail(c, http.StatusInternalServerError, err)
		return
	}
	list, err := h.dashboard.RecentMatches(ctx, criteria, 0)
	if err != nil {
		h.fail(c, http.StatusInternalServerError, err)
		return
	}
	h.render(c, http.StatusOK, views.MatchesPage(opts, list))
}

// League 积分榜页
// GET /league
func (h *PageHandler) League(c *gin.Context) {
	criteria, err := parseCriteria(c)
	if err != nil {
		h.fail(c, http.StatusBadRequest, err)
		return
	}
	ctx := c.Request.Context()
	opts, err := h.dashboard.Filters(ctx)
	if err != nil {
		h.fail(c, http.StatusInternalServerError, err)
		return
	}
	view, err := h.dashboard.LeagueTable(ctx, criteria)
	if err != nil {
		h.fail(c, http.StatusInternalServerError, err)
		return
	}
	h.render(c, http.StatusOK, views.LeaguePage(opts, view))
}

// Results 胜负平与球队战绩页
// GET /results
func (h *PageHandler) Results(c *gin.Context) {
	criteria, err := parseCriteria(c)
	if err != nil {
		h.fail(c, http.StatusBadRequest, err)
		return
	}
	ctx := c.Request.Context()
	opts, err := h.dashboard.Filters(ctx)
	if err != nil {
		h.fail(c, http.StatusInternalServerError, err)
		return
	}
	results, err := h.dashboard.ResultsByTeam(ctx, criteria)
	if err != nil {
		h.fail(c, http.StatusInternalServerError, err)
		return
	}
	record, err := h.dashboard.TeamRecord(ctx, criteria)
	if err != nil {
		h.fail(c, http.StatusInternalServerError, err)
		return
	}
	h.render(c, http.StatusOK, views.ResultsPage(opts, results, record))
}
