package api

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"MatchBoard/internal/analytics"

	"github.com/gin-gonic/gin"
)

const dateLayout = "2006-01-02"

var errPartialRange = errors.New("from 和 to 需同时提供")

// parseCriteria 从查询参数读取筛选条件：age_group, team, competition, from, to (YYYY-MM-DD)
func parseCriteria(c *gin.Context) (analytics.Criteria, error) {
	criteria := analytics.Criteria{
		AgeGroup:    c.Query("age_group"),
		Team:        c.Query("team"),
		Competition: c.Query("competition"),
	}

	from, to := c.Query("from"), c.Query("to")
	if from == "" && to == "" {
		return criteria, nil
	}
	if from == "" || to == "" {
		return criteria, errPartialRange
	}
	start, err := time.Parse(dateLayout, from)
	if err != nil {
		return criteria, fmt.Errorf("from 日期格式错误(应为 YYYY-MM-DD): %q", from)
	}
	end, err := time.Parse(dateLayout, to)
	if err != nil {
		return criteria, fmt.Errorf("to 日期格式错误(应为 YYYY-MM-DD): %q", to)
	}
	criteria.DateRange = &analytics.DateRange{Start: start, End: end}
	return criteria, nil
}

// parseLimit 读取 limit，缺省返回 0（由下游取默认值）
func parseLimit(c *gin.Context) (int, error) {
	raw := c.Query("limit")
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("limit 必须为正整数: %q", raw)
	}
	return n, nil
}
