package views

import (
	"fmt"
	"strings"

	"MatchBoard/internal/analytics"
	"MatchBoard/internal/model"
)

const dateLayout = "2006-01-02"

// 页面导航
var navLinks = []struct{ Path, Label string }{
	{"/", "Matches"},
	{"/league", "League Table"},
	{"/results", "Results"},
}

// 未选择时默认选中 All
func selectedOr(v string) string {
	if v == "" {
		return analytics.All
	}
	return v
}

func matchTitle(m model.MatchRecord) string {
	if m.MatchHeader != "" {
		return m.MatchHeader
	}
	return m.Team + " v " + m.OppTeam
}

func reportURL(id int64) string {
	return fmt.Sprintf("/api/matches/%d/report", id)
}

func leagueCells(r analytics.LeagueRow) []int {
	return []int{r.P, r.W, r.D, r.L, r.U, r.GF, r.GA, r.GD, r.Pts}
}

func recordCells(r analytics.TeamRecordRow) []int {
	return []int{r.Played, r.W, r.D, r.L, r.U, r.GF, r.GA, r.GD}
}

// recordRows 各球队行之后追加合计行
func recordRows(t analytics.TeamRecordTable) []analytics.TeamRecordRow {
	return append(append([]analytics.TeamRecordRow{}, t.Rows...), t.Total)
}

func splitLines(s string) []string {
	var out []string
	for _, line := range strings.Split(s, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			out = append(out, line)
		}
	}
	return out
}
