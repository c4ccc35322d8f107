package analytics

import "MatchBoard/internal/model"

// 结果类别，Order 决定堆叠图中的先后
const (
	ResultWin  = "Win"
	ResultLose = "Lose"
	ResultDraw = "Draw"
)

var resultOrder = map[string]int{
	ResultWin:  0,
	ResultLose: 1,
	ResultDraw: 2,
}

// ResultRow 某球队某类结果的场次（只包含场次大于 0 的行）
type ResultRow struct {
	Team   string `json:"team"`
	Result string `json:"result"`
	Order  int    `json:"order"`
	Games  int    `json:"games"`
}

// TeamTotal 球队胜负平总场次，用于堆叠条末端标签
type TeamTotal struct {
	Team  string `json:"team"`
	Total int    `json:"total"`
}

// ResultsBreakdown 按球队拆分的胜/负/平
type ResultsBreakdown struct {
	Rows   []ResultRow `json:"rows"`
	Totals []TeamTotal `json:"totals"`
}

// ResultsByTeam 统计每队胜、负、平场次并展开为 (team, result) 行。
// 行按类别（Win, Lose, Draw）再按球队名排列；结果未知的比赛不计入
func ResultsByTeam(records []model.MatchRecord) ResultsBreakdown {
	teams, groups := groupByTeam(records)
	type counts struct{ win, loss, draw int }
	byTeam := make(map[string]counts, len(teams))
	for _, team := range teams {
		var c counts
		for _, m := range groups[team] {
			c.win += m.MVWin
			c.loss += m.OppWin
			c.draw += m.Draw
		}
		byTeam[team] = c
	}

	out := ResultsBreakdown{
		Rows:   []ResultRow{},
		Totals: []TeamTotal{},
	}
	for _, result := range []string{ResultWin, ResultLose, ResultDraw} {
		for _, team := range teams {
			c := byTeam[team]
			games := c.draw
			switch result {
			case ResultWin:
				games = c.win
			case ResultLose:
				games = c.loss
			}
			if games == 0 {
				continue
			}
			out.Rows = append(out.Rows, ResultRow{
				Team:   team,
				Result: result,
				Order:  resultOrder[result],
				Games:  games,
			})
		}
	}
	for _, team := range teams {
		c := byTeam[team]
		if total := c.win + c.loss + c.draw; total > 0 {
			out.Totals = append(out.Totals, TeamTotal{Team: team, Total: total})
		}
	}
	return out
}
