package analytics

import (
	"sort"

	"MatchBoard/internal/model"
)

// LeagueRow 积分榜一行，列顺序：team, P, W, D, L, U, GF, GA, GD, Pts
type LeagueRow struct {
	Team string `json:"team"`
	P    int    `json:"P"`
	W    int    `json:"W"`
	D    int    `json:"D"`
	L    int    `json:"L"`
	U    int    `json:"U"`
	GF   int    `json:"GF"`
	GA   int    `json:"GA"`
	GD   int    `json:"GD"`
	Pts  int    `json:"Pts"`
}

// groupByTeam 按球队分组，返回升序球队名及分组
func groupByTeam(records []model.MatchRecord) ([]string, map[string][]model.MatchRecord) {
	groups := make(map[string][]model.MatchRecord)
	for _, m := range records {
		groups[m.Team] = append(groups[m.Team], m)
	}
	teams := make([]string, 0, len(groups))
	for t := range groups {
		teams = append(teams, t)
	}
	sort.Strings(teams)
	return teams, groups
}

// LeagueTable 按球队汇总积分榜：P 为记录数（含结果未知的比赛），Pts = 3W + D，GD = GF - GA。
// 按 Pts 降序稳定排序，同分不做二次排序（保持球队名升序的原有顺序）
func LeagueTable(records []model.MatchRecord) []LeagueRow {
	teams, groups := groupByTeam(records)
	rows := make([]LeagueRow, 0, len(teams))
	for _, team := range teams {
		row := LeagueRow{Team: team}
		for _, m := range groups[team] {
			row.P++
			row.W += m.MVWin
			row.L += m.OppWin
			row.D += m.Draw
			row.U += m.Unknown
			row.GF += m.MVGoals
			row.GA += m.OppGoals
		}
		row.Pts = 3*row.W + row.D
		row.GD = row.GF - row.GA
		rows = append(rows, row)
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Pts > rows[j].Pts
	})
	return rows
}
