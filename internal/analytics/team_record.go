package analytics

import "MatchBoard/internal/model"

// TotalLabel 合计行的球队名
const TotalLabel = "Total"

// TeamRecordRow 球队战绩汇总
type TeamRecordRow struct {
	Team   string `json:"team"`
	Played int    `json:"played"`
	W      int    `json:"W"`
	D      int    `json:"D"`
	L      int    `json:"L"`
	U      int    `json:"U"`
	GF     int    `json:"GF"`
	GA     int    `json:"GA"`
	GD     int    `json:"GD"`
}

func (r *TeamRecordRow) add(o TeamRecordRow) {
	r.Played += o.Played
	r.W += o.W
	r.D += o.D
	r.L += o.L
	r.U += o.U
	r.GF += o.GF
	r.GA += o.GA
	r.GD = r.GF - r.GA
}

// TeamRecordTable 各队战绩及合计
type TeamRecordTable struct {
	Rows  []TeamRecordRow `json:"rows"`
	Total TeamRecordRow   `json:"total"`
}

// TeamRecord 球队战绩页：剔除中止比赛（A-A）后按球队汇总，按球队名升序，附合计行
func TeamRecord(records []model.MatchRecord) TeamRecordTable {
	played := make([]model.MatchRecord, 0, len(records))
	for _, m := range records {
		if m.IsAbandoned() {
			continue
		}
		played = append(played, m)
	}

	teams, groups := groupByTeam(played)
	table := TeamRecordTable{
		Rows:  make([]TeamRecordRow, 0, len(teams)),
		Total: TeamRecordRow{Team: TotalLabel},
	}
	for _, team := range teams {
		row := TeamRecordRow{Team: team}
		for _, m := range groups[team] {
			row.add(TeamRecordRow{
				Played: 1,
				W:      m.MVWin,
				D:      m.Draw,
				L:      m.OppWin,
				U:      m.Unknown,
				GF:     m.MVGoals,
				GA:     m.OppGoals,
			})
		}
		table.Rows = append(table.Rows, row)
		table.Total.add(row)
	}
	return table
}
