package model

import "time"

// 比赛表的规范列名（各数据源列名经别名映射后统一到这里）
const (
	ColMatchID        = "match_id"
	ColLinkedMatchID  = "linked_match_id"
	ColAgeGroup       = "age_group"
	ColTeam           = "team"
	ColCompetition    = "competition"
	ColMatchDate      = "match_date"
	ColMVWin          = "mv_win_ind"
	ColOppWin         = "opp_win_ind"
	ColDraw           = "draw_ind"
	ColUnknown        = "unknown_ind"
	ColMVGoals        = "mv_goals"
	ColOppGoals       = "opp_goals"
	ColLocationName   = "location_name"
	ColLat            = "lat"
	ColLon            = "lon"
	ColLocationColour = "location_colour"
	ColMatchHeader    = "match_header"
	ColScore          = "score"
	ColHomeAway       = "home_away"
	ColOppTeam        = "opp_team"
	ColScorers        = "scorers"
)

// RequiredColumns 每个数据源都必须提供的列
var RequiredColumns = []string{
	ColMatchID,
	ColAgeGroup,
	ColTeam,
	ColCompetition,
	ColMatchDate,
	ColMVWin,
	ColOppWin,
	ColDraw,
	ColUnknown,
	ColMVGoals,
	ColOppGoals,
	ColLocationName,
	ColLat,
	ColLon,
	ColLocationColour,
}

// AbandonedScore 比赛中止（无结果）时的比分写法
const AbandonedScore = "A-A"

// MatchRecord 比赛表的一行，从本俱乐部球队视角记录
type MatchRecord struct {
	MatchID        int64     `json:"match_id"`
	LinkedMatchID  *int64    `json:"linked_match_id,omitempty"` // 同一场比赛另一方记录的 match_id
	AgeGroup       string    `json:"age_group"`
	Team           string    `json:"team"`
	Competition    string    `json:"competition"`
	MatchDate      time.Time `json:"match_date"`
	MVWin          int       `json:"mv_win_ind"`
	OppWin         int       `json:"opp_win_ind"`
	Draw           int       `json:"draw_ind"`
	Unknown        int       `json:"unknown_ind"`
	MVGoals        int       `json:"mv_goals"`
	OppGoals       int       `json:"opp_goals"`
	LocationName   string    `json:"location_name"`
	Lat            float64   `json:"lat"`
	Lon            float64   `json:"lon"`
	LocationColour string    `json:"location_colour"`

	MatchHeader string `json:"match_header,omitempty"`
	Score       string `json:"score,omitempty"`
	HomeAway    string `json:"home_away,omitempty"`
	OppTeam     string `json:"opp_team,omitempty"`
	Scorers     string `json:"scorers,omitempty"`
}

// IsLinked 是否关联了另一条记录
func (m *MatchRecord) IsLinked() bool {
	return m.LinkedMatchID != nil
}

// IsAbandoned 是否中止
func (m *MatchRecord) IsAbandoned() bool {
	return m.Score == AbandonedScore
}

// HasResult 是否恰好有一个结果标记为 1
func (m *MatchRecord) HasResult() bool {
	return m.MVWin+m.OppWin+m.Draw+m.Unknown == 1
}
