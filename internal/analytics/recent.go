package analytics

import (
	"sort"

	"MatchBoard/internal/model"
)

// DefaultRecentLimit 比赛列表默认条数
const DefaultRecentLimit = 50

// RecentMatches 按比赛日期倒序（同日按 match_id 倒序）取前 limit 条；limit <= 0 时取默认值
func RecentMatches(records []model.MatchRecord, limit int) []model.MatchRecord {
	if limit <= 0 {
		limit = DefaultRecentLimit
	}
	sorted := make([]model.MatchRecord, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool {
		if !sorted[i].MatchDate.Equal(sorted[j].MatchDate) {
			return sorted[i].MatchDate.After(sorted[j].MatchDate)
		}
		return sorted[i].MatchID > sorted[j].MatchID
	})
	if len(sorted) > limit {
		sorted = sorted[:limit]
	}
	return sorted
}

// FindMatch 按 match_id 查找记录
func FindMatch(records []model.MatchRecord, matchID int64) (model.MatchRecord, bool) {
	for _, m := range records {
		if m.MatchID == matchID {
			return m, true
		}
	}
	return model.MatchRecord{}, false
}

// LinkedLeg 查找关联比赛的另一条记录（在未筛选的全表中查找）
func LinkedLeg(records []model.MatchRecord, m model.MatchRecord) (model.MatchRecord, bool) {
	if m.LinkedMatchID == nil {
		return model.MatchRecord{}, false
	}
	return FindMatch(records, *m.LinkedMatchID)
}
