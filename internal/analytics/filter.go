package analytics

import (
	"sort"
	"time"

	"MatchBoard/internal/model"
)

// All 下拉框中的"不限"选项
const All = "All"

// DateRange 比赛日期闭区间
type DateRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Contains 日期是否落在闭区间内
func (r DateRange) Contains(d time.Time) bool {
	return !d.Before(r.Start) && !d.After(r.End)
}

// Criteria 筛选条件。维度取值为 All 或空串时不做限制；DateRange 为 nil 时取全表最早到最晚
type Criteria struct {
	AgeGroup    string     `json:"age_group"`
	Team        string     `json:"team"`
	Competition string     `json:"competition"`
	DateRange   *DateRange `json:"date_range,omitempty"`
}

// FilterOptions 下拉框选项，始终来自未筛选的原始表
type FilterOptions struct {
	AgeGroups    []string   `json:"age_groups"`
	Teams        []string   `json:"teams"`
	Competitions []string   `json:"competitions"`
	MinDate      *time.Time `json:"min_date,omitempty"`
	MaxDate      *time.Time `json:"max_date,omitempty"`
}

// Options 计算各维度的去重升序取值（前置 All）及日期范围
func Options(records []model.MatchRecord) FilterOptions {
	opts := FilterOptions{
		AgeGroups:    distinctWithAll(records, func(m *model.MatchRecord) string { return m.AgeGroup }),
		Teams:        distinctWithAll(records, func(m *model.MatchRecord) string { return m.Team }),
		Competitions: distinctWithAll(records, func(m *model.MatchRecord) string { return m.Competition }),
	}
	if r, ok := dateBounds(records); ok {
		opts.MinDate = &r.Start
		opts.MaxDate = &r.End
	}
	return opts
}

func distinctWithAll(records []model.MatchRecord, field func(*model.MatchRecord) string) []string {
	set := make(map[string]struct{})
	for i := range records {
		set[field(&records[i])] = struct{}{}
	}
	values := make([]string, 0, len(set))
	for v := range set {
		values = append(values, v)
	}
	sort.Strings(values)
	return append([]string{All}, values...)
}

func dateBounds(records []model.MatchRecord) (DateRange, bool) {
	if len(records) == 0 {
		return DateRange{}, false
	}
	r := DateRange{Start: records[0].MatchDate, End: records[0].MatchDate}
	for _, m := range records[1:] {
		if m.MatchDate.Before(r.Start) {
			r.Start = m.MatchDate
		}
		if m.MatchDate.After(r.End) {
			r.End = m.MatchDate
		}
	}
	return r, true
}

// pairingKeys 计算关联比赛的归并键：min(match_id, 自身 linked_match_id)。
// 未声明关联的记录只用自身 match_id，不会被丢弃
func pairingKeys(records []model.MatchRecord) map[int64]int64 {
	ids := make(map[int64]struct{}, len(records))
	for _, m := range records {
		ids[m.MatchID] = struct{}{}
	}
	partner := make(map[int64]int64)
	for _, m := range records {
		if m.LinkedMatchID == nil {
			continue
		}
		other := *m.LinkedMatchID
		// 指向不存在的记录时按未关联处理
		if _, ok := ids[other]; !ok || other == m.MatchID {
			continue
		}
		partner[m.MatchID] = other
	}

	keys := make(map[int64]int64, len(records))
	for _, m := range records {
		key := m.MatchID
		if other, ok := partner[m.MatchID]; ok && other < key {
			key = other
		}
		keys[m.MatchID] = key
	}
	return keys
}

// Dedup 关联比赛去重：按 match_id 升序排序后每个归并键只保留第一条（即 match_id 较小的一条）
func Dedup(records []model.MatchRecord) []model.MatchRecord {
	sorted := make([]model.MatchRecord, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].MatchID < sorted[j].MatchID
	})

	keys := pairingKeys(sorted)
	seen := make(map[int64]struct{}, len(sorted))
	out := make([]model.MatchRecord, 0, len(sorted))
	for _, m := range sorted {
		key := keys[m.MatchID]
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, m)
	}
	return out
}

func isAll(v string) bool {
	return v == "" || v == All
}

// ApplyFilters 依次执行：关联比赛去重、年龄组/球队/赛事精确匹配、日期闭区间筛选。
// 返回新切片及补全默认值后的筛选条件；任何条件组合都可能得到空结果，不返回错误
func ApplyFilters(records []model.MatchRecord, c Criteria) ([]model.MatchRecord, Criteria) {
	resolved := Criteria{
		AgeGroup:    c.AgeGroup,
		Team:        c.Team,
		Competition: c.Competition,
	}
	if isAll(resolved.AgeGroup) {
		resolved.AgeGroup = All
	}
	if isAll(resolved.Team) {
		resolved.Team = All
	}
	if isAll(resolved.Competition) {
		resolved.Competition = All
	}
	if c.DateRange != nil {
		r := *c.DateRange
		resolved.DateRange = &r
	} else if r, ok := dateBounds(records); ok {
		resolved.DateRange = &r
	}

	deduped := Dedup(records)
	out := make([]model.MatchRecord, 0, len(deduped))
	for _, m := range deduped {
		if resolved.AgeGroup != All && m.AgeGroup != resolved.AgeGroup {
			continue
		}
		if resolved.Team != All && m.Team != resolved.Team {
			continue
		}
		if resolved.Competition != All && m.Competition != resolved.Competition {
			continue
		}
		if resolved.DateRange != nil && !resolved.DateRange.Contains(m.MatchDate) {
			continue
		}
		out = append(out, m)
	}
	return out, resolved
}
