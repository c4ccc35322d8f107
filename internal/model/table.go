package model

import (
	"fmt"
	"strings"
)

// RawTable 数据源返回的统一表格形态：表头 + 行（单元格保持驱动/解析出的原始类型）
type RawTable struct {
	Columns []string
	Rows    [][]any
}

// columnIndex 按别名映射（不区分大小写）+ 小写归一化后的列名定位列下标
func (t *RawTable) columnIndex(aliases map[string]string) map[string]int {
	folded := make(map[string]string, len(aliases))
	for k, v := range aliases {
		folded[strings.ToLower(strings.TrimSpace(k))] = v
	}
	idx := make(map[string]int, len(t.Columns))
	for i, c := range t.Columns {
		name := strings.ToLower(strings.TrimSpace(c))
		if alias, ok := folded[name]; ok {
			name = alias
		}
		name = strings.ToLower(name)
		if _, dup := idx[name]; !dup {
			idx[name] = i
		}
	}
	return idx
}

type rowReader struct {
	idx map[string]int
	row []any
	n   int
	err *SchemaError
}

func (r *rowReader) cell(col string) (any, bool) {
	i, ok := r.idx[col]
	if !ok || i >= len(r.row) {
		return nil, false
	}
	return r.row[i], true
}

func (r *rowReader) fail(col string, v any, reason string) {
	if r.err == nil {
		r.err = badCell(col, r.n, v, reason)
	}
}

func (r *rowReader) str(col string) string {
	v, _ := r.cell(col)
	s, ok := cellText(v)
	if !ok {
		r.fail(col, v, "expected string")
		return ""
	}
	return strings.TrimSpace(s)
}

func (r *rowReader) optStr(col string) string {
	v, present := r.cell(col)
	if !present || v == nil {
		return ""
	}
	s, ok := cellText(v)
	if !ok {
		r.fail(col, v, "expected string")
		return ""
	}
	return s
}

func (r *rowReader) integer(col string) int64 {
	v, _ := r.cell(col)
	n, ok := cellInt(v)
	if !ok {
		r.fail(col, v, "expected integer")
	}
	return n
}

func (r *rowReader) optInteger(col string) *int64 {
	v, present := r.cell(col)
	if !present || isNullCell(v) {
		return nil
	}
	n, ok := cellInt(v)
	if !ok {
		r.fail(col, v, "expected integer or empty")
		return nil
	}
	return &n
}

func (r *rowReader) float(col string) float64 {
	v, _ := r.cell(col)
	f, ok := cellFloat(v)
	if !ok {
		r.fail(col, v, "expected number")
	}
	return f
}

func (r *rowReader) indicator(col string) int {
	v, _ := r.cell(col)
	n, ok := cellInt(v)
	if !ok {
		r.fail(col, v, "expected 0/1 indicator")
		return 0
	}
	if n != 0 && n != 1 {
		r.fail(col, v, "indicator must be 0 or 1")
	}
	return int(n)
}

func (r *rowReader) goals(col string) int {
	n := r.integer(col)
	if n < 0 {
		r.fail(col, n, "goals must be non-negative")
	}
	return int(n)
}

// DecodeMatches 把原始表格解码为 MatchRecord 列表，缺列/类型错误/不变量违反时立即返回错误，不做静默转换
func DecodeMatches(raw *RawTable, aliases map[string]string) ([]MatchRecord, error) {
	if raw == nil {
		return []MatchRecord{}, nil
	}
	idx := raw.columnIndex(aliases)
	for _, col := range RequiredColumns {
		if _, ok := idx[col]; !ok {
			return nil, missingColumn(col)
		}
	}

	records := make([]MatchRecord, 0, len(raw.Rows))
	seen := make(map[int64]int, len(raw.Rows))
	for n, row := range raw.Rows {
		r := &rowReader{idx: idx, row: row, n: n}
		m := MatchRecord{
			MatchID:        r.integer(ColMatchID),
			LinkedMatchID:  r.optInteger(ColLinkedMatchID),
			AgeGroup:       r.str(ColAgeGroup),
			Team:           r.str(ColTeam),
			Competition:    r.str(ColCompetition),
			MVWin:          r.indicator(ColMVWin),
			OppWin:         r.indicator(ColOppWin),
			Draw:           r.indicator(ColDraw),
			Unknown:        r.indicator(ColUnknown),
			MVGoals:        r.goals(ColMVGoals),
			OppGoals:       r.goals(ColOppGoals),
			LocationName:   r.str(ColLocationName),
			Lat:            r.float(ColLat),
			Lon:            r.float(ColLon),
			LocationColour: r.str(ColLocationColour),
			MatchHeader:    r.optStr(ColMatchHeader),
			Score:          strings.TrimSpace(r.optStr(ColScore)),
			HomeAway:       r.optStr(ColHomeAway),
			OppTeam:        r.optStr(ColOppTeam),
			Scorers:        r.optStr(ColScorers),
		}
		dv, _ := r.cell(ColMatchDate)
		if d, ok := cellDate(dv); ok {
			m.MatchDate = d
		} else {
			r.fail(ColMatchDate, dv, "expected date")
		}
		if r.err != nil {
			return nil, r.err
		}
		if sum := m.MVWin + m.OppWin + m.Draw + m.Unknown; sum > 1 {
			return nil, badCell(ColMVWin, n, sum, "outcome indicators are not mutually exclusive")
		}
		if first, dup := seen[m.MatchID]; dup {
			return nil, fmt.Errorf("%w: %d (rows %d and %d)", ErrDuplicateMatchID, m.MatchID, first, n)
		}
		seen[m.MatchID] = n
		records = append(records, m)
	}
	return records, nil
}
