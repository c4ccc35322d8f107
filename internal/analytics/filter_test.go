package analytics

import (
	"math/rand"
	"testing"

	"MatchBoard/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ids(records []model.MatchRecord) []int64 {
	out := make([]int64, 0, len(records))
	for _, m := range records {
		out = append(out, m.MatchID)
	}
	return out
}

func TestOptions_FromUnfilteredTable(t *testing.T) {
	opts := Options(sampleTable())

	assert.Equal(t, []string{All, "U10", "U12"}, opts.AgeGroups)
	assert.Equal(t, []string{All, "U10 Greens", "U10 Reds", "U12 Blues", "U12 Whites"}, opts.Teams)
	assert.Equal(t, []string{All, "Friendly", "League: Div 1"}, opts.Competitions)
	require.NotNil(t, opts.MinDate)
	require.NotNil(t, opts.MaxDate)
	assert.Equal(t, day("2024-09-02"), *opts.MinDate)
	assert.Equal(t, day("2024-09-12"), *opts.MaxDate)
}

func TestOptions_Empty(t *testing.T) {
	opts := Options(nil)

	assert.Equal(t, []string{All}, opts.AgeGroups)
	assert.Equal(t, []string{All}, opts.Teams)
	assert.Equal(t, []string{All}, opts.Competitions)
	assert.Nil(t, opts.MinDate)
	assert.Nil(t, opts.MaxDate)
}

func TestDedup_LinkedPairKeepsLowerID(t *testing.T) {
	a := match(9, "U12 Whites", loss, 0, 4)
	a.LinkedMatchID = link(5)
	b := match(5, "U12 Blues", win, 4, 0)
	b.LinkedMatchID = link(9)

	got := Dedup([]model.MatchRecord{a, b})
	assert.Equal(t, []int64{5}, ids(got))
}

func TestDedup_DeterministicUnderShuffle(t *testing.T) {
	base := sampleTable()
	want := ids(Dedup(base))
	assert.Equal(t, []int64{1, 2, 3, 5, 11}, want)

	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 20; i++ {
		shuffled := make([]model.MatchRecord, len(base))
		copy(shuffled, base)
		rng.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })
		assert.Equal(t, want, ids(Dedup(shuffled)))
	}
}

func TestDedup_OneDirectionalLink(t *testing.T) {
	a := match(4, "U10 Reds", win, 1, 0)
	b := match(8, "U10 Greens", loss, 0, 1)
	b.LinkedMatchID = link(4)
	c := match(20, "U10 Reds", win, 2, 0)
	d := match(21, "U10 Greens", loss, 0, 2)
	c.LinkedMatchID = link(21)

	// 8 自身指向更小的 4，被丢弃；21 没有关联字段，保留
	got := Dedup([]model.MatchRecord{a, b, c, d})
	assert.Equal(t, []int64{4, 20, 21}, ids(got))
}

func TestDedup_UnlinkedTargetNeverDropped(t *testing.T) {
	a := match(5, "U12 Blues", win, 4, 0)
	a.LinkedMatchID = link(9)
	b := match(9, "U12 Whites", loss, 0, 4)

	assert.Equal(t, []int64{5, 9}, ids(Dedup([]model.MatchRecord{b, a})))
}

func TestDedup_DanglingLinkTreatedAsUnlinked(t *testing.T) {
	a := match(10, "U10 Reds", win, 1, 0)
	a.LinkedMatchID = link(3)
	b := match(12, "U10 Reds", draw, 1, 1)
	b.LinkedMatchID = link(3)

	got := Dedup([]model.MatchRecord{a, b})
	assert.Equal(t, []int64{10, 12}, ids(got))
}

func TestDedup_UnlinkedNeverDropped(t *testing.T) {
	records := []model.MatchRecord{match(3, "A", win, 1, 0), match(1, "A", win, 1, 0), match(2, "B", loss, 0, 1)}
	assert.Equal(t, []int64{1, 2, 3}, ids(Dedup(records)))
}

func TestApplyFilters_DefaultsResolved(t *testing.T) {
	got, resolved := ApplyFilters(sampleTable(), Criteria{})

	assert.Equal(t, []int64{1, 2, 3, 5, 11}, ids(got))
	assert.Equal(t, All, resolved.AgeGroup)
	assert.Equal(t, All, resolved.Team)
	assert.Equal(t, All, resolved.Competition)
	require.NotNil(t, resolved.DateRange)
	assert.Equal(t, day("2024-09-02"), resolved.DateRange.Start)
	assert.Equal(t, day("2024-09-12"), resolved.DateRange.End)
}

func TestApplyFilters_Dimensions(t *testing.T) {
	got, _ := ApplyFilters(sampleTable(), Criteria{AgeGroup: "U12", Team: All, Competition: "League: Div 1"})
	assert.Equal(t, []int64{3, 5}, ids(got))

	got, _ = ApplyFilters(sampleTable(), Criteria{Team: "U10 Reds"})
	assert.Equal(t, []int64{1, 2}, ids(got))

	// 精确匹配，大小写敏感、不做模糊匹配
	got, _ = ApplyFilters(sampleTable(), Criteria{Team: "u10 reds"})
	assert.Empty(t, got)
	got, _ = ApplyFilters(sampleTable(), Criteria{Team: "U10"})
	assert.Empty(t, got)
}

func TestApplyFilters_DedupBeforeTeamFilter(t *testing.T) {
	// 9 是 5 的关联记录，去重后被丢弃，因此按 9 的球队筛选得到空结果
	got, _ := ApplyFilters(sampleTable(), Criteria{Team: "U12 Whites"})
	assert.Empty(t, got)
}

func TestApplyFilters_DateRangeInclusive(t *testing.T) {
	got, resolved := ApplyFilters(sampleTable(), Criteria{DateRange: &DateRange{Start: day("2024-09-03"), End: day("2024-09-06")}})

	assert.Equal(t, []int64{2, 3, 5}, ids(got))
	assert.Equal(t, day("2024-09-03"), resolved.DateRange.Start)
}

func TestApplyFilters_InvertedRangeIsEmpty(t *testing.T) {
	got, _ := ApplyFilters(sampleTable(), Criteria{DateRange: &DateRange{Start: day("2024-09-10"), End: day("2024-09-02")}})
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestApplyFilters_EmptyInput(t *testing.T) {
	got, resolved := ApplyFilters(nil, Criteria{Team: "U10 Reds"})
	assert.Empty(t, got)
	assert.Nil(t, resolved.DateRange)
	assert.Equal(t, "U10 Reds", resolved.Team)
}

func TestApplyFilters_Idempotent(t *testing.T) {
	c := Criteria{AgeGroup: "U10", Competition: "Friendly"}
	once, _ := ApplyFilters(sampleTable(), c)
	twice, _ := ApplyFilters(once, c)
	assert.Equal(t, once, twice)
}

func TestApplyFilters_NeverExpands(t *testing.T) {
	table := sampleTable()
	criteria := []Criteria{
		{},
		{AgeGroup: "U10"},
		{Team: "U12 Blues"},
		{Competition: "Friendly", DateRange: &DateRange{Start: day("2024-09-01"), End: day("2024-09-03")}},
		{AgeGroup: "U99"},
	}
	for _, c := range criteria {
		got, _ := ApplyFilters(table, c)
		assert.LessOrEqual(t, len(got), len(table))
	}
}

func TestApplyFilters_DoesNotMutateInput(t *testing.T) {
	table := sampleTable()
	before := make([]model.MatchRecord, len(table))
	copy(before, table)

	got, _ := ApplyFilters(table, Criteria{Team: "U10 Reds"})
	require.NotEmpty(t, got)
	got[0].Team = "changed"

	assert.Equal(t, before, table)
}
