package model

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testColumns = []string{
	"match_id", "linked_match_id", "age_group", "team", "competition", "match_date",
	"mv_win_ind", "opp_win_ind", "draw_ind", "unknown_ind", "mv_goals", "opp_goals",
	"location_name", "lat", "lon", "location_colour", "score",
}

func testRow(id any, linked any) []any {
	return []any{
		id, linked, "U10", "U10 Reds", "Friendly", "2024-09-14",
		int64(1), int64(0), int64(0), int64(0), int64(3), int64(1),
		"Sale Water Park", 53.43, -2.30, "#E5AD32", "3-1",
	}
}

func TestDecodeMatches_SQLTypes(t *testing.T) {
	raw := &RawTable{
		Columns: testColumns,
		Rows: [][]any{
			testRow(int64(1), nil),
			testRow(int64(2), int64(7)),
		},
	}
	raw.Rows[1][5] = time.Date(2024, 10, 2, 18, 30, 0, 0, time.UTC)

	got, err := DecodeMatches(raw, nil)
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, int64(1), got[0].MatchID)
	assert.Nil(t, got[0].LinkedMatchID)
	assert.Equal(t, time.Date(2024, 9, 14, 0, 0, 0, 0, time.UTC), got[0].MatchDate)
	assert.Equal(t, "3-1", got[0].Score)

	require.NotNil(t, got[1].LinkedMatchID)
	assert.Equal(t, int64(7), *got[1].LinkedMatchID)
	assert.Equal(t, time.Date(2024, 10, 2, 0, 0, 0, 0, time.UTC), got[1].MatchDate)
}

func TestDecodeMatches_CSVStringsWithAliases(t *testing.T) {
	raw := &RawTable{
		Columns: []string{
			"MatchID", "LinkedMatchID", "AgeGroup", "Team", "Competition", "match_date",
			"won", "lost", "drew", "unknown", "goals_for", "goals_against",
			"location_name", "lat", "lon", "location_colour",
		},
		Rows: [][]any{
			{"12", "", "U12", "U12 Blues", "League: Div 1", "21/09/2024", "0", "0", "1", "0", "2", "2", "Home Ground", "53.4", "-2.3", "#217F40"},
			{"13", "NaN", "U12", "U12 Blues", "League: Div 1", "2024-09-28", "0", "1", "0", "0", "0", "3.0", "Away Ground", "53.5", "-2.2", "#000000"},
		},
	}
	aliases := map[string]string{
		"MatchID": "match_id", "LinkedMatchID": "linked_match_id", "AgeGroup": "age_group",
		"Team": "team", "Competition": "competition", "won": "mv_win_ind", "lost": "opp_win_ind",
		"drew": "draw_ind", "unknown": "unknown_ind", "goals_for": "mv_goals", "goals_against": "opp_goals",
	}

	got, err := DecodeMatches(raw, aliases)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Nil(t, got[0].LinkedMatchID)
	assert.Nil(t, got[1].LinkedMatchID)
	assert.Equal(t, 1, got[0].Draw)
	assert.Equal(t, 3, got[1].OppGoals)
	assert.Equal(t, time.Date(2024, 9, 21, 0, 0, 0, 0, time.UTC), got[0].MatchDate)
	assert.InDelta(t, 53.4, got[0].Lat, 1e-9)
}

func TestDecodeMatches_MissingColumn(t *testing.T) {
	raw := &RawTable{Columns: testColumns[:5], Rows: [][]any{}}

	_, err := DecodeMatches(raw, nil)
	var se *SchemaError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, "match_date", se.Column)
	assert.Equal(t, -1, se.Row)
}

func TestDecodeMatches_BadCells(t *testing.T) {
	cases := []struct {
		name   string
		col    int
		value  any
		column string
	}{
		{"non numeric id", 0, "abc", "match_id"},
		{"non numeric link", 1, "x9", "linked_match_id"},
		{"team not a string", 3, int64(10), "team"},
		{"bad date", 5, "14th Sept", "match_date"},
		{"indicator out of range", 6, int64(2), "mv_win_ind"},
		{"negative goals", 10, int64(-1), "mv_goals"},
		{"lat not a number", 13, "north", "lat"},
		{"fractional goals", 11, 1.5, "opp_goals"},
		{"null required string", 12, nil, "location_name"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			row := testRow(int64(1), nil)
			row[tc.col] = tc.value
			_, err := DecodeMatches(&RawTable{Columns: testColumns, Rows: [][]any{row}}, nil)
			var se *SchemaError
			require.ErrorAs(t, err, &se)
			assert.Equal(t, tc.column, se.Column)
			assert.Equal(t, 0, se.Row)
		})
	}
}

func TestDecodeMatches_ExclusiveIndicators(t *testing.T) {
	row := testRow(int64(1), nil)
	row[8] = int64(1) // draw_ind as well as mv_win_ind

	_, err := DecodeMatches(&RawTable{Columns: testColumns, Rows: [][]any{row}}, nil)
	var se *SchemaError
	require.ErrorAs(t, err, &se)
	assert.Contains(t, se.Error(), "mutually exclusive")
}

func TestDecodeMatches_UnknownOutcomeAllowed(t *testing.T) {
	row := testRow(int64(1), nil)
	row[6] = int64(0)

	got, err := DecodeMatches(&RawTable{Columns: testColumns, Rows: [][]any{row}}, nil)
	require.NoError(t, err)
	assert.False(t, got[0].HasResult())
}

func TestDecodeMatches_DuplicateID(t *testing.T) {
	raw := &RawTable{Columns: testColumns, Rows: [][]any{testRow(int64(4), nil), testRow(float64(4), nil)}}

	_, err := DecodeMatches(raw, nil)
	assert.True(t, errors.Is(err, ErrDuplicateMatchID))
}

func TestDecodeMatches_NaNLinkIsUnlinked(t *testing.T) {
	got, err := DecodeMatches(&RawTable{Columns: testColumns, Rows: [][]any{testRow(int64(1), math.NaN())}}, nil)
	require.NoError(t, err)
	assert.False(t, got[0].IsLinked())
}

func TestDecodeMatches_Empty(t *testing.T) {
	got, err := DecodeMatches(&RawTable{Columns: testColumns}, nil)
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestDecodeMatches_AliasesIgnoreCase(t *testing.T) {
	raw := &RawTable{
		Columns: []string{
			"MatchID", "AgeGroup", "Team", "Competition", "Date",
			"won", "lost", "drew", "unknown", "GOALSFOR", "goalsagainst",
			"location_name", "lat", "lon", "location_colour",
		},
		Rows: [][]any{
			{"21", "U9", "U9 Reds", "Friendly", "2024-10-05", "1", "0", "0", "0", "2", "0", "Home Ground", "53.4", "-2.3", "#E5AD32"},
		},
	}
	aliases := map[string]string{
		"MatchID": "match_id", "AgeGroup": "age_group", "Date": "match_date",
		"Won": "mv_win_ind", "Lost": "opp_win_ind", "Drew": "draw_ind", "Unknown": "unknown_ind",
		"GoalsFor": "mv_goals", "GoalsAgainst": "opp_goals",
	}

	got, err := DecodeMatches(raw, aliases)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, 1, got[0].MVWin)
	assert.Equal(t, 2, got[0].MVGoals)
}

func TestDecodeMatches_IntegerOutOfRange(t *testing.T) {
	for _, v := range []any{1e20, -1e20, "1e20", "9.3e18"} {
		raw := &RawTable{Columns: testColumns, Rows: [][]any{testRow(v, nil)}}

		_, err := DecodeMatches(raw, nil)
		var se *SchemaError
		require.ErrorAs(t, err, &se, "%v", v)
		assert.Equal(t, ColMatchID, se.Column)
	}
}
