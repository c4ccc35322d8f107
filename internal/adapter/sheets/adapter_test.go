package sheets

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"MatchBoard/internal/adapter"
	"MatchBoard/internal/config"
	"MatchBoard/internal/model"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const exportCSV = `"MatchID","LinkedMatchID","AgeGroup","Team","Competition","Date","won","lost","drew","unknown","goals_for","goals_against","Location","Latitude","Longitude","LocationColour","Match_Desc"
"1","","U10","U10 Reds","Friendly","2024-09-01","1","0","0","0","3","1","Sale Water Park","53.43","-2.30","#E5AD32","Reds v Hale"
"2","3","U12","U12 Blues","League: Div 1","08/09/2024","0","0","1","0","2","2","Chorlton Park","53.44","-2.27","#217F40","Blues v Whites"
"3","2","U12","U12 Whites","League: Div 1","08/09/2024","0","0","1","0","2","2","Chorlton Park","53.44","-2.27","#217F40","Whites v Blues"
"","","","","","","","","","","","","","","","",""
`

func newTestSource(t *testing.T, handler http.HandlerFunc) *Source {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	src, err := NewSource(config.SheetsConfig{
		BaseURL:       srv.URL,
		SpreadsheetID: "sheet-123",
		Sheet:         "MatchData",
		APIKey:        "k",
		Timeout:       5,
	}, logrus.New())
	require.NoError(t, err)
	return src
}

func TestSource_FetchMatches(t *testing.T) {
	src := newTestSource(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/spreadsheets/d/sheet-123/gviz/tq", r.URL.Path)
		assert.Equal(t, "out:csv", r.URL.Query().Get("tqx"))
		assert.Equal(t, "MatchData", r.URL.Query().Get("sheet"))
		assert.Equal(t, "k", r.URL.Query().Get("key"))
		w.Header().Set("Content-Type", "text/csv")
		_, _ = w.Write([]byte(exportCSV))
	})

	raw, err := src.FetchMatches(context.Background())
	require.NoError(t, err)
	require.Len(t, raw.Rows, 3)

	records, err := model.DecodeMatches(raw, src.Aliases())
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Nil(t, records[0].LinkedMatchID)
	assert.Equal(t, "Reds v Hale", records[0].MatchHeader)
	require.NotNil(t, records[1].LinkedMatchID)
	assert.Equal(t, int64(3), *records[1].LinkedMatchID)
	assert.Equal(t, "2024-09-08", records[1].MatchDate.Format("2006-01-02"))
	assert.Equal(t, 1, records[2].Draw)
}

func TestSource_FetchMatchesHTTPError(t *testing.T) {
	src := newTestSource(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "forbidden", http.StatusForbidden)
	})

	_, err := src.FetchMatches(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "403")
}

func TestSource_EmptyExport(t *testing.T) {
	src := newTestSource(t, func(w http.ResponseWriter, r *http.Request) {})

	raw, err := src.FetchMatches(context.Background())
	require.NoError(t, err)
	assert.Empty(t, raw.Columns)
	assert.Empty(t, raw.Rows)
}

func TestReadCSV_ShortRowsPadded(t *testing.T) {
	table, err := readCSV(strings.NewReader("a,b,c\n1,2\n"))
	require.NoError(t, err)
	assert.Equal(t, [][]any{{"1", "2", ""}}, table.Rows)
}

func TestRegisteredFactory(t *testing.T) {
	_, ok := adapter.GetFactory(config.SourceSheets)
	assert.True(t, ok)

	_, err := NewSource(config.SheetsConfig{}, logrus.New())
	assert.Error(t, err)
}
