package warehouse

import (
	"context"
	"path/filepath"
	"testing"

	"MatchBoard/internal/adapter"
	"MatchBoard/internal/config"
	"MatchBoard/internal/model"
	"MatchBoard/internal/repository"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedFile(t *testing.T) config.WarehouseConfig {
	t.Helper()
	cfg := config.WarehouseConfig{
		Driver:     config.DriverSQLite,
		DSN:        filepath.Join(t.TempDir(), "mvfc.db"),
		FactsView:  "vw_match_facts",
		ReportView: "vw_match_report",
	}
	db, err := repository.OpenWarehouse(cfg, nil, logrus.New())
	require.NoError(t, err)
	require.NoError(t, db.Exec(`CREATE TABLE vw_match_facts (
		match_id INTEGER, linked_match_id INTEGER, age_group TEXT, team TEXT, competition TEXT,
		match_date TEXT, mv_win_ind INTEGER, opp_win_ind INTEGER, draw_ind INTEGER, unknown_ind INTEGER,
		mv_goals INTEGER, opp_goals INTEGER, location_name TEXT, lat REAL, lon REAL, location_colour TEXT)`).Error)
	require.NoError(t, db.Exec(`INSERT INTO vw_match_facts VALUES
		(7, NULL, 'U9', 'U9 Reds', 'Friendly', '2024-10-05', 0, 1, 0, 0, 1, 4, 'Sale Water Park', 53.43, -2.30, '#E5AD32')`).Error)
	require.NoError(t, db.Exec(`CREATE TABLE vw_match_report (match_id INTEGER, opp_team TEXT, score TEXT)`).Error)
	require.NoError(t, db.Exec(`INSERT INTO vw_match_report VALUES (7, 'Hale FC', '1-4')`).Error)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())
	return cfg
}

func TestSQLiteSourceFromRegistry(t *testing.T) {
	wh := seedFile(t)
	wh.Driver = config.DriverPostgres

	// sqlite 数据源忽略配置中的驱动
	src, err := adapter.NewSource(&config.Config{
		Source:    config.SourceConfig{Type: config.SourceSQLite},
		Warehouse: wh,
	}, logrus.New())
	require.NoError(t, err)
	assert.Equal(t, config.SourceSQLite, src.GetName())
	assert.Nil(t, src.Aliases())

	raw, err := src.FetchMatches(context.Background())
	require.NoError(t, err)
	records, err := model.DecodeMatches(raw, src.Aliases())
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "U9 Reds", records[0].Team)
	assert.Equal(t, 1, records[0].OppWin)

	reports, ok := src.(*Source)
	require.True(t, ok)
	report, err := reports.FetchReport(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, report.Rows, 1)
	assert.Equal(t, "Hale FC", report.Rows[0][1])
}

func TestFetchErrorsCarrySourceName(t *testing.T) {
	wh := seedFile(t)
	wh.FactsView = "vw_missing"
	src, err := Open("warehouse", wh, "release", logrus.New())
	require.NoError(t, err)

	_, err = src.FetchMatches(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "warehouse: ")
}

func TestUnknownSourceType(t *testing.T) {
	_, err := adapter.NewSource(&config.Config{Source: config.SourceConfig{Type: "excel"}}, logrus.New())
	assert.ErrorContains(t, err, "excel")
}
