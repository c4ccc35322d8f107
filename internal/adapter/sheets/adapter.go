package sheets

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"MatchBoard/internal/adapter"
	"MatchBoard/internal/config"
	"MatchBoard/internal/interfaces"
	"MatchBoard/internal/model"
	"MatchBoard/internal/utils/httpclient"

	"github.com/sirupsen/logrus"
)

// 表格中的列名与规范列名的对应关系，匹配时不区分大小写
var columnAliases = map[string]string{
	"MatchID":        model.ColMatchID,
	"LinkedMatchID":  model.ColLinkedMatchID,
	"AgeGroup":       model.ColAgeGroup,
	"Team":           model.ColTeam,
	"Competition":    model.ColCompetition,
	"Date":           model.ColMatchDate,
	"MatchDate":      model.ColMatchDate,
	"Won":            model.ColMVWin,
	"Lost":           model.ColOppWin,
	"Drew":           model.ColDraw,
	"Unknown":        model.ColUnknown,
	"GoalsFor":       model.ColMVGoals,
	"GoalsAgainst":   model.ColOppGoals,
	"goals_for":      model.ColMVGoals,
	"goals_against":  model.ColOppGoals,
	"Location":       model.ColLocationName,
	"Latitude":       model.ColLat,
	"Longitude":      model.ColLon,
	"LocationColour": model.ColLocationColour,
	"Match_Desc":     model.ColMatchHeader,
	"HomeAway":       model.ColHomeAway,
	"Opposition":     model.ColOppTeam,
}

func init() {
	adapter.Register(config.SourceSheets, func(cfg *config.Config, logger *logrus.Logger) (interfaces.MatchSource, error) {
		return NewSource(cfg.Sheets, logger)
	})
}

// Source 通过 CSV 导出接口读取表格的数据源
type Source struct {
	cfg    config.SheetsConfig
	client *http.Client
	logger *logrus.Logger
}

// NewSource 创建表格数据源
func NewSource(cfg config.SheetsConfig, logger *logrus.Logger) (*Source, error) {
	if cfg.SpreadsheetID == "" {
		return nil, errors.New("sheets.spreadsheet_id 未配置")
	}
	if _, err := url.Parse(cfg.BaseURL); err != nil {
		return nil, fmt.Errorf("sheets.base_url 非法: %w", err)
	}
	return &Source{
		cfg:    cfg,
		client: httpclient.NewHTTPClient(cfg.HTTP(), logger),
		logger: logger,
	}, nil
}

func (s *Source) GetName() string { return config.SourceSheets }

func (s *Source) Aliases() map[string]string { return columnAliases }

// exportURL {base}/spreadsheets/d/{id}/gviz/tq?tqx=out:csv&sheet={sheet}
func (s *Source) exportURL() string {
	q := url.Values{}
	q.Set("tqx", "out:csv")
	q.Set("sheet", s.cfg.Sheet)
	if s.cfg.APIKey != "" {
		q.Set("key", s.cfg.APIKey)
	}
	return fmt.Sprintf("%s/spreadsheets/d/%s/gviz/tq?%s",
		strings.TrimSuffix(s.cfg.BaseURL, "/"), url.PathEscape(s.cfg.SpreadsheetID), q.Encode())
}

// FetchMatches 下载工作表 CSV 并转为 RawTable，单元格均为字符串
func (s *Source) FetchMatches(ctx context.Context) (*model.RawTable, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.exportURL(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "text/csv")

	resp, err := s.client.Do(req)
	if err != nil {
		s.logger.WithError(err).Warn("表格导出请求失败")
		return nil, fmt.Errorf("sheets: 请求失败: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		s.logger.WithFields(logrus.Fields{
			"status": resp.StatusCode,
			"sheet":  s.cfg.Sheet,
		}).Warn("表格导出返回非 200")
		return nil, fmt.Errorf("sheets: 导出失败 %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	table, err := readCSV(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("sheets: %w", err)
	}
	s.logger.WithFields(logrus.Fields{
		"sheet": s.cfg.Sheet,
		"rows":  len(table.Rows),
	}).Info("表格导出读取完成")
	return table, nil
}

func readCSV(r io.Reader) (*model.RawTable, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return &model.RawTable{Rows: [][]any{}}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("CSV 表头解析失败: %w", err)
	}
	table := &model.RawTable{Columns: header, Rows: [][]any{}}
	for line := 2; ; line++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("CSV 第 %d 行解析失败: %w", line, err)
		}
		if isBlank(record) {
			continue
		}
		row := make([]any, len(header))
		for i := range header {
			if i < len(record) {
				row[i] = record[i]
			} else {
				row[i] = ""
			}
		}
		table.Rows = append(table.Rows, row)
	}
	return table, nil
}

// 导出结果末尾常带空行
func isBlank(record []string) bool {
	for _, v := range record {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
