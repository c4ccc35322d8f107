package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"MatchBoard/internal/analytics"
	"MatchBoard/internal/interfaces"
	"MatchBoard/internal/model"

	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"
)

// ErrMatchNotFound 比赛表中没有该 match_id
var ErrMatchNotFound = errors.New("match not found")

// DashboardService 比赛表快照缓存 + 各页面的筛选与汇总
type DashboardService struct {
	source interfaces.MatchSource
	ttl    time.Duration
	logger *logrus.Logger
	now    func() time.Time

	mu       sync.Mutex
	snapshot []model.MatchRecord
	loadedAt time.Time
	loaded   bool
}

// NewDashboardService 创建 DashboardService，ttl <= 0 时每次请求都重新加载
func NewDashboardService(source interfaces.MatchSource, ttl time.Duration, logger *logrus.Logger) *DashboardService {
	return &DashboardService{
		source: source,
		ttl:    ttl,
		logger: logger,
		now:    time.Now,
	}
}

// Matches 返回当前快照（未筛选的全表）。返回的切片只读
func (s *DashboardService) Matches(ctx context.Context) ([]model.MatchRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.loaded && s.ttl > 0 && s.now().Sub(s.loadedAt) < s.ttl {
		return s.snapshot, nil
	}

	start := s.now()
	raw, err := s.source.FetchMatches(ctx)
	if err != nil {
		return nil, fmt.Errorf("加载比赛表失败: %w", err)
	}
	records, err := model.DecodeMatches(raw, s.source.Aliases())
	if err != nil {
		s.logger.WithError(err).WithField("source", s.source.GetName()).Error("比赛表校验失败")
		return nil, fmt.Errorf("比赛表校验失败(%s): %w", s.source.GetName(), err)
	}

	s.snapshot = records
	s.loadedAt = s.now()
	s.loaded = true
	s.logger.WithFields(logrus.Fields{
		"source":  s.source.GetName(),
		"matches": len(records),
		"elapsed": s.loadedAt.Sub(start).String(),
	}).Info("比赛表快照已刷新")
	return records, nil
}

// Invalidate 丢弃缓存，下次请求重新加载
func (s *DashboardService) Invalidate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loaded = false
}

// Filters 下拉框选项
func (s *DashboardService) Filters(ctx context.Context) (analytics.FilterOptions, error) {
	records, err := s.Matches(ctx)
	if err != nil {
		return analytics.FilterOptions{}, err
	}
	return analytics.Options(records), nil
}

func (s *DashboardService) filtered(ctx context.Context, c analytics.Criteria) ([]model.MatchRecord, analytics.Criteria, error) {
	records, err := s.Matches(ctx)
	if err != nil {
		return nil, c, err
	}
	out, resolved := analytics.ApplyFilters(records, c)
	return out, resolved, nil
}

// MatchList 比赛列表页
type MatchList struct {
	Matches  []model.MatchRecord `json:"matches"`
	Total    int                 `json:"total"`
	Criteria analytics.Criteria  `json:"criteria"`
}

// RecentMatches 筛选后按日期倒序的比赛列表
func (s *DashboardService) RecentMatches(ctx context.Context, c analytics.Criteria, limit int) (*MatchList, error) {
	records, resolved, err := s.filtered(ctx, c)
	if err != nil {
		return nil, err
	}
	return &MatchList{
		Matches:  analytics.RecentMatches(records, limit),
		Total:    len(records),
		Criteria: resolved,
	}, nil
}

// LeagueTableView 积分榜页
type LeagueTableView struct {
	Rows     []analytics.LeagueRow `json:"rows"`
	Criteria analytics.Criteria    `json:"criteria"`
}

// LeagueTable 筛选后的积分榜
func (s *DashboardService) LeagueTable(ctx context.Context, c analytics.Criteria) (*LeagueTableView, error) {
	records, resolved, err := s.filtered(ctx, c)
	if err != nil {
		return nil, err
	}
	return &LeagueTableView{Rows: analytics.LeagueTable(records), Criteria: resolved}, nil
}

// ResultsView 胜负平拆分页
type ResultsView struct {
	analytics.ResultsBreakdown
	Criteria analytics.Criteria `json:"criteria"`
}

// ResultsByTeam 筛选后按球队的胜负平拆分
func (s *DashboardService) ResultsByTeam(ctx context.Context, c analytics.Criteria) (*ResultsView, error) {
	records, resolved, err := s.filtered(ctx, c)
	if err != nil {
		return nil, err
	}
	return &ResultsView{ResultsBreakdown: analytics.ResultsByTeam(records), Criteria: resolved}, nil
}

// LocationView 场地进球地图
type LocationView struct {
	analytics.LocationTally
	Criteria analytics.Criteria `json:"criteria"`
}

// GoalsByLocation 筛选后按场地的进球
func (s *DashboardService) GoalsByLocation(ctx context.Context, c analytics.Criteria) (*LocationView, error) {
	records, resolved, err := s.filtered(ctx, c)
	if err != nil {
		return nil, err
	}
	return &LocationView{LocationTally: analytics.GoalsByLocation(records), Criteria: resolved}, nil
}

// TeamRecordView 球队战绩页
type TeamRecordView struct {
	analytics.TeamRecordTable
	Criteria analytics.Criteria `json:"criteria"`
}

// TeamRecord 筛选后的球队战绩及合计
func (s *DashboardService) TeamRecord(ctx context.Context, c analytics.Criteria) (*TeamRecordView, error) {
	records, resolved, err := s.filtered(ctx, c)
	if err != nil {
		return nil, err
	}
	return &TeamRecordView{TeamRecordTable: analytics.TeamRecord(records), Criteria: resolved}, nil
}

// MatchReport 比赛报告：比赛行、关联的另一条记录、报告视图明细
type MatchReport struct {
	Match  model.MatchRecord  `json:"match"`
	Linked *model.MatchRecord `json:"linked,omitempty"`
	Report datatypes.JSON     `json:"report"`
}

// MatchReport 按 match_id 查找比赛；关联记录在未筛选的全表中查找
func (s *DashboardService) MatchReport(ctx context.Context, matchID int64) (*MatchReport, error) {
	records, err := s.Matches(ctx)
	if err != nil {
		return nil, err
	}
	m, ok := analytics.FindMatch(records, matchID)
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrMatchNotFound, matchID)
	}
	out := &MatchReport{Match: m, Report: datatypes.JSON("[]")}
	if leg, ok := analytics.LinkedLeg(records, m); ok {
		out.Linked = &leg
	}

	reports, ok := s.source.(interfaces.ReportSource)
	if !ok {
		return out, nil
	}
	raw, err := reports.FetchReport(ctx, matchID)
	if err != nil {
		return nil, fmt.Errorf("加载比赛报告失败: %w", err)
	}
	report, err := tableJSON(raw)
	if err != nil {
		return nil, err
	}
	out.Report = report
	return out, nil
}

// tableJSON 把报告行转成 JSON 对象数组
func tableJSON(raw *model.RawTable) (datatypes.JSON, error) {
	rows := make([]map[string]any, 0, len(raw.Rows))
	for _, row := range raw.Rows {
		obj := make(map[string]any, len(raw.Columns))
		for i, col := range raw.Columns {
			if i < len(row) {
				obj[col] = row[i]
			}
		}
		rows = append(rows, obj)
	}
	b, err := json.Marshal(rows)
	if err != nil {
		return nil, fmt.Errorf("比赛报告序列化失败: %w", err)
	}
	return datatypes.JSON(b), nil
}
