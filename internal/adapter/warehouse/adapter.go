package warehouse

import (
	"context"
	"fmt"

	"MatchBoard/internal/adapter"
	"MatchBoard/internal/config"
	"MatchBoard/internal/interfaces"
	"MatchBoard/internal/model"
	"MatchBoard/internal/repository"

	"github.com/sirupsen/logrus"
)

func init() {
	adapter.Register(config.SourceWarehouse, func(cfg *config.Config, logger *logrus.Logger) (interfaces.MatchSource, error) {
		return Open(config.SourceWarehouse, cfg.Warehouse, cfg.Server.Mode, logger)
	})
	// 本地 SQLite 文件，视图结构与数仓一致
	adapter.Register(config.SourceSQLite, func(cfg *config.Config, logger *logrus.Logger) (interfaces.MatchSource, error) {
		wh := cfg.Warehouse
		wh.Driver = config.DriverSQLite
		return Open(config.SourceSQLite, wh, cfg.Server.Mode, logger)
	})
}

// Source 从数仓视图读取比赛表，同时提供比赛报告
type Source struct {
	name   string
	repo   repository.MatchRepository
	logger *logrus.Logger
}

// Open 打开数仓连接并创建数据源
func Open(name string, cfg config.WarehouseConfig, mode string, logger *logrus.Logger) (*Source, error) {
	db, err := repository.OpenWarehouse(cfg, cfg.GetGORMConfig(mode), logger)
	if err != nil {
		return nil, err
	}
	repo, err := repository.NewMatchRepository(db, cfg.FactsView, cfg.ReportView)
	if err != nil {
		return nil, err
	}
	return NewSource(name, repo, logger), nil
}

// NewSource 基于已有仓储创建数据源
func NewSource(name string, repo repository.MatchRepository, logger *logrus.Logger) *Source {
	return &Source{name: name, repo: repo, logger: logger}
}

func (s *Source) GetName() string { return s.name }

// Aliases 视图列名已是规范列名
func (s *Source) Aliases() map[string]string { return nil }

// FetchMatches 读取比赛事实视图
func (s *Source) FetchMatches(ctx context.Context) (*model.RawTable, error) {
	table, err := s.repo.FetchFacts(ctx)
	if err != nil {
		s.logger.WithError(err).WithField("source", s.name).Error("读取比赛事实视图失败")
		return nil, fmt.Errorf("%s: %w", s.name, err)
	}
	return table, nil
}

// FetchReport 读取某场比赛的报告视图
func (s *Source) FetchReport(ctx context.Context, matchID int64) (*model.RawTable, error) {
	table, err := s.repo.FetchReport(ctx, matchID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s.name, err)
	}
	return table, nil
}
