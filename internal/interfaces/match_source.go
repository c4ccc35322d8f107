package interfaces

import (
	"context"

	"MatchBoard/internal/config"
	"MatchBoard/internal/model"

	"github.com/sirupsen/logrus"
)

// MatchSource 所有比赛表数据源必须实现的核心接口
type MatchSource interface {
	// GetName 数据源名称
	GetName() string
	// FetchMatches 拉取整张比赛表
	FetchMatches(ctx context.Context) (*model.RawTable, error)
	// Aliases 数据源列名 → 规范列名
	Aliases() map[string]string
}

// ReportSource 能提供比赛报告明细的数据源（仅数仓）
type ReportSource interface {
	FetchReport(ctx context.Context, matchID int64) (*model.RawTable, error)
}

// JobTrigger 触发数仓刷新任务
type JobTrigger interface {
	RunNow(ctx context.Context) (*model.JobRun, error)
}

// Factory 数据源工厂函数签名
type Factory func(cfg *config.Config, logger *logrus.Logger) (MatchSource, error)
