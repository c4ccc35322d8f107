package service

import (
	"context"
	"fmt"

	"MatchBoard/internal/interfaces"
	"MatchBoard/internal/model"

	"github.com/sirupsen/logrus"
)

// RefreshService 触发数仓 ETL 任务并让快照失效
type RefreshService struct {
	trigger   interfaces.JobTrigger
	dashboard *DashboardService
	logger    *logrus.Logger
}

// NewRefreshService 创建 RefreshService
func NewRefreshService(trigger interfaces.JobTrigger, dashboard *DashboardService, logger *logrus.Logger) *RefreshService {
	return &RefreshService{trigger: trigger, dashboard: dashboard, logger: logger}
}

// Refresh 触发任务；无论任务是否成功提交都丢弃当前快照
func (s *RefreshService) Refresh(ctx context.Context) (*model.JobRun, error) {
	defer s.dashboard.Invalidate()

	run, err := s.trigger.RunNow(ctx)
	if err != nil {
		s.logger.WithError(err).Error("触发数仓任务失败")
		return nil, fmt.Errorf("触发数仓任务失败: %w", err)
	}
	s.logger.WithField("run_id", run.RunID).Info("数仓任务已提交，快照已失效")
	return run, nil
}
