package adapter

import (
	"fmt"

	"MatchBoard/internal/config"
	"MatchBoard/internal/interfaces"

	"github.com/sirupsen/logrus"
)

// NewSource 按 source.type 从工厂注册表创建数据源实例
func NewSource(cfg *config.Config, logger *logrus.Logger) (interfaces.MatchSource, error) {
	sourceType := cfg.Source.Type
	logger.WithFields(logrus.Fields{
		"source":     sourceType,
		"registered": ListFactories(),
	}).Info("初始化比赛表数据源")

	factory, ok := GetFactory(sourceType)
	if !ok {
		return nil, fmt.Errorf("数据源%s未注册（已注册：%v）", sourceType, ListFactories())
	}
	src, err := factory(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("创建数据源%s失败: %w", sourceType, err)
	}
	if src == nil {
		return nil, fmt.Errorf("数据源%s的工厂函数返回nil", sourceType)
	}
	logger.WithField("source", src.GetName()).Info("数据源初始化成功")
	return src, nil
}
