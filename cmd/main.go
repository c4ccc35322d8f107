package main

import (
	"fmt"
	"log"

	"MatchBoard/internal/adapter"
	_ "MatchBoard/internal/adapter/sheets"
	_ "MatchBoard/internal/adapter/warehouse"
	"MatchBoard/internal/api"
	"MatchBoard/internal/config"
	"MatchBoard/internal/jobs"
	"MatchBoard/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

func main() {
	// 1. 加载配置文件
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("加载配置文件失败: %v", err)
	}

	// 2. 初始化日志
	logrusLogger := logrus.New()
	logrusLogger.SetLevel(logrus.InfoLevel)
	if cfg.Server.Mode == gin.DebugMode {
		logrusLogger.SetLevel(logrus.DebugLevel)
	}
	logrusLogger.Info("配置文件加载成功")

	// 3. 按 source.type 初始化比赛表数据源（数仓 / 表格 / 本地 SQLite）
	source, err := adapter.NewSource(cfg, logrusLogger)
	if err != nil {
		logrusLogger.Fatalf("初始化数据源失败: %v", err)
	}

	// 4. 业务服务：快照缓存 + 数仓刷新任务
	dashboard := service.NewDashboardService(source, cfg.Source.CacheTTL, logrusLogger)
	refresh := service.NewRefreshService(jobs.NewClient(cfg.Jobs, logrusLogger), dashboard, logrusLogger)

	// 5. 配置Gin运行模式（从配置读取：debug/release）
	gin.SetMode(cfg.Server.Mode)
	r := api.NewRouter(dashboard, refresh, logrusLogger)
	logrusLogger.Infof("Gin运行模式: %s", cfg.Server.Mode)

	// 6. 启动服务（从配置读取端口）
	port := cfg.Server.Port
	logrusLogger.WithFields(logrus.Fields{
		"port":      port,
		"source":    source.GetName(),
		"cache_ttl": cfg.Source.CacheTTL.String(),
	}).Info("服务启动成功")
	if err := r.Run(fmt.Sprintf(":%d", port)); err != nil {
		logrusLogger.Fatalf("启动服务失败: %v", err)
	}
}
