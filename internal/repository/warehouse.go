package repository

import (
	"database/sql"
	"fmt"

	"MatchBoard/internal/config"

	"github.com/glebarez/sqlite"
	_ "github.com/jackc/pgx/v4/stdlib"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// OpenWarehouse 按配置的驱动打开数仓连接并设置连接池。
// postgres 走 pgx 的 database/sql 驱动，sqlite 走纯 Go 实现（本地文件或 :memory:）
func OpenWarehouse(cfg config.WarehouseConfig, gormCfg *gorm.Config, logger *logrus.Logger) (*gorm.DB, error) {
	if gormCfg == nil {
		gormCfg = &gorm.Config{}
	}

	var (
		db  *gorm.DB
		err error
	)
	switch cfg.Driver {
	case config.DriverPostgres:
		sqlDB, openErr := sql.Open("pgx", cfg.DSN)
		if openErr != nil {
			return nil, fmt.Errorf("打开 pgx 连接失败: %w", openErr)
		}
		db, err = gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), gormCfg)
	case config.DriverSQLite:
		db, err = gorm.Open(sqlite.Open(cfg.DSN), gormCfg)
	default:
		return nil, fmt.Errorf("不支持的数仓驱动: %q", cfg.Driver)
	}
	if err != nil {
		return nil, fmt.Errorf("连接数仓失败(%s): %w", cfg.Driver, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("获取SQL DB失败: %w", err)
	}
	if cfg.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}

	logger.WithFields(logrus.Fields{
		"driver":         cfg.Driver,
		"max_open_conns": cfg.MaxOpenConns,
		"max_idle_conns": cfg.MaxIdleConns,
	}).Info("数仓连接成功")
	return db, nil
}
