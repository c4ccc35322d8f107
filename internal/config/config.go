package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// 数据源类型
const (
	SourceWarehouse = "warehouse"
	SourceSheets    = "sheets"
	SourceSQLite    = "sqlite"
)

// 数仓驱动
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Config 全局配置结构体（完全匹配config.yaml）
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`    // 服务器配置
	Source    SourceConfig    `mapstructure:"source"`    // 比赛表数据源
	Warehouse WarehouseConfig `mapstructure:"warehouse"` // SQL 数仓
	Sheets    SheetsConfig    `mapstructure:"sheets"`    // Google Sheets
	Jobs      JobsConfig      `mapstructure:"jobs"`      // 数仓 ETL 任务
}

// ServerConfig 服务器配置
type ServerConfig struct {
	Port int    `mapstructure:"port"` // 服务端口
	Mode string `mapstructure:"mode"` // Gin运行模式：debug/release/test
}

// SourceConfig 选择比赛表的来源及缓存时长
type SourceConfig struct {
	Type     string        `mapstructure:"type"`      // warehouse/sheets/sqlite
	CacheTTL time.Duration `mapstructure:"cache_ttl"` // 比赛表快照缓存时长，0 表示不缓存
}

// WarehouseConfig SQL 数仓配置
type WarehouseConfig struct {
	Driver          string        `mapstructure:"driver"`            // postgres/sqlite
	DSN             string        `mapstructure:"dsn"`               // 连接DSN
	FactsView       string        `mapstructure:"facts_view"`        // 比赛事实视图
	ReportView      string        `mapstructure:"report_view"`       // 比赛报告视图
	MaxOpenConns    int           `mapstructure:"max_open_conns"`    // 最大打开连接数
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`    // 最大空闲连接数
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"` // 连接最大存活时间
}

// SheetsConfig 表格 CSV 导出配置
type SheetsConfig struct {
	BaseURL       string `mapstructure:"base_url"`       // 导出接口基础地址
	SpreadsheetID string `mapstructure:"spreadsheet_id"` // 表格 ID
	Sheet         string `mapstructure:"sheet"`          // 工作表名
	APIKey        string `mapstructure:"api_key"`        // 可选 API Key
	Timeout       int    `mapstructure:"timeout"`        // 请求超时（秒）
	Proxy         string `mapstructure:"proxy"`          // 代理地址
}

// JobsConfig 数仓任务 API 配置
type JobsConfig struct {
	BaseURL string `mapstructure:"base_url"` // 工作区地址
	Token   string `mapstructure:"token"`    // 访问令牌
	JobID   int64  `mapstructure:"job_id"`   // 刷新比赛事实表的任务 ID
	Timeout int    `mapstructure:"timeout"`  // 请求超时（秒）
	Proxy   string `mapstructure:"proxy"`    // 代理地址
}

// HTTPOptions HTTP 客户端的公共参数
type HTTPOptions struct {
	Timeout int
	Proxy   string
}

// HTTP 返回表格导出用的客户端参数
func (s *SheetsConfig) HTTP() HTTPOptions {
	return HTTPOptions{Timeout: s.Timeout, Proxy: s.Proxy}
}

// HTTP 返回任务 API 用的客户端参数
func (j *JobsConfig) HTTP() HTTPOptions {
	return HTTPOptions{Timeout: j.Timeout, Proxy: j.Proxy}
}

// LoadConfig 加载配置文件（config/config.yaml），敏感项从 .env 覆盖（不提交 git）
func LoadConfig() (*Config, error) {
	// .env 可不存在
	_ = godotenv.Load()
	return LoadConfigFrom("./config")
}

// LoadConfigFrom 从指定目录读取 config.yaml
func LoadConfigFrom(dir string) (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(dir)
	setDefaults(v)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("读取配置文件失败(%s): %w", filepath.Join(dir, "config.yaml"), err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("解析配置文件失败: %w", err)
	}

	// 敏感字段：用 env 覆盖（优先级 env > yaml）
	overrideFromEnv(&cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "release")
	v.SetDefault("source.type", SourceWarehouse)
	v.SetDefault("source.cache_ttl", 15*time.Minute)
	v.SetDefault("warehouse.driver", DriverPostgres)
	v.SetDefault("warehouse.facts_view", "vw_match_facts")
	v.SetDefault("warehouse.report_view", "vw_match_report")
	v.SetDefault("sheets.base_url", "https://docs.google.com")
	v.SetDefault("sheets.sheet", "MatchData")
	v.SetDefault("sheets.timeout", 30)
	v.SetDefault("jobs.timeout", 30)
}

// overrideFromEnv 用环境变量覆盖敏感配置
func overrideFromEnv(cfg *Config) {
	if v := os.Getenv("WAREHOUSE_DSN"); v != "" {
		cfg.Warehouse.DSN = v
	}
	if v := os.Getenv("SHEETS_API_KEY"); v != "" {
		cfg.Sheets.APIKey = v
	}
	if v := os.Getenv("SHEETS_PROXY"); v != "" {
		cfg.Sheets.Proxy = v
	}
	if v := os.Getenv("JOBS_TOKEN"); v != "" {
		cfg.Jobs.Token = v
	}
}

// Validate 校验数据源与驱动取值
func (c *Config) Validate() error {
	switch c.Source.Type {
	case SourceWarehouse, SourceSheets, SourceSQLite:
	default:
		return fmt.Errorf("不支持的数据源类型: %q", c.Source.Type)
	}
	switch c.Warehouse.Driver {
	case DriverPostgres, DriverSQLite:
	default:
		return fmt.Errorf("不支持的数仓驱动: %q", c.Warehouse.Driver)
	}
	if c.Source.Type == SourceSheets && c.Sheets.SpreadsheetID == "" {
		return fmt.Errorf("sheets.spreadsheet_id 未配置")
	}
	return nil
}

// GetGORMConfig 获取 GORM 配置，debug 模式下打印 SQL
func (w *WarehouseConfig) GetGORMConfig(mode string) *gorm.Config {
	level := logger.Warn
	if mode == "debug" {
		level = logger.Info
	}
	return &gorm.Config{Logger: logger.Default.LogMode(level)}
}
