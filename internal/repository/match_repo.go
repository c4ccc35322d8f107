package repository

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"

	"MatchBoard/internal/model"

	"gorm.io/gorm"
)

// 视图名允许 catalog.schema.view 形式
var viewNamePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*(\.[A-Za-z_][A-Za-z0-9_]*){0,2}$`)

// MatchRepository 数仓中比赛事实表、比赛报告视图的只读查询
type MatchRepository interface {
	// FetchFacts 读取整张比赛事实视图
	FetchFacts(ctx context.Context) (*model.RawTable, error)
	// FetchReport 读取某场比赛的报告行（可能为 0 行）
	FetchReport(ctx context.Context, matchID int64) (*model.RawTable, error)
}

type matchRepository struct {
	db         *gorm.DB
	factsView  string
	reportView string
}

// NewMatchRepository 创建 MatchRepository 实例，视图名非法时返回错误
func NewMatchRepository(db *gorm.DB, factsView, reportView string) (MatchRepository, error) {
	for _, v := range []string{factsView, reportView} {
		if !viewNamePattern.MatchString(v) {
			return nil, fmt.Errorf("非法的视图名: %q", v)
		}
	}
	return &matchRepository{db: db, factsView: factsView, reportView: reportView}, nil
}

// FetchFacts 读取整张比赛事实视图
func (r *matchRepository) FetchFacts(ctx context.Context) (*model.RawTable, error) {
	rows, err := r.db.WithContext(ctx).Raw("SELECT * FROM " + r.factsView).Rows()
	if err != nil {
		return nil, fmt.Errorf("查询 %s 失败: %w", r.factsView, err)
	}
	return scanTable(rows)
}

// FetchReport 读取某场比赛的报告行
func (r *matchRepository) FetchReport(ctx context.Context, matchID int64) (*model.RawTable, error) {
	rows, err := r.db.WithContext(ctx).
		Raw("SELECT * FROM "+r.reportView+" WHERE match_id = ?", matchID).
		Rows()
	if err != nil {
		return nil, fmt.Errorf("查询 %s 失败: %w", r.reportView, err)
	}
	return scanTable(rows)
}

// scanTable 把结果集读成 RawTable；[]byte 单元格转为 string
func scanTable(rows *sql.Rows) (*model.RawTable, error) {
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, err
	}
	table := &model.RawTable{Columns: cols, Rows: [][]any{}}
	for rows.Next() {
		vals := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range vals {
			ptrs[i] = &vals[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("读取结果行失败: %w", err)
		}
		for i, v := range vals {
			if b, ok := v.([]byte); ok {
				vals[i] = string(b)
			}
		}
		table.Rows = append(table.Rows, vals)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return table, nil
}
