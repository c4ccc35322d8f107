package model

import (
	"errors"
	"fmt"
)

// ErrDuplicateMatchID 同一张表中 match_id 重复
var ErrDuplicateMatchID = errors.New("duplicate match_id")

// SchemaError 列缺失或单元格类型/取值不合法。Row 为 -1 表示整列缺失
type SchemaError struct {
	Column string
	Row    int
	Value  any
	Reason string
}

func (e *SchemaError) Error() string {
	if e.Row < 0 {
		return fmt.Sprintf("schema: column %q: %s", e.Column, e.Reason)
	}
	return fmt.Sprintf("schema: column %q row %d (value %v): %s", e.Column, e.Row, e.Value, e.Reason)
}

func missingColumn(column string) *SchemaError {
	return &SchemaError{Column: column, Row: -1, Reason: "missing column"}
}

func badCell(column string, row int, value any, reason string) *SchemaError {
	return &SchemaError{Column: column, Row: row, Value: value, Reason: reason}
}
