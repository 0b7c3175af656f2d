package domain

import "context"

// TableSummary describes one table in the public schema.
type TableSummary struct {
	Name        string `json:"table_name"`
	RowCount    int64  `json:"row_count"`
	ColumnCount int64  `json:"column_count"`
	SizePretty  string `json:"table_size"`
	SizeBytes   int64  `json:"size_bytes"`
}

// ColumnInfo describes one column of the schema catalog.
type ColumnInfo struct {
	TableName     string  `json:"table_name"`
	ColumnName    string  `json:"column_name"`
	DataType      string  `json:"data_type"`
	IsNullable    string  `json:"is_nullable"`
	ColumnDefault *string `json:"column_default"`
}

// Relationship describes one foreign key edge between tables.
type Relationship struct {
	SourceTable    string `json:"source_table"`
	SourceColumn   string `json:"source_column"`
	TargetTable    string `json:"target_table"`
	TargetColumn   string `json:"target_column"`
	ConstraintName string `json:"constraint_name"`
}

// TablePreview is a bounded sample of a table's rows, column-ordered.
type TablePreview struct {
	Table   string   `json:"table"`
	Columns []string `json:"columns"`
	Rows    [][]any  `json:"rows"`
}

// SchemaRepository serves the SQL explorer catalog queries. Table-name
// arguments must be validated against ListTables before interpolation.
type SchemaRepository interface {
	ListTables(ctx context.Context) ([]string, error)
	TableSummary(ctx context.Context, table string) (*TableSummary, error)
	Columns(ctx context.Context) ([]ColumnInfo, error)
	Relationships(ctx context.Context) ([]Relationship, error)
	Preview(ctx context.Context, table string, limit int) (*TablePreview, error)
}
