package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/razdine10/Groovify/internal/domain"
)

// SchemaRepo implements domain.SchemaRepository over the information_schema
// and pg_catalog views. TableSummary and Preview interpolate the table name
// into SQL because identifiers cannot bind as parameters, so both validate
// it against the live catalog first.
type SchemaRepo struct {
	db *pgxpool.Pool
}

func NewSchemaRepo(db *pgxpool.Pool) *SchemaRepo {
	return &SchemaRepo{db: db}
}

const listTablesQuery = `
	SELECT table_name
	FROM information_schema.tables
	WHERE table_schema = 'public'
	  AND table_type = 'BASE TABLE'
	ORDER BY table_name`

func (r *SchemaRepo) ListTables(ctx context.Context) ([]string, error) {
	defer observeQuery("explorer_tables")()

	rows, err := r.db.Query(ctx, listTablesQuery)
	if err != nil {
		return nil, fmt.Errorf("failed to list tables: %w", err)
	}
	defer rows.Close()

	var tables []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan table name: %w", err)
		}
		tables = append(tables, name)
	}
	return tables, rows.Err()
}

const tableSummaryQuery = `
	SELECT c.relname AS table_name
	     , c.reltuples::bigint AS row_count
	     , (SELECT COUNT(*)
	        FROM information_schema.columns col
	        WHERE col.table_schema = 'public' AND col.table_name = c.relname) AS column_count
	     , pg_size_pretty(pg_total_relation_size(c.oid)) AS table_size
	     , pg_total_relation_size(c.oid) AS size_bytes
	FROM pg_class c
	JOIN pg_namespace n ON n.oid = c.relnamespace
	WHERE n.nspname = 'public'
	  AND c.relkind = 'r'
	  AND c.relname = $1`

func (r *SchemaRepo) TableSummary(ctx context.Context, table string) (*domain.TableSummary, error) {
	defer observeQuery("explorer_table_summary")()

	if err := r.validateTable(ctx, table); err != nil {
		return nil, err
	}

	var s domain.TableSummary
	err := r.db.QueryRow(ctx, tableSummaryQuery, table).
		Scan(&s.Name, &s.RowCount, &s.ColumnCount, &s.SizePretty, &s.SizeBytes)
	if err != nil {
		return nil, fmt.Errorf("failed to query table summary: %w", err)
	}

	// reltuples is an estimate and reads -1 on never-analyzed tables,
	// so fall back to an exact count.
	if s.RowCount < 0 {
		countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM public.%q`, table)
		if err := r.db.QueryRow(ctx, countQuery).Scan(&s.RowCount); err != nil {
			return nil, fmt.Errorf("failed to count rows of %s: %w", table, err)
		}
	}
	return &s, nil
}

const columnsQuery = `
	SELECT table_name
	     , column_name
	     , data_type
	     , is_nullable
	     , column_default
	FROM information_schema.columns
	WHERE table_schema = 'public'
	ORDER BY table_name, ordinal_position`

func (r *SchemaRepo) Columns(ctx context.Context) ([]domain.ColumnInfo, error) {
	defer observeQuery("explorer_columns")()

	rows, err := r.db.Query(ctx, columnsQuery)
	if err != nil {
		return nil, fmt.Errorf("failed to query columns: %w", err)
	}
	defer rows.Close()

	var result []domain.ColumnInfo
	for rows.Next() {
		var c domain.ColumnInfo
		if err := rows.Scan(&c.TableName, &c.ColumnName, &c.DataType, &c.IsNullable, &c.ColumnDefault); err != nil {
			return nil, fmt.Errorf("failed to scan column info: %w", err)
		}
		result = append(result, c)
	}
	return result, rows.Err()
}

const relationshipsQuery = `
	SELECT tc.table_name AS source_table
	     , kcu.column_name AS source_column
	     , ccu.table_name AS target_table
	     , ccu.column_name AS target_column
	     , tc.constraint_name
	FROM information_schema.table_constraints tc
	JOIN information_schema.key_column_usage kcu
	     ON tc.constraint_name = kcu.constraint_name
	    AND tc.table_schema = kcu.table_schema
	JOIN information_schema.constraint_column_usage ccu
	     ON tc.constraint_name = ccu.constraint_name
	    AND tc.table_schema = ccu.table_schema
	WHERE tc.constraint_type = 'FOREIGN KEY'
	  AND tc.table_schema = 'public'
	ORDER BY tc.table_name, kcu.column_name`

func (r *SchemaRepo) Relationships(ctx context.Context) ([]domain.Relationship, error) {
	defer observeQuery("explorer_relationships")()

	rows, err := r.db.Query(ctx, relationshipsQuery)
	if err != nil {
		return nil, fmt.Errorf("failed to query relationships: %w", err)
	}
	defer rows.Close()

	var result []domain.Relationship
	for rows.Next() {
		var rel domain.Relationship
		if err := rows.Scan(&rel.SourceTable, &rel.SourceColumn, &rel.TargetTable,
			&rel.TargetColumn, &rel.ConstraintName); err != nil {
			return nil, fmt.Errorf("failed to scan relationship: %w", err)
		}
		result = append(result, rel)
	}
	return result, rows.Err()
}

func (r *SchemaRepo) Preview(ctx context.Context, table string, limit int) (*domain.TablePreview, error) {
	defer observeQuery("explorer_preview")()

	if err := r.validateTable(ctx, table); err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`SELECT * FROM public.%q LIMIT $1`, table)
	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to preview table %s: %w", table, err)
	}
	defer rows.Close()

	preview := &domain.TablePreview{Table: table}
	for _, fd := range rows.FieldDescriptions() {
		preview.Columns = append(preview.Columns, fd.Name)
	}

	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			return nil, fmt.Errorf("failed to read preview row: %w", err)
		}
		preview.Rows = append(preview.Rows, values)
	}
	return preview, rows.Err()
}

// validateTable rejects table names that do not exist in the public schema.
func (r *SchemaRepo) validateTable(ctx context.Context, table string) error {
	tables, err := r.ListTables(ctx)
	if err != nil {
		return err
	}
	for _, t := range tables {
		if t == table {
			return nil
		}
	}
	return domain.ErrUnknownTable
}
