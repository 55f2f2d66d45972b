package database

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"hikaye/internal/models"
	"hikaye/internal/observability"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// ColumnSpec describes one column the application requires on a table.
// Types are restricted to the portable subset both dialects accept.
type ColumnSpec struct {
	Name string
	Type string
	// Default is the SQL default expression, empty for none.
	Default string
}

// PostColumns is the desired column set the posts table accumulated across
// ad-hoc schema versions. Evolution only ever adds from this list; it never
// drops, retypes, or rewrites rows.
func PostColumns() []ColumnSpec {
	return []ColumnSpec{
		{Name: "excerpt", Type: "TEXT"},
		{Name: "image", Type: "VARCHAR(255)"},
		{Name: "category", Type: "VARCHAR(100)"},
		{Name: "category_id", Type: "INTEGER"},
		{Name: "views", Type: "INTEGER", Default: "0"},
		{Name: "likes", Type: "INTEGER", Default: "0"},
		{Name: "dislikes", Type: "INTEGER", Default: "0"},
		{Name: "published", Type: "BOOLEAN", Default: "TRUE"},
		{Name: "featured", Type: "BOOLEAN", Default: "FALSE"},
		{Name: "updated_at", Type: "TIMESTAMP"},
	}
}

// EnsureColumns brings table's column set up to specs without touching
// existing rows or columns. Each missing column is added with its declared
// type and default in its own statement, independently committed, so an
// interrupted run leaves a valid (if incomplete) schema. Safe to run any
// number of times and concurrently with read traffic.
//
// Evolution never creates the base table: a missing table is a fatal
// configuration error, not a retryable condition.
func EnsureColumns(ctx context.Context, db *gorm.DB, table string, specs []ColumnSpec) (int, error) {
	exists, err := hasTable(ctx, db, table)
	if err != nil {
		return 0, fmt.Errorf("failed to inspect table %q: %w", table, err)
	}
	if !exists {
		return 0, models.NewConfigError(fmt.Sprintf("base table %q does not exist; schema evolution never creates it", table), nil)
	}

	existing, err := tableColumns(ctx, db, table)
	if err != nil {
		if isUndefinedTable(err) {
			return 0, models.NewConfigError(fmt.Sprintf("base table %q does not exist; schema evolution never creates it", table), err)
		}
		return 0, fmt.Errorf("failed to list columns of %q: %w", table, err)
	}

	present := make(map[string]bool, len(existing))
	for _, name := range existing {
		present[name] = true
	}

	added := 0
	for _, spec := range specs {
		if present[spec.Name] {
			observability.Logger.Debug("Column already present",
				slog.String("table", table), slog.String("column", spec.Name))
			continue
		}

		stmt := fmt.Sprintf("ALTER TABLE %s ADD COLUMN %s %s", table, spec.Name, spec.Type)
		if spec.Default != "" {
			stmt += " DEFAULT " + spec.Default
		}

		if err := db.WithContext(ctx).Exec(stmt).Error; err != nil {
			// Earlier additions are already committed; re-running completes the rest.
			return added, fmt.Errorf("failed to add column %s.%s: %w", table, spec.Name, err)
		}

		observability.SchemaColumnsAdded.Inc()
		observability.Logger.Info("Column added",
			slog.String("table", table),
			slog.String("column", spec.Name),
			slog.String("type", spec.Type),
			slog.String("default", spec.Default),
		)
		added++
	}

	return added, nil
}

func hasTable(ctx context.Context, db *gorm.DB, table string) (bool, error) {
	var count int64
	switch db.Dialector.Name() {
	case "sqlite":
		err := db.WithContext(ctx).
			Raw("SELECT count(*) FROM sqlite_master WHERE type = 'table' AND name = ?", table).
			Scan(&count).Error
		return count > 0, err
	default:
		err := db.WithContext(ctx).
			Raw("SELECT count(*) FROM information_schema.tables WHERE table_schema = current_schema() AND table_name = ?", table).
			Scan(&count).Error
		return count > 0, err
	}
}

func tableColumns(ctx context.Context, db *gorm.DB, table string) ([]string, error) {
	switch db.Dialector.Name() {
	case "sqlite":
		var rows []struct {
			Name string `gorm:"column:name"`
		}
		if err := db.WithContext(ctx).
			Raw(fmt.Sprintf("PRAGMA table_info(%s)", table)).
			Scan(&rows).Error; err != nil {
			return nil, err
		}
		names := make([]string, 0, len(rows))
		for _, row := range rows {
			names = append(names, row.Name)
		}
		return names, nil
	default:
		var names []string
		err := db.WithContext(ctx).
			Raw("SELECT column_name FROM information_schema.columns WHERE table_schema = current_schema() AND table_name = ?", table).
			Scan(&names).Error
		return names, err
	}
}

// isUndefinedTable classifies the Postgres undefined_table error (42P01).
func isUndefinedTable(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "42P01"
}
