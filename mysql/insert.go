package mysql

import (
	"context"
	"fmt"
	"math"
	"strings"

	"dbclone/internal"
)

// InsertRows bulk-inserts records into table as one multi-row INSERT inside a
// single transaction. An empty record set is a no-op. Returns the number of
// rows the server reports as affected.
func (d *Database) InsertRows(ctx context.Context, table string, columns []string, records [][]interface{}) (int64, error) {
	if !d.Healthy() {
		return 0, errNotConnected
	}

	if len(records) == 0 {
		internal.Logger.Debug("No rows to insert", "table", table)
		return 0, nil
	}

	if len(columns) == 0 {
		return 0, fmt.Errorf("no columns to insert into %s", table)
	}

	if err := d.use(ctx); err != nil {
		return 0, err
	}

	query, args := buildInsertQuery(table, columns, records)

	tx, err := d.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}

	result, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		tx.Rollback()
		return 0, fmt.Errorf("failed to insert into %s: %w", table, err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit insert into %s: %w", table, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		affected = int64(len(records))
	}

	internal.Logger.Info("Inserted rows", "table", table, "rows", affected)
	return affected, nil
}

func buildInsertQuery(table string, columns []string, records [][]interface{}) (string, []interface{}) {
	quoted := make([]string, len(columns))
	for i, column := range columns {
		quoted[i] = fmt.Sprintf("`%s`", column)
	}

	placeholders := strings.Repeat("?,", len(columns))
	group := "(" + placeholders[:len(placeholders)-1] + ")"

	groups := make([]string, len(records))
	args := make([]interface{}, 0, len(records)*len(columns))
	for i, record := range records {
		groups[i] = group
		for _, value := range record {
			args = append(args, normalizeValue(value))
		}
	}

	query := fmt.Sprintf("INSERT INTO `%s` (%s) VALUES %s",
		table, strings.Join(quoted, ", "), strings.Join(groups, ", "))
	return query, args
}

// normalizeValue maps float sentinels that have no SQL representation (NaN,
// infinities) to NULL so they are not inserted literally.
func normalizeValue(value interface{}) interface{} {
	switch v := value.(type) {
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil
		}
	case float32:
		f := float64(v)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return nil
		}
	}
	return value
}
