package mysql

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"dbclone/internal"
)

// tableDocument is the JSON shape shared by the importer and the dumper.
type tableDocument struct {
	Table string                   `json:"table"`
	Rows  []map[string]interface{} `json:"rows"`
}

// ImportJSON loads a {"table": ..., "rows": [...]} document from path and
// inserts its rows into table. A declared table name that differs from the
// destination is a warning, not an error.
func (d *Database) ImportJSON(ctx context.Context, path, table string) (int64, error) {
	doc, err := readTableDocument(path)
	if err != nil {
		return 0, err
	}

	if doc.Table != table {
		internal.Logger.Warn("Declared table name differs from destination",
			"declared", doc.Table, "destination", table)
	}

	columns, records := flattenRows(doc.Rows, nil)
	return d.InsertRows(ctx, table, columns, records)
}

func readTableDocument(path string) (*tableDocument, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read import file: %w", err)
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse import file: %w", err)
	}
	if _, ok := raw["table"]; !ok {
		return nil, fmt.Errorf("invalid import file: missing %q field", "table")
	}
	if _, ok := raw["rows"]; !ok {
		return nil, fmt.Errorf("invalid import file: missing %q field", "rows")
	}

	var doc tableDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("invalid import file: %w", err)
	}
	if len(doc.Rows) == 0 {
		return nil, fmt.Errorf("import file contains no rows")
	}

	return &doc, nil
}

// flattenRows turns column->value maps into ordered records. When columns is
// nil the sorted union of row keys is used, since Go map iteration order is
// not stable. Cells missing from a row become NULL.
func flattenRows(rows []map[string]interface{}, columns []string) ([]string, [][]interface{}) {
	if columns == nil {
		seen := make(map[string]bool)
		for _, row := range rows {
			for column := range row {
				seen[column] = true
			}
		}
		for column := range seen {
			columns = append(columns, column)
		}
		sort.Strings(columns)
	}

	records := make([][]interface{}, len(rows))
	for i, row := range rows {
		record := make([]interface{}, len(columns))
		for j, column := range columns {
			record[j] = row[column]
		}
		records[i] = record
	}

	return columns, records
}

// RestoreSQLFile executes a SQL script against the handle's schema, committing
// once at the end. The script is split on literal ";" characters, so a
// semicolon inside a string literal breaks the split.
func (d *Database) RestoreSQLFile(ctx context.Context, path string) error {
	if !d.Healthy() {
		return errNotConnected
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read SQL file: %w", err)
	}

	statements := splitStatements(string(data))
	if len(statements) == 0 {
		return fmt.Errorf("no statements found in %s", path)
	}

	if err := d.use(ctx); err != nil {
		return err
	}

	tx, err := d.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	for _, statement := range statements {
		if _, err := tx.ExecContext(ctx, statement); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to execute statement: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit restore: %w", err)
	}

	internal.Logger.Info("Restored SQL script", "file", path, "statements", len(statements))
	return nil
}

func splitStatements(script string) []string {
	var statements []string
	for _, fragment := range strings.Split(script, ";") {
		if statement := strings.TrimSpace(fragment); statement != "" {
			statements = append(statements, statement)
		}
	}
	return statements
}
