package mysql

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"dbclone/internal"
)

// DumpJSON writes a table's rows to path in the document format ImportJSON
// reads, so a table can be moved between instances through a file.
func (d *Database) DumpJSON(ctx context.Context, table, path string) error {
	columns, records, err := d.FetchTable(ctx, table)
	if err != nil {
		return err
	}

	doc := tableDocument{
		Table: table,
		Rows:  make([]map[string]interface{}, len(records)),
	}
	for i, record := range records {
		row := make(map[string]interface{}, len(columns))
		for j, column := range columns {
			row[column] = exportValue(record[j])
		}
		doc.Rows[i] = row
	}

	data, err := json.MarshalIndent(&doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal table %s: %w", table, err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write dump file: %w", err)
	}

	internal.Logger.Info("Dumped table", "table", table, "rows", len(records), "file", path)
	return nil
}

// exportValue makes driver values JSON-friendly; the driver hands text
// columns back as []byte, which encoding/json would base64-encode.
func exportValue(value interface{}) interface{} {
	if b, ok := value.([]byte); ok {
		return string(b)
	}
	return value
}
