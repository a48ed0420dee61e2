package mysql

import (
	"context"
	"fmt"
	"strings"

	"dbclone/internal"
)

// Cloner copies schema and data from one MySQL instance to another.
type Cloner struct {
	Source *Database
	Target *Database
}

func NewCloner(source, target *Database) *Cloner {
	return &Cloner{
		Source: source,
		Target: target,
	}
}

// CloneDatabase recreates every source table in the target schema and copies
// all rows. The clone is not transactional across tables: the first failure
// aborts the run and tables committed before it stay committed.
func (c *Cloner) CloneDatabase(ctx context.Context) error {
	if !c.Source.Healthy() || !c.Target.Healthy() {
		return errNotConnected
	}

	if err := c.Target.EnsureDatabase(ctx); err != nil {
		return err
	}

	if err := c.disableForeignKeyChecks(ctx); err != nil {
		return err
	}
	defer c.restoreForeignKeyChecks()

	tables, err := c.ListTables(ctx)
	if err != nil {
		return fmt.Errorf("failed to list source tables: %w", err)
	}

	for i, table := range tables {
		internal.Logger.Info("Cloning table", "table", table, "progress", fmt.Sprintf("%d/%d", i+1, len(tables)))
		if err := c.cloneTable(ctx, table); err != nil {
			return fmt.Errorf("failed to clone table %s: %w", table, err)
		}
	}

	internal.Logger.Info("Database cloned", "source", c.Source.Name(), "target", c.Target.Name(), "tables", len(tables))
	return nil
}

// CloneTable clones a single named table. If the table does not exist in the
// source schema it fails before any statement touches the target.
func (c *Cloner) CloneTable(ctx context.Context, table string) error {
	if !c.Source.Healthy() || !c.Target.Healthy() {
		return errNotConnected
	}

	exists, err := c.tableExists(ctx, table)
	if err != nil {
		return fmt.Errorf("failed to check table %s: %w", table, err)
	}
	if !exists {
		return fmt.Errorf("table %s does not exist in %s", table, c.Source.Name())
	}

	if err := c.Target.EnsureDatabase(ctx); err != nil {
		return err
	}

	if err := c.disableForeignKeyChecks(ctx); err != nil {
		return err
	}
	defer c.restoreForeignKeyChecks()

	internal.Logger.Info("Cloning table", "table", table)
	if err := c.cloneTable(ctx, table); err != nil {
		return fmt.Errorf("failed to clone table %s: %w", table, err)
	}

	return nil
}

// ListTables enumerates the tables of the source schema in the order the
// server returns them.
func (c *Cloner) ListTables(ctx context.Context) ([]string, error) {
	if !c.Source.Healthy() {
		return nil, errNotConnected
	}

	rows, err := c.Source.db.QueryContext(ctx, fmt.Sprintf("SHOW TABLES FROM `%s`", c.Source.Name()))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tables []string
	for rows.Next() {
		var table string
		if err := rows.Scan(&table); err != nil {
			return nil, err
		}
		tables = append(tables, table)
	}

	return tables, rows.Err()
}

func (c *Cloner) cloneTable(ctx context.Context, table string) error {
	ddl, err := c.showCreateTable(ctx, table)
	if err != nil {
		return err
	}
	ddl = rewriteSchemaRefs(ddl, c.Source.Name(), c.Target.Name())

	if err := c.Target.use(ctx); err != nil {
		return err
	}

	if _, err := c.Target.db.ExecContext(ctx, fmt.Sprintf("DROP TABLE IF EXISTS `%s`", table)); err != nil {
		return fmt.Errorf("failed to drop existing table: %w", err)
	}

	if _, err := c.Target.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("failed to create table: %w", err)
	}

	columns, records, err := c.Source.FetchTable(ctx, table)
	if err != nil {
		return err
	}

	if len(records) == 0 {
		internal.Logger.Debug("Source table is empty", "table", table)
		return nil
	}

	_, err = c.Target.InsertRows(ctx, table, columns, records)
	return err
}

func (c *Cloner) showCreateTable(ctx context.Context, table string) (string, error) {
	var name, ddl string
	query := fmt.Sprintf("SHOW CREATE TABLE `%s`.`%s`", c.Source.Name(), table)
	if err := c.Source.db.QueryRowContext(ctx, query).Scan(&name, &ddl); err != nil {
		return "", fmt.Errorf("failed to read DDL: %w", err)
	}
	return ddl, nil
}

func (c *Cloner) tableExists(ctx context.Context, table string) (bool, error) {
	var count int
	err := c.Source.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM information_schema.tables WHERE table_schema = ? AND table_name = ?",
		c.Source.Name(), table).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (c *Cloner) disableForeignKeyChecks(ctx context.Context) error {
	if _, err := c.Target.db.ExecContext(ctx, "SET FOREIGN_KEY_CHECKS=0"); err != nil {
		return fmt.Errorf("failed to disable foreign key checks: %w", err)
	}
	return nil
}

// restoreForeignKeyChecks runs on every exit path of a clone. A failure here
// is logged and swallowed.
func (c *Cloner) restoreForeignKeyChecks() {
	if c.Target.db == nil {
		return
	}
	if _, err := c.Target.db.Exec("SET FOREIGN_KEY_CHECKS=1"); err != nil {
		internal.Logger.Warn("Failed to re-enable foreign key checks", "error", err)
	}
}

// rewriteSchemaRefs swaps backtick-quoted references to the source schema for
// the target schema. This is a literal text substitution, not a parse: a
// matching string inside a comment or column default is rewritten too.
func rewriteSchemaRefs(ddl, source, target string) string {
	return strings.ReplaceAll(ddl, fmt.Sprintf("`%s`", source), fmt.Sprintf("`%s`", target))
}
