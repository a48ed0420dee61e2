package mysql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"dbclone/internal"
	_ "github.com/go-sql-driver/mysql"
)

var errNotConnected = errors.New("database not connected")

type Config struct {
	Host      string
	Port      int
	User      string
	Password  string
	Database  string
	Charset   string
	Collation string
}

// dsn builds a driver DSN without a default schema. The schema is selected
// explicitly with USE so a clone can target a database that does not exist yet.
func (c Config) dsn() string {
	credentials := c.User
	if c.Password != "" {
		credentials = fmt.Sprintf("%s:%s", c.User, c.Password)
	}

	dsn := fmt.Sprintf("%s@tcp(%s:%d)/", credentials, c.Host, c.Port)

	var params []string
	if c.Charset != "" {
		params = append(params, "charset="+c.Charset)
	}
	if c.Collation != "" {
		params = append(params, "collation="+c.Collation)
	}
	if len(params) > 0 {
		dsn += "?" + strings.Join(params, "&")
	}

	return dsn
}

// Database wraps a single MySQL session plus the schema it operates on.
type Database struct {
	Config Config

	db *sql.DB
}

func NewDatabase(config Config) *Database {
	return &Database{Config: config}
}

func (d *Database) Connect(ctx context.Context) error {
	db, err := sql.Open("mysql", d.Config.dsn())
	if err != nil {
		return fmt.Errorf("failed to open connection: %w", err)
	}

	// Session-level statements (USE, SET FOREIGN_KEY_CHECKS) must hit the
	// same session every later statement runs on.
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return fmt.Errorf("failed to connect to %s:%d: %w", d.Config.Host, d.Config.Port, err)
	}

	d.db = db
	internal.Logger.Debug("Database connection established", "host", d.Config.Host, "database", d.Config.Database)
	return nil
}

// Healthy reports whether the handle has a live, verified session. Every data
// operation uses it as a precondition guard.
func (d *Database) Healthy() bool {
	if d.db == nil {
		return false
	}
	if err := d.db.Ping(); err != nil {
		internal.Logger.Debug("Health check failed", "host", d.Config.Host, "error", err)
		return false
	}
	return true
}

func (d *Database) Close() error {
	if d.db == nil {
		return nil
	}
	err := d.db.Close()
	d.db = nil
	return err
}

// Name returns the schema this handle operates on.
func (d *Database) Name() string {
	return d.Config.Database
}

// EnsureDatabase creates the handle's schema if absent and selects it.
func (d *Database) EnsureDatabase(ctx context.Context) error {
	if !d.Healthy() {
		return errNotConnected
	}

	if _, err := d.db.ExecContext(ctx, fmt.Sprintf("CREATE DATABASE IF NOT EXISTS `%s`", d.Config.Database)); err != nil {
		return fmt.Errorf("failed to create database %s: %w", d.Config.Database, err)
	}

	return d.use(ctx)
}

func (d *Database) use(ctx context.Context) error {
	if _, err := d.db.ExecContext(ctx, fmt.Sprintf("USE `%s`", d.Config.Database)); err != nil {
		return fmt.Errorf("failed to select database %s: %w", d.Config.Database, err)
	}
	return nil
}

// FetchTable reads every row of a table, returning the column names in the
// order the server reports them plus one value slice per row.
func (d *Database) FetchTable(ctx context.Context, table string) ([]string, [][]interface{}, error) {
	if !d.Healthy() {
		return nil, nil, errNotConnected
	}

	if err := d.use(ctx); err != nil {
		return nil, nil, err
	}

	rows, err := d.db.QueryContext(ctx, fmt.Sprintf("SELECT * FROM `%s`", table))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query table %s: %w", table, err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read columns of %s: %w", table, err)
	}

	var records [][]interface{}
	for rows.Next() {
		values := make([]interface{}, len(columns))
		valuePtrs := make([]interface{}, len(columns))
		for i := range values {
			valuePtrs[i] = &values[i]
		}

		if err := rows.Scan(valuePtrs...); err != nil {
			return nil, nil, fmt.Errorf("failed to scan row from %s: %w", table, err)
		}

		records = append(records, values)
	}

	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("failed to read rows from %s: %w", table, err)
	}

	internal.Logger.Debug("Fetched table", "table", table, "rows", len(records))
	return columns, records, nil
}
