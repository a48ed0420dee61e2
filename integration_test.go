package main

import (
	"context"
	"os"
	"testing"

	"dbclone/config"
	"dbclone/mysql"
)

// Integration tests that exercise components working together.
func TestConfigIntegration(t *testing.T) {
	tempDir := t.TempDir()
	originalHome := os.Getenv("HOME")
	os.Setenv("HOME", tempDir)
	defer os.Setenv("HOME", originalHome)

	cfg, err := config.LoadConfig()
	if err != nil {
		t.Fatalf("Failed to load default config: %v", err)
	}

	connections := cfg.GetConfiguredConnections()
	if len(connections) == 0 {
		t.Fatal("Expected at least one MySQL connection in default config")
	}

	for _, conn := range connections {
		connStr, err := config.ParseConnectionString(conn)
		if err != nil {
			t.Errorf("Failed to parse connection string '%s': %v", conn, err)
		}

		if _, err := cfg.GetMySQLConfig(connStr.Client, connStr.Env); err != nil {
			t.Errorf("Failed to get MySQL config for '%s': %v", conn, err)
		}
	}
}

func TestClonerFromConfig(t *testing.T) {
	source := mysql.NewDatabase(mysql.Config{
		Host:     "source.example.com",
		Port:     3306,
		User:     "user",
		Password: "pass",
		Database: "sourcedb",
	})
	target := mysql.NewDatabase(mysql.Config{
		Host:     "dest.example.com",
		Port:     3306,
		User:     "user",
		Database: "destdb",
	})

	cloner := mysql.NewCloner(source, target)
	if cloner == nil {
		t.Fatal("Failed to create cloner")
	}

	// Neither handle is connected; the pipeline must refuse to run and leave
	// no side effects.
	if err := cloner.CloneDatabase(context.Background()); err == nil {
		t.Error("Expected error cloning with unconnected handles")
	}
	if err := cloner.CloneTable(context.Background(), "users"); err == nil {
		t.Error("Expected error cloning a table with unconnected handles")
	}
}
