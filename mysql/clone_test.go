package mysql

import (
	"context"
	"strings"
	"testing"
)

func TestNewCloner(t *testing.T) {
	source := NewDatabase(Config{Host: "source.example.com", Port: 3306, User: "user", Database: "sourcedb"})
	target := NewDatabase(Config{Host: "dest.example.com", Port: 3307, User: "destuser", Database: "destdb"})

	cloner := NewCloner(source, target)

	if cloner.Source != source {
		t.Error("Source handle not set correctly")
	}
	if cloner.Target != target {
		t.Error("Target handle not set correctly")
	}
}

func TestRewriteSchemaRefs(t *testing.T) {
	tests := []struct {
		name     string
		ddl      string
		expected string
	}{
		{
			name:     "qualified table reference",
			ddl:      "CREATE TABLE `sourcedb`.`users` (`id` int NOT NULL)",
			expected: "CREATE TABLE `destdb`.`users` (`id` int NOT NULL)",
		},
		{
			name:     "no schema reference",
			ddl:      "CREATE TABLE `users` (`id` int NOT NULL)",
			expected: "CREATE TABLE `users` (`id` int NOT NULL)",
		},
		{
			name:     "reference inside a comment is also rewritten",
			ddl:      "CREATE TABLE `users` (`id` int) COMMENT='copied from `sourcedb`'",
			expected: "CREATE TABLE `users` (`id` int) COMMENT='copied from `destdb`'",
		},
		{
			name:     "unquoted occurrence left alone",
			ddl:      "CREATE TABLE `users` (`sourcedb_id` int)",
			expected: "CREATE TABLE `users` (`sourcedb_id` int)",
		},
		{
			name:     "multiple references",
			ddl:      "CONSTRAINT FOREIGN KEY (`uid`) REFERENCES `sourcedb`.`users` (`id`), KEY `k` (`uid`) /* `sourcedb` */",
			expected: "CONSTRAINT FOREIGN KEY (`uid`) REFERENCES `destdb`.`users` (`id`), KEY `k` (`uid`) /* `destdb` */",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := rewriteSchemaRefs(tt.ddl, "sourcedb", "destdb"); got != tt.expected {
				t.Errorf("Expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestCloneDatabaseRequiresConnections(t *testing.T) {
	cloner := NewCloner(
		NewDatabase(Config{Host: "localhost", Port: 3306, User: "root", Database: "sourcedb"}),
		NewDatabase(Config{Host: "localhost", Port: 3306, User: "root", Database: "destdb"}),
	)

	err := cloner.CloneDatabase(context.Background())
	if err == nil {
		t.Error("Expected error cloning with unconnected handles")
	}
	if !strings.Contains(err.Error(), "not connected") {
		t.Errorf("Expected not-connected error, got %v", err)
	}
}

func TestCloneTableRequiresConnections(t *testing.T) {
	cloner := NewCloner(
		NewDatabase(Config{Host: "localhost", Port: 3306, User: "root", Database: "sourcedb"}),
		NewDatabase(Config{Host: "localhost", Port: 3306, User: "root", Database: "destdb"}),
	)

	err := cloner.CloneTable(context.Background(), "users")
	if err == nil {
		t.Error("Expected error cloning with unconnected handles")
	}
	if !strings.Contains(err.Error(), "not connected") {
		t.Errorf("Expected not-connected error, got %v", err)
	}
}

func TestListTablesRequiresConnection(t *testing.T) {
	cloner := NewCloner(
		NewDatabase(Config{Host: "localhost", Port: 3306, User: "root", Database: "sourcedb"}),
		NewDatabase(Config{Host: "localhost", Port: 3306, User: "root", Database: "destdb"}),
	)

	if _, err := cloner.ListTables(context.Background()); err == nil {
		t.Error("Expected error listing tables on an unconnected source")
	}
}
