package cmd

import (
	"strings"
	"testing"
)

type mockError struct {
	msg string
}

func (e *mockError) Error() string {
	return e.msg
}

func TestFormatError(t *testing.T) {
	tests := []struct {
		name          string
		inputError    error
		expectedStart string
	}{
		{
			name:          "connection refused error",
			inputError:    &mockError{"dial tcp: connection refused"},
			expectedStart: "❌ Cannot connect to MySQL server",
		},
		{
			name:          "access denied error",
			inputError:    &mockError{"Access denied for user 'root'"},
			expectedStart: "❌ MySQL authentication failed",
		},
		{
			name:          "unknown database error",
			inputError:    &mockError{"Error 1049: Unknown database 'nonexistent'"},
			expectedStart: "❌ Database does not exist",
		},
		{
			name:          "generic error",
			inputError:    &mockError{"some other error"},
			expectedStart: "❌ some other error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := formatError(tt.inputError)

			if !strings.HasPrefix(result.Error(), tt.expectedStart) {
				t.Errorf("Expected error to start with '%s', got '%s'",
					tt.expectedStart, result.Error())
			}
		})
	}
}

func TestCommandsRegistered(t *testing.T) {
	expected := map[string]bool{
		"clone":   false,
		"import":  false,
		"restore": false,
		"dump":    false,
	}

	for _, cmd := range rootCmd.Commands() {
		if _, ok := expected[cmd.Name()]; ok {
			expected[cmd.Name()] = true
		}
	}

	for name, found := range expected {
		if !found {
			t.Errorf("Command %s not registered on root", name)
		}
	}
}
