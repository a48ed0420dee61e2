package internal

import (
	"fmt"
	"sort"

	"github.com/AlecAivazis/survey/v2"
)

// TableSelector handles interactive selection of tables to clone.
type TableSelector struct {
	tables []string
}

func NewTableSelector(tables []string) *TableSelector {
	// Sort for consistent display; clone order still follows the server's
	// enumeration, not the prompt.
	sorted := make([]string, len(tables))
	copy(sorted, tables)
	sort.Strings(sorted)

	return &TableSelector{tables: sorted}
}

// SelectTables presents a checkbox prompt over the source tables and returns
// the confirmed selection.
func (ts *TableSelector) SelectTables() ([]string, error) {
	if len(ts.tables) == 0 {
		return nil, fmt.Errorf("no tables available for selection")
	}

	fmt.Printf("\nFound %d table(s) in the source schema.\n", len(ts.tables))
	fmt.Println("Use ↑/↓ to navigate, SPACE to select/deselect, ENTER to confirm")

	var selected []string
	prompt := &survey.MultiSelect{
		Message:  "Select tables to clone:",
		Options:  ts.tables,
		PageSize: 15,
	}

	if err := survey.AskOne(prompt, &selected, survey.WithPageSize(15)); err != nil {
		if err.Error() == "interrupt" {
			return nil, fmt.Errorf("selection cancelled by user")
		}
		return nil, fmt.Errorf("selection error: %w", err)
	}

	if len(selected) == 0 {
		return nil, fmt.Errorf("no tables selected")
	}

	var confirm bool
	confirmPrompt := &survey.Confirm{
		Message: fmt.Sprintf("Proceed with cloning %d selected table(s)?", len(selected)),
		Default: true,
	}
	if err := survey.AskOne(confirmPrompt, &confirm); err != nil {
		return nil, fmt.Errorf("confirmation error: %w", err)
	}
	if !confirm {
		return nil, fmt.Errorf("operation cancelled by user")
	}

	return selected, nil
}
