package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var importCmd = &cobra.Command{
	Use:           "import <file.json>",
	Short:         "Import a JSON table document into a destination table",
	Args:          cobra.ExactArgs(1),
	RunE:          runImport,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func runImport(cmd *cobra.Command, args []string) error {
	dest, _ := cmd.Flags().GetString("dest")
	table, _ := cmd.Flags().GetString("table")

	cfg, err := loadConfigAndLogging(cmd)
	if err != nil {
		return err
	}

	ctx := context.Background()

	db, err := openDatabase(ctx, cfg, dest)
	if err != nil {
		return formatError(err)
	}
	defer db.Close()

	inserted, err := db.ImportJSON(ctx, args[0], table)
	if err != nil {
		return formatError(err)
	}

	fmt.Printf("Imported %d row(s) into %s\n", inserted, table)
	return nil
}

func init() {
	rootCmd.AddCommand(importCmd)

	importCmd.Flags().String("dest", "", "Destination in format client/env (required)")
	importCmd.Flags().String("table", "", "Destination table name (required)")
	importCmd.MarkFlagRequired("dest")
	importCmd.MarkFlagRequired("table")
	importCmd.Flags().Bool("verbose", false, "Enable verbose logging")
}
