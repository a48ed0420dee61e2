package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var dumpCmd = &cobra.Command{
	Use:           "dump <table>",
	Short:         "Dump a table to a JSON document readable by import",
	Args:          cobra.ExactArgs(1),
	RunE:          runDump,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func runDump(cmd *cobra.Command, args []string) error {
	source, _ := cmd.Flags().GetString("source")
	out, _ := cmd.Flags().GetString("out")

	cfg, err := loadConfigAndLogging(cmd)
	if err != nil {
		return err
	}

	table := args[0]
	if out == "" {
		out = fmt.Sprintf("%s.json", table)
	}

	ctx := context.Background()

	db, err := openDatabase(ctx, cfg, source)
	if err != nil {
		return formatError(err)
	}
	defer db.Close()

	if err := db.DumpJSON(ctx, table, out); err != nil {
		return formatError(err)
	}

	fmt.Printf("Dumped %s to %s\n", table, out)
	return nil
}

func init() {
	rootCmd.AddCommand(dumpCmd)

	dumpCmd.Flags().String("source", "", "Source in format client/env (required)")
	dumpCmd.MarkFlagRequired("source")
	dumpCmd.Flags().String("out", "", "Output file (defaults to <table>.json)")
	dumpCmd.Flags().Bool("verbose", false, "Enable verbose logging")
}
