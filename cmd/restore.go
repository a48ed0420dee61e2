package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"dbclone/internal"
)

var restoreCmd = &cobra.Command{
	Use:           "restore <file.sql>",
	Short:         "Execute a SQL script against a destination schema",
	Long: `Execute every statement in a SQL script against the destination schema.

Statements are split on ";" literally; scripts whose string literals contain
semicolons are not supported.`,
	Args:          cobra.ExactArgs(1),
	RunE:          runRestore,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func runRestore(cmd *cobra.Command, args []string) error {
	dest, _ := cmd.Flags().GetString("dest")

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

	message := fmt.Sprintf("Restoring %s into %s", args[0], db.Name())
	err = internal.WithSpinner(message, func() error {
		return db.RestoreSQLFile(ctx, args[0])
	})
	if err != nil {
		return formatError(err)
	}

	return nil
}

func init() {
	rootCmd.AddCommand(restoreCmd)

	restoreCmd.Flags().String("dest", "", "Destination in format client/env (required)")
	restoreCmd.MarkFlagRequired("dest")
	restoreCmd.Flags().Bool("verbose", false, "Enable verbose logging")
}
