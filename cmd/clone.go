package cmd

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"dbclone/config"
	"dbclone/internal"
	"dbclone/mysql"
)

var cloneCmd = &cobra.Command{
	Use:           "clone",
	Short:         "Clone a schema from a source instance to a target instance",
	Args:          cobra.NoArgs,
	RunE:          runClone,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func runClone(cmd *cobra.Command, args []string) error {
	source, _ := cmd.Flags().GetString("source")
	dest, _ := cmd.Flags().GetString("dest")
	table, _ := cmd.Flags().GetString("table")
	interactive, _ := cmd.Flags().GetBool("interactive")

	cfg, err := loadConfigAndLogging(cmd)
	if err != nil {
		return err
	}

	ctx := context.Background()

	sourceDB, err := openDatabase(ctx, cfg, source)
	if err != nil {
		return formatError(err)
	}
	defer sourceDB.Close()

	targetDB, err := openDatabase(ctx, cfg, dest)
	if err != nil {
		return formatError(err)
	}
	defer targetDB.Close()

	internal.Logger.Info("Starting clone operation",
		"source", source,
		"dest", dest,
		"table", table)

	cloner := mysql.NewCloner(sourceDB, targetDB)

	start := time.Now()
	defer func() {
		internal.Logger.Info("Clone completed", "duration", time.Since(start))
	}()

	switch {
	case interactive:
		tables, err := cloner.ListTables(ctx)
		if err != nil {
			return formatError(err)
		}
		selected, err := internal.NewTableSelector(tables).SelectTables()
		if err != nil {
			return err
		}
		for _, t := range selected {
			if err := cloner.CloneTable(ctx, t); err != nil {
				return formatError(err)
			}
		}
	case table != "":
		if err := cloner.CloneTable(ctx, table); err != nil {
			return formatError(err)
		}
	default:
		message := fmt.Sprintf("Cloning %s to %s", sourceDB.Name(), targetDB.Name())
		err := internal.WithSpinner(message, func() error {
			return cloner.CloneDatabase(ctx)
		})
		if err != nil {
			return formatError(err)
		}
	}

	return nil
}

// loadConfigAndLogging applies the --verbose flag and loads the config file.
func loadConfigAndLogging(cmd *cobra.Command) (*config.Config, error) {
	verbose, _ := cmd.Flags().GetBool("verbose")
	if verbose {
		internal.VerboseMode = true
		internal.SetLogLevel("debug")
	} else {
		internal.SetLogLevel("error")
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

// openDatabase resolves a client/env connection string against the config
// file and connects the handle.
func openDatabase(ctx context.Context, cfg *config.Config, connStr string) (*mysql.Database, error) {
	conn, err := config.ParseConnectionString(connStr)
	if err != nil {
		return nil, err
	}

	dbConfig, err := cfg.GetMySQLConfig(conn.Client, conn.Env)
	if err != nil {
		return nil, err
	}

	db := mysql.NewDatabase(*dbConfig)
	if err := db.Connect(ctx); err != nil {
		return nil, err
	}
	return db, nil
}

func formatError(err error) error {
	errStr := err.Error()

	if strings.Contains(errStr, "connection refused") {
		return fmt.Errorf("❌ Cannot connect to MySQL server. Please check your connection settings.")
	}

	if strings.Contains(errStr, "Access denied") {
		return fmt.Errorf("❌ MySQL authentication failed. Please check your username and password.")
	}

	if strings.Contains(errStr, "Unknown database") {
		return fmt.Errorf("❌ Database does not exist. Please check your database name.")
	}

	return fmt.Errorf("❌ %s", errStr)
}

func init() {
	rootCmd.AddCommand(cloneCmd)

	cloneCmd.Flags().String("source", "", "Source in format client/env (required)")
	cloneCmd.Flags().String("dest", "", "Destination in format client/env (required)")
	cloneCmd.MarkFlagRequired("source")
	cloneCmd.MarkFlagRequired("dest")

	cloneCmd.Flags().String("table", "", "Clone a single table instead of the whole schema")
	cloneCmd.Flags().Bool("interactive", false, "Select tables to clone interactively")
	cloneCmd.Flags().Bool("verbose", false, "Enable verbose logging")
}
