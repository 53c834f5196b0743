package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/Rana718/synthgen/internal/database"
)

var pushCmd = &cobra.Command{
	Use:   "push",
	Short: "Generate a table and load it into a database",
	Long: `
Generate a synthetic table and insert it into the configured database.
The table is created if it does not exist; --drop recreates it first.

Examples:
  synthgen push --rows 1000 --columns 4
  synthgen push --recipe recipes/example.yaml --table orders --drop
  synthgen push --db "sqlite://./synthetic.sqlite"
  synthgen push --db "u:p@tcp(localhost:3306)/app" --provider mysql`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		dbURL, _ := cmd.Flags().GetString("db")
		if dbURL == "" {
			if dbURL, err = cfg.GetDatabaseURL(); err != nil {
				return err
			}
		} else {
			fmt.Printf("📊 Using database: %s\n", maskDBURL(dbURL))
		}
		provider := resolveProvider(cmd, cfg.Database.Provider, dbURL)

		tableName := cfg.Database.Table
		if cmd.Flags().Changed("table") {
			tableName, _ = cmd.Flags().GetString("table")
		}
		batch := cfg.Database.Batch
		if cmd.Flags().Changed("batch") {
			batch, _ = cmd.Flags().GetInt("batch")
		}
		drop, _ := cmd.Flags().GetBool("drop")

		req, recipeSeed, err := buildRequest(cmd, cfg)
		if err != nil {
			return err
		}
		table, err := newGenerator(cmd, cfg, recipeSeed).Generate(req)
		if err != nil {
			return fmt.Errorf("generation failed: %w", err)
		}

		ctx := cmd.Context()
		dialect, err := database.NewDialect(provider)
		if err != nil {
			return err
		}
		db, err := database.Open(ctx, provider, dbURL)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer db.Close()

		color.Cyan("🌱 Inserting %d rows into %s...", table.Rows(), tableName)
		inserted, err := database.NewSink(db, dialect).WriteTable(ctx, tableName, table, database.WriteOptions{Drop: drop, Batch: batch})
		if err != nil {
			return err
		}

		color.Green("✅ Inserted %d rows into %s", inserted, tableName)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(pushCmd)
	addRequestFlags(pushCmd)
	pushCmd.Flags().String("table", "", "Target table (default from config)")
	pushCmd.Flags().String("db", "", "Database URL (overrides config/env)")
	pushCmd.Flags().String("provider", "", "Database provider: postgresql, mysql or sqlite (default from the URL scheme, then config)")
	pushCmd.Flags().Bool("drop", false, "Drop and recreate the table first")
	pushCmd.Flags().Int("batch", 0, "Rows per INSERT statement (default from config)")
}

// resolveProvider prefers --provider, then the scheme of a --db URL, then
// the configured provider.
func resolveProvider(cmd *cobra.Command, configured, dbURL string) string {
	if provider, _ := cmd.Flags().GetString("provider"); provider != "" {
		return provider
	}
	if cmd.Flags().Changed("db") {
		if provider, ok := database.ProviderFromURL(dbURL); ok {
			return provider
		}
	}
	return configured
}
