package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/Rana718/synthgen/internal/export"
	"github.com/Rana718/synthgen/internal/generator"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a synthetic table",
	Long: `
Generate a table of synthetic data and write it as CSV, JSON or SQLite.

Without --recipe the table has --columns default Numeric columns
(mean 0, std 1) named Column_1, Column_2, ...

Examples:
  synthgen generate --rows 500 --columns 3 > data.csv
  synthgen generate --recipe recipes/example.yaml --format json --out data.json
  synthgen generate --recipe recipes/example.yaml --format sqlite --export
  synthgen generate --rows 20 --preview 5 --seed 42`,
	Args: cobra.NoArgs,
	RunE: runGenerate,
}

func init() {
	rootCmd.AddCommand(generateCmd)
	addRequestFlags(generateCmd)
	generateCmd.Flags().StringP("format", "f", export.FormatCSV, "Output format: csv, json or sqlite")
	generateCmd.Flags().StringP("out", "o", "", "Output file (default stdout for csv and json)")
	generateCmd.Flags().Bool("export", false, "Write a timestamped file into the configured export directory")
	generateCmd.Flags().String("table", export.DefaultSQLiteTable, "Table name for sqlite output")
	generateCmd.Flags().Int("preview", 0, "Print the first N rows as a table")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	format, _ := cmd.Flags().GetString("format")
	out, _ := cmd.Flags().GetString("out")
	toExportDir, _ := cmd.Flags().GetBool("export")
	previewRows, _ := cmd.Flags().GetInt("preview")

	switch format {
	case export.FormatCSV, export.FormatJSON:
	case export.FormatSQLite:
		if out == "" && !toExportDir {
			return fmt.Errorf("sqlite output needs --out or --export")
		}
	default:
		return fmt.Errorf("unsupported format: %s (supported: csv, json, sqlite)", format)
	}

	req, recipeSeed, err := buildRequest(cmd, cfg)
	if err != nil {
		return err
	}

	table, err := newGenerator(cmd, cfg, recipeSeed).Generate(req)
	if err != nil {
		return fmt.Errorf("generation failed: %w", err)
	}

	// Status output stays off stdout when the data itself goes there.
	status := io.Writer(os.Stdout)
	toStdout := out == "" && !toExportDir
	if toStdout {
		status = os.Stderr
	}

	if previewRows > 0 {
		printPreview(status, table.Head(previewRows))
	}

	ctx := cmd.Context()
	var written string
	switch {
	case toExportDir:
		if err := cfg.EnsureDirectories(); err != nil {
			return fmt.Errorf("failed to create directories: %w", err)
		}
		written, err = export.ToFile(ctx, table, cfg.ExportPath, format)
	case toStdout && format == export.FormatJSON:
		err = export.WriteJSON(os.Stdout, table)
	case toStdout:
		err = export.WriteCSV(os.Stdout, table)
	default:
		written, err = writeOutput(ctx, cmd, table, out, format)
	}
	if err != nil {
		return err
	}

	if written != "" {
		color.New(color.FgGreen).Fprintf(status, "✅ Generated %d rows x %d columns: %s\n", table.Rows(), len(table.Columns), written)
	}
	return nil
}

func writeOutput(ctx context.Context, cmd *cobra.Command, table *generator.Table, out, format string) (string, error) {
	if dir := filepath.Dir(out); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return "", fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	if format == export.FormatSQLite {
		tableName, _ := cmd.Flags().GetString("table")
		if err := export.ToSQLite(ctx, table, out, tableName); err != nil {
			return "", err
		}
		return out, nil
	}

	file, err := os.Create(out)
	if err != nil {
		return "", fmt.Errorf("failed to create %s: %w", out, err)
	}
	defer file.Close()

	write := export.WriteCSV
	if format == export.FormatJSON {
		write = export.WriteJSON
	}
	if err := write(file, table); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", out, err)
	}
	return out, file.Close()
}

func printPreview(w io.Writer, table *generator.Table) {
	header := color.New(color.FgCyan, color.Bold)
	header.Fprintf(w, "📋 Preview (%d rows)\n", table.Rows())

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for i, name := range table.ColumnNames() {
		if i > 0 {
			fmt.Fprint(tw, "\t")
		}
		fmt.Fprint(tw, name)
	}
	fmt.Fprintln(tw)
	for _, record := range table.Records() {
		for i, value := range record {
			if i > 0 {
				fmt.Fprint(tw, "\t")
			}
			fmt.Fprint(tw, value)
		}
		fmt.Fprintln(tw)
	}
	tw.Flush()
	fmt.Fprintln(w)
}
