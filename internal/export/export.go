package export

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/Rana718/synthgen/internal/generator"
)

const (
	CSVFileName    = "synthetic_data.csv"
	CSVContentType = "text/csv"
)

// Supported file formats.
const (
	FormatCSV    = "csv"
	FormatJSON   = "json"
	FormatSQLite = "sqlite"
)

// WriteCSV writes the header row followed by one line per record. There is
// no index column.
func WriteCSV(w io.Writer, table *generator.Table) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(table.ColumnNames()); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	if err := writer.WriteAll(table.Records()); err != nil {
		return fmt.Errorf("failed to write CSV records: %w", err)
	}
	return nil
}

// ReadCSV parses an export back into its header and records.
func ReadCSV(r io.Reader) ([]string, [][]string, error) {
	reader := csv.NewReader(r)
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse CSV: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil, fmt.Errorf("CSV has no header row")
	}
	return rows[0], rows[1:], nil
}

// WriteJSON writes the table as an array of row objects with keys in
// column order.
func WriteJSON(w io.Writer, table *generator.Table) error {
	names := table.ColumnNames()

	if _, err := io.WriteString(w, "[\n"); err != nil {
		return err
	}
	for i := 0; i < table.Rows(); i++ {
		row := table.Row(i)
		if _, err := io.WriteString(w, "  {"); err != nil {
			return err
		}
		for j, name := range names {
			key, _ := json.Marshal(name)
			val, err := json.Marshal(jsonValue(row[j]))
			if err != nil {
				return fmt.Errorf("failed to marshal %s: %w", name, err)
			}
			sep := ", "
			if j == 0 {
				sep = ""
			}
			if _, err := fmt.Fprintf(w, "%s%s: %s", sep, key, val); err != nil {
				return err
			}
		}
		end := "},\n"
		if i == table.Rows()-1 {
			end = "}\n"
		}
		if _, err := io.WriteString(w, end); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, "]\n")
	return err
}

func jsonValue(v any) any {
	if ts, ok := v.(time.Time); ok {
		return ts.Format(generator.DatetimeLayout)
	}
	return v
}

// ToFile writes the table under exportPath in the given format and returns
// the path of the created file.
func ToFile(ctx context.Context, table *generator.Table, exportPath, format string) (string, error) {
	if err := os.MkdirAll(exportPath, 0755); err != nil {
		return "", fmt.Errorf("failed to create export directory: %w", err)
	}

	timestamp := time.Now().Format("2006-01-02_15-04-05")

	switch format {
	case FormatCSV:
		return writeFile(filepath.Join(exportPath, fmt.Sprintf("synthetic_data_%s.csv", timestamp)), table, WriteCSV)
	case FormatJSON:
		return writeFile(filepath.Join(exportPath, fmt.Sprintf("synthetic_data_%s.json", timestamp)), table, WriteJSON)
	case FormatSQLite:
		filePath := filepath.Join(exportPath, fmt.Sprintf("synthetic_data_%s.db", timestamp))
		if err := ToSQLite(ctx, table, filePath, DefaultSQLiteTable); err != nil {
			return "", err
		}
		return filePath, nil
	default:
		return "", fmt.Errorf("unsupported export format: %s (supported: csv, json, sqlite)", format)
	}
}

func writeFile(filePath string, table *generator.Table, write func(io.Writer, *generator.Table) error) (string, error) {
	file, err := os.Create(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to create %s: %w", filePath, err)
	}

	if err := write(file, table); err != nil {
		file.Close()
		return "", fmt.Errorf("failed to write %s: %w", filePath, err)
	}
	if err := file.Close(); err != nil {
		return "", fmt.Errorf("failed to close %s: %w", filePath, err)
	}
	return filePath, nil
}
