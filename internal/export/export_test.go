package export

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/Rana718/synthgen/internal/generator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var anchor = time.Date(2026, 10, 19, 9, 15, 0, 0, time.UTC)

func sampleTable(t *testing.T, rows int) *generator.Table {
	t.Helper()
	g := generator.New(generator.WithSeed(21), generator.WithClock(func() time.Time { return anchor }))
	table, err := g.Generate(generator.Request{Rows: rows, Columns: []generator.ColumnSpec{
		generator.NumericColumn("Column_1", 0, 1),
		generator.CategoricalColumn("Column_2", []string{"a,b", "plain", `quo"te`}),
		generator.DatetimeColumn("Column_3"),
		generator.TextColumn("Column_4"),
	}})
	require.NoError(t, err)
	return table
}

func TestCSVRoundTrip(t *testing.T) {
	table := sampleTable(t, 50)

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, table))

	header, records, err := ReadCSV(&buf)
	require.NoError(t, err)

	assert.Equal(t, table.ColumnNames(), header)
	require.Len(t, records, 50)

	for i, record := range records {
		row := table.Row(i)

		num, err := strconv.ParseFloat(record[0], 64)
		require.NoError(t, err)
		assert.Equal(t, row[0].(float64), num)

		assert.Equal(t, row[1], record[1])

		ts, err := time.Parse(generator.DatetimeLayout, record[2])
		require.NoError(t, err)
		assert.True(t, row[2].(time.Time).Equal(ts))

		assert.Equal(t, row[3], record[3])
	}
}

func TestCSVHeaderOnlyForZeroRows(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, sampleTable(t, 0)))
	assert.Equal(t, "Column_1,Column_2,Column_3,Column_4\n", buf.String())
}

func TestReadCSVEmpty(t *testing.T) {
	_, _, err := ReadCSV(bytes.NewReader(nil))
	assert.Error(t, err)
}

func TestWriteJSON(t *testing.T) {
	table := sampleTable(t, 3)

	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, table))

	var rows []map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rows))
	require.Len(t, rows, 3)
	assert.Equal(t, table.Row(0)[3], rows[0]["Column_4"])
	assert.Equal(t, generator.FormatValue(table.Row(1)[2]), rows[1]["Column_3"])

	buf.Reset()
	require.NoError(t, WriteJSON(&buf, sampleTable(t, 0)))
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rows))
	assert.Empty(t, rows)
}

func TestToFile(t *testing.T) {
	dir := t.TempDir()
	table := sampleTable(t, 8)
	ctx := context.Background()

	csvPath, err := ToFile(ctx, table, dir, FormatCSV)
	require.NoError(t, err)
	assert.Equal(t, ".csv", filepath.Ext(csvPath))
	f, err := os.Open(csvPath)
	require.NoError(t, err)
	defer f.Close()
	_, records, err := ReadCSV(f)
	require.NoError(t, err)
	assert.Len(t, records, 8)

	jsonPath, err := ToFile(ctx, table, dir, FormatJSON)
	require.NoError(t, err)
	assert.FileExists(t, jsonPath)

	_, err = ToFile(ctx, table, dir, "xlsx")
	assert.ErrorContains(t, err, "unsupported export format")
}

func TestToSQLite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.db")
	table := sampleTable(t, 12)
	ctx := context.Background()

	require.NoError(t, ToSQLite(ctx, table, path, DefaultSQLiteTable))
	require.NoError(t, ToSQLite(ctx, table, path, DefaultSQLiteTable))

	db, err := sql.Open("sqlite3", path)
	require.NoError(t, err)
	defer db.Close()

	var count int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM synthetic_data`).Scan(&count))
	assert.Equal(t, 12, count, "a second export replaces the table")
}
