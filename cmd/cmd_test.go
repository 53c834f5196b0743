package cmd

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Rana718/synthgen/internal/config"
	"github.com/Rana718/synthgen/internal/database"
	"github.com/Rana718/synthgen/internal/generator"
	"github.com/Rana718/synthgen/template"
)

// executeRoot runs the CLI with args and restores flag and viper state
// afterwards, since the commands are package-level singletons.
func executeRoot(t *testing.T, args ...string) error {
	t.Helper()
	reset := func() {
		viper.Reset()
		cfgFile = ""
		resetFlags(rootCmd)
	}
	reset()
	t.Cleanup(reset)

	rootCmd.SetArgs(args)
	return rootCmd.ExecuteContext(context.Background())
}

func resetFlags(cmd *cobra.Command) {
	for _, flags := range []*pflag.FlagSet{cmd.Flags(), cmd.PersistentFlags()} {
		flags.VisitAll(func(f *pflag.Flag) {
			f.Value.Set(f.DefValue)
			f.Changed = false
		})
	}
	for _, sub := range cmd.Commands() {
		resetFlags(sub)
	}
}

func newRequestCommand(t *testing.T, args ...string) *cobra.Command {
	t.Helper()
	cmd := &cobra.Command{Use: "test"}
	addRequestFlags(cmd)
	require.NoError(t, cmd.ParseFlags(args))
	return cmd
}

func TestBuildRequestDefaults(t *testing.T) {
	cfg := config.Default()

	req, seed, err := buildRequest(newRequestCommand(t), cfg)
	require.NoError(t, err)
	assert.Nil(t, seed)
	assert.Equal(t, cfg.Generator.Rows, req.Rows)
	require.Len(t, req.Columns, cfg.Generator.Columns)
	assert.Equal(t, generator.DefaultColumn("Column_1"), req.Columns[0])
}

func TestBuildRequestFlags(t *testing.T) {
	req, _, err := buildRequest(newRequestCommand(t, "--rows", "0", "--columns", "2"), config.Default())
	require.NoError(t, err)
	assert.Equal(t, 0, req.Rows)
	assert.Len(t, req.Columns, 2)

	_, _, err = buildRequest(newRequestCommand(t, "--columns=-1"), config.Default())
	var invalid *generator.InvalidParameterError
	assert.ErrorAs(t, err, &invalid)
}

func TestBuildRequestRecipe(t *testing.T) {
	path := filepath.Join(t.TempDir(), "recipe.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
rows: 30
seed: 9
columns:
  - name: city
    kind: categorical
    categories: "Rome, Oslo"
  - kind: Text
`), 0644))

	req, seed, err := buildRequest(newRequestCommand(t, "--recipe", path), config.Default())
	require.NoError(t, err)
	require.NotNil(t, seed)
	assert.Equal(t, uint64(9), *seed)
	assert.Equal(t, 30, req.Rows)
	assert.Equal(t, []string{"Rome", "Oslo"}, req.Columns[0].Categories)
	assert.Equal(t, "Column_2", req.Columns[1].Name)

	req, _, err = buildRequest(newRequestCommand(t, "--recipe", path, "--rows", "3"), config.Default())
	require.NoError(t, err)
	assert.Equal(t, 3, req.Rows, "--rows overrides the recipe")
}

func TestBuildRequestRecipeUnsupportedKind(t *testing.T) {
	path := filepath.Join(t.TempDir(), "recipe.yaml")
	require.NoError(t, os.WriteFile(path, []byte("rows: 1\ncolumns:\n  - name: x\n    kind: Boolean\n"), 0644))

	_, _, err := buildRequest(newRequestCommand(t, "--recipe", path), config.Default())
	var unsupported *generator.UnsupportedTypeError
	require.ErrorAs(t, err, &unsupported)
	assert.Equal(t, "x", unsupported.Column)
}

func TestNewGeneratorSeedPrecedence(t *testing.T) {
	cfg := config.Default()
	configSeed := uint64(1)
	cfg.Generator.Seed = &configSeed
	req := generator.Request{Rows: 5, Columns: []generator.ColumnSpec{generator.TextColumn("t")}}

	generate := func(cmd *cobra.Command, recipeSeed *uint64) []any {
		table, err := newGenerator(cmd, cfg, recipeSeed).Generate(req)
		require.NoError(t, err)
		return table.Columns[0].Values
	}

	recipeSeed := uint64(1)
	fromConfig := generate(newRequestCommand(t), nil)
	fromRecipe := generate(newRequestCommand(t), &recipeSeed)
	fromFlag := generate(newRequestCommand(t, "--seed", "2"), &recipeSeed)

	assert.Equal(t, fromConfig, fromRecipe)
	assert.NotEqual(t, fromConfig, fromFlag)
}

func TestHandleEnvFile(t *testing.T) {
	dir := t.TempDir()
	envPath := filepath.Join(dir, ".env")
	entry := "DATABASE_URL=sqlite://./synthetic.sqlite\n"

	require.NoError(t, handleEnvFile(envPath, entry))
	data, err := os.ReadFile(envPath)
	require.NoError(t, err)
	assert.Equal(t, entry, string(data))

	require.NoError(t, handleEnvFile(envPath, "DATABASE_URL=other\n"))
	data, err = os.ReadFile(envPath)
	require.NoError(t, err)
	assert.Equal(t, entry, string(data), "existing DATABASE_URL is kept")

	other := filepath.Join(dir, "other.env")
	require.NoError(t, os.WriteFile(other, []byte("PORT=1"), 0644))
	require.NoError(t, handleEnvFile(other, entry))
	data, err = os.ReadFile(other)
	require.NoError(t, err)
	assert.Equal(t, "PORT=1\n\n# Added by synthgen\n"+entry, string(data))
}

func TestWriteOutputFormats(t *testing.T) {
	table, err := generator.New(generator.WithSeed(3)).Generate(generator.Request{
		Rows:    4,
		Columns: []generator.ColumnSpec{generator.NumericColumn("n", 0, 1)},
	})
	require.NoError(t, err)

	cmd := &cobra.Command{Use: "test"}
	cmd.Flags().String("table", "synthetic_data", "")
	dir := t.TempDir()

	for _, format := range []string{"csv", "json", "sqlite"} {
		out := filepath.Join(dir, "nested", "data."+format)
		written, err := writeOutput(context.Background(), cmd, table, out, format)
		require.NoError(t, err, format)
		assert.Equal(t, out, written)
		assert.FileExists(t, out)
	}
}

func TestPushSQLiteURL(t *testing.T) {
	path := filepath.Join(t.TempDir(), "x.sqlite")

	require.NoError(t, executeRoot(t, "push", "--db", "sqlite://"+path, "--rows", "10", "--columns", "2"))

	db, err := database.Open(context.Background(), "sqlite", "sqlite://"+path)
	require.NoError(t, err)
	defer db.Close()

	var count int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM synthetic_data`).Scan(&count))
	assert.Equal(t, 10, count)
}

func TestResolveProvider(t *testing.T) {
	newPushFlags := func(args ...string) *cobra.Command {
		cmd := &cobra.Command{Use: "test"}
		cmd.Flags().String("db", "", "")
		cmd.Flags().String("provider", "", "")
		require.NoError(t, cmd.ParseFlags(args))
		return cmd
	}

	tests := []struct {
		name string
		args []string
		url  string
		want string
	}{
		{"config provider for env url", nil, "sqlite://./x.sqlite", "postgresql"},
		{"scheme of --db", []string{"--db", "sqlite://./x.sqlite"}, "sqlite://./x.sqlite", "sqlite"},
		{"mysql scheme", []string{"--db", "mysql://u:p@localhost:3306/db"}, "mysql://u:p@localhost:3306/db", "mysql"},
		{"unknown scheme", []string{"--db", "u:p@tcp(localhost:3306)/db"}, "u:p@tcp(localhost:3306)/db", "postgresql"},
		{"explicit provider", []string{"--db", "u:p@tcp(localhost:3306)/db", "--provider", "mysql"}, "u:p@tcp(localhost:3306)/db", "mysql"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, resolveProvider(newPushFlags(tt.args...), "postgresql", tt.url))
		})
	}
}

func TestSelectDatabaseType(t *testing.T) {
	dbType, err := selectDatabaseType(false, false, false)
	require.NoError(t, err)
	assert.Equal(t, template.PostgreSQL, dbType)

	dbType, err = selectDatabaseType(true, false, false)
	require.NoError(t, err)
	assert.Equal(t, template.SQLite, dbType)

	dbType, err = selectDatabaseType(false, false, true)
	require.NoError(t, err)
	assert.Equal(t, template.MySQL, dbType)

	_, err = selectDatabaseType(true, false, true)
	assert.Error(t, err)
}

func TestGenerateExportCreatesDirectory(t *testing.T) {
	dir := t.TempDir()
	exportPath := filepath.Join(dir, "nested", "exports")
	cfgPath := filepath.Join(dir, "synthgen.config.json")
	require.NoError(t, os.WriteFile(cfgPath, []byte(`{"export_path": "`+filepath.ToSlash(exportPath)+`"}`), 0644))

	require.NoError(t, executeRoot(t, "generate", "--config", cfgPath, "--export", "--format", "json", "--rows", "10", "--columns", "1"))

	entries, err := os.ReadDir(exportPath)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Regexp(t, `^synthetic_data_.*\.json$`, entries[0].Name())
}
