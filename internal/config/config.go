package config

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"

	"github.com/Rana718/synthgen/internal/database"
)

const FileName = "synthgen.config.json"

type Config struct {
	Version    string    `json:"version" mapstructure:"version"`
	ExportPath string    `json:"export_path" mapstructure:"export_path"`
	Generator  Generator `json:"generator" mapstructure:"generator"`
	Studio     Studio    `json:"studio" mapstructure:"studio"`
	Database   Database  `json:"database" mapstructure:"database"`
}

// Generator holds the defaults and bounds of the row/column inputs.
type Generator struct {
	Rows        int     `json:"rows" mapstructure:"rows"`
	Columns     int     `json:"columns" mapstructure:"columns"`
	MinRows     int     `json:"min_rows" mapstructure:"min_rows"`
	MaxRows     int     `json:"max_rows" mapstructure:"max_rows"`
	MinColumns  int     `json:"min_columns" mapstructure:"min_columns"`
	MaxColumns  int     `json:"max_columns" mapstructure:"max_columns"`
	PreviewRows int     `json:"preview_rows" mapstructure:"preview_rows"`
	Seed        *uint64 `json:"seed,omitempty" mapstructure:"seed"`
}

type Studio struct {
	Port        int           `json:"port" mapstructure:"port"`
	Browser     bool          `json:"browser" mapstructure:"browser"`
	SessionIdle time.Duration `json:"session_idle" mapstructure:"session_idle"`
}

type Database struct {
	Provider string `json:"provider" mapstructure:"provider"`
	URLEnv   string `json:"url_env" mapstructure:"url_env"`
	Table    string `json:"table" mapstructure:"table"`
	Batch    int    `json:"batch" mapstructure:"batch"`
}

func Load() (*Config, error) {
	var cfg Config

	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	cfg.applyDefaults()
	return &cfg, nil
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	cfg := &Config{Studio: Studio{Browser: true}}
	cfg.applyDefaults()
	return cfg
}

func (c *Config) applyDefaults() {
	if c.Version == "" {
		c.Version = "1"
	}
	if c.ExportPath == "" {
		c.ExportPath = "exports"
	}

	g := &c.Generator
	// Zero is a valid lower bound, so only an absent key takes the default.
	if g.MinRows == 0 && !viper.IsSet("generator.min_rows") {
		g.MinRows = 10
	}
	if g.MaxRows == 0 {
		g.MaxRows = 1000
	}
	if g.MinColumns == 0 && !viper.IsSet("generator.min_columns") {
		g.MinColumns = 1
	}
	if g.MaxColumns == 0 {
		g.MaxColumns = 20
	}
	if g.Rows == 0 && !viper.IsSet("generator.rows") {
		g.Rows = 100
	}
	if g.Columns == 0 {
		g.Columns = 5
	}
	if g.PreviewRows == 0 {
		g.PreviewRows = 5
	}

	if c.Studio.Port == 0 {
		c.Studio.Port = 5555
	}
	if c.Studio.SessionIdle == 0 {
		c.Studio.SessionIdle = 30 * time.Minute
	}
	if !viper.IsSet("studio.browser") && !c.Studio.Browser {
		c.Studio.Browser = true
	}

	if c.Database.Provider == "" {
		c.Database.Provider = "postgresql"
	}
	if c.Database.URLEnv == "" {
		c.Database.URLEnv = "DATABASE_URL"
	}
	if c.Database.Table == "" {
		c.Database.Table = "synthetic_data"
	}
	if c.Database.Batch == 0 {
		c.Database.Batch = database.DefaultBatchSize
	}
}

func (c *Config) GetDatabaseURL() (string, error) {
	dbURL := os.Getenv(c.Database.URLEnv)
	if dbURL == "" {
		return "", fmt.Errorf("database URL not found in environment variable %s", c.Database.URLEnv)
	}
	return dbURL, nil
}

func (c *Config) EnsureDirectories() error {
	if c.ExportPath == "" || c.ExportPath == "." {
		return nil
	}
	if err := os.MkdirAll(c.ExportPath, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", c.ExportPath, err)
	}
	return nil
}

func (c *Config) Validate() error {
	if _, err := database.NewDialect(c.Database.Provider); err != nil {
		return err
	}

	g := c.Generator
	if g.MinRows < 0 || g.MinRows > g.MaxRows {
		return fmt.Errorf("invalid row bounds: min_rows=%d max_rows=%d", g.MinRows, g.MaxRows)
	}
	if g.MinColumns < 0 || g.MinColumns > g.MaxColumns {
		return fmt.Errorf("invalid column bounds: min_columns=%d max_columns=%d", g.MinColumns, g.MaxColumns)
	}
	if g.Rows < g.MinRows || g.Rows > g.MaxRows {
		return fmt.Errorf("default rows %d outside [%d, %d]", g.Rows, g.MinRows, g.MaxRows)
	}
	if g.Columns < g.MinColumns || g.Columns > g.MaxColumns {
		return fmt.Errorf("default columns %d outside [%d, %d]", g.Columns, g.MinColumns, g.MaxColumns)
	}
	if g.PreviewRows < 0 {
		return fmt.Errorf("preview_rows cannot be negative")
	}

	if c.Studio.Port <= 0 || c.Studio.Port > 65535 {
		return fmt.Errorf("invalid studio port: %d", c.Studio.Port)
	}

	if !database.IsValidIdentifier(c.Database.Table) {
		return fmt.Errorf("invalid database table name: %s", c.Database.Table)
	}

	if c.ExportPath == "" {
		return fmt.Errorf("export_path cannot be empty")
	}

	return nil
}

// ClampRows bounds n to the configured row range.
func (g Generator) ClampRows(n int) int {
	return clamp(n, g.MinRows, g.MaxRows)
}

// ClampColumns bounds n to the configured column range.
func (g Generator) ClampColumns(n int) int {
	return clamp(n, g.MinColumns, g.MaxColumns)
}

func clamp(n, lo, hi int) int {
	if n < lo {
		return lo
	}
	if n > hi {
		return hi
	}
	return n
}

func IsInitialized() bool {
	_, err := os.Stat(FileName)
	return err == nil
}
