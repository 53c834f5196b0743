package generator

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"
)

const (
	DefaultMean = 0.0
	DefaultStd  = 1.0

	// TextLength is the length of every generated Text value.
	TextLength = 8
	// DatetimeSpanDays bounds the Datetime range: [now-365d, now].
	DatetimeSpanDays = 365
)

// DefaultCategories is used when a Categorical column has no categories set.
var DefaultCategories = []string{"A", "B", "C"}

// ColumnSpec declares one column of the table. Mean and Std only apply to
// Numeric columns, Categories only to Categorical ones.
type ColumnSpec struct {
	Name       string   `json:"name" yaml:"name"`
	Kind       Kind     `json:"kind" yaml:"kind"`
	Mean       float64  `json:"mean,omitempty" yaml:"mean,omitempty"`
	Std        float64  `json:"std,omitempty" yaml:"std,omitempty"`
	Categories []string `json:"categories,omitempty" yaml:"categories,omitempty"`
}

// MarshalJSON always writes categories for a Categorical column, so an
// explicitly empty list stays distinguishable from the defaults.
func (c ColumnSpec) MarshalJSON() ([]byte, error) {
	type plain ColumnSpec
	if c.Kind != Categorical {
		return json.Marshal(plain(c))
	}
	return json.Marshal(struct {
		plain
		Categories []string `json:"categories"`
	}{plain(c), c.Categories})
}

// UnmarshalJSON applies the defaults to a Numeric column without mean or std.
func (c *ColumnSpec) UnmarshalJSON(data []byte) error {
	type plain ColumnSpec
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}

	if p.Kind == Numeric {
		var given struct {
			Mean *float64 `json:"mean"`
			Std  *float64 `json:"std"`
		}
		if err := json.Unmarshal(data, &given); err != nil {
			return err
		}
		if given.Mean == nil {
			p.Mean = DefaultMean
		}
		if given.Std == nil {
			p.Std = DefaultStd
		}
	}
	*c = ColumnSpec(p)
	return nil
}

// Request is everything needed to produce one table.
type Request struct {
	Rows    int          `json:"rows" yaml:"rows"`
	Columns []ColumnSpec `json:"columns" yaml:"columns"`
}

// ColumnName returns the conventional name of the 1-based column index.
func ColumnName(index int) string {
	return fmt.Sprintf("Column_%d", index)
}

// NumericColumn builds a Numeric spec.
func NumericColumn(name string, mean, std float64) ColumnSpec {
	return ColumnSpec{Name: name, Kind: Numeric, Mean: mean, Std: std}
}

// CategoricalColumn builds a Categorical spec. A nil list means the defaults.
func CategoricalColumn(name string, categories []string) ColumnSpec {
	return ColumnSpec{Name: name, Kind: Categorical, Categories: categories}
}

func DatetimeColumn(name string) ColumnSpec {
	return ColumnSpec{Name: name, Kind: Datetime}
}

func TextColumn(name string) ColumnSpec {
	return ColumnSpec{Name: name, Kind: Text}
}

// DefaultColumn is what an unconfigured column turns into.
func DefaultColumn(name string) ColumnSpec {
	return NumericColumn(name, DefaultMean, DefaultStd)
}

// ParseCategories splits comma-separated input and trims every entry.
// Duplicates and empty entries are kept as-is, so "" yields [""].
func ParseCategories(input string) []string {
	parts := strings.Split(input, ",")
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}
	return parts
}

// categories resolves the effective category list of a Categorical spec.
func (c ColumnSpec) categories() []string {
	if c.Categories == nil {
		return DefaultCategories
	}
	return c.Categories
}

// Validate checks the spec against the parameter rules of its kind.
func (c ColumnSpec) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return &InvalidParameterError{Column: c.Name, Param: "name", Reason: "column name is empty"}
	}

	switch c.Kind {
	case Numeric:
		if math.IsNaN(c.Std) || math.IsInf(c.Std, 0) || c.Std <= 0 {
			return &InvalidParameterError{Column: c.Name, Param: "std", Reason: fmt.Sprintf("must be > 0, got %v", c.Std)}
		}
		if math.IsNaN(c.Mean) || math.IsInf(c.Mean, 0) {
			return &InvalidParameterError{Column: c.Name, Param: "mean", Reason: fmt.Sprintf("must be finite, got %v", c.Mean)}
		}
	case Categorical:
		if len(c.categories()) == 0 {
			return &InvalidParameterError{Column: c.Name, Param: "categories", Reason: "empty category domain"}
		}
	case Datetime, Text:
	default:
		return &UnsupportedTypeError{Column: c.Name, Kind: c.Kind.String()}
	}
	return nil
}

// Validate checks the row count, every column, and column name uniqueness.
func (r Request) Validate() error {
	if r.Rows < 0 {
		return &InvalidParameterError{Param: "rows", Reason: fmt.Sprintf("must be >= 0, got %d", r.Rows)}
	}

	seen := make(map[string]struct{}, len(r.Columns))
	for _, col := range r.Columns {
		if err := col.Validate(); err != nil {
			return err
		}
		if _, dup := seen[col.Name]; dup {
			return &InvalidParameterError{Column: col.Name, Param: "name", Reason: "duplicate column name"}
		}
		seen[col.Name] = struct{}{}
	}
	return nil
}
