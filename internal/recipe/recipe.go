package recipe

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/Rana718/synthgen/internal/generator"
)

// Recipe is a file-based generation request. JSON documents are accepted
// too, being a subset of YAML.
type Recipe struct {
	Rows    int      `yaml:"rows"`
	Seed    *uint64  `yaml:"seed,omitempty"`
	Columns []Column `yaml:"columns"`
}

type Column struct {
	Name       string     `yaml:"name"`
	Kind       string     `yaml:"kind"`
	Mean       *float64   `yaml:"mean,omitempty"`
	Std        *float64   `yaml:"std,omitempty"`
	Categories Categories `yaml:"categories,omitempty"`
}

// Categories accepts either a YAML list or a comma-separated string.
type Categories struct {
	Values []string
	Set    bool
}

func (c *Categories) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		var raw string
		if err := node.Decode(&raw); err != nil {
			return err
		}
		c.Values = generator.ParseCategories(raw)
	case yaml.SequenceNode:
		values := []string{}
		if err := node.Decode(&values); err != nil {
			return err
		}
		c.Values = values
	default:
		return fmt.Errorf("line %d: categories must be a list or a comma-separated string", node.Line)
	}
	c.Set = true
	return nil
}

func (c Categories) MarshalYAML() (interface{}, error) {
	return c.Values, nil
}

func (c Categories) IsZero() bool {
	return !c.Set
}

// Load reads a recipe file.
func Load(path string) (*Recipe, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read recipe %s: %w", path, err)
	}
	r, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse recipe %s: %w", path, err)
	}
	return r, nil
}

func Parse(data []byte) (*Recipe, error) {
	var r Recipe
	if err := yaml.Unmarshal(data, &r); err != nil {
		return nil, err
	}
	return &r, nil
}

// Request turns the recipe into a generation request. Unnamed columns get
// the Column_<i> convention, a missing kind means Numeric, and missing
// Numeric parameters take the defaults.
func (r *Recipe) Request() (generator.Request, error) {
	req := generator.Request{Rows: r.Rows, Columns: make([]generator.ColumnSpec, 0, len(r.Columns))}

	for i, col := range r.Columns {
		spec, err := col.spec(i + 1)
		if err != nil {
			return generator.Request{}, err
		}
		req.Columns = append(req.Columns, spec)
	}
	return req, nil
}

func (c Column) spec(index int) (generator.ColumnSpec, error) {
	name := c.Name
	if name == "" {
		name = generator.ColumnName(index)
	}

	kind := generator.Numeric
	if c.Kind != "" {
		parsed, err := generator.ParseKind(c.Kind)
		if err != nil {
			return generator.ColumnSpec{}, &generator.UnsupportedTypeError{Column: name, Kind: c.Kind}
		}
		kind = parsed
	}

	spec := generator.ColumnSpec{Name: name, Kind: kind}
	switch kind {
	case generator.Numeric:
		spec.Mean = generator.DefaultMean
		spec.Std = generator.DefaultStd
		if c.Mean != nil {
			spec.Mean = *c.Mean
		}
		if c.Std != nil {
			spec.Std = *c.Std
		}
	case generator.Categorical:
		if c.Categories.Set {
			spec.Categories = c.Categories.Values
		}
	}
	return spec, nil
}

// FromRequest builds a recipe describing req, e.g. to save a studio session.
func FromRequest(req generator.Request) *Recipe {
	r := &Recipe{Rows: req.Rows, Columns: make([]Column, len(req.Columns))}
	for i, spec := range req.Columns {
		col := Column{Name: spec.Name, Kind: spec.Kind.String()}
		switch spec.Kind {
		case generator.Numeric:
			mean, std := spec.Mean, spec.Std
			col.Mean, col.Std = &mean, &std
		case generator.Categorical:
			if spec.Categories != nil {
				col.Categories = Categories{Values: spec.Categories, Set: true}
			}
		}
		r.Columns[i] = col
	}
	return r
}

// Marshal renders the recipe as YAML.
func (r *Recipe) Marshal() ([]byte, error) {
	return yaml.Marshal(r)
}
