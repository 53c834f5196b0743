package generator

import (
	"math/rand/v2"
	"sync"
	"time"

	"gonum.org/v1/gonum/stat/distuv"
)

const textAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// Generator draws synthetic tables from its own random source. It is safe
// for concurrent use; draws are serialized on the source.
type Generator struct {
	mu  sync.Mutex
	src rand.Source
	rnd *rand.Rand
	now func() time.Time
}

type Option func(*Generator)

// WithSeed makes the generator reproducible.
func WithSeed(seed uint64) Option {
	return func(g *Generator) {
		g.src = rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)
	}
}

// WithClock fixes the anchor of Datetime columns.
func WithClock(now func() time.Time) Option {
	return func(g *Generator) {
		g.now = now
	}
}

func New(opts ...Option) *Generator {
	g := &Generator{
		src: rand.NewPCG(uint64(time.Now().UnixNano()), rand.Uint64()),
		now: time.Now,
	}
	for _, opt := range opts {
		opt(g)
	}
	g.rnd = rand.New(g.src)
	return g
}

var defaultGenerator = New()

// Generate builds a table from the process-wide generator.
func Generate(rows int, columns []ColumnSpec) (*Table, error) {
	return defaultGenerator.Generate(Request{Rows: rows, Columns: columns})
}

// Generate validates the whole request up front and then fills every column
// in request order. Any invalid column fails the call; no partial table is
// returned.
func (g *Generator) Generate(req Request) (*Table, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	rules := make([]columnRule, len(req.Columns))
	for i, spec := range req.Columns {
		rule, err := g.ruleFor(spec)
		if err != nil {
			return nil, err
		}
		rules[i] = rule
	}

	table := &Table{RowCount: req.Rows, Columns: make([]Column, len(req.Columns))}

	g.mu.Lock()
	defer g.mu.Unlock()

	for i, spec := range req.Columns {
		values := make([]any, req.Rows)
		rules[i].fill(g.rnd, values)
		table.Columns[i] = Column{Name: spec.Name, Kind: spec.Kind, Values: values}
	}
	return table, nil
}

// columnRule fills a column's values; one implementation per Kind.
type columnRule interface {
	fill(rnd *rand.Rand, values []any)
}

func (g *Generator) ruleFor(spec ColumnSpec) (columnRule, error) {
	switch spec.Kind {
	case Numeric:
		return numericRule{dist: distuv.Normal{Mu: spec.Mean, Sigma: spec.Std, Src: g.src}}, nil
	case Categorical:
		return categoricalRule{categories: spec.categories()}, nil
	case Datetime:
		return datetimeRule{start: g.now().AddDate(0, 0, -DatetimeSpanDays)}, nil
	case Text:
		return textRule{length: TextLength}, nil
	default:
		return nil, &UnsupportedTypeError{Column: spec.Name, Kind: spec.Kind.String()}
	}
}

type numericRule struct {
	dist distuv.Normal
}

func (r numericRule) fill(_ *rand.Rand, values []any) {
	for i := range values {
		values[i] = r.dist.Rand()
	}
}

type categoricalRule struct {
	categories []string
}

func (r categoricalRule) fill(rnd *rand.Rand, values []any) {
	for i := range values {
		values[i] = r.categories[rnd.IntN(len(r.categories))]
	}
}

// datetimeRule draws an independent day offset in [0, 365] per row.
type datetimeRule struct {
	start time.Time
}

func (r datetimeRule) fill(rnd *rand.Rand, values []any) {
	for i := range values {
		values[i] = r.start.AddDate(0, 0, rnd.IntN(DatetimeSpanDays+1))
	}
}

type textRule struct {
	length int
}

func (r textRule) fill(rnd *rand.Rand, values []any) {
	for i := range values {
		buf := make([]byte, r.length)
		for j := range buf {
			buf[j] = textAlphabet[rnd.IntN(len(textAlphabet))]
		}
		values[i] = string(buf)
	}
}
