package session

import (
	"fmt"
	"sync"
	"time"

	"github.com/Rana718/synthgen/internal/generator"
)

// Settings is the form state of one session. Column configurations are
// keyed by the conventional Column_<i> name and outlive column count
// changes, so a column removed and added back keeps its configuration.
type Settings struct {
	Rows        int                             `json:"rows"`
	ColumnCount int                             `json:"column_count"`
	Columns     map[string]generator.ColumnSpec `json:"columns"`
}

func NewSettings(rows, columnCount int) Settings {
	return Settings{
		Rows:        rows,
		ColumnCount: columnCount,
		Columns:     make(map[string]generator.ColumnSpec),
	}
}

// Configure stores the configuration of the 1-based column index.
func (s *Settings) Configure(index int, spec generator.ColumnSpec) {
	if s.Columns == nil {
		s.Columns = make(map[string]generator.ColumnSpec)
	}
	spec.Name = generator.ColumnName(index)
	s.Columns[spec.Name] = spec
}

// Column returns the stored configuration of the 1-based column index, or
// the default Numeric column when it was never configured.
func (s Settings) Column(index int) generator.ColumnSpec {
	name := generator.ColumnName(index)
	if spec, ok := s.Columns[name]; ok {
		return spec
	}
	return generator.DefaultColumn(name)
}

// Request builds a fresh generation request from the current settings.
func (s Settings) Request() generator.Request {
	count := s.ColumnCount
	if count < 0 {
		count = 0
	}
	columns := make([]generator.ColumnSpec, count)
	for i := range columns {
		columns[i] = s.Column(i + 1)
	}
	return generator.Request{Rows: s.Rows, Columns: columns}
}

// Session holds the configuration and the last generated table of one
// interactive user.
type Session struct {
	mu sync.Mutex

	ID          string
	settings    Settings
	table       *generator.Table
	generatedAt time.Time
	lastSeen    time.Time
}

func (s *Session) Settings() Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.settings.Clone()
}

func (s *Session) SetSettings(settings Settings) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings = settings.Clone()
}

// Table returns the last generated table, or nil before the first success.
func (s *Session) Table() (*generator.Table, time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.table, s.generatedAt
}

// Generate runs the generator over the current settings. The held table is
// replaced only when generation succeeds.
func (s *Session) Generate(g *generator.Generator) (*generator.Table, error) {
	s.mu.Lock()
	req := s.settings.Request()
	s.mu.Unlock()

	table, err := g.Generate(req)
	if err != nil {
		return nil, fmt.Errorf("failed to generate table: %w", err)
	}

	s.mu.Lock()
	s.table = table
	s.generatedAt = time.Now()
	s.mu.Unlock()
	return table, nil
}

func (s *Session) touch(now time.Time) {
	s.mu.Lock()
	s.lastSeen = now
	s.mu.Unlock()
}

func (s *Session) idleSince() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSeen
}

// Clone returns a deep copy of the settings.
func (s Settings) Clone() Settings {
	out := s
	out.Columns = make(map[string]generator.ColumnSpec, len(s.Columns))
	for name, spec := range s.Columns {
		if spec.Categories != nil {
			spec.Categories = append([]string{}, spec.Categories...)
		}
		out.Columns[name] = spec
	}
	return out
}
