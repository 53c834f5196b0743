package session

import (
	"errors"
	"testing"
	"time"

	"github.com/Rana718/synthgen/internal/generator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaults() Settings {
	return NewSettings(100, 3)
}

func TestSettingsRequestDefaults(t *testing.T) {
	s := NewSettings(10, 2)
	req := s.Request()

	assert.Equal(t, 10, req.Rows)
	require.Len(t, req.Columns, 2)
	assert.Equal(t, generator.DefaultColumn("Column_1"), req.Columns[0])
	assert.Equal(t, generator.DefaultColumn("Column_2"), req.Columns[1])
}

func TestSettingsKeepConfigAcrossColumnCount(t *testing.T) {
	s := NewSettings(10, 3)
	s.Configure(3, generator.CategoricalColumn("ignored", []string{"X"}))

	s.ColumnCount = 1
	assert.Len(t, s.Request().Columns, 1)

	s.ColumnCount = 3
	cols := s.Request().Columns
	require.Len(t, cols, 3)
	assert.Equal(t, "Column_3", cols[2].Name)
	assert.Equal(t, generator.Categorical, cols[2].Kind)
	assert.Equal(t, []string{"X"}, cols[2].Categories)
}

func TestSessionGenerateReplacesTable(t *testing.T) {
	st := NewStore(defaults)
	sess := st.GetOrCreate("abc")
	g := generator.New(generator.WithSeed(1))

	table, _ := sess.Table()
	assert.Nil(t, table)

	first, err := sess.Generate(g)
	require.NoError(t, err)
	assert.Equal(t, 100, first.Rows())

	settings := sess.Settings()
	settings.Rows = 12
	sess.SetSettings(settings)

	second, err := sess.Generate(g)
	require.NoError(t, err)

	held, at := sess.Table()
	assert.Same(t, second, held)
	assert.Equal(t, 12, held.Rows())
	assert.False(t, at.IsZero())
}

func TestSessionGenerateFailureKeepsPreviousTable(t *testing.T) {
	sess := NewStore(defaults).GetOrCreate("abc")
	g := generator.New(generator.WithSeed(2))

	first, err := sess.Generate(g)
	require.NoError(t, err)

	settings := sess.Settings()
	settings.Configure(1, generator.NumericColumn("", 0, -1))
	sess.SetSettings(settings)

	_, err = sess.Generate(g)
	var invalid *generator.InvalidParameterError
	require.True(t, errors.As(err, &invalid))

	held, _ := sess.Table()
	assert.Same(t, first, held)
}

func TestSettingsAreCopied(t *testing.T) {
	sess := NewStore(defaults).GetOrCreate("abc")

	settings := sess.Settings()
	settings.Configure(1, generator.TextColumn(""))

	assert.Equal(t, generator.Numeric, sess.Settings().Column(1).Kind)
}

func TestStoreLifecycle(t *testing.T) {
	st := NewStore(defaults)
	clock := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	st.now = func() time.Time { return clock }

	a := st.GetOrCreate("a")
	assert.Same(t, a, st.GetOrCreate("a"))
	st.GetOrCreate("b")
	assert.Equal(t, 2, st.Len())

	clock = clock.Add(20 * time.Minute)
	_, ok := st.Get("b")
	require.True(t, ok)

	clock = clock.Add(15 * time.Minute)
	removed := st.Sweep(30 * time.Minute)
	assert.Equal(t, 1, removed)

	_, ok = st.Get("a")
	assert.False(t, ok)
	_, ok = st.Get("b")
	assert.True(t, ok)

	st.Delete("b")
	assert.Equal(t, 0, st.Len())
}
