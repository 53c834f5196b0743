package studio

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/Rana718/synthgen/internal/config"
	"github.com/Rana718/synthgen/internal/generator"
	"github.com/Rana718/synthgen/internal/session"
)

// FormError reports a form field that could not be parsed.
type FormError struct {
	Field string
	Value string
}

func (e *FormError) Error() string {
	return fmt.Sprintf("invalid value %q for %s", e.Value, e.Field)
}

// applyForm merges submitted form values into the current settings. Fields
// absent from the form keep their stored values; row and column counts are
// clamped to the configured bounds.
func applyForm(c *fiber.Ctx, limits config.Generator, current session.Settings) (session.Settings, error) {
	settings := current.Clone()

	if raw := c.FormValue("rows"); raw != "" {
		n, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			return current, &FormError{Field: "rows", Value: raw}
		}
		settings.Rows = limits.ClampRows(n)
	}

	if raw := c.FormValue("columns"); raw != "" {
		n, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			return current, &FormError{Field: "columns", Value: raw}
		}
		settings.ColumnCount = limits.ClampColumns(n)
	}

	for i := 1; i <= settings.ColumnCount; i++ {
		spec, ok, err := columnFromForm(c, i, settings.Column(i))
		if err != nil {
			return current, err
		}
		if ok {
			settings.Configure(i, spec)
		}
	}
	return settings, nil
}

// columnFromForm reads type_<i>, mean_<i>, std_<i> and cat_<i>. It returns
// false when the form does not mention the column at all.
func columnFromForm(c *fiber.Ctx, index int, stored generator.ColumnSpec) (generator.ColumnSpec, bool, error) {
	rawKind := c.FormValue(fmt.Sprintf("type_%d", index))
	if rawKind == "" {
		return stored, false, nil
	}

	kind, err := generator.ParseKind(rawKind)
	if err != nil {
		return stored, false, &generator.UnsupportedTypeError{Column: generator.ColumnName(index), Kind: rawKind}
	}

	spec := generator.ColumnSpec{Name: generator.ColumnName(index), Kind: kind}
	switch kind {
	case generator.Numeric:
		spec.Mean, err = floatField(c, fmt.Sprintf("mean_%d", index), generator.DefaultMean)
		if err != nil {
			return stored, false, err
		}
		spec.Std, err = floatField(c, fmt.Sprintf("std_%d", index), generator.DefaultStd)
		if err != nil {
			return stored, false, err
		}
	case generator.Categorical:
		key := fmt.Sprintf("cat_%d", index)
		if c.Request().PostArgs().Has(key) || c.Request().URI().QueryArgs().Has(key) {
			spec.Categories = generator.ParseCategories(c.FormValue(key))
		}
	}
	return spec, true, nil
}

func floatField(c *fiber.Ctx, key string, def float64) (float64, error) {
	raw := strings.TrimSpace(c.FormValue(key))
	if raw == "" {
		return def, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, &FormError{Field: key, Value: raw}
	}
	return v, nil
}
