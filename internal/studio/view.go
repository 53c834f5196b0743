package studio

import (
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/Rana718/synthgen/internal/config"
	"github.com/Rana718/synthgen/internal/generator"
	"github.com/Rana718/synthgen/internal/session"
)

type columnView struct {
	Index      int
	Name       string
	Kind       string
	Mean       string
	Std        string
	Categories string
}

type tableView struct {
	Header []string
	Rows   [][]string
	Total  int
}

func newColumnView(index int, spec generator.ColumnSpec) columnView {
	view := columnView{
		Index:      index,
		Name:       generator.ColumnName(index),
		Kind:       spec.Kind.String(),
		Mean:       formatFloat(generator.DefaultMean),
		Std:        formatFloat(generator.DefaultStd),
		Categories: strings.Join(generator.DefaultCategories, ","),
	}
	switch spec.Kind {
	case generator.Numeric:
		view.Mean = formatFloat(spec.Mean)
		view.Std = formatFloat(spec.Std)
	case generator.Categorical:
		if spec.Categories != nil {
			view.Categories = strings.Join(spec.Categories, ",")
		}
	}
	return view
}

func newTableView(table *generator.Table) *tableView {
	if table == nil {
		return nil
	}
	return &tableView{
		Header: table.ColumnNames(),
		Rows:   table.Records(),
		Total:  table.Rows(),
	}
}

// pageData assembles everything the index template renders.
func pageData(limits config.Generator, settings session.Settings, sess *session.Session, formErr string) fiber.Map {
	columns := make([]columnView, settings.ColumnCount)
	for i := range columns {
		columns[i] = newColumnView(i+1, settings.Column(i+1))
	}

	kinds := make([]string, 0, 4)
	for _, k := range generator.Kinds() {
		kinds = append(kinds, k.String())
	}

	data := fiber.Map{
		"Title":    "Synthetic Data Generator",
		"Settings": settings,
		"Limits":   limits,
		"Columns":  columns,
		"Kinds":    kinds,
		"Error":    formErr,
	}

	if table, at := sess.Table(); table != nil {
		data["Preview"] = newTableView(table.Head(limits.PreviewRows))
		data["Full"] = newTableView(table)
		data["GeneratedAt"] = at.Format(time.RFC1123)
	}
	return data
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
