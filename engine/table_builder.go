package engine

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// ============================================================================
// TABLE BUILDER — Flattens a built Spec into TableData
// ============================================================================
// Used for CSV export. Works from the built spec alone, so it also covers
// specs built from caller-supplied skeletons.
// ============================================================================

// BuildTable flattens built into rows and columns. The layout depends on
// the chart kind:
//   bar, line  : one row per category, one column per series
//   scatter    : one row per point
//   pie, geo   : one row per slice/region
//   radar      : one row per indicator, one column per polygon
func BuildTable(built *Built, title string) *TableData {
	if built == nil {
		return emptyTable(title)
	}
	switch built.Kind {
	case KindBar, KindLine:
		return buildCategoryTable(built.Spec, title)
	case KindScatter:
		return buildScatterTable(built.Spec, title)
	case KindRadar:
		return buildRadarTable(built.Spec, title)
	default:
		return buildSliceTable(built.Spec, title)
	}
}

func emptyTable(title string) *TableData {
	return &TableData{
		Title:   title,
		Columns: []Column{},
		Rows:    [][]string{},
	}
}

// ============================================================================
// CATEGORY TABLE — Row per category
// ============================================================================

func buildCategoryTable(spec Spec, title string) *TableData {
	axis := readAxis(spec, "xAxis")
	categories, _ := axis["data"].([]any)
	axisName, _ := axis["name"].(string)
	series := seriesList(spec)

	columns := []Column{textColumn("category", labelOr(axisName, "Category"))}
	for _, s := range series {
		name := StringifyValue(s["name"])
		columns = append(columns, numberColumn(name, LabelForField(name)))
	}

	rows := make([][]string, 0, len(categories))
	for i, c := range categories {
		row := []string{cell(c)}
		for _, s := range series {
			data, _ := s["data"].([]any)
			row = append(row, cellAt(data, i))
		}
		rows = append(rows, row)
	}
	return &TableData{Title: title, Columns: columns, Rows: rows}
}

// ============================================================================
// SCATTER TABLE — Row per point
// ============================================================================

func buildScatterTable(spec Spec, title string) *TableData {
	xName, _ := readAxis(spec, "xAxis")["name"].(string)
	yName, _ := readAxis(spec, "yAxis")["name"].(string)
	columns := []Column{
		numberColumn("x", labelOr(xName, "X")),
		numberColumn("y", labelOr(yName, "Y")),
	}

	var points []any
	if series := seriesList(spec); len(series) > 0 {
		points, _ = series[0]["data"].([]any)
	}
	rows := make([][]string, 0, len(points))
	for _, p := range points {
		pair, _ := p.([]any)
		rows = append(rows, []string{cellAt(pair, 0), cellAt(pair, 1)})
	}
	return &TableData{Title: title, Columns: columns, Rows: rows}
}

// ============================================================================
// SLICE TABLE — Row per {name, value}
// ============================================================================

func buildSliceTable(spec Spec, title string) *TableData {
	series := seriesList(spec)
	if len(series) == 0 {
		return emptyTable(title)
	}
	name, _ := series[0]["name"].(string)
	columns := []Column{
		textColumn("name", labelOr(name, "Name")),
		numberColumn("value", "Value"),
	}

	data, _ := series[0]["data"].([]any)
	rows := make([][]string, 0, len(data))
	for _, d := range data {
		item, _ := d.(map[string]any)
		rows = append(rows, []string{cell(item["name"]), cell(item["value"])})
	}
	return &TableData{Title: title, Columns: columns, Rows: rows}
}

// ============================================================================
// RADAR TABLE — Row per indicator
// ============================================================================

func buildRadarTable(spec Spec, title string) *TableData {
	indicators, _ := readObject(spec, "radar")["indicator"].([]any)
	var polygons []any
	if series := seriesList(spec); len(series) > 0 {
		polygons, _ = series[0]["data"].([]any)
	}

	columns := []Column{textColumn("indicator", "Indicator")}
	for _, p := range polygons {
		poly, _ := p.(map[string]any)
		name := StringifyValue(poly["name"])
		columns = append(columns, numberColumn(name, LabelForField(name)))
	}

	rows := make([][]string, 0, len(indicators))
	for i, ind := range indicators {
		indicator, _ := ind.(map[string]any)
		row := []string{cell(indicator["name"])}
		for _, p := range polygons {
			poly, _ := p.(map[string]any)
			values, _ := poly["value"].([]any)
			row = append(row, cellAt(values, i))
		}
		rows = append(rows, row)
	}
	return &TableData{Title: title, Columns: columns, Rows: rows}
}

// ============================================================================
// HELPERS
// ============================================================================

// LabelForField turns a field key such as "total_revenue" into
// "Total revenue".
func LabelForField(field string) string {
	if len(field) == 0 {
		return ""
	}
	label := strings.ReplaceAll(field, "_", " ")
	first, size := utf8.DecodeRuneInString(label)
	return string(unicode.ToUpper(first)) + label[size:]
}

func labelOr(field, fallback string) string {
	if field == "" {
		return fallback
	}
	return LabelForField(field)
}

func seriesList(spec Spec) []map[string]any {
	list, _ := spec["series"].([]any)
	out := make([]map[string]any, 0, len(list))
	for _, s := range list {
		if m, ok := s.(map[string]any); ok {
			out = append(out, m)
		}
	}
	return out
}

func textColumn(key, label string) Column {
	return Column{Key: key, Label: label, Type: "text", Align: "left"}
}

func numberColumn(key, label string) Column {
	return Column{Key: key, Label: label, Type: "number", Align: "right"}
}

func cell(v any) string {
	if v == nil {
		return ""
	}
	return StringifyValue(v)
}

func cellAt(values []any, i int) string {
	if i < 0 || i >= len(values) {
		return ""
	}
	return cell(values[i])
}

// readAxis is Spec.axis without creating anything.
func readAxis(spec Spec, key string) map[string]any {
	switch v := spec[key].(type) {
	case map[string]any:
		return v
	case []any:
		if len(v) > 0 {
			if first, ok := v[0].(map[string]any); ok {
				return first
			}
		}
	}
	return map[string]any{}
}

func readObject(spec Spec, key string) map[string]any {
	if v, ok := spec[key].(map[string]any); ok {
		return v
	}
	return map[string]any{}
}
