package engine

import (
	"fmt"
	"strings"
)

// ============================================================================
// TEXT BUILDER — One-line summaries of a built Spec
// ============================================================================

// Summarize describes built in one line, e.g.
// "bar chart: 3 series over 12 categories (x: month)".
func Summarize(built *Built) string {
	if built == nil {
		return "no chart"
	}
	spec := built.Spec
	series := seriesList(spec)

	var b strings.Builder
	fmt.Fprintf(&b, "%s chart: ", built.Kind)

	switch built.Kind {
	case KindBar, KindLine:
		axis := readAxis(spec, "xAxis")
		categories, _ := axis["data"].([]any)
		fmt.Fprintf(&b, "%s over %s", plural(len(series), "series", "series"),
			plural(len(categories), "category", "categories"))
		if name, ok := axis["name"].(string); ok && name != "" {
			fmt.Fprintf(&b, " (x: %s)", name)
		}
	case KindScatter:
		fmt.Fprintf(&b, "%s", plural(firstSeriesLen(series, "data"), "point", "points"))
	case KindPie:
		fmt.Fprintf(&b, "%s", plural(firstSeriesLen(series, "data"), "slice", "slices"))
	case KindRadar:
		indicators, _ := readObject(spec, "radar")["indicator"].([]any)
		fmt.Fprintf(&b, "%s on %s", plural(firstSeriesLen(series, "data"), "polygon", "polygons"),
			plural(len(indicators), "axis", "axes"))
	default:
		b.WriteString("template rendered as-is")
	}

	if len(built.Warnings) > 0 {
		fmt.Fprintf(&b, " [%s]", plural(len(built.Warnings), "warning", "warnings"))
	}
	return b.String()
}

func firstSeriesLen(series []map[string]any, key string) int {
	if len(series) == 0 {
		return 0
	}
	data, _ := series[0][key].([]any)
	return len(data)
}

func plural(n int, one, many string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", one)
	}
	return fmt.Sprintf("%d %s", n, many)
}
