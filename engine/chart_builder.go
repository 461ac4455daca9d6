package engine

import (
	"fmt"
	"sort"
	"time"

	"github.com/pkg/errors"
)

// ============================================================================
// CHART BUILDERS — Produce a populated Spec from skeleton + rows + bindings
// ============================================================================
// Every build runs the same phases:
//   1. Resolve bindings (fails fast with *MissingBindingError)
//   2. Clone the skeleton
//   3. Group rows (bar/line/radar)
//   4. Project columns into axes and series
//   5. Post-process (line timestamp axis)
// A failure in any phase aborts the build; no partial spec is returned.
// ============================================================================

// Builder populates a skeleton for one chart kind.
type Builder interface {
	Kind() ChartKind
	// RequiredRoles lists the roles resolved before any data is touched.
	RequiredRoles() []string
	Build(skeleton Spec, rows RowSet, bindings BindingSet) (*Built, error)
}

// ErrUnsupportedKind is returned by builders that cannot bind data.
var ErrUnsupportedKind = errors.New("chart kind is not data-driven")

// TimestampThreshold separates millisecond Unix timestamps from small
// numeric categories such as years.
const TimestampThreshold = 1e10

// maxTimestamp is the first value that no longer fits an int64 millisecond
// count.
const maxTimestamp = 1 << 63

// NewBuilder returns the builder for kind.
func NewBuilder(kind ChartKind, opts ...Option) (Builder, error) {
	cfg := applyOptions(opts)
	switch kind {
	case KindBar:
		return &categoricalBuilder{kind: KindBar, groupRole: "group", cfg: cfg}, nil
	case KindLine:
		return &categoricalBuilder{kind: KindLine, groupRole: "series", cfg: cfg}, nil
	case KindScatter:
		return scatterBuilder{}, nil
	case KindPie:
		return pieBuilder{}, nil
	case KindRadar:
		return radarBuilder{}, nil
	case KindGeo:
		return geoBuilder{strict: cfg.StrictGeo}, nil
	}
	return nil, errors.Wrapf(ErrUnknownKind, "%q", kind)
}

// ============================================================================
// BAR + LINE — category axis, one series per group
// ============================================================================

type categoricalBuilder struct {
	kind      ChartKind
	groupRole string
	cfg       *config
}

func (b *categoricalBuilder) Kind() ChartKind { return b.kind }

func (b *categoricalBuilder) RequiredRoles() []string {
	return []string{b.groupRole, "x", "value"}
}

func (b *categoricalBuilder) Build(skeleton Spec, rows RowSet, bindings BindingSet) (*Built, error) {
	fields, err := resolveFor(b.kind, b.RequiredRoles(), bindings)
	if err != nil {
		return nil, err
	}
	group, x, value := fields[0], fields[1], fields[2]

	out, err := skeleton.Clone()
	if err != nil {
		return nil, err
	}

	built := &Built{Kind: b.kind, Spec: out}
	axisRows := rows

	if group == "" || group == x {
		if group == x {
			built.Warnings = append(built.Warnings, Warning{
				Code:    WarnGroupEqualsX,
				Message: fmt.Sprintf("%s and x are both bound to %q; drawing a single series", b.groupRole, x),
			})
		}
		series := map[string]any{
			"name": value,
			"type": string(b.kind),
			"data": Project(rows, value),
		}
		if b.kind == KindBar {
			series["barWidth"] = "60%"
		}
		out["series"] = []any{series}
		// one series needs no legend
		delete(out, "legend")
	} else {
		grouped := GroupBy(rows, group)
		series := make([]any, 0, grouped.Len())
		grouped.Each(func(key string, groupRows RowSet) {
			series = append(series, map[string]any{
				"name": key,
				"type": string(b.kind),
				"data": Project(groupRows, value),
			})
		})
		out["series"] = series
		// groups are assumed to share an aligned x sequence
		axisRows = grouped.First()
		out.object("legend")["data"] = stringsToAny(grouped.Keys())
	}

	categories := Project(axisRows, x)
	if b.kind == KindLine {
		categories = timestampsToDates(categories, b.cfg.DateLayout, b.cfg.Location)
	}
	axis := out.axis("xAxis")
	axis["data"] = categories
	axis["name"] = x

	return built, nil
}

// timestampsToDates formats the axis as calendar dates when every value is
// a number above TimestampThreshold and below 2^63. A single other value,
// NaN included, leaves the axis untouched.
func timestampsToDates(values []any, layout string, loc *time.Location) []any {
	millis := make([]int64, len(values))
	for i, v := range values {
		f, ok := Numeric(v)
		if !ok || !(f > TimestampThreshold && f < maxTimestamp) {
			return values
		}
		millis[i] = int64(f)
	}
	dates := make([]any, len(values))
	for i, ms := range millis {
		dates[i] = time.UnixMilli(ms).In(loc).Format(layout)
	}
	return dates
}

// Numeric reports whether v holds a Go number. Numeric strings do not
// count.
func Numeric(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	}
	return 0, false
}

// ============================================================================
// SCATTER — one [x, y] point per row
// ============================================================================

type scatterBuilder struct{}

func (scatterBuilder) Kind() ChartKind         { return KindScatter }
func (scatterBuilder) RequiredRoles() []string { return []string{"x", "y"} }

func (b scatterBuilder) Build(skeleton Spec, rows RowSet, bindings BindingSet) (*Built, error) {
	fields, err := resolveFor(KindScatter, b.RequiredRoles(), bindings)
	if err != nil {
		return nil, err
	}
	x, y := fields[0], fields[1]

	out, err := skeleton.Clone()
	if err != nil {
		return nil, err
	}

	xs, ys := Project(rows, x), Project(rows, y)
	points := make([]any, len(rows))
	for i := range rows {
		points[i] = []any{xs[i], ys[i]}
	}
	out.firstSeries("scatter")["data"] = points
	out.axis("xAxis")["name"] = x
	out.axis("yAxis")["name"] = y

	return &Built{Kind: KindScatter, Spec: out}, nil
}

// ============================================================================
// PIE — one {name, value} slice per row
// ============================================================================

type pieBuilder struct{}

func (pieBuilder) Kind() ChartKind         { return KindPie }
func (pieBuilder) RequiredRoles() []string { return []string{"category", "value"} }

func (b pieBuilder) Build(skeleton Spec, rows RowSet, bindings BindingSet) (*Built, error) {
	fields, err := resolveFor(KindPie, b.RequiredRoles(), bindings)
	if err != nil {
		return nil, err
	}
	category, value := fields[0], fields[1]

	out, err := skeleton.Clone()
	if err != nil {
		return nil, err
	}

	names, values := Project(rows, category), Project(rows, value)
	slices := make([]any, len(rows))
	for i := range rows {
		slices[i] = map[string]any{"name": names[i], "value": values[i]}
	}
	series := out.firstSeries("pie")
	series["data"] = slices
	series["name"] = category

	return &Built{Kind: KindPie, Spec: out}, nil
}

// ============================================================================
// RADAR — shared indicator axis, one polygon per series
// ============================================================================

type radarBuilder struct{}

func (radarBuilder) Kind() ChartKind         { return KindRadar }
func (radarBuilder) RequiredRoles() []string { return []string{"series", "field", "value"} }

func (b radarBuilder) Build(skeleton Spec, rows RowSet, bindings BindingSet) (*Built, error) {
	fields, err := resolveFor(KindRadar, b.RequiredRoles(), bindings)
	if err != nil {
		return nil, err
	}
	seriesField, field, value := fields[0], fields[1], fields[2]

	out, err := skeleton.Clone()
	if err != nil {
		return nil, err
	}

	grouped := GroupBy(rows, seriesField)

	// Indicator order is first-seen over the full row set.
	position := make(map[string]int)
	var indicators []any
	for _, row := range rows {
		key := GroupKey(row, field)
		if _, seen := position[key]; seen {
			continue
		}
		position[key] = len(indicators)
		indicators = append(indicators, map[string]any{"name": row[field]})
	}
	if indicators == nil {
		indicators = []any{}
	}
	out.object("radar")["indicator"] = indicators

	polygons := make([]any, 0, grouped.Len())
	grouped.Each(func(key string, groupRows RowSet) {
		ordered := make(RowSet, len(groupRows))
		copy(ordered, groupRows)
		sort.SliceStable(ordered, func(i, j int) bool {
			return position[GroupKey(ordered[i], field)] < position[GroupKey(ordered[j], field)]
		})
		polygons = append(polygons, map[string]any{
			"name":  key,
			"value": Project(ordered, value),
		})
	})
	out.firstSeries("radar")["data"] = polygons
	out.object("legend")["data"] = stringsToAny(grouped.Keys())

	return &Built{Kind: KindRadar, Spec: out}, nil
}

// ============================================================================
// GEO — not data-driven yet
// ============================================================================

// geoBuilder returns its skeleton unchanged. Region data is baked into the
// template; no roles are bound.
type geoBuilder struct {
	strict bool
}

func (geoBuilder) Kind() ChartKind         { return KindGeo }
func (geoBuilder) RequiredRoles() []string { return []string{} }

func (b geoBuilder) Build(skeleton Spec, rows RowSet, bindings BindingSet) (*Built, error) {
	if b.strict {
		return nil, errors.Wrapf(ErrUnsupportedKind, "%s", KindGeo)
	}
	out, err := skeleton.Clone()
	if err != nil {
		return nil, err
	}
	return &Built{
		Kind: KindGeo,
		Spec: out,
		Warnings: []Warning{{
			Code:    WarnNotDataBound,
			Message: "geo charts render their template as-is; rows and bindings are ignored",
		}},
	}, nil
}

func stringsToAny(items []string) []any {
	out := make([]any, len(items))
	for i, s := range items {
		out[i] = s
	}
	return out
}
