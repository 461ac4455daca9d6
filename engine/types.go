package engine

// ============================================================================
// CHARTKIT ENGINE TYPES — Rows, Bindings, Specs
// ============================================================================
// The engine turns (kind, rows, bindings) into a render-ready chart option
// tree. Rows are plain field maps as decoded from the query service; specs
// are ECharts-style option trees loaded from the template store.
// ============================================================================

// ============================================================================
// ROWS
// ============================================================================

// DataRow is a single result row. Values are numbers, strings or nil.
// A field that is not present reads the same as an explicit nil.
type DataRow map[string]any

// RowSet is an ordered sequence of rows. Order decides default axis,
// category and group ordering.
type RowSet []DataRow

// Keys returns every field key in first-seen order across all rows.
func (rs RowSet) Keys() []string {
	seen := make(map[string]bool)
	var keys []string
	for _, row := range rs {
		for _, k := range sortedRowKeys(row) {
			if !seen[k] {
				seen[k] = true
				keys = append(keys, k)
			}
		}
	}
	return keys
}

// ============================================================================
// SPEC — Skeleton in, BuiltSpec out
// ============================================================================

// Spec is a visualization option tree (axes, legend, series, ...).
// The same type is used for template skeletons and for built output.
type Spec map[string]any

// Built is the result of a successful build.
type Built struct {
	Kind     ChartKind `json:"kind"`
	Spec     Spec      `json:"spec"`
	Warnings []Warning `json:"warnings,omitempty"`
}

// Warning is a non-fatal diagnostic raised during a build.
type Warning struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Warning codes.
const (
	WarnGroupEqualsX = "group-equals-x"
	WarnNotDataBound = "not-data-bound"
)

// ============================================================================
// CHART KINDS
// ============================================================================

// ChartKind identifies a chart builder and its template.
type ChartKind string

const (
	KindBar     ChartKind = "bar"
	KindLine    ChartKind = "line"
	KindScatter ChartKind = "scatter"
	KindPie     ChartKind = "pie"
	KindRadar   ChartKind = "radar"
	KindGeo     ChartKind = "geo"
)

// Kinds lists every supported kind in a stable order.
func Kinds() []ChartKind {
	return []ChartKind{KindBar, KindLine, KindScatter, KindPie, KindRadar, KindGeo}
}

// ============================================================================
// TABLE / TEXT OUTPUT — flattened views of a built spec
// ============================================================================

// TableData is a flattened, tabular rendering of a built spec.
type TableData struct {
	Title   string     `json:"title"`
	Columns []Column   `json:"columns"`
	Rows    [][]string `json:"rows"`
}

// Column defines a table column.
type Column struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Type  string `json:"type"`  // "text", "number"
	Align string `json:"align"` // "left", "right"
}
