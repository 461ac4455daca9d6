package engine

import (
	"fmt"
	"sort"
	"strconv"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// ============================================================================
// ROWS — Grouping and column projection
// ============================================================================
// Both operations are pure and order-preserving. Grouping keeps first-seen
// key order; projection keeps positional alignment with the input rows.
// ============================================================================

// GroupedRows partitions rows by a field value, iterated in the order keys
// were first seen.
type GroupedRows struct {
	groups *orderedmap.OrderedMap[string, RowSet]
}

// GroupBy partitions rows by the stringified value of field. Rows keep their
// relative order inside each group. A nil value groups under "null" and a
// missing field under "undefined".
func GroupBy(rows RowSet, field string) *GroupedRows {
	groups := orderedmap.New[string, RowSet]()
	for _, row := range rows {
		key := GroupKey(row, field)
		existing, _ := groups.Get(key)
		groups.Set(key, append(existing, row))
	}
	return &GroupedRows{groups: groups}
}

// Len returns the number of distinct keys.
func (g *GroupedRows) Len() int { return g.groups.Len() }

// Keys returns the group keys in first-seen order.
func (g *GroupedRows) Keys() []string {
	keys := make([]string, 0, g.groups.Len())
	for pair := g.groups.Oldest(); pair != nil; pair = pair.Next() {
		keys = append(keys, pair.Key)
	}
	return keys
}

// Rows returns the rows of one group.
func (g *GroupedRows) Rows(key string) (RowSet, bool) {
	return g.groups.Get(key)
}

// First returns the first group's rows, or nil when there are no groups.
func (g *GroupedRows) First() RowSet {
	if pair := g.groups.Oldest(); pair != nil {
		return pair.Value
	}
	return nil
}

// Each calls fn for every group in key order.
func (g *GroupedRows) Each(fn func(key string, rows RowSet)) {
	for pair := g.groups.Oldest(); pair != nil; pair = pair.Next() {
		fn(pair.Key, pair.Value)
	}
}

// GroupKey is the group key of row under field.
func GroupKey(row DataRow, field string) string {
	v, ok := row[field]
	if !ok {
		return "undefined"
	}
	return StringifyValue(v)
}

// StringifyValue renders a scalar the way it appears as a group key or
// category label.
func StringifyValue(v any) string {
	switch t := v.(type) {
	case nil:
		return "null"
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(t), 'f', -1, 32)
	case bool:
		return strconv.FormatBool(t)
	default:
		return fmt.Sprint(t)
	}
}

// Project maps every row to its value at field. Missing and nil values
// project to nil; len(result) always equals len(rows).
func Project(rows RowSet, field string) []any {
	column := make([]any, len(rows))
	for i, row := range rows {
		if v, ok := row[field]; ok && v != nil {
			column[i] = v
		}
	}
	return column
}

func sortedRowKeys(row DataRow) []string {
	keys := make([]string, 0, len(row))
	for k := range row {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// ============================================================================
// ROW ADAPTER — typed structs → RowSet
// ============================================================================
//
// Usage:
//
//	adapter := engine.NewRowAdapter[Sale]().
//	    Field("region", func(s Sale) any { return s.Region }).
//	    Field("revenue", func(s Sale) any { return s.Revenue })
//
//	rows := adapter.Rows(sales)
//	built, _ := registry.Build(engine.KindBar, rows, bindings)
//
// ============================================================================

// RowAdapter builds RowSets from typed structs. Declare once, use many times.
type RowAdapter[T any] struct {
	order  []string
	fields map[string]func(T) any
}

// NewRowAdapter creates an adapter for type T.
func NewRowAdapter[T any]() *RowAdapter[T] {
	return &RowAdapter[T]{fields: make(map[string]func(T) any)}
}

// Field registers an accessor for key. Registering a key again replaces
// its accessor but keeps its position.
func (a *RowAdapter[T]) Field(key string, fn func(T) any) *RowAdapter[T] {
	if _, exists := a.fields[key]; !exists {
		a.order = append(a.order, key)
	}
	a.fields[key] = fn
	return a
}

// Keys returns the registered keys in registration order.
func (a *RowAdapter[T]) Keys() []string {
	out := make([]string, len(a.order))
	copy(out, a.order)
	return out
}

// Rows materializes data as a RowSet.
func (a *RowAdapter[T]) Rows(data []T) RowSet {
	rows := make(RowSet, len(data))
	for i, item := range data {
		row := make(DataRow, len(a.order))
		for _, key := range a.order {
			row[key] = a.fields[key](item)
		}
		rows[i] = row
	}
	return rows
}
