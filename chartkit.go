// Package chartkit renders tabular query results as charts through
// declarative role bindings.
//
// Usage:
//
//	import (
//	    "github.com/spektr-org/chartkit/engine"
//	    "github.com/spektr-org/chartkit/templates"
//	)
//
//	reg, err := engine.NewRegistry(templates.Defaults())
//	bindings := engine.MustBindingSet(
//	    engine.Binding{Name: "category", Field: "industry"},
//	    engine.Binding{Name: "value", Field: "percentage"},
//	)
//	built, err := reg.Build(engine.KindPie, rows, bindings)
//
// A chart kind declares the roles it needs ("x", "value", "category", ...);
// bindings map those roles to columns of the rows. The engine never fetches
// data and never picks a chart kind; it only turns (kind, rows, bindings)
// into a populated option tree. Template skeletons are deep-copied on every
// build, so a registry can serve concurrent builds.
//
// Query service responses are decoded by the response package and row files
// (CSV, JSON, XLSX) by the helpers package.
package chartkit
