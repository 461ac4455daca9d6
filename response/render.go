package response

import (
	"strings"

	"github.com/pkg/errors"

	"github.com/spektr-org/chartkit/engine"
)

// Builder is the part of engine.Registry that Render needs.
type Builder interface {
	Build(kind engine.ChartKind, rows engine.RowSet, bindings engine.BindingSet) (*engine.Built, error)
}

// Render turns a payload into a Rendered result. Chart payloads are built
// through b; reports pass through untouched.
func Render(b Builder, p Payload) (*Rendered, error) {
	if p.QueryType == TypeReport {
		return &Rendered{
			Type:  TypeReport,
			Title: reportTitle(p.Doc),
			Doc:   p.Doc,
		}, nil
	}
	if !p.IsChart() {
		return nil, errors.Errorf("unknown query_type %q", p.QueryType)
	}

	rows := p.Data
	if rows == nil {
		rows = engine.RowSet{}
	}
	built, err := b.Build(engine.ChartKind(p.ChartID), rows, p.Bindings())
	if err != nil {
		return nil, errors.Wrapf(err, "could not build %s chart", p.ChartID)
	}

	return &Rendered{
		Type:      p.QueryType,
		ChartID:   p.ChartID,
		Title:     p.ChartTitle,
		Spec:      built.Spec,
		Warnings:  built.Warnings,
		ReplaceID: p.ExistingVisualizationID,
	}, nil
}

// reportTitle returns the text of the first markdown heading.
func reportTitle(doc string) string {
	for _, line := range strings.Split(doc, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "#") {
			return strings.TrimSpace(strings.TrimLeft(line, "#"))
		}
	}
	return ""
}
