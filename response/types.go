package response

import (
	"github.com/spektr-org/chartkit/engine"
)

// ============================================================================
// RESPONSE — Query service payloads
// ============================================================================
// The query service answers a natural-language question with an envelope:
//
//	{"code": 200, "message": "...", "data": {"query_type": "...", ...}}
//
// data is one of:
//   visualization: chart_id, channel_mapping, data, [chart_title]
//   replace      : same, plus existing_visualization_id
//   report       : doc (markdown)
//
// channel_mapping keys are the roles the chart kind requires; values are
// field names in data. It is the wire form of an engine.BindingSet.
// ============================================================================

// QueryType discriminates the payload.
type QueryType string

const (
	TypeVisualization QueryType = "visualization"
	TypeReplace       QueryType = "replace"
	TypeReport        QueryType = "report"
)

// Envelope is the outer response object.
type Envelope struct {
	Code    int     `json:"code"`
	Message string  `json:"message"`
	Data    Payload `json:"data"`
}

// Payload is the discriminated response body.
type Payload struct {
	QueryType               QueryType         `json:"query_type"`
	ChartID                 string            `json:"chart_id,omitempty"`
	ChannelMapping          map[string]string `json:"channel_mapping,omitempty"`
	Data                    engine.RowSet     `json:"data,omitempty"`
	ChartTitle              string            `json:"chart_title,omitempty"`
	ExistingVisualizationID string            `json:"existing_visualization_id,omitempty"`
	Doc                     string            `json:"doc,omitempty"`
}

// Bindings returns channel_mapping as a BindingSet.
func (p Payload) Bindings() engine.BindingSet {
	return engine.BindingsFromMapping(p.ChannelMapping)
}

// IsChart reports whether the payload carries chart data.
func (p Payload) IsChart() bool {
	return p.QueryType == TypeVisualization || p.QueryType == TypeReplace
}

// Rendered is a payload turned into something a layout layer can place.
type Rendered struct {
	Type      QueryType        `json:"type"`
	ChartID   string           `json:"chartId,omitempty"`
	Title     string           `json:"title,omitempty"`
	Spec      engine.Spec      `json:"spec,omitempty"`
	Warnings  []engine.Warning `json:"warnings,omitempty"`
	ReplaceID string           `json:"replaceId,omitempty"`
	Doc       string           `json:"doc,omitempty"`
}

// Source produces query responses. Implementations wrap the transport that
// talks to the query service; Replay serves canned responses.
type Source interface {
	Query(question string) (*Envelope, error)
}
