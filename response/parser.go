package response

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/pkg/errors"
)

// ============================================================================
// RESPONSE PARSER — Extracts an Envelope from raw bytes
// ============================================================================

// ErrFailed is returned when the envelope reports a non-success code.
var ErrFailed = errors.New("query failed")

// Parse decodes a response envelope. Markdown code fences around the JSON
// are tolerated. A bare payload (no envelope) is accepted too.
func Parse(raw []byte) (*Envelope, error) {
	text := strings.TrimSpace(string(raw))
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	text = strings.TrimSpace(text)

	var probe map[string]json.RawMessage
	if err := json.Unmarshal([]byte(text), &probe); err != nil {
		return nil, errors.Wrapf(err, "failed to parse response (response: %.200s)", text)
	}

	var env Envelope
	if isEnvelope(probe) {
		if err := json.Unmarshal([]byte(text), &env); err != nil {
			return nil, errors.Wrap(err, "failed to parse response envelope")
		}
	} else {
		if err := json.Unmarshal([]byte(text), &env.Data); err != nil {
			return nil, errors.Wrap(err, "failed to parse response payload")
		}
		env.Code = 200
	}

	// Apply defaults for missing fields
	if env.Code == 0 {
		env.Code = 200
	}
	if env.Data.QueryType == "" && env.Data.ChartID != "" {
		env.Data.QueryType = TypeVisualization
	}

	if err := validate(&env); err != nil {
		return nil, err
	}
	return &env, nil
}

// isEnvelope tells an envelope from a bare payload. Both may carry a
// "data" key; only the envelope's is an object.
func isEnvelope(probe map[string]json.RawMessage) bool {
	if probe["query_type"] != nil || probe["chart_id"] != nil {
		return false
	}
	data := bytes.TrimSpace(probe["data"])
	return len(data) > 0 && data[0] == '{'
}

func validate(env *Envelope) error {
	if env.Code < 200 || env.Code >= 300 {
		return errors.Wrapf(ErrFailed, "code %d: %s", env.Code, env.Message)
	}
	p := env.Data
	switch p.QueryType {
	case TypeVisualization:
		if p.ChartID == "" {
			return errors.New("visualization response has no chart_id")
		}
	case TypeReplace:
		if p.ChartID == "" {
			return errors.New("replace response has no chart_id")
		}
		if p.ExistingVisualizationID == "" {
			return errors.New("replace response has no existing_visualization_id")
		}
	case TypeReport:
	default:
		return errors.Errorf("unknown query_type %q", p.QueryType)
	}
	return nil
}
