package helpers

import (
	"encoding/json"

	"github.com/pkg/errors"

	"github.com/spektr-org/chartkit/engine"
)

// ParseJSON decodes a JSON array of objects into a RowSet. Numbers decode
// as float64, matching rows delivered by the query service.
func ParseJSON(data []byte) (engine.RowSet, error) {
	var rows engine.RowSet
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, errors.Wrap(err, "rows must be a JSON array of objects")
	}
	if rows == nil {
		rows = engine.RowSet{}
	}
	return rows, nil
}
