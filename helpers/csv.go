package helpers

import (
	"bytes"
	"encoding/csv"
	"io"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cast"

	"github.com/spektr-org/chartkit/engine"
)

// ============================================================================
// CSV HELPER — Parses tabular bytes into an engine.RowSet
// ============================================================================
// Consumer reads the file from wherever it lives (disk, S3, HTTP body).
// Typing rules, shared with the XLSX helper:
//   - empty cells (and "null") become nil
//   - a column whose every non-empty cell is numeric becomes float64
//   - everything else stays a string
// ============================================================================

// Options controls row parsing.
type Options struct {
	// SnakeCaseHeaders converts "Column Name" → "column_name".
	SnakeCaseHeaders bool
	// Sheet selects the XLSX sheet; empty means the first sheet.
	Sheet string
}

// ParseCSV parses CSV bytes with a header row into a RowSet.
func ParseCSV(data []byte, opts ...Options) (engine.RowSet, error) {
	opt := pickOptions(opts)
	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1

	headers, err := reader.Read()
	if err != nil {
		return nil, errors.Wrap(err, "failed to read CSV headers")
	}

	var records [][]string
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrapf(err, "failed to read CSV row %d", len(records)+2)
		}
		records = append(records, row)
	}

	return buildRows(headers, records, opt), nil
}

// buildRows types and assembles raw string cells.
func buildRows(headers []string, records [][]string, opt Options) engine.RowSet {
	keys := make([]string, len(headers))
	for i, h := range headers {
		keys[i] = strings.TrimSpace(h)
		if opt.SnakeCaseHeaders {
			keys[i] = toSnakeCase(keys[i])
		}
	}

	numeric := numericColumns(len(keys), records)

	rows := make(engine.RowSet, 0, len(records))
	for _, record := range records {
		row := make(engine.DataRow, len(keys))
		for i, key := range keys {
			if key == "" {
				continue
			}
			var val string
			if i < len(record) {
				val = strings.TrimSpace(record[i])
			}
			switch {
			case isNullCell(val):
				row[key] = nil
			case numeric[i]:
				row[key] = cast.ToFloat64(normalizeNumber(val))
			default:
				row[key] = val
			}
		}
		rows = append(rows, row)
	}
	return rows
}

// numericColumns reports, per column, whether every non-empty cell parses
// as a number. All-empty columns are not numeric.
func numericColumns(width int, records [][]string) []bool {
	numeric := make([]bool, width)
	seen := make([]bool, width)
	for i := range numeric {
		numeric[i] = true
	}
	for _, record := range records {
		for i := 0; i < width; i++ {
			if i >= len(record) || isNullCell(strings.TrimSpace(record[i])) {
				continue
			}
			seen[i] = true
			if _, err := cast.ToFloat64E(normalizeNumber(strings.TrimSpace(record[i]))); err != nil {
				numeric[i] = false
			}
		}
	}
	for i := range numeric {
		numeric[i] = numeric[i] && seen[i]
	}
	return numeric
}

// normalizeNumber strips thousands separators ("1,234.5").
func normalizeNumber(s string) string {
	return strings.ReplaceAll(s, ",", "")
}

func isNullCell(s string) bool {
	return s == "" || s == "null" || s == "NULL"
}

func pickOptions(opts []Options) Options {
	if len(opts) > 0 {
		return opts[0]
	}
	return Options{}
}

// toSnakeCase converts "Column Name" → "column_name".
func toSnakeCase(s string) string {
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, "-", "_")
	return s
}
