package schema

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/spektr-org/chartkit/engine"
)

// ============================================================================
// AUTO-DISCOVERY — Heuristic column classification
// ============================================================================
// Classification pipeline per column:
//   1. Observe value types (number, string, bool, nil)
//   2. Type + cardinality → suggested role (dimension, measure, ...)
//   3. Pattern matching on text → temporal formats
// ============================================================================

// Discover profiles every column of rows, in first-seen key order.
func Discover(rows engine.RowSet) *Profile {
	p := &Profile{Rows: len(rows), Columns: []ColumnProfile{}}
	for _, key := range rows.Keys() {
		p.Columns = append(p.Columns, analyzeColumn(rows, key))
	}
	return p
}

type valueCounts struct {
	numbers    int
	timestamps int
	decimals   bool
	texts      int
	bools      int
}

// analyzeColumn inspects all values in a column and classifies it.
func analyzeColumn(rows engine.RowSet, key string) ColumnProfile {
	col := ColumnProfile{
		Key:         key,
		DisplayName: toDisplayName(key),
	}

	var counts valueCounts
	var texts []string
	unique := make(map[string]bool)

	for _, row := range rows {
		v := row[key]
		if v == nil {
			col.Nulls++
			continue
		}
		unique[engine.StringifyValue(v)] = true

		if f, ok := engine.Numeric(v); ok {
			counts.numbers++
			if f > engine.TimestampThreshold {
				counts.timestamps++
			}
			if f != float64(int64(f)) {
				counts.decimals = true
			}
			continue
		}
		switch t := v.(type) {
		case string:
			counts.texts++
			texts = append(texts, t)
		case bool:
			counts.bools++
		}
	}

	col.Distinct = len(unique)
	col.Samples = collectSamples(unique, 10)
	nonNull := len(rows) - col.Nulls

	// Step 1: Detect type
	switch {
	case nonNull == 0:
		col.Type = TypeEmpty
	case counts.numbers == nonNull && counts.timestamps == nonNull:
		col.Type = TypeTimestamp
	case counts.numbers == nonNull:
		col.Type = TypeNumeric
	case counts.texts == nonNull:
		col.Type = TypeText
		col.TemporalFormat = detectTemporalPattern(texts)
	case counts.bools == nonNull:
		col.Type = TypeBool
	default:
		col.Type = TypeMixed
	}

	// Step 2: Classify role based on type + cardinality
	col.Role = classifyRole(col, counts.decimals, len(rows))

	// Step 3: Set cardinality hint
	switch {
	case col.Distinct <= 10:
		col.CardinalityHint = "low"
	case col.Distinct <= 100:
		col.CardinalityHint = "medium"
	default:
		col.CardinalityHint = "high"
	}

	return col
}

// classifyRole suggests dimension vs measure vs temporal.
func classifyRole(col ColumnProfile, decimals bool, totalRows int) Role {
	switch col.Type {
	case TypeEmpty:
		return RoleUnused

	case TypeTimestamp:
		return RoleTemporal

	case TypeNumeric:
		// Continuous data is always a measure
		if decimals {
			return RoleMeasure
		}
		// Few distinct integers relative to row count → coded dimension (e.g. year, priority)
		ratio := float64(col.Distinct) / float64(totalRows)
		if col.Distinct < 20 && ratio < 0.3 {
			return RoleDimension
		}
		return RoleMeasure

	case TypeText:
		if col.TemporalFormat != "" {
			return RoleTemporal
		}
		if col.Distinct == totalRows && totalRows > 10 {
			// Every value unique → likely an identifier or free text
			return RoleIdentifier
		}
		return RoleDimension

	case TypeBool:
		return RoleDimension
	}
	return RoleUnused
}

// ============================================================================
// SPECIAL PATTERN DETECTION
// ============================================================================

var temporalPatterns = []struct {
	re     *regexp.Regexp
	format string
}{
	{regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`), "yyyy-MM-dd"},    // 2026-01-15
	{regexp.MustCompile(`^[A-Z][a-z]{2}-\d{4}$`), "MMM-yyyy"},     // Jan-2026
	{regexp.MustCompile(`^\d{4}-\d{2}$`), "yyyy-MM"},              // 2026-01
	{regexp.MustCompile(`^Q[1-4]-\d{4}$`), "QN-yyyy"},             // Q1-2026
	{regexp.MustCompile(`^\d{4}$`), "yyyy"},                       // 2026
	{regexp.MustCompile(`^[A-Z][a-z]+ \d{4}$`), "MMMM yyyy"},      // January 2026
	{regexp.MustCompile(`^\d{4}年(\d{1,2}月)?$`), "yyyy年M月"},       // 2006年 / 2006年3月
}

// detectTemporalPattern returns the format that at least 80% of values
// match, or "".
func detectTemporalPattern(values []string) string {
	if len(values) == 0 {
		return ""
	}
	for _, pattern := range temporalPatterns {
		matches := 0
		for _, s := range values {
			if pattern.re.MatchString(strings.TrimSpace(s)) {
				matches++
			}
		}
		if float64(matches)/float64(len(values)) >= 0.8 {
			return pattern.format
		}
	}
	if isRFC3339(values) {
		return "rfc3339"
	}
	return ""
}

func isRFC3339(values []string) bool {
	for _, s := range values {
		if _, err := time.Parse(time.RFC3339, strings.TrimSpace(s)); err != nil {
			return false
		}
	}
	return true
}

// ============================================================================
// STRING UTILITIES
// ============================================================================

// toDisplayName cleans a key for human display.
// "story_points" → "Story Points", "industry" → "Industry"
func toDisplayName(s string) string {
	if strings.Contains(s, " ") {
		return strings.TrimSpace(s)
	}

	s = strings.ReplaceAll(s, "_", " ")
	s = strings.ReplaceAll(s, "-", " ")

	words := strings.Fields(s)
	for i, w := range words {
		first, size := utf8.DecodeRuneInString(w)
		words[i] = string(unicode.ToUpper(first)) + strings.ToLower(w[size:])
	}
	return strings.Join(words, " ")
}

// collectSamples picks up to maxSamples values in sorted order.
func collectSamples(unique map[string]bool, maxSamples int) []string {
	samples := make([]string, 0, len(unique))
	for v := range unique {
		samples = append(samples, v)
	}
	sort.Strings(samples)
	if len(samples) > maxSamples {
		samples = samples[:maxSamples]
	}
	return samples
}

// Describe renders one line per column, e.g. "industry: text, dimension (12 distinct)".
func (p Profile) Describe() []string {
	lines := make([]string, 0, len(p.Columns))
	for _, c := range p.Columns {
		lines = append(lines, fmt.Sprintf("%s: %s, %s (%d distinct)", c.Key, c.Type, c.Role, c.Distinct))
	}
	return lines
}
