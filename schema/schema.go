package schema

// ============================================================================
// SCHEMA — Column profile of a RowSet
// ============================================================================
// Describes the columns of a query result so a caller can choose which
// field to bind to each chart role. The engine does not need a profile to
// build; this is an aid for the CLI and for binding editors.
// ============================================================================

// Profile describes every column of a row set.
type Profile struct {
	Rows    int             `json:"rows"`
	Columns []ColumnProfile `json:"columns"`
}

// ColumnType is the observed value type of a column.
type ColumnType string

const (
	TypeNumeric   ColumnType = "numeric"
	TypeTimestamp ColumnType = "timestamp" // numbers above engine.TimestampThreshold
	TypeText      ColumnType = "text"
	TypeBool      ColumnType = "bool"
	TypeMixed     ColumnType = "mixed"
	TypeEmpty     ColumnType = "empty"
)

// Role is the suggested use of a column.
type Role string

const (
	RoleDimension  Role = "dimension"
	RoleMeasure    Role = "measure"
	RoleTemporal   Role = "temporal"
	RoleIdentifier Role = "identifier"
	RoleUnused     Role = "unused"
)

// ColumnProfile describes one column.
type ColumnProfile struct {
	Key             string     `json:"key"`
	DisplayName     string     `json:"displayName"`
	Type            ColumnType `json:"type"`
	Role            Role       `json:"role"`
	Nulls           int        `json:"nulls"`
	Distinct        int        `json:"distinct"`
	Samples         []string   `json:"samples"`
	TemporalFormat  string     `json:"temporalFormat,omitempty"`
	CardinalityHint string     `json:"cardinalityHint,omitempty"` // "low", "medium", "high"
}

// Column returns the profile of key.
func (p Profile) Column(key string) (ColumnProfile, bool) {
	for _, c := range p.Columns {
		if c.Key == key {
			return c, true
		}
	}
	return ColumnProfile{}, false
}

// KeysWithRole returns the keys of columns suggested for role.
func (p Profile) KeysWithRole(role Role) []string {
	var keys []string
	for _, c := range p.Columns {
		if c.Role == role {
			keys = append(keys, c.Key)
		}
	}
	return keys
}
