package schema

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spektr-org/chartkit/engine"
	"github.com/spektr-org/chartkit/helpers"
)

// ============================================================================
// DISCOVERY TESTS
// ============================================================================

var financeCSV = []byte(`Month,Location,Category,Field,Currency,Amount
Jan-2026,Singapore,Income,Salary,SGD,8500.00
Jan-2026,Singapore,Expense,Rent,SGD,2200.00
Jan-2026,Singapore,Expense,Groceries,SGD,450.00
Jan-2026,Singapore,Expense,Transport,SGD,120.00
Jan-2026,India,Income,Rental Income,INR,25000.00
Jan-2026,India,Expense,Property Tax,INR,5000.00
Feb-2026,Singapore,Income,Salary,SGD,8500.00
Feb-2026,Singapore,Expense,Rent,SGD,2200.00
Feb-2026,Singapore,Expense,Internet,SGD,49.90
Feb-2026,India,Transfer,ToIndia,INR,50000.00
`)

func TestDiscoverFinanceCSV(t *testing.T) {
	rows, err := helpers.ParseCSV(financeCSV, helpers.Options{SnakeCaseHeaders: true})
	require.NoError(t, err)

	p := Discover(rows)
	assert.Equal(t, 10, p.Rows)
	require.Len(t, p.Columns, 6)

	month, ok := p.Column("month")
	require.True(t, ok)
	assert.Equal(t, TypeText, month.Type)
	assert.Equal(t, "MMM-yyyy", month.TemporalFormat)
	assert.Equal(t, RoleTemporal, month.Role)

	amount, _ := p.Column("amount")
	assert.Equal(t, TypeNumeric, amount.Type)
	assert.Equal(t, RoleMeasure, amount.Role)

	assert.ElementsMatch(t, []string{"location", "category", "field", "currency"}, p.KeysWithRole(RoleDimension))
	assert.Equal(t, []string{"month"}, p.KeysWithRole(RoleTemporal))

	currency, _ := p.Column("currency")
	assert.Equal(t, []string{"INR", "SGD"}, currency.Samples)
	assert.Equal(t, "low", currency.CardinalityHint)
}

func TestDiscoverTypes(t *testing.T) {
	rows := engine.RowSet{
		{"ts": 1136073600000.0, "flag": true, "blank": nil, "mixed": 1.0, "year": 2021.0},
		{"ts": 1167609600000.0, "flag": false, "blank": nil, "mixed": "one", "year": 2021.0},
		{"ts": 1199145600000.0, "flag": true, "mixed": 2.0, "year": 2022.0},
		{"ts": 1230768000000.0, "flag": true, "mixed": 3.0, "year": 2022.0},
	}
	p := Discover(rows)

	cases := map[string]struct {
		typ  ColumnType
		role Role
	}{
		"ts":    {TypeTimestamp, RoleTemporal},
		"flag":  {TypeBool, RoleDimension},
		"blank": {TypeEmpty, RoleUnused},
		"mixed": {TypeMixed, RoleUnused},
		"year":  {TypeNumeric, RoleMeasure},
	}
	for key, want := range cases {
		col, ok := p.Column(key)
		require.True(t, ok, key)
		assert.Equal(t, want.typ, col.Type, key)
		assert.Equal(t, want.role, col.Role, key)
	}

	blank, _ := p.Column("blank")
	assert.Equal(t, 4, blank.Nulls)
}

func TestDiscoverCodedIntegersAreDimensions(t *testing.T) {
	rows := make(engine.RowSet, 0, 40)
	for i := 0; i < 40; i++ {
		rows = append(rows, engine.DataRow{"priority": float64(i%3 + 1), "id": fmt.Sprintf("T-%d", i)})
	}
	p := Discover(rows)

	priority, _ := p.Column("priority")
	assert.Equal(t, RoleDimension, priority.Role)

	id, _ := p.Column("id")
	assert.Equal(t, RoleIdentifier, id.Role)
	assert.Equal(t, "medium", id.CardinalityHint)
	assert.Len(t, id.Samples, 10)
}

func TestDetectTemporalPattern(t *testing.T) {
	cases := map[string][]string{
		"yyyy-MM-dd": {"2026-01-15", "2026-01-16"},
		"QN-yyyy":    {"Q1-2026", "Q2-2026"},
		"yyyy年M月":    {"2006年", "2006年3月"},
		"rfc3339":    {"2026-01-15T10:00:00Z"},
		"":           {"north", "south"},
	}
	for want, values := range cases {
		assert.Equal(t, want, detectTemporalPattern(values), values)
	}
}

func TestToDisplayName(t *testing.T) {
	assert.Equal(t, "Story Points", toDisplayName("story_points"))
	assert.Equal(t, "Industry", toDisplayName("industry"))
	assert.Equal(t, "Already Spaced", toDisplayName(" Already Spaced "))
	assert.Equal(t, "收入 总额", toDisplayName("收入_总额"))
	assert.Equal(t, "Été Moyen", toDisplayName("été-moyen"))
}

func TestDescribe(t *testing.T) {
	p := Discover(engine.RowSet{{"industry": "A"}, {"industry": "B"}})
	assert.Equal(t, []string{"industry: text, dimension (2 distinct)"}, p.Describe())
}

func TestDiscoverEmpty(t *testing.T) {
	p := Discover(nil)
	assert.Equal(t, 0, p.Rows)
	assert.Empty(t, p.Columns)
}
