package engine_test

import (
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spektr-org/chartkit/engine"
	"github.com/spektr-org/chartkit/templates"
)

type stubCatalog map[engine.ChartKind][]string

func (c stubCatalog) Lookup(kind engine.ChartKind) (engine.Spec, []string, bool) {
	channels, ok := c[kind]
	if !ok {
		return nil, nil, false
	}
	return engine.Spec{"series": []any{}}, channels, true
}

func TestRegistryDefaults(t *testing.T) {
	reg, err := engine.NewRegistry(templates.Defaults())
	require.NoError(t, err)

	assert.Equal(t, engine.Kinds(), reg.Kinds())
	for _, kind := range engine.Kinds() {
		builder, ok := reg.Builder(kind)
		require.True(t, ok, kind)
		assert.Equal(t, kind, builder.Kind())
		assert.Subset(t, reg.Channels(kind), builder.RequiredRoles())
	}
}

func TestRegistryUnknownKind(t *testing.T) {
	reg, err := engine.NewRegistry(templates.Defaults())
	require.NoError(t, err)

	_, err = reg.Build("heatmap", nil, engine.BindingSet{})
	assert.True(t, errors.Is(err, engine.ErrUnknownKind))

	_, ok := reg.Builder("heatmap")
	assert.False(t, ok)
	assert.Nil(t, reg.Channels("heatmap"))
}

func TestRegistryRejectsRoleDrift(t *testing.T) {
	_, err := engine.NewRegistry(stubCatalog{
		engine.KindPie: {"category"},
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, engine.ErrRoleDrift))
	assert.Contains(t, err.Error(), `"value"`)
}

func TestRegistrySkipsKindsWithoutTemplate(t *testing.T) {
	reg, err := engine.NewRegistry(stubCatalog{
		engine.KindPie:     {"category", "value"},
		engine.KindScatter: {"x", "y", "size"},
	})
	require.NoError(t, err)
	assert.Equal(t, []engine.ChartKind{engine.KindScatter, engine.KindPie}, reg.Kinds())
}

func TestRegistryEmptyCatalog(t *testing.T) {
	_, err := engine.NewRegistry(stubCatalog{})
	assert.Error(t, err)
}

func TestRegistryBuildPie(t *testing.T) {
	reg, err := engine.NewRegistry(templates.Defaults())
	require.NoError(t, err)

	rows := engine.RowSet{
		{"industry": "A", "percentage": 10.0},
		{"industry": "B", "percentage": 20.0},
	}
	built, err := reg.Build(engine.KindPie, rows, engine.BindingsFromMapping(map[string]string{
		"category": "industry",
		"value":    "percentage",
	}))
	require.NoError(t, err)

	assert.Equal(t, engine.KindPie, built.Kind)
	assert.Equal(t, []any{
		map[string]any{"name": "A", "value": 10.0},
		map[string]any{"name": "B", "value": 20.0},
	}, get(built.Spec, "$.series[0].data")[0])
	assert.Equal(t, []any{"industry"}, get(built.Spec, "$.series[0].name"))
	// template defaults survive
	assert.NotEmpty(t, get(built.Spec, "$.tooltip"))

	// the registry's skeleton is untouched by the build
	again, err := reg.Build(engine.KindPie, rows[:1], engine.BindingsFromMapping(map[string]string{
		"category": "industry",
		"value":    "percentage",
	}))
	require.NoError(t, err)
	assert.Len(t, get(again.Spec, "$.series[0].data")[0], 1)
	assert.Len(t, get(built.Spec, "$.series[0].data")[0], 2)
}

func TestRegistryBuildWithCustomSkeleton(t *testing.T) {
	reg, err := engine.NewRegistry(templates.Defaults())
	require.NoError(t, err)

	built, err := reg.BuildWith(engine.KindScatter, engine.Spec{"title": map[string]any{"text": "custom"}},
		engine.RowSet{{"a": 1.0, "b": 2.0}}, bind("x", "a", "y", "b"))
	require.NoError(t, err)

	assert.Equal(t, []any{"custom"}, get(built.Spec, "$.title.text"))
	assert.Equal(t, []any{[]any{[]any{1.0, 2.0}}}, get(built.Spec, "$.series[0].data"))
	assert.Equal(t, []any{"scatter"}, get(built.Spec, "$.series[0].type"))
}

func TestRegistryLogsWarnings(t *testing.T) {
	logger, hook := logtest.NewNullLogger()
	reg, err := engine.NewRegistry(templates.Defaults(), engine.WithLogger(logger))
	require.NoError(t, err)

	_, err = reg.Build(engine.KindBar, salesRows(), bind("group", "month", "x", "month", "value", "revenue"))
	require.NoError(t, err)

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, logrus.WarnLevel, entry.Level)
	assert.Equal(t, engine.WarnGroupEqualsX, entry.Data["code"])
	assert.Equal(t, engine.KindBar, entry.Data["kind"])
	assert.Equal(t, 4, entry.Data["rows"])
}

func TestRegistryMissingBindingIsTyped(t *testing.T) {
	reg, err := engine.NewRegistry(templates.Defaults())
	require.NoError(t, err)

	_, err = reg.Build(engine.KindRadar, salesRows(), bind("series", "region"))
	var missing *engine.MissingBindingError
	require.True(t, errors.As(err, &missing))
	assert.Equal(t, "field", missing.Role)
	assert.EqualError(t, err, "binding is not matched for radar chart, missing: field")
}

func TestStrictGeoThroughRegistry(t *testing.T) {
	reg, err := engine.NewRegistry(templates.Defaults(), engine.WithStrictGeo(true))
	require.NoError(t, err)

	_, err = reg.Build(engine.KindGeo, nil, engine.BindingSet{})
	assert.True(t, errors.Is(err, engine.ErrUnsupportedKind))
}
