package engine

import (
	"github.com/pkg/errors"
	"github.com/tiendc/go-deepcopy"
)

// Clone returns a deep copy of s. Builders clone their skeleton before
// touching it so one skeleton can serve any number of concurrent builds.
func (s Spec) Clone() (Spec, error) {
	if s == nil {
		return Spec{}, nil
	}
	var out Spec
	if err := deepcopy.Copy(&out, &s); err != nil {
		return nil, errors.Wrap(err, "could not copy skeleton")
	}
	return out, nil
}

// axis returns the first axis object under key, creating it when the
// skeleton has none. Templates declare axes either as one object or as a
// list of objects.
func (s Spec) axis(key string) map[string]any {
	switch v := s[key].(type) {
	case map[string]any:
		return v
	case []any:
		if len(v) > 0 {
			if first, ok := v[0].(map[string]any); ok {
				return first
			}
		}
		first := map[string]any{}
		s[key] = append([]any{first}, v...)
		return first
	}
	axis := map[string]any{}
	s[key] = axis
	return axis
}

// object returns the object under key, creating it when absent.
func (s Spec) object(key string) map[string]any {
	if v, ok := s[key].(map[string]any); ok {
		return v
	}
	obj := map[string]any{}
	s[key] = obj
	return obj
}

// firstSeries returns series[0], creating the series list when absent.
func (s Spec) firstSeries(chartType string) map[string]any {
	if list, ok := s["series"].([]any); ok && len(list) > 0 {
		if first, ok := list[0].(map[string]any); ok {
			return first
		}
	}
	first := map[string]any{"type": chartType}
	s["series"] = []any{first}
	return first
}
