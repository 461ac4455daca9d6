package engine

import (
	"fmt"
	"sort"

	"github.com/pkg/errors"
)

// ============================================================================
// BINDINGS — logical role → concrete column
// ============================================================================
// A chart kind declares the roles it needs ("x", "value", "category", ...).
// The caller maps each role to a field that exists in the rows.
// ============================================================================

// Binding maps one logical role to one concrete field key.
type Binding struct {
	Name  string `json:"name"`
	Field string `json:"field"`
}

// BindingSet is an ordered set of bindings with unique role names.
type BindingSet struct {
	items []Binding
	index map[string]int
}

// NewBindingSet builds a BindingSet. A role listed twice is an error.
func NewBindingSet(bindings ...Binding) (BindingSet, error) {
	bs := BindingSet{
		items: make([]Binding, 0, len(bindings)),
		index: make(map[string]int, len(bindings)),
	}
	for _, b := range bindings {
		if _, dup := bs.index[b.Name]; dup {
			return BindingSet{}, errors.Errorf("duplicate binding for role %q", b.Name)
		}
		bs.index[b.Name] = len(bs.items)
		bs.items = append(bs.items, b)
	}
	return bs, nil
}

// MustBindingSet is NewBindingSet for static bindings; it panics on duplicates.
func MustBindingSet(bindings ...Binding) BindingSet {
	bs, err := NewBindingSet(bindings...)
	if err != nil {
		panic(err)
	}
	return bs
}

// BindingsFromMapping converts the wire form (role → field) into a
// BindingSet. Map order is undefined, so roles are sorted.
func BindingsFromMapping(mapping map[string]string) BindingSet {
	roles := make([]string, 0, len(mapping))
	for role := range mapping {
		roles = append(roles, role)
	}
	sort.Strings(roles)

	bindings := make([]Binding, 0, len(roles))
	for _, role := range roles {
		bindings = append(bindings, Binding{Name: role, Field: mapping[role]})
	}
	// keys of a map are unique
	return MustBindingSet(bindings...)
}

// Lookup returns the field bound to role.
func (bs BindingSet) Lookup(role string) (string, bool) {
	i, ok := bs.index[role]
	if !ok {
		return "", false
	}
	return bs.items[i].Field, true
}

// Len returns the number of bindings.
func (bs BindingSet) Len() int { return len(bs.items) }

// Bindings returns a copy of the bindings in declaration order.
func (bs BindingSet) Bindings() []Binding {
	out := make([]Binding, len(bs.items))
	copy(out, bs.items)
	return out
}

// ============================================================================
// RESOLVER
// ============================================================================

// MissingBindingError reports a required role with no binding.
type MissingBindingError struct {
	Kind ChartKind // empty when resolved outside a builder
	Role string
}

func (e *MissingBindingError) Error() string {
	if e.Kind != "" {
		return fmt.Sprintf("binding is not matched for %s chart, missing: %s", e.Kind, e.Role)
	}
	return fmt.Sprintf("binding is not matched, missing: %s", e.Role)
}

// Resolve returns the bound field for every required role, in the order
// given. It fails on the first unmet role and never returns a partial result.
func Resolve(required []string, bindings BindingSet) ([]string, error) {
	fields := make([]string, 0, len(required))
	for _, role := range required {
		field, ok := bindings.Lookup(role)
		if !ok {
			return nil, &MissingBindingError{Role: role}
		}
		fields = append(fields, field)
	}
	return fields, nil
}

// resolveFor is Resolve with the chart kind attached to the error.
func resolveFor(kind ChartKind, required []string, bindings BindingSet) ([]string, error) {
	fields, err := Resolve(required, bindings)
	if err != nil {
		var mb *MissingBindingError
		if errors.As(err, &mb) {
			mb.Kind = kind
		}
		return nil, err
	}
	return fields, nil
}
