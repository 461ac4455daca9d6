package engine

import (
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// ============================================================================
// REGISTRY — kind → builder + default skeleton
// ============================================================================
// The single entry point for rendering layers:
//
//	reg, err := engine.NewRegistry(templates.Defaults())
//	built, err := reg.Build(engine.KindBar, rows, bindings)
//
// Construction checks that every role a builder resolves is declared as a
// channel by its template, so template/builder drift fails at startup and
// not on the first request.
// ============================================================================

var (
	// ErrUnknownKind is returned for kinds with no registered builder.
	ErrUnknownKind = errors.New("unknown chart kind")
	// ErrRoleDrift is returned when a template does not declare a role its
	// builder requires.
	ErrRoleDrift = errors.New("template channels do not cover builder roles")
)

// Catalog supplies each kind's default skeleton and declared channel names.
type Catalog interface {
	Lookup(kind ChartKind) (skeleton Spec, channels []string, ok bool)
}

// Registry dispatches builds by chart kind. It is immutable after
// construction and safe for concurrent use.
type Registry struct {
	entries map[ChartKind]entry
	kinds   []ChartKind
	log     logrus.FieldLogger
}

type entry struct {
	builder  Builder
	skeleton Spec
	channels []string
}

// NewRegistry registers a builder for every kind the catalog provides.
func NewRegistry(catalog Catalog, opts ...Option) (*Registry, error) {
	cfg := applyOptions(opts)
	r := &Registry{
		entries: make(map[ChartKind]entry),
		log:     cfg.Logger,
	}

	for _, kind := range Kinds() {
		skeleton, channels, ok := catalog.Lookup(kind)
		if !ok {
			r.log.WithField("kind", kind).Debug("no template, kind disabled")
			continue
		}
		builder, err := NewBuilder(kind, opts...)
		if err != nil {
			return nil, err
		}
		if err := checkRoles(builder, channels); err != nil {
			return nil, err
		}
		r.entries[kind] = entry{builder: builder, skeleton: skeleton, channels: channels}
		r.kinds = append(r.kinds, kind)
	}

	if len(r.kinds) == 0 {
		return nil, errors.New("catalog provides no known chart kinds")
	}
	return r, nil
}

func checkRoles(builder Builder, channels []string) error {
	declared := make(map[string]bool, len(channels))
	for _, c := range channels {
		declared[c] = true
	}
	for _, role := range builder.RequiredRoles() {
		if !declared[role] {
			return errors.Wrapf(ErrRoleDrift, "%s template is missing channel %q", builder.Kind(), role)
		}
	}
	return nil
}

// Kinds returns the registered kinds in a stable order.
func (r *Registry) Kinds() []ChartKind {
	out := make([]ChartKind, len(r.kinds))
	copy(out, r.kinds)
	return out
}

// Builder returns the builder registered for kind.
func (r *Registry) Builder(kind ChartKind) (Builder, bool) {
	e, ok := r.entries[kind]
	return e.builder, ok
}

// Channels returns the channel names declared by kind's template.
func (r *Registry) Channels(kind ChartKind) []string {
	e, ok := r.entries[kind]
	if !ok {
		return nil
	}
	out := make([]string, len(e.channels))
	copy(out, e.channels)
	return out
}

// Build populates kind's default skeleton from rows and bindings.
func (r *Registry) Build(kind ChartKind, rows RowSet, bindings BindingSet) (*Built, error) {
	e, ok := r.entries[kind]
	if !ok {
		return nil, errors.Wrapf(ErrUnknownKind, "%q", kind)
	}
	return r.build(e.builder, e.skeleton, rows, bindings)
}

// BuildWith is Build with a caller-supplied skeleton in place of the
// template default.
func (r *Registry) BuildWith(kind ChartKind, skeleton Spec, rows RowSet, bindings BindingSet) (*Built, error) {
	e, ok := r.entries[kind]
	if !ok {
		return nil, errors.Wrapf(ErrUnknownKind, "%q", kind)
	}
	return r.build(e.builder, skeleton, rows, bindings)
}

func (r *Registry) build(builder Builder, skeleton Spec, rows RowSet, bindings BindingSet) (*Built, error) {
	log := r.log.WithFields(logrus.Fields{
		"kind": builder.Kind(),
		"rows": len(rows),
	})
	log.Debug("building chart")

	built, err := builder.Build(skeleton, rows, bindings)
	if err != nil {
		log.WithError(err).Debug("build failed")
		return nil, err
	}
	for _, w := range built.Warnings {
		log.WithField("code", w.Code).Warn(w.Message)
	}
	return built, nil
}
