package templates

import (
	"bytes"
	"embed"
	"encoding/json"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/spektr-org/chartkit/engine"
)

// ============================================================================
// STORE — Template lookup by chart kind
// ============================================================================
// Sources:
//   Defaults() : templates embedded in the binary
//   LoadDir()  : *.json / *.yaml / *.yml files from a directory
// Override() layers one store on top of another by template ID.
// ============================================================================

//go:embed defaults/*.json defaults/*.yaml
var defaultFS embed.FS

// Store holds templates keyed by ID. It is immutable once built.
type Store struct {
	templates map[string]*Template
	ids       []string
}

// Defaults returns the embedded templates. They are validated by tests, so
// a load failure here is a build defect.
func Defaults() *Store {
	s, err := LoadFS(defaultFS, "defaults")
	if err != nil {
		panic(errors.Wrap(err, "embedded templates"))
	}
	return s
}

// LoadDir loads every template file in dir.
func LoadDir(dir string) (*Store, error) {
	return LoadFS(os.DirFS(dir), ".")
}

// LoadFS loads every template file in dir of fsys.
func LoadFS(fsys fs.FS, dir string) (*Store, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, errors.Wrapf(err, "could not read template directory %s", dir)
	}

	var list []*Template
	for _, e := range entries {
		if e.IsDir() || !isTemplateFile(e.Name()) {
			continue
		}
		name := path.Join(dir, e.Name())
		data, err := fs.ReadFile(fsys, name)
		if err != nil {
			return nil, errors.Wrapf(err, "could not read %s", name)
		}
		t, err := Parse(data, path.Ext(name))
		if err != nil {
			return nil, errors.Wrapf(err, "could not parse %s", name)
		}
		list = append(list, t)
	}
	return New(list...)
}

// New builds a store from templates. Every template is validated and IDs
// must be unique.
func New(list ...*Template) (*Store, error) {
	s := &Store{templates: make(map[string]*Template, len(list))}
	for _, t := range list {
		if err := t.Validate(); err != nil {
			return nil, err
		}
		if _, dup := s.templates[t.ID]; dup {
			return nil, errors.Errorf("duplicate template id %q", t.ID)
		}
		s.templates[t.ID] = t
		s.ids = append(s.ids, t.ID)
	}
	sort.Strings(s.ids)
	return s, nil
}

// Parse decodes one template. ext selects YAML (".yaml", ".yml") or JSON.
func Parse(data []byte, ext string) (*Template, error) {
	if ext == ".yaml" || ext == ".yml" {
		converted, err := yamlToJSON(data)
		if err != nil {
			return nil, err
		}
		data = converted
	}
	var t Template
	dec := json.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(&t); err != nil {
		return nil, errors.Wrap(err, "invalid template")
	}
	if t.Option == nil {
		t.Option = engine.Spec{}
	}
	return &t, nil
}

// yamlToJSON re-encodes YAML as JSON so both formats decode through the
// same path and produce the same number types.
func yamlToJSON(data []byte) ([]byte, error) {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrap(err, "invalid yaml")
	}
	out, err := json.Marshal(doc)
	if err != nil {
		return nil, errors.Wrap(err, "yaml is not representable as json")
	}
	return out, nil
}

func isTemplateFile(name string) bool {
	switch strings.ToLower(path.Ext(name)) {
	case ".json", ".yaml", ".yml":
		return true
	}
	return false
}

// Override returns a store with every template of top replacing the
// template of the same ID in s.
func (s *Store) Override(top *Store) *Store {
	merged := &Store{templates: make(map[string]*Template, len(s.templates)+len(top.templates))}
	for id, t := range s.templates {
		merged.templates[id] = t
	}
	for id, t := range top.templates {
		merged.templates[id] = t
	}
	for id := range merged.templates {
		merged.ids = append(merged.ids, id)
	}
	sort.Strings(merged.ids)
	return merged
}

// Get returns the template with id. The result must be treated as read-only.
func (s *Store) Get(id string) (*Template, bool) {
	t, ok := s.templates[id]
	return t, ok
}

// IDs returns the template IDs in sorted order.
func (s *Store) IDs() []string {
	out := make([]string, len(s.ids))
	copy(out, s.ids)
	return out
}

// Lookup implements engine.Catalog.
func (s *Store) Lookup(kind engine.ChartKind) (engine.Spec, []string, bool) {
	t, ok := s.templates[string(kind)]
	if !ok {
		return nil, nil, false
	}
	return t.Option, t.ChannelNames(), true
}
