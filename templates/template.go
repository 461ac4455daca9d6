package templates

import (
	"github.com/ohler55/ojg/jp"
	"github.com/pkg/errors"

	"github.com/spektr-org/chartkit/engine"
)

// ============================================================================
// TEMPLATE — Default skeleton + declared channels for one chart kind
// ============================================================================
// Loaded once at startup and read-only afterwards. Builders deep-copy the
// option before populating it, so a Template may be shared freely.
// ============================================================================

// Template describes one chart kind.
type Template struct {
	ID       string      `json:"id"`
	Option   engine.Spec `json:"option"`
	Channels []Channel   `json:"channels"`
}

// Channel is a role the chart kind can bind data to.
type Channel struct {
	Name      string     `json:"name"`
	Type      string     `json:"type"` // "categorical", "quantitative", "temporal"
	Instances []Instance `json:"instances,omitempty"`
}

// Instance points at the part of the option a channel populates.
// URL is a path of object keys (strings) and list indexes (numbers).
type Instance struct {
	Type string `json:"type"`
	URL  []any  `json:"url"`
}

// ChannelNames returns the channel names in declaration order.
func (t *Template) ChannelNames() []string {
	names := make([]string, 0, len(t.Channels))
	for _, c := range t.Channels {
		names = append(names, c.Name)
	}
	return names
}

// Lookup returns the option values an instance path points at.
func (t *Template) Lookup(in Instance) ([]any, error) {
	x, err := instancePath(in.URL)
	if err != nil {
		return nil, err
	}
	return x.Get(map[string]any(t.Option)), nil
}

// Validate checks the template shape: an ID, unique channel names and
// instance paths that resolve inside the option.
func (t *Template) Validate() error {
	if t.ID == "" {
		return errors.New("template has no id")
	}
	seen := make(map[string]bool, len(t.Channels))
	for _, c := range t.Channels {
		if c.Name == "" {
			return errors.Errorf("template %s: channel without a name", t.ID)
		}
		if seen[c.Name] {
			return errors.Errorf("template %s: duplicate channel %q", t.ID, c.Name)
		}
		seen[c.Name] = true

		for _, in := range c.Instances {
			found, err := t.Lookup(in)
			if err != nil {
				return errors.Wrapf(err, "template %s: channel %q", t.ID, c.Name)
			}
			if len(found) == 0 {
				return errors.Errorf("template %s: channel %q path %v not found in option", t.ID, c.Name, in.URL)
			}
		}
	}
	return nil
}

// instancePath converts a URL into a JSONPath expression rooted at the
// option.
func instancePath(url []any) (jp.Expr, error) {
	x := jp.R()
	for _, seg := range url {
		switch s := seg.(type) {
		case string:
			x = x.C(s)
		case float64:
			x = x.N(int(s))
		case int:
			x = x.N(s)
		default:
			return nil, errors.Errorf("invalid path segment %v (%T)", seg, seg)
		}
	}
	return x, nil
}
