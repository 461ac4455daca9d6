package response

import (
	"sync"

	"github.com/pkg/errors"
)

// Replay is a Source that cycles through canned responses, ignoring the
// question. Used for demos and tests without a query service.
type Replay struct {
	mu        sync.Mutex
	responses []*Envelope
	next      int
}

// NewReplay creates a Replay over responses.
func NewReplay(responses ...*Envelope) *Replay {
	return &Replay{responses: responses}
}

// ParseReplay builds a Replay from raw responses.
func ParseReplay(raws ...[]byte) (*Replay, error) {
	envs := make([]*Envelope, 0, len(raws))
	for i, raw := range raws {
		env, err := Parse(raw)
		if err != nil {
			return nil, errors.Wrapf(err, "response %d", i)
		}
		envs = append(envs, env)
	}
	return NewReplay(envs...), nil
}

// Query returns the next canned response, wrapping around at the end.
func (r *Replay) Query(question string) (*Envelope, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.responses) == 0 {
		return nil, errors.New("replay has no responses")
	}
	env := r.responses[r.next]
	r.next = (r.next + 1) % len(r.responses)
	return env, nil
}
