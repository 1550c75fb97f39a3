package extgate

import (
	"fmt"
	"sync"

	"github.com/corvid-mail/imapcodec"
)

// Descriptor describes one gateable extension: the capability it
// advertises and the other capabilities it requires to be enabled
// alongside it (e.g. QRESYNC requires CONDSTORE per RFC 7162 §3.1).
type Descriptor struct {
	Capability imap.Cap
	Requires   []imap.Cap
}

// Registry tracks the known extension descriptors and resolves their
// dependency order. It carries no command-handler or session-wrapping
// hooks: those are a live-connection runtime concern this codec
// doesn't have, so only the data model survives here.
type Registry struct {
	mu    sync.RWMutex
	descs map[imap.Cap]Descriptor
	order []imap.Cap
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{descs: make(map[imap.Cap]Descriptor)}
}

// DefaultRegistry returns a Registry seeded with every descriptor in
// Gateable and its known RFC dependency.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	deps := map[imap.Cap][]imap.Cap{
		imap.CapQResync: {imap.CapCondStore},
	}
	for _, cap := range Gateable {
		_ = r.Register(Descriptor{Capability: cap, Requires: deps[cap]})
	}
	return r
}

// Register adds a descriptor, failing if its capability is already registered.
func (r *Registry) Register(d Descriptor) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.descs[d.Capability]; exists {
		return fmt.Errorf("extgate: capability %q already registered", d.Capability)
	}
	r.descs[d.Capability] = d
	r.order = append(r.order, d.Capability)
	return nil
}

// Get returns the descriptor for cap, if registered.
func (r *Registry) Get(cap imap.Cap) (Descriptor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	d, ok := r.descs[cap]
	return d, ok
}

// All returns every registered descriptor in registration order.
func (r *Registry) All() []Descriptor {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Descriptor, 0, len(r.order))
	for _, cap := range r.order {
		out = append(out, r.descs[cap])
	}
	return out
}

// Len returns the number of registered descriptors.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.descs)
}

// Remove unregisters a capability's descriptor, if present.
func (r *Registry) Remove(cap imap.Cap) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.descs, cap)
	for i, c := range r.order {
		if c == cap {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
}

// Resolve topologically sorts the registered descriptors so that
// every capability appears after everything it Requires. It fails if
// a Requires entry isn't itself registered, or a dependency cycle exists.
func (r *Registry) Resolve() ([]Descriptor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, d := range r.descs {
		for _, dep := range d.Requires {
			if _, ok := r.descs[dep]; !ok {
				return nil, fmt.Errorf("extgate: %q requires %q which is not registered", d.Capability, dep)
			}
		}
	}

	inDegree := make(map[imap.Cap]int, len(r.descs))
	for cap, d := range r.descs {
		inDegree[cap] = len(d.Requires)
	}

	var queue []imap.Cap
	for cap, deg := range inDegree {
		if deg == 0 {
			queue = append(queue, cap)
		}
	}

	var sorted []Descriptor
	for len(queue) > 0 {
		cap := queue[0]
		queue = queue[1:]
		sorted = append(sorted, r.descs[cap])

		for otherCap, d := range r.descs {
			for _, dep := range d.Requires {
				if dep == cap {
					inDegree[otherCap]--
					if inDegree[otherCap] == 0 {
						queue = append(queue, otherCap)
					}
				}
			}
		}
	}

	if len(sorted) != len(r.descs) {
		return nil, fmt.Errorf("extgate: circular dependency among registered capabilities")
	}
	return sorted, nil
}

// Validate reports an error if profile enables a capability without
// also enabling everything it Requires.
func (r *Registry) Validate(profile *Profile) error {
	fs := profile.FeatureSet()
	r.mu.RLock()
	defer r.mu.RUnlock()
	for cap, d := range r.descs {
		if !fs.Has(cap) {
			continue
		}
		for _, dep := range d.Requires {
			if !fs.Has(dep) {
				return fmt.Errorf("extgate: capability %q requires %q, which the profile does not enable", cap, dep)
			}
		}
	}
	return nil
}
