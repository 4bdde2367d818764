package typeinfo

import (
	"fmt"
	"sort"
)

// maxDepth bounds chain walks while validating a registry.
const maxDepth = 64

// Registry is a closed set of descriptors. It is built once and never
// mutated.
type Registry struct {
	byID map[ID]*Descriptor
}

// NewRegistry validates descs and returns a registry holding them and Root.
// Every descriptor must have a unique ID and a parent chain that reaches
// Root through descriptors that are themselves registered.
func NewRegistry(descs ...*Descriptor) (*Registry, error) {
	r := &Registry{byID: map[ID]*Descriptor{RootID: Root}}

	for _, d := range descs {
		if d == nil {
			return nil, fmt.Errorf("typeinfo: nil descriptor")
		}
		if prev, ok := r.byID[d.id]; ok {
			if prev == d {
				continue
			}
			return nil, fmt.Errorf("typeinfo: duplicate id %d (%q and %q)", d.id, prev.Name(), d.Name())
		}
		r.byID[d.id] = d
	}

	for _, d := range r.byID {
		if err := r.checkChain(d); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// MustRegistry is NewRegistry for package-level declarations.
func MustRegistry(descs ...*Descriptor) *Registry {
	r, err := NewRegistry(descs...)
	if err != nil {
		panic(err)
	}
	return r
}

func (r *Registry) checkChain(d *Descriptor) error {
	depth := 0
	for t := d; t != Root; t = t.parent {
		if t == nil {
			return fmt.Errorf("typeinfo: descriptor %d does not reach root", d.id)
		}
		if reg, ok := r.byID[t.id]; !ok || reg != t {
			return fmt.Errorf("typeinfo: descriptor %d has unregistered ancestor %d", d.id, t.id)
		}
		if depth++; depth > maxDepth {
			return fmt.Errorf("typeinfo: descriptor %d chain deeper than %d", d.id, maxDepth)
		}
	}
	return nil
}

// Lookup returns the descriptor tagged id.
func (r *Registry) Lookup(id ID) (*Descriptor, bool) {
	d, ok := r.byID[id]
	return d, ok
}

// Len returns the number of descriptors, including Root.
func (r *Registry) Len() int {
	return len(r.byID)
}

// Descriptors returns every registered descriptor ordered by ID.
func (r *Registry) Descriptors() []*Descriptor {
	out := make([]*Descriptor, 0, len(r.byID))
	for _, d := range r.byID {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].id < out[j].id })
	return out
}

// Children returns the registered descriptors whose parent is d, ordered
// by ID.
func (r *Registry) Children(d *Descriptor) []*Descriptor {
	var out []*Descriptor
	for _, c := range r.Descriptors() {
		if c.parent != nil && c.parent.id == d.id {
			out = append(out, c)
		}
	}
	return out
}
