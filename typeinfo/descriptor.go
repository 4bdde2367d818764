package typeinfo

import (
	"fmt"
	"sync"

	"go.uber.org/zap"
)

// ID is a stable type tag. Identity checks compare IDs, never descriptor
// addresses.
type ID uint32

// RootID tags Root. It is reserved.
const RootID ID = 0

// Context is the owning context of a handle, typically the per-binary parse
// state.
type Context interface {
	Logger() *zap.Logger
}

// Handle is any value tagged with a Descriptor. The runtime never looks at
// anything else in the value.
type Handle interface {
	Descriptor() *Descriptor
}

// ContextFunc looks up the owning context of h.
type ContextFunc func(h Handle) Context

// EqualFunc compares a with b. It is invoked with a's resolved override.
type EqualFunc func(a, b Handle) bool

// DescribeFunc renders h into buf, truncating if needed, and returns the
// length of the full rendering.
type DescribeFunc func(h Handle, buf []byte) int

// Descriptor describes one record kind.
type Descriptor struct {
	parent   *Descriptor
	context  ContextFunc
	equal    EqualFunc
	describe DescribeFunc
	name     string
	named    bool
	id       ID
}

// Option configures a Descriptor at construction.
type Option func(*Descriptor)

// WithName sets the type name. Without it the name is inherited.
func WithName(name string) Option {
	return func(d *Descriptor) {
		d.name = name
		d.named = true
	}
}

// WithContext overrides the owning-context lookup.
func WithContext(fn ContextFunc) Option {
	return func(d *Descriptor) { d.context = fn }
}

// WithEqual overrides equality.
func WithEqual(fn EqualFunc) Option {
	return func(d *Descriptor) { d.equal = fn }
}

// WithDescribe overrides description rendering.
func WithDescribe(fn DescribeFunc) Option {
	return func(d *Descriptor) { d.describe = fn }
}

// claimed holds every ID handed out by New. Tags are compared by value, so
// two descriptors sharing one would be indistinguishable.
var claimed = struct {
	sync.Mutex
	ids map[ID]struct{}
}{ids: map[ID]struct{}{RootID: {}}}

// New returns a descriptor tagged id whose parent is parent. A nil parent
// means Root. New panics if id is RootID or was already passed to New;
// descriptors are declared at package init, where both are programming
// errors.
func New(id ID, parent *Descriptor, opts ...Option) *Descriptor {
	if id == RootID {
		panic("typeinfo: RootID is reserved")
	}
	claimed.Lock()
	_, dup := claimed.ids[id]
	if !dup {
		claimed.ids[id] = struct{}{}
	}
	claimed.Unlock()
	if dup {
		panic(fmt.Sprintf("typeinfo: duplicate descriptor id %d", id))
	}
	if parent == nil {
		parent = Root
	}
	d := &Descriptor{id: id, parent: parent}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// ID returns the descriptor's tag.
func (d *Descriptor) ID() ID { return d.id }

// Parent returns the parent descriptor, or nil for Root.
func (d *Descriptor) Parent() *Descriptor { return d.parent }

// Name returns the resolved type name of the descriptor.
func (d *Descriptor) Name() string {
	return resolve(d, func(d *Descriptor) bool { return d.named }).name
}

// Depth returns the number of parent links between d and Root.
func (d *Descriptor) Depth() int {
	n := 0
	for p := d.parent; p != nil; p = p.parent {
		n++
	}
	return n
}

// Root is the ancestor of every descriptor. It provides identity-based
// defaults for every slot.
var Root = &Descriptor{
	id:      RootID,
	name:    "",
	named:   true,
	context: rootContext,
	equal:   rootEqual,
}

// rootDescribe resolves names through Root, so it is attached after
// package initialization.
func init() {
	Root.describe = rootDescribe
}

// resolve walks from d towards Root and returns the first descriptor for
// which has reports true. Root satisfies every slot, so the walk always
// ends; a nil or detached chain falls back to Root.
func resolve(d *Descriptor, has func(*Descriptor) bool) *Descriptor {
	for ; d != nil; d = d.parent {
		if has(d) {
			return d
		}
	}
	return Root
}

func descriptorOf(h Handle) *Descriptor {
	if h == nil {
		return Root
	}
	if d := h.Descriptor(); d != nil {
		return d
	}
	return Root
}
