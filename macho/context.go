package macho

import (
	"go.uber.org/zap"

	"github.com/wippyai/machokit/byteorder"
	"github.com/wippyai/machokit/memory"
	"github.com/wippyai/machokit/typeinfo"
	"github.com/wippyai/machokit/vm"
)

// Context is the parse state shared by every record of one binary.
type Context struct {
	mem            memory.Accessor
	order          byteorder.ByteOrder
	log            *zap.Logger
	header         vm.Address
	wide           bool
	strictSections bool
}

var _ typeinfo.Context = (*Context)(nil)

// Logger returns the logger records of this binary report through.
func (c *Context) Logger() *zap.Logger { return c.log }

// Memory returns the image accessor.
func (c *Context) Memory() memory.Accessor { return c.mem }

// ByteOrder returns the strategy that converts image fields to host order.
func (c *Context) ByteOrder() byteorder.ByteOrder { return c.order }

// Is64 reports whether the binary uses the 64-bit layouts.
func (c *Context) Is64() bool { return c.wide }

// HeaderAddress returns the address of the mach header. File offsets stored
// in load commands are relative to it.
func (c *Context) HeaderAddress() vm.Address { return c.header }

// fileRange converts a file offset and length into an image range.
func (c *Context) fileRange(offset, length uint64) (vm.Range, error) {
	at, err := vm.ApplyOffset(c.header, vm.Offset(offset))
	if err != nil {
		return vm.Range{}, err
	}
	r := vm.MakeRange(at, vm.Size(length))
	if err := r.Validate(); err != nil {
		return vm.Range{}, err
	}
	return r, nil
}

// Option configures parsing.
type Option func(*options)

type options struct {
	log            *zap.Logger
	base           vm.Address
	arch           CPU
	hasArch        bool
	strictSections bool
}

func newOptions(opts []Option) options {
	o := options{log: Logger()}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithLogger sets the logger for the parsed binary. The package logger is
// used otherwise.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.log = l
		}
	}
}

// WithBase sets the address the image is considered mapped at.
func WithBase(addr vm.Address) Option {
	return func(o *options) { o.base = addr }
}

// WithArch selects the slice of a universal binary. Without it Open takes
// the first slice.
func WithArch(cpu CPU) Option {
	return func(o *options) {
		o.arch = cpu
		o.hasArch = true
	}
}

// WithStrictSections rejects sections that are only partially inside their
// segment instead of logging a warning.
func WithStrictSections(strict bool) Option {
	return func(o *options) { o.strictSections = strict }
}
