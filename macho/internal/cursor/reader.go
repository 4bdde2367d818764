// Package cursor provides a positional field reader over an image for the
// Mach-O record parsers.
package cursor

import (
	"bytes"

	"github.com/wippyai/machokit/byteorder"
	"github.com/wippyai/machokit/errors"
	"github.com/wippyai/machokit/memory"
	"github.com/wippyai/machokit/vm"
)

// Reader reads consecutive fields of one record. Reads are bounded both by
// the record length and by the image; the first failure sticks and every
// later read returns zero.
type Reader struct {
	mem   memory.Accessor
	order byteorder.ByteOrder
	err   error
	start vm.Address
	limit vm.Size
	pos   vm.Size
}

// New creates a Reader over the limit bytes starting at start.
func New(mem memory.Accessor, start vm.Address, limit vm.Size, order byteorder.ByteOrder) *Reader {
	return &Reader{mem: mem, order: order, start: start, limit: limit}
}

// Position returns the offset of the next read from the record start.
func (r *Reader) Position() vm.Size {
	return r.pos
}

// Start returns the record address.
func (r *Reader) Start() vm.Address {
	return r.start
}

// Remaining returns the unread record length.
func (r *Reader) Remaining() vm.Size {
	return r.limit - r.pos
}

// Err returns the first error encountered.
func (r *Reader) Err() error {
	return r.err
}

// Seek moves to pos within the record.
func (r *Reader) Seek(pos vm.Size) {
	if r.err != nil {
		return
	}
	if pos > r.limit {
		r.err = errors.OutOfRange(errors.PhaseMemory, "seek to %d past record end %d", pos, r.limit)
		return
	}
	r.pos = pos
}

// Skip advances n bytes.
func (r *Reader) Skip(n vm.Size) {
	if r.claim(n) {
		r.pos += n
	}
}

// claim checks that n more bytes fit in the record.
func (r *Reader) claim(n vm.Size) bool {
	if r.err != nil {
		return false
	}
	if n > r.limit-r.pos {
		r.err = errors.New(errors.PhaseMemory, errors.KindOutOfRange).
			Value(uint64(r.start)).
			Detail("read of %d bytes at +%d exceeds record length %d", n, r.pos, r.limit).
			Build()
		return false
	}
	return true
}

func (r *Reader) fail(err error) {
	if r.err == nil {
		r.err = err
	}
}

// Uint8 reads one byte.
func (r *Reader) Uint8() uint8 {
	if !r.claim(1) {
		return 0
	}
	v, err := r.mem.Uint8(vm.Offset(r.pos), r.start)
	if err != nil {
		r.fail(err)
		return 0
	}
	r.pos++
	return v
}

// Uint16 reads a 16-bit field.
func (r *Reader) Uint16() uint16 {
	if !r.claim(2) {
		return 0
	}
	v, err := r.mem.Uint16(vm.Offset(r.pos), r.start, r.order)
	if err != nil {
		r.fail(err)
		return 0
	}
	r.pos += 2
	return v
}

// Uint32 reads a 32-bit field.
func (r *Reader) Uint32() uint32 {
	if !r.claim(4) {
		return 0
	}
	v, err := r.mem.Uint32(vm.Offset(r.pos), r.start, r.order)
	if err != nil {
		r.fail(err)
		return 0
	}
	r.pos += 4
	return v
}

// Uint64 reads a 64-bit field.
func (r *Reader) Uint64() uint64 {
	if !r.claim(8) {
		return 0
	}
	v, err := r.mem.Uint64(vm.Offset(r.pos), r.start, r.order)
	if err != nil {
		r.fail(err)
		return 0
	}
	r.pos += 8
	return v
}

// Word reads a pointer-sized field: 64 bits when wide, 32 bits otherwise.
func (r *Reader) Word(wide bool) uint64 {
	if wide {
		return r.Uint64()
	}
	return uint64(r.Uint32())
}

// Bytes copies the next n bytes.
func (r *Reader) Bytes(n vm.Size) []byte {
	if !r.claim(n) {
		return nil
	}
	buf := make([]byte, n)
	if err := r.mem.Copy(buf, vm.Offset(r.pos), r.start); err != nil {
		r.fail(err)
		return nil
	}
	r.pos += n
	return buf
}

// Name reads a fixed-width, NUL padded name field.
func (r *Reader) Name(n vm.Size) string {
	b := r.Bytes(n)
	if i := bytes.IndexByte(b, 0); i >= 0 {
		b = b[:i]
	}
	return string(b)
}
