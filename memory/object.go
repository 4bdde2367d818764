package memory

import (
	"runtime"
	"runtime/debug"

	"github.com/wippyai/machokit/byteorder"
	"github.com/wippyai/machokit/errors"
	"github.com/wippyai/machokit/vm"
)

// Accessor is the read side of an image as seen by record parsers.
type Accessor interface {
	Range() vm.Range
	Verify(offset vm.Offset, addr vm.Address, length vm.Size) (vm.Address, error)
	Bytes(offset vm.Offset, addr vm.Address, length vm.Size) ([]byte, error)
	Copy(dst []byte, offset vm.Offset, addr vm.Address) error
	Uint8(offset vm.Offset, addr vm.Address) (uint8, error)
	Uint16(offset vm.Offset, addr vm.Address, order byteorder.ByteOrder) (uint16, error)
	Uint32(offset vm.Offset, addr vm.Address, order byteorder.ByteOrder) (uint32, error)
	Uint64(offset vm.Offset, addr vm.Address, order byteorder.ByteOrder) (uint64, error)
}

// Object is an image mapped at a base address.
type Object struct {
	data   []byte
	extent vm.Range
}

var _ Accessor = (*Object)(nil)

// NewObject wraps data as if it were mapped at base. The caller keeps
// ownership of data and must not modify it while the Object is in use.
func NewObject(data []byte, base vm.Address) (*Object, error) {
	if err := vm.CheckLength(base, vm.Size(len(data))); err != nil {
		return nil, errors.Wrap(errors.PhaseMemory, errors.KindSuccess, err, "image extent")
	}
	return &Object{
		data:   data,
		extent: vm.MakeRange(base, vm.Size(len(data))),
	}, nil
}

// Range returns the extent of the image.
func (o *Object) Range() vm.Range { return o.extent }

// Base returns the address of the first byte of the image.
func (o *Object) Base() vm.Address { return o.extent.Location }

// Len returns the image size.
func (o *Object) Len() vm.Size { return o.extent.Length }

// Sub returns the part of the image covered by r as an Object of its own.
// r must lie inside the image. Reads through the result are bounded by r.
func (o *Object) Sub(r vm.Range) (*Object, error) {
	if err := o.extent.ContainsRange(r, false); err != nil {
		return nil, err
	}
	start := uint64(r.Location - o.extent.Location)
	end := start + uint64(r.Length)
	return &Object{data: o.data[start:end:end], extent: r}, nil
}

// Verify applies offset to addr and checks that length bytes starting there
// lie inside the image. It returns the resulting address.
func (o *Object) Verify(offset vm.Offset, addr vm.Address, length vm.Size) (vm.Address, error) {
	at, err := vm.ApplyOffset(addr, offset)
	if err != nil {
		return 0, err
	}
	if err := o.extent.ContainsRange(vm.MakeRange(at, length), false); err != nil {
		return 0, err
	}
	return at, nil
}

// Bytes returns a view of length bytes at addr+offset. The view aliases the
// image and is not fault protected.
func (o *Object) Bytes(offset vm.Offset, addr vm.Address, length vm.Size) ([]byte, error) {
	at, err := o.Verify(offset, addr, length)
	if err != nil {
		return nil, err
	}
	start := uint64(at - o.extent.Location)
	end := start + uint64(length)
	return o.data[start:end:end], nil
}

// Copy fills dst from addr+offset.
func (o *Object) Copy(dst []byte, offset vm.Offset, addr vm.Address) error {
	src, err := o.Bytes(offset, addr, vm.Size(len(dst)))
	if err != nil {
		return err
	}
	return guard(addr, func() { copy(dst, src) })
}

// Uint8 reads a byte at addr+offset.
func (o *Object) Uint8(offset vm.Offset, addr vm.Address) (uint8, error) {
	b, err := o.Bytes(offset, addr, 1)
	if err != nil {
		return 0, err
	}
	var v uint8
	err = guard(addr, func() { v = b[0] })
	return v, err
}

// Uint16 reads a 16-bit field at addr+offset in the binary's order.
func (o *Object) Uint16(offset vm.Offset, addr vm.Address, order byteorder.ByteOrder) (uint16, error) {
	b, err := o.Bytes(offset, addr, 2)
	if err != nil {
		return 0, err
	}
	var v uint16
	if err := guard(addr, func() { v = byteorder.Host().Uint16(b) }); err != nil {
		return 0, err
	}
	return order.Swap16(v), nil
}

// Uint32 reads a 32-bit field at addr+offset in the binary's order.
func (o *Object) Uint32(offset vm.Offset, addr vm.Address, order byteorder.ByteOrder) (uint32, error) {
	b, err := o.Bytes(offset, addr, 4)
	if err != nil {
		return 0, err
	}
	var v uint32
	if err := guard(addr, func() { v = byteorder.Host().Uint32(b) }); err != nil {
		return 0, err
	}
	return order.Swap32(v), nil
}

// Uint64 reads a 64-bit field at addr+offset in the binary's order.
func (o *Object) Uint64(offset vm.Offset, addr vm.Address, order byteorder.ByteOrder) (uint64, error) {
	b, err := o.Bytes(offset, addr, 8)
	if err != nil {
		return 0, err
	}
	var v uint64
	if err := guard(addr, func() { v = byteorder.Host().Uint64(b) }); err != nil {
		return 0, err
	}
	return order.Swap64(v), nil
}

// faultError is implemented by the runtime error raised for a memory fault
// while SetPanicOnFault is enabled.
type faultError interface {
	runtime.Error
	Addr() uintptr
}

// guard runs fn with faults turned into panics and converts a fault into a
// BadAccess error. Any other panic is re-raised.
func guard(addr vm.Address, fn func()) (err error) {
	old := debug.SetPanicOnFault(true)
	defer func() {
		debug.SetPanicOnFault(old)
		if r := recover(); r != nil {
			fe, ok := r.(faultError)
			if !ok {
				panic(r)
			}
			err = errors.BadAccess(errors.PhaseMemory, uint64(addr), fe)
		}
	}()
	fn()
	return nil
}
