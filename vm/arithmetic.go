package vm

import (
	"math"
	"math/bits"

	"github.com/wippyai/machokit/errors"
)

// Address is an absolute location in the target address space.
type Address uint64

// Size is a length in bytes.
type Size uint64

// Offset is a displacement applied to an Address.
type Offset uint64

const (
	AddressMax = Address(math.MaxUint64)
	SizeMax    = Size(math.MaxUint64)
	OffsetMax  = Offset(math.MaxUint64)
)

// ApplyOffset returns addr+offset, or an Overflow error if the sum does not
// fit in an Address.
func ApplyOffset(addr Address, offset Offset) (Address, error) {
	sum, carry := bits.Add64(uint64(addr), uint64(offset), 0)
	if carry != 0 {
		return 0, errors.Overflow(errors.PhaseArithmetic, "address 0x%x + offset 0x%x", uint64(addr), uint64(offset))
	}
	return Address(sum), nil
}

// Add returns a+b, or an Overflow error if the sum does not fit in an Address.
func Add(a, b Address) (Address, error) {
	sum, carry := bits.Add64(uint64(a), uint64(b), 0)
	if carry != 0 {
		return 0, errors.Overflow(errors.PhaseArithmetic, "address 0x%x + address 0x%x", uint64(a), uint64(b))
	}
	return Address(sum), nil
}

// Subtract returns left-right, or an Underflow error if right > left.
func Subtract(left, right Address) (Address, error) {
	if right > left {
		return 0, errors.Underflow(errors.PhaseArithmetic, "address 0x%x - address 0x%x", uint64(left), uint64(right))
	}
	return left - right, nil
}

// CheckLength reports an Overflow error if addr+length exceeds SizeMax.
func CheckLength(addr Address, length Size) error {
	if uint64(SizeMax)-uint64(length) < uint64(addr) {
		return errors.Overflow(errors.PhaseArithmetic, "address 0x%x + length 0x%x", uint64(addr), uint64(length))
	}
	return nil
}
