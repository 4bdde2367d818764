package vm

import (
	"fmt"

	"github.com/wippyai/machokit/errors"
)

// Range is a half open span [Location, Location+Length).
type Range struct {
	Location Address
	Length   Size
}

// MakeRange returns the range at location with the given length. It does not
// validate; see Validate.
func MakeRange(location Address, length Size) Range {
	return Range{Location: location, Length: length}
}

// Validate reports an Overflow error if Location+Length is not representable.
func (r Range) Validate() error {
	if err := CheckLength(r.Location, r.Length); err != nil {
		return rangeOverflow(r)
	}
	return nil
}

// End returns the first address past the range.
func (r Range) End() (Address, error) {
	if err := r.Validate(); err != nil {
		return 0, err
	}
	return r.Location + Address(r.Length), nil
}

// IsEmpty reports whether the range covers no addresses.
func (r Range) IsEmpty() bool {
	return r.Length == 0
}

// ContainsAddress applies offset to address and reports whether the result
// lies in the range. Overflow of either the address or the range is
// reported before any comparison is made; a miss is NotFound.
func (r Range) ContainsAddress(offset Offset, address Address) error {
	addr, err := ApplyOffset(address, offset)
	if err != nil {
		return err
	}

	end, err := r.End()
	if err != nil {
		return err
	}

	if addr < r.Location || addr >= end {
		return errors.New(errors.PhaseRange, errors.KindNotFound).
			Value(uint64(addr)).
			Detail("address 0x%x outside %s", uint64(addr), r).
			Build()
	}
	return nil
}

// ContainsRange reports whether inner lies within r.
//
// In strict mode inner must be fully enclosed. In partial mode inner is
// rejected only when it ends before r starts or starts after r ends; every
// other configuration, including one that runs past r's end, is accepted.
func (r Range) ContainsRange(inner Range, partial bool) error {
	outerEnd, err := r.End()
	if err != nil {
		return err
	}
	innerEnd, err := inner.End()
	if err != nil {
		return err
	}

	if partial {
		if inner.Location < r.Location && innerEnd < r.Location {
			return rangeMiss(r, inner, "ends before")
		}
		if inner.Location > outerEnd {
			return rangeMiss(r, inner, "starts after")
		}
		return nil
	}

	if inner.Location < r.Location {
		return rangeMiss(r, inner, "starts before")
	}
	if innerEnd > outerEnd {
		return rangeMiss(r, inner, "extends past")
	}
	return nil
}

// String renders the range as a half open interval.
func (r Range) String() string {
	end, err := r.End()
	if err != nil {
		return fmt.Sprintf("[0x%x, +0x%x overflow)", uint64(r.Location), uint64(r.Length))
	}
	return fmt.Sprintf("[0x%x, 0x%x)", uint64(r.Location), uint64(end))
}

func rangeOverflow(r Range) error {
	return errors.New(errors.PhaseRange, errors.KindOverflow).
		Value(r).
		Detail("range at 0x%x with length 0x%x wraps the address space", uint64(r.Location), uint64(r.Length)).
		Build()
}

func rangeMiss(outer, inner Range, how string) error {
	return errors.New(errors.PhaseRange, errors.KindNotFound).
		Value(inner).
		Detail("%s %s %s", inner, how, outer).
		Build()
}
