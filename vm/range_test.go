package vm

import (
	"testing"

	mkerrors "github.com/wippyai/machokit/errors"
)

func TestRange_ContainsAddress(t *testing.T) {
	r := MakeRange(10, 5)

	tests := []struct {
		name   string
		offset Offset
		addr   Address
		want   mkerrors.Kind
	}{
		{"first", 0, 10, mkerrors.KindSuccess},
		{"last", 0, 14, mkerrors.KindSuccess},
		{"one past end", 0, 15, mkerrors.KindNotFound},
		{"one before start", 0, 9, mkerrors.KindNotFound},
		{"offset into range", 4, 8, mkerrors.KindSuccess},
		{"offset past range", 6, 10, mkerrors.KindNotFound},
		{"offset overflows", 1, AddressMax, mkerrors.KindOverflow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := r.ContainsAddress(tt.offset, tt.addr)
			if got := mkerrors.KindOf(err); got != tt.want {
				t.Errorf("ContainsAddress(%d, %d) = %v, want %v", tt.offset, tt.addr, got, tt.want)
			}
		})
	}
}

func TestRange_ContainsAddressEmpty(t *testing.T) {
	r := MakeRange(10, 0)
	if err := r.ContainsAddress(0, 10); mkerrors.KindOf(err) != mkerrors.KindNotFound {
		t.Errorf("empty range contains its location: %v", err)
	}
}

func TestRange_ContainsAddressOverflowFirst(t *testing.T) {
	// The address lies inside the nominal span, but the range itself wraps.
	r := MakeRange(AddressMax-1, 10)
	err := r.ContainsAddress(0, AddressMax-1)
	if mkerrors.KindOf(err) != mkerrors.KindOverflow {
		t.Errorf("ContainsAddress on overflowing range = %v, want overflow", err)
	}
}

func TestRange_ContainsRangeStrict(t *testing.T) {
	outer := MakeRange(0, 10)

	tests := []struct {
		name  string
		inner Range
		want  mkerrors.Kind
	}{
		{"exact fit", MakeRange(0, 10), mkerrors.KindSuccess},
		{"longer", MakeRange(0, 11), mkerrors.KindNotFound},
		{"inside", MakeRange(2, 3), mkerrors.KindSuccess},
		{"empty at end", MakeRange(10, 0), mkerrors.KindSuccess},
		{"tail overrun", MakeRange(5, 6), mkerrors.KindNotFound},
		{"empty at start", MakeRange(0, 0), mkerrors.KindSuccess},
		{"disjoint after", MakeRange(20, 5), mkerrors.KindNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := outer.ContainsRange(tt.inner, false)
			if got := mkerrors.KindOf(err); got != tt.want {
				t.Errorf("ContainsRange(%s, %s, false) = %v, want %v", outer, tt.inner, got, tt.want)
			}
		})
	}

	shifted := MakeRange(5, 10)
	if err := shifted.ContainsRange(MakeRange(4, 2), false); mkerrors.KindOf(err) != mkerrors.KindNotFound {
		t.Errorf("inner starting before outer accepted: %v", err)
	}
}

func TestRange_ContainsRangePartial(t *testing.T) {
	outer := MakeRange(10, 10) // [10, 20)

	tests := []struct {
		name  string
		inner Range
		want  mkerrors.Kind
	}{
		{"inside", MakeRange(12, 2), mkerrors.KindSuccess},
		{"runs past end", MakeRange(15, 100), mkerrors.KindSuccess},
		{"straddles", MakeRange(5, 30), mkerrors.KindSuccess},
		{"ends inside", MakeRange(5, 7), mkerrors.KindSuccess},
		{"adjacent before", MakeRange(5, 5), mkerrors.KindSuccess},
		{"strictly before", MakeRange(2, 5), mkerrors.KindNotFound},
		{"starts at end", MakeRange(20, 5), mkerrors.KindSuccess},
		{"strictly after", MakeRange(21, 5), mkerrors.KindNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := outer.ContainsRange(tt.inner, true)
			if got := mkerrors.KindOf(err); got != tt.want {
				t.Errorf("ContainsRange(%s, %s, true) = %v, want %v", outer, tt.inner, got, tt.want)
			}
		})
	}

	if err := MakeRange(0, 10).ContainsRange(MakeRange(5, 100), true); err != nil {
		t.Errorf("partial overrun rejected: %v", err)
	}
	if err := MakeRange(0, 10).ContainsRange(MakeRange(20, 5), true); mkerrors.KindOf(err) != mkerrors.KindNotFound {
		t.Errorf("disjoint range accepted: %v", err)
	}
}

func TestRange_ContainsRangeOverflow(t *testing.T) {
	bad := MakeRange(AddressMax, 2)
	good := MakeRange(0, 10)

	for _, partial := range []bool{false, true} {
		if err := bad.ContainsRange(good, partial); mkerrors.KindOf(err) != mkerrors.KindOverflow {
			t.Errorf("outer overflow (partial=%v) = %v", partial, err)
		}
		if err := good.ContainsRange(bad, partial); mkerrors.KindOf(err) != mkerrors.KindOverflow {
			t.Errorf("inner overflow (partial=%v) = %v", partial, err)
		}
	}
}

func TestRange_EndAndString(t *testing.T) {
	r := MakeRange(0x10, 0x5)
	end, err := r.End()
	if err != nil || end != 0x15 {
		t.Errorf("End = 0x%x, %v", end, err)
	}
	if got := r.String(); got != "[0x10, 0x15)" {
		t.Errorf("String = %q", got)
	}
	if r.IsEmpty() || !MakeRange(3, 0).IsEmpty() {
		t.Error("IsEmpty mismatch")
	}

	if _, err := MakeRange(AddressMax, 1).End(); mkerrors.KindOf(err) != mkerrors.KindOverflow {
		t.Errorf("End on wrapping range = %v", err)
	}
}
