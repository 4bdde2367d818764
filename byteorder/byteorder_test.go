package byteorder

import (
	"bytes"
	"encoding/binary"
	"testing"

	mkerrors "github.com/wippyai/machokit/errors"
)

func TestDirectIsIdentity(t *testing.T) {
	for _, v := range []uint64{0, 1, 0x0102030405060708, ^uint64(0)} {
		if got := Direct.Swap16(uint16(v)); got != uint16(v) {
			t.Errorf("Swap16(0x%x) = 0x%x", uint16(v), got)
		}
		if got := Direct.Swap32(uint32(v)); got != uint32(v) {
			t.Errorf("Swap32(0x%x) = 0x%x", uint32(v), got)
		}
		if got := Direct.Swap64(v); got != v {
			t.Errorf("Swap64(0x%x) = 0x%x", v, got)
		}
	}

	buf := []byte{1, 2, 3}
	if got := Direct.Swap(buf); !bytes.Equal(got, []byte{1, 2, 3}) {
		t.Errorf("Swap = %v", got)
	}
}

func TestSwapped(t *testing.T) {
	if got := Swapped.Swap16(0x0102); got != 0x0201 {
		t.Errorf("Swap16 = 0x%x", got)
	}
	if got := Swapped.Swap32(0x01020304); got != 0x04030201 {
		t.Errorf("Swap32 = 0x%x", got)
	}
	if got := Swapped.Swap64(0x0102030405060708); got != 0x0807060504030201 {
		t.Errorf("Swap64 = 0x%x", got)
	}
}

func TestSwappedRoundTrip(t *testing.T) {
	for _, v := range []uint64{0, 1, 0xdeadbeef, 0x0102030405060708, ^uint64(0) - 7} {
		if got := Swapped.Swap16(Swapped.Swap16(uint16(v))); got != uint16(v) {
			t.Errorf("16-bit round trip 0x%x -> 0x%x", uint16(v), got)
		}
		if got := Swapped.Swap32(Swapped.Swap32(uint32(v))); got != uint32(v) {
			t.Errorf("32-bit round trip 0x%x -> 0x%x", uint32(v), got)
		}
		if got := Swapped.Swap64(Swapped.Swap64(v)); got != v {
			t.Errorf("64-bit round trip 0x%x -> 0x%x", v, got)
		}
	}
}

func TestSwappedBufferInPlace(t *testing.T) {
	tests := []struct {
		in, want []byte
	}{
		{[]byte{}, []byte{}},
		{[]byte{1}, []byte{1}},
		{[]byte{1, 2}, []byte{2, 1}},
		{[]byte{1, 2, 3}, []byte{3, 2, 1}},
		{[]byte{1, 2, 3, 4, 5, 6}, []byte{6, 5, 4, 3, 2, 1}},
	}

	for _, tt := range tests {
		buf := append([]byte(nil), tt.in...)
		got := Swapped.Swap(buf)
		if !bytes.Equal(got, tt.want) {
			t.Errorf("Swap(%v) = %v, want %v", tt.in, got, tt.want)
		}
		if !bytes.Equal(buf, tt.want) {
			t.Errorf("Swap(%v) did not reverse in place: %v", tt.in, buf)
		}
	}
}

func TestSwapMatchesEncoding(t *testing.T) {
	// Decoding with the opposite order equals decoding with the host order and
	// swapping.
	raw := []byte{0x11, 0x22, 0x33, 0x44, 0x55, 0x66, 0x77, 0x88}
	host := Host()
	var other binary.ByteOrder = binary.BigEndian
	if host == binary.BigEndian {
		other = binary.LittleEndian
	}

	if got, want := Swapped.Swap32(host.Uint32(raw)), other.Uint32(raw); got != want {
		t.Errorf("Swap32 = 0x%x, want 0x%x", got, want)
	}
	if got, want := Swapped.Swap64(host.Uint64(raw)), other.Uint64(raw); got != want {
		t.Errorf("Swap64 = 0x%x, want 0x%x", got, want)
	}
	if Select(host) != Direct || Select(other) != Swapped {
		t.Error("Select picked the wrong strategy")
	}
	if Declared(Direct) != host || Declared(Swapped) != other {
		t.Error("Declared mismatch")
	}
}

func TestForMagic(t *testing.T) {
	tests := []struct {
		magic uint32
		want  ByteOrder
	}{
		{MagicThin32, Direct},
		{MagicThin64, Direct},
		{MagicFat32, Direct},
		{MagicFat64, Direct},
		{0xcefaedfe, Swapped},
		{0xcffaedfe, Swapped},
		{0xbebafeca, Swapped},
	}

	for _, tt := range tests {
		got, err := ForMagic(tt.magic)
		if err != nil {
			t.Fatalf("ForMagic(0x%08x): %v", tt.magic, err)
		}
		if got != tt.want {
			t.Errorf("ForMagic(0x%08x) = %s, want %s", tt.magic, Name(got), Name(tt.want))
		}
	}

	if _, err := ForMagic(0x7f454c46); mkerrors.KindOf(err) != mkerrors.KindInvalidData {
		t.Errorf("ForMagic(ELF) err = %v, want invalid data", err)
	}
}

func TestName(t *testing.T) {
	if Name(Direct) != "direct" || Name(Swapped) != "swapped" || Name(nil) != "custom" {
		t.Errorf("Name mismatch: %s %s %s", Name(Direct), Name(Swapped), Name(nil))
	}
}
