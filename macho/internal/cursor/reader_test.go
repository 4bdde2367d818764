package cursor

import (
	"encoding/binary"
	"testing"

	"github.com/wippyai/machokit/byteorder"
	"github.com/wippyai/machokit/errors"
	"github.com/wippyai/machokit/memory"
	"github.com/wippyai/machokit/vm"
)

func newObject(t *testing.T, data []byte, base vm.Address) *memory.Object {
	t.Helper()
	obj, err := memory.NewObject(data, base)
	if err != nil {
		t.Fatalf("NewObject: %v", err)
	}
	return obj
}

func TestReader_Fields(t *testing.T) {
	host := byteorder.Host()
	data := make([]byte, 32)
	data[0] = 0xab
	host.PutUint16(data[1:], 0x1234)
	host.PutUint32(data[3:], 0xdeadbeef)
	host.PutUint64(data[7:], 0x0102030405060708)
	copy(data[15:], "__TEXT\x00\x00")

	r := New(newObject(t, data, 0x1000), 0x1000, 32, byteorder.Direct)
	if v := r.Uint8(); v != 0xab {
		t.Errorf("Uint8 = %#x", v)
	}
	if v := r.Uint16(); v != 0x1234 {
		t.Errorf("Uint16 = %#x", v)
	}
	if v := r.Uint32(); v != 0xdeadbeef {
		t.Errorf("Uint32 = %#x", v)
	}
	if v := r.Uint64(); v != 0x0102030405060708 {
		t.Errorf("Uint64 = %#x", v)
	}
	if v := r.Name(8); v != "__TEXT" {
		t.Errorf("Name = %q", v)
	}
	if r.Position() != 23 || r.Remaining() != 9 {
		t.Errorf("Position = %d, Remaining = %d", r.Position(), r.Remaining())
	}
	if r.Err() != nil {
		t.Errorf("Err = %v", r.Err())
	}
}

func TestReader_Swapped(t *testing.T) {
	data := make([]byte, 12)
	binary.BigEndian.PutUint32(data, 0x11223344)
	binary.LittleEndian.PutUint64(data[4:], 0x8877665544332211)

	order := byteorder.Select(binary.BigEndian)
	r := New(newObject(t, data, 0), 0, 4, order)
	if v := r.Uint32(); v != 0x11223344 {
		t.Errorf("big-endian Uint32 = %#x", v)
	}

	r = New(newObject(t, data, 0), 4, 8, byteorder.Select(binary.LittleEndian))
	if v := r.Word(true); v != 0x8877665544332211 {
		t.Errorf("little-endian Word = %#x", v)
	}
}

func TestReader_RecordBound(t *testing.T) {
	data := make([]byte, 16)
	r := New(newObject(t, data, 0), 0, 6, byteorder.Direct)

	r.Uint32()
	if v := r.Uint32(); v != 0 {
		t.Errorf("read past record = %#x, want 0", v)
	}
	if errors.KindOf(r.Err()) != errors.KindOutOfRange {
		t.Fatalf("Err = %v, want OUT OF RANGE", r.Err())
	}

	first := r.Err()
	r.Uint8()
	if r.Err() != first {
		t.Error("error should stick")
	}
	if r.Position() != 4 {
		t.Errorf("Position = %d, want 4", r.Position())
	}
}

func TestReader_ImageBound(t *testing.T) {
	data := make([]byte, 8)
	r := New(newObject(t, data, 0x100), 0x104, 16, byteorder.Direct)

	r.Uint64()
	if errors.KindOf(r.Err()) != errors.KindNotFound {
		t.Errorf("Err = %v, want NOT FOUND", r.Err())
	}
}

func TestReader_SeekSkip(t *testing.T) {
	data := []byte{0, 1, 2, 3, 4, 5, 6, 7}
	r := New(newObject(t, data, 0), 0, 8, byteorder.Direct)

	r.Skip(3)
	if v := r.Uint8(); v != 3 {
		t.Errorf("after Skip = %d", v)
	}
	r.Seek(6)
	if v := r.Uint8(); v != 6 {
		t.Errorf("after Seek = %d", v)
	}
	r.Seek(9)
	if errors.KindOf(r.Err()) != errors.KindOutOfRange {
		t.Errorf("Seek past end: %v", r.Err())
	}
}
