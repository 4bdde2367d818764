package byteorder

import (
	"encoding/binary"
	"math/bits"

	"golang.org/x/sys/cpu"

	"github.com/wippyai/machokit/errors"
)

// ByteOrder converts values between the host order and a binary's order.
type ByteOrder interface {
	Swap16(v uint16) uint16
	Swap32(v uint32) uint32
	Swap64(v uint64) uint64
	// Swap reverses b in place and returns it.
	Swap(b []byte) []byte
}

var (
	// Direct is used when the binary matches the host order.
	Direct ByteOrder = direct{}
	// Swapped is used when the binary is in the opposite order to the host.
	Swapped ByteOrder = swapped{}
)

type direct struct{}

func (direct) Swap16(v uint16) uint16 { return v }
func (direct) Swap32(v uint32) uint32 { return v }
func (direct) Swap64(v uint64) uint64 { return v }
func (direct) Swap(b []byte) []byte   { return b }
func (direct) String() string         { return "direct" }

type swapped struct{}

func (swapped) Swap16(v uint16) uint16 { return bits.ReverseBytes16(v) }
func (swapped) Swap32(v uint32) uint32 { return bits.ReverseBytes32(v) }
func (swapped) Swap64(v uint64) uint64 { return bits.ReverseBytes64(v) }
func (swapped) String() string         { return "swapped" }

func (swapped) Swap(b []byte) []byte {
	for i, j := 0, len(b)-1; i < j; i, j = i+1, j-1 {
		b[i], b[j] = b[j], b[i]
	}
	return b
}

// Host returns the byte order of the running process.
func Host() binary.ByteOrder {
	if cpu.IsBigEndian {
		return binary.BigEndian
	}
	return binary.LittleEndian
}

// Select returns Direct when declared matches the host order and Swapped
// otherwise.
func Select(declared binary.ByteOrder) ByteOrder {
	if declared == Host() {
		return Direct
	}
	return Swapped
}

// Mach-O magic numbers, as they appear when read in the binary's own order.
const (
	MagicThin32 uint32 = 0xfeedface
	MagicThin64 uint32 = 0xfeedfacf
	MagicFat32  uint32 = 0xcafebabe
	MagicFat64  uint32 = 0xcafebabf
)

var magics = [...]uint32{MagicThin32, MagicThin64, MagicFat32, MagicFat64}

// ForMagic selects the strategy for a magic value that was read in host
// order. A magic that matches directly yields Direct, a byte-reversed match
// yields Swapped, and anything else is InvalidData.
func ForMagic(hostMagic uint32) (ByteOrder, error) {
	for _, m := range magics {
		switch hostMagic {
		case m:
			return Direct, nil
		case bits.ReverseBytes32(m):
			return Swapped, nil
		}
	}
	return nil, errors.New(errors.PhaseByteOrder, errors.KindInvalidData).
		Value(hostMagic).
		Detail("unknown magic 0x%08x", hostMagic).
		Build()
}

// Name returns "direct" or "swapped" for the package strategies and "custom"
// for anything else.
func Name(order ByteOrder) string {
	switch order {
	case Direct:
		return "direct"
	case Swapped:
		return "swapped"
	default:
		return "custom"
	}
}

// Declared returns the binary's own byte order implied by order on this
// host.
func Declared(order ByteOrder) binary.ByteOrder {
	if order == Direct {
		return Host()
	}
	if Host() == binary.LittleEndian {
		return binary.BigEndian
	}
	return binary.LittleEndian
}
