package macho

import (
	"github.com/wippyai/machokit/byteorder"
	"github.com/wippyai/machokit/errors"
	"github.com/wippyai/machokit/macho/internal/cursor"
	"github.com/wippyai/machokit/memory"
	"github.com/wippyai/machokit/vm"
)

// FatArch is one slice of a universal binary.
type FatArch struct {
	CPU    CPU
	SubCPU uint32
	Offset uint64
	Size   uint64
	Align  uint32
}

// IsFat reports whether the image at addr starts with a universal binary
// magic.
func IsFat(mem memory.Accessor, addr vm.Address) bool {
	raw, err := mem.Uint32(0, addr, byteorder.Direct)
	if err != nil {
		return false
	}
	order, err := byteorder.ForMagic(raw)
	if err != nil {
		return false
	}
	magic := order.Swap32(raw)
	return magic == byteorder.MagicFat32 || magic == byteorder.MagicFat64
}

// ParseFat reads the architecture table of the universal binary at addr.
// Each slice must lie inside the image.
func ParseFat(mem memory.Accessor, addr vm.Address) ([]FatArch, error) {
	raw, err := mem.Uint32(0, addr, byteorder.Direct)
	if err != nil {
		return nil, errors.Wrap(errors.PhaseHeader, errors.KindSuccess, err, "read fat magic")
	}
	order, err := byteorder.ForMagic(raw)
	if err != nil {
		return nil, errors.Wrap(errors.PhaseHeader, errors.KindInvalidData, err, "not a Mach-O image")
	}
	magic := order.Swap32(raw)
	if magic != byteorder.MagicFat32 && magic != byteorder.MagicFat64 {
		return nil, errors.New(errors.PhaseHeader, errors.KindInvalidData).
			Value(magic).
			Detail("magic %#x is not a universal binary", magic).
			Build()
	}
	wide := magic == byteorder.MagicFat64

	r := cursor.New(mem, addr, fatHeaderSize, order)
	r.Skip(4)
	n := r.Uint32()
	if err := r.Err(); err != nil {
		return nil, errors.Wrap(errors.PhaseHeader, errors.KindSuccess, err, "read fat header")
	}
	if n == 0 || n > maxFatArchs {
		return nil, errors.New(errors.PhaseHeader, errors.KindInvalidData).
			Value(n).
			Detail("universal binary with %d architectures", n).
			Build()
	}

	entry := vm.Size(fatArchSize32)
	if wide {
		entry = fatArchSize64
	}
	tableAt, err := vm.ApplyOffset(addr, fatHeaderSize)
	if err != nil {
		return nil, errors.Wrap(errors.PhaseHeader, errors.KindSuccess, err, "fat arch table")
	}
	r = cursor.New(mem, tableAt, entry*vm.Size(n), order)

	archs := make([]FatArch, 0, n)
	for i := 0; i < int(n); i++ {
		a := FatArch{
			CPU:    CPU(r.Uint32()),
			SubCPU: r.Uint32(),
			Offset: r.Word(wide),
			Size:   r.Word(wide),
			Align:  r.Uint32(),
		}
		if wide {
			r.Skip(4)
		}
		if err := r.Err(); err != nil {
			return nil, errors.WithPath(
				errors.Wrap(errors.PhaseHeader, errors.KindSuccess, err, "read fat arch"),
				indexPath("fat_arch", i))
		}

		at, err := vm.ApplyOffset(addr, vm.Offset(a.Offset))
		if err != nil {
			return nil, errors.WithPath(errors.Wrap(errors.PhaseHeader, errors.KindSuccess, err, "slice offset"), indexPath("fat_arch", i))
		}
		slice := vm.MakeRange(at, vm.Size(a.Size))
		if err := mem.Range().ContainsRange(slice, false); err != nil {
			return nil, errors.New(errors.PhaseHeader, errors.KindInvalidData).
				Path(indexPath("fat_arch", i)).
				Value(slice).
				Cause(err).
				Detail("%s slice %s outside the image", a.CPU, slice).
				Build()
		}
		archs = append(archs, a)
	}
	return archs, nil
}
