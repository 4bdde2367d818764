package macho

import (
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/wippyai/machokit/errors"
	"github.com/wippyai/machokit/memory"
	"github.com/wippyai/machokit/vm"
)

// Image is a fully walked binary: the header and its load commands.
type Image struct {
	// Object is the parsed extent. For a universal binary it covers only the
	// selected slice, so every record is checked against the slice bounds.
	Object   *memory.Object
	Header   *Header
	Commands []Command

	// Arch is the selected slice when the data is a universal binary.
	Arch *FatArch
}

// Open parses data as a Mach-O image mapped at the WithBase address. For a
// universal binary the slice chosen with WithArch, or the first one, is
// parsed.
func Open(data []byte, opts ...Option) (*Image, error) {
	o := newOptions(opts)

	obj, err := memory.NewObject(data, o.base)
	if err != nil {
		return nil, err
	}

	img := &Image{Object: obj}
	at := obj.Base()
	if IsFat(obj, at) {
		arch, err := selectArch(obj, at, o)
		if err != nil {
			return nil, err
		}
		img.Arch = arch
		at += vm.Address(arch.Offset)
		img.Object, err = obj.Sub(vm.MakeRange(at, vm.Size(arch.Size)))
		if err != nil {
			return nil, errors.Wrap(errors.PhaseHeader, errors.KindInvalidData, err,
				"universal binary slice outside the file")
		}
		o.log.Debug("selected universal binary slice",
			zap.Stringer("cpu", arch.CPU),
			zap.Uint64("offset", arch.Offset),
			zap.Uint64("size", arch.Size))
	}

	img.Header, err = ParseHeader(img.Object, at, opts...)
	if err != nil {
		return nil, err
	}
	img.Commands, err = img.Header.LoadCommands()
	if err != nil {
		return nil, err
	}
	return img, nil
}

func selectArch(obj *memory.Object, at vm.Address, o options) (*FatArch, error) {
	archs, err := ParseFat(obj, at)
	if err != nil {
		return nil, err
	}
	if !o.hasArch {
		return &archs[0], nil
	}
	for i := range archs {
		if archs[i].CPU == o.arch {
			return &archs[i], nil
		}
	}
	return nil, errors.New(errors.PhaseHeader, errors.KindNotFound).
		Value(o.arch).
		Detail("no %s slice in universal binary", o.arch).
		Build()
}

// Context returns the parse state of the image.
func (img *Image) Context() *Context {
	return img.Header.ctx
}

// Segments returns the segment commands in load order.
func (img *Image) Segments() []*Segment {
	var segs []*Segment
	for _, c := range img.Commands {
		if s, ok := c.(*Segment); ok {
			segs = append(segs, s)
		}
	}
	return segs
}

// Segment returns the first segment named name.
func (img *Image) Segment(name string) (*Segment, bool) {
	for _, s := range img.Segments() {
		if s.Name == name {
			return s, true
		}
	}
	return nil, false
}

// UUID returns the LC_UUID value.
func (img *Image) UUID() (uuid.UUID, bool) {
	for _, c := range img.Commands {
		if u, ok := c.(*UUIDCommand); ok {
			return u.UUID, true
		}
	}
	return uuid.Nil, false
}

// Symtab returns the LC_SYMTAB command.
func (img *Image) Symtab() (*SymtabCommand, bool) {
	for _, c := range img.Commands {
		if s, ok := c.(*SymtabCommand); ok {
			return s, true
		}
	}
	return nil, false
}
