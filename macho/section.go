package macho

import (
	"github.com/wippyai/machokit/errors"
	"github.com/wippyai/machokit/macho/internal/cursor"
	"github.com/wippyai/machokit/typeinfo"
	"github.com/wippyai/machokit/vm"
)

// Section types stored in the low byte of the flags.
const (
	SectionRegular         uint8 = 0x0
	SectionZeroFill        uint8 = 0x1
	SectionCStringLiterals uint8 = 0x2
	SectionGBZeroFill      uint8 = 0xc
	SectionThreadLocalZero uint8 = 0x12
)

const sectionTypeMask = 0xff

// Section is one section record of a segment.
type Section struct {
	ctx       *Context
	segment   *Segment
	addr      vm.Address
	Index     int
	Name      string
	SegName   string
	Addr      uint64
	Size      uint64
	Offset    uint32
	Align     uint32
	RelOff    uint32
	NReloc    uint32
	Flags     uint32
	Reserved1 uint32
	Reserved2 uint32
	Reserved3 uint32

	// Partial is set when the section only overlaps its segment.
	Partial bool
}

// Descriptor implements typeinfo.Handle.
func (s *Section) Descriptor() *typeinfo.Descriptor { return SectionType }

// Context returns the parse state of the binary.
func (s *Section) Context() *Context { return s.ctx }

// Address returns the address of the section record.
func (s *Section) Address() vm.Address { return s.addr }

// Segment returns the segment the section was read from.
func (s *Section) Segment() *Segment { return s.segment }

// Range returns the section's address range.
func (s *Section) Range() vm.Range {
	return vm.MakeRange(vm.Address(s.Addr), vm.Size(s.Size))
}

// Type returns the section type.
func (s *Section) Type() uint8 {
	return uint8(s.Flags & sectionTypeMask)
}

// ZeroFill reports whether the section has no file contents.
func (s *Section) ZeroFill() bool {
	switch s.Type() {
	case SectionZeroFill, SectionGBZeroFill, SectionThreadLocalZero:
		return true
	}
	return false
}

// Data returns a view of the section contents in the image. Zero fill
// sections have none.
func (s *Section) Data() ([]byte, error) {
	if s.ZeroFill() {
		return nil, nil
	}
	b, err := s.ctx.mem.Bytes(vm.Offset(s.Offset), s.ctx.header, vm.Size(s.Size))
	if err != nil {
		return nil, errors.WithPath(
			errors.Wrap(errors.PhaseSection, errors.KindSuccess, err, "section contents"),
			s.SegName, s.Name)
	}
	return b, nil
}

func (s *Section) read(r *cursor.Reader, wide bool) {
	s.Name = r.Name(nameFieldSize)
	s.SegName = r.Name(nameFieldSize)
	s.Addr = r.Word(wide)
	s.Size = r.Word(wide)
	s.Offset = r.Uint32()
	s.Align = r.Uint32()
	s.RelOff = r.Uint32()
	s.NReloc = r.Uint32()
	s.Flags = r.Uint32()
	s.Reserved1 = r.Uint32()
	s.Reserved2 = r.Uint32()
	if wide {
		s.Reserved3 = r.Uint32()
	}
}
