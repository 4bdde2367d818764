package macho

import (
	"go.uber.org/zap"

	"github.com/wippyai/machokit/errors"
	"github.com/wippyai/machokit/macho/internal/cursor"
	"github.com/wippyai/machokit/typeinfo"
	"github.com/wippyai/machokit/vm"
)

// Prot is a vm_prot_t.
type Prot uint32

const (
	ProtRead    Prot = 0x1
	ProtWrite   Prot = 0x2
	ProtExecute Prot = 0x4
)

// String renders the protection as "rwx" with dashes for missing bits.
func (p Prot) String() string {
	b := []byte("---")
	if p&ProtRead != 0 {
		b[0] = 'r'
	}
	if p&ProtWrite != 0 {
		b[1] = 'w'
	}
	if p&ProtExecute != 0 {
		b[2] = 'x'
	}
	return string(b)
}

// Segment is an LC_SEGMENT or LC_SEGMENT_64 command.
type Segment struct {
	LoadCommand
	Name     string
	VMAddr   uint64
	VMSize   uint64
	FileOff  uint64
	FileSize uint64
	MaxProt  Prot
	InitProt Prot
	NSects   uint32
	Flags    uint32
	wide     bool
}

// Descriptor implements typeinfo.Handle.
func (s *Segment) Descriptor() *typeinfo.Descriptor {
	if s.wide {
		return Segment64Type
	}
	return SegmentType
}

// Is64 reports whether this is an LC_SEGMENT_64.
func (s *Segment) Is64() bool { return s.wide }

// VMRange returns the segment's address range.
func (s *Segment) VMRange() vm.Range {
	return vm.MakeRange(vm.Address(s.VMAddr), vm.Size(s.VMSize))
}

// FileRange returns the segment's file offset range.
func (s *Segment) FileRange() vm.Range {
	return vm.MakeRange(vm.Address(s.FileOff), vm.Size(s.FileSize))
}

func (s *Segment) headerSize() vm.Size {
	if s.wide {
		return segmentSize64
	}
	return segmentSize32
}

func (s *Segment) sectionSize() vm.Size {
	if s.wide {
		return sectionSize64
	}
	return sectionSize32
}

func decodeSegment(lc *LoadCommand) (Command, error) {
	s := &Segment{LoadCommand: *lc, wide: lc.Cmd == LoadCmdSegment64}

	if vm.Size(lc.Size) < s.headerSize() {
		return nil, errors.New(errors.PhaseSegment, errors.KindInvalidData).
			Value(lc.Size).
			Detail("%s cmdsize %d below minimum %d", lc.Cmd, lc.Size, s.headerSize()).
			Build()
	}

	r := lc.body()
	s.Name = r.Name(nameFieldSize)
	s.VMAddr = r.Word(s.wide)
	s.VMSize = r.Word(s.wide)
	s.FileOff = r.Word(s.wide)
	s.FileSize = r.Word(s.wide)
	s.MaxProt = Prot(r.Uint32())
	s.InitProt = Prot(r.Uint32())
	s.NSects = r.Uint32()
	s.Flags = r.Uint32()
	if err := r.Err(); err != nil {
		return nil, errors.Wrap(errors.PhaseSegment, errors.KindSuccess, err, "read segment command")
	}

	if err := s.VMRange().Validate(); err != nil {
		return nil, errors.WithPath(errors.Wrap(errors.PhaseSegment, errors.KindSuccess, err, "vm range"), s.Name)
	}
	if err := s.FileRange().Validate(); err != nil {
		return nil, errors.WithPath(errors.Wrap(errors.PhaseSegment, errors.KindSuccess, err, "file range"), s.Name)
	}

	need := uint64(s.headerSize()) + uint64(s.NSects)*uint64(s.sectionSize())
	if need > uint64(lc.Size) {
		return nil, errors.New(errors.PhaseSegment, errors.KindInvalidData).
			Path(s.Name).
			Value(s.NSects).
			Detail("%d sections need %d bytes but cmdsize is %d", s.NSects, need, lc.Size).
			Build()
	}
	return s, nil
}

// Sections reads the section records that follow the segment command. Each
// section must lie inside the segment's address range. A section that only
// overlaps it is accepted with a warning unless the binary was opened with
// WithStrictSections.
func (s *Segment) Sections() ([]*Section, error) {
	r := cursor.New(s.ctx.mem, s.addr, vm.Size(s.Size), s.ctx.order)
	r.Seek(s.headerSize())

	sections := make([]*Section, 0, s.NSects)
	for i := 0; i < int(s.NSects); i++ {
		sec := &Section{
			ctx:     s.ctx,
			segment: s,
			addr:    s.addr + vm.Address(r.Position()),
			Index:   i,
		}
		sec.read(r, s.wide)
		if err := r.Err(); err != nil {
			return nil, errors.WithPath(
				errors.Wrap(errors.PhaseSection, errors.KindSuccess, err, "read section"),
				s.Name, indexPath("section", i))
		}
		if err := s.place(sec); err != nil {
			return nil, err
		}
		sections = append(sections, sec)
	}
	return sections, nil
}

// place checks sec against the segment, strictly first and then partially.
func (s *Segment) place(sec *Section) error {
	outer, inner := s.VMRange(), sec.Range()

	err := outer.ContainsRange(inner, false)
	if err == nil {
		return nil
	}
	if errors.KindOf(err) == errors.KindOverflow {
		return errors.WithPath(errors.Wrap(errors.PhaseSection, errors.KindSuccess, err, "section range"), s.Name, sec.Name)
	}

	if perr := outer.ContainsRange(inner, true); perr != nil || s.ctx.strictSections {
		if perr != nil {
			err = perr
		}
		return errors.New(errors.PhaseSection, errors.KindNotFound).
			Path(s.Name, sec.Name).
			Value(inner).
			Cause(err).
			Detail("section %s not inside segment %s", inner, outer).
			Build()
	}

	s.ctx.log.Warn("section only partially inside its segment",
		zap.String("segment", s.Name),
		zap.String("section", sec.Name),
		zap.Stringer("section_range", inner),
		zap.Stringer("segment_range", outer))
	sec.Partial = true
	return nil
}
