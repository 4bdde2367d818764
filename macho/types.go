package macho

import (
	"github.com/wippyai/machokit/typeinfo"
	"github.com/wippyai/machokit/vm"
)

const (
	idRecord typeinfo.ID = iota + 1
	idHeader
	idLoadCommand
	idSegment
	idSegment64
	idUUIDCommand
	idSymtabCommand
	idSection
)

// Record descriptors. Segment64Type has no name or overrides of its own and
// renders like SegmentType.
var (
	RecordType = typeinfo.New(idRecord, nil,
		typeinfo.WithName("macho_record"),
		typeinfo.WithContext(recordContext),
		typeinfo.WithEqual(equalRecord))

	HeaderType = typeinfo.New(idHeader, RecordType,
		typeinfo.WithName("mach_header"),
		typeinfo.WithDescribe(describeHeader))

	LoadCommandType = typeinfo.New(idLoadCommand, RecordType,
		typeinfo.WithName("load_command"),
		typeinfo.WithDescribe(describeLoadCommand))

	SegmentType = typeinfo.New(idSegment, LoadCommandType,
		typeinfo.WithName("segment_command"),
		typeinfo.WithDescribe(describeSegment))

	Segment64Type = typeinfo.New(idSegment64, SegmentType)

	UUIDCommandType = typeinfo.New(idUUIDCommand, LoadCommandType,
		typeinfo.WithName("uuid_command"),
		typeinfo.WithDescribe(describeUUID))

	SymtabCommandType = typeinfo.New(idSymtabCommand, LoadCommandType,
		typeinfo.WithName("symtab_command"),
		typeinfo.WithDescribe(describeSymtab))

	SectionType = typeinfo.New(idSection, RecordType,
		typeinfo.WithName("section"),
		typeinfo.WithDescribe(describeSection))
)

// Types is the closed set of record descriptors.
var Types = typeinfo.MustRegistry(
	RecordType,
	HeaderType,
	LoadCommandType,
	SegmentType,
	Segment64Type,
	UUIDCommandType,
	SymtabCommandType,
	SectionType,
)

// record is implemented by every handle this package creates.
type record interface {
	typeinfo.Handle
	Context() *Context
	Address() vm.Address
}

func recordContext(h typeinfo.Handle) typeinfo.Context {
	r, ok := h.(record)
	if !ok {
		return nil
	}
	if ctx := r.Context(); ctx != nil {
		return ctx
	}
	return nil
}

// equalRecord treats two records as equal when they are the same kind of
// record at the same address of the same binary.
func equalRecord(a, b typeinfo.Handle) bool {
	ra, ok := a.(record)
	if !ok {
		return false
	}
	rb, ok := b.(record)
	if !ok {
		return false
	}
	return typeinfo.IsExact(rb, ra.Descriptor()) &&
		ra.Context() == rb.Context() &&
		ra.Address() == rb.Address()
}

func describeHeader(h typeinfo.Handle, buf []byte) int {
	hdr, ok := h.(*Header)
	if !ok {
		return typeinfo.Format(buf, "<%s>", typeinfo.Name(h))
	}
	return typeinfo.Format(buf, "<%s %s %s ncmds=%d sizeofcmds=%d flags=%#x>",
		typeinfo.Name(h), hdr.CPU, hdr.Type, hdr.NCmds, hdr.SizeOfCmds, hdr.Flags)
}

func describeLoadCommand(h typeinfo.Handle, buf []byte) int {
	c, ok := h.(Command)
	if !ok {
		return typeinfo.Format(buf, "<%s>", typeinfo.Name(h))
	}
	lc := c.Command()
	return typeinfo.Format(buf, "<%s %s size=%d @%#x>",
		typeinfo.Name(h), lc.Cmd, lc.Size, uint64(lc.addr))
}

func describeSegment(h typeinfo.Handle, buf []byte) int {
	s, ok := h.(*Segment)
	if !ok {
		return describeLoadCommand(h, buf)
	}
	return typeinfo.Format(buf, "<%s %s vm=%s file=%s prot=%s/%s nsects=%d>",
		typeinfo.Name(h), s.Name, s.VMRange(), s.FileRange(), s.InitProt, s.MaxProt, s.NSects)
}

func describeUUID(h typeinfo.Handle, buf []byte) int {
	u, ok := h.(*UUIDCommand)
	if !ok {
		return describeLoadCommand(h, buf)
	}
	return typeinfo.Format(buf, "<%s %s>", typeinfo.Name(h), u.UUID)
}

func describeSymtab(h typeinfo.Handle, buf []byte) int {
	s, ok := h.(*SymtabCommand)
	if !ok {
		return describeLoadCommand(h, buf)
	}
	return typeinfo.Format(buf, "<%s nsyms=%d symoff=%#x stroff=%#x strsize=%d>",
		typeinfo.Name(h), s.NSyms, s.SymOff, s.StrOff, s.StrSize)
}

func describeSection(h typeinfo.Handle, buf []byte) int {
	s, ok := h.(*Section)
	if !ok {
		return typeinfo.Format(buf, "<%s>", typeinfo.Name(h))
	}
	return typeinfo.Format(buf, "<%s %s,%s %s align=2^%d>",
		typeinfo.Name(h), s.SegName, s.Name, s.Range(), s.Align)
}
