package macho

import (
	"go.uber.org/zap"

	"github.com/wippyai/machokit/byteorder"
	"github.com/wippyai/machokit/errors"
	"github.com/wippyai/machokit/macho/internal/cursor"
	"github.com/wippyai/machokit/memory"
	"github.com/wippyai/machokit/typeinfo"
	"github.com/wippyai/machokit/vm"
)

// Header flag bits.
const (
	FlagNoUndefs     uint32 = 0x1
	FlagDyldLink     uint32 = 0x4
	FlagTwoLevel     uint32 = 0x80
	FlagPIE          uint32 = 0x200000
	FlagHasTLVDescs  uint32 = 0x800000
	FlagAppExtension uint32 = 0x2000000
)

// Header is a parsed mach_header or mach_header_64.
type Header struct {
	ctx        *Context
	addr       vm.Address
	Magic      uint32
	CPU        CPU
	SubCPU     uint32
	Type       FileType
	NCmds      uint32
	SizeOfCmds uint32
	Flags      uint32
}

// Descriptor implements typeinfo.Handle.
func (h *Header) Descriptor() *typeinfo.Descriptor { return HeaderType }

// Context returns the parse state of the binary.
func (h *Header) Context() *Context { return h.ctx }

// Address returns the address of the header.
func (h *Header) Address() vm.Address { return h.addr }

// Is64 reports whether this is a mach_header_64.
func (h *Header) Is64() bool { return h.ctx.wide }

// Size returns the size of the header structure itself.
func (h *Header) Size() vm.Size {
	if h.ctx.wide {
		return headerSize64
	}
	return headerSize32
}

// CommandsRange returns the region occupied by the load commands. It was
// verified to lie inside the image when the header was parsed.
func (h *Header) CommandsRange() vm.Range {
	return vm.MakeRange(h.addr+vm.Address(h.Size()), vm.Size(h.SizeOfCmds))
}

// ParseHeader parses the mach header at addr. The byte order and address
// width of the binary are taken from its magic.
func ParseHeader(mem memory.Accessor, addr vm.Address, opts ...Option) (*Header, error) {
	o := newOptions(opts)

	raw, err := mem.Uint32(0, addr, byteorder.Direct)
	if err != nil {
		return nil, errors.Wrap(errors.PhaseHeader, errors.KindSuccess, err, "read magic")
	}
	order, err := byteorder.ForMagic(raw)
	if err != nil {
		return nil, errors.Wrap(errors.PhaseHeader, errors.KindInvalidData, err, "not a Mach-O image")
	}
	magic := order.Swap32(raw)
	if magic != byteorder.MagicThin32 && magic != byteorder.MagicThin64 {
		return nil, errors.New(errors.PhaseHeader, errors.KindInvalidData).
			Value(magic).
			Detail("universal binary magic %#x where a mach header was expected", magic).
			Build()
	}

	ctx := &Context{
		mem:            mem,
		order:          order,
		header:         addr,
		wide:           magic == byteorder.MagicThin64,
		strictSections: o.strictSections,
	}
	h := &Header{ctx: ctx, addr: addr}

	r := cursor.New(mem, addr, h.Size(), order)
	h.Magic = r.Uint32()
	h.CPU = CPU(r.Uint32())
	h.SubCPU = r.Uint32()
	h.Type = FileType(r.Uint32())
	h.NCmds = r.Uint32()
	h.SizeOfCmds = r.Uint32()
	h.Flags = r.Uint32()
	if ctx.wide {
		r.Skip(4)
	}
	if err := r.Err(); err != nil {
		return nil, errors.Wrap(errors.PhaseHeader, errors.KindSuccess, err, "read mach header")
	}

	start, err := vm.ApplyOffset(addr, vm.Offset(h.Size()))
	if err != nil {
		return nil, errors.Wrap(errors.PhaseHeader, errors.KindSuccess, err, "load commands start")
	}
	region := vm.MakeRange(start, vm.Size(h.SizeOfCmds))
	if err := mem.Range().ContainsRange(region, false); err != nil {
		return nil, errors.New(errors.PhaseHeader, errors.KindInvalidData).
			Value(h.SizeOfCmds).
			Cause(err).
			Detail("load commands region %s does not fit in the image", region).
			Build()
	}
	if uint64(h.NCmds)*loadCommandMinSize > uint64(h.SizeOfCmds) {
		return nil, errors.New(errors.PhaseHeader, errors.KindInvalidData).
			Value(h.NCmds).
			Detail("%d load commands cannot fit in %d bytes", h.NCmds, h.SizeOfCmds).
			Build()
	}

	ctx.log = o.log.With(
		zap.Stringer("cpu", h.CPU),
		zap.Stringer("filetype", h.Type),
		zap.String("byteorder", byteorder.Name(order)),
	)
	ctx.log.Debug("parsed mach header",
		zap.Uint64("address", uint64(addr)),
		zap.Uint32("ncmds", h.NCmds),
		zap.Uint32("sizeofcmds", h.SizeOfCmds),
		zap.Bool("64bit", ctx.wide))

	return h, nil
}

// LoadCommands walks the load commands that follow the header. A command
// type without a dedicated record is returned as a plain *LoadCommand.
func (h *Header) LoadCommands() ([]Command, error) {
	region := h.CommandsRange()
	align := uint32(4)
	if h.ctx.wide {
		align = 8
	}

	cmds := make([]Command, 0, h.NCmds)
	addr := region.Location
	for i := 0; i < int(h.NCmds); i++ {
		lc, err := h.loadCommandAt(region, addr, i, align)
		if err != nil {
			return nil, errors.WithPath(err, indexPath("load_command", i))
		}
		cmd, err := decodeCommand(lc)
		if err != nil {
			return nil, errors.WithPath(err, indexPath("load_command", i))
		}
		cmds = append(cmds, cmd)

		addr, err = vm.ApplyOffset(addr, vm.Offset(lc.Size))
		if err != nil {
			return nil, errors.WithPath(err, indexPath("load_command", i))
		}
	}
	return cmds, nil
}

func (h *Header) loadCommandAt(region vm.Range, addr vm.Address, index int, align uint32) (*LoadCommand, error) {
	if err := region.ContainsRange(vm.MakeRange(addr, loadCommandMinSize), false); err != nil {
		return nil, errors.New(errors.PhaseLoadCommand, errors.KindInvalidData).
			Cause(err).
			Detail("load command %d starts past the end of the commands region", index).
			Build()
	}

	r := cursor.New(h.ctx.mem, addr, loadCommandMinSize, h.ctx.order)
	lc := &LoadCommand{
		ctx:   h.ctx,
		addr:  addr,
		Index: index,
		Cmd:   LoadCmd(r.Uint32()),
		Size:  r.Uint32(),
	}
	if err := r.Err(); err != nil {
		return nil, errors.Wrap(errors.PhaseLoadCommand, errors.KindSuccess, err, "read load command")
	}

	if lc.Size < loadCommandMinSize {
		return nil, errors.New(errors.PhaseLoadCommand, errors.KindInvalidData).
			Value(lc.Size).
			Detail("%s cmdsize %d below minimum %d", lc.Cmd, lc.Size, loadCommandMinSize).
			Build()
	}
	if lc.Size%align != 0 {
		return nil, errors.New(errors.PhaseLoadCommand, errors.KindInvalidData).
			Value(lc.Size).
			Detail("%s cmdsize %d not a multiple of %d", lc.Cmd, lc.Size, align).
			Build()
	}
	if err := region.ContainsRange(lc.Range(), false); err != nil {
		return nil, errors.New(errors.PhaseLoadCommand, errors.KindInvalidData).
			Value(lc.Size).
			Cause(err).
			Detail("%s overruns the commands region", lc.Cmd).
			Build()
	}
	return lc, nil
}
