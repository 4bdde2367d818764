package macho

import (
	"strconv"

	"github.com/wippyai/machokit/macho/internal/cursor"
	"github.com/wippyai/machokit/typeinfo"
	"github.com/wippyai/machokit/vm"
)

// Command is any load command record.
type Command interface {
	typeinfo.Handle
	Command() *LoadCommand
}

// LoadCommand is the common part of every load command.
type LoadCommand struct {
	ctx   *Context
	addr  vm.Address
	Index int
	Cmd   LoadCmd
	Size  uint32
}

// Descriptor implements typeinfo.Handle.
func (lc *LoadCommand) Descriptor() *typeinfo.Descriptor { return LoadCommandType }

// Command implements Command.
func (lc *LoadCommand) Command() *LoadCommand { return lc }

// Context returns the parse state of the binary.
func (lc *LoadCommand) Context() *Context { return lc.ctx }

// Address returns the address of the command.
func (lc *LoadCommand) Address() vm.Address { return lc.addr }

// Range returns the bytes occupied by the command.
func (lc *LoadCommand) Range() vm.Range {
	return vm.MakeRange(lc.addr, vm.Size(lc.Size))
}

// body returns a reader positioned after cmd and cmdsize.
func (lc *LoadCommand) body() *cursor.Reader {
	r := cursor.New(lc.ctx.mem, lc.addr, vm.Size(lc.Size), lc.ctx.order)
	r.Skip(loadCommandMinSize)
	return r
}

type decoder func(lc *LoadCommand) (Command, error)

var decoders = map[LoadCmd]decoder{
	LoadCmdSegment:   decodeSegment,
	LoadCmdSegment64: decodeSegment,
	LoadCmdUUID:      decodeUUID,
	LoadCmdSymtab:    decodeSymtab,
}

func decodeCommand(lc *LoadCommand) (Command, error) {
	if dec, ok := decoders[lc.Cmd]; ok {
		return dec(lc)
	}
	return lc, nil
}

func indexPath(name string, i int) string {
	return name + "[" + strconv.Itoa(i) + "]"
}
