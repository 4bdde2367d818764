package macho

import (
	"github.com/wippyai/machokit/errors"
	"github.com/wippyai/machokit/typeinfo"
	"github.com/wippyai/machokit/vm"
)

// SymtabCommand is an LC_SYMTAB command.
type SymtabCommand struct {
	LoadCommand
	SymOff  uint32
	NSyms   uint32
	StrOff  uint32
	StrSize uint32
}

// Descriptor implements typeinfo.Handle.
func (s *SymtabCommand) Descriptor() *typeinfo.Descriptor { return SymtabCommandType }

func decodeSymtab(lc *LoadCommand) (Command, error) {
	if lc.Size != symtabCommandSize {
		return nil, errors.New(errors.PhaseLoadCommand, errors.KindInvalidData).
			Value(lc.Size).
			Detail("LC_SYMTAB cmdsize %d, want %d", lc.Size, symtabCommandSize).
			Build()
	}

	r := lc.body()
	s := &SymtabCommand{LoadCommand: *lc}
	s.SymOff = r.Uint32()
	s.NSyms = r.Uint32()
	s.StrOff = r.Uint32()
	s.StrSize = r.Uint32()
	if err := r.Err(); err != nil {
		return nil, errors.Wrap(errors.PhaseLoadCommand, errors.KindSuccess, err, "read symtab command")
	}
	return s, nil
}

// SymbolRange returns the image range of the nlist array after checking
// that it lies inside the image.
func (s *SymtabCommand) SymbolRange() (vm.Range, error) {
	entry := uint64(nlistSize32)
	if s.ctx.wide {
		entry = nlistSize64
	}
	return s.tableRange(uint64(s.SymOff), uint64(s.NSyms)*entry, "symbol table")
}

// StringTable returns a view of the string table.
func (s *SymtabCommand) StringTable() ([]byte, error) {
	r, err := s.tableRange(uint64(s.StrOff), uint64(s.StrSize), "string table")
	if err != nil {
		return nil, err
	}
	return s.ctx.mem.Bytes(0, r.Location, r.Length)
}

func (s *SymtabCommand) tableRange(offset, length uint64, what string) (vm.Range, error) {
	r, err := s.ctx.fileRange(offset, length)
	if err != nil {
		return vm.Range{}, errors.Wrap(errors.PhaseLoadCommand, errors.KindSuccess, err, what)
	}
	if err := s.ctx.mem.Range().ContainsRange(r, false); err != nil {
		return vm.Range{}, errors.New(errors.PhaseLoadCommand, errors.KindInvalidData).
			Value(r).
			Cause(err).
			Detail("%s %s outside the image", what, r).
			Build()
	}
	return r, nil
}
