package macho

import (
	"github.com/google/uuid"

	"github.com/wippyai/machokit/errors"
	"github.com/wippyai/machokit/typeinfo"
)

// UUIDCommand is an LC_UUID command.
type UUIDCommand struct {
	LoadCommand
	UUID uuid.UUID
}

// Descriptor implements typeinfo.Handle.
func (u *UUIDCommand) Descriptor() *typeinfo.Descriptor { return UUIDCommandType }

func decodeUUID(lc *LoadCommand) (Command, error) {
	if lc.Size != uuidCommandSize {
		return nil, errors.New(errors.PhaseLoadCommand, errors.KindInvalidData).
			Value(lc.Size).
			Detail("LC_UUID cmdsize %d, want %d", lc.Size, uuidCommandSize).
			Build()
	}

	r := lc.body()
	raw := r.Bytes(16)
	if err := r.Err(); err != nil {
		return nil, errors.Wrap(errors.PhaseLoadCommand, errors.KindSuccess, err, "read uuid")
	}
	id, err := uuid.FromBytes(raw)
	if err != nil {
		return nil, errors.Wrap(errors.PhaseLoadCommand, errors.KindInvalidData, err, "uuid bytes")
	}
	return &UUIDCommand{LoadCommand: *lc, UUID: id}, nil
}
