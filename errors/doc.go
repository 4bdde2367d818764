// Package errors provides the result contract shared by every machokit package.
//
// Every failure is categorized by Kind, a closed set mirroring the classic
// Mach-O parser error codes (Overflow, Underflow, NotFound, InvalidData, ...),
// and by Phase (where the error occurred). The memory-fault attribute is
// carried next to the kind rather than folded into it, so matching on Kind
// never has to mask anything:
//
//	_, err := vm.ApplyOffset(addr, off)
//	if errors.KindOf(err) == errors.KindOverflow { ... }
//	if errors.IsFault(err) { ... }
//
// Structured construction goes through the Builder:
//
//	err := errors.New(errors.PhaseSegment, errors.KindInvalidData).
//		Path("load_command[3]", "__TEXT").
//		Detail("vmsize %d smaller than filesize %d", vmsize, filesize).
//		Build()
//
// All errors implement the standard error interface and support errors.Is/As;
// the package-level sentinels (ErrOverflow, ErrNotFound, ...) match by kind.
// Describe is the single place user-facing kind text is produced.
package errors
