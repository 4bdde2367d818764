// Package macho parses Mach-O images on top of the machokit core.
//
// Every record the parser hands out (the header, each load command, each
// section) is a typeinfo.Handle tagged with one of the descriptors in Types,
// so callers can ask for its kind, name, owning Context, or description
// through the typeinfo runtime:
//
//	img, err := macho.Open(data, macho.WithLogger(log))
//	if err != nil {
//		return err
//	}
//	for _, cmd := range img.Commands {
//		if typeinfo.IsKindOf(cmd, macho.SegmentType) {
//			fmt.Println(typeinfo.String(cmd))
//		}
//	}
//
// All address arithmetic goes through package vm and every read through a
// memory.Accessor, so a malformed image produces an *errors.Error rather
// than a panic or an out of bounds read.
package macho
