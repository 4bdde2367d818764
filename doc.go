// Package machokit is a toolkit for inspecting Mach-O images with every
// address computation checked.
//
// Parsers of binary formats spend most of their bugs on arithmetic: an
// offset added to an address wraps, a length runs past the mapped image, a
// record claims to be larger than its container. machokit routes all of it
// through a small core so malformed input surfaces as a structured error
// instead of a wrong read.
//
// # Architecture Overview
//
// The library is organized into several packages with distinct responsibilities:
//
//	machokit/            Root package with Open, OpenFile and MapFile
//	├── errors/          Error kinds, the memory fault attribute, structured errors
//	├── vm/              Checked address arithmetic and half open ranges
//	├── byteorder/       Direct and byte-swapped field access strategies
//	├── typeinfo/        Descriptor chains: kind checks, names, equality, descriptions
//	├── memory/          Bounds and fault checked view over a caller owned image
//	├── macho/           Mach-O records built on the core
//	└── cmd/machokit/    Command line inspector
//
// # Quick Start
//
//	img, err := machokit.OpenFile("/bin/ls", macho.WithArch(macho.CPUARM64))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, seg := range img.Segments() {
//	    fmt.Println(typeinfo.String(seg))
//	}
//
// # Errors
//
// Every package reports failures as *errors.Error values carrying one kind
// from a closed set and an orthogonal memory fault flag:
//
//	if errors.KindOf(err) == errors.KindNotFound { ... }
//	if errors.IsFault(err) { ... }
//
// # Memory Model
//
// The image is never copied. memory.Object reads straight from the caller's
// slice, which may be an mmapped file; a fault while touching it is reported
// as errors.KindBadAccess with the fault flag set. The caller must keep the
// slice alive and unmodified while records of the image are in use.
//
// MapFile maps a file read-only and ties the lifetime of its records to the
// returned File:
//
//	f, err := machokit.MapFile(path)
//	if err != nil {
//	    return err
//	}
//	defer f.Close()
//
// # Thread Safety
//
// Descriptors and registries are immutable after package initialization. A
// parsed Image is read-only and may be shared between goroutines.
package machokit
