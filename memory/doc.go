// Package memory provides bounds-checked access to an image that is already
// resident in the caller's address space.
//
// An Object never reads, maps, allocates or frees the image; it wraps the
// caller's bytes and the address they are considered to live at:
//
//	obj, err := memory.NewObject(data, 0x100000000)
//	magic, err := obj.Uint32(0, obj.Base(), byteorder.Direct)
//
// Every access is validated with strict vm.Range containment before the
// bytes are touched. Reads that hit a hard fault, such as a caller-mapped
// file truncated underneath the parser, come back as errors.KindBadAccess
// with the fault attribute set instead of crashing the process.
package memory
