// Package byteorder provides the two byte-order strategies used to decode
// fields of a parsed image.
//
// A binary declares its endianness through its magic number. The decision
// is made once per binary, by comparing that declaration with the host, and
// the chosen strategy is then passed to every decoding call site:
//
//	order, err := byteorder.ForMagic(hostMagic)
//	ncmds := order.Swap32(rawNcmds)
//
// Direct leaves values untouched; Swapped reverses their bytes. Both are
// stateless process-wide values and may be shared freely.
package byteorder
