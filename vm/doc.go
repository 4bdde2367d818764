// Package vm provides overflow-checked arithmetic and ranges over addresses in
// a parsed image's address space.
//
// Address, Size and Offset are distinct uint64 types. None of them is ever
// added to another without a check: ApplyOffset, Add, Subtract and
// CheckLength either produce the exact mathematical result or return an
// errors.KindOverflow / errors.KindUnderflow error.
//
// A Range is a (location, length) pair. Constructing one performs no
// validation; the containment predicates validate at the use site, always
// diagnosing overflow before comparing:
//
//	r := vm.MakeRange(0x1000, 0x200)
//	if err := r.ContainsAddress(0, addr); err != nil {
//	    // errors.KindNotFound or errors.KindOverflow
//	}
//	if err := segment.ContainsRange(section, true); err != nil { ... }
//
// Partial containment accepts any overlap, including a range that starts
// inside and runs past the end; it exists for containers that tools emit
// slightly too small. Use strict containment for safety-critical bounds.
package vm
