// Package typeinfo is the dispatch substrate that lets structurally different
// record kinds be handled uniformly.
//
// Each record kind has one Descriptor: a node in a single-parent tree rooted
// at Root, tagged with a stable ID and optionally overriding the type name,
// the owning-context lookup, equality, and description. Values expose their
// descriptor through Handle, and every dispatched operation is resolved by
// the nearest ancestor that defines it:
//
//	var segmentType = typeinfo.New(idSegment, loadCommandType,
//		typeinfo.WithName("segment"),
//		typeinfo.WithDescribe(describeSegment))
//
//	if typeinfo.IsKindOf(h, loadCommandType) { ... }
//	fmt.Println(typeinfo.String(h))
//
// Descriptors are immutable once built and are normally declared as package
// variables, then collected into a Registry that validates the tree once at
// init. Nothing here fails: "not an instance of" is a false result and "no
// context" is a nil Context.
package typeinfo
