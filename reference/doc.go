// Package reference packs and unpacks the 64-bit handles that describe a
// payload in shared memory.
//
// Layout, most significant bit first:
//
//	[ kind:4 ][ offset:32 ][ size:28 ]
//
// The layout is the wire contract between guest and host. Both sides must use
// the same widths, field order and kind values. Code outside this package
// works with Reference values and never shifts bits itself.
//
// Encode refuses sizes at or above 2^28 instead of masking them: a wrapped size
// would make the receiver read the wrong byte range. MustEncode turns that
// refusal into a panic for callers that treat it as a contract violation.
package reference
