// Package transcoder places strings into shared memory and reads them back.
//
// The writer side copies a string's bytes verbatim at a caller-chosen offset
// and returns the packed reference together with the byte count, so a caller
// can chain writes without overlap:
//
//	levelRef, n, err := transcoder.WriteString(mem, 1, "warn")
//	msgRef, _, err := transcoder.WriteString(mem, 1+uint64(n), "disk low")
//
// Cursor does the chaining bookkeeping and refuses to overlap regions it has
// already placed.
//
// The reader side is what a host runs after receiving a reference: ReadString
// checks the kind tag, the bounds and UTF-8 validity before returning the text.
//
// # Failure Policy
//
// Every failure is returned as an *errors.Error and nothing is truncated:
//
//	size >= 2^28               overflow (encode phase)
//	offset beyond 32 bits      overflow (write phase)
//	length not representable   overflow (write phase)
//	range past memory end      out_of_bounds
//
// A zero-length string yields a size-0 reference and never touches memory.
package transcoder
