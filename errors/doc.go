// Package errors provides structured error types for wasiraptor.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error category).
// The Error type carries the offending value, the wire field it was destined for,
// and an optional cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseEncode, errors.KindOverflow).
//		Field("size").
//		Wire("u28").
//		Value(size).
//		Detail("size %d exceeds 28 bits precision %d", size, 1<<28).
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.Overflow(errors.PhaseEncode, "size", size, "u28")
//	err := errors.OutOfBounds(errors.PhaseWrite, offset, length, memSize)
//
// All errors implement the standard error interface and support errors.Is/As.
// Is matches on Phase and Kind only, so a bare &Error{Phase, Kind} works as a
// sentinel target.
package errors
