// Package memory provides bounds-checked views of shared linear memory.
//
// Arena is an explicitly sized buffer owned by the caller, useful when guest
// and host share a Go process. Wrap adapts a wazero instance memory to the
// same contract. Neither grows on demand: an access past the end is an
// out-of-bounds error, never undefined behavior.
package memory
