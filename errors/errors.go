package errors

import (
	"fmt"
	"strings"
)

// Phase indicates where in processing the error occurred
type Phase string

const (
	PhaseEncode   Phase = "encode"   // reference packing
	PhaseDecode   Phase = "decode"   // reference unpacking
	PhaseWrite    Phase = "write"    // guest memory writes
	PhaseRead     Phase = "read"     // host memory reads
	PhaseBridge   Phase = "bridge"   // logger bridge sequencing
	PhaseHost     Phase = "host"     // host import handling
	PhaseRegister Phase = "register" // guest environment registration
	PhaseConfig   Phase = "config"   // configuration loading
	PhaseLoad     Phase = "load"     // module compilation and instantiation
	PhaseRuntime  Phase = "runtime"  // guest calls
)

// Kind categorizes the error
type Kind string

const (
	KindOverflow       Kind = "overflow"
	KindOutOfBounds    Kind = "out_of_bounds"
	KindInvalidInput   Kind = "invalid_input"
	KindInvalidUTF8    Kind = "invalid_utf8"
	KindTypeMismatch   Kind = "type_mismatch"
	KindOverlap        Kind = "overlap"
	KindReentrant      Kind = "reentrant"
	KindNotFound       Kind = "not_found"
	KindNotInitialized Kind = "not_initialized"
	KindRegistration   Kind = "registration"
	KindInstantiation  Kind = "instantiation"
)

// Error is the structured error type used throughout wasiraptor
type Error struct {
	Value  any
	Cause  error
	Phase  Phase
	Kind   Kind
	Field  string
	Wire   string
	Detail string
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if e.Field != "" {
		b.WriteString(" at ")
		b.WriteString(e.Field)
	}

	if e.Wire != "" {
		b.WriteString(" (")
		b.WriteString(e.Wire)
		b.WriteByte(')')
	}

	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Phase == t.Phase && e.Kind == t.Kind
	}
	return false
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase: phase,
			Kind:  kind,
		},
	}
}

// Field sets the name of the field or argument at fault
func (b *Builder) Field(name string) *Builder {
	b.err.Field = name
	return b
}

// Wire sets the wire width or representation the value was destined for
func (b *Builder) Wire(w string) *Builder {
	b.err.Wire = w
	return b
}

// Value sets the offending value
func (b *Builder) Value(v any) *Builder {
	b.err.Value = v
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Convenience constructors for common error patterns

// Overflow creates an overflow error for a value that does not fit its wire width
func Overflow(phase Phase, field string, value any, wire string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindOverflow,
		Field:  field,
		Wire:   wire,
		Detail: fmt.Sprintf("value %v overflows %s", value, wire),
		Value:  value,
	}
}

// OutOfBounds creates an error for a memory range outside the region
func OutOfBounds(phase Phase, offset uint64, length uint64, size uint64) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindOutOfBounds,
		Detail: fmt.Sprintf("range [%d, %d) exceeds memory size %d", offset, offset+length, size),
		Value:  offset,
	}
}

// InvalidUTF8 creates an invalid UTF-8 error
func InvalidUTF8(phase Phase, field string, data []byte) *Error {
	preview := data
	if len(preview) > 32 {
		preview = preview[:32]
	}
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidUTF8,
		Field:  field,
		Detail: fmt.Sprintf("invalid UTF-8 sequence: %x", preview),
	}
}

// InvalidInput creates an invalid input error
func InvalidInput(phase Phase, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidInput,
		Detail: detail,
	}
}

// NotFound creates an error for a missing named entity
func NotFound(phase Phase, what, name string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNotFound,
		Field:  name,
		Detail: fmt.Sprintf("%s %q not found", what, name),
	}
}

// Wrap wraps an existing error with additional context
func Wrap(phase Phase, kind Kind, cause error, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   kind,
		Detail: detail,
		Cause:  cause,
	}
}

// Load wraps a module loading failure
func Load(detail string, cause error) *Error {
	return Wrap(PhaseLoad, KindInstantiation, cause, detail)
}

// Registration wraps a failure to install a named binding
func Registration(phase Phase, name string, cause error) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindRegistration,
		Field:  name,
		Detail: fmt.Sprintf("failed to register %s", name),
		Cause:  cause,
	}
}
