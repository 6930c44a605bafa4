package bridge

import (
	"context"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/wippyai/wasiraptor"
	"github.com/wippyai/wasiraptor/errors"
	"github.com/wippyai/wasiraptor/transcoder"
)

// Sink receives the two packed references. Implementations must not call
// back into the bridge that invoked them.
type Sink interface {
	Log(ctx context.Context, levelRef, messageRef uint64) error
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(ctx context.Context, levelRef, messageRef uint64) error

func (f SinkFunc) Log(ctx context.Context, levelRef, messageRef uint64) error {
	return f(ctx, levelRef, messageRef)
}

// Option configures a Bridge.
type Option func(*Bridge)

// WithBaseOffset sets the reserved offset the level string is written to.
func WithBaseOffset(offset uint32) Option {
	return func(b *Bridge) {
		b.base = offset
	}
}

// WithLogger sets the logger used for bridge diagnostics.
func WithLogger(l *zap.Logger) Option {
	return func(b *Bridge) {
		b.log = l
	}
}

// Bridge sequences two string writes and one sink call.
type Bridge struct {
	mem  wasiraptor.Memory
	sink Sink
	log  *zap.Logger
	base uint32
	busy atomic.Bool
}

// New creates a bridge writing into mem and delivering to sink.
func New(mem wasiraptor.Memory, sink Sink, opts ...Option) (*Bridge, error) {
	b := &Bridge{
		mem:  mem,
		sink: sink,
		base: wasiraptor.ReservedOffset,
	}
	for _, opt := range opts {
		opt(b)
	}

	if mem == nil {
		return nil, errors.InvalidInput(errors.PhaseBridge, "memory cannot be nil")
	}
	if sink == nil {
		return nil, errors.InvalidInput(errors.PhaseBridge, "sink cannot be nil")
	}
	if b.base == 0 {
		return nil, errors.New(errors.PhaseBridge, errors.KindInvalidInput).
			Field("base").
			Detail("offset 0 is reserved").
			Build()
	}
	if b.log == nil {
		b.log = Logger()
	}
	return b, nil
}

// BaseOffset returns the offset the level string is written to.
func (b *Bridge) BaseOffset() uint32 {
	return b.base
}

// Log writes level then message and delivers both references to the sink.
func (b *Bridge) Log(ctx context.Context, level, message string) error {
	if !b.busy.CompareAndSwap(false, true) {
		return errors.New(errors.PhaseBridge, errors.KindReentrant).
			Detail("log called while a previous call is still writing to shared memory").
			Build()
	}
	defer b.busy.Store(false)

	cursor := transcoder.NewCursor(b.mem, b.base)

	levelRef, err := cursor.WriteString(level)
	if err != nil {
		return errors.New(errors.PhaseBridge, errors.KindInvalidInput).
			Field("level").
			Detail("write level").
			Cause(err).
			Build()
	}

	messageRef, err := cursor.WriteString(message)
	if err != nil {
		return errors.New(errors.PhaseBridge, errors.KindInvalidInput).
			Field("message").
			Detail("write message").
			Cause(err).
			Build()
	}

	if ce := b.log.Check(zap.DebugLevel, "deliver"); ce != nil {
		ce.Write(
			zap.Stringer("level_ref", levelRef),
			zap.Stringer("message_ref", messageRef),
		)
	}

	return b.sink.Log(ctx, levelRef.Pack(), messageRef.Pack())
}

// Func returns the guest-facing form of Log: two strings in, nothing out.
// Any failure is unrecoverable for the calling guest and panics with the
// *errors.Error.
func (b *Bridge) Func() func(level, message string) {
	return func(level, message string) {
		if err := b.Log(context.Background(), level, message); err != nil {
			panic(err)
		}
	}
}
