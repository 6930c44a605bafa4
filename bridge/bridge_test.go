package bridge

import (
	"context"
	stderrors "errors"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/wippyai/wasiraptor/errors"
	"github.com/wippyai/wasiraptor/memory"
	"github.com/wippyai/wasiraptor/reference"
)

type call struct {
	level, message uint64
}

type recordingSink struct {
	calls []call
	err   error
}

func (s *recordingSink) Log(_ context.Context, levelRef, messageRef uint64) error {
	s.calls = append(s.calls, call{levelRef, messageRef})
	return s.err
}

func TestBridge_WarnDiskLow(t *testing.T) {
	arena := memory.NewArena(64)
	sink := &recordingSink{}

	b, err := New(arena, sink)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if err := b.Log(context.Background(), "warn", "disk low"); err != nil {
		t.Fatalf("Log failed: %v", err)
	}

	if len(sink.calls) != 1 {
		t.Fatalf("sink called %d times, want 1", len(sink.calls))
	}

	level := reference.Decode(sink.calls[0].level)
	message := reference.Decode(sink.calls[0].message)

	if level != (reference.Reference{Kind: reference.KindString, Offset: 1, Size: 4}) {
		t.Errorf("level ref = %+v", level)
	}
	if message != (reference.Reference{Kind: reference.KindString, Offset: 5, Size: 8}) {
		t.Errorf("message ref = %+v", message)
	}
	if got := string(arena.Bytes()[1:13]); got != "warndisk low" {
		t.Errorf("memory = %q", got)
	}
}

func TestBridge_CustomBase(t *testing.T) {
	sink := &recordingSink{}
	b, err := New(memory.NewArena(64), sink, WithBaseOffset(32))
	if err != nil {
		t.Fatal(err)
	}
	if b.BaseOffset() != 32 {
		t.Errorf("BaseOffset = %d", b.BaseOffset())
	}
	if err := b.Log(context.Background(), "", "x"); err != nil {
		t.Fatal(err)
	}
	if m := reference.Decode(sink.calls[0].message); m.Offset != 32 || m.Size != 1 {
		t.Errorf("message ref = %+v", m)
	}
}

func TestBridge_Repeated(t *testing.T) {
	arena := memory.NewArena(64)
	sink := &recordingSink{}
	b, _ := New(arena, sink)

	ctx := context.Background()
	_ = b.Log(ctx, "info", "first message")
	_ = b.Log(ctx, "error", "second")

	if len(sink.calls) != 2 {
		t.Fatalf("calls = %d", len(sink.calls))
	}
	// Each call starts again at the reserved offset.
	if l := reference.Decode(sink.calls[1].level); l.Offset != 1 || l.Size != 5 {
		t.Errorf("second level ref = %+v", l)
	}
	if m := reference.Decode(sink.calls[1].message); m.Offset != 6 || m.Size != 6 {
		t.Errorf("second message ref = %+v", m)
	}
}

func TestNew_Validation(t *testing.T) {
	arena := memory.NewArena(8)
	sink := &recordingSink{}

	tests := []struct {
		name string
		fn   func() (*Bridge, error)
	}{
		{"nil memory", func() (*Bridge, error) { return New(nil, sink) }},
		{"nil sink", func() (*Bridge, error) { return New(arena, nil) }},
		{"zero base", func() (*Bridge, error) { return New(arena, sink, WithBaseOffset(0)) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := tt.fn()
			if b != nil {
				t.Error("expected nil bridge")
			}
			if !stderrors.Is(err, &errors.Error{Phase: errors.PhaseBridge, Kind: errors.KindInvalidInput}) {
				t.Errorf("error = %v", err)
			}
		})
	}
}

func TestBridge_FailureTransmitsNothing(t *testing.T) {
	sink := &recordingSink{}
	b, _ := New(memory.NewArena(10), sink)

	// Level fits, message runs past the end of memory.
	err := b.Log(context.Background(), "warn", "this is far too long")
	if !stderrors.Is(err, &errors.Error{Phase: errors.PhaseWrite, Kind: errors.KindOutOfBounds}) {
		t.Fatalf("error = %v", err)
	}
	var be *errors.Error
	if !stderrors.As(err, &be) || be.Field != "message" {
		t.Errorf("expected error on message, got %v", err)
	}
	if len(sink.calls) != 0 {
		t.Errorf("sink called %d times after failed write", len(sink.calls))
	}
}

func TestBridge_SinkErrorPropagates(t *testing.T) {
	want := stderrors.New("host gone")
	b, _ := New(memory.NewArena(16), &recordingSink{err: want})

	if err := b.Log(context.Background(), "info", "x"); !stderrors.Is(err, want) {
		t.Errorf("error = %v, want %v", err, want)
	}
}

func TestBridge_RejectsReentrantCall(t *testing.T) {
	arena := memory.NewArena(64)
	var b *Bridge
	var inner error
	sink := SinkFunc(func(ctx context.Context, _, _ uint64) error {
		inner = b.Log(ctx, "debug", "nested")
		return nil
	})
	b, _ = New(arena, sink)

	if err := b.Log(context.Background(), "warn", "outer"); err != nil {
		t.Fatalf("outer Log failed: %v", err)
	}
	if !stderrors.Is(inner, &errors.Error{Phase: errors.PhaseBridge, Kind: errors.KindReentrant}) {
		t.Errorf("nested Log error = %v", inner)
	}
	// The outer payload must be intact.
	if got := string(arena.Bytes()[1:10]); got != "warnouter" {
		t.Errorf("memory = %q", got)
	}
	// The guard is released afterwards.
	if err := b.Log(context.Background(), "info", "after"); err != nil {
		t.Errorf("Log after nested call failed: %v", err)
	}
}

func TestBridge_FuncPanics(t *testing.T) {
	b, _ := New(memory.NewArena(4), &recordingSink{})
	fn := b.Func()

	defer func() {
		r := recover()
		err, ok := r.(*errors.Error)
		if !ok {
			t.Fatalf("panic value = %#v", r)
		}
		if !strings.Contains(err.Error(), "out_of_bounds") {
			t.Errorf("panic error = %v", err)
		}
	}()
	fn("warn", "disk low")
}

func TestBridge_DebugLogging(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	b, _ := New(memory.NewArena(32), &recordingSink{}, WithLogger(zap.New(core)))

	_ = b.Log(context.Background(), "warn", "disk low")

	entries := logs.FilterMessage("deliver").All()
	if len(entries) != 1 {
		t.Fatalf("deliver entries = %d", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["level_ref"] != "string@1+4" || fields["message_ref"] != "string@5+8" {
		t.Errorf("fields = %v", fields)
	}
}
