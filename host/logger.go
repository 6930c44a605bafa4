package host

import (
	"context"

	"go.uber.org/zap"

	"github.com/wippyai/wasiraptor"
	"github.com/wippyai/wasiraptor/bridge"
	"github.com/wippyai/wasiraptor/errors"
	"github.com/wippyai/wasiraptor/reference"
	"github.com/wippyai/wasiraptor/transcoder"
)

// Entry is one delivered log record.
type Entry struct {
	Level      string              `cbor:"1,keyasint"`
	Message    string              `cbor:"2,keyasint"`
	LevelRef   reference.Reference `cbor:"3,keyasint"`
	MessageRef reference.Reference `cbor:"4,keyasint"`
	Guest      string              `cbor:"5,keyasint,omitempty"`
}

// Logger decodes delivered references and writes them to a zap logger.
type Logger struct {
	log      *zap.Logger
	recorder *Recorder
}

// LoggerOption configures a Logger.
type LoggerOption func(*Logger)

// WithRecorder journals every delivered entry.
func WithRecorder(r *Recorder) LoggerOption {
	return func(l *Logger) {
		l.recorder = r
	}
}

// NewLogger creates a Logger writing to log. A nil log discards output.
func NewLogger(log *zap.Logger, opts ...LoggerOption) *Logger {
	if log == nil {
		log = zap.NewNop()
	}
	l := &Logger{log: log}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Deliver reads both strings from mem and emits the record.
// guest names the calling instance and may be empty.
func (l *Logger) Deliver(_ context.Context, mem wasiraptor.Memory, guest string, levelRef, messageRef uint64) (Entry, error) {
	entry := Entry{
		LevelRef:   reference.Decode(levelRef),
		MessageRef: reference.Decode(messageRef),
		Guest:      guest,
	}

	var err error
	if entry.Level, err = transcoder.ReadReference(mem, entry.LevelRef); err != nil {
		return Entry{}, errors.New(errors.PhaseHost, errors.KindInvalidInput).
			Field("level").
			Detail("read level %s", entry.LevelRef).
			Cause(err).
			Build()
	}
	if entry.Message, err = transcoder.ReadReference(mem, entry.MessageRef); err != nil {
		return Entry{}, errors.New(errors.PhaseHost, errors.KindInvalidInput).
			Field("message").
			Detail("read message %s", entry.MessageRef).
			Cause(err).
			Build()
	}

	l.emit(entry)
	if l.recorder != nil {
		l.recorder.Add(entry)
	}
	return entry, nil
}

func (l *Logger) emit(e Entry) {
	lvl, fatal, known := MapLevel(e.Level)
	ce := l.log.Check(lvl, e.Message)
	if ce == nil {
		return
	}

	fields := make([]zap.Field, 0, 3)
	if e.Guest != "" {
		fields = append(fields, zap.String("guest", e.Guest))
	}
	if !known {
		fields = append(fields, zap.String("guest_level", e.Level))
	}
	if fatal {
		fields = append(fields, zap.Bool("fatal", true))
	}
	ce.Write(fields...)
}

// Bind returns a bridge.Sink that delivers against mem. It serves hosts that
// share a Go-side memory with the guest instead of crossing a wasm boundary.
func (l *Logger) Bind(mem wasiraptor.Memory, guest string) bridge.Sink {
	return bridge.SinkFunc(func(ctx context.Context, levelRef, messageRef uint64) error {
		_, err := l.Deliver(ctx, mem, guest, levelRef, messageRef)
		return err
	})
}
