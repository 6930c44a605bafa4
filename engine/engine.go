package engine

import (
	"context"
	"io"
	"sync"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"
	"go.uber.org/zap"

	"github.com/wippyai/wasiraptor"
	"github.com/wippyai/wasiraptor/errors"
	"github.com/wippyai/wasiraptor/host"
	"github.com/wippyai/wasiraptor/memory"
)

// Config holds configuration for engine creation
type Config struct {
	// Output receives the records guests deliver. nil discards them.
	Output *zap.Logger

	// Recorder, when set, journals every delivered record.
	Recorder *host.Recorder

	// Stdout and Stderr are wired to WASI guests. nil discards.
	Stdout io.Writer
	Stderr io.Writer

	// MemoryLimitPages sets the maximum memory per instance in pages (64KB each).
	// 0 means the wazero default.
	MemoryLimitPages uint32

	// GuestPages is the initial memory of synthesized guests in pages.
	// 0 means 1 page.
	GuestPages uint32
}

// Engine owns a wazero runtime with the wasiraptor host module bound.
type Engine struct {
	runtime  wazero.Runtime
	host     *host.Logger
	cfg      Config
	wasiOnce sync.Once
	wasiErr  error
}

// New creates an engine and instantiates the host module.
func New(ctx context.Context, cfg *Config) (*Engine, error) {
	var c Config
	if cfg != nil {
		c = *cfg
	}

	runtimeCfg := wazero.NewRuntimeConfig()
	if c.MemoryLimitPages > 0 {
		runtimeCfg = runtimeCfg.WithMemoryLimitPages(c.MemoryLimitPages)
	}

	var opts []host.LoggerOption
	if c.Recorder != nil {
		opts = append(opts, host.WithRecorder(c.Recorder))
	}

	e := &Engine{
		runtime: wazero.NewRuntimeWithConfig(ctx, runtimeCfg),
		host:    host.NewLogger(c.Output, opts...),
		cfg:     c,
	}

	if err := e.instantiateHost(ctx); err != nil {
		_ = e.runtime.Close(ctx)
		return nil, errors.Load("instantiate host module", err)
	}
	return e, nil
}

// Close releases the runtime and every module instantiated in it.
func (e *Engine) Close(ctx context.Context) error {
	return e.runtime.Close(ctx)
}

// Host returns the receiving logger bound to the import.
func (e *Engine) Host() *host.Logger {
	return e.host
}

// Runtime exposes the underlying wazero runtime.
func (e *Engine) Runtime() wazero.Runtime {
	return e.runtime
}

func (e *Engine) instantiateHost(ctx context.Context) error {
	_, err := e.runtime.NewHostModuleBuilder(wasiraptor.ImportModule).
		NewFunctionBuilder().
		WithGoModuleFunction(api.GoModuleFunc(e.handleLog),
			[]api.ValueType{api.ValueTypeI64, api.ValueTypeI64}, nil).
		WithParameterNames("level", "message").
		Export(wasiraptor.ImportLog).
		Instantiate(ctx)
	return err
}

// handleLog services wasiraptor.log. A reference that does not decode against
// the caller's memory traps the guest call; it is never skipped.
func (e *Engine) handleLog(ctx context.Context, mod api.Module, stack []uint64) {
	mem := memory.Wrap(mod.Memory())
	if mem == nil {
		panic(errors.New(errors.PhaseHost, errors.KindNotInitialized).
			Field(mod.Name()).
			Detail("calling module has no memory").
			Build())
	}

	if _, err := e.host.Deliver(ctx, mem, mod.Name(), stack[0], stack[1]); err != nil {
		Logger().Debug("log import trapped",
			zap.String("module", mod.Name()),
			zap.Error(err))
		panic(err)
	}
}
