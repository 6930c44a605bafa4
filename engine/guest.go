package engine

import (
	"context"
	stderrors "errors"
	"io"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"
	"github.com/tetratelabs/wazero/sys"
	"go.uber.org/zap"

	"github.com/wippyai/wasiraptor"
	"github.com/wippyai/wasiraptor/bridge"
	"github.com/wippyai/wasiraptor/errors"
	"github.com/wippyai/wasiraptor/memory"
)

// Guest is an instantiated guest module. It is not safe for concurrent use:
// the guest model is single threaded.
type Guest struct {
	module api.Module
	memory wasiraptor.Memory
	emit   api.Function
}

// NewGuest instantiates a synthesized guest shim under name.
func (e *Engine) NewGuest(ctx context.Context, name string) (*Guest, error) {
	compiled, err := e.runtime.CompileModule(ctx, SynthGuest(e.cfg.GuestPages))
	if err != nil {
		return nil, errors.Load("compile guest shim", err)
	}

	mod, err := e.runtime.InstantiateModule(ctx, compiled, wazero.NewModuleConfig().WithName(name))
	if err != nil {
		return nil, errors.Load("instantiate guest shim", err)
	}

	g := &Guest{
		module: mod,
		memory: memory.Wrap(mod.ExportedMemory(ExportMemory)),
		emit:   mod.ExportedFunction(ExportEmit),
	}
	Logger().Debug("guest instantiated",
		zap.String("name", name),
		zap.Uint32("memory_bytes", g.memory.Size()))
	return g, nil
}

// Name returns the instance name.
func (g *Guest) Name() string {
	return g.module.Name()
}

// Memory returns the guest's exported linear memory.
func (g *Guest) Memory() wasiraptor.Memory {
	return g.memory
}

// Sink returns a bridge.Sink that calls the guest's emit export, which in
// turn calls the host import.
func (g *Guest) Sink() bridge.Sink {
	return bridge.SinkFunc(func(ctx context.Context, levelRef, messageRef uint64) error {
		if _, err := g.emit.Call(ctx, levelRef, messageRef); err != nil {
			return errors.New(errors.PhaseRuntime, errors.KindInvalidInput).
				Field(ExportEmit).
				Detail("guest call trapped").
				Cause(err).
				Build()
		}
		return nil
	})
}

// Bridge returns a logger bridge over the guest's memory and import.
func (g *Guest) Bridge(opts ...bridge.Option) (*bridge.Bridge, error) {
	return bridge.New(g.memory, g.Sink(), opts...)
}

// Close releases the instance.
func (g *Guest) Close(ctx context.Context) error {
	return g.module.Close(ctx)
}

// Run compiles and instantiates a guest binary that imports wasiraptor.log,
// then calls entry. An empty entry means "_start". A WASI exit with status
// 0 counts as success.
func (e *Engine) Run(ctx context.Context, name string, wasm []byte, entry string) error {
	if entry == "" {
		entry = "_start"
	}

	compiled, err := e.runtime.CompileModule(ctx, wasm)
	if err != nil {
		return errors.Load("compile guest", err)
	}
	defer compiled.Close(ctx)

	if importsWASI(compiled) {
		if err := e.initWASI(ctx); err != nil {
			return errors.Load("instantiate WASI", err)
		}
	}

	modCfg := wazero.NewModuleConfig().
		WithName(name).
		WithStartFunctions().
		WithStdout(writerOrDiscard(e.cfg.Stdout)).
		WithStderr(writerOrDiscard(e.cfg.Stderr))

	mod, err := e.runtime.InstantiateModule(ctx, compiled, modCfg)
	if err != nil {
		return errors.Load("instantiate guest", err)
	}
	defer mod.Close(ctx)

	fn := mod.ExportedFunction(entry)
	if fn == nil {
		return errors.NotFound(errors.PhaseRuntime, "export", entry)
	}

	if _, err := fn.Call(ctx); err != nil {
		var exit *sys.ExitError
		if stderrors.As(err, &exit) && exit.ExitCode() == 0 {
			return nil
		}
		return errors.Wrap(errors.PhaseRuntime, errors.KindInvalidInput, err, "call "+entry)
	}
	return nil
}

func writerOrDiscard(w io.Writer) io.Writer {
	if w == nil {
		return io.Discard
	}
	return w
}
