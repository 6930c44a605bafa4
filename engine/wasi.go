package engine

import (
	"context"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/imports/wasi_snapshot_preview1"
)

const wasiModule = "wasi_snapshot_preview1"

// initWASI instantiates WASI preview1 once, on first use by a guest that
// imports it.
func (e *Engine) initWASI(ctx context.Context) error {
	e.wasiOnce.Do(func() {
		if e.runtime.Module(wasiModule) != nil {
			return
		}
		_, e.wasiErr = wasi_snapshot_preview1.Instantiate(ctx, e.runtime)
	})
	return e.wasiErr
}

func importsWASI(compiled wazero.CompiledModule) bool {
	for _, def := range compiled.ImportedFunctions() {
		if mod, _, ok := def.Import(); ok && mod == wasiModule {
			return true
		}
	}
	return false
}
