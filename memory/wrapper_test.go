package memory

import (
	"context"
	stderrors "errors"
	"testing"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"

	"github.com/wippyai/wasiraptor/errors"
)

// memoryWASM is a minimal WASM module with 1 page of memory exported as "memory"
var memoryWASM = []byte{
	0x00, 0x61, 0x73, 0x6d, // magic
	0x01, 0x00, 0x00, 0x00, // version
	0x05, 0x03, 0x01, 0x00, 0x01, // memory section: 1 page, no max
	0x07, 0x0a, 0x01, // export section: 10 bytes, 1 export
	0x06, 0x6d, 0x65, 0x6d, 0x6f, 0x72, 0x79, // name: "memory" (6 bytes + string)
	0x02, 0x00, // kind: memory, index 0
}

func instantiateMemory(t *testing.T) api.Memory {
	t.Helper()
	ctx := context.Background()
	rt := wazero.NewRuntime(ctx)
	t.Cleanup(func() { rt.Close(ctx) })

	mod, err := rt.Instantiate(ctx, memoryWASM)
	if err != nil {
		t.Fatalf("failed to instantiate: %v", err)
	}
	return mod.ExportedMemory("memory")
}

func TestWrap_Nil(t *testing.T) {
	if mem := Wrap(nil); mem != nil {
		t.Error("expected nil for nil memory")
	}
}

func TestWrapper_ReadWrite(t *testing.T) {
	mem := Wrap(instantiateMemory(t))
	if mem.Size() != 65536 {
		t.Fatalf("Size = %d, want 65536", mem.Size())
	}

	if err := mem.Write(1, []byte("warn")); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	got, err := mem.Read(1, 4)
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if string(got) != "warn" {
		t.Errorf("Read = %q, want %q", got, "warn")
	}

	// Mutating the returned slice must not reach linear memory.
	got[0] = 'X'
	again, _ := mem.Read(1, 1)
	if again[0] != 'w' {
		t.Error("Read returned a view into linear memory")
	}
}

func TestWrapper_OutOfBounds(t *testing.T) {
	mem := Wrap(instantiateMemory(t))

	err := mem.Write(65535, []byte("ab"))
	if !stderrors.Is(err, &errors.Error{Phase: errors.PhaseWrite, Kind: errors.KindOutOfBounds}) {
		t.Errorf("Write past end: got %v", err)
	}

	_, err = mem.Read(65530, 10)
	if !stderrors.Is(err, &errors.Error{Phase: errors.PhaseRead, Kind: errors.KindOutOfBounds}) {
		t.Errorf("Read past end: got %v", err)
	}
}
