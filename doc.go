// Package wasiraptor hands strings from a guest to a host through one shared
// linear memory, describing each payload with a packed 64-bit reference.
//
// # Reference Layout
//
// A reference packs three fields into a single uint64, most significant first:
//
//	┌──────────┬────────────────────┬──────────────────┐
//	│ kind : 4 │    offset : 32     │    size : 28     │
//	└──────────┴────────────────────┴──────────────────┘
//	 63     60  59               28  27               0
//
// Kind 5 is a UTF-8 string. Sizes at or above 2^28 are rejected, never wrapped.
//
// # Architecture Overview
//
//	wasiraptor/          Root package with the Memory interface and import names
//	├── reference/       Reference codec (pack and unpack)
//	├── memory/          Bounds-checked arena and wazero memory adapter
//	├── transcoder/      Sequential string writer and reference reader
//	├── bridge/          Logger bridge: two writes then one host call
//	├── host/            Receiving side: decode, map level, emit via zap
//	├── engine/          wazero runtime, host module and synthesized guest shim
//	├── intrinsics/      Explicit registration of guest globals
//	├── config/          YAML configuration
//	├── errors/          Structured error types
//	└── cmd/raptor/      Command line and interactive console
//
// # Quick Start
//
//	ctx := context.Background()
//	eng, err := engine.New(ctx, nil)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer eng.Close(ctx)
//
//	guest, err := eng.NewGuest(ctx, "guest")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	b, err := bridge.New(guest.Memory(), guest.Sink())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	err = b.Log(ctx, "warn", "disk low")
//
// # Concurrency
//
// The guest is single threaded. A bridge writes both strings and then makes one
// one-way call; the host reads only after that call, so no locking is needed.
// A bridge rejects reentrant use instead of racing on the shared region.
package wasiraptor
