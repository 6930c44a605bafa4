// Package bridge implements the guest side of the logging call.
//
// A Bridge takes a severity level and a message, writes them back to back into
// shared memory starting at a reserved offset, and hands the two packed
// references to a host Sink in one one-way call:
//
//	base        base+len(level)
//	 │           │
//	 ▼           ▼
//	┌───────────┬───────────────────┐
//	│  level    │     message       │
//	└───────────┴───────────────────┘
//	sink.Log(ctx, levelRef, messageRef)
//
// The sink is called only after both writes succeed, so a failure part way
// leaves bytes in memory but never transmits a reference to them.
package bridge
