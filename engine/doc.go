// Package engine binds the wasiraptor host import into a wazero runtime.
//
// New instantiates a host module named "wasiraptor" exporting
//
//	log(level: i64, message: i64)
//
// Each argument is a packed string reference into the calling instance's
// memory. The handler decodes both, reads the bytes and hands the record to a
// host.Logger. A reference that fails to decode traps the guest call.
//
// Two kinds of guests run against it:
//
//	NewGuest   a synthesized shim exporting memory and emit(i64, i64); Go code
//	           drives a bridge.Bridge over its memory and the call crosses the
//	           real import
//	Run        any compiled guest binary importing wasiraptor.log, started at
//	           an entry export (WASI preview1 is provided on demand)
package engine
