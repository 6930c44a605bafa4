// Package host implements the receiving side of the logging import.
//
// The host gets two packed references, decodes them with the reference
// layout, reads both strings from the guest's memory and emits one structured
// log record. Level strings are free-form on the guest side and are mapped
// onto zap levels:
//
//	trace, debug          Debug
//	info, log, (unknown)  Info
//	warn, warning         Warn
//	error                 Error
//	fatal, critical       Error, with fatal=true
//
// Unknown levels are logged at Info and keep the raw string in the
// guest_level field. A guest can never terminate the host process.
//
// Recorder keeps a journal of delivered entries that can be exported as CBOR.
package host
