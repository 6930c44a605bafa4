package engine

import (
	"github.com/wippyai/wasiraptor"
	"github.com/wippyai/wasiraptor/engine/internal/binary"
)

const (
	sectionType     = 0x01
	sectionImport   = 0x02
	sectionFunction = 0x03
	sectionMemory   = 0x05
	sectionExport   = 0x07
	sectionCode     = 0x0a

	kindFunc   = 0x00
	kindMemory = 0x02

	funcTypeByte = 0x60
	valTypeI64   = 0x7e

	opLocalGet = 0x20
	opCall     = 0x10
	opEnd      = 0x0b
)

// Exports of the synthesized guest shim.
const (
	ExportMemory = "memory"
	ExportEmit   = "emit"
)

// SynthGuest builds a core module standing in for a scripting guest.
//
// The module imports wasiraptor.log (i64, i64) -> (), defines and exports
// "memory", and exports "emit" (i64, i64) -> () which forwards both arguments
// to the import. A Go-side bridge writes into the exported memory and calls
// emit, so every delivery crosses the real import boundary.
//
// pages is the initial memory size in 64KiB pages; 0 means 1.
func SynthGuest(pages uint32) []byte {
	if pages == 0 {
		pages = 1
	}

	w := binary.NewWriter()
	w.Byte(0x00, 0x61, 0x73, 0x6d) // magic
	w.Byte(0x01, 0x00, 0x00, 0x00) // version

	// type 0: (i64, i64) -> ()
	types := binary.NewWriter()
	types.WriteU32(1)
	types.Byte(funcTypeByte)
	types.WriteU32(2)
	types.Byte(valTypeI64, valTypeI64)
	types.WriteU32(0)
	w.Section(sectionType, types)

	// func 0 imported
	imports := binary.NewWriter()
	imports.WriteU32(1)
	imports.WriteName(wasiraptor.ImportModule)
	imports.WriteName(wasiraptor.ImportLog)
	imports.Byte(kindFunc)
	imports.WriteU32(0)
	w.Section(sectionImport, imports)

	// func 1 defined
	funcs := binary.NewWriter()
	funcs.WriteU32(1)
	funcs.WriteU32(0)
	w.Section(sectionFunction, funcs)

	mems := binary.NewWriter()
	mems.WriteU32(1)
	mems.Byte(0x00) // limits: min only
	mems.WriteU32(pages)
	w.Section(sectionMemory, mems)

	exports := binary.NewWriter()
	exports.WriteU32(2)
	exports.WriteName(ExportMemory)
	exports.Byte(kindMemory)
	exports.WriteU32(0)
	exports.WriteName(ExportEmit)
	exports.Byte(kindFunc)
	exports.WriteU32(1)
	w.Section(sectionExport, exports)

	body := binary.NewWriter()
	body.WriteU32(0) // no locals
	body.Byte(opLocalGet, 0x00)
	body.Byte(opLocalGet, 0x01)
	body.Byte(opCall, 0x00)
	body.Byte(opEnd)

	code := binary.NewWriter()
	code.WriteU32(1)
	code.WriteU32(uint32(body.Len()))
	code.Byte(body.Bytes()...)
	w.Section(sectionCode, code)

	return w.Bytes()
}
