package transcoder

import (
	"math"

	"github.com/wippyai/wasiraptor"
	"github.com/wippyai/wasiraptor/errors"
	"github.com/wippyai/wasiraptor/reference"
)

type Memory = wasiraptor.Memory

// WriteString copies text to mem at offset and returns the packed string
// reference and the number of bytes written.
//
// The caller guarantees [offset, offset+len(text)) does not hold another
// live payload; use Cursor to have that checked.
func WriteString(mem Memory, offset uint64, text string) (uint64, uint32, error) {
	ref, err := PlaceString(mem, offset, text)
	if err != nil {
		return 0, 0, err
	}
	return ref.Pack(), ref.Size, nil
}

// PlaceString is WriteString returning the unpacked reference.
func PlaceString(mem Memory, offset uint64, text string) (reference.Reference, error) {
	size, err := lengthU32(len(text))
	if err != nil {
		return reference.Reference{}, err
	}
	off, err := offsetU32(offset, size)
	if err != nil {
		return reference.Reference{}, err
	}

	ref, err := reference.New(reference.KindString, off, size)
	if err != nil {
		return reference.Reference{}, err
	}

	if size == 0 {
		return ref, nil
	}
	if mem == nil {
		return reference.Reference{}, errors.New(errors.PhaseWrite, errors.KindNotInitialized).
			Detail("no memory to write to").
			Build()
	}
	if err := mem.Write(off, []byte(text)); err != nil {
		return reference.Reference{}, err
	}
	return ref, nil
}

// lengthU32 converts a byte length to the width used for bytes written.
// Lengths that do not fit are an error; they are never reported as zero.
func lengthU32(n int) (uint32, error) {
	if n < 0 || uint64(n) > math.MaxUint32 {
		return 0, errors.New(errors.PhaseWrite, errors.KindOverflow).
			Field("length").
			Wire("u32").
			Value(n).
			Detail("string length %d is not representable in 32 bits", n).
			Build()
	}
	return uint32(n), nil
}

// offsetU32 checks that the whole range [offset, offset+size) is addressable
// with 32-bit offsets.
func offsetU32(offset uint64, size uint32) (uint32, error) {
	if offset > math.MaxUint32 || offset+uint64(size) > math.MaxUint32+1 {
		return 0, errors.New(errors.PhaseWrite, errors.KindOverflow).
			Field("offset").
			Wire("u32").
			Value(offset).
			Detail("range [%d, %d) exceeds the 32-bit address space", offset, offset+uint64(size)).
			Build()
	}
	return uint32(offset), nil
}
