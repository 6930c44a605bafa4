package reference

import (
	"fmt"

	"github.com/wippyai/wasiraptor/errors"
)

// Kind identifies the semantic type of a payload.
type Kind uint8

// KindString marks a UTF-8 string payload. Other values are reserved.
const KindString Kind = 5

const (
	KindBits   = 4
	OffsetBits = 32
	SizeBits   = 28

	sizeShift   = 0
	offsetShift = SizeBits
	kindShift   = SizeBits + OffsetBits

	// MaxKind is the largest tag that fits in the kind field.
	MaxKind Kind = 1<<KindBits - 1
	// MaxSize is the exclusive upper bound for a payload size.
	MaxSize uint32 = 1 << SizeBits

	sizeMask   uint64 = 1<<SizeBits - 1
	offsetMask uint64 = 1<<OffsetBits - 1
	kindMask   uint64 = 1<<KindBits - 1
)

func (k Kind) String() string {
	if k == KindString {
		return "string"
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// Reference describes a payload of Size bytes at Offset in shared memory.
// It carries no ownership of the bytes it points at.
type Reference struct {
	Kind   Kind
	Offset uint32
	Size   uint32
}

// New validates the fields and returns a Reference.
func New(kind Kind, offset uint32, size uint32) (Reference, error) {
	if kind > MaxKind {
		return Reference{}, errors.New(errors.PhaseEncode, errors.KindInvalidInput).
			Field("kind").
			Wire("u4").
			Value(kind).
			Detail("kind %d exceeds %d bits", uint8(kind), KindBits).
			Build()
	}
	if size >= MaxSize {
		return Reference{}, errors.New(errors.PhaseEncode, errors.KindOverflow).
			Field("size").
			Wire("u28").
			Value(size).
			Detail("size %d exceeds 28 bits precision %d", size, MaxSize).
			Build()
	}
	return Reference{Kind: kind, Offset: offset, Size: size}, nil
}

// Encode packs kind, offset and size into a single word.
func Encode(kind Kind, offset uint32, size uint32) (uint64, error) {
	ref, err := New(kind, offset, size)
	if err != nil {
		return 0, err
	}
	return ref.Pack(), nil
}

// MustEncode is Encode that panics with the *errors.Error on invalid input.
func MustEncode(kind Kind, offset uint32, size uint32) uint64 {
	v, err := Encode(kind, offset, size)
	if err != nil {
		panic(err)
	}
	return v
}

// Decode unpacks a word produced by Encode.
func Decode(v uint64) Reference {
	return Reference{
		Kind:   Kind((v >> kindShift) & kindMask),
		Offset: uint32((v >> offsetShift) & offsetMask),
		Size:   uint32((v >> sizeShift) & sizeMask),
	}
}

// Pack returns the wire form of r. Fields must already be in range; use New.
func (r Reference) Pack() uint64 {
	return uint64(r.Kind)<<kindShift |
		uint64(r.Offset)<<offsetShift |
		uint64(r.Size)&sizeMask
}

// End returns the offset one past the last payload byte.
func (r Reference) End() uint64 {
	return uint64(r.Offset) + uint64(r.Size)
}

func (r Reference) String() string {
	return fmt.Sprintf("%s@%d+%d", r.Kind, r.Offset, r.Size)
}
