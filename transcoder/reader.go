package transcoder

import (
	"unicode/utf8"

	"github.com/wippyai/wasiraptor/errors"
	"github.com/wippyai/wasiraptor/reference"
)

// ReadString decodes a packed string reference and reads its bytes from mem.
func ReadString(mem Memory, packed uint64) (string, error) {
	return ReadReference(mem, reference.Decode(packed))
}

// ReadReference reads the string described by ref from mem.
func ReadReference(mem Memory, ref reference.Reference) (string, error) {
	if ref.Kind != reference.KindString {
		return "", errors.New(errors.PhaseDecode, errors.KindTypeMismatch).
			Field("kind").
			Value(ref.Kind).
			Detail("expected %s reference, got %s", reference.KindString, ref.Kind).
			Build()
	}
	if ref.Size == 0 {
		return "", nil
	}
	if mem == nil {
		return "", errors.New(errors.PhaseRead, errors.KindNotInitialized).
			Detail("no memory to read from").
			Build()
	}

	data, err := mem.Read(ref.Offset, ref.Size)
	if err != nil {
		return "", err
	}
	if !utf8.Valid(data) {
		return "", errors.InvalidUTF8(errors.PhaseRead, ref.String(), data)
	}
	return string(data), nil
}
