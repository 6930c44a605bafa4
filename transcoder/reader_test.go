package transcoder

import (
	stderrors "errors"
	"testing"

	"github.com/wippyai/wasiraptor/errors"
	"github.com/wippyai/wasiraptor/memory"
	"github.com/wippyai/wasiraptor/reference"
)

func TestReadString_RoundTrip(t *testing.T) {
	arena := memory.NewArena(64)
	for _, s := range []string{"info", "", "héllo wörld", "日本語"} {
		ref, _, err := WriteString(arena, 7, s)
		if err != nil {
			t.Fatalf("WriteString(%q): %v", s, err)
		}
		got, err := ReadString(arena, ref)
		if err != nil {
			t.Fatalf("ReadString(%q): %v", s, err)
		}
		if got != s {
			t.Errorf("ReadString = %q, want %q", got, s)
		}
	}
}

func TestReadString_Errors(t *testing.T) {
	arena := memory.NewArena(8)
	_ = arena.Write(0, []byte{0xff, 0xfe, 'o', 'k'})

	tests := []struct {
		name   string
		ref    reference.Reference
		target *errors.Error
	}{
		{
			name:   "wrong kind",
			ref:    reference.Reference{Kind: 3, Offset: 2, Size: 2},
			target: &errors.Error{Phase: errors.PhaseDecode, Kind: errors.KindTypeMismatch},
		},
		{
			name:   "out of bounds",
			ref:    reference.Reference{Kind: reference.KindString, Offset: 6, Size: 4},
			target: &errors.Error{Phase: errors.PhaseRead, Kind: errors.KindOutOfBounds},
		},
		{
			name:   "invalid utf8",
			ref:    reference.Reference{Kind: reference.KindString, Offset: 0, Size: 4},
			target: &errors.Error{Phase: errors.PhaseRead, Kind: errors.KindInvalidUTF8},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadString(arena, tt.ref.Pack())
			if !stderrors.Is(err, tt.target) {
				t.Errorf("error = %v, want %v", err, tt.target)
			}
		})
	}
}

func TestReadString_EmptyNeedsNoMemory(t *testing.T) {
	got, err := ReadReference(nil, reference.Reference{Kind: reference.KindString, Offset: 99})
	if err != nil || got != "" {
		t.Errorf("got %q, %v", got, err)
	}
}
