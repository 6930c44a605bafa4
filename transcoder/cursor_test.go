package transcoder

import (
	stderrors "errors"
	"testing"

	"github.com/wippyai/wasiraptor/errors"
	"github.com/wippyai/wasiraptor/memory"
	"github.com/wippyai/wasiraptor/reference"
)

func TestCursor_BackToBack(t *testing.T) {
	arena := memory.NewArena(32)
	c := NewCursor(arena, 1)

	words := []string{"warn", "", "disk low", "!"}
	var refs []reference.Reference
	for _, w := range words {
		ref, err := c.WriteString(w)
		if err != nil {
			t.Fatalf("WriteString(%q): %v", w, err)
		}
		refs = append(refs, ref)
	}

	wantOffsets := []uint32{1, 5, 5, 13}
	for i, ref := range refs {
		if ref.Offset != wantOffsets[i] {
			t.Errorf("ref[%d].Offset = %d, want %d", i, ref.Offset, wantOffsets[i])
		}
		if ref.Size != uint32(len(words[i])) {
			t.Errorf("ref[%d].Size = %d, want %d", i, ref.Size, len(words[i]))
		}
	}
	if c.Offset() != 14 || c.Written() != 13 {
		t.Errorf("Offset=%d Written=%d", c.Offset(), c.Written())
	}
	if got := string(arena.Bytes()[1:14]); got != "warndisk low!" {
		t.Errorf("memory = %q", got)
	}
}

func TestCursor_WriteStringAtRejectsOverlap(t *testing.T) {
	c := NewCursor(memory.NewArena(32), 4)
	if _, err := c.WriteString("abcd"); err != nil {
		t.Fatal(err)
	}

	overlap := &errors.Error{Phase: errors.PhaseWrite, Kind: errors.KindOverlap}
	for _, off := range []uint64{4, 6, 7, 2} {
		if _, err := c.WriteStringAt(off, "xyz"); !stderrors.Is(err, overlap) {
			t.Errorf("WriteStringAt(%d): got %v, want overlap", off, err)
		}
	}

	// Ending exactly at the base and starting exactly at the end are fine.
	if _, err := c.WriteStringAt(1, "xyz"); err != nil {
		t.Errorf("adjacent below base: %v", err)
	}
	ref, err := c.WriteStringAt(10, "gap")
	if err != nil {
		t.Fatalf("write past end: %v", err)
	}
	if ref.Offset != 10 || c.Offset() != 13 {
		t.Errorf("ref=%v next=%d", ref, c.Offset())
	}
}

func TestCursor_ErrorDoesNotAdvance(t *testing.T) {
	c := NewCursor(memory.NewArena(6), 1)
	if _, err := c.WriteString("abc"); err != nil {
		t.Fatal(err)
	}
	if _, err := c.WriteString("toolong"); err == nil {
		t.Fatal("expected out of bounds")
	}
	if c.Offset() != 4 {
		t.Errorf("Offset = %d after failed write, want 4", c.Offset())
	}
}

func TestCursor_Reset(t *testing.T) {
	c := NewCursor(memory.NewArena(8), 1)
	_, _ = c.WriteString("abc")
	c.Reset()
	if c.Offset() != 1 || c.Written() != 0 {
		t.Errorf("Offset=%d Written=%d after Reset", c.Offset(), c.Written())
	}
	ref, err := c.WriteString("z")
	if err != nil || ref.Offset != 1 {
		t.Errorf("ref=%v err=%v", ref, err)
	}
}
