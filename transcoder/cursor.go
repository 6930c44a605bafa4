package transcoder

import (
	"github.com/wippyai/wasiraptor/errors"
	"github.com/wippyai/wasiraptor/reference"
)

// Cursor places payloads back to back starting at a base offset.
// Each write lands where the previous one ended, with no gap and no overlap.
// A Cursor is not safe for concurrent use.
type Cursor struct {
	mem  Memory
	base uint64
	next uint64
}

// NewCursor returns a cursor whose first write lands at base.
func NewCursor(mem Memory, base uint32) *Cursor {
	return &Cursor{mem: mem, base: uint64(base), next: uint64(base)}
}

// WriteString places text at the current offset and advances past it.
func (c *Cursor) WriteString(text string) (reference.Reference, error) {
	ref, err := PlaceString(c.mem, c.next, text)
	if err != nil {
		return reference.Reference{}, err
	}
	c.next = ref.End()
	return ref, nil
}

// WriteStringAt places text at an explicit offset, which must not reach back
// into the region this cursor has already filled.
func (c *Cursor) WriteStringAt(offset uint64, text string) (reference.Reference, error) {
	if offset < c.next && len(text) > 0 && offset+uint64(len(text)) > c.base {
		return reference.Reference{}, errors.New(errors.PhaseWrite, errors.KindOverlap).
			Field("offset").
			Value(offset).
			Detail("range [%d, %d) overlaps placed region [%d, %d)", offset, offset+uint64(len(text)), c.base, c.next).
			Build()
	}
	ref, err := PlaceString(c.mem, offset, text)
	if err != nil {
		return reference.Reference{}, err
	}
	if end := ref.End(); end > c.next {
		c.next = end
	}
	return ref, nil
}

// Offset returns the offset the next WriteString will use.
func (c *Cursor) Offset() uint64 {
	return c.next
}

// Written returns the number of bytes between the base and the next offset.
func (c *Cursor) Written() uint64 {
	return c.next - c.base
}

// Reset rewinds the cursor to its base. Previously returned references
// become stale once their bytes are overwritten.
func (c *Cursor) Reset() {
	c.next = c.base
}
