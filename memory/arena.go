package memory

import (
	"github.com/wippyai/wasiraptor"
	"github.com/wippyai/wasiraptor/errors"
)

var _ wasiraptor.Memory = (*Arena)(nil)

// Arena is a fixed-size byte region indexed by offset.
type Arena struct {
	buf []byte
}

// NewArena allocates a zeroed arena of size bytes.
func NewArena(size uint32) *Arena {
	return &Arena{buf: make([]byte, size)}
}

// Size returns the arena size in bytes.
func (a *Arena) Size() uint32 {
	return uint32(len(a.buf))
}

// Read returns a copy of length bytes at offset.
func (a *Arena) Read(offset uint32, length uint32) ([]byte, error) {
	if err := a.check(errors.PhaseRead, offset, length); err != nil {
		return nil, err
	}
	out := make([]byte, length)
	copy(out, a.buf[offset:])
	return out, nil
}

// Write copies data to offset.
func (a *Arena) Write(offset uint32, data []byte) error {
	if uint64(len(data)) > uint64(^uint32(0)) {
		return errors.OutOfBounds(errors.PhaseWrite, uint64(offset), uint64(len(data)), uint64(len(a.buf)))
	}
	if err := a.check(errors.PhaseWrite, offset, uint32(len(data))); err != nil {
		return err
	}
	copy(a.buf[offset:], data)
	return nil
}

// Bytes returns a copy of the whole arena.
func (a *Arena) Bytes() []byte {
	out := make([]byte, len(a.buf))
	copy(out, a.buf)
	return out
}

// Zero clears length bytes at offset.
func (a *Arena) Zero(offset uint32, length uint32) error {
	if err := a.check(errors.PhaseWrite, offset, length); err != nil {
		return err
	}
	clear(a.buf[offset : uint64(offset)+uint64(length)])
	return nil
}

func (a *Arena) check(phase errors.Phase, offset uint32, length uint32) error {
	if uint64(offset)+uint64(length) > uint64(len(a.buf)) {
		return errors.OutOfBounds(phase, uint64(offset), uint64(length), uint64(len(a.buf)))
	}
	return nil
}
