package memory

import (
	"github.com/tetratelabs/wazero/api"

	"github.com/wippyai/wasiraptor"
	"github.com/wippyai/wasiraptor/errors"
)

// Wrap adapts a wazero api.Memory to wasiraptor.Memory.
func Wrap(mem api.Memory) wasiraptor.Memory {
	if mem == nil {
		return nil
	}
	return &Wrapper{Mem: mem}
}

// Wrapper adapts wazero api.Memory to the wasiraptor.Memory interface.
type Wrapper struct {
	Mem api.Memory
}

// Size returns the current memory size in bytes.
func (m *Wrapper) Size() uint32 {
	return m.Mem.Size()
}

// Read returns a copy of length bytes at offset. wazero returns a view that
// aliases linear memory and is invalidated by growth, so it is copied.
func (m *Wrapper) Read(offset uint32, length uint32) ([]byte, error) {
	data, ok := m.Mem.Read(offset, length)
	if !ok {
		return nil, errors.OutOfBounds(errors.PhaseRead, uint64(offset), uint64(length), uint64(m.Mem.Size()))
	}
	out := make([]byte, len(data))
	copy(out, data)
	return out, nil
}

// Write writes bytes to memory.
func (m *Wrapper) Write(offset uint32, data []byte) error {
	if !m.Mem.Write(offset, data) {
		return errors.OutOfBounds(errors.PhaseWrite, uint64(offset), uint64(len(data)), uint64(m.Mem.Size()))
	}
	return nil
}
