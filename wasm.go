package wasiraptor

// Memory represents the linear memory shared between guest and host.
// Implementations must bounds-check every access.
type Memory interface {
	Read(offset uint32, length uint32) ([]byte, error)
	Write(offset uint32, data []byte) error
	Size() uint32
}

// Host import the guest calls to deliver a log record.
const (
	ImportModule = "wasiraptor"
	ImportLog    = "log"
)

// ReservedOffset is the first byte the guest may write payloads to.
// Offset 0 is reserved by agreement between guest and host.
const ReservedOffset uint32 = 1
