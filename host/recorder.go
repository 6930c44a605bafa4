package host

import (
	"io"
	"sync"

	"github.com/fxamacker/cbor/v2"

	"github.com/wippyai/wasiraptor/errors"
)

// Recorder is a concurrency-safe journal of delivered entries.
type Recorder struct {
	entries []Entry
	limit   int
	mu      sync.Mutex
}

// NewRecorder keeps at most limit entries, dropping the oldest.
// A limit of 0 keeps everything.
func NewRecorder(limit int) *Recorder {
	return &Recorder{limit: limit}
}

// Add appends an entry.
func (r *Recorder) Add(e Entry) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.entries = append(r.entries, e)
	if r.limit > 0 && len(r.entries) > r.limit {
		r.entries = append(r.entries[:0], r.entries[len(r.entries)-r.limit:]...)
	}
}

// Entries returns a copy of the journal.
func (r *Recorder) Entries() []Entry {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]Entry, len(r.entries))
	copy(out, r.entries)
	return out
}

// Len returns the number of entries held.
func (r *Recorder) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

// WriteCBOR encodes the journal as a CBOR array.
func (r *Recorder) WriteCBOR(w io.Writer) error {
	if err := cbor.NewEncoder(w).Encode(r.Entries()); err != nil {
		return errors.Wrap(errors.PhaseHost, errors.KindInvalidInput, err, "encode journal")
	}
	return nil
}

// ReadCBOR decodes a journal written by WriteCBOR.
func ReadCBOR(rd io.Reader) ([]Entry, error) {
	var entries []Entry
	if err := cbor.NewDecoder(rd).Decode(&entries); err != nil {
		return nil, errors.Wrap(errors.PhaseHost, errors.KindInvalidInput, err, "decode journal")
	}
	return entries, nil
}
