package device

import (
	"errors"
	"fmt"
)

var errInjected = errors.New("injected failure")

// Recorder is an in-memory Sink that keeps every write as a separate chunk.
// It can be told to fail the open or a given write.
type Recorder struct {
	// FailOpen makes Open fail with ErrDeviceUnavailable.
	FailOpen bool
	// FailWriteAt makes the n-th write (1-based) fail. Zero never fails.
	FailWriteAt int
	// ShortWriteAt makes the n-th write accept only half of the chunk.
	ShortWriteAt int

	Format  Format
	Chunks  [][]byte
	Started bool
	Drains  int
	Closes  int

	opened bool
	writes int
}

func (r *Recorder) Open(format Format) error {
	if r.FailOpen {
		return fmt.Errorf("%w: %w", ErrDeviceUnavailable, errInjected)
	}
	r.Format = format
	r.opened = true
	return nil
}

func (r *Recorder) Start() error {
	if !r.opened {
		return ErrNotOpen
	}
	r.Started = true
	return nil
}

func (r *Recorder) Write(p []byte) (int, error) {
	if !r.opened {
		return 0, ErrNotOpen
	}
	r.writes++
	if r.writes == r.FailWriteAt {
		return 0, errInjected
	}
	n := len(p)
	if r.writes == r.ShortWriteAt {
		n /= 2
	}
	chunk := make([]byte, n)
	copy(chunk, p)
	r.Chunks = append(r.Chunks, chunk)
	return n, nil
}

func (r *Recorder) Drain() error {
	if !r.opened {
		return ErrNotOpen
	}
	r.Drains++
	return nil
}

func (r *Recorder) Close() error {
	r.Closes++
	r.opened = false
	return nil
}

// Writes is the number of Write calls seen, failed ones included.
func (r *Recorder) Writes() int {
	return r.writes
}

// Bytes concatenates every recorded chunk.
func (r *Recorder) Bytes() []byte {
	var out []byte
	for _, c := range r.Chunks {
		out = append(out, c...)
	}
	return out
}
