package utils

import (
	"bufio"
	"io"

	"Tonecast/pkg/async"
)

// WaitEnterAsync is closed once a line has been read from r or r is
// exhausted.
func WaitEnterAsync(r io.Reader) <-chan struct{} {
	return async.Job(func() {
		bufio.NewReader(r).ReadBytes('\n')
	})
}
