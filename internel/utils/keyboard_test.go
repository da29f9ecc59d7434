package utils

import (
	"io"
	"strings"
	"testing"
	"time"
)

func TestWaitEnterAsync(t *testing.T) {
	select {
	case <-WaitEnterAsync(strings.NewReader("go\n")):
	case <-time.After(time.Second):
		t.Fatal("expected a newline to release the wait")
	}

	r, w := io.Pipe()
	done := WaitEnterAsync(r)
	select {
	case <-done:
		t.Fatal("released before any input")
	case <-time.After(50 * time.Millisecond):
	}
	w.Write([]byte("\n"))
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("expected the newline to release the wait")
	}
}
