package device

import (
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestSoxMissingCommand(t *testing.T) {
	sink := &Sox{Command: "tonecast-no-such-player"}
	err := sink.Open(MonoS16(44100))
	assert.ErrorIs(t, err, ErrDeviceUnavailable)
	assert.NoError(t, sink.Close())
}

func TestSoxArgs(t *testing.T) {
	sink := &Sox{Args: []string{"-d"}}
	assert.Equal(t,
		[]string{"-q", "-d", "-t", "raw", "-r", "44100", "-e", "signed", "-b", "16", "-c", "1", "-L", "-"},
		sink.args(MonoS16(44100)))
}

func TestSoxPipe(t *testing.T) {
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}

	// stand in for play: swallow stdin, ignore the sox arguments
	sink := &Sox{
		Command: "sh",
		Args:    []string{"-c", "cat > /dev/null", "sh"},
		Logger:  zaptest.NewLogger(t),
	}
	require.NoError(t, sink.Open(MonoS16(8000)))
	require.NoError(t, sink.Start())

	n, err := sink.Write(make([]byte, 4096))
	require.NoError(t, err)
	assert.Equal(t, 4096, n)

	require.NoError(t, sink.Drain())
	require.NoError(t, sink.Close())
}

func TestSoxNotStarted(t *testing.T) {
	sink := &Sox{}
	_, err := sink.Write([]byte{0, 0})
	assert.ErrorIs(t, err, ErrNotOpen)
	assert.ErrorIs(t, sink.Drain(), ErrNotOpen)
	assert.ErrorIs(t, sink.Start(), ErrNotOpen)
}

func TestSoxOpenWithoutStart(t *testing.T) {
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}
	sink := &Sox{Command: "sh"}
	require.NoError(t, sink.Open(MonoS16(8000)))
	// the pipe only exists once the player runs
	assert.Nil(t, sink.stdin)
	assert.NoError(t, sink.Close())
	assert.ErrorIs(t, sink.Start(), ErrNotOpen)
}

func TestSoxStartFailure(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("relies on unix permissions")
	}
	path := filepath.Join(t.TempDir(), "player")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\ncat > /dev/null\n"), 0o755))

	sink := &Sox{Command: path}
	require.NoError(t, sink.Open(MonoS16(8000)))
	require.NoError(t, os.Chmod(path, 0o644))

	assert.ErrorIs(t, sink.Start(), ErrDeviceUnavailable)
	assert.Nil(t, sink.stdin)
	_, err := sink.Write([]byte{0, 0})
	assert.ErrorIs(t, err, ErrNotOpen)
	assert.NoError(t, sink.Close())
}

func TestSoxCloseKillsPlayer(t *testing.T) {
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}
	sink := &Sox{Command: "sh", Args: []string{"-c", "exec sleep 30", "sh"}}
	require.NoError(t, sink.Open(MonoS16(8000)))
	require.NoError(t, sink.Start())

	start := time.Now()
	assert.NoError(t, sink.Close())
	assert.Less(t, time.Since(start), 10*time.Second)
	assert.NoError(t, sink.Close())
}
