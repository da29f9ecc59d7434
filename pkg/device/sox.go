package device

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strconv"

	"Tonecast/pkg/async"

	"go.uber.org/zap"
)

// Sox streams raw PCM into the stdin of SoX's play command. Pipe writes
// block once the child stops reading, which gives the same backpressure
// as a sound card buffer.
type Sox struct {
	// Command defaults to "play".
	Command string
	// Args are extra arguments placed before the input options, for
	// example an output device.
	Args   []string
	Logger *zap.Logger

	cmd    *exec.Cmd
	stdin  io.WriteCloser
	stderr bytes.Buffer
	exited <-chan error
	format Format
}

func (s *Sox) args(format Format) []string {
	var args []string
	if s.Command == "" {
		args = append(args, "-q")
	}
	args = append(args, s.Args...)
	return append(args,
		"-t", "raw",
		"-r", strconv.FormatFloat(format.SampleRate, 'f', -1, 64),
		"-e", "signed",
		"-b", strconv.Itoa(format.BitsPerSample),
		"-c", strconv.Itoa(format.Channels),
		"-L",
		"-",
	)
}

func (s *Sox) Open(format Format) error {
	if s.Logger == nil {
		s.Logger = zap.NewNop()
	}
	command := s.Command
	if command == "" {
		command = "play"
	}
	path, err := exec.LookPath(command)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrDeviceUnavailable, err)
	}
	s.format = format
	s.cmd = exec.Command(path, s.args(format)...)
	s.cmd.Stderr = &s.stderr
	return nil
}

// Start creates the stdin pipe and launches the player. exec releases both
// pipe ends itself when the launch fails.
func (s *Sox) Start() error {
	if s.cmd == nil {
		return ErrNotOpen
	}
	stdin, err := s.cmd.StdinPipe()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrDeviceUnavailable, err)
	}
	if err := s.cmd.Start(); err != nil {
		return fmt.Errorf("%w: %w", ErrDeviceUnavailable, err)
	}
	s.stdin = stdin
	s.exited = async.Promise(s.cmd.Wait)
	s.Logger.Debug("sox started", zap.Strings("args", s.cmd.Args))
	return nil
}

func (s *Sox) Write(p []byte) (int, error) {
	if s.exited == nil {
		return 0, ErrNotOpen
	}
	n, err := s.stdin.Write(p)
	if err != nil {
		return n, fmt.Errorf("%w: %w", ErrWriteFailure, err)
	}
	return n, nil
}

// Drain closes stdin and waits for play to finish the buffered audio.
func (s *Sox) Drain() error {
	if s.exited == nil {
		return ErrNotOpen
	}
	if err := s.stdin.Close(); err != nil {
		return fmt.Errorf("close sox stdin: %w", err)
	}
	err := <-s.exited
	s.exited = nil
	if err != nil {
		return fmt.Errorf("sox exited: %w: %s", err, bytes.TrimSpace(s.stderr.Bytes()))
	}
	return nil
}

func (s *Sox) Close() error {
	if s.cmd == nil {
		return nil
	}
	var err error
	if s.stdin != nil {
		if cerr := s.stdin.Close(); cerr != nil && !errors.Is(cerr, os.ErrClosed) {
			err = fmt.Errorf("close sox stdin: %w", cerr)
		}
	}
	if s.exited != nil {
		if kerr := s.cmd.Process.Kill(); kerr != nil && !errors.Is(kerr, os.ErrProcessDone) {
			err = errors.Join(err, fmt.Errorf("kill sox: %w", kerr))
		}
		// the exit status after a kill carries no information
		<-s.exited
		s.exited = nil
	}
	s.cmd, s.stdin = nil, nil
	return err
}
