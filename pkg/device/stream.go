package device

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"Tonecast/pkg/async"

	"go.uber.org/zap"
)

const (
	defaultQueueSize = 4
	drainSlack       = 5 * time.Second
)

// StreamSink adapts a callback Device to the blocking Sink contract. Write
// queues a copy of the chunk and blocks while QueueSize chunks are waiting.
// The device callback consumes chunks in order and pads with silence when
// the queue runs dry.
type StreamSink struct {
	Device    Device
	QueueSize int
	// Tail is the extra time Drain waits after the last byte has been
	// handed to the device. Defaults to one BufferSize period.
	Tail   time.Duration
	Logger *zap.Logger

	format  Format
	chunks  chan []byte
	current []byte
	pending atomic.Int64
	idle    async.Signal
	done    chan struct{}
	started bool

	closeOnce sync.Once
	closeErr  error
}

func (s *StreamSink) Open(format Format) error {
	if s.Logger == nil {
		s.Logger = zap.NewNop()
	}
	if err := s.Device.Open(format); err != nil {
		return fmt.Errorf("%w: %w", ErrDeviceUnavailable, err)
	}

	queueSize := s.QueueSize
	if queueSize <= 0 {
		queueSize = defaultQueueSize
	}
	s.format = format
	s.chunks = make(chan []byte, queueSize)
	s.idle = async.NewSignal()
	s.done = make(chan struct{})

	s.Logger.Debug("stream opened",
		zap.Float64("sample_rate", format.SampleRate),
		zap.Int("queue_size", queueSize))
	return nil
}

func (s *StreamSink) Start() error {
	if s.chunks == nil {
		return ErrNotOpen
	}
	if err := s.Device.Start(s.fill); err != nil {
		return fmt.Errorf("start device: %w", err)
	}
	s.started = true
	return nil
}

func (s *StreamSink) Write(p []byte) (int, error) {
	if s.chunks == nil {
		return 0, ErrNotOpen
	}
	if len(p) == 0 {
		return 0, nil
	}

	chunk := make([]byte, len(p))
	copy(chunk, p)

	s.pending.Add(int64(len(chunk)))
	select {
	case <-s.done:
		s.pending.Add(-int64(len(chunk)))
		return 0, fmt.Errorf("%w: stream closed", ErrWriteFailure)
	default:
	}
	select {
	case s.chunks <- chunk:
		return len(p), nil
	case <-s.done:
		s.pending.Add(-int64(len(chunk)))
		return 0, fmt.Errorf("%w: stream closed", ErrWriteFailure)
	}
}

// fill runs on the device thread.
func (s *StreamSink) fill(out []byte) {
	i := 0
	for i < len(out) {
		if s.current == nil {
			select {
			case s.current = <-s.chunks:
			default:
			}
			if s.current == nil {
				break
			}
		}
		n := copy(out[i:], s.current)
		i += n
		s.current = s.current[n:]
		if len(s.current) == 0 {
			s.current = nil
		}
		s.pending.Add(-int64(n))
	}
	clear(out[i:])

	if s.pending.Load() == 0 {
		s.idle.Notify()
	}
}

func (s *StreamSink) Drain() error {
	if !s.started {
		return ErrNotOpen
	}

	pending := s.pending.Load()
	deadline := time.NewTimer(s.format.Duration(pending) + drainSlack)
	defer deadline.Stop()

	for s.pending.Load() > 0 {
		select {
		case <-s.idle.Wait():
		case <-s.done:
			return fmt.Errorf("%w: stream closed while draining", ErrWriteFailure)
		case <-deadline.C:
			return fmt.Errorf("drain timed out with %d bytes pending", s.pending.Load())
		}
	}

	time.Sleep(s.tail())
	s.Logger.Debug("stream drained", zap.Int64("bytes", pending))
	return nil
}

func (s *StreamSink) tail() time.Duration {
	if s.Tail > 0 {
		return s.Tail
	}
	return s.format.Duration(int64(BufferSize * s.format.FrameSize()))
}

func (s *StreamSink) Close() error {
	if s.done == nil {
		return nil
	}
	s.closeOnce.Do(func() {
		close(s.done)
		s.closeErr = s.Device.Close()
		s.Logger.Debug("stream closed", zap.Int64("bytes_dropped", s.pending.Load()))
	})
	return s.closeErr
}
