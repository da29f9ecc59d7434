package layers

import (
	"errors"
	"fmt"
	"time"

	"Tonecast/pkg/device"
	"Tonecast/pkg/metrics"
	"Tonecast/pkg/modem"

	"go.uber.org/zap"
)

// PhysicalLayer keys a message onto a tone: a sync preamble followed by one
// tone/pause pair per bit, where the tone length carries the bit value.
// Each segment is synthesized and written on its own, so at most one
// segment is held in memory.
type PhysicalLayer struct {
	Sink    device.Sink
	Format  device.Format
	Timing  modem.Timing
	Encoder modem.BitEncoder

	Logger  *zap.Logger
	Metrics *metrics.Metrics
	// Observer, if set, receives the bit sequence before playback starts.
	Observer func(modem.Bits)
}

// NewPhysicalLayer uses the reference timing at the given sample rate.
func NewPhysicalLayer(sink device.Sink, sampleRate float64, logger *zap.Logger) *PhysicalLayer {
	return &PhysicalLayer{
		Sink:    sink,
		Format:  device.MonoS16(sampleRate),
		Timing:  modem.DefaultTiming(),
		Encoder: modem.Encoder{},
		Logger:  logger,
	}
}

func (p *PhysicalLayer) Transmit(message string) (err error) {
	logger := p.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	defer func() { p.countOutcome(err) }()

	if err := p.Timing.Validate(p.Format.SampleRate); err != nil {
		return err
	}

	encoder := p.Encoder
	if encoder == nil {
		encoder = modem.Encoder{}
	}
	bits, err := encoder.Encode(message)
	if err != nil {
		return fmt.Errorf("encode message: %w", err)
	}

	logger.Info("transmitting",
		zap.Int("chars", len(bits)/modem.BitsPerChar),
		zap.Stringer("bits", bits),
		zap.Int("segments", p.Timing.SegmentCount(bits)),
		zap.Duration("duration", modem.Seconds(p.Timing.TotalDuration(bits))))
	if p.Observer != nil {
		p.Observer(bits)
	}

	if err := p.Sink.Open(p.Format); err != nil {
		return fmt.Errorf("open sink: %w", err)
	}
	defer func() {
		if cerr := p.Sink.Close(); cerr != nil {
			err = errors.Join(err, fmt.Errorf("close sink: %w", cerr))
		}
	}()

	if err := p.Sink.Start(); err != nil {
		return fmt.Errorf("start sink: %w", err)
	}

	start := time.Now()
	err = p.Timing.Walk(bits, func(s modem.Segment) error {
		return p.send(logger, s)
	})
	if err != nil {
		return err
	}

	if err := p.Sink.Drain(); err != nil {
		return fmt.Errorf("drain sink: %w", err)
	}
	logger.Info("transmission complete", zap.Duration("elapsed", time.Since(start)))
	return nil
}

func (p *PhysicalLayer) send(logger *zap.Logger, s modem.Segment) error {
	data := modem.PCM16LE(p.Timing.Synthesize(s, p.Format.SampleRate))

	n, err := p.Sink.Write(data)
	if err == nil && n < len(data) {
		err = fmt.Errorf("short write: %d of %d bytes", n, len(data))
	}
	if err != nil {
		if !errors.Is(err, device.ErrWriteFailure) {
			err = fmt.Errorf("%w: %w", device.ErrWriteFailure, err)
		}
		return fmt.Errorf("%s segment %d: %w", s.Kind, s.Index, err)
	}

	logger.Debug("segment written",
		zap.Stringer("kind", s.Kind),
		zap.Int("index", s.Index),
		zap.Float64("seconds", s.Duration),
		zap.Int("bytes", n))

	if m := p.Metrics; m != nil {
		m.SegmentsTotal.WithLabelValues(s.Kind.String()).Inc()
		m.BytesWrittenTotal.Add(float64(n))
		m.AudioSecondsTotal.Add(p.Format.Duration(int64(n)).Seconds())
		if s.Kind == modem.BitTone {
			value := "0"
			if s.Bit {
				value = "1"
			}
			m.BitsTotal.WithLabelValues(value).Inc()
		}
	}
	return nil
}

func (p *PhysicalLayer) countOutcome(err error) {
	if p.Metrics == nil {
		return
	}
	outcome := "ok"
	switch {
	case err == nil:
	case errors.Is(err, device.ErrDeviceUnavailable):
		outcome = "device_unavailable"
	case errors.Is(err, device.ErrWriteFailure):
		outcome = "write_failure"
	case errors.Is(err, modem.ErrEncodingOverflow):
		outcome = "encoding_overflow"
	case errors.Is(err, modem.ErrInvalidTiming):
		outcome = "invalid_timing"
	default:
		outcome = "error"
	}
	p.Metrics.TransmissionsTotal.WithLabelValues(outcome).Inc()
}
