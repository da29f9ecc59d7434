package modem

import (
	"errors"
	"fmt"
	"math"
	"time"
)

var ErrInvalidTiming = errors.New("invalid timing")

// Timing holds the durations, in seconds, that key bits onto a tone.
type Timing struct {
	Frequency     float64
	ZeroDuration  float64
	OneDuration   float64
	PauseDuration float64
	SyncDuration  float64
	SyncCount     int
}

func DefaultTiming() Timing {
	return Timing{
		Frequency:     440.0,
		ZeroDuration:  0.5,
		OneDuration:   1.0,
		PauseDuration: 0.5,
		SyncDuration:  2.0,
		SyncCount:     3,
	}
}

func (t Timing) Validate(sampleRate float64) error {
	switch {
	case !(sampleRate > 0) || math.IsInf(sampleRate, 0):
		return fmt.Errorf("%w: sample rate %v", ErrInvalidTiming, sampleRate)
	case !(t.Frequency > 0) || math.IsInf(t.Frequency, 0):
		return fmt.Errorf("%w: frequency %v", ErrInvalidTiming, t.Frequency)
	case t.SyncCount < 0:
		return fmt.Errorf("%w: sync count %d", ErrInvalidTiming, t.SyncCount)
	}
	durations := []struct {
		name  string
		value float64
	}{
		{"zero", t.ZeroDuration},
		{"one", t.OneDuration},
		{"pause", t.PauseDuration},
		{"sync", t.SyncDuration},
	}
	for _, d := range durations {
		// NaN fails every comparison, so it lands here too.
		if !(d.value >= 0 && d.value*sampleRate <= MaxSegmentSamples) {
			return fmt.Errorf("%w: %s duration %v", ErrInvalidTiming, d.name, d.value)
		}
	}
	return nil
}

func (t Timing) BitDuration(bit bool) float64 {
	if bit {
		return t.OneDuration
	}
	return t.ZeroDuration
}

// Threshold is the tone length separating a zero from a one.
func (t Timing) Threshold() float64 {
	return (t.ZeroDuration + t.OneDuration) / 2
}

type SegmentKind int

const (
	SyncTone SegmentKind = iota
	BitTone
	Pause
)

func (k SegmentKind) String() string {
	switch k {
	case SyncTone:
		return "sync"
	case BitTone:
		return "bit"
	case Pause:
		return "pause"
	}
	return fmt.Sprintf("SegmentKind(%d)", int(k))
}

type Segment struct {
	Kind     SegmentKind
	Duration float64 // seconds
	Index    int     // sync pulse number or bit position
	Bit      bool    // only meaningful for BitTone
}

func (s Segment) IsTone() bool {
	return s.Kind != Pause
}

// Walk streams the transmission plan: SyncCount pairs of (sync tone, pause)
// followed by one (bit tone, pause) pair per bit. It stops at the first
// error returned by fn.
func (t Timing) Walk(bits Bits, fn func(Segment) error) error {
	for i := range t.SyncCount {
		if err := fn(Segment{Kind: SyncTone, Duration: t.SyncDuration, Index: i}); err != nil {
			return err
		}
		if err := fn(Segment{Kind: Pause, Duration: t.PauseDuration, Index: i}); err != nil {
			return err
		}
	}
	for i, bit := range bits {
		if err := fn(Segment{Kind: BitTone, Duration: t.BitDuration(bit), Index: i, Bit: bit}); err != nil {
			return err
		}
		if err := fn(Segment{Kind: Pause, Duration: t.PauseDuration, Index: i}); err != nil {
			return err
		}
	}
	return nil
}

// Synthesize renders one segment as PCM samples.
func (t Timing) Synthesize(s Segment, sampleRate float64) []int16 {
	if !s.IsTone() {
		return Silence(s.Duration, sampleRate)
	}
	return ToneConfig{
		Freq:       t.Frequency,
		Duration:   s.Duration,
		SampleRate: sampleRate,
	}.New()
}

func (t Timing) SegmentCount(bits Bits) int {
	return 2*max(t.SyncCount, 0) + 2*len(bits)
}

// TotalDuration is the nominal playback length of the whole plan in seconds.
func (t Timing) TotalDuration(bits Bits) float64 {
	zeros, ones := bits.Count()
	return float64(max(t.SyncCount, 0))*(t.SyncDuration+t.PauseDuration) +
		float64(zeros)*(t.ZeroDuration+t.PauseDuration) +
		float64(ones)*(t.OneDuration+t.PauseDuration)
}

func Seconds(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}
