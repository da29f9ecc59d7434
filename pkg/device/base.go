package device

import (
	"errors"
	"time"
)

var (
	ErrDeviceUnavailable = errors.New("audio device unavailable")
	ErrWriteFailure      = errors.New("audio write failed")
	ErrNotOpen           = errors.New("audio sink not open")
)

// Format describes linear signed PCM, little-endian.
type Format struct {
	SampleRate    float64
	Channels      int
	BitsPerSample int
}

// MonoS16 is the only format the transmitter produces.
func MonoS16(sampleRate float64) Format {
	return Format{
		SampleRate:    sampleRate,
		Channels:      1,
		BitsPerSample: 16,
	}
}

func (f Format) FrameSize() int {
	return f.Channels * f.BitsPerSample / 8
}

// Duration is the playback time of n bytes in this format.
func (f Format) Duration(n int64) time.Duration {
	if f.FrameSize() == 0 || f.SampleRate <= 0 {
		return 0
	}
	frames := float64(n) / float64(f.FrameSize())
	return time.Duration(frames / f.SampleRate * float64(time.Second))
}

// Sink is a blocking PCM output. Writes are played in order.
type Sink interface {
	Open(format Format) error
	Start() error
	Write(p []byte) (int, error)
	// Drain blocks until everything written has been played.
	Drain() error
	Close() error
}

// Device is a callback driven sound card. The callback must fill out
// completely with PCM bytes in the opened format.
type Device interface {
	Open(format Format) error
	Start(callback func(out []byte)) error
	Close() error
}

// BufferSize is the number of frames per callback for devices that let us
// choose.
const BufferSize = 512
