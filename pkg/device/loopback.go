package device

import (
	"fmt"
	"sync"
	"time"

	"Tonecast/pkg/async"
)

// Loopback is a fake sound card that calls back at the rate real hardware
// would and keeps everything it played.
type Loopback struct {
	// Speed scales the playback clock. Zero means real time.
	Speed      float64
	BufferSize int

	format  Format
	mu      sync.Mutex
	played  []byte
	done    chan struct{}
	stopped <-chan struct{}
}

func (d *Loopback) Open(format Format) error {
	if format.FrameSize() <= 0 || format.SampleRate <= 0 {
		return fmt.Errorf("loopback: unsupported format %+v", format)
	}
	d.format = format
	return nil
}

func (d *Loopback) Start(callback func(out []byte)) error {
	if d.format.FrameSize() == 0 {
		return ErrNotOpen
	}
	frames := d.BufferSize
	if frames <= 0 {
		frames = BufferSize
	}
	speed := d.Speed
	if speed <= 0 {
		speed = 1
	}
	period := time.Duration(float64(frames) / (d.format.SampleRate * speed) * float64(time.Second))
	buf := allocBytes(frames, d.format)

	d.done = make(chan struct{})
	d.stopped = async.Job(func() {
		ticker := time.NewTicker(max(period, time.Microsecond))
		defer ticker.Stop()
		for {
			select {
			case <-d.done:
				return
			case <-ticker.C:
				callback(buf)
				d.mu.Lock()
				d.played = append(d.played, buf...)
				d.mu.Unlock()
			}
		}
	})
	return nil
}

func (d *Loopback) Close() error {
	if d.done != nil {
		close(d.done)
		<-d.stopped
		d.done = nil
	}
	return nil
}

// Played returns a copy of everything sent to the fake speaker.
func (d *Loopback) Played() []byte {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]byte, len(d.played))
	copy(out, d.played)
	return out
}
