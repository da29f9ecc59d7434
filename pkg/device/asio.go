package device

import (
	"errors"
	"fmt"
)

// asioDriver is the part of go-asio's Device that ASIOMono drives.
type asioDriver interface {
	Load(name string) error
	Unload()
	SetSampleRate(rate float64) error
	Open() error
	Close() error
	Start(handler func(in, out [][]int32)) error
	Stop() error
}

// ASIOMono drives one output channel of an ASIO driver. Samples are widened
// from s16 to the driver's int32.
type ASIOMono struct {
	DeviceName string
	OutChannel int

	driver  asioDriver
	format  Format
	scratch []byte
	loaded  bool
	running bool
}

func (a *ASIOMono) Open(format Format) error {
	if format.Channels != 1 || format.BitsPerSample != 16 {
		return fmt.Errorf("asio: unsupported format %+v", format)
	}
	if a.driver == nil {
		driver, err := newASIODriver()
		if err != nil {
			return err
		}
		a.driver = driver
	}

	if err := a.driver.Load(a.DeviceName); err != nil {
		return fmt.Errorf("asio: load driver %q: %w", a.DeviceName, err)
	}
	if err := a.driver.SetSampleRate(format.SampleRate); err != nil {
		a.driver.Unload()
		return fmt.Errorf("asio: set sample rate %v: %w", format.SampleRate, err)
	}
	if err := a.driver.Open(); err != nil {
		a.driver.Unload()
		return fmt.Errorf("asio: open buffers: %w", err)
	}
	a.format = format
	a.loaded = true
	return nil
}

func (a *ASIOMono) Start(callback func(out []byte)) error {
	if !a.loaded {
		return ErrNotOpen
	}
	err := a.driver.Start(func(in, out [][]int32) {
		if a.OutChannel >= len(out) {
			return
		}
		channel := out[a.OutChannel]
		if need := len(channel) * a.format.FrameSize(); len(a.scratch) != need {
			a.scratch = make([]byte, need)
		}
		callback(a.scratch)
		s16ToI32(channel, a.scratch)
	})
	if err != nil {
		return fmt.Errorf("asio: start: %w", err)
	}
	a.running = true
	return nil
}

func (a *ASIOMono) Close() error {
	if !a.loaded {
		return nil
	}
	var err error
	if a.running {
		if serr := a.driver.Stop(); serr != nil {
			err = fmt.Errorf("asio: stop: %w", serr)
		}
		a.running = false
	}
	if cerr := a.driver.Close(); cerr != nil {
		err = errors.Join(err, fmt.Errorf("asio: close: %w", cerr))
	}
	a.driver.Unload()
	a.loaded = false
	return err
}
