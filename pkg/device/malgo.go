package device

import (
	"fmt"
	"strings"

	"github.com/gen2brain/malgo"
	"go.uber.org/zap"
)

// Malgo plays through miniaudio. An empty DeviceName picks the system
// default output.
type Malgo struct {
	DeviceName string
	Logger     *zap.Logger

	ctx      *malgo.AllocatedContext
	device   *malgo.Device
	callback func(out []byte)
}

func (m *Malgo) Open(format Format) error {
	if m.Logger == nil {
		m.Logger = zap.NewNop()
	}
	if format.BitsPerSample != 16 {
		return fmt.Errorf("malgo: unsupported sample width %d", format.BitsPerSample)
	}

	ctx, err := malgo.InitContext(nil, malgo.ContextConfig{}, func(message string) {
		m.Logger.Debug("miniaudio", zap.String("message", strings.TrimSpace(message)))
	})
	if err != nil {
		return fmt.Errorf("malgo: init context: %w", err)
	}

	deviceConfig := malgo.DefaultDeviceConfig(malgo.Playback)
	deviceConfig.Playback.Format = malgo.FormatS16
	deviceConfig.Playback.Channels = uint32(format.Channels)
	deviceConfig.SampleRate = uint32(format.SampleRate)
	deviceConfig.PeriodSizeInFrames = BufferSize
	deviceConfig.Alsa.NoMMap = 1

	if m.DeviceName != "" {
		devices, err := ctx.Devices(malgo.Playback)
		if err != nil {
			m.release(ctx, nil)
			return fmt.Errorf("malgo: list devices: %w", err)
		}
		found := false
		for _, info := range devices {
			if info.Name() == m.DeviceName {
				deviceConfig.Playback.DeviceID = info.ID.Pointer()
				found = true
				break
			}
		}
		if !found {
			m.release(ctx, nil)
			return fmt.Errorf("malgo: no playback device named %q", m.DeviceName)
		}
	}

	device, err := malgo.InitDevice(ctx.Context, deviceConfig, malgo.DeviceCallbacks{
		Data: func(out, _ []byte, _ uint32) {
			if m.callback != nil {
				m.callback(out)
			} else {
				clear(out)
			}
		},
		Stop: func() {
			m.Logger.Debug("malgo device stopped")
		},
	})
	if err != nil {
		m.release(ctx, nil)
		return fmt.Errorf("malgo: init device: %w", err)
	}

	m.ctx = ctx
	m.device = device
	return nil
}

func (m *Malgo) Start(callback func(out []byte)) error {
	if m.device == nil {
		return ErrNotOpen
	}
	m.callback = callback
	return m.device.Start()
}

func (m *Malgo) Close() error {
	err := m.release(m.ctx, m.device)
	m.ctx, m.device = nil, nil
	return err
}

func (m *Malgo) release(ctx *malgo.AllocatedContext, device *malgo.Device) error {
	if device != nil {
		device.Uninit()
	}
	if ctx == nil {
		return nil
	}
	err := ctx.Uninit()
	ctx.Free()
	return err
}
