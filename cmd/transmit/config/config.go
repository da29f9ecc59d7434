package config

import (
	"fmt"
	"os"

	"Tonecast/pkg/device"
	"Tonecast/pkg/layers"
	"Tonecast/pkg/metrics"
	"Tonecast/pkg/modem"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Message     string `yaml:"message"`
	LogLevel    string `yaml:"log_level"`
	MetricsAddr string `yaml:"metrics_addr"`
	WaitEnter   bool   `yaml:"wait_enter"`

	Device struct {
		Backend    string   `yaml:"backend"`
		DeviceName string   `yaml:"device_name"`
		SampleRate float64  `yaml:"sample_rate"`
		QueueSize  int      `yaml:"queue_size"`
		SoxArgs    []string `yaml:"sox_args"`
	} `yaml:"device"`

	Signal struct {
		Frequency     float64 `yaml:"frequency"`
		ZeroDuration  float64 `yaml:"zero_duration"`
		OneDuration   float64 `yaml:"one_duration"`
		PauseDuration float64 `yaml:"pause_duration"`
		SyncDuration  float64 `yaml:"sync_duration"`
		SyncCount     int     `yaml:"sync_count"`
	} `yaml:"signal"`

	Encoding struct {
		WidthPolicy string `yaml:"width_policy"`
	} `yaml:"encoding"`
}

// Default reproduces the reference transmitter constants.
func Default() *Config {
	timing := modem.DefaultTiming()

	var config Config
	config.Message = "kek"
	config.LogLevel = "info"
	config.Device.Backend = "malgo"
	config.Device.SampleRate = 44100
	config.Signal.Frequency = timing.Frequency
	config.Signal.ZeroDuration = timing.ZeroDuration
	config.Signal.OneDuration = timing.OneDuration
	config.Signal.PauseDuration = timing.PauseDuration
	config.Signal.SyncDuration = timing.SyncDuration
	config.Signal.SyncCount = timing.SyncCount
	config.Encoding.WidthPolicy = modem.WidthReject.String()
	return &config
}

// LoadConfig reads filename over the defaults. An empty filename returns
// the defaults.
func LoadConfig(filename string) (*Config, error) {
	config := Default()
	if filename == "" {
		return config, nil
	}

	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("parse %s: %w", filename, err)
	}
	return config, nil
}

func (c *Config) Timing() modem.Timing {
	return modem.Timing{
		Frequency:     c.Signal.Frequency,
		ZeroDuration:  c.Signal.ZeroDuration,
		OneDuration:   c.Signal.OneDuration,
		PauseDuration: c.Signal.PauseDuration,
		SyncDuration:  c.Signal.SyncDuration,
		SyncCount:     c.Signal.SyncCount,
	}
}

func (c *Config) Validate() error {
	if err := c.Timing().Validate(c.Device.SampleRate); err != nil {
		return err
	}
	if _, err := modem.ParseWidthPolicy(c.Encoding.WidthPolicy); err != nil {
		return err
	}
	switch c.Device.Backend {
	case "malgo", "asio", "sox":
	default:
		return fmt.Errorf("unknown device backend %q", c.Device.Backend)
	}
	return nil
}

func CreateSink(config *Config, logger *zap.Logger) (device.Sink, error) {
	switch config.Device.Backend {
	case "malgo":
		return &device.StreamSink{
			Device: &device.Malgo{
				DeviceName: config.Device.DeviceName,
				Logger:     logger.Named("malgo"),
			},
			QueueSize: config.Device.QueueSize,
			Logger:    logger.Named("stream"),
		}, nil
	case "asio":
		return &device.StreamSink{
			Device:    &device.ASIOMono{DeviceName: config.Device.DeviceName},
			QueueSize: config.Device.QueueSize,
			Logger:    logger.Named("stream"),
		}, nil
	case "sox":
		return &device.Sox{
			Args:   config.Device.SoxArgs,
			Logger: logger.Named("sox"),
		}, nil
	}
	return nil, fmt.Errorf("unknown device backend %q", config.Device.Backend)
}

func CreatePhysicalLayer(config *Config, sink device.Sink, logger *zap.Logger, m *metrics.Metrics) (*layers.PhysicalLayer, error) {
	policy, err := modem.ParseWidthPolicy(config.Encoding.WidthPolicy)
	if err != nil {
		return nil, err
	}
	return &layers.PhysicalLayer{
		Sink:    sink,
		Format:  device.MonoS16(config.Device.SampleRate),
		Timing:  config.Timing(),
		Encoder: modem.Encoder{Policy: policy},
		Logger:  logger,
		Metrics: m,
	}, nil
}
