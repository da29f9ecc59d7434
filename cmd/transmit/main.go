package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"time"

	"Tonecast/cmd/transmit/config"
	"Tonecast/internel/utils"
	"Tonecast/pkg/metrics"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// options are the command line flags. set records which ones were given
// so that only those override the yaml config.
type options struct {
	configPath  string
	message     string
	backend     string
	deviceName  string
	metricsAddr string
	logLevel    string
	wait        bool

	set map[string]bool
}

func parseFlags(args []string) (*options, error) {
	var o options
	fs := flag.NewFlagSet("transmit", flag.ContinueOnError)
	fs.StringVar(&o.configPath, "c", "", "Set the path of the yaml config")
	fs.StringVar(&o.message, "m", "", "Set the message to transmit")
	fs.StringVar(&o.backend, "backend", "", "Set the output backend (malgo, asio, sox)")
	fs.StringVar(&o.deviceName, "device", "", "Set the playback device name")
	fs.StringVar(&o.metricsAddr, "metrics", "", "Serve prometheus metrics on this address")
	fs.StringVar(&o.logLevel, "log", "", "Set the log level (debug, info, warn, error)")
	fs.BoolVar(&o.wait, "wait", false, "Wait for enter before transmitting")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	o.set = make(map[string]bool)
	fs.Visit(func(f *flag.Flag) {
		o.set[f.Name] = true
	})
	return &o, nil
}

// applyFlags overwrites cfg with every flag given on the command line.
func applyFlags(cfg *config.Config, o *options) {
	if o.set["m"] {
		cfg.Message = o.message
	}
	if o.set["backend"] {
		cfg.Device.Backend = o.backend
	}
	if o.set["device"] {
		cfg.Device.DeviceName = o.deviceName
	}
	if o.set["metrics"] {
		cfg.MetricsAddr = o.metricsAddr
	}
	if o.set["log"] {
		cfg.LogLevel = o.logLevel
	}
	if o.set["wait"] {
		cfg.WaitEnter = o.wait
	}
}

func loadConfig(args []string) (*config.Config, error) {
	o, err := parseFlags(args)
	if err != nil {
		return nil, err
	}
	cfg, err := config.LoadConfig(o.configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	applyFlags(cfg, o)
	return cfg, nil
}

func main() {
	cfg, err := loadConfig(os.Args[1:])
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	logger, err := utils.NewLogger(cfg.LogLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if err := run(cfg, logger); err != nil {
		logger.Error("transmission failed", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
	logger.Sync()
}

func run(cfg *config.Config, logger *zap.Logger) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	m := metrics.New(reg)

	if cfg.MetricsAddr != "" {
		server := &http.Server{
			Addr:    cfg.MetricsAddr,
			Handler: promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
		}
		go func() {
			if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Warn("metrics server stopped", zap.Error(err))
			}
		}()
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), time.Second)
			defer cancel()
			server.Shutdown(ctx)
		}()
		logger.Info("serving metrics", zap.String("addr", cfg.MetricsAddr))
	}

	sink, err := config.CreateSink(cfg, logger)
	if err != nil {
		return err
	}
	layer, err := config.CreatePhysicalLayer(cfg, sink, logger.Named("physical"), m)
	if err != nil {
		return err
	}

	if cfg.WaitEnter {
		fmt.Println("Press Enter to transmit")
		<-utils.WaitEnterAsync(os.Stdin)
	}

	return layer.Transmit(cfg.Message)
}
