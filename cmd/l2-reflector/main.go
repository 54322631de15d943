// l2-reflector runs the host-side control plane for the accelerator
// L2 packet reflector: it acquires the device resources, hands the
// data path to the accelerator, reports throughput for one observation
// window, and tears everything down.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/i-rong/l2-reflector/config"
	"github.com/i-rong/l2-reflector/device"
	"github.com/i-rong/l2-reflector/logging"
	"github.com/i-rong/l2-reflector/manager"
	"github.com/i-rong/l2-reflector/metrics"
	"github.com/i-rong/l2-reflector/monitor"
	"github.com/i-rong/l2-reflector/shutdown"
	"github.com/i-rong/l2-reflector/store/sqlite"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "l2-reflector: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	fs := flag.NewFlagSet("l2-reflector", flag.ExitOnError)
	var (
		configPath    = fs.String("config", "/etc/l2-reflector/config.toml", "path to TOML config file (optional)")
		deviceName    = fs.String("device", "", "device to open (overrides config)")
		netDev        = fs.String("netdev", "", "uplink netdev whose MAC parameterises steering (overrides config)")
		window        = fs.Int("window", 0, "observation window in seconds (overrides config)")
		dbPath        = fs.String("db", "", "run history database path, empty disables persistence (overrides config)")
		metricsListen = fs.String("metrics-listen", "", "address for the Prometheus endpoint, empty disables it (overrides config)")
		logSpec       = fs.String("log", "", "log spec, e.g. info or debug,monitor=trace (overrides "+logging.EnvVar+" and config)")
		logFormat     = fs.String("log-format", "", "log output format: text or json (overrides config)")
	)
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := config.LoadIfPresent(*configPath)
	if err != nil {
		return err
	}
	if *deviceName != "" {
		cfg.Device = *deviceName
	}
	if *netDev != "" {
		cfg.NetDev = *netDev
	}
	if *window > 0 {
		cfg.WindowSeconds = *window
	}
	if *dbPath != "" {
		cfg.DBPath = *dbPath
	}
	if *metricsListen != "" {
		cfg.MetricsListen = *metricsListen
	}
	if *logFormat != "" {
		cfg.LogFormat = *logFormat
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	format, err := logging.ParseFormat(cfg.LogFormat)
	if err != nil {
		return err
	}
	logger, err := logging.New(logging.Options{
		CLISpec:    *logSpec,
		EnvSpec:    os.Getenv(logging.EnvVar),
		ConfigSpec: cfg.Log,
		Format:     format,
	})
	if err != nil {
		return err
	}

	ctx := context.Background()
	stop := shutdown.Install(logger)
	defer stop.Stop()

	dev, err := newBackend(cfg, logger)
	if err != nil {
		return err
	}

	var opts []manager.Option

	if cfg.DBPath != "" {
		st, err := sqlite.New(ctx, cfg.DBPath, logger)
		if err != nil {
			return fmt.Errorf("open run history: %w", err)
		}
		defer st.Close()
		opts = append(opts, manager.WithStore(st))
	}

	if cfg.MetricsListen != "" {
		collector := metrics.NewCollector(cfg.Device)
		opts = append(opts, manager.WithMonitorObserver(func(m *monitor.Monitor) {
			collector.SetSource(m.Snapshot)
		}))
		go serveMetrics(cfg.MetricsListen, collector, logger)
	}

	mgr := manager.New(cfg, dev, logger, opts...)
	rep, err := mgr.Run(ctx, stop)
	if err != nil {
		return err
	}

	logger.Info("run complete",
		"device", rep.Device,
		"total_packets", rep.TotalPackets,
		"average_pps", fmt.Sprintf("%.2f", rep.Average()),
		"interrupted", rep.Interrupted)
	for s, pkts := range rep.PerSecond {
		logger.Info("throughput", "second", s, "packets", pkts)
	}
	return nil
}

// newBackend constructs the device backend named in the config.
func newBackend(cfg config.Config, logger *slog.Logger) (device.Operations, error) {
	switch cfg.Backend {
	case "sim":
		return device.NewSimulated(
			device.WithSimLogger(logger),
			device.WithSimRate(cfg.SimRatePPS),
			device.WithSimDevices(cfg.Device),
		), nil
	default:
		return nil, fmt.Errorf("unknown backend %q", cfg.Backend)
	}
}

// serveMetrics runs the Prometheus endpoint for the lifetime of the
// process. Scrape failures after shutdown are harmless; the process
// is exiting anyway.
func serveMetrics(addr string, collector *metrics.Collector, logger *slog.Logger) {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collector)

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	logger.Info("metrics endpoint listening", "addr", addr)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("metrics endpoint failed", "error", err)
	}
}
