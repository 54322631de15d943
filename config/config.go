// Package config holds the daemon configuration: programmatic
// defaults, TOML file loading, and validation.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

// Duration is a time.Duration that decodes from TOML strings such as
// "2s" or "500ms".
type Duration time.Duration

// UnmarshalText implements encoding.TextUnmarshaler for TOML decoding.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = Duration(v)
	return nil
}

// Std returns the value as a time.Duration.
func (d Duration) Std() time.Duration { return time.Duration(d) }

// Config is the full daemon configuration.
type Config struct {
	// Device is the IB device to open (e.g. "mlx5_0").
	Device string `toml:"device"`
	// NetDev names the device's uplink netdev. When set, bring-up
	// probes it via netlink and feeds its MAC to the steering rules.
	NetDev string `toml:"netdev"`
	// Backend selects the device backend. "sim" runs against the
	// simulated backend; hardware backends are provided out of tree.
	Backend string `toml:"backend"`

	// WindowSeconds is the observation window length.
	WindowSeconds int `toml:"window_seconds"`
	// IdleInterval is how long the monitor sleeps between polls while
	// the packet counter is not moving.
	IdleInterval Duration `toml:"idle_interval"`
	// CallTimeout bounds each remote call to the accelerator runtime.
	CallTimeout Duration `toml:"call_timeout"`

	// SimRatePPS is the synthetic packet rate of the simulated
	// backend. Ignored by other backends.
	SimRatePPS uint64 `toml:"sim_rate_pps"`

	// DBPath is the run-history database. Empty disables persistence.
	DBPath string `toml:"db_path"`
	// MetricsListen is the Prometheus listen address (e.g. ":9273").
	// Empty disables the metrics endpoint.
	MetricsListen string `toml:"metrics_listen"`

	// Log is the log spec (see logging.ParseSpec).
	Log string `toml:"log"`
	// LogFormat is "text" or "json".
	LogFormat string `toml:"log_format"`
}

// Default returns the configuration used when no file or flags
// override it.
func Default() Config {
	return Config{
		Device:        "mlx5_0",
		Backend:       "sim",
		WindowSeconds: 60,
		IdleInterval:  Duration(2 * time.Second),
		CallTimeout:   Duration(5 * time.Second),
		SimRatePPS:    1000,
		DBPath:        "/var/lib/l2-reflector/runs.db",
		LogFormat:     "text",
	}
}

// Load reads a TOML file over the defaults. A missing file is an
// error; callers that treat the file as optional should stat it first.
func Load(path string) (Config, error) {
	cfg := Default()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return Config{}, fmt.Errorf("unknown config key %q in %s", undecoded[0].String(), path)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// LoadIfPresent loads path when it exists and returns the defaults
// otherwise.
func LoadIfPresent(path string) (Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return Default(), nil
	}
	return Load(path)
}

// Validate checks invariants that the rest of the daemon relies on.
func (c Config) Validate() error {
	if c.Device == "" {
		return fmt.Errorf("device must be set")
	}
	if c.Backend != "sim" {
		return fmt.Errorf("unknown backend %q", c.Backend)
	}
	if c.WindowSeconds <= 0 {
		return fmt.Errorf("window_seconds must be positive, got %d", c.WindowSeconds)
	}
	if c.IdleInterval <= 0 {
		return fmt.Errorf("idle_interval must be positive, got %s", c.IdleInterval.Std())
	}
	if c.CallTimeout < 0 {
		return fmt.Errorf("call_timeout must not be negative, got %s", c.CallTimeout.Std())
	}
	return nil
}
