package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/pflag"

	"github.com/Dicklesworthstone/cpumon/internal/sampler"
)

// Config carries runtime options for cpumon.
type Config struct {
	Interval       time.Duration
	ShowAverage    bool
	Source         string
	ProcRoot       string
	BootstrapDelay time.Duration
	JSON           bool
	JSONStream     bool
	LogLevel       string
	LogFormat      string
}

func Default() Config {
	return Config{
		Interval:       time.Second,
		ShowAverage:    true,
		Source:         sampler.SourceAuto,
		ProcRoot:       "/proc",
		BootstrapDelay: sampler.DefaultBootstrapDelay,
		JSON:           false,
		JSONStream:     false,
		LogLevel:       "info",
		LogFormat:      "text",
	}
}

// BindFlags registers cfg's fields on fs, using the current values as defaults.
func BindFlags(fs *pflag.FlagSet, cfg *Config) {
	fs.DurationVar(&cfg.Interval, "interval", cfg.Interval, "refresh interval")
	fs.BoolVar(&cfg.ShowAverage, "average", cfg.ShowAverage, "include the AVG record")
	fs.StringVar(&cfg.Source, "source", cfg.Source, "cpu source: auto|procfs|times|percent")
	fs.StringVar(&cfg.ProcRoot, "proc-root", cfg.ProcRoot, "procfs mount point for the procfs source")
	fs.DurationVar(&cfg.BootstrapDelay, "bootstrap-delay", cfg.BootstrapDelay, "gap between the two reads of the first cycle")
	fs.BoolVar(&cfg.JSON, "json", cfg.JSON, "output one-shot JSON and exit")
	fs.BoolVar(&cfg.JSONStream, "json-stream", cfg.JSONStream, "stream NDJSON until interrupted")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level: debug|info|warn|error")
	fs.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "log format: text|json")
}

// ApplyEnv applies environment overrides on top of flags.
func ApplyEnv(cfg *Config, getenv func(string) string) {
	if getenv == nil {
		getenv = os.Getenv
	}
	if v := getenv("CPUMON_INTERVAL"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			cfg.Interval = parsed
		} else if parsed, err2 := time.ParseDuration(v + "s"); err2 == nil {
			cfg.Interval = parsed
		}
	}
	if v := getenv("CPUMON_AVERAGE"); v == "0" {
		cfg.ShowAverage = false
	}
	if v := getenv("CPUMON_SOURCE"); v != "" {
		cfg.Source = strings.ToLower(v)
	}
	if v := getenv("CPUMON_LOG_LEVEL"); v != "" {
		cfg.LogLevel = strings.ToLower(v)
	}
}

func (c Config) Validate() error {
	var errs []error
	if c.Interval <= 0 {
		errs = append(errs, fmt.Errorf("interval must be positive, got %s", c.Interval))
	}
	if c.BootstrapDelay < 0 {
		errs = append(errs, fmt.Errorf("bootstrap delay must not be negative, got %s", c.BootstrapDelay))
	}
	switch c.Source {
	case sampler.SourceAuto, sampler.SourceProcfs, sampler.SourceTimes, sampler.SourcePercent:
	default:
		errs = append(errs, fmt.Errorf("%w: %q", sampler.ErrUnknownSource, c.Source))
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("unknown log level %q", c.LogLevel))
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf("unknown log format %q", c.LogFormat))
	}
	if c.JSON && c.JSONStream {
		errs = append(errs, errors.New("--json and --json-stream are mutually exclusive"))
	}
	return errors.Join(errs...)
}

// SamplerOptions maps the config onto sampler options.
func (c Config) SamplerOptions() sampler.Options {
	return sampler.Options{
		Source:         c.Source,
		ShowAverage:    c.ShowAverage,
		BootstrapDelay: c.BootstrapDelay,
		ProcRoot:       c.ProcRoot,
	}
}
