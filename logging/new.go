package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// EnvVar is the environment variable consulted for the log spec.
const EnvVar = "L2RD_LOG"

// Format selects the log output encoding.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

// ParseFormat parses a format name. The empty string means text.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "text", "":
		return FormatText, nil
	case "json":
		return FormatJSON, nil
	default:
		return FormatText, fmt.Errorf("unknown log format: %q", s)
	}
}

// Options configures the logger factory.
type Options struct {
	// CLISpec is the log spec from a command-line flag (highest
	// precedence).
	CLISpec string
	// EnvSpec is the log spec from L2RD_LOG.
	EnvSpec string
	// ConfigSpec is the log spec from the config file (lowest
	// precedence).
	ConfigSpec string
	// Format is the output encoding.
	Format Format
	// Output defaults to os.Stdout.
	Output io.Writer
}

// New builds a *slog.Logger with component-level filtering.
// Spec precedence follows the Unix convention: CLI flag over
// environment over config file.
func New(opts Options) (*slog.Logger, error) {
	specStr := opts.ConfigSpec
	if opts.EnvSpec != "" {
		specStr = opts.EnvSpec
	}
	if opts.CLISpec != "" {
		specStr = opts.CLISpec
	}

	spec, err := ParseSpec(specStr)
	if err != nil {
		return nil, fmt.Errorf("invalid log spec: %w", err)
	}

	output := opts.Output
	if output == nil {
		output = os.Stdout
	}

	// The inner handler accepts everything; the filtering handler
	// makes the level decision per component.
	handlerOpts := &slog.HandlerOptions{Level: LevelTrace.ToSlog()}
	var inner slog.Handler
	switch opts.Format {
	case FormatJSON:
		inner = slog.NewJSONHandler(output, handlerOpts)
	default:
		inner = slog.NewTextHandler(output, handlerOpts)
	}

	return slog.New(NewFilteringHandler(inner, &spec)), nil
}

// FromEnv builds a logger from the L2RD_LOG environment variable alone.
func FromEnv() (*slog.Logger, error) {
	return New(Options{EnvSpec: os.Getenv(EnvVar)})
}
