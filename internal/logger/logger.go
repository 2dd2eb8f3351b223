// Package logger builds the slog logger shared by the agent and the CLI.
package logger

import (
	"io"
	"log/slog"
	"os"
)

// Config holds the logger configuration.
type Config struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}

// DefaultLogFile is the file written to when Output is "file".
const DefaultLogFile = "volatility-agent.log"

// OpenOutput resolves the configured output into a writer. When the log file
// cannot be opened it falls back to stdout and reports the error.
func OpenOutput(output string) (io.Writer, error) {
	switch output {
	case "stderr":
		return os.Stderr, nil
	case "file":
		f, err := os.OpenFile(DefaultLogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
		if err != nil {
			return os.Stdout, err
		}
		return f, nil
	default:
		return os.Stdout, nil
	}
}

// NewLogger initializes a new slog logger based on the provided configuration.
// A nil output is resolved from cfg.Output.
func NewLogger(cfg Config, output io.Writer) *slog.Logger {
	if output == nil {
		w, err := OpenOutput(cfg.Output)
		if err != nil {
			slog.Error("failed to open log file, logging to stdout", "error", err)
		}
		output = w
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{
		Level:     level,
		AddSource: level <= slog.LevelDebug,
	}

	var handler slog.Handler
	switch cfg.Format {
	case "json":
		handler = slog.NewJSONHandler(output, opts)
	default:
		handler = slog.NewTextHandler(output, opts)
	}
	return slog.New(handler)
}
