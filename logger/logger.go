// Package logger builds the structured slog logger used across the service,
// with optional file output and rotation.
package logger

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Config controls level, format and output of the logger.
type Config struct {
	// Level: debug, info, warn, error.
	Level string
	// Format: json or text.
	Format string
	// Output: stdout, file, both.
	Output string
	// FilePath is used when Output is file or both.
	FilePath string
	// MaxSize is the maximum log file size in MB before rotation.
	MaxSize int
	// MaxBackups is the number of rotated files to keep.
	MaxBackups int
	// MaxAge is the maximum age of a rotated file in days.
	MaxAge int
}

// New builds a logger from the config. Invalid values fall back to
// info-level JSON on stdout.
func New(cfg Config) *slog.Logger {
	var level slog.Level
	switch strings.ToLower(cfg.Level) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	var output io.Writer = os.Stdout
	switch cfg.Output {
	case "file", "both":
		fileWriter := &lumberjack.Logger{
			Filename:   cfg.FilePath,
			MaxSize:    cfg.MaxSize,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAge,
		}
		_ = os.MkdirAll(filepath.Dir(cfg.FilePath), 0o755)
		if cfg.Output == "both" {
			output = io.MultiWriter(os.Stdout, fileWriter)
		} else {
			output = fileWriter
		}
	}

	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if cfg.Format == "text" {
		handler = slog.NewTextHandler(output, opts)
	} else {
		handler = slog.NewJSONHandler(output, opts)
	}

	return slog.New(handler)
}
