// Package logging builds the charm loggers used by the CLI and the SSH server,
// optionally mirrored to a size-rotated log file.
package logging

import (
	"io"
	"strings"

	"github.com/charmbracelet/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Options configures a logger.
type Options struct {
	Level      string // debug, info, warn, error; defaults to info
	Prefix     string
	FilePath   string // Empty disables the file output
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Timestamps bool
}

// DefaultOptions returns the rotation limits used when a log file is enabled.
func DefaultOptions() Options {
	return Options{
		Level:      "info",
		MaxSizeMB:  10,
		MaxBackups: 3,
		MaxAgeDays: 28,
		Timestamps: true,
	}
}

// ParseLevel converts a level name to a log.Level. Unknown names map to info.
func ParseLevel(s string) log.Level {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "warning" {
		s = "warn"
	}
	lvl, err := log.ParseLevel(s)
	if err != nil {
		return log.InfoLevel
	}
	return lvl
}

// New creates a logger writing to console and, when opts.FilePath is set, to a
// rotated file. The returned closer releases the file and is never nil.
func New(console io.Writer, opts Options) (*log.Logger, io.Closer) {
	if console == nil {
		console = io.Discard
	}

	var closer io.Closer = nopCloser{}
	w := console
	if opts.FilePath != "" {
		file := &lumberjack.Logger{
			Filename:   opts.FilePath,
			MaxSize:    opts.MaxSizeMB,
			MaxBackups: opts.MaxBackups,
			MaxAge:     opts.MaxAgeDays,
		}
		closer = file
		if console == io.Discard {
			w = file
		} else {
			w = io.MultiWriter(console, file)
		}
	}

	logger := log.NewWithOptions(w, log.Options{
		Level:           ParseLevel(opts.Level),
		Prefix:          opts.Prefix,
		ReportTimestamp: opts.Timestamps,
	})
	return logger, closer
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
