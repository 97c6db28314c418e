// Package logging builds the application logger. The TUI owns the terminal,
// so records go to a rotated file instead of stderr.
package logging

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/natefinch/lumberjack.v2"
)

type Options struct {
	File  string
	Debug bool
}

// New returns a logger writing to opts.File and the closer for the underlying file.
// An empty File discards everything.
func New(opts Options) (*slog.Logger, io.Closer, error) {
	level := slog.LevelInfo
	if opts.Debug {
		level = slog.LevelDebug
	}
	if opts.File == "" {
		return slog.New(slog.NewTextHandler(io.Discard, nil)), nopCloser{}, nil
	}
	if err := os.MkdirAll(filepath.Dir(opts.File), 0o755); err != nil {
		return nil, nil, err
	}
	writer := &lumberjack.Logger{
		Filename:   opts.File,
		MaxSize:    10,
		MaxBackups: 3,
		MaxAge:     14,
	}
	handler := slog.NewTextHandler(writer, &slog.HandlerOptions{Level: level})
	return slog.New(handler), writer, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
