// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package logging builds the slog logger used by the snowfall command.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime"
	"strings"

	"github.com/gogpu/snowfall"
	"github.com/mattn/go-isatty"
)

// LevelNone disables logging.
const LevelNone = slog.Level(127)

var levels = map[string]slog.Level{
	"debug": slog.LevelDebug,
	"info":  slog.LevelInfo,
	"warn":  slog.LevelWarn,
	"error": slog.LevelError,
	"none":  LevelNone,
}

// ParseLevel maps a level name to a slog level. Names are case-insensitive.
func ParseLevel(s string) (slog.Level, error) {
	if l, ok := levels[strings.ToLower(strings.TrimSpace(s))]; ok {
		return l, nil
	}
	return 0, fmt.Errorf("%w: unknown log level %q", snowfall.ErrInvalidConfiguration, s)
}

// New returns a logger writing to w at level. Terminals get the text
// handler, everything else gets JSON lines.
func New(w io.Writer, level slog.Level) *slog.Logger {
	if level >= LevelNone {
		return slog.New(slog.DiscardHandler)
	}
	opts := &slog.HandlerOptions{Level: level}
	if isTerminal(w) {
		return slog.New(slog.NewTextHandler(w, opts))
	}
	return slog.New(slog.NewJSONHandler(w, opts))
}

// Setup installs a logger on stderr as both the slog default and the
// snowfall library logger.
func Setup(level string) (*slog.Logger, error) {
	l, err := ParseLevel(level)
	if err != nil {
		return nil, err
	}
	logger := New(os.Stderr, l)
	slog.SetDefault(logger)
	snowfall.SetLogger(logger)
	return logger, nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(interface{ Fd() uintptr })
	if !ok || runtime.GOOS == "windows" {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
