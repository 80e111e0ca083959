// Package logging adapts package slog to the job service.
package logging

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// ErrUnknownLevel indicates a level name ParseLevel does not recognize.
var ErrUnknownLevel = errors.New("unknown log level")

// LevelMissing is returned by ParseLevel for unrecognized text.
const LevelMissing slog.Level = -9999

// ParseLevel returns the recognized level. Prefixes of at least two
// letters are accepted, case-insensitively.
func ParseLevel(text string) slog.Level {
	switch strings.ToUpper(text) {
	case "DE", "DEB", "DEBU", "DEBUG":
		return slog.LevelDebug
	case "IN", "INF", "INFO":
		return slog.LevelInfo
	case "WA", "WAR", "WARN", "WARNING":
		return slog.LevelWarn
	case "ER", "ERR", "ERRO", "ERROR":
		return slog.LevelError
	}
	return LevelMissing
}

// New returns a text logger writing to w at the named level.
func New(w io.Writer, level string) (*slog.Logger, error) {
	lvl := ParseLevel(level)
	if lvl == LevelMissing {
		return nil, fmt.Errorf("%w: %q (use debug, info, warn or error)", ErrUnknownLevel, level)
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl})), nil
}

// Discard returns a logger that drops every record.
func Discard() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// Err returns a log attribute, if an error occurred.
func Err(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("err", err)
}
