// Package util holds process helpers shared by the command binaries.
package util

import (
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

// ParseLevel maps a config string to a zerolog level, falling back to info.
func ParseLevel(level string) zerolog.Level {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || lvl == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return lvl
}

// NewLogger returns a JSON logger on stdout.
func NewLogger(level string) zerolog.Logger {
	return zerolog.New(os.Stdout).With().Timestamp().Logger().Level(ParseLevel(level))
}

// NewConsoleLogger returns a human readable logger, used by the table tools.
func NewConsoleLogger(w io.Writer, level string) zerolog.Logger {
	out := zerolog.ConsoleWriter{Out: w, TimeFormat: "15:04:05", NoColor: true}
	return zerolog.New(out).With().Timestamp().Logger().Level(ParseLevel(level))
}

// Component tags every line with the emitting subsystem.
func Component(log zerolog.Logger, name string) zerolog.Logger {
	return log.With().Str("component", name).Logger()
}
