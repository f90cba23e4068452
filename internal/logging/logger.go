package logging

import (
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// New constructs a zerolog logger from the configured level and format.
// Defaults to JSON on stdout at info level when the values are empty or
// unrecognized.
func New(level, format, env string) zerolog.Logger {
	lvl := zerolog.InfoLevel
	if parsed, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level))); err == nil {
		lvl = parsed
	}

	var out = os.Stdout
	writer := zerolog.New(out)
	if strings.ToLower(strings.TrimSpace(format)) == "console" {
		writer = zerolog.New(zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339})
	}

	zerolog.TimeFieldFormat = time.RFC3339Nano
	return writer.
		Level(lvl).
		With().
		Timestamp().
		Str("app", "shareit").
		Str("env", env).
		Logger()
}
