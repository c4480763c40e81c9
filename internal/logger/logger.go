package logger

import (
	"os"
	"time"

	"github.com/rs/zerolog"
)

// New returns the application logger: human-readable console output in
// development, JSON everywhere else.
func New(env string) zerolog.Logger {
	if env == "development" {
		return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
			With().Timestamp().Logger().
			Level(zerolog.DebugLevel)
	}

	return zerolog.New(os.Stderr).
		With().Timestamp().Logger().
		Level(zerolog.InfoLevel)
}
