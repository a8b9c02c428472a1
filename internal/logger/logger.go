package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// New builds the process logger. Development gets human-readable console
// output; everything else is JSON on stdout.
func New(env string) zerolog.Logger {
	var w io.Writer = os.Stdout
	if env == "development" {
		w = zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
	}

	level := zerolog.InfoLevel
	if env == "development" {
		level = zerolog.DebugLevel
	}

	return zerolog.New(w).Level(level).With().Timestamp().Logger()
}
