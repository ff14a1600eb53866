package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

func New(environment string) zerolog.Logger {
	return NewWithWriter(environment, os.Stdout)
}

// NewWithWriter builds a console logger for development and a JSON logger elsewhere.
func NewWithWriter(environment string, out io.Writer) zerolog.Logger {
	zerolog.TimeFieldFormat = time.RFC3339

	level := zerolog.InfoLevel
	var w io.Writer = out
	if strings.EqualFold(environment, "development") {
		level = zerolog.DebugLevel
		w = zerolog.ConsoleWriter{Out: out, TimeFormat: "15:04:05"}
	}

	return zerolog.New(w).
		Level(level).
		With().
		Timestamp().
		Str("service", "supply-contracts").
		Logger()
}
