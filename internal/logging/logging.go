package logging

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/pefman/alpha-counter/internal/config"
)

// New builds the process logger. Unknown levels fall back to info.
func New(cfg config.Config, out io.Writer) zerolog.Logger {
	if out == nil {
		out = os.Stderr
	}
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	if cfg.LogFormat != "json" {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.TimeOnly}
	}
	return zerolog.New(out).Level(level).With().Timestamp().Logger()
}
