package logger

import (
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/loopkiosk/pkg/message"

	"github.com/rs/zerolog"
)

// Config captures options for configuring the process logger
type Config struct {
	Level  string    // "debug", "info", ... defaults to info
	Format string    // "console" or "json"
	Output io.Writer // defaults to os.Stderr
}

var (
	mu   sync.RWMutex
	base = zerolog.New(os.Stderr).With().Timestamp().Logger()
)

// Configure replaces the process logger. Unknown levels fall back to info.
func Configure(cfg Config) zerolog.Logger {
	level, err := zerolog.ParseLevel(strings.ToLower(cfg.Level))
	if err != nil || cfg.Level == "" {
		level = zerolog.InfoLevel
	}
	zerolog.TimeFieldFormat = time.RFC3339

	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}
	if cfg.Format != "json" {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.Kitchen, NoColor: true}
	}

	l := zerolog.New(out).Level(level).With().Timestamp().Str("service", "loopkiosk").Logger()

	mu.Lock()
	base = l
	mu.Unlock()
	return l
}

// Base returns the configured process logger
func Base() zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return base
}

// WithComponent returns a child logger annotated with the given component name
func WithComponent(component string) zerolog.Logger {
	return Base().With().Str("component", component).Logger()
}

// Log a message received from a pipeline bus
func LogMessage(l zerolog.Logger, msg message.Message) {
	ev := l.Debug()
	switch msg.Kind {
	case message.Error:
		ev = l.Error().Err(msg.Err).Str("debug", msg.Debug)
	case message.Warning:
		ev = l.Warn().Err(msg.Err).Str("debug", msg.Debug)
	case message.EOS:
		ev = l.Info()
	}
	ev.Str("pipeline", msg.Pipeline).
		Str("source", msg.Source).
		Stringer("type", msg.Kind).
		Msg("bus message")
}
