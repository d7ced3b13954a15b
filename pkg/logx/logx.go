// Package logx is the logging facade used across the service. It keeps the
// printf-style call sites short while emitting structured zerolog events.
package logx

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

// ParseLevel maps "debug", "info", "warn" and "error" to a Level, defaulting to info
func ParseLevel(s string) Level {
	switch s {
	case "debug":
		return LevelDebug
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}

func (l Level) zerolog() zerolog.Level {
	switch l {
	case LevelDebug:
		return zerolog.DebugLevel
	case LevelWarn:
		return zerolog.WarnLevel
	case LevelError:
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// Config controls output format and level
type Config struct {
	Level  Level
	Format string // "json" or "pretty"
	Output io.Writer
}

var (
	mu     sync.RWMutex
	logger = newLogger(Config{Level: LevelInfo, Format: "json"})
)

func newLogger(cfg Config) zerolog.Logger {
	out := cfg.Output
	if out == nil {
		out = os.Stdout
	}
	if cfg.Format == "pretty" {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}
	zerolog.TimeFieldFormat = time.RFC3339
	return zerolog.New(out).Level(cfg.Level.zerolog()).With().Timestamp().Logger()
}

// Init replaces the global logger
func Init(cfg Config) {
	mu.Lock()
	defer mu.Unlock()
	logger = newLogger(cfg)
}

// SetLevel changes the level of the global logger
func SetLevel(level Level) {
	mu.Lock()
	defer mu.Unlock()
	logger = logger.Level(level.zerolog())
}

func current() *zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	l := logger
	return &l
}

// Logger is a field-scoped logger
type Logger struct {
	z zerolog.Logger
}

// With returns a logger that adds key=value to every entry
func With(key string, value any) *Logger {
	return &Logger{z: current().With().Interface(key, value).Logger()}
}

// With adds another field
func (l *Logger) With(key string, value any) *Logger {
	return &Logger{z: l.z.With().Interface(key, value).Logger()}
}

func (l *Logger) Debugf(format string, args ...any) { l.z.Debug().Msgf(format, args...) }
func (l *Logger) Infof(format string, args ...any)  { l.z.Info().Msgf(format, args...) }
func (l *Logger) Warnf(format string, args ...any)  { l.z.Warn().Msgf(format, args...) }
func (l *Logger) Errorf(format string, args ...any) { l.z.Error().Msgf(format, args...) }

func Debug(args ...any) { current().Debug().Msg(fmt.Sprint(args...)) }
func Info(args ...any)  { current().Info().Msg(fmt.Sprint(args...)) }
func Warn(args ...any)  { current().Warn().Msg(fmt.Sprint(args...)) }
func Error(args ...any) { current().Error().Msg(fmt.Sprint(args...)) }

// Fatal logs and exits the process
func Fatal(args ...any) { current().Fatal().Msg(fmt.Sprint(args...)) }

func Debugf(format string, args ...any) { current().Debug().Msgf(format, args...) }
func Infof(format string, args ...any)  { current().Info().Msgf(format, args...) }
func Warnf(format string, args ...any)  { current().Warn().Msgf(format, args...) }
func Errorf(format string, args ...any) { current().Error().Msgf(format, args...) }

// Fatalf logs and exits the process
func Fatalf(format string, args ...any) { current().Fatal().Msgf(format, args...) }
