/*
Package logger provides structured logging for pulsebar. It wraps
uber-go/zap behind a small interface so indicator internals can log tick
and lifecycle events without depending on zap directly.

Logs go to stderr by default so they never interleave with the indicator
line painted on stdout.

	log := logger.NewLogger(logger.Config{Verbosity: 1})
	log.WithFields(logger.Fields{"shape": "ring"}).Debug("Mounted indicator")

Verbosity:

	0: Info, Warn, Error (default)
	1: Debug + level 0
	2: Trace + level 1 (per-tick events)
*/
package logger

import (
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Fields carries structured context for a log entry
type Fields map[string]interface{}

// Format selects the zap encoder
type Format string

const (
	FormatJSON    Format = "json"
	FormatConsole Format = "console"
)

// Logger is the logging surface used across the module
type Logger interface {
	// Debug logs at debug level. Shown when verbosity >= 1
	Debug(msg string)

	// Info logs at info level
	Info(msg string)

	// Warn logs at warn level
	Warn(msg string)

	// Error logs at error level
	Error(msg string)

	// Trace logs at debug level with a TRACE prefix. Shown when verbosity >= 2
	Trace(msg string)

	// WithFields returns a child logger carrying the given fields
	WithFields(fields Fields) Logger
}

// Config holds the options for NewLogger
type Config struct {
	// Verbosity is the number of -v flags given
	Verbosity int

	// Format is json (default) or console
	Format Format

	// Output defaults to os.Stderr
	Output io.Writer
}

type logger struct {
	zap       *zap.Logger
	verbosity int
}

// NewLogger builds a zap-backed Logger
func NewLogger(config Config) Logger {
	if config.Output == nil {
		config.Output = os.Stderr
	}

	encoderConfig := zapcore.EncoderConfig{
		TimeKey:        "ts",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		MessageKey:     "message",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.LowercaseLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}

	var encoder zapcore.Encoder
	if config.Format == FormatConsole {
		encoder = zapcore.NewConsoleEncoder(encoderConfig)
	} else {
		encoder = zapcore.NewJSONEncoder(encoderConfig)
	}

	core := zapcore.NewCore(
		encoder,
		zapcore.AddSync(config.Output),
		levelFor(config.Verbosity),
	)

	return &logger{
		zap:       zap.New(core),
		verbosity: config.Verbosity,
	}
}

// Nop returns a Logger that discards everything
func Nop() Logger {
	return &logger{zap: zap.NewNop()}
}

func levelFor(verbosity int) zapcore.LevelEnabler {
	if verbosity <= 0 {
		return zapcore.InfoLevel
	}
	return zapcore.DebugLevel
}

func (l *logger) Debug(msg string) { l.zap.Debug(msg) }

func (l *logger) Info(msg string) { l.zap.Info(msg) }

func (l *logger) Warn(msg string) { l.zap.Warn(msg) }

func (l *logger) Error(msg string) { l.zap.Error(msg) }

func (l *logger) Trace(msg string) {
	if l.verbosity >= 2 {
		l.zap.Debug("TRACE: " + msg)
	}
}

func (l *logger) WithFields(fields Fields) Logger {
	zapFields := make([]zap.Field, 0, len(fields))
	for k, v := range fields {
		zapFields = append(zapFields, zap.Any(k, v))
	}

	return &logger{
		zap:       l.zap.With(zapFields...),
		verbosity: l.verbosity,
	}
}
