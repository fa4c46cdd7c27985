package logger

import (
	"context"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Diagnostics always go to stderr: stdout carries the workbook bytes.
var (
	globalLogger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, NoColor: true}).
			With().Timestamp().Logger().Level(zerolog.InfoLevel)
	once sync.Once
)

// Init configures the global logger. level is a zerolog level name ("debug", "info", ...);
// unknown names fall back to info. When logFilePath is set, JSON lines are also appended there.
func Init(level, logFilePath string) {
	once.Do(func() {
		globalLogger = build(os.Stderr, level, logFilePath)
		log.Logger = globalLogger
	})
}

// New returns a logger writing human-readable lines to w. Used by tests and callers that
// want diagnostics somewhere other than stderr.
func New(w io.Writer, level string) zerolog.Logger {
	return build(w, level, "")
}

func build(console io.Writer, level, logFilePath string) zerolog.Logger {
	writers := []io.Writer{zerolog.ConsoleWriter{Out: console, NoColor: true}}

	if logFilePath != "" {
		file, err := os.OpenFile(logFilePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0664)
		if err != nil {
			io.WriteString(console, "Failed to open log file: "+err.Error()+"\n")
		} else {
			writers = append(writers, file)
		}
	}

	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}

	return zerolog.New(zerolog.MultiLevelWriter(writers...)).With().Timestamp().Logger().Level(lvl)
}

// WithLogger returns a context carrying l.
func WithLogger(ctx context.Context, l zerolog.Logger) context.Context {
	return l.WithContext(ctx)
}

// WithFields returns a context whose logger carries the extra fields.
func WithFields(ctx context.Context, fields map[string]interface{}) context.Context {
	l := getLogger(ctx).With().Fields(fields).Logger()
	return l.WithContext(ctx)
}

// getLogger extracts the logger from ctx, falling back to the global logger.
func getLogger(ctx context.Context) *zerolog.Logger {
	l := zerolog.Ctx(ctx)
	// zerolog.Ctx returns a disabled logger if none is in context
	if l.GetLevel() == zerolog.Disabled {
		return &globalLogger
	}
	return l
}

// DebugLog logs a debug level message.
func DebugLog(ctx context.Context, msg string, args ...interface{}) {
	getLogger(ctx).Debug().Msgf(msg, args...)
}

// InfoLog logs an info level message.
func InfoLog(ctx context.Context, msg string, args ...interface{}) {
	getLogger(ctx).Info().Msgf(msg, args...)
}

// WarnLog logs a warning level message.
func WarnLog(ctx context.Context, msg string, args ...interface{}) {
	getLogger(ctx).Warn().Msgf(msg, args...)
}

// ErrorLog logs an error level message. A leading error argument is also attached with Err.
func ErrorLog(ctx context.Context, msg string, args ...interface{}) {
	e := getLogger(ctx).Error()
	if len(args) > 0 {
		if err, ok := args[0].(error); ok {
			e = e.Err(err)
		}
	}
	e.Msgf(msg, args...)
}
