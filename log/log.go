// Package log provides scoped structured logging on top of zerolog.
// A logger travels in a context; New and Ctx fall back to the global logger set by InitGlobals.
package log

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
)

// Logger is a scoped zerolog logger.
type Logger struct {
	zl *zerolog.Logger
}

// Attr adds a field to a logger context.
type Attr func(l zerolog.Context) zerolog.Context

// Scope names the component that logs.
func Scope(s string) Attr {
	return func(l zerolog.Context) zerolog.Context {
		return l.Str("s", s)
	}
}

// Operation names the operation being performed.
func Operation(op string) Attr {
	return func(l zerolog.Context) zerolog.Context {
		return l.Str("op", op)
	}
}

// RequestID tags HTTP request logs.
func RequestID(id string) Attr {
	return func(l zerolog.Context) zerolog.Context {
		return l.Str("req", id)
	}
}

// ListName tags logs about a named list.
func ListName(name string) Attr {
	return func(l zerolog.Context) zerolog.Context {
		return l.Str("list", name)
	}
}

func Str(key, val string) Attr {
	return func(l zerolog.Context) zerolog.Context {
		return l.Str(key, val)
	}
}

func Int(key string, val int) Attr {
	return func(l zerolog.Context) zerolog.Context {
		return l.Int(key, val)
	}
}

func Int64(key string, val int64) Attr {
	return func(l zerolog.Context) zerolog.Context {
		return l.Int64(key, val)
	}
}

// Elapsed records a duration in milliseconds.
func Elapsed(dur time.Duration) Attr {
	return func(l zerolog.Context) zerolog.Context {
		return l.Dur("elapsed", dur)
	}
}

// New returns the global logger with the given scope.
func New(scope string) *Logger {
	return Ctx(context.Background()).With(Scope(scope))
}

// Ctx returns the logger stored in ctx, or the global one.
func Ctx(ctx context.Context) *Logger {
	return &Logger{zl: zerolog.Ctx(ctx)}
}

// WithAttrs returns a copy of ctx whose logger has the attrs added.
func WithAttrs(ctx context.Context, attrs ...Attr) context.Context {
	return Ctx(ctx).With(attrs...).WithContext(ctx)
}

// CopyContext carries the logger of from into to.
func CopyContext(from, to context.Context) context.Context {
	return zerolog.Ctx(from).WithContext(to)
}

// With returns a child logger with the attrs added.
func (l *Logger) With(attrs ...Attr) *Logger {
	c := l.zl.With()
	for _, attr := range attrs {
		c = attr(c)
	}

	zl := c.Logger()

	return &Logger{zl: &zl}
}

// WithContext stores the logger in ctx.
func (l *Logger) WithContext(ctx context.Context) context.Context {
	return l.zl.WithContext(ctx)
}

// Unwrap returns the underlying zerolog logger.
func (l *Logger) Unwrap() *zerolog.Logger {
	return l.zl
}

func (l *Logger) Trace(msg string) {
	l.zl.Trace().Msg(msg)
}

func (l *Logger) Tracef(msg string, args ...any) {
	l.zl.Trace().Msgf(msg, args...)
}

func (l *Logger) Debug(msg string) {
	l.zl.Debug().Msg(msg)
}

func (l *Logger) Debugf(msg string, args ...any) {
	l.zl.Debug().Msgf(msg, args...)
}

func (l *Logger) Info(msg string) {
	l.zl.Info().Msg(msg)
}

func (l *Logger) Infof(msg string, args ...any) {
	l.zl.Info().Msgf(msg, args...)
}

func (l *Logger) Warn(msg string) {
	l.zl.Warn().Msg(msg)
}

func (l *Logger) Warnf(msg string, args ...any) {
	l.zl.Warn().Msgf(msg, args...)
}

func (l *Logger) Error(err error, msg string) {
	l.zl.Error().Err(err).Msg(msg)
}

func (l *Logger) Errorf(err error, msg string, args ...any) {
	l.zl.Error().Err(err).Msgf(msg, args...)
}

// InitGlobals builds the process logger and makes it the fallback for contexts
// without a logger. Colors are turned off when stderr is not a terminal.
func InitGlobals(level zerolog.Level, json, noColor bool) *zerolog.Logger {
	fd := os.Stderr.Fd()
	if !isatty.IsTerminal(fd) && !isatty.IsCygwinTerminal(fd) {
		noColor = true
	}

	l := newLogger(os.Stderr, level, json, noColor)

	zerolog.TimeFieldFormat = time.RFC3339Nano
	zerolog.DurationFieldUnit = time.Millisecond
	zerolog.DefaultContextLogger = l

	return l
}

func newLogger(out io.Writer, level zerolog.Level, json, noColor bool) *zerolog.Logger {
	w := out
	if !json {
		w = zerolog.NewConsoleWriter(func(w *zerolog.ConsoleWriter) {
			w.Out = out
			w.NoColor = noColor
			w.TimeFormat = time.DateTime
		})
	}

	l := zerolog.New(w).Level(level).With().Timestamp().Logger()

	return &l
}
