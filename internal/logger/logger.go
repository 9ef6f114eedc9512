package logger

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

var base = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
	With().Timestamp().Logger()

// InitLogging configures the global logger. An empty path logs to stderr in console format,
// otherwise JSON lines are appended to the file.
func InitLogging(path string) {
	var out io.Writer = zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	if path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "cannot open log file %s, falling back to stderr: %v\n", path, err)
		} else {
			out = f
		}
	}
	base = zerolog.New(out).With().Timestamp().Logger()
	zerolog.DefaultContextLogger = &base
}

// SetLevel parses a zerolog level name; unknown names keep the current level.
func SetLevel(level string) {
	if lvl, err := zerolog.ParseLevel(level); err == nil && level != "" {
		zerolog.SetGlobalLevel(lvl)
	}
}

// SetOutput redirects the logger, mostly useful in tests.
func SetOutput(w io.Writer) {
	base = zerolog.New(w).With().Timestamp().Logger()
	zerolog.DefaultContextLogger = &base
}

// WithRunID returns a context whose logger tags every entry with the batch run id.
func WithRunID(ctx context.Context, runID string) context.Context {
	l := from(ctx).With().Str("run_id", runID).Logger()
	return l.WithContext(ctx)
}

func from(ctx context.Context) *zerolog.Logger {
	if ctx == nil {
		return &base
	}
	l := zerolog.Ctx(ctx)
	if l.GetLevel() == zerolog.Disabled {
		return &base
	}
	return l
}

func DebugLog(ctx context.Context, format string, args ...interface{}) {
	from(ctx).Debug().Msgf(format, args...)
}

func InfoLog(ctx context.Context, format string, args ...interface{}) {
	from(ctx).Info().Msgf(format, args...)
}

func WarnLog(ctx context.Context, format string, args ...interface{}) {
	from(ctx).Warn().Msgf(format, args...)
}

func ErrorLog(ctx context.Context, format string, args ...interface{}) {
	from(ctx).Error().Msgf(format, args...)
}
