package logging

import (
	"context"
	"io"
	"log/slog"
	"time"

	sentryslog "github.com/getsentry/sentry-go/slog"
	"github.com/lmittmann/tint"
	slogmulti "github.com/samber/slog-multi"
)

// New builds the bot logger: colored console output plus Sentry events for warnings and errors.
// Sentry must be initialised before the logger is used for events to be delivered.
func New(w io.Writer, level slog.Leveler, noColor bool) *slog.Logger {
	return slog.New(slogmulti.Fanout(
		tint.NewHandler(w, &tint.Options{
			Level:      level,
			TimeFormat: time.DateTime,
			NoColor:    noColor,
		}),
		sentryslog.Option{
			EventLevel: []slog.Level{slog.LevelWarn, slog.LevelError},
			LogLevel:   []slog.Level{},
		}.NewSentryHandler(context.Background())))
}
