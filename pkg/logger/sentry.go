package logger

import (
	"context"
	"errors"
	"log/slog"
	"os"

	"github.com/getsentry/sentry-go"
	sentryslog "github.com/getsentry/sentry-go/slog"
)

// SentryConfig configures the Sentry destination. An empty DSN disables it,
// which is the expected state in local development.
type SentryConfig struct {
	DSN         string `yaml:"dsn"`
	Environment string `yaml:"environment"`
	// MinLevel is the lowest level forwarded as a Sentry log entry.
	// Errors become Sentry issues regardless.
	MinLevel slog.Level
}

// NewWithSentry returns the stdout JSON logger from New, additionally
// mirroring records to Sentry when cfg.DSN is set. A failed Sentry init is
// reported once and the logger degrades to stdout only, so a bad DSN never
// takes the application down.
func NewWithSentry(cfg SentryConfig, extractors ...ContextExtractor) *slog.Logger {
	stdout := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
	if cfg.DSN == "" {
		return slog.New(withExtractors(stdout, extractors))
	}

	err := sentry.Init(sentry.ClientOptions{
		Dsn:         cfg.DSN,
		Environment: cfg.Environment,
		EnableLogs:  true,
	})
	if err != nil {
		slog.New(stdout).Error("sentry init failed, logging to stdout only", "error", err)
		return slog.New(withExtractors(stdout, extractors))
	}

	logLevels := []slog.Level{slog.LevelWarn, slog.LevelError}
	if cfg.MinLevel == slog.LevelError {
		logLevels = []slog.Level{slog.LevelError}
	}
	mirror := sentryslog.Option{
		EventLevel: []slog.Level{slog.LevelError},
		LogLevel:   logLevels,
	}.NewSentryHandler(context.Background())

	// Extractors sit outside the tee so both destinations carry the same
	// request-scoped attributes.
	return slog.New(withExtractors(tee{stdout, mirror}, extractors))
}

// tee sends each record to every handler that wants it.
type tee []slog.Handler

func (t tee) Enabled(ctx context.Context, level slog.Level) bool {
	for _, h := range t {
		if h.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (t tee) Handle(ctx context.Context, rec slog.Record) error {
	var errs []error
	for _, h := range t {
		if h.Enabled(ctx, rec.Level) {
			if err := h.Handle(ctx, rec.Clone()); err != nil {
				errs = append(errs, err)
			}
		}
	}
	return errors.Join(errs...)
}

func (t tee) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := make(tee, len(t))
	for i, h := range t {
		next[i] = h.WithAttrs(attrs)
	}
	return next
}

func (t tee) WithGroup(name string) slog.Handler {
	next := make(tee, len(t))
	for i, h := range t {
		next[i] = h.WithGroup(name)
	}
	return next
}
