package setup

import (
	"context"
	"log/slog"
	"time"

	"github.com/bornholm/todo/internal/build"
	"github.com/bornholm/todo/internal/config"
	"github.com/getsentry/sentry-go"
	"github.com/pkg/errors"
)

// SetupSentry initializes the error reporting client when a dsn is configured.
// The returned function flushes pending events and is never nil.
func SetupSentry(ctx context.Context, conf *config.Config) (func(), error) {
	if conf.Sentry.DSN == "" {
		return func() {}, nil
	}

	err := sentry.Init(sentry.ClientOptions{
		Dsn:         conf.Sentry.DSN,
		Environment: conf.Sentry.Environment,
		Release:     build.ShortVersion,
	})
	if err != nil {
		return nil, errors.Wrap(err, "could not initialize sentry")
	}

	slog.InfoContext(ctx, "error reporting enabled", slog.String("environment", conf.Sentry.Environment))

	return func() {
		sentry.Flush(2 * time.Second)
	}, nil
}
