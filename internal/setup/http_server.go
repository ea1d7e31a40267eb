package setup

import (
	"context"
	"log/slog"

	"github.com/bornholm/todo/internal/config"
	"github.com/bornholm/todo/internal/http"
	"github.com/bornholm/todo/internal/http/handler/frontend"
	"github.com/bornholm/todo/internal/http/handler/health"
	"github.com/bornholm/todo/internal/http/handler/metrics"
	"github.com/bornholm/todo/internal/http/middleware/ratelimit"
	sentryhttp "github.com/getsentry/sentry-go/http"
	"github.com/pkg/errors"
	"github.com/rs/cors"
	sloghttp "github.com/samber/slog-http"
)

type closer interface {
	Close(ctx context.Context) error
}

func NewHTTPServerFromConfig(ctx context.Context, conf *config.Config) (*http.Server, error) {
	api, err := getAPIHandlerFromConfig(ctx, conf)
	if err != nil {
		return nil, errors.Wrap(err, "could not configure api handler from config")
	}

	store, err := getTodoStoreFromConfig(ctx, conf)
	if err != nil {
		return nil, errors.Wrap(err, "could not create todo store from config")
	}

	options := []http.OptionFunc{
		http.WithAddress(conf.HTTP.Address),
		http.WithBaseURL(conf.HTTP.BaseURL),
		http.WithShutdownTimeout(conf.HTTP.ShutdownTimeout),
		http.WithMount("/api/", api),
		http.WithMount("/healthz", health.NewHandler(store)),
		http.WithMiddlewares(httpMiddlewaresFromConfig(conf)...),
	}

	if conf.HTTP.Metrics.Enabled {
		options = append(options, http.WithMount("/metrics", metrics.NewHandler()))
	}

	if conf.HTTP.Frontend.Enabled {
		options = append(options, http.WithMount("/", frontend.NewHandler(frontend.WithBaseURL(conf.HTTP.BaseURL))))
	}

	if c, ok := store.(closer); ok {
		options = append(options, http.WithShutdownHook(func(ctx context.Context) error {
			slog.InfoContext(ctx, "closing todo store")
			return c.Close(ctx)
		}))
	}

	server := http.NewServer(options...)

	return server, nil
}

// httpMiddlewaresFromConfig returns the middlewares wrapping every route,
// outermost first.
func httpMiddlewaresFromConfig(conf *config.Config) []http.Middleware {
	middlewares := []http.Middleware{
		sloghttp.NewWithConfig(slog.Default(), sloghttp.Config{
			DefaultLevel:     slog.LevelInfo,
			ClientErrorLevel: slog.LevelWarn,
			ServerErrorLevel: slog.LevelError,
			WithUserAgent:    true,
			WithRequestID:    true,
		}),
	}

	if conf.Sentry.DSN != "" {
		middlewares = append(middlewares, sentryhttp.New(sentryhttp.Options{
			Repanic: true,
		}).Handle)
	}

	middlewares = append(middlewares, cors.New(cors.Options{
		AllowedOrigins: conf.HTTP.CORS.AllowedOrigins,
		AllowedMethods: conf.HTTP.CORS.AllowedMethods,
		AllowedHeaders: conf.HTTP.CORS.AllowedHeaders,
	}).Handler)

	if conf.HTTP.RateLimit.Enabled {
		middlewares = append(middlewares, ratelimit.Middleware(
			conf.HTTP.RateLimit.TrustHeaders,
			conf.HTTP.RateLimit.Interval,
			conf.HTTP.RateLimit.MaxBurst,
			conf.HTTP.RateLimit.CacheSize,
			conf.HTTP.RateLimit.CacheTTL,
		))
	}

	return middlewares
}
