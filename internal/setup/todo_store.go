package setup

import (
	"context"
	"log/slog"
	"net/url"

	"github.com/bornholm/go-x/slogx"
	"github.com/bornholm/todo/internal/config"
	"github.com/bornholm/todo/internal/core/port"
	"github.com/bornholm/todo/internal/metrics"
	"github.com/pkg/errors"
)

var TodoStore = NewRegistry[port.TodoStore]()

var getTodoStoreFromConfig = createFromConfigOnce(newTodoStoreFromConfig)

// newTodoStoreFromConfig opens the configured store, falling back to the
// secondary store when the primary one cannot be opened.
func newTodoStoreFromConfig(ctx context.Context, conf *config.Config) (port.TodoStore, error) {
	store, err := openTodoStore(ctx, conf, conf.Storage.URI)
	if err == nil {
		metrics.StoreUp.Set(1)
		return store, nil
	}

	if !conf.Storage.FallbackEnabled {
		return nil, errors.Wrapf(err, "could not open todo store '%s'", redact(conf.Storage.URI))
	}

	slog.WarnContext(ctx, "could not open todo store, using fallback",
		slog.String("uri", redact(conf.Storage.URI)),
		slog.String("fallback", redact(conf.Storage.FallbackURI)),
		slogx.Error(err),
	)

	store, err = openTodoStore(ctx, conf, conf.Storage.FallbackURI)
	if err != nil {
		return nil, errors.Wrapf(err, "could not open fallback todo store '%s'", redact(conf.Storage.FallbackURI))
	}

	metrics.StoreUp.Set(1)

	return store, nil
}

func openTodoStore(ctx context.Context, conf *config.Config, rawURL string) (port.TodoStore, error) {
	ctx, cancel := context.WithTimeout(ctx, conf.Storage.ConnectTimeout)
	defer cancel()

	store, err := TodoStore.From(ctx, rawURL)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	slog.InfoContext(ctx, "using todo store", slog.String("uri", redact(rawURL)))

	return store, nil
}

func redact(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "<invalid url>"
	}

	return u.Redacted()
}
