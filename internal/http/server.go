package http

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/bornholm/go-x/slogx"
	"github.com/pkg/errors"
)

type Server struct {
	opts *Options
}

// Handler returns the root handler with every mount and middleware applied.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	for prefix, handler := range s.opts.Mounts {
		if strings.HasSuffix(prefix, "/") {
			mux.Handle(prefix, http.StripPrefix(strings.TrimSuffix(prefix, "/"), handler))
			continue
		}

		mux.Handle(prefix, handler)
	}

	var handler http.Handler = mux

	baseURL := strings.TrimSuffix(s.opts.BaseURL, "/")
	if baseURL != "" {
		root := http.NewServeMux()
		root.Handle(baseURL+"/", http.StripPrefix(baseURL, mux))
		handler = root
	}

	handler = Recovery(handler)

	for i := len(s.opts.Middlewares) - 1; i >= 0; i-- {
		handler = s.opts.Middlewares[i](handler)
	}

	return handler
}

// Run serves requests until the given context is canceled, then drains
// in-flight requests and runs the shutdown hooks.
func (s *Server) Run(ctx context.Context) error {
	server := &http.Server{
		Addr:    s.opts.Address,
		Handler: s.Handler(),
	}

	listenErr := make(chan error, 1)

	go func() {
		defer close(listenErr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			listenErr <- errors.WithStack(err)
		}
	}()

	var runErr error

	select {
	case err := <-listenErr:
		runErr = err
	case <-ctx.Done():
		slog.InfoContext(ctx, "shutting down server", slog.Duration("timeout", s.opts.ShutdownTimeout))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.opts.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.ErrorContext(shutdownCtx, "could not shutdown server gracefully", slogx.Error(errors.WithStack(err)))
	}

	for _, hook := range s.opts.ShutdownHooks {
		if err := hook(shutdownCtx); err != nil {
			slog.ErrorContext(shutdownCtx, "shutdown hook failed", slogx.Error(errors.WithStack(err)))
		}
	}

	return runErr
}

func NewServer(funcs ...OptionFunc) *Server {
	opts := NewOptions(funcs...)
	return &Server{
		opts: opts,
	}
}
