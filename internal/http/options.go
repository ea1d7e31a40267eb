package http

import (
	"context"
	"net/http"
	"time"
)

type Middleware func(http.Handler) http.Handler

type ShutdownHook func(ctx context.Context) error

type Options struct {
	Address         string
	BaseURL         string
	ShutdownTimeout time.Duration
	Mounts          map[string]http.Handler
	// Middlewares wrapping every mount, outermost first
	Middlewares   []Middleware
	ShutdownHooks []ShutdownHook
}

type OptionFunc func(opts *Options)

func NewOptions(funcs ...OptionFunc) *Options {
	opts := &Options{
		Address:         ":3000",
		BaseURL:         "",
		ShutdownTimeout: 10 * time.Second,
		Mounts:          map[string]http.Handler{},
		Middlewares:     make([]Middleware, 0),
		ShutdownHooks:   make([]ShutdownHook, 0),
	}
	for _, fn := range funcs {
		fn(opts)
	}
	return opts
}

// WithMount serves the handler under the given prefix. A prefix ending
// with a slash matches the whole subtree and is stripped from the request
// path before reaching the handler.
func WithMount(prefix string, handler http.Handler) OptionFunc {
	return func(opts *Options) {
		opts.Mounts[prefix] = handler
	}
}

func WithBaseURL(baseURL string) OptionFunc {
	return func(opts *Options) {
		opts.BaseURL = baseURL
	}
}

func WithAddress(addr string) OptionFunc {
	return func(opts *Options) {
		opts.Address = addr
	}
}

func WithShutdownTimeout(timeout time.Duration) OptionFunc {
	return func(opts *Options) {
		opts.ShutdownTimeout = timeout
	}
}

func WithMiddlewares(middlewares ...Middleware) OptionFunc {
	return func(opts *Options) {
		opts.Middlewares = append(opts.Middlewares, middlewares...)
	}
}

// WithShutdownHook registers a function called once the server
// stopped accepting requests.
func WithShutdownHook(hook ShutdownHook) OptionFunc {
	return func(opts *Options) {
		opts.ShutdownHooks = append(opts.ShutdownHooks, hook)
	}
}
