package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/bornholm/go-x/slogx"
	"github.com/bornholm/todo/internal/config"
	"github.com/bornholm/todo/internal/setup"
	"github.com/pkg/errors"

	// Todo stores
	_ "github.com/bornholm/todo/internal/adapter/gorm"
	_ "github.com/bornholm/todo/internal/adapter/memory"
	_ "github.com/bornholm/todo/internal/adapter/mongo"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	conf, err := config.Parse()
	if err != nil {
		slog.ErrorContext(ctx, "could not parse config", slog.Any("error", errors.WithStack(err)))
		os.Exit(1)
	}

	logger := slog.New(slogx.ContextHandler{
		Handler: slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level:     slog.Level(conf.Logger.Level),
			AddSource: true,
		}),
	})

	slog.SetDefault(logger)

	slog.DebugContext(ctx, "using configuration", slog.Any("config", conf))

	flushSentry, err := setup.SetupSentry(ctx, conf)
	if err != nil {
		slog.ErrorContext(ctx, "could not setup error reporting", slogx.Error(err))
		os.Exit(1)
	}

	defer flushSentry()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)

	go func() {
		slog.InfoContext(ctx, "use ctrl+c to interrupt")
		s := <-sig
		slog.InfoContext(ctx, "received signal", slog.String("signal", s.String()))
		cancel()
	}()

	server, err := setup.NewHTTPServerFromConfig(ctx, conf)
	if err != nil {
		slog.ErrorContext(ctx, "could not setup http server", slog.Any("error", errors.WithStack(err)))
		os.Exit(1)
	}

	slog.InfoContext(ctx, "starting server", slog.Any("address", conf.HTTP.Address))

	if err := server.Run(ctx); err != nil {
		slog.Error("could not run server", slog.Any("error", errors.WithStack(err)))
		os.Exit(1)
	}

	slog.InfoContext(ctx, "server stopped")
}
