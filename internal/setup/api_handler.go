package setup

import (
	"context"

	"github.com/bornholm/todo/internal/config"
	"github.com/bornholm/todo/internal/http/handler/api"
	"github.com/pkg/errors"
)

func getAPIHandlerFromConfig(ctx context.Context, conf *config.Config) (*api.Handler, error) {
	todoManager, err := getTodoManagerFromConfig(ctx, conf)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	handler := api.NewHandler(
		todoManager,
		api.WithMaxBodySize(conf.HTTP.MaxBodySize),
	)

	return handler, nil
}
