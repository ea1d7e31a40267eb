package setup

import (
	"context"

	"github.com/bornholm/todo/internal/config"
	"github.com/bornholm/todo/internal/core/service"
	"github.com/pkg/errors"
)

var getTodoManagerFromConfig = createFromConfigOnce(func(ctx context.Context, conf *config.Config) (*service.TodoManager, error) {
	store, err := getTodoStoreFromConfig(ctx, conf)
	if err != nil {
		return nil, errors.Wrap(err, "could not create todo store from config")
	}

	return service.NewTodoManager(store), nil
})
