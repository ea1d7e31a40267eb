package memory

import (
	"context"
	"net/url"

	"github.com/bornholm/todo/internal/core/port"
	"github.com/bornholm/todo/internal/setup"
)

func init() {
	setup.TodoStore.Register("memory", func(ctx context.Context, u *url.URL) (port.TodoStore, error) {
		return NewTodoStore(), nil
	})
}
