package port

import (
	"context"

	"github.com/bornholm/todo/internal/core/model"
)

type TodoStore interface {
	// QueryTodos returns every todo, most recently created first
	QueryTodos(ctx context.Context) ([]model.Todo, error)

	// CreateTodo persists a new todo and returns it with its assigned id and timestamps
	CreateTodo(ctx context.Context, value string, completed bool) (model.Todo, error)

	// GetTodoByID returns the todo with the given id, or port.ErrNotFound
	GetTodoByID(ctx context.Context, id model.TodoID) (model.Todo, error)

	// ToggleTodo atomically flips the completion flag of the given todo and returns the updated todo
	ToggleTodo(ctx context.Context, id model.TodoID) (model.Todo, error)

	// UpdateTodo applies the given updates to the todo and returns the updated todo
	UpdateTodo(ctx context.Context, id model.TodoID, updates TodoUpdates) (model.Todo, error)

	// DeleteTodo removes the todo with the given id, or returns port.ErrNotFound
	DeleteTodo(ctx context.Context, id model.TodoID) error

	// Ping checks that the store is reachable
	Ping(ctx context.Context) error
}

type TodoUpdates struct {
	Completed *bool
}
