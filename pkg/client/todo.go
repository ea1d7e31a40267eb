package client

import (
	"context"
	"net/http"

	"github.com/bornholm/todo/internal/core/model"
	"github.com/bornholm/todo/internal/http/handler/api"
	"github.com/pkg/errors"
)

func (c *Client) ListTodos(ctx context.Context) ([]api.Todo, error) {
	var res api.ListTodosResponse
	if err := c.jsonRequest(ctx, http.MethodGet, "/get-todo", nil, &res); err != nil {
		return nil, errors.WithStack(err)
	}

	return res.Data, nil
}

func (c *Client) AddTodo(ctx context.Context, value string, completed bool) (*api.Todo, error) {
	req := api.TodoRequest{
		Value:       value,
		IsCompleted: completed,
	}

	var res api.TodoResponse
	if err := c.jsonRequest(ctx, http.MethodPost, "/add-todo", req, &res); err != nil {
		return nil, errors.WithStack(err)
	}

	return &res.Data, nil
}

func (c *Client) ToggleTodo(ctx context.Context, id model.TodoID) (*api.Todo, error) {
	req := api.TodoRequest{
		ID: string(id),
	}

	var res api.TodoResponse
	if err := c.jsonRequest(ctx, http.MethodPost, "/update-todo", req, &res); err != nil {
		return nil, errors.WithStack(err)
	}

	return &res.Data, nil
}

func (c *Client) SetTodo(ctx context.Context, id model.TodoID, completed bool) (*api.Todo, error) {
	req := api.TodoRequest{
		ID:          string(id),
		IsCompleted: completed,
	}

	var res api.TodoResponse
	if err := c.jsonRequest(ctx, http.MethodPost, "/set-todo", req, &res); err != nil {
		return nil, errors.WithStack(err)
	}

	return &res.Data, nil
}

func (c *Client) DeleteTodo(ctx context.Context, id model.TodoID) error {
	req := api.TodoRequest{
		ID: string(id),
	}

	var res api.DeleteTodoResponse
	if err := c.jsonRequest(ctx, http.MethodPost, "/del-todo", req, &res); err != nil {
		return errors.WithStack(err)
	}

	return nil
}
