package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/bornholm/go-x/slogx"
	"github.com/bornholm/todo/internal/core/model"
	"github.com/pkg/errors"
)

const (
	MessageTodoDeleted      = "todo deleted"
	MessageNotFound         = "not found"
	MessageMethodNotAllowed = "method not allowed"
	MessageInternalError    = "internal server error"
)

type Todo struct {
	ID          model.TodoID `json:"id"`
	Value       string       `json:"value"`
	IsCompleted bool         `json:"isCompleted"`
	CreatedAt   time.Time    `json:"createdAt"`
	UpdatedAt   time.Time    `json:"updatedAt"`
}

type DataResponse[T any] struct {
	Message string `json:"message,omitempty"`
	Data    T      `json:"data"`
}

type ErrorResponse struct {
	Message string `json:"message"`
}

type DeletedTodo struct {
	ID model.TodoID `json:"id"`
}

type ListTodosResponse = DataResponse[[]Todo]

type TodoResponse = DataResponse[Todo]

type DeleteTodoResponse = DataResponse[DeletedTodo]

func toTodo(t model.Todo) Todo {
	return Todo{
		ID:          t.ID(),
		Value:       t.Value(),
		IsCompleted: t.Completed(),
		CreatedAt:   t.CreatedAt(),
		UpdatedAt:   t.UpdatedAt(),
	}
}

func toTodos(todos []model.Todo) []Todo {
	res := make([]Todo, 0, len(todos))
	for _, t := range todos {
		res = append(res, toTodo(t))
	}
	return res
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, res any) {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", " ")

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := encoder.Encode(res); err != nil {
		slog.ErrorContext(r.Context(), "could not encode response", slogx.Error(errors.WithStack(err)))
	}
}
