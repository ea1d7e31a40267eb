package service

import (
	"context"
	"strings"
	"unicode"

	"github.com/bornholm/todo/internal/core/model"
	"github.com/bornholm/todo/internal/core/port"
	"github.com/bornholm/todo/internal/metrics"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	ErrEmptyValue = errors.New("todo content must not be empty")
	ErrMissingID  = errors.New("missing todo id")
)

const (
	OperationList   = "list"
	OperationCreate = "create"
	OperationToggle = "toggle"
	OperationSet    = "set"
	OperationDelete = "delete"
)

// TodoManager applies the validation rules of the todo operations before
// delegating to the underlying store.
type TodoManager struct {
	port.TodoStore
}

func (m *TodoManager) ListTodos(ctx context.Context) (todos []model.Todo, err error) {
	defer observe(OperationList, &err)

	todos, err = m.TodoStore.QueryTodos(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "could not query todos")
	}

	if todos == nil {
		todos = make([]model.Todo, 0)
	}

	return todos, nil
}

func (m *TodoManager) CreateTodo(ctx context.Context, value string, completed bool) (todo model.Todo, err error) {
	defer observe(OperationCreate, &err)

	value = trimValue(value)
	if value == "" {
		return nil, errors.WithStack(ErrEmptyValue)
	}

	todo, err = m.TodoStore.CreateTodo(ctx, value, completed)
	if err != nil {
		return nil, errors.Wrap(err, "could not create todo")
	}

	return todo, nil
}

func (m *TodoManager) ToggleTodo(ctx context.Context, id model.TodoID) (todo model.Todo, err error) {
	defer observe(OperationToggle, &err)

	if id == "" {
		return nil, errors.WithStack(ErrMissingID)
	}

	todo, err = m.TodoStore.ToggleTodo(ctx, id)
	if err != nil {
		return nil, errors.Wrapf(err, "could not toggle todo '%s'", id)
	}

	return todo, nil
}

func (m *TodoManager) SetTodoCompletion(ctx context.Context, id model.TodoID, completed bool) (todo model.Todo, err error) {
	defer observe(OperationSet, &err)

	if id == "" {
		return nil, errors.WithStack(ErrMissingID)
	}

	todo, err = m.TodoStore.UpdateTodo(ctx, id, port.TodoUpdates{Completed: &completed})
	if err != nil {
		return nil, errors.Wrapf(err, "could not update todo '%s'", id)
	}

	return todo, nil
}

func (m *TodoManager) DeleteTodo(ctx context.Context, id model.TodoID) (err error) {
	defer observe(OperationDelete, &err)

	if id == "" {
		return errors.WithStack(ErrMissingID)
	}

	if err := m.TodoStore.DeleteTodo(ctx, id); err != nil {
		return errors.Wrapf(err, "could not delete todo '%s'", id)
	}

	return nil
}

// trimValue strips leading and trailing white space, byte order marks
// included.
func trimValue(value string) string {
	return strings.TrimFunc(value, func(r rune) bool {
		return unicode.IsSpace(r) || r == '\ufeff'
	})
}

func NewTodoManager(store port.TodoStore) *TodoManager {
	return &TodoManager{
		TodoStore: store,
	}
}

// IsValidationError reports whether err is caused by invalid caller input.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrEmptyValue) || errors.Is(err, ErrMissingID) || errors.Is(err, port.ErrInvalidID)
}

func observe(operation string, err *error) {
	outcome := metrics.OutcomeSuccess

	switch {
	case *err == nil:
	case IsValidationError(*err):
		outcome = metrics.OutcomeInvalid
	case errors.Is(*err, port.ErrNotFound):
		outcome = metrics.OutcomeNotFound
	default:
		outcome = metrics.OutcomeError
	}

	metrics.Operations.With(prometheus.Labels{
		metrics.LabelOperation: operation,
		metrics.LabelOutcome:   outcome,
	}).Inc()
}
