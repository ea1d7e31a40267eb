package memory

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/bornholm/todo/internal/core/model"
	"github.com/bornholm/todo/internal/core/port"
	"github.com/pkg/errors"
	"github.com/rs/xid"
)

type todoRecord struct {
	ID        model.TodoID
	Value     string
	Completed bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (r todoRecord) toTodo() model.Todo {
	return model.NewTodo(r.ID, r.Value, r.Completed, r.CreatedAt, r.UpdatedAt)
}

// TodoStore keeps todos in process memory. Its content is lost on restart.
type TodoStore struct {
	mutex sync.RWMutex
	todos map[model.TodoID]todoRecord
}

// QueryTodos implements port.TodoStore.
func (s *TodoStore) QueryTodos(ctx context.Context) ([]model.Todo, error) {
	s.mutex.RLock()
	records := make([]todoRecord, 0, len(s.todos))
	for _, r := range s.todos {
		records = append(records, r)
	}
	s.mutex.RUnlock()

	slices.SortFunc(records, func(r1, r2 todoRecord) int {
		if c := r2.CreatedAt.Compare(r1.CreatedAt); c != 0 {
			return c
		}

		switch {
		case r1.ID > r2.ID:
			return -1
		case r1.ID < r2.ID:
			return 1
		default:
			return 0
		}
	})

	todos := make([]model.Todo, 0, len(records))
	for _, r := range records {
		todos = append(todos, r.toTodo())
	}

	return todos, nil
}

// CreateTodo implements port.TodoStore.
func (s *TodoStore) CreateTodo(ctx context.Context, value string, completed bool) (model.Todo, error) {
	now := time.Now().UTC()

	record := todoRecord{
		ID:        model.TodoID(xid.New().String()),
		Value:     value,
		Completed: completed,
		CreatedAt: now,
		UpdatedAt: now,
	}

	s.mutex.Lock()
	s.todos[record.ID] = record
	s.mutex.Unlock()

	return record.toTodo(), nil
}

// GetTodoByID implements port.TodoStore.
func (s *TodoStore) GetTodoByID(ctx context.Context, id model.TodoID) (model.Todo, error) {
	if err := validateID(id); err != nil {
		return nil, errors.WithStack(err)
	}

	s.mutex.RLock()
	defer s.mutex.RUnlock()

	record, exists := s.todos[id]
	if !exists {
		return nil, errors.WithStack(port.ErrNotFound)
	}

	return record.toTodo(), nil
}

// ToggleTodo implements port.TodoStore.
func (s *TodoStore) ToggleTodo(ctx context.Context, id model.TodoID) (model.Todo, error) {
	return s.update(id, func(r *todoRecord) {
		r.Completed = !r.Completed
	})
}

// UpdateTodo implements port.TodoStore.
func (s *TodoStore) UpdateTodo(ctx context.Context, id model.TodoID, updates port.TodoUpdates) (model.Todo, error) {
	return s.update(id, func(r *todoRecord) {
		if updates.Completed != nil {
			r.Completed = *updates.Completed
		}
	})
}

// DeleteTodo implements port.TodoStore.
func (s *TodoStore) DeleteTodo(ctx context.Context, id model.TodoID) error {
	if err := validateID(id); err != nil {
		return errors.WithStack(err)
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()

	if _, exists := s.todos[id]; !exists {
		return errors.WithStack(port.ErrNotFound)
	}

	delete(s.todos, id)

	return nil
}

// Ping implements port.TodoStore.
func (s *TodoStore) Ping(ctx context.Context) error {
	return nil
}

func (s *TodoStore) update(id model.TodoID, fn func(r *todoRecord)) (model.Todo, error) {
	if err := validateID(id); err != nil {
		return nil, errors.WithStack(err)
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()

	record, exists := s.todos[id]
	if !exists {
		return nil, errors.WithStack(port.ErrNotFound)
	}

	fn(&record)
	record.UpdatedAt = time.Now().UTC()

	s.todos[id] = record

	return record.toTodo(), nil
}

func validateID(id model.TodoID) error {
	if _, err := xid.FromString(string(id)); err != nil {
		return errors.Wrapf(port.ErrInvalidID, "'%s' is not a valid xid", id)
	}

	return nil
}

func NewTodoStore() *TodoStore {
	return &TodoStore{
		todos: make(map[model.TodoID]todoRecord),
	}
}

var _ port.TodoStore = &TodoStore{}
