package gorm

import (
	"time"

	"github.com/bornholm/todo/internal/core/model"
)

type Todo struct {
	ID string `gorm:"primaryKey;autoIncrement:false"`

	// Timestamps are stored as unix nanoseconds so that ordering
	// on the column matches chronological ordering.
	CreatedAt int64 `gorm:"autoCreateTime:nano;index"`
	UpdatedAt int64 `gorm:"autoUpdateTime:nano"`

	Value     string
	Completed bool
}

type wrappedTodo struct {
	t *Todo
}

// ID implements model.Todo.
func (w *wrappedTodo) ID() model.TodoID {
	return model.TodoID(w.t.ID)
}

// Value implements model.Todo.
func (w *wrappedTodo) Value() string {
	return w.t.Value
}

// Completed implements model.Todo.
func (w *wrappedTodo) Completed() bool {
	return w.t.Completed
}

// CreatedAt implements model.Todo.
func (w *wrappedTodo) CreatedAt() time.Time {
	return time.Unix(0, w.t.CreatedAt).UTC()
}

// UpdatedAt implements model.Todo.
func (w *wrappedTodo) UpdatedAt() time.Time {
	return time.Unix(0, w.t.UpdatedAt).UTC()
}

var _ model.Todo = &wrappedTodo{}
