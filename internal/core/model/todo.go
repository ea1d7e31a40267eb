package model

import (
	"time"
)

type TodoID string

// Todo is a single item of the todo list.
// Its identifier and creation date are assigned by the
// store and never change afterwards.
type Todo interface {
	WithID[TodoID]
	WithLifecycle

	Value() string
	Completed() bool
}

type BaseTodo struct {
	id        TodoID
	value     string
	completed bool
	createdAt time.Time
	updatedAt time.Time
}

// ID implements [Todo].
func (t *BaseTodo) ID() TodoID {
	return t.id
}

// Value implements [Todo].
func (t *BaseTodo) Value() string {
	return t.value
}

// Completed implements [Todo].
func (t *BaseTodo) Completed() bool {
	return t.completed
}

// CreatedAt implements [Todo].
func (t *BaseTodo) CreatedAt() time.Time {
	return t.createdAt
}

// UpdatedAt implements [Todo].
func (t *BaseTodo) UpdatedAt() time.Time {
	return t.updatedAt
}

func NewTodo(id TodoID, value string, completed bool, createdAt time.Time, updatedAt time.Time) *BaseTodo {
	return &BaseTodo{
		id:        id,
		value:     value,
		completed: completed,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

var _ Todo = &BaseTodo{}
