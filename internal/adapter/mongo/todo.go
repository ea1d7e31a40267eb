package mongo

import (
	"time"

	"github.com/bornholm/todo/internal/core/model"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Todo struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Value       string             `bson:"value"`
	IsCompleted bool               `bson:"isCompleted"`
	CreatedAt   time.Time          `bson:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt"`
}

type wrappedTodo struct {
	t *Todo
}

// ID implements model.Todo.
func (w *wrappedTodo) ID() model.TodoID {
	return model.TodoID(w.t.ID.Hex())
}

// Value implements model.Todo.
func (w *wrappedTodo) Value() string {
	return w.t.Value
}

// Completed implements model.Todo.
func (w *wrappedTodo) Completed() bool {
	return w.t.IsCompleted
}

// CreatedAt implements model.Todo.
func (w *wrappedTodo) CreatedAt() time.Time {
	return w.t.CreatedAt.UTC()
}

// UpdatedAt implements model.Todo.
func (w *wrappedTodo) UpdatedAt() time.Time {
	return w.t.UpdatedAt.UTC()
}

var _ model.Todo = &wrappedTodo{}
