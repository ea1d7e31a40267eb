package mongo

import (
	"context"
	"time"

	"github.com/bornholm/todo/internal/core/model"
	"github.com/bornholm/todo/internal/core/port"
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

type TodoStore struct {
	client     *mongo.Client
	collection *mongo.Collection
}

// QueryTodos implements port.TodoStore.
func (s *TodoStore) QueryTodos(ctx context.Context) ([]model.Todo, error) {
	opts := options.Find().SetSort(bson.D{
		{Key: "createdAt", Value: -1},
		{Key: "_id", Value: -1},
	})

	cursor, err := s.collection.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	var records []*Todo
	if err := cursor.All(ctx, &records); err != nil {
		return nil, errors.WithStack(err)
	}

	todos := make([]model.Todo, 0, len(records))
	for _, r := range records {
		todos = append(todos, &wrappedTodo{r})
	}

	return todos, nil
}

// CreateTodo implements port.TodoStore.
func (s *TodoStore) CreateTodo(ctx context.Context, value string, completed bool) (model.Todo, error) {
	now := now()

	record := &Todo{
		ID:          primitive.NewObjectID(),
		Value:       value,
		IsCompleted: completed,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if _, err := s.collection.InsertOne(ctx, record); err != nil {
		return nil, errors.WithStack(err)
	}

	return &wrappedTodo{record}, nil
}

// GetTodoByID implements port.TodoStore.
func (s *TodoStore) GetTodoByID(ctx context.Context, id model.TodoID) (model.Todo, error) {
	objectID, err := parseID(id)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	var record Todo

	if err := s.collection.FindOne(ctx, bson.D{{Key: "_id", Value: objectID}}).Decode(&record); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, errors.WithStack(port.ErrNotFound)
		}

		return nil, errors.WithStack(err)
	}

	return &wrappedTodo{&record}, nil
}

// ToggleTodo implements port.TodoStore.
func (s *TodoStore) ToggleTodo(ctx context.Context, id model.TodoID) (model.Todo, error) {
	// The negation is evaluated by the server in a single
	// document update so concurrent toggles never read stale values.
	update := mongo.Pipeline{
		{{Key: "$set", Value: bson.D{
			{Key: "isCompleted", Value: bson.D{{Key: "$not", Value: bson.A{"$isCompleted"}}}},
			{Key: "updatedAt", Value: now()},
		}}},
	}

	return s.findOneAndUpdate(ctx, id, update)
}

// UpdateTodo implements port.TodoStore.
func (s *TodoStore) UpdateTodo(ctx context.Context, id model.TodoID, updates port.TodoUpdates) (model.Todo, error) {
	set := bson.D{}

	if updates.Completed != nil {
		set = append(set, bson.E{Key: "isCompleted", Value: *updates.Completed})
	}

	if len(set) == 0 {
		return s.GetTodoByID(ctx, id)
	}

	set = append(set, bson.E{Key: "updatedAt", Value: now()})

	return s.findOneAndUpdate(ctx, id, bson.D{{Key: "$set", Value: set}})
}

// DeleteTodo implements port.TodoStore.
func (s *TodoStore) DeleteTodo(ctx context.Context, id model.TodoID) error {
	objectID, err := parseID(id)
	if err != nil {
		return errors.WithStack(err)
	}

	res, err := s.collection.DeleteOne(ctx, bson.D{{Key: "_id", Value: objectID}})
	if err != nil {
		return errors.WithStack(err)
	}

	if res.DeletedCount == 0 {
		return errors.WithStack(port.ErrNotFound)
	}

	return nil
}

// Ping implements port.TodoStore.
func (s *TodoStore) Ping(ctx context.Context) error {
	if err := s.client.Ping(ctx, readpref.Primary()); err != nil {
		return errors.WithStack(err)
	}

	return nil
}

func (s *TodoStore) Close(ctx context.Context) error {
	if err := s.client.Disconnect(ctx); err != nil {
		return errors.WithStack(err)
	}

	return nil
}

func (s *TodoStore) findOneAndUpdate(ctx context.Context, id model.TodoID, update any) (model.Todo, error) {
	objectID, err := parseID(id)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var record Todo

	err = s.collection.FindOneAndUpdate(ctx, bson.D{{Key: "_id", Value: objectID}}, update, opts).Decode(&record)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, errors.WithStack(port.ErrNotFound)
		}

		return nil, errors.WithStack(err)
	}

	return &wrappedTodo{&record}, nil
}

func (s *TodoStore) ensureIndexes(ctx context.Context) error {
	_, err := s.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "createdAt", Value: -1},
			{Key: "_id", Value: -1},
		},
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return nil
}

func parseID(id model.TodoID) (primitive.ObjectID, error) {
	objectID, err := primitive.ObjectIDFromHex(string(id))
	if err != nil {
		return primitive.NilObjectID, errors.Wrapf(port.ErrInvalidID, "'%s' is not a valid object id", id)
	}

	return objectID, nil
}

// BSON dates only carry milliseconds.
func now() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}

func NewTodoStore(client *mongo.Client, database string, collection string) *TodoStore {
	return &TodoStore{
		client:     client,
		collection: client.Database(database).Collection(collection),
	}
}

var _ port.TodoStore = &TodoStore{}
