package mongo

import (
	"context"
	"net/url"
	"strings"

	"github.com/bornholm/todo/internal/core/port"
	"github.com/bornholm/todo/internal/setup"
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	DefaultDatabase   = "todo"
	DefaultCollection = "list"

	paramCollection = "collection"
)

func init() {
	setup.TodoStore.Register("mongodb", fromURL)
	setup.TodoStore.Register("mongodb+srv", fromURL)
}

func fromURL(ctx context.Context, u *url.URL) (port.TodoStore, error) {
	uri, database, collection := parseURL(u)

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, errors.Wrap(err, "could not connect to mongodb")
	}

	store := NewTodoStore(client, database, collection)

	if err := store.Ping(ctx); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, errors.Wrap(err, "could not ping mongodb")
	}

	if err := store.ensureIndexes(ctx); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, errors.Wrap(err, "could not create indexes")
	}

	return store, nil
}

// parseURL extracts the database and collection names from the store url and
// returns the connection uri without the parameters unknown to the driver.
func parseURL(u *url.URL) (uri string, database string, collection string) {
	cleaned := *u

	query := cleaned.Query()

	collection = query.Get(paramCollection)
	if collection == "" {
		collection = DefaultCollection
	}

	query.Del(paramCollection)
	cleaned.RawQuery = query.Encode()

	database = strings.Trim(cleaned.Path, "/")
	if database == "" {
		database = DefaultDatabase
	}

	return cleaned.String(), database, collection
}
