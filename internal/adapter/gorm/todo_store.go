package gorm

import (
	"context"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/bornholm/todo/internal/core/model"
	"github.com/bornholm/todo/internal/core/port"
	"github.com/ncruces/go-sqlite3"
	"github.com/pkg/errors"
	"github.com/rs/xid"
	"gorm.io/gorm"
)

type TodoStore struct {
	db          *gorm.DB
	getDatabase func(ctx context.Context) (*gorm.DB, error)
}

// QueryTodos implements port.TodoStore.
func (s *TodoStore) QueryTodos(ctx context.Context) ([]model.Todo, error) {
	var records []*Todo

	err := s.withRetry(ctx, func(ctx context.Context, db *gorm.DB) error {
		if err := db.Order("created_at desc").Order("id desc").Find(&records).Error; err != nil {
			return errors.WithStack(err)
		}

		return nil
	}, sqlite3.BUSY, sqlite3.LOCKED)
	if err != nil {
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
	record := &Todo{
		ID:        xid.New().String(),
		Value:     value,
		Completed: completed,
	}

	err := s.withRetry(ctx, func(ctx context.Context, db *gorm.DB) error {
		if err := db.Create(record).Error; err != nil {
			return errors.WithStack(err)
		}

		return nil
	}, sqlite3.BUSY, sqlite3.LOCKED)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return &wrappedTodo{record}, nil
}

// GetTodoByID implements port.TodoStore.
func (s *TodoStore) GetTodoByID(ctx context.Context, id model.TodoID) (model.Todo, error) {
	if err := validateID(id); err != nil {
		return nil, errors.WithStack(err)
	}

	var record Todo

	err := s.withRetry(ctx, func(ctx context.Context, db *gorm.DB) error {
		return findTodo(db, id, &record)
	}, sqlite3.BUSY, sqlite3.LOCKED)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return &wrappedTodo{&record}, nil
}

// ToggleTodo implements port.TodoStore.
func (s *TodoStore) ToggleTodo(ctx context.Context, id model.TodoID) (model.Todo, error) {
	return s.update(ctx, id, func(query *gorm.DB) *gorm.DB {
		return query.Update("completed", gorm.Expr("NOT completed"))
	})
}

// UpdateTodo implements port.TodoStore.
func (s *TodoStore) UpdateTodo(ctx context.Context, id model.TodoID, updates port.TodoUpdates) (model.Todo, error) {
	values := map[string]any{}

	if updates.Completed != nil {
		values["completed"] = *updates.Completed
	}

	if len(values) == 0 {
		return s.GetTodoByID(ctx, id)
	}

	return s.update(ctx, id, func(query *gorm.DB) *gorm.DB {
		return query.Updates(values)
	})
}

// DeleteTodo implements port.TodoStore.
func (s *TodoStore) DeleteTodo(ctx context.Context, id model.TodoID) error {
	if err := validateID(id); err != nil {
		return errors.WithStack(err)
	}

	err := s.withRetry(ctx, func(ctx context.Context, db *gorm.DB) error {
		res := db.Delete(&Todo{}, "id = ?", string(id))
		if res.Error != nil {
			return errors.WithStack(res.Error)
		}

		if res.RowsAffected == 0 {
			return errors.WithStack(port.ErrNotFound)
		}

		return nil
	}, sqlite3.BUSY, sqlite3.LOCKED)
	if err != nil {
		return errors.WithStack(err)
	}

	return nil
}

// Ping implements port.TodoStore.
func (s *TodoStore) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return errors.WithStack(err)
	}

	if err := sqlDB.PingContext(ctx); err != nil {
		return errors.WithStack(err)
	}

	return nil
}

func (s *TodoStore) Close(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return errors.WithStack(err)
	}

	if err := sqlDB.Close(); err != nil {
		return errors.WithStack(err)
	}

	return nil
}

func (s *TodoStore) update(ctx context.Context, id model.TodoID, fn func(query *gorm.DB) *gorm.DB) (model.Todo, error) {
	if err := validateID(id); err != nil {
		return nil, errors.WithStack(err)
	}

	var record Todo

	err := s.withRetry(ctx, func(ctx context.Context, db *gorm.DB) error {
		res := fn(db.Model(&Todo{}).Where("id = ?", string(id)))
		if res.Error != nil {
			return errors.WithStack(res.Error)
		}

		if res.RowsAffected == 0 {
			return errors.WithStack(port.ErrNotFound)
		}

		return findTodo(db, id, &record)
	}, sqlite3.BUSY, sqlite3.LOCKED)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return &wrappedTodo{&record}, nil
}

func (s *TodoStore) withRetry(ctx context.Context, fn func(ctx context.Context, db *gorm.DB) error, codes ...sqlite3.ErrorCode) error {
	db, err := s.getDatabase(ctx)
	if err != nil {
		return errors.WithStack(err)
	}

	backoff := 100 * time.Millisecond
	maxRetries := 5
	retries := 0

	for {
		err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			if err := fn(ctx, tx); err != nil {
				return errors.WithStack(err)
			}

			return nil
		})
		if err != nil {
			if retries >= maxRetries {
				return errors.WithStack(err)
			}

			var sqliteErr *sqlite3.Error
			if errors.As(err, &sqliteErr) {
				if !slices.Contains(codes, sqliteErr.Code()) {
					return errors.WithStack(err)
				}

				slog.DebugContext(ctx, "transaction failed, will retry", slog.Int("retries", retries), slog.Duration("backoff", backoff), slog.Any("error", errors.WithStack(err)))

				retries++
				time.Sleep(backoff)
				backoff *= 2
				continue
			}

			return errors.WithStack(err)
		}

		return nil
	}
}

func findTodo(db *gorm.DB, id model.TodoID, record *Todo) error {
	if err := db.First(record, "id = ?", string(id)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errors.WithStack(port.ErrNotFound)
		}

		return errors.WithStack(err)
	}

	return nil
}

func validateID(id model.TodoID) error {
	if _, err := xid.FromString(string(id)); err != nil {
		return errors.Wrapf(port.ErrInvalidID, "'%s' is not a valid xid", id)
	}

	return nil
}

func NewTodoStore(db *gorm.DB) *TodoStore {
	return &TodoStore{
		db:          db,
		getDatabase: createGetDatabase(db, &Todo{}),
	}
}

var _ port.TodoStore = &TodoStore{}

func createGetDatabase(db *gorm.DB, models ...any) func(ctx context.Context) (*gorm.DB, error) {
	var (
		migrateOnce sync.Once
		migrateErr  error
	)

	return func(ctx context.Context) (*gorm.DB, error) {
		migrateOnce.Do(func() {
			if err := db.AutoMigrate(models...); err != nil {
				migrateErr = errors.WithStack(err)
				return
			}
		})
		if migrateErr != nil {
			return nil, errors.WithStack(migrateErr)
		}

		return db, nil
	}
}
