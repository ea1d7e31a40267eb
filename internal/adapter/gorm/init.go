package gorm

import (
	"context"
	"log/slog"
	"net/url"

	"github.com/bornholm/todo/internal/core/port"
	"github.com/bornholm/todo/internal/setup"
	"github.com/ncruces/go-sqlite3/gormlite"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	_ "github.com/ncruces/go-sqlite3/embed"
)

func init() {
	setup.TodoStore.Register("sqlite", func(ctx context.Context, u *url.URL) (port.TodoStore, error) {
		db, err := Open(ctx, dsnFromURL(u))
		if err != nil {
			return nil, errors.WithStack(err)
		}

		return NewTodoStore(db), nil
	})
}

// Open opens the sqlite database identified by the given dsn with
// the pragmas expected by the todo store.
func Open(ctx context.Context, dsn string) (*gorm.DB, error) {
	logLevel := logger.Error
	if slog.Default().Enabled(ctx, slog.LevelDebug) {
		logLevel = logger.Info
	}

	db, err := gorm.Open(gormlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, errors.WithStack(err)
	}

	internalDB, err := db.DB()
	if err != nil {
		return nil, errors.WithStack(err)
	}

	internalDB.SetMaxOpenConns(1)

	if err := db.Exec("PRAGMA journal_mode=wal; PRAGMA busy_timeout=5000").Error; err != nil {
		return nil, errors.WithStack(err)
	}

	return db, nil
}

// dsnFromURL maps sqlite:///path/to/db.sqlite and sqlite://db.sqlite
// to a file path, keeping the query string as sqlite uri parameters.
func dsnFromURL(u *url.URL) string {
	path := u.Host + u.Path
	if path == "" || path == "/" {
		path = "todo.sqlite"
	}

	if u.RawQuery == "" {
		return path
	}

	return "file:" + path + "?" + u.RawQuery
}
