package gorm

import (
	"context"
	"net/url"
	"path/filepath"
	"testing"

	"github.com/bornholm/todo/internal/core/port"
	"github.com/bornholm/todo/internal/core/port/testsuite"
	"github.com/pkg/errors"
)

func TestTodoStore(t *testing.T) {
	testsuite.TestTodoStore(t, func(t *testing.T) (port.TodoStore, error) {
		ctx := context.Background()

		dsn := filepath.Join(t.TempDir(), "todo.sqlite")

		db, err := Open(ctx, dsn)
		if err != nil {
			return nil, errors.WithStack(err)
		}

		store := NewTodoStore(db)

		t.Cleanup(func() {
			if err := store.Close(ctx); err != nil {
				t.Errorf("%+v", errors.WithStack(err))
			}
		})

		return store, nil
	})
}

func TestDSNFromURL(t *testing.T) {
	type testCase struct {
		URL         string
		ExpectedDSN string
	}

	testCases := []testCase{
		{URL: "sqlite:///var/lib/todo/data.sqlite", ExpectedDSN: "/var/lib/todo/data.sqlite"},
		{URL: "sqlite://data.sqlite", ExpectedDSN: "data.sqlite"},
		{URL: "sqlite://", ExpectedDSN: "todo.sqlite"},
		{URL: "sqlite://data.sqlite?_txlock=immediate", ExpectedDSN: "file:data.sqlite?_txlock=immediate"},
	}

	for _, tc := range testCases {
		t.Run(tc.URL, func(t *testing.T) {
			u, err := url.Parse(tc.URL)
			if err != nil {
				t.Fatalf("%+v", errors.WithStack(err))
			}

			if e, g := tc.ExpectedDSN, dsnFromURL(u); e != g {
				t.Errorf("dsnFromURL(): expected '%s', got '%s'", e, g)
			}
		})
	}
}
