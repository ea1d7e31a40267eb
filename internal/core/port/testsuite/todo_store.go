package testsuite

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/bornholm/todo/internal/core/model"
	"github.com/bornholm/todo/internal/core/port"
	"github.com/davecgh/go-spew/spew"
	"github.com/pkg/errors"
)

func TestTodoStore(t *testing.T, factory func(t *testing.T) (port.TodoStore, error)) {
	type testCase struct {
		Name string
		Run  func(t *testing.T, ctx context.Context, store port.TodoStore) error
	}

	var testCases []testCase = []testCase{
		{
			Name: "EmptyQuery",
			Run: func(t *testing.T, ctx context.Context, store port.TodoStore) error {
				todos, err := store.QueryTodos(ctx)
				if err != nil {
					return errors.WithStack(err)
				}

				if e, g := 0, len(todos); e != g {
					t.Errorf("len(todos): expected %d, got %d", e, g)
				}

				return nil
			},
		},
		{
			Name: "CreateAndGet",
			Run: func(t *testing.T, ctx context.Context, store port.TodoStore) error {
				created, err := store.CreateTodo(ctx, "buy milk", false)
				if err != nil {
					return errors.WithStack(err)
				}

				t.Logf("created: %s", spew.Sdump(created))

				if created.ID() == "" {
					t.Fatalf("created.ID(): should not be empty")
				}

				if created.CreatedAt().IsZero() {
					t.Errorf("created.CreatedAt(): should not be zero value")
				}

				found, err := store.GetTodoByID(ctx, created.ID())
				if err != nil {
					return errors.WithStack(err)
				}

				if e, g := created.ID(), found.ID(); e != g {
					t.Errorf("found.ID(): expected %s, got %s", e, g)
				}

				if e, g := "buy milk", found.Value(); e != g {
					t.Errorf("found.Value(): expected %s, got %s", e, g)
				}

				if e, g := false, found.Completed(); e != g {
					t.Errorf("found.Completed(): expected %v, got %v", e, g)
				}

				if e, g := created.CreatedAt().UnixMilli(), found.CreatedAt().UnixMilli(); e != g {
					t.Errorf("found.CreatedAt(): expected %d, got %d", e, g)
				}

				completed, err := store.CreateTodo(ctx, "already done", true)
				if err != nil {
					return errors.WithStack(err)
				}

				if e, g := true, completed.Completed(); e != g {
					t.Errorf("completed.Completed(): expected %v, got %v", e, g)
				}

				return nil
			},
		},
		{
			Name: "DistinctIDs",
			Run: func(t *testing.T, ctx context.Context, store port.TodoStore) error {
				seen := map[model.TodoID]struct{}{}

				for range 20 {
					todo, err := store.CreateTodo(ctx, "item", false)
					if err != nil {
						return errors.WithStack(err)
					}

					if _, exists := seen[todo.ID()]; exists {
						t.Fatalf("todo.ID(): id '%s' issued twice", todo.ID())
					}

					seen[todo.ID()] = struct{}{}
				}

				return nil
			},
		},
		{
			Name: "QueryNewestFirst",
			Run: func(t *testing.T, ctx context.Context, store port.TodoStore) error {
				values := []string{"A", "B", "C"}

				for _, v := range values {
					if _, err := store.CreateTodo(ctx, v, false); err != nil {
						return errors.WithStack(err)
					}

					time.Sleep(5 * time.Millisecond)
				}

				todos, err := store.QueryTodos(ctx)
				if err != nil {
					return errors.WithStack(err)
				}

				if e, g := len(values), len(todos); e != g {
					t.Fatalf("len(todos): expected %d, got %d", e, g)
				}

				for i, e := range []string{"C", "B", "A"} {
					if g := todos[i].Value(); e != g {
						t.Errorf("todos[%d].Value(): expected %s, got %s", i, e, g)
					}
				}

				return nil
			},
		},
		{
			Name: "ToggleTwice",
			Run: func(t *testing.T, ctx context.Context, store port.TodoStore) error {
				todo, err := store.CreateTodo(ctx, "toggle me", false)
				if err != nil {
					return errors.WithStack(err)
				}

				toggled, err := store.ToggleTodo(ctx, todo.ID())
				if err != nil {
					return errors.WithStack(err)
				}

				if e, g := true, toggled.Completed(); e != g {
					t.Errorf("toggled.Completed(): expected %v, got %v", e, g)
				}

				if e, g := todo.Value(), toggled.Value(); e != g {
					t.Errorf("toggled.Value(): expected %s, got %s", e, g)
				}

				if toggled.UpdatedAt().Before(toggled.CreatedAt()) {
					t.Errorf("toggled.UpdatedAt(): should not be before CreatedAt()")
				}

				toggled, err = store.ToggleTodo(ctx, todo.ID())
				if err != nil {
					return errors.WithStack(err)
				}

				if e, g := false, toggled.Completed(); e != g {
					t.Errorf("toggled.Completed(): expected %v, got %v", e, g)
				}

				return nil
			},
		},
		{
			Name: "ConcurrentToggles",
			Run: func(t *testing.T, ctx context.Context, store port.TodoStore) error {
				todo, err := store.CreateTodo(ctx, "contended", false)
				if err != nil {
					return errors.WithStack(err)
				}

				const total = 10

				var wg sync.WaitGroup
				errs := make(chan error, total)

				for range total {
					wg.Add(1)
					go func() {
						defer wg.Done()
						if _, err := store.ToggleTodo(ctx, todo.ID()); err != nil {
							errs <- errors.WithStack(err)
						}
					}()
				}

				wg.Wait()
				close(errs)

				for err := range errs {
					return errors.WithStack(err)
				}

				found, err := store.GetTodoByID(ctx, todo.ID())
				if err != nil {
					return errors.WithStack(err)
				}

				if e, g := false, found.Completed(); e != g {
					t.Errorf("found.Completed(): expected %v after %d toggles, got %v", e, total, g)
				}

				return nil
			},
		},
		{
			Name: "UpdateCompletion",
			Run: func(t *testing.T, ctx context.Context, store port.TodoStore) error {
				todo, err := store.CreateTodo(ctx, "set me", false)
				if err != nil {
					return errors.WithStack(err)
				}

				completed := true

				for range 2 {
					updated, err := store.UpdateTodo(ctx, todo.ID(), port.TodoUpdates{Completed: &completed})
					if err != nil {
						return errors.WithStack(err)
					}

					if e, g := true, updated.Completed(); e != g {
						t.Errorf("updated.Completed(): expected %v, got %v", e, g)
					}
				}

				unchanged, err := store.UpdateTodo(ctx, todo.ID(), port.TodoUpdates{})
				if err != nil {
					return errors.WithStack(err)
				}

				if e, g := true, unchanged.Completed(); e != g {
					t.Errorf("unchanged.Completed(): expected %v, got %v", e, g)
				}

				return nil
			},
		},
		{
			Name: "Delete",
			Run: func(t *testing.T, ctx context.Context, store port.TodoStore) error {
				kept, err := store.CreateTodo(ctx, "kept", false)
				if err != nil {
					return errors.WithStack(err)
				}

				deleted, err := store.CreateTodo(ctx, "deleted", false)
				if err != nil {
					return errors.WithStack(err)
				}

				if err := store.DeleteTodo(ctx, deleted.ID()); err != nil {
					return errors.WithStack(err)
				}

				todos, err := store.QueryTodos(ctx)
				if err != nil {
					return errors.WithStack(err)
				}

				if e, g := 1, len(todos); e != g {
					t.Fatalf("len(todos): expected %d, got %d", e, g)
				}

				if e, g := kept.ID(), todos[0].ID(); e != g {
					t.Errorf("todos[0].ID(): expected %s, got %s", e, g)
				}

				if _, err := store.GetTodoByID(ctx, deleted.ID()); !errors.Is(err, port.ErrNotFound) {
					t.Errorf("GetTodoByID(): expected port.ErrNotFound, got %+v", err)
				}

				if _, err := store.ToggleTodo(ctx, deleted.ID()); !errors.Is(err, port.ErrNotFound) {
					t.Errorf("ToggleTodo(): expected port.ErrNotFound, got %+v", err)
				}

				completed := true
				if _, err := store.UpdateTodo(ctx, deleted.ID(), port.TodoUpdates{Completed: &completed}); !errors.Is(err, port.ErrNotFound) {
					t.Errorf("UpdateTodo(): expected port.ErrNotFound, got %+v", err)
				}

				if err := store.DeleteTodo(ctx, deleted.ID()); !errors.Is(err, port.ErrNotFound) {
					t.Errorf("DeleteTodo(): expected port.ErrNotFound, got %+v", err)
				}

				return nil
			},
		},
		{
			Name: "InvalidID",
			Run: func(t *testing.T, ctx context.Context, store port.TodoStore) error {
				const invalidID model.TodoID = "not-a-valid-id!"

				if _, err := store.GetTodoByID(ctx, invalidID); !errors.Is(err, port.ErrInvalidID) {
					t.Errorf("GetTodoByID(): expected port.ErrInvalidID, got %+v", err)
				}

				if _, err := store.ToggleTodo(ctx, invalidID); !errors.Is(err, port.ErrInvalidID) {
					t.Errorf("ToggleTodo(): expected port.ErrInvalidID, got %+v", err)
				}

				if _, err := store.UpdateTodo(ctx, invalidID, port.TodoUpdates{}); !errors.Is(err, port.ErrInvalidID) {
					t.Errorf("UpdateTodo(): expected port.ErrInvalidID, got %+v", err)
				}

				if err := store.DeleteTodo(ctx, invalidID); !errors.Is(err, port.ErrInvalidID) {
					t.Errorf("DeleteTodo(): expected port.ErrInvalidID, got %+v", err)
				}

				return nil
			},
		},
		{
			Name: "Ping",
			Run: func(t *testing.T, ctx context.Context, store port.TodoStore) error {
				if err := store.Ping(ctx); err != nil {
					return errors.WithStack(err)
				}

				return nil
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			ctx := context.Background()

			store, err := factory(t)
			if err != nil {
				t.Fatalf("could not create store: %+v", errors.WithStack(err))
			}

			if err := tc.Run(t, ctx, store); err != nil {
				t.Fatalf("could not run test: %+v", errors.WithStack(err))
			}
		})
	}
}
