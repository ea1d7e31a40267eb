package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/bornholm/todo/internal/adapter/memory"
	"github.com/bornholm/todo/internal/core/model"
	"github.com/bornholm/todo/internal/core/port"
	"github.com/bornholm/todo/internal/core/service"
	"github.com/bornholm/todo/internal/http/handler/api"
	"github.com/pkg/errors"
)

func TestAddTodo(t *testing.T) {
	handler := newHandler()

	res := doRequest(t, handler, http.MethodPost, "/add-todo", `{"value":"  buy milk  "}`)
	if e, g := http.StatusCreated, res.Code; e != g {
		t.Fatalf("res.Code: expected %d, got %d (%s)", e, g, res.Body.String())
	}

	var created api.TodoResponse
	decodeResponse(t, res, &created)

	if created.Data.ID == "" {
		t.Errorf("created.Data.ID: should not be empty")
	}

	if e, g := "buy milk", created.Data.Value; e != g {
		t.Errorf("created.Data.Value: expected '%s', got '%s'", e, g)
	}

	if e, g := false, created.Data.IsCompleted; e != g {
		t.Errorf("created.Data.IsCompleted: expected %v, got %v", e, g)
	}

	if created.Data.CreatedAt.IsZero() {
		t.Errorf("created.Data.CreatedAt: should not be zero value")
	}

	if e, g := "application/json", res.Header().Get("Content-Type"); e != g {
		t.Errorf("Content-Type: expected '%s', got '%s'", e, g)
	}
}

func TestAddTodoCompletion(t *testing.T) {
	type testCase struct {
		Body     string
		Expected bool
	}

	testCases := []testCase{
		{Body: `{"value":"a"}`, Expected: false},
		{Body: `{"value":"a","isCompleted":false}`, Expected: false},
		{Body: `{"value":"a","isCompleted":null}`, Expected: false},
		{Body: `{"value":"a","isCompleted":0}`, Expected: false},
		{Body: `{"value":"a","isCompleted":""}`, Expected: false},
		{Body: `{"value":"a","isCompleted":true}`, Expected: true},
		{Body: `{"value":"a","isCompleted":1}`, Expected: true},
		{Body: `{"value":"a","isCompleted":"false"}`, Expected: true},
		{Body: `{"value":"a","isCompleted":{}}`, Expected: true},
	}

	handler := newHandler()

	for _, tc := range testCases {
		t.Run(tc.Body, func(t *testing.T) {
			res := doRequest(t, handler, http.MethodPost, "/add-todo", tc.Body)
			if e, g := http.StatusCreated, res.Code; e != g {
				t.Fatalf("res.Code: expected %d, got %d", e, g)
			}

			var created api.TodoResponse
			decodeResponse(t, res, &created)

			if e, g := tc.Expected, created.Data.IsCompleted; e != g {
				t.Errorf("created.Data.IsCompleted: expected %v, got %v", e, g)
			}
		})
	}
}

func TestAddTodoValidation(t *testing.T) {
	type testCase struct {
		Name            string
		Body            string
		ExpectedMessage string
	}

	testCases := []testCase{
		{Name: "EmptyValue", Body: `{"value":""}`, ExpectedMessage: "todo content must not be empty"},
		{Name: "BlankValue", Body: `{"value":"   "}`, ExpectedMessage: "todo content must not be empty"},
		{Name: "MissingValue", Body: `{}`, ExpectedMessage: "todo content must not be empty"},
		{Name: "NumericValue", Body: `{"value":42}`, ExpectedMessage: "todo content must not be empty"},
		{Name: "NullValue", Body: `{"value":null}`, ExpectedMessage: "todo content must not be empty"},
		{Name: "EmptyBody", Body: ``, ExpectedMessage: "todo content must not be empty"},
		{Name: "MalformedBody", Body: `{"value":`, ExpectedMessage: "invalid request body"},
		{Name: "ArrayBody", Body: `["buy milk"]`, ExpectedMessage: "invalid request body"},
		{Name: "ByteOrderMarkValue", Body: `{"value":"\ufeff"}`, ExpectedMessage: "todo content must not be empty"},
		{Name: "TrailingGarbage", Body: `{"value":"a"} garbage`, ExpectedMessage: "invalid request body"},
		{Name: "ConcatenatedObjects", Body: `{"value":"a"}{"value":"b"}`, ExpectedMessage: "invalid request body"},
	}

	handler := newHandler()

	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			res := doRequest(t, handler, http.MethodPost, "/add-todo", tc.Body)
			if e, g := http.StatusBadRequest, res.Code; e != g {
				t.Fatalf("res.Code: expected %d, got %d", e, g)
			}

			var body api.ErrorResponse
			decodeResponse(t, res, &body)

			if e, g := tc.ExpectedMessage, body.Message; e != g {
				t.Errorf("body.Message: expected '%s', got '%s'", e, g)
			}
		})
	}

	todos := listTodos(t, handler)
	if e, g := 0, len(todos); e != g {
		t.Errorf("len(todos): expected %d, got %d", e, g)
	}
}

func TestAddTodoTrimming(t *testing.T) {
	handler := newHandler()

	res := doRequest(t, handler, http.MethodPost, "/add-todo", "{\"value\":\"\\ufeff buy milk \\u00a0\"}\n\n")
	if e, g := http.StatusCreated, res.Code; e != g {
		t.Fatalf("res.Code: expected %d, got %d (%s)", e, g, res.Body.String())
	}

	var created api.TodoResponse
	decodeResponse(t, res, &created)

	if e, g := "buy milk", created.Data.Value; e != g {
		t.Errorf("created.Data.Value: expected '%s', got '%s'", e, g)
	}
}

func TestGetTodosEmpty(t *testing.T) {
	handler := newHandler()

	res := doRequest(t, handler, http.MethodGet, "/get-todo", "")
	if e, g := http.StatusOK, res.Code; e != g {
		t.Fatalf("res.Code: expected %d, got %d", e, g)
	}

	var raw map[string]json.RawMessage
	decodeResponse(t, res, &raw)

	if e, g := "[]", string(raw["data"]); e != g {
		t.Errorf("data: expected '%s', got '%s'", e, g)
	}
}

func TestToggleTodo(t *testing.T) {
	handler := newHandler()

	todo := addTodo(t, handler, "toggle me")

	for _, expected := range []bool{true, false} {
		res := doRequest(t, handler, http.MethodPost, "/update-todo", idBody(todo.ID))
		if e, g := http.StatusOK, res.Code; e != g {
			t.Fatalf("res.Code: expected %d, got %d", e, g)
		}

		var toggled api.TodoResponse
		decodeResponse(t, res, &toggled)

		if e, g := expected, toggled.Data.IsCompleted; e != g {
			t.Errorf("toggled.Data.IsCompleted: expected %v, got %v", e, g)
		}

		if e, g := todo.ID, toggled.Data.ID; e != g {
			t.Errorf("toggled.Data.ID: expected '%s', got '%s'", e, g)
		}
	}
}

func TestSetTodo(t *testing.T) {
	handler := newHandler()

	todo := addTodo(t, handler, "set me")

	for _, body := range []string{
		`{"id":"` + string(todo.ID) + `","isCompleted":true}`,
		`{"id":"` + string(todo.ID) + `","isCompleted":true}`,
	} {
		res := doRequest(t, handler, http.MethodPost, "/set-todo", body)
		if e, g := http.StatusOK, res.Code; e != g {
			t.Fatalf("res.Code: expected %d, got %d", e, g)
		}

		var updated api.TodoResponse
		decodeResponse(t, res, &updated)

		if e, g := true, updated.Data.IsCompleted; e != g {
			t.Errorf("updated.Data.IsCompleted: expected %v, got %v", e, g)
		}
	}
}

func TestTodoIDErrors(t *testing.T) {
	handler := newHandler()

	// A well formed id which is not assigned to any todo
	deleted := addTodo(t, handler, "deleted")
	if res := doRequest(t, handler, http.MethodPost, "/del-todo", idBody(deleted.ID)); res.Code != http.StatusOK {
		t.Fatalf("res.Code: expected %d, got %d", http.StatusOK, res.Code)
	}

	type testCase struct {
		Name            string
		Body            string
		ExpectedCode    int
		ExpectedMessage string
	}

	testCases := []testCase{
		{Name: "MissingID", Body: `{}`, ExpectedCode: http.StatusBadRequest, ExpectedMessage: "missing todo id"},
		{Name: "EmptyID", Body: `{"id":""}`, ExpectedCode: http.StatusBadRequest, ExpectedMessage: "missing todo id"},
		{Name: "MalformedID", Body: `{"id":"not-a-valid-id!"}`, ExpectedCode: http.StatusBadRequest, ExpectedMessage: "invalid todo id"},
		{Name: "NumericID", Body: `{"id":42}`, ExpectedCode: http.StatusBadRequest, ExpectedMessage: "invalid todo id"},
		{Name: "UnknownID", Body: idBody(deleted.ID), ExpectedCode: http.StatusNotFound, ExpectedMessage: "todo not found"},
	}

	for _, path := range []string{"/update-todo", "/set-todo", "/del-todo"} {
		for _, tc := range testCases {
			t.Run(path+"/"+tc.Name, func(t *testing.T) {
				res := doRequest(t, handler, http.MethodPost, path, tc.Body)
				if e, g := tc.ExpectedCode, res.Code; e != g {
					t.Fatalf("res.Code: expected %d, got %d", e, g)
				}

				var body api.ErrorResponse
				decodeResponse(t, res, &body)

				if e, g := tc.ExpectedMessage, body.Message; e != g {
					t.Errorf("body.Message: expected '%s', got '%s'", e, g)
				}
			})
		}
	}
}

func TestDeleteTodo(t *testing.T) {
	handler := newHandler()

	todo := addTodo(t, handler, "delete me")

	res := doRequest(t, handler, http.MethodPost, "/del-todo", idBody(todo.ID))
	if e, g := http.StatusOK, res.Code; e != g {
		t.Fatalf("res.Code: expected %d, got %d", e, g)
	}

	var deleted api.DeleteTodoResponse
	decodeResponse(t, res, &deleted)

	if e, g := api.MessageTodoDeleted, deleted.Message; e != g {
		t.Errorf("deleted.Message: expected '%s', got '%s'", e, g)
	}

	if e, g := todo.ID, deleted.Data.ID; e != g {
		t.Errorf("deleted.Data.ID: expected '%s', got '%s'", e, g)
	}

	if e, g := http.StatusNotFound, doRequest(t, handler, http.MethodPost, "/del-todo", idBody(todo.ID)).Code; e != g {
		t.Errorf("second delete: expected %d, got %d", e, g)
	}

	if e, g := http.StatusNotFound, doRequest(t, handler, http.MethodPost, "/update-todo", idBody(todo.ID)).Code; e != g {
		t.Errorf("toggle after delete: expected %d, got %d", e, g)
	}

	if e, g := 0, len(listTodos(t, handler)); e != g {
		t.Errorf("len(todos): expected %d, got %d", e, g)
	}
}

func TestScenario(t *testing.T) {
	handler := newHandler()

	a := addTodo(t, handler, "A")
	time.Sleep(5 * time.Millisecond)
	b := addTodo(t, handler, "B")

	todos := listTodos(t, handler)
	assertValues(t, todos, "B", "A")

	if res := doRequest(t, handler, http.MethodPost, "/update-todo", idBody(a.ID)); res.Code != http.StatusOK {
		t.Fatalf("res.Code: expected %d, got %d", http.StatusOK, res.Code)
	}

	todos = listTodos(t, handler)
	assertValues(t, todos, "B", "A")

	if e, g := true, todos[1].IsCompleted; e != g {
		t.Errorf("todos[1].IsCompleted: expected %v, got %v", e, g)
	}

	if res := doRequest(t, handler, http.MethodPost, "/del-todo", idBody(b.ID)); res.Code != http.StatusOK {
		t.Fatalf("res.Code: expected %d, got %d", http.StatusOK, res.Code)
	}

	todos = listTodos(t, handler)
	assertValues(t, todos, "A")

	if e, g := true, todos[0].IsCompleted; e != g {
		t.Errorf("todos[0].IsCompleted: expected %v, got %v", e, g)
	}
}

func TestRouting(t *testing.T) {
	handler := newHandler()

	type testCase struct {
		Method          string
		Path            string
		ExpectedCode    int
		ExpectedMessage string
	}

	testCases := []testCase{
		{Method: http.MethodGet, Path: "/get-todo/", ExpectedCode: http.StatusOK},
		{Method: http.MethodPost, Path: "/get-todo", ExpectedCode: http.StatusMethodNotAllowed, ExpectedMessage: api.MessageMethodNotAllowed},
		{Method: http.MethodGet, Path: "/add-todo", ExpectedCode: http.StatusMethodNotAllowed, ExpectedMessage: api.MessageMethodNotAllowed},
		{Method: http.MethodDelete, Path: "/del-todo/", ExpectedCode: http.StatusMethodNotAllowed, ExpectedMessage: api.MessageMethodNotAllowed},
		{Method: http.MethodGet, Path: "/unknown", ExpectedCode: http.StatusNotFound, ExpectedMessage: api.MessageNotFound},
		{Method: http.MethodPost, Path: "/add-todo/extra", ExpectedCode: http.StatusNotFound, ExpectedMessage: api.MessageNotFound},
	}

	for _, tc := range testCases {
		t.Run(tc.Method+" "+tc.Path, func(t *testing.T) {
			res := doRequest(t, handler, tc.Method, tc.Path, "")
			if e, g := tc.ExpectedCode, res.Code; e != g {
				t.Fatalf("res.Code: expected %d, got %d", e, g)
			}

			if tc.ExpectedMessage == "" {
				return
			}

			var body api.ErrorResponse
			decodeResponse(t, res, &body)

			if e, g := tc.ExpectedMessage, body.Message; e != g {
				t.Errorf("body.Message: expected '%s', got '%s'", e, g)
			}
		})
	}
}

func TestStoreFailure(t *testing.T) {
	handler := api.NewHandler(service.NewTodoManager(&failingStore{memory.NewTodoStore()}))

	res := doRequest(t, handler, http.MethodGet, "/get-todo", "")
	if e, g := http.StatusInternalServerError, res.Code; e != g {
		t.Fatalf("res.Code: expected %d, got %d", e, g)
	}

	var body api.ErrorResponse
	decodeResponse(t, res, &body)

	if e, g := api.MessageInternalError, body.Message; e != g {
		t.Errorf("body.Message: expected '%s', got '%s'", e, g)
	}

	if strings.Contains(res.Body.String(), "connection lost") {
		t.Errorf("response should not leak the underlying error: %s", res.Body.String())
	}
}

func TestCanceledRequest(t *testing.T) {
	var logs bytes.Buffer

	defaultLogger := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug})))
	defer slog.SetDefault(defaultLogger)

	handler := api.NewHandler(service.NewTodoManager(&canceledStore{memory.NewTodoStore()}))

	res := doRequest(t, handler, http.MethodGet, "/get-todo", "")
	if e, g := http.StatusInternalServerError, res.Code; e != g {
		t.Fatalf("res.Code: expected %d, got %d", e, g)
	}

	if !strings.Contains(logs.String(), "request canceled by client") {
		t.Errorf("logs should mention the canceled request, got: %s", logs.String())
	}

	if strings.Contains(logs.String(), "level=ERROR") {
		t.Errorf("canceled requests should not be logged as errors, got: %s", logs.String())
	}
}

func TestErrorFromResponse(t *testing.T) {
	err := api.ErrorFromResponse(http.StatusNotFound, api.ErrorResponse{Message: "todo not found"})
	if !errors.Is(err, port.ErrNotFound) {
		t.Errorf("expected port.ErrNotFound, got %+v", err)
	}

	err = api.ErrorFromResponse(http.StatusBadRequest, api.ErrorResponse{Message: "todo content must not be empty"})
	if !errors.Is(err, service.ErrEmptyValue) {
		t.Errorf("expected service.ErrEmptyValue, got %+v", err)
	}

	err = api.ErrorFromResponse(http.StatusInternalServerError, api.ErrorResponse{Message: api.MessageInternalError})
	if err == nil {
		t.Errorf("expected an error, got nil")
	}
}

type failingStore struct {
	port.TodoStore
}

func (s *failingStore) QueryTodos(ctx context.Context) ([]model.Todo, error) {
	return nil, errors.New("connection lost")
}

type canceledStore struct {
	port.TodoStore
}

func (s *canceledStore) QueryTodos(ctx context.Context) ([]model.Todo, error) {
	return nil, errors.WithStack(context.Canceled)
}

func newHandler() *api.Handler {
	return api.NewHandler(service.NewTodoManager(memory.NewTodoStore()))
}

func doRequest(t *testing.T, handler http.Handler, method string, path string, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	res := httptest.NewRecorder()

	handler.ServeHTTP(res, req)

	return res
}

func decodeResponse(t *testing.T, res *httptest.ResponseRecorder, v any) {
	t.Helper()

	if err := json.Unmarshal(res.Body.Bytes(), v); err != nil {
		t.Fatalf("could not decode response '%s': %+v", res.Body.String(), errors.WithStack(err))
	}
}

func addTodo(t *testing.T, handler http.Handler, value string) api.Todo {
	t.Helper()

	body, err := json.Marshal(api.TodoRequest{Value: value})
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	res := doRequest(t, handler, http.MethodPost, "/add-todo", string(body))
	if e, g := http.StatusCreated, res.Code; e != g {
		t.Fatalf("res.Code: expected %d, got %d", e, g)
	}

	var created api.TodoResponse
	decodeResponse(t, res, &created)

	return created.Data
}

func listTodos(t *testing.T, handler http.Handler) []api.Todo {
	t.Helper()

	res := doRequest(t, handler, http.MethodGet, "/get-todo", "")
	if e, g := http.StatusOK, res.Code; e != g {
		t.Fatalf("res.Code: expected %d, got %d", e, g)
	}

	var list api.ListTodosResponse
	decodeResponse(t, res, &list)

	return list.Data
}

func idBody(id model.TodoID) string {
	return `{"id":"` + string(id) + `"}`
}

func assertValues(t *testing.T, todos []api.Todo, values ...string) {
	t.Helper()

	if e, g := len(values), len(todos); e != g {
		t.Fatalf("len(todos): expected %d, got %d", e, g)
	}

	for i, e := range values {
		if g := todos[i].Value; e != g {
			t.Errorf("todos[%d].Value: expected '%s', got '%s'", i, e, g)
		}
	}
}
