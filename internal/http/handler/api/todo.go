package api

import (
	"log/slog"
	"net/http"

	"github.com/bornholm/go-x/slogx"
)

func (h *Handler) handleGetTodos(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	todos, err := h.todoManager.ListTodos(ctx)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, ListTodosResponse{Data: toTodos(todos)})
}

func (h *Handler) handleAddTodo(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	req, err := h.decodeRequest(w, r)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	todo, err := h.todoManager.CreateTodo(ctx, req.TodoValue(), req.Completed())
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusCreated, TodoResponse{Data: toTodo(todo)})
}

func (h *Handler) handleUpdateTodo(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	req, err := h.decodeRequest(w, r)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	todoID, err := req.TodoID()
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	ctx = slogx.WithAttrs(ctx, slog.String("todoID", string(todoID)))
	r = r.WithContext(ctx)

	todo, err := h.todoManager.ToggleTodo(ctx, todoID)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, TodoResponse{Data: toTodo(todo)})
}

func (h *Handler) handleSetTodo(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	req, err := h.decodeRequest(w, r)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	todoID, err := req.TodoID()
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	ctx = slogx.WithAttrs(ctx, slog.String("todoID", string(todoID)))
	r = r.WithContext(ctx)

	todo, err := h.todoManager.SetTodoCompletion(ctx, todoID, req.Completed())
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, TodoResponse{Data: toTodo(todo)})
}

func (h *Handler) handleDeleteTodo(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	req, err := h.decodeRequest(w, r)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	todoID, err := req.TodoID()
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	ctx = slogx.WithAttrs(ctx, slog.String("todoID", string(todoID)))
	r = r.WithContext(ctx)

	if err := h.todoManager.DeleteTodo(ctx, todoID); err != nil {
		h.handleError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, DeleteTodoResponse{
		Message: MessageTodoDeleted,
		Data:    DeletedTodo{ID: todoID},
	})
}
