package api

import (
	"net/http"

	"github.com/bornholm/todo/internal/core/service"
)

type Handler struct {
	todoManager *service.TodoManager
	maxBodySize int64
	mux         *http.ServeMux
}

// ServeHTTP implements http.Handler.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mux.ServeHTTP(w, r)
}

type HandlerOptions struct {
	MaxBodySize int64
}

type HandlerOptionFunc func(opts *HandlerOptions)

func WithMaxBodySize(size int64) HandlerOptionFunc {
	return func(opts *HandlerOptions) {
		opts.MaxBodySize = size
	}
}

func NewHandlerOptions(funcs ...HandlerOptionFunc) *HandlerOptions {
	opts := &HandlerOptions{
		MaxBodySize: 1 << 20,
	}
	for _, fn := range funcs {
		fn(opts)
	}
	return opts
}

func NewHandler(todoManager *service.TodoManager, funcs ...HandlerOptionFunc) *Handler {
	opts := NewHandlerOptions(funcs...)

	h := &Handler{
		todoManager: todoManager,
		maxBodySize: opts.MaxBodySize,
		mux:         &http.ServeMux{},
	}

	h.route(http.MethodGet, "/get-todo", h.handleGetTodos)
	h.route(http.MethodPost, "/add-todo", h.handleAddTodo)
	h.route(http.MethodPost, "/update-todo", h.handleUpdateTodo)
	h.route(http.MethodPost, "/set-todo", h.handleSetTodo)
	h.route(http.MethodPost, "/del-todo", h.handleDeleteTodo)

	h.mux.HandleFunc("/", h.handleNotFound)

	return h
}

// route registers the handler for the path with and without a trailing
// slash. Other methods on the same path are answered with a 405.
func (h *Handler) route(method string, path string, handler http.HandlerFunc) {
	h.mux.HandleFunc(method+" "+path, handler)
	h.mux.HandleFunc(method+" "+path+"/{$}", handler)

	notAllowed := h.methodNotAllowed(method)
	h.mux.HandleFunc(path, notAllowed)
	h.mux.HandleFunc(path+"/{$}", notAllowed)
}

func (h *Handler) handleNotFound(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusNotFound, ErrorResponse{Message: MessageNotFound})
}

func (h *Handler) methodNotAllowed(allowed string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Allow", allowed)
		writeJSON(w, r, http.StatusMethodNotAllowed, ErrorResponse{Message: MessageMethodNotAllowed})
	}
}

var _ http.Handler = &Handler{}
