package frontend

import (
	"bytes"
	"embed"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"path"
	"strings"

	"github.com/bornholm/go-x/slogx"
	"github.com/pkg/errors"
)

//go:embed public
var public embed.FS

const indexFile = "index.html"

// Handler serves the embedded single page application. Unknown paths
// fall back to the index so client side routes survive a reload.
type Handler struct {
	baseURL    string
	files      fs.FS
	index      *template.Template
	fileServer http.Handler
}

// ServeHTTP implements http.Handler.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimPrefix(path.Clean("/"+r.URL.Path), "/")
	if name == "" || name == indexFile {
		h.serveIndex(w, r)
		return
	}

	if info, err := fs.Stat(h.files, name); err != nil || info.IsDir() {
		h.serveIndex(w, r)
		return
	}

	h.fileServer.ServeHTTP(w, r)
}

// serveIndex renders the index with a base href, relative urls of the page
// then resolve from the application root whatever the requested path.
func (h *Handler) serveIndex(w http.ResponseWriter, r *http.Request) {
	var buff bytes.Buffer

	data := struct {
		BaseURL string
	}{
		BaseURL: h.baseURL,
	}

	if err := h.index.Execute(&buff, data); err != nil {
		slog.ErrorContext(r.Context(), "could not render index", slogx.Error(errors.WithStack(err)))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache")
	w.WriteHeader(http.StatusOK)

	if _, err := buff.WriteTo(w); err != nil {
		slog.DebugContext(r.Context(), "could not write index", slogx.Error(errors.WithStack(err)))
	}
}

type Options struct {
	BaseURL string
}

type OptionFunc func(opts *Options)

// WithBaseURL sets the path the application is served from.
func WithBaseURL(baseURL string) OptionFunc {
	return func(opts *Options) {
		opts.BaseURL = baseURL
	}
}

func NewOptions(funcs ...OptionFunc) *Options {
	opts := &Options{
		BaseURL: "/",
	}
	for _, fn := range funcs {
		fn(opts)
	}
	return opts
}

func NewHandler(funcs ...OptionFunc) *Handler {
	opts := NewOptions(funcs...)

	files, err := fs.Sub(public, "public")
	if err != nil {
		panic(errors.WithStack(err))
	}

	index, err := template.ParseFS(files, indexFile)
	if err != nil {
		panic(errors.WithStack(err))
	}

	return &Handler{
		baseURL:    normalizeBaseURL(opts.BaseURL),
		files:      files,
		index:      index,
		fileServer: http.FileServerFS(files),
	}
}

func normalizeBaseURL(baseURL string) string {
	baseURL = "/" + strings.Trim(baseURL, "/")
	if baseURL != "/" {
		baseURL += "/"
	}

	return baseURL
}

var _ http.Handler = &Handler{}
