package health

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/bornholm/go-x/slogx"
	"github.com/bornholm/todo/internal/metrics"
)

const (
	StatusOK          = "ok"
	StatusUnavailable = "unavailable"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

type Response struct {
	Status string `json:"status"`
}

type Handler struct {
	pinger  Pinger
	timeout time.Duration
}

// ServeHTTP implements http.Handler.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	status := http.StatusOK
	res := Response{Status: StatusOK}

	if err := h.pinger.Ping(ctx); err != nil {
		slog.WarnContext(ctx, "todo store is unavailable", slogx.Error(err))
		metrics.StoreUp.Set(0)
		status = http.StatusServiceUnavailable
		res.Status = StatusUnavailable
	} else {
		metrics.StoreUp.Set(1)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(res); err != nil {
		slog.ErrorContext(ctx, "could not encode response", slogx.Error(err))
	}
}

func NewHandler(pinger Pinger) *Handler {
	return &Handler{
		pinger:  pinger,
		timeout: 5 * time.Second,
	}
}

var _ http.Handler = &Handler{}
