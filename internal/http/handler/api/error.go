package api

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/bornholm/go-x/slogx"
	"github.com/bornholm/todo/internal/core/port"
	"github.com/bornholm/todo/internal/core/service"
	"github.com/getsentry/sentry-go"
	"github.com/pkg/errors"
)

type mappedError struct {
	Err     error
	Status  int
	Message string
}

var mappedErrors = []mappedError{
	{Err: service.ErrEmptyValue, Status: http.StatusBadRequest, Message: "todo content must not be empty"},
	{Err: service.ErrMissingID, Status: http.StatusBadRequest, Message: "missing todo id"},
	{Err: port.ErrInvalidID, Status: http.StatusBadRequest, Message: "invalid todo id"},
	{Err: ErrInvalidBody, Status: http.StatusBadRequest, Message: "invalid request body"},
	{Err: port.ErrNotFound, Status: http.StatusNotFound, Message: "todo not found"},
}

func (h *Handler) handleError(w http.ResponseWriter, r *http.Request, err error) {
	ctx := r.Context()

	for _, m := range mappedErrors {
		if errors.Is(err, m.Err) {
			slog.DebugContext(ctx, "request rejected", slog.Int("status", m.Status), slogx.Error(err))
			writeJSON(w, r, m.Status, ErrorResponse{Message: m.Message})
			return
		}
	}

	if errors.Is(err, context.Canceled) {
		slog.DebugContext(ctx, "request canceled by client", slogx.Error(err))
		writeJSON(w, r, http.StatusInternalServerError, ErrorResponse{Message: MessageInternalError})
		return
	}

	slog.ErrorContext(ctx, "could not process request", slogx.Error(err))

	hub := sentry.GetHubFromContext(ctx)
	if hub == nil {
		hub = sentry.CurrentHub()
	}

	hub.CaptureException(err)

	writeJSON(w, r, http.StatusInternalServerError, ErrorResponse{Message: MessageInternalError})
}

// ErrorFromResponse returns the error matching an api error response.
// Unknown responses are returned as a generic error.
func ErrorFromResponse(status int, res ErrorResponse) error {
	for _, m := range mappedErrors {
		if m.Status == status && m.Message == res.Message {
			return errors.WithStack(m.Err)
		}
	}

	if res.Message == "" {
		return errors.Errorf("unexpected response code %d", status)
	}

	return errors.Errorf("unexpected response code %d: %s", status, res.Message)
}
