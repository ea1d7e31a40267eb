package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/getsentry/sentry-go"
)

// Recovery turns panics raised by the next handler into a 500 json response.
func Recovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			recovered := recover()
			if recovered == nil {
				return
			}

			if recovered == http.ErrAbortHandler {
				panic(recovered)
			}

			ctx := r.Context()

			slog.ErrorContext(ctx, "recovered from panic", slog.Any("panic", recovered), slog.String("stack", string(debug.Stack())))

			hub := sentry.GetHubFromContext(ctx)
			if hub == nil {
				hub = sentry.CurrentHub()
			}

			hub.RecoverWithContext(ctx, recovered)

			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusInternalServerError)

			if err := json.NewEncoder(w).Encode(map[string]string{"message": "internal server error"}); err != nil {
				slog.ErrorContext(ctx, "could not encode response", slog.Any("error", err))
			}
		}()

		next.ServeHTTP(w, r)
	})
}
