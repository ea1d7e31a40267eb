package ratelimit

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/time/rate"
)

// Middleware limits the request rate of each client to one request per interval,
// allowing bursts of maxBurst requests. Limiters are kept in an expirable lru cache
// keyed by client address.
func Middleware(trustHeaders bool, interval time.Duration, maxBurst int, cacheSize int, ttl time.Duration) func(http.Handler) http.Handler {
	cache := expirable.NewLRU[string, *rate.Limiter](cacheSize, nil, ttl)

	getLimiter := func(remoteAddr string) *rate.Limiter {
		limiter, exists := cache.Get(remoteAddr)
		if !exists {
			limiter = rate.NewLimiter(rate.Every(interval), maxBurst)
			cache.Add(remoteAddr, limiter)
		}

		return limiter
	}

	getRemoteAddr := func(r *http.Request) string {
		if trustHeaders {
			xff := r.Header.Get("X-Forwarded-For")
			if xff != "" {
				ips := strings.Split(xff, ",")
				if len(ips) > 0 {
					return strings.TrimSpace(ips[0])
				}
			}

			xri := r.Header.Get("X-Real-Ip")
			if xri != "" {
				return xri
			}
		}

		ip, _, err := net.SplitHostPort(r.RemoteAddr)
		if err != nil {
			return r.RemoteAddr
		}

		return ip
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			remoteAddr := getRemoteAddr(r)
			limiter := getLimiter(remoteAddr)

			reservation := limiter.Reserve()
			if !reservation.OK() {
				writeTooManyRequests(w, r)
				return
			}

			if delay := reservation.Delay(); delay > 0 {
				reservation.Cancel()

				w.Header().Set("Retry-After", strconv.Itoa(int(math.Ceil(delay.Seconds()))))
				writeTooManyRequests(w, r)
				return
			}

			tokens := limiter.Tokens()

			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(maxBurst))
			w.Header().Set("X-RateLimit-Remaining", fmt.Sprintf("%.0f", math.Floor(tokens)))
			w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(resetAt(tokens, maxBurst, interval).Unix(), 10))

			next.ServeHTTP(w, r)
		})
	}
}

// resetAt returns the time at which the bucket holding the given tokens
// is full again, one token being added every interval.
func resetAt(tokens float64, maxBurst int, interval time.Duration) time.Time {
	now := time.Now()

	missing := float64(maxBurst) - tokens
	if missing <= 0 {
		return now
	}

	return now.Add(time.Duration(missing * float64(interval))).Add(time.Second - 1).Truncate(time.Second)
}

func writeTooManyRequests(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusTooManyRequests)

	if err := json.NewEncoder(w).Encode(map[string]string{"message": "too many requests"}); err != nil {
		slog.ErrorContext(r.Context(), "could not encode response", slog.Any("error", err))
	}
}
