package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"
	"time"

	"github.com/bornholm/todo/internal/adapter/memory"
	"github.com/bornholm/todo/internal/core/service"
	todohttp "github.com/bornholm/todo/internal/http"
	"github.com/bornholm/todo/internal/http/handler/api"
	"github.com/bornholm/todo/internal/http/middleware/ratelimit"
	"github.com/pkg/errors"
)

type countingTransport struct {
	base            http.RoundTripper
	tooManyRequests atomic.Int32
}

func (t *countingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	res, err := t.base.RoundTrip(req)
	if err != nil {
		return nil, err
	}

	if res.StatusCode == http.StatusTooManyRequests {
		t.tooManyRequests.Add(1)
	}

	return res, nil
}

func TestRateLimitTransportRetries(t *testing.T) {
	ctx := context.Background()

	server := todohttp.NewServer(
		todohttp.WithMount("/api/", api.NewHandler(service.NewTodoManager(memory.NewTodoStore()))),
		todohttp.WithMiddlewares(ratelimit.Middleware(false, 200*time.Millisecond, 1, 16, time.Minute)),
	)

	httpServer := httptest.NewServer(server.Handler())
	defer httpServer.Close()

	serverURL, err := url.Parse(httpServer.URL)
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	counter := &countingTransport{base: http.DefaultTransport}

	client := New(
		WithBaseURL(serverURL),
		WithHTTPClient(&http.Client{
			Timeout: 10 * time.Second,
			Transport: &RateLimitTransport{
				Base:        counter,
				MaxRetries:  3,
				DefaultWait: 100 * time.Millisecond,
			},
		}),
	)

	// The first request consumes the only token of the bucket
	if _, err := client.AddTodo(ctx, "first", false); err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	// The second one is limited once, then retried with its body
	if _, err := client.AddTodo(ctx, "second", false); err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if g := counter.tooManyRequests.Load(); g < 1 {
		t.Errorf("counter.tooManyRequests: expected at least 1, got %d", g)
	}

	todos, err := client.ListTodos(ctx)
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if e, g := 2, len(todos); e != g {
		t.Errorf("len(todos): expected %d, got %d", e, g)
	}
}

func TestRateLimitTransportGivesUp(t *testing.T) {
	var calls atomic.Int32

	httpServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Header().Set("Retry-After", "0")
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer httpServer.Close()

	client := &http.Client{
		Transport: &RateLimitTransport{
			MaxRetries:  2,
			DefaultWait: time.Millisecond,
		},
	}

	res, err := client.Get(httpServer.URL)
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	defer res.Body.Close()

	if e, g := http.StatusTooManyRequests, res.StatusCode; e != g {
		t.Errorf("res.StatusCode: expected %d, got %d", e, g)
	}

	if e, g := int32(3), calls.Load(); e != g {
		t.Errorf("calls: expected %d, got %d", e, g)
	}
}

func TestRateLimitTransportWaitFor(t *testing.T) {
	transport := &RateLimitTransport{DefaultWait: 500 * time.Millisecond}

	type testCase struct {
		RetryAfter string
		Expected   time.Duration
	}

	testCases := []testCase{
		{RetryAfter: "", Expected: 500 * time.Millisecond},
		{RetryAfter: "2", Expected: 2 * time.Second},
		{RetryAfter: "not-a-delay", Expected: 500 * time.Millisecond},
		{RetryAfter: "Mon, 02 Jan 2006 15:04:05 GMT", Expected: 0},
	}

	for _, tc := range testCases {
		t.Run(tc.RetryAfter, func(t *testing.T) {
			res := &http.Response{Header: http.Header{}}
			if tc.RetryAfter != "" {
				res.Header.Set("Retry-After", tc.RetryAfter)
			}

			if e, g := tc.Expected, transport.waitFor(res); e != g {
				t.Errorf("waitFor(): expected %v, got %v", e, g)
			}
		})
	}
}
