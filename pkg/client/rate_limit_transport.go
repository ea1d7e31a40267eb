package client

import (
	"io"
	"log/slog"
	"math/rand"
	"net/http"
	"strconv"
	"time"

	"github.com/bornholm/go-x/slogx"
	"github.com/pkg/errors"
)

// RateLimitTransport retries requests answered with a 429 by the todo
// server, waiting for the delay advertised in the Retry-After header.
type RateLimitTransport struct {
	Base        http.RoundTripper
	MaxRetries  int
	DefaultWait time.Duration
	// MaxJitter bounds the random delay added to each wait, so that
	// clients limited together do not retry together
	MaxJitter time.Duration
}

func (t *RateLimitTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	base := t.Base
	if base == nil {
		base = http.DefaultTransport
	}

	ctx := req.Context()

	for attempt := 0; ; attempt++ {
		res, err := base.RoundTrip(req)
		if err != nil {
			return nil, errors.WithStack(err)
		}

		if res.StatusCode != http.StatusTooManyRequests || attempt >= t.MaxRetries {
			return res, nil
		}

		wait := t.waitFor(res)

		if err := drain(res); err != nil {
			slog.DebugContext(ctx, "could not drain rate limited response", slogx.Error(err))
		}

		slog.DebugContext(ctx, "todo server rate limited the request, retrying",
			slog.Duration("wait", wait),
			slog.Int("attempt", attempt+1),
			slog.Int("maxRetries", t.MaxRetries),
		)

		timer := time.NewTimer(wait)

		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, errors.WithStack(ctx.Err())
		case <-timer.C:
		}

		if err := rewind(req); err != nil {
			return nil, errors.WithStack(err)
		}
	}
}

// waitFor returns the delay to observe before retrying. The todo server
// advertises it in whole seconds, other servers may send an http date.
func (t *RateLimitTransport) waitFor(res *http.Response) time.Duration {
	wait := t.DefaultWait

	if retryAfter := res.Header.Get("Retry-After"); retryAfter != "" {
		if seconds, err := strconv.Atoi(retryAfter); err == nil && seconds >= 0 {
			wait = time.Duration(seconds) * time.Second
		} else if date, err := http.ParseTime(retryAfter); err == nil {
			wait = max(time.Until(date), 0)
		}
	}

	if t.MaxJitter > 0 {
		wait += time.Duration(rand.Int63n(int64(t.MaxJitter)))
	}

	return wait
}

func drain(res *http.Response) error {
	defer res.Body.Close()

	if _, err := io.Copy(io.Discard, res.Body); err != nil {
		return errors.WithStack(err)
	}

	return nil
}

func rewind(req *http.Request) error {
	if req.Body == nil || req.Body == http.NoBody {
		return nil
	}

	if req.GetBody == nil {
		return errors.New("could not retry request: body cannot be rewound")
	}

	body, err := req.GetBody()
	if err != nil {
		return errors.Wrap(err, "could not rewind request body")
	}

	req.Body = body

	return nil
}
