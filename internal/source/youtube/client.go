package youtube

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	yt "google.golang.org/api/youtube/v3"

	"safetube/internal/domain"
)

// service returns a Data API client bound to the current key. Clients are
// rebuilt when the key changes at runtime.
func (f *Fetcher) service(ctx context.Context) (*yt.Service, error) {
	key := f.creds.APIKey()
	if key == "" {
		return nil, domain.ErrNoAPIKey
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if f.svc != nil && f.svcKey == key {
		return f.svc, nil
	}

	opts := []option.ClientOption{option.WithAPIKey(key)}
	if f.cfg.BaseURL != "" {
		endpoint := f.cfg.BaseURL
		if !strings.HasSuffix(endpoint, "/") {
			endpoint += "/"
		}
		opts = append(opts, option.WithEndpoint(endpoint))
	}

	svc, err := yt.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create youtube service: %w", err)
	}

	f.svc = svc
	f.svcKey = key
	return svc, nil
}

// call paces fn through the quota limiter and retries transient failures
// with exponential backoff.
func call[T any](ctx context.Context, f *Fetcher, op string, fn func(ctx context.Context) (T, error)) (T, error) {
	var zero T
	var err error

	for attempt := 1; attempt <= f.cfg.MaxAttempts; attempt++ {
		if werr := f.limiter.Wait(ctx); werr != nil {
			return zero, werr
		}

		var resp T
		resp, err = attemptCall(ctx, f.cfg.Timeout, fn)
		if err == nil {
			return resp, nil
		}

		if attempt == f.cfg.MaxAttempts || !retryable(ctx, err) {
			break
		}

		backoff := f.calculateBackoff(attempt)
		f.logger.Warn("request failed, retrying",
			"op", op,
			"attempt", attempt,
			"backoff", backoff,
			"error", err,
		)

		select {
		case <-ctx.Done():
			return zero, ctx.Err()
		case <-time.After(backoff):
		}
	}

	return zero, fmt.Errorf("%s: %w", op, err)
}

func attemptCall[T any](ctx context.Context, timeout time.Duration, fn func(ctx context.Context) (T, error)) (T, error) {
	if timeout <= 0 {
		return fn(ctx)
	}
	attemptCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	return fn(attemptCtx)
}

func (f *Fetcher) calculateBackoff(attempt int) time.Duration {
	backoff := f.cfg.InitialBackoff
	for i := 1; i < attempt; i++ {
		backoff *= 2
	}
	if backoff > f.cfg.MaxBackoff {
		backoff = f.cfg.MaxBackoff
	}
	return backoff
}

// retryable treats rate limiting and server errors as transient. Quota
// exhaustion and bad requests are final.
func retryable(ctx context.Context, err error) bool {
	if ctx.Err() != nil {
		return false
	}

	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		return apiErr.Code == http.StatusTooManyRequests || apiErr.Code >= http.StatusInternalServerError
	}
	return true
}
