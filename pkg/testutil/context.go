package testutil

import (
	"context"
	"net/http"
	"time"

	"studylab/pkg/requestcontext"
)

// WithRequestTime pins the request-scoped clock so time-stamping code is deterministic.
func WithRequestTime(req *http.Request, now time.Time) *http.Request {
	return req.WithContext(requestcontext.WithTime(req.Context(), now))
}

// FixedTimeContext returns a background context whose request time is now.
func FixedTimeContext(now time.Time) context.Context {
	return requestcontext.WithTime(context.Background(), now)
}

// WithContextValue adds an arbitrary key-value pair to the request context.
func WithContextValue(req *http.Request, key, value any) *http.Request {
	ctx := context.WithValue(req.Context(), key, value)
	return req.WithContext(ctx)
}
