package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"
)

// RequestIDHeader carries the per-request correlation id.
const RequestIDHeader = "X-Request-ID"

// Stage decorates a round tripper.
type Stage func(next http.RoundTripper) http.RoundTripper

// RoundTripFunc adapts a function to http.RoundTripper.
type RoundTripFunc func(*http.Request) (*http.Response, error)

// RoundTrip implements http.RoundTripper.
func (f RoundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

// Chain wraps base with stages. The first stage sees the request first.
func Chain(base http.RoundTripper, stages ...Stage) http.RoundTripper {
	rt := base
	for i := len(stages) - 1; i >= 0; i-- {
		rt = stages[i](rt)
	}
	return rt
}

// WithRequestID stamps requests that lack one with a fresh X-Request-ID.
func WithRequestID() Stage {
	return func(next http.RoundTripper) http.RoundTripper {
		return RoundTripFunc(func(req *http.Request) (*http.Response, error) {
			if req.Header.Get(RequestIDHeader) != "" {
				return next.RoundTrip(req)
			}
			stamped := req.Clone(req.Context())
			stamped.Header.Set(RequestIDHeader, uuid.NewString())
			return next.RoundTrip(stamped)
		})
	}
}

// WithRateLimit blocks each request until limiter admits it or the request
// context ends.
func WithRateLimit(limiter *rate.Limiter) Stage {
	return func(next http.RoundTripper) http.RoundTripper {
		return RoundTripFunc(func(req *http.Request) (*http.Response, error) {
			if err := limiter.Wait(req.Context()); err != nil {
				return nil, err
			}
			return next.RoundTrip(req)
		})
	}
}

// WithLogging logs each round trip at debug level.
func WithLogging(logger *slog.Logger) Stage {
	return func(next http.RoundTripper) http.RoundTripper {
		return RoundTripFunc(func(req *http.Request) (*http.Response, error) {
			start := time.Now()
			resp, err := next.RoundTrip(req)

			attrs := []any{
				"method", req.Method,
				"path", req.URL.Path,
				"duration", time.Since(start),
				"request_id", req.Header.Get(RequestIDHeader),
			}
			if err != nil {
				logger.Debug("HTTP request failed", append(attrs, "error", err)...)
				return nil, err
			}
			logger.Debug("HTTP request", append(attrs, "status", resp.StatusCode)...)
			return resp, nil
		})
	}
}
