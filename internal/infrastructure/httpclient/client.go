package httpclient

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"
)

// DefaultTimeout applies when a caller passes a non-positive timeout.
const DefaultTimeout = 5 * time.Second

// New returns an http.Client bounded by timeout.
func New(timeout time.Duration) *http.Client {
	return &http.Client{Timeout: TimeoutOrDefault(timeout)}
}

// NewNoRedirect returns an http.Client bounded by timeout that hands 3xx responses back to the caller
// instead of following them.
func NewNoRedirect(timeout time.Duration) *http.Client {
	client := New(timeout)
	client.CheckRedirect = func(*http.Request, []*http.Request) error {
		return http.ErrUseLastResponse
	}
	return client
}

// TimeoutOrDefault returns value, or DefaultTimeout when value is not positive.
func TimeoutOrDefault(value time.Duration) time.Duration {
	if value <= 0 {
		return DefaultTimeout
	}
	return value
}

// IsTimeout reports whether err comes from an expired deadline, either the context's or the client's.
func IsTimeout(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
