package application

import (
	"errors"
	"fmt"
)

var (
	// ErrUpstreamTimeout indicates an outbound call did not finish within its deadline.
	ErrUpstreamTimeout = errors.New("upstream timeout")
	// ErrMalformedResponse indicates an upstream answered 2xx with a body we could not use.
	ErrMalformedResponse = errors.New("malformed upstream response")
)

// UpstreamStatusError is returned when an upstream answers with a non-2xx status.
type UpstreamStatusError struct {
	Service    string
	StatusCode int
	Body       string
}

func (e *UpstreamStatusError) Error() string {
	return fmt.Sprintf("%s responded with status %d", e.Service, e.StatusCode)
}
