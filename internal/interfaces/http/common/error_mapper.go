package common

import (
	"errors"
	"net/http"
)

// HTTPErrorInfo contains the HTTP status code and message for an error.
type HTTPErrorInfo struct {
	Status  int
	Message string
}

// ErrorMapping pairs an error matcher with the response it produces.
type ErrorMapping struct {
	Match   func(error) bool
	Status  int
	Message string
}

// ErrorMapper maps application errors to HTTP status codes and caller-safe messages.
// Mappings are checked in registration order; the first match wins.
type ErrorMapper struct {
	mappings       []ErrorMapping
	defaultStatus  int
	defaultMessage string
}

// NewErrorMapper creates an ErrorMapper that falls back to 500.
func NewErrorMapper() *ErrorMapper {
	return &ErrorMapper{
		defaultStatus:  http.StatusInternalServerError,
		defaultMessage: "internal server error",
	}
}

// WithMapping adds a mapping for errors satisfying match.
func (m *ErrorMapper) WithMapping(match func(error) bool, status int, message string) *ErrorMapper {
	m.mappings = append(m.mappings, ErrorMapping{Match: match, Status: status, Message: message})
	return m
}

// WithDefault sets the response for unmatched errors.
func (m *ErrorMapper) WithDefault(status int, message string) *ErrorMapper {
	m.defaultStatus = status
	m.defaultMessage = message
	return m
}

// Map converts err to a status and message.
func (m *ErrorMapper) Map(err error) HTTPErrorInfo {
	if err == nil {
		return HTTPErrorInfo{Status: http.StatusOK}
	}
	for _, mapping := range m.mappings {
		if mapping.Match != nil && mapping.Match(err) {
			return HTTPErrorInfo{Status: mapping.Status, Message: mapping.Message}
		}
	}
	return HTTPErrorInfo{Status: m.defaultStatus, Message: m.defaultMessage}
}

// Is matches errors wrapping any of targets.
func Is(targets ...error) func(error) bool {
	return func(err error) bool {
		for _, target := range targets {
			if errors.Is(err, target) {
				return true
			}
		}
		return false
	}
}

// As matches errors whose chain contains a T.
func As[T error]() func(error) bool {
	return func(err error) bool {
		var target T
		return errors.As(err, &target)
	}
}
