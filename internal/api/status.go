package api

import (
	"errors"
	"fmt"
	"net/http"
)

type StatusCodeRange int

const (
	StatusUnknown StatusCodeRange = iota
	Status1xx
	Status2xx
	Status3xx
	Status4xx
	Status5xx
)

func (sc StatusCodeRange) String() string {
	switch sc {
	case Status1xx:
		return "informational response"
	case Status2xx:
		return "success"
	case Status3xx:
		return "redirect"
	case Status4xx:
		return "client error"
	case Status5xx:
		return "server error"
	default:
		return fmt.Sprintf("unknown (%d)", sc)
	}
}

// StatusCodeRangeOf classifies an HTTP status code.
func StatusCodeRangeOf(code int) StatusCodeRange {
	switch {
	case code < 100:
		return StatusUnknown
	case code < 200:
		return Status1xx
	case code < 300:
		return Status2xx
	case code < 400:
		return Status3xx
	case code < 500:
		return Status4xx
	case code < 600:
		return Status5xx
	}
	return StatusUnknown
}

// StatusError is returned when the backend answers with a status the
// operation does not accept.
type StatusError struct {
	Method     string
	Path       string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	msg := fmt.Sprintf("%s %s: %s (status code = %d)", e.Method, e.Path, e.Range(), e.StatusCode)
	if e.Body != "" {
		msg += ": " + e.Body
	}
	return msg
}

func (e *StatusError) Range() StatusCodeRange {
	return StatusCodeRangeOf(e.StatusCode)
}

// IsStatus reports whether err is a *StatusError with the given code.
func IsStatus(err error, code int) bool {
	var se *StatusError
	return errors.As(err, &se) && se.StatusCode == code
}

// IsNotFound reports whether err means the record does not exist, either
// because the backend said 404 or because a lookup came up empty.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound) || IsStatus(err, http.StatusNotFound)
}
