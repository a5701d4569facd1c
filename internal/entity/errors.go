package entity

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrNotFound        = errors.New("not found")
	ErrInvalidArgument = errors.New("invalid argument")
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrUnsupported     = errors.New("operation not supported by backend")
	ErrTimeout         = errors.New("request timed out")
	ErrBadShape        = errors.New("unexpected response shape")
)

// HTTPError is a non-2xx reply from the backend. Message carries the
// server-provided error text when the body had one, otherwise empty.
type HTTPError struct {
	Status  int
	Message string
}

func (e *HTTPError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("backend replied %d", e.Status)
	}

	return fmt.Sprintf("backend replied %d: %s", e.Status, e.Message)
}

func (e *HTTPError) Is(target error) bool {
	return target == ErrNotFound && e.Status == http.StatusNotFound
}
