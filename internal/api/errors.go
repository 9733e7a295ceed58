package api

import (
	"errors"
	"fmt"
)

var (
	// ErrNetwork covers transport failures: DNS, refused connections, resets, cancelled contexts.
	ErrNetwork = errors.New("network error")
	// ErrServer is any non-2xx response.
	ErrServer = errors.New("server error")
	// ErrMalformed is a 2xx response whose body could not be decoded.
	ErrMalformed = errors.New("malformed response")
	// ErrNotFound is a 404; it also matches ErrServer.
	ErrNotFound = errors.New("not found")
)

// StatusError carries the HTTP status of a failed response.
type StatusError struct {
	Status int
	Path   string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: HTTP %d", e.Path, e.Status)
}

func (e *StatusError) Is(target error) bool {
	switch target {
	case ErrServer:
		return true
	case ErrNotFound:
		return e.Status == 404
	}
	return false
}

// Status returns the HTTP status carried by err, or 0.
func Status(err error) int {
	var se *StatusError
	if errors.As(err, &se) {
		return se.Status
	}
	return 0
}
