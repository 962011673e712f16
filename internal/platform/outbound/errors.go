package outbound

import (
	"errors"
	"fmt"
)

// Kind classifies a failed backend call.
type Kind string

const (
	// KindConnection means the backend could not be reached or did not answer in time.
	KindConnection Kind = "connection_error"
	// KindHTTP means the backend answered with a non-2xx status.
	KindHTTP Kind = "http_error"
)

var (
	ErrConnection = errors.New("backend connection failed")
	ErrHTTP       = errors.New("backend responded with an error status")

	// ErrBodyTooLarge is wrapped by a KindConnection error when a 2xx body exceeds
	// the read limit. The payload is never decoded from a truncated body.
	ErrBodyTooLarge = errors.New("response body exceeds limit")
)

// Error is the failure side of a backend call.
type Error struct {
	Kind       Kind
	Backend    string
	Method     string
	URL        string
	StatusCode int
	Body       string
	Err        error
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindHTTP:
		return fmt.Sprintf("%s %s %s: status %d: %s", e.Backend, e.Method, e.URL, e.StatusCode, e.Body)
	default:
		return fmt.Sprintf("%s %s %s: connection failed: %v", e.Backend, e.Method, e.URL, e.Err)
	}
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is lets callers match on the kind with errors.Is(err, ErrConnection) or ErrHTTP.
func (e *Error) Is(target error) bool {
	switch target {
	case ErrConnection:
		return e.Kind == KindConnection
	case ErrHTTP:
		return e.Kind == KindHTTP
	}
	return false
}

// KindOf returns the kind of a backend failure, or "" if err did not come from a call.
func KindOf(err error) Kind {
	var oe *Error
	if errors.As(err, &oe) {
		return oe.Kind
	}
	return ""
}
