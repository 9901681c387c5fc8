package transport

import (
	"context"
	"errors"
	"fmt"
	"net"
	"syscall"
)

// Kind identifies where a backend call failed.
type Kind int

const (
	// KindUnknown covers failures that fit no other bucket.
	KindUnknown Kind = iota
	// KindConnectionRefused means no server was reachable at the base URL.
	KindConnectionRefused
	// KindServerError means the backend answered with a non-2xx status and a body.
	KindServerError
	// KindNoResponse means the request was sent but no reply arrived in time.
	KindNoResponse
)

func (k Kind) String() string {
	switch k {
	case KindConnectionRefused:
		return "connection refused"
	case KindServerError:
		return "server error"
	case KindNoResponse:
		return "no response"
	default:
		return "unknown"
	}
}

// Error is the uniform shape every transport failure is normalized into.
// For KindServerError, Message carries the backend body's "error" field
// verbatim; callers classify on it and must not rewrite it.
type Error struct {
	Kind       Kind
	StatusCode int
	Message    string
	Err        error
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Kind, e.Err)
	}
	return e.Kind.String()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf returns the transport kind of err, or KindUnknown for errors that
// did not come from this package.
func KindOf(err error) Kind {
	var te *Error
	if errors.As(err, &te) {
		return te.Kind
	}
	return KindUnknown
}

// classifyNetError maps a failed http.Client.Do error into a transport kind.
func classifyNetError(err error) Kind {
	if errors.Is(err, syscall.ECONNREFUSED) {
		return KindConnectionRefused
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return KindNoResponse
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return KindNoResponse
	}
	return KindUnknown
}
