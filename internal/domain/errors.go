package domain

import (
	"errors"
	"net/http"
)

type Kind int

const (
	KindUnknown Kind = iota
	// no response: dial, TLS, timeout, cancellation
	KindTransport
	// response with a non-2xx status
	KindApplication
	// 2xx response whose body is not the expected JSON
	KindDecode
	// an external resource (checkout script) could not be made available
	KindResource
)

func (k Kind) String() string {
	switch k {
	case KindTransport:
		return "transport"
	case KindApplication:
		return "application"
	case KindDecode:
		return "decode"
	case KindResource:
		return "resource"
	}
	return "unknown"
}

// Error is returned by every gateway operation. Message is what the UI shows:
// the server's "message" when it sent one, otherwise the operation's literal.
type Error struct {
	Kind    Kind
	Status  int // HTTP status, KindApplication only
	Message string
	Err     error
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.Err }

var ErrNotFound = errors.New("not found")

func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

func StatusOf(err error) int {
	var e *Error
	if errors.As(err, &e) {
		return e.Status
	}
	return 0
}

// IsRetryable reports whether repeating the call may succeed: transport
// failures, 429 and 5xx. Nothing in this module retries on its own.
func IsRetryable(err error) bool {
	var e *Error
	if !errors.As(err, &e) {
		return false
	}
	switch e.Kind {
	case KindTransport:
		return true
	case KindApplication:
		return e.Status == http.StatusTooManyRequests || e.Status >= 500
	}
	return false
}

// Is lets errors.Is(err, ErrNotFound) match a 404 answer.
func (e *Error) Is(target error) bool {
	return target == ErrNotFound && e.Kind == KindApplication && e.Status == http.StatusNotFound
}
