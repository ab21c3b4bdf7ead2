package api

import (
	"errors"
	"fmt"
)

// Kind classifies a failed call. Callers branch on Kind, never on the
// wording of Message
type Kind int

const (
	// KindTransport means the request never produced a readable response
	KindTransport Kind = iota
	// KindMalformed means a 2xx response whose body was not the expected JSON
	KindMalformed
	// KindAPI means a non-2xx response
	KindAPI
	// KindUnauthenticated means the service rejected the credential (401)
	KindUnauthenticated
)

func (k Kind) String() string {
	switch k {
	case KindTransport:
		return "transport"
	case KindMalformed:
		return "malformed"
	case KindAPI:
		return "api"
	case KindUnauthenticated:
		return "unauthenticated"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Error is the single error type returned by Client. Message is always
// human-readable and safe to show to the user verbatim
type Error struct {
	Kind    Kind
	Status  int
	Message string
	Body    []byte
	Err     error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// IsUnauthenticated reports whether err means the session is no longer
// accepted by the service
func IsUnauthenticated(err error) bool {
	var ae *Error
	return errors.As(err, &ae) && ae.Kind == KindUnauthenticated
}

// Message returns the user-facing text of err, or fallback when err
// carries none
func Message(err error, fallback string) string {
	if err == nil {
		return ""
	}
	var ae *Error
	if errors.As(err, &ae) {
		if ae.Message != "" {
			return ae.Message
		}
		return fallback
	}
	if msg := err.Error(); msg != "" {
		return msg
	}
	return fallback
}

func statusMessage(status int) string {
	return fmt.Sprintf("Request failed with status %d", status)
}
