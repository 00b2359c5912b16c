package llm

import (
	"errors"
	"fmt"
)

// Kind classifies a generation failure so callers can decide retry-vs-abort.
type Kind string

const (
	// KindAuthentication means the credential is missing or rejected.
	KindAuthentication Kind = "authentication"
	// KindTransient means a network/timeout/rate-limit failure; re-sending
	// the same messages is safe.
	KindTransient Kind = "transient"
	// KindService means the remote service returned a well-formed error.
	KindService Kind = "service"
)

type Error struct {
	Kind Kind
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("llm %s failure: %v", e.Kind, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

func newError(kind Kind, err error) *Error {
	return &Error{Kind: kind, Err: err}
}

func kindOf(err error) (Kind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return "", false
}

func IsAuthentication(err error) bool {
	k, ok := kindOf(err)
	return ok && k == KindAuthentication
}

func IsTransient(err error) bool {
	k, ok := kindOf(err)
	return ok && k == KindTransient
}

func IsService(err error) bool {
	k, ok := kindOf(err)
	return ok && k == KindService
}
