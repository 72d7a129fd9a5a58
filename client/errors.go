package client

import (
	"errors"
	"fmt"
)

// Kind classifies a failed chat request so callers and tests can
// distinguish failure causes without parsing message text.
type Kind int

const (
	// KindOther is any failure not covered by the kinds below.
	KindOther Kind = iota
	// KindConnect is a transport failure -- the server could not be
	// reached at all.
	KindConnect
	// KindStatus is a non-2xx HTTP response from the server; Status
	// carries the code.
	KindStatus
	// KindDecode is a response body that could not be decoded.
	KindDecode
)

func (k Kind) String() string {
	switch k {
	case KindConnect:
		return "connect"
	case KindStatus:
		return "status"
	case KindDecode:
		return "decode"
	}
	return "other"
}

// Error is a classified chat request failure.
type Error struct {
	Kind   Kind
	Status int // HTTP status code, set when Kind is KindStatus
	Err    error
}

func (e *Error) Error() string {
	if e.Kind == KindStatus {
		return fmt.Sprintf("%s (%d): %v", e.Kind, e.Status, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Kind, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// As recovers the typed Error from a wrapped chain, or nil if the
// chain contains none.
func As(err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return nil
}
