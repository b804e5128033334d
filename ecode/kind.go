package ecode

import (
	"errors"
	"fmt"
)

// Kind classifies listing failures.
type Kind int

const (
	KindNone Kind = iota
	KindConfiguration
	KindNetwork
	KindInvalidResponse
)

func (k Kind) String() string {
	switch k {
	case KindConfiguration:
		return "configuration"
	case KindNetwork:
		return "network"
	case KindInvalidResponse:
		return "invalid_response"
	default:
		return "none"
	}
}

// Code returns the business code for the kind.
func (k Kind) Code() int {
	switch k {
	case KindConfiguration:
		return ConfigurationErr
	case KindNetwork:
		return NetworkErr
	case KindInvalidResponse:
		return InvalidResponseErr
	default:
		return OK
	}
}

// Error is a classified error carrying the failing operation.
type Error struct {
	Kind    Kind
	Op      string
	Message string
	Err     error
}

func (e *Error) Error() string {
	msg := e.Message
	if msg == "" {
		msg = Text(e.Kind.Code())
	}
	if e.Op != "" {
		msg = e.Op + ": " + msg
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches errors of the same kind so errors.Is(err, &Error{Kind: k}) works.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Op == "" && t.Message == "" && t.Err == nil && t.Kind == e.Kind
}

// ConfigurationError reports a programmer error such as a malformed template.
func ConfigurationError(op, message string) error {
	return &Error{Kind: KindConfiguration, Op: op, Message: message}
}

// NetworkError reports a transport or backend failure.
func NetworkError(op string, err error) error {
	return &Error{Kind: KindNetwork, Op: op, Err: err}
}

// InvalidResponseError reports a response that could not be interpreted.
func InvalidResponseError(op, message string, err ...error) error {
	e := &Error{Kind: KindInvalidResponse, Op: op, Message: message}
	if len(err) > 0 {
		e.Err = err[0]
	}
	return e
}

// KindOf returns the kind of the first classified error in err's chain.
func KindOf(err error) Kind {
	if err == nil {
		return KindNone
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindNone
}

// Retryable reports whether re-issuing the request may succeed.
// Invalid responses are retried like network failures.
func Retryable(err error) bool {
	switch KindOf(err) {
	case KindNetwork, KindInvalidResponse:
		return true
	default:
		return false
	}
}
