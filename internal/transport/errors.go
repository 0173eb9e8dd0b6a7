package transport

import (
	"errors"
	"fmt"
)

// ErrorType represents the category of a transport failure
type ErrorType int

const (
	// ErrTypeConnect indicates the broker could not be reached or refused us
	ErrTypeConnect ErrorType = iota
	// ErrTypeSubscribe indicates a subscription was rejected
	ErrTypeSubscribe
	// ErrTypePublish indicates a publish failed
	ErrTypePublish
	// ErrTypeTimeout indicates an operation did not complete in time
	ErrTypeTimeout
)

// String returns a human-readable name for the error type
func (et ErrorType) String() string {
	switch et {
	case ErrTypeConnect:
		return "Connect Error"
	case ErrTypeSubscribe:
		return "Subscribe Error"
	case ErrTypePublish:
		return "Publish Error"
	case ErrTypeTimeout:
		return "Timeout"
	default:
		return fmt.Sprintf("ErrorType(%d)", et)
	}
}

// ErrTimeout is wrapped by errors of type ErrTypeTimeout.
var ErrTimeout = errors.New("operation timed out")

// Error is a classified transport failure
type Error struct {
	Type  ErrorType
	Topic string // Topic involved, if any
	Err   error  // Underlying error
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Topic != "" {
		return fmt.Sprintf("%s on %s: %v", e.Type, e.Topic, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Type, e.Err)
}

// Unwrap returns the underlying error for error chain inspection
func (e *Error) Unwrap() error {
	return e.Err
}

// Retryable reports whether retrying the operation may succeed. Paho
// reconnects on its own, so everything except a rejected subscription is
// worth retrying.
func (e *Error) Retryable() bool {
	return e.Type != ErrTypeSubscribe
}

// IsTimeout reports whether err is a transport timeout.
func IsTimeout(err error) bool {
	var te *Error
	if errors.As(err, &te) {
		return te.Type == ErrTypeTimeout
	}
	return errors.Is(err, ErrTimeout)
}
