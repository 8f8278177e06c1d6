// Package common holds the error types, logging setup and retry helper shared
// by the commands and the exporters.
package common

import (
	"context"
	"errors"
	"fmt"
)

// Configuration errors.
var (
	ErrMissingConfig = errors.New("missing configuration")
	ErrInvalidConfig = errors.New("invalid configuration")
)

// UserError is an error whose Message is fit for the terminal. The cause is
// kept for errors.Is and logs.
type UserError struct {
	Err     error
	Message string
}

func (e *UserError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

func (e *UserError) Unwrap() error {
	return e.Err
}

// NewUserError wraps err with a message for the user.
func NewUserError(message string, err error) error {
	return &UserError{Message: message, Err: err}
}

// IsRetryable reports whether WithRetry should try err again. Cancellation and
// errors marked Permanent are final; everything else is assumed transient.
func IsRetryable(err error) bool {
	if err == nil || errors.Is(err, context.Canceled) {
		return false
	}
	var re *RetryableError
	if errors.As(err, &re) {
		return re.Retryable
	}
	return true
}
