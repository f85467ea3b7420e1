package errors

import "errors"

// Common error types used across the lustre-limiter library

var (
	// ErrClosed indicates that an operation was attempted on a stopped loop
	ErrClosed = errors.New("loop is closed")

	// ErrQueueFull indicates that the loop's message queue is at capacity
	ErrQueueFull = errors.New("message queue is full")

	// ErrInvalidConfiguration indicates invalid configuration parameters
	ErrInvalidConfiguration = errors.New("invalid configuration")
)

// IsTemporary returns true if the error indicates a condition that might
// be resolved by retrying the operation
func IsTemporary(err error) bool {
	return errors.Is(err, ErrQueueFull)
}
