package client

import (
	"errors"
	"fmt"
)

var (
	// ErrCanceled is returned when an operation's context ends during the
	// simulated latency.
	ErrCanceled = errors.New("operation canceled")

	// ErrRecordNotFound is returned by record mutations for an unknown id.
	ErrRecordNotFound = errors.New("record not found")

	// ErrClosed is returned once the client's loop has been shut down.
	ErrClosed = errors.New("client closed")
)

// OperationError records which operation failed and why.
type OperationError struct {
	Op  Op
	Err error
}

// Error implements the error interface
func (e *OperationError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error
func (e *OperationError) Unwrap() error {
	return e.Err
}

// IsCanceled reports whether err stems from a cancelled operation.
func IsCanceled(err error) bool {
	return errors.Is(err, ErrCanceled)
}

func opError(op Op, err error) error {
	if err == nil {
		return nil
	}
	var opErr *OperationError
	if errors.As(err, &opErr) {
		return err
	}
	return &OperationError{Op: op, Err: err}
}
