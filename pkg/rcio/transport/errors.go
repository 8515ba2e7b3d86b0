package transport

import (
	"errors"
	"fmt"
)

var (
	// ErrChecksumMismatch indicates a frame failed its crc, either on
	// receipt or as reported by the coprocessor. Retried.
	ErrChecksumMismatch = errors.New("checksum mismatch")
	// ErrDeviceRejected indicates the coprocessor replied with an error
	// code. Not retried.
	ErrDeviceRejected = errors.New("rejected by device")
	// ErrCountMismatch indicates the response carries a different number
	// of registers than requested. Not retried.
	ErrCountMismatch = errors.New("register count mismatch")
	// ErrTooManyRegisters indicates the request exceeds the frame limit.
	ErrTooManyRegisters = errors.New("too many registers")
)

// IOError wraps a failure of the underlying channel.
type IOError struct {
	Op  string
	Err error
}

// Error implements error.
func (e *IOError) Error() string {
	return fmt.Sprintf("channel %s: %v", e.Op, e.Err)
}

// Unwrap returns the channel error.
func (e *IOError) Unwrap() error {
	return e.Err
}

// ExchangeError is returned from a failed Exchange.
type ExchangeError struct {
	Write    bool
	Page     uint8
	Offset   uint8
	Count    int
	Attempts int
	Err      error
}

// Error implements error.
func (e *ExchangeError) Error() string {
	op := "read"
	if e.Write {
		op = "write"
	}
	return fmt.Sprintf("%s %d@%d/%d failed after %d attempt(s): %v",
		op, e.Count, e.Page, e.Offset, e.Attempts, e.Err)
}

// Unwrap returns the cause.
func (e *ExchangeError) Unwrap() error {
	return e.Err
}

// Retryable indicates whether an exchange failing with err may succeed
// when repeated.
func Retryable(err error) bool {
	var ioErr *IOError
	return errors.As(err, &ioErr) || errors.Is(err, ErrChecksumMismatch)
}
