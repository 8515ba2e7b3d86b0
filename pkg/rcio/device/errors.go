package device

import (
	"errors"
	"fmt"

	"github.com/robotalks/rcio.go/pkg/rcio/transport"
)

// Register access errors.
var (
	// ErrTooManyRegisters indicates the request exceeds the negotiated
	// transfer size. No I/O was performed.
	ErrTooManyRegisters = errors.New("too many registers")
	// ErrDataError indicates the response was corrupted or carried the
	// wrong register count.
	ErrDataError = errors.New("data error")
	// ErrRejected indicates the coprocessor refused the request.
	ErrRejected = errors.New("rejected")
	// ErrTransport indicates the channel failed after all retries.
	ErrTransport = errors.New("transport error")
	// ErrInvalidArgument indicates a malformed request.
	ErrInvalidArgument = errors.New("invalid argument")
)

// Command errors.
var (
	// ErrNotConnected indicates no valid RC input signal.
	ErrNotConnected = errors.New("rc input not connected")
	// ErrUnsupportedCommand indicates the command is unknown.
	ErrUnsupportedCommand = errors.New("unsupported command")
	// ErrNotInitialized indicates the command needs capabilities
	// negotiated by Init.
	ErrNotInitialized = errors.New("not initialized")
)

// Handshake errors.
var (
	// ErrHandshakeTimeout indicates the coprocessor never answered the
	// protocol version query.
	ErrHandshakeTimeout = errors.New("handshake timeout")
	// ErrProtocolMismatch indicates incompatible firmware.
	ErrProtocolMismatch = errors.New("protocol mismatch")
	// ErrInvalidCapabilities indicates the configuration page is out of range.
	ErrInvalidCapabilities = errors.New("invalid capabilities")
)

// RegisterError describes a failed register access. It unwraps to both
// its Kind and the transport error that caused it.
type RegisterError struct {
	Write  bool
	Page   uint8
	Offset uint8
	Count  int
	Kind   error
	Err    error
}

// Error implements error.
func (e *RegisterError) Error() string {
	op := "get"
	if e.Write {
		op = "set"
	}
	msg := fmt.Sprintf("reg %s(%d,%d,%d): %v", op, e.Page, e.Offset, e.Count, e.Kind)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap returns Kind and the cause.
func (e *RegisterError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// InitError is returned from a failed Init.
type InitError struct {
	Kind   error
	Detail string
	Err    error
}

// Error implements error.
func (e *InitError) Error() string {
	msg := "init: " + e.Kind.Error()
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap returns Kind and the cause, if any.
func (e *InitError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

func classify(err error) error {
	switch {
	case errors.Is(err, transport.ErrDeviceRejected):
		return ErrRejected
	case errors.Is(err, transport.ErrCountMismatch), errors.Is(err, transport.ErrChecksumMismatch):
		return ErrDataError
	case errors.Is(err, transport.ErrTooManyRegisters):
		return ErrTooManyRegisters
	}
	return ErrTransport
}
