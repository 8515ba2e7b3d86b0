package packet

import "errors"

var (
	// ErrShortFrame indicates a frame ended before its declared registers.
	ErrShortFrame = errors.New("short frame")
	// ErrFrameTooLarge indicates a frame exceeds MaxFrameSize.
	ErrFrameTooLarge = errors.New("frame too large")
	// ErrTooManyRegisters indicates a register count above MaxRegs.
	ErrTooManyRegisters = errors.New("too many registers")
)
