// Package device provides typed register access to the RC I/O coprocessor.
//
// A Device is owned by a single goroutine. The protocol allows only one
// transaction in flight, so concurrent callers must serialize access
// around whole operations (e.g. ModifyRegister).
package device

import (
	"io"
	"time"

	"github.com/golang/glog"

	"github.com/robotalks/rcio.go/pkg/rcio/regs"
	"github.com/robotalks/rcio.go/pkg/rcio/transport"
)

// RegError is returned by Register when the read fails. It lies outside
// the 16-bit register domain.
const RegError uint32 = 0x80000000

// Handshake defaults.
const (
	DefaultHandshakeTimeout = 700 * time.Millisecond
	DefaultPollInterval     = 2 * time.Millisecond
	// DefaultMaxTransfer is the transfer size in bytes assumed until the
	// coprocessor reports its own.
	DefaultMaxTransfer = 16
)

// Device is the register-level API of the coprocessor.
type Device struct {
	Transport        *transport.Transport
	HandshakeTimeout time.Duration
	PollInterval     time.Duration

	state       State
	caps        Capabilities
	maxTransfer int
}

// New creates a Device over a byte stream with the default retry policy.
func New(ch io.ReadWriter) *Device {
	return NewWithTransport(transport.New(ch))
}

// NewWithTransport creates a Device using an existing Transport.
func NewWithTransport(t *transport.Transport) *Device {
	return &Device{
		Transport:        t,
		HandshakeTimeout: DefaultHandshakeTimeout,
		PollInterval:     DefaultPollInterval,
		maxTransfer:      DefaultMaxTransfer,
	}
}

// MaxTransfer returns the current transfer size limit in bytes.
func (d *Device) MaxTransfer() int {
	return d.maxTransfer
}

func (d *Device) checkCount(write bool, page, offset uint8, count int) error {
	if count <= 0 {
		return &RegisterError{Write: write, Page: page, Offset: offset, Count: count, Kind: ErrInvalidArgument}
	}
	if count*2 > d.maxTransfer {
		glog.V(1).Infof("too many registers (%d, max %d)", count, d.maxTransfer/2)
		return &RegisterError{Write: write, Page: page, Offset: offset, Count: count, Kind: ErrTooManyRegisters}
	}
	return nil
}

// ReadRegisters reads count registers starting at page/offset.
func (d *Device) ReadRegisters(page, offset uint8, count int) ([]uint16, error) {
	if err := d.checkCount(false, page, offset, count); err != nil {
		return nil, err
	}
	values, err := d.Transport.Read(page, offset, count)
	if err != nil {
		glog.V(1).Infof("reg get(%d,%d,%d): %v", page, offset, count, err)
		return nil, &RegisterError{Page: page, Offset: offset, Count: count, Kind: classify(err), Err: err}
	}
	glog.V(2).Infof("reg get(%d,%d,%d) = %v", page, offset, count, values)
	return values, nil
}

// ReadRegister reads a single register.
func (d *Device) ReadRegister(page, offset uint8) (uint16, error) {
	values, err := d.ReadRegisters(page, offset, 1)
	if err != nil {
		return 0, err
	}
	return values[0], nil
}

// Register reads a single register and returns RegError on failure.
func (d *Device) Register(page, offset uint8) uint32 {
	v, err := d.ReadRegister(page, offset)
	if err != nil {
		return RegError
	}
	return uint32(v)
}

// WriteRegisters writes values starting at page/offset.
func (d *Device) WriteRegisters(page, offset uint8, values []uint16) error {
	if err := d.checkCount(true, page, offset, len(values)); err != nil {
		return err
	}
	if err := d.Transport.Write(page, offset, values); err != nil {
		glog.V(1).Infof("reg set(%d,%d,%d): %v", page, offset, len(values), err)
		return &RegisterError{Write: true, Page: page, Offset: offset, Count: len(values), Kind: classify(err), Err: err}
	}
	glog.V(2).Infof("reg set(%d,%d,%d) %v", page, offset, len(values), values)
	return nil
}

// WriteRegister writes a single register.
func (d *Device) WriteRegister(page, offset uint8, value uint16) error {
	return d.WriteRegisters(page, offset, []uint16{value})
}

// ModifyRegister clears then sets bits of a register. If the read fails
// the register is not written.
func (d *Device) ModifyRegister(page, offset uint8, clearBits, setBits uint16) error {
	value, err := d.ReadRegister(page, offset)
	if err != nil {
		return err
	}
	value &^= clearBits
	value |= setBits
	return d.WriteRegister(page, offset, value)
}

// ClearAlarms clears all latched alarms.
func (d *Device) ClearAlarms() error {
	return d.WriteRegister(regs.PageStatus, regs.StatusAlarms, 0xffff)
}
