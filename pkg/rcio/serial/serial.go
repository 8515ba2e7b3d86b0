// Package serial opens the UART the coprocessor is attached to.
package serial

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang/glog"
	"go.bug.st/serial"
)

// Defaults for the coprocessor UART.
const (
	DefaultDevice      = "/dev/ttyUSB0"
	DefaultBaudRate    = 1500000
	DefaultReadTimeout = 10 * time.Millisecond
)

// ErrTimeout is returned from Read when no byte arrives in time.
var ErrTimeout = errors.New("serial read timeout")

// Config describes how to open the port.
type Config struct {
	Device      string
	BaudRate    int
	ReadTimeout time.Duration
}

// Port is a byte stream over a serial port. Stale input is discarded
// before each request is written so a late response to a timed out
// request can't be taken as the answer to the next one.
type Port struct {
	port    serial.Port
	timeout time.Duration
}

// Open opens the serial port as 8N1.
func Open(conf Config) (*Port, error) {
	if conf.Device == "" {
		conf.Device = DefaultDevice
	}
	if conf.BaudRate <= 0 {
		conf.BaudRate = DefaultBaudRate
	}
	if conf.ReadTimeout <= 0 {
		conf.ReadTimeout = DefaultReadTimeout
	}
	mode := &serial.Mode{
		BaudRate: conf.BaudRate,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	}
	port, err := serial.Open(conf.Device, mode)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", conf.Device, err)
	}
	if err := port.SetReadTimeout(conf.ReadTimeout); err != nil {
		port.Close()
		return nil, fmt.Errorf("set read timeout on %s: %w", conf.Device, err)
	}
	glog.Infof("opened %s at %d baud", conf.Device, conf.BaudRate)
	return &Port{port: port, timeout: conf.ReadTimeout}, nil
}

// Read implements io.Reader. A timeout is reported as ErrTimeout.
func (p *Port) Read(b []byte) (int, error) {
	n, err := p.port.Read(b)
	if n == 0 && err == nil {
		return 0, ErrTimeout
	}
	return n, err
}

// Write implements io.Writer.
func (p *Port) Write(b []byte) (int, error) {
	if err := p.port.ResetInputBuffer(); err != nil {
		glog.V(1).Infof("reset input buffer: %v", err)
	}
	return p.port.Write(b)
}

// Close implements io.Closer.
func (p *Port) Close() error {
	return p.port.Close()
}
