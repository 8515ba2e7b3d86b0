package env

import (
	"io"

	"github.com/golang/glog"

	"github.com/robotalks/rcio.go/pkg/rcio/device"
	"github.com/robotalks/rcio.go/pkg/rcio/regs"
	"github.com/robotalks/rcio.go/pkg/rcio/serial"
	"github.com/robotalks/rcio.go/pkg/rcio/sim"
	"github.com/robotalks/rcio.go/pkg/rcio/transport"
)

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// OpenChannel opens the byte stream to the coprocessor.
func (c *Config) OpenChannel() (io.ReadWriter, io.Closer, error) {
	if c.Sim {
		glog.Info("using simulated coprocessor")
		co := sim.New()
		// centered sticks on a PPM receiver
		values := make([]uint16, 8)
		for n := range values {
			values[n] = 1500
		}
		co.SetRCInput(regs.FlagRCPPM, values...)
		return co, nopCloser{}, nil
	}
	port, err := serial.Open(serial.Config{Device: c.Device, BaudRate: c.BaudRate})
	if err != nil {
		return nil, nil, err
	}
	return port, port, nil
}

// NewDevice opens the channel and creates an uninitialized Device on it.
// The returned io.Closer releases the channel.
func (c *Config) NewDevice() (*device.Device, io.Closer, error) {
	ch, closer, err := c.OpenChannel()
	if err != nil {
		return nil, nil, err
	}
	t := transport.New(ch)
	t.Retries, t.RetryDelay = c.Retries, c.RetryDelay
	dev := device.NewWithTransport(t)
	dev.HandshakeTimeout, dev.PollInterval = c.HandshakeTimeout, c.PollInterval
	return dev, closer, nil
}
