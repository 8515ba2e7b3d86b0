package transport

import (
	"io"
	"time"

	"github.com/golang/glog"

	"github.com/robotalks/rcio.go/pkg/rcio/packet"
)

// DefaultRetries is the default number of attempts per exchange.
const DefaultRetries = 3

// Transport sends requests and receives responses over Channel.
type Transport struct {
	Channel io.ReadWriter
	// Retries is the total number of attempts on retryable failures.
	// DefaultRetries is used when it's not positive.
	Retries int
	// RetryDelay is slept between attempts.
	RetryDelay time.Duration
}

// New creates a Transport with default retry policy.
func New(ch io.ReadWriter) *Transport {
	return &Transport{Channel: ch, Retries: DefaultRetries}
}

// Read reads count registers starting at page/offset.
func (t *Transport) Read(page, offset uint8, count int) ([]uint16, error) {
	resp, err := t.Exchange(packet.NewRead(page, offset, count))
	if err != nil {
		return nil, err
	}
	return resp.Regs, nil
}

// Write writes values starting at page/offset.
func (t *Transport) Write(page, offset uint8, values []uint16) error {
	_, err := t.Exchange(packet.NewWrite(page, offset, values))
	return err
}

// Exchange sends a request and returns the validated response.
// Channel failures and checksum failures are retried; a device error or
// a register count mismatch is returned immediately.
func (t *Transport) Exchange(req *packet.Packet) (*packet.Packet, error) {
	exErr := &ExchangeError{
		Write:  req.Code == packet.CodeWrite,
		Page:   req.Page,
		Offset: req.Offset,
		Count:  req.Count(),
	}
	if req.Count() > packet.MaxRegs {
		exErr.Err = ErrTooManyRegisters
		return nil, exErr
	}

	attempts := t.Retries
	if attempts <= 0 {
		attempts = DefaultRetries
	}
	frame := req.Bytes()
	buf := make([]byte, len(frame))
	for exErr.Attempts < attempts {
		if exErr.Attempts > 0 {
			glog.V(1).Infof("retry %s (%d/%d): %v", req, exErr.Attempts+1, attempts, exErr.Err)
			if t.RetryDelay > 0 {
				time.Sleep(t.RetryDelay)
			}
		}
		exErr.Attempts++
		resp, err := t.transfer(req, frame, buf)
		if err == nil {
			return resp, nil
		}
		exErr.Err = err
		if !Retryable(err) {
			break
		}
	}
	return nil, exErr
}

func (t *Transport) transfer(req *packet.Packet, frame, buf []byte) (*packet.Packet, error) {
	glog.V(3).Infof("TX % x", frame)
	n, err := t.Channel.Write(frame)
	if err != nil {
		return nil, &IOError{Op: "write", Err: err}
	}
	if n != len(frame) {
		return nil, &IOError{Op: "write", Err: io.ErrShortWrite}
	}
	if _, err = io.ReadFull(t.Channel, buf); err != nil {
		return nil, &IOError{Op: "read", Err: err}
	}
	glog.V(3).Infof("RX % x", buf)
	return parseResponse(req, buf)
}

func parseResponse(req *packet.Packet, frame []byte) (*packet.Packet, error) {
	if !packet.Verify(frame) {
		return nil, ErrChecksumMismatch
	}
	code, count := packet.PeekHeader(frame)
	switch code {
	case packet.CodeError:
		return nil, ErrDeviceRejected
	case packet.CodeCorrupt:
		// the coprocessor failed to verify the request.
		return nil, ErrChecksumMismatch
	}
	if req.Code == packet.CodeRead && count != req.Count() {
		return nil, ErrCountMismatch
	}
	if packet.FrameSize(count) > len(frame) {
		return nil, ErrCountMismatch
	}
	return packet.Decode(frame)
}
