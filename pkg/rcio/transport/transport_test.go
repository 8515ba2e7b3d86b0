package transport

import (
	"errors"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/robotalks/rcio.go/pkg/rcio/packet"
)

type reply struct {
	writeErr error
	readErr  error
	respond  func(req *packet.Packet, size int) []byte
}

type scriptedChannel struct {
	t       *testing.T
	writes  [][]byte
	replies []reply
	current reply
	pending []byte
}

func (c *scriptedChannel) Write(p []byte) (int, error) {
	c.writes = append(c.writes, append([]byte(nil), p...))
	require.NotEmpty(c.t, c.replies, "unexpected request % x", p)
	c.current, c.replies, c.pending = c.replies[0], c.replies[1:], nil
	if c.current.writeErr != nil {
		return 0, c.current.writeErr
	}
	req, err := packet.Decode(p)
	require.NoError(c.t, err)
	require.True(c.t, packet.Verify(p))
	if c.current.respond != nil {
		c.pending = c.current.respond(req, len(p))
	}
	return len(p), nil
}

func (c *scriptedChannel) Read(p []byte) (int, error) {
	if err := c.current.readErr; err != nil {
		c.current.readErr = nil
		return 0, err
	}
	if len(c.pending) == 0 {
		return 0, io.EOF
	}
	n := copy(p, c.pending)
	c.pending = c.pending[n:]
	return n, nil
}

func newScripted(t *testing.T, replies ...reply) (*scriptedChannel, *Transport) {
	ch := &scriptedChannel{t: t, replies: replies}
	return ch, New(ch)
}

func success(regs ...uint16) reply {
	return reply{respond: func(req *packet.Packet, size int) []byte {
		resp := &packet.Packet{Code: packet.CodeSuccess, Page: req.Page, Offset: req.Offset, Regs: regs}
		if regs == nil {
			resp.Regs = req.Regs
		}
		return resp.Frame(size)
	}}
}

func withCode(code packet.Code) reply {
	return reply{respond: func(req *packet.Packet, size int) []byte {
		return (&packet.Packet{Code: code, Page: req.Page, Offset: req.Offset}).Frame(size)
	}}
}

func badChecksum(regs ...uint16) reply {
	r := success(regs...)
	respond := r.respond
	r.respond = func(req *packet.Packet, size int) []byte {
		b := respond(req, size)
		b[1] ^= 0x5a
		return b
	}
	return r
}

func TestReadSuccess(t *testing.T) {
	ch, tr := newScripted(t, success(4, 5))
	values, err := tr.Read(0, 0, 2)
	require.NoError(t, err)
	require.Equal(t, []uint16{4, 5}, values)
	require.Len(t, ch.writes, 1)
	require.Equal(t, packet.NewRead(0, 0, 2).Bytes(), ch.writes[0])
}

func TestWriteSuccess(t *testing.T) {
	ch, tr := newScripted(t, success())
	require.NoError(t, tr.Write(50, 9, []uint16{3}))
	require.Len(t, ch.writes, 1)
	require.Equal(t, byte(0x41), ch.writes[0][0])
}

func TestRetryOnIOError(t *testing.T) {
	ioErr := errors.New("unplugged")
	ch, tr := newScripted(t,
		reply{writeErr: ioErr},
		reply{readErr: ioErr},
		success(7),
	)
	values, err := tr.Read(1, 2, 1)
	require.NoError(t, err)
	require.Equal(t, []uint16{7}, values)
	require.Len(t, ch.writes, 3)
}

func TestIOErrorExhausted(t *testing.T) {
	ioErr := errors.New("unplugged")
	ch, tr := newScripted(t, reply{writeErr: ioErr}, reply{writeErr: ioErr}, reply{writeErr: ioErr})
	_, err := tr.Read(1, 2, 1)
	require.Error(t, err)
	require.True(t, errors.Is(err, ioErr))
	var ioError *IOError
	require.True(t, errors.As(err, &ioError))
	require.Equal(t, "write", ioError.Op)
	var exErr *ExchangeError
	require.True(t, errors.As(err, &exErr))
	require.Equal(t, 3, exErr.Attempts)
	require.Len(t, ch.writes, 3)
}

func TestShortRead(t *testing.T) {
	short := reply{respond: func(req *packet.Packet, size int) []byte {
		return make([]byte, size-1)
	}}
	ch, tr := newScripted(t, short, short, short)
	_, err := tr.Read(0, 0, 1)
	require.True(t, errors.Is(err, io.ErrUnexpectedEOF))
	require.Len(t, ch.writes, 3)
}

func TestChecksumMismatchRetried(t *testing.T) {
	ch, tr := newScripted(t, badChecksum(9), success(9))
	values, err := tr.Read(0, 0, 1)
	require.NoError(t, err)
	require.Equal(t, []uint16{9}, values)
	require.Len(t, ch.writes, 2)
}

func TestChecksumMismatchExhausted(t *testing.T) {
	ch, tr := newScripted(t, badChecksum(9), badChecksum(9), badChecksum(9))
	values, err := tr.Read(0, 0, 1)
	require.Nil(t, values)
	require.True(t, errors.Is(err, ErrChecksumMismatch))
	require.Len(t, ch.writes, 3)
}

func TestCorruptReportedByDevice(t *testing.T) {
	ch, tr := newScripted(t, withCode(packet.CodeCorrupt), success())
	require.NoError(t, tr.Write(0, 0, []uint16{1}))
	require.Len(t, ch.writes, 2)
}

func TestDeviceRejectedNotRetried(t *testing.T) {
	ch, tr := newScripted(t, withCode(packet.CodeError))
	_, err := tr.Read(99, 0, 1)
	require.True(t, errors.Is(err, ErrDeviceRejected))
	require.False(t, Retryable(err))
	require.Len(t, ch.writes, 1)
}

func TestCountMismatchNotRetried(t *testing.T) {
	ch, tr := newScripted(t, success(1))
	_, err := tr.Read(0, 0, 2)
	require.True(t, errors.Is(err, ErrCountMismatch))
	require.Len(t, ch.writes, 1)
}

func TestTooManyRegisters(t *testing.T) {
	ch, tr := newScripted(t)
	_, err := tr.Read(0, 0, packet.MaxRegs+1)
	require.True(t, errors.Is(err, ErrTooManyRegisters))
	require.Empty(t, ch.writes)
}

func TestRetryPolicy(t *testing.T) {
	ioErr := errors.New("unplugged")
	ch, tr := newScripted(t, reply{writeErr: ioErr}, reply{writeErr: ioErr}, reply{writeErr: ioErr}, reply{writeErr: ioErr}, success(1))
	tr.Retries = 5
	tr.RetryDelay = time.Millisecond
	start := time.Now()
	_, err := tr.Read(0, 0, 1)
	require.NoError(t, err)
	require.Len(t, ch.writes, 5)
	require.True(t, time.Since(start) >= 4*time.Millisecond)

	ch, tr = newScripted(t, reply{writeErr: ioErr}, success(1))
	tr.Retries = 1
	_, err = tr.Read(0, 0, 1)
	require.Error(t, err)
	require.Len(t, ch.writes, 1)

	ch, tr = newScripted(t, reply{writeErr: ioErr}, reply{writeErr: ioErr}, reply{writeErr: ioErr})
	tr.Retries = 0
	_, err = tr.Read(0, 0, 1)
	require.Error(t, err)
	require.Len(t, ch.writes, DefaultRetries)
}
