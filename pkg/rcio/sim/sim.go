// Package sim simulates the RC I/O coprocessor on the far end of the
// byte stream, for tests and for running the tools without hardware.
package sim

import (
	"errors"
	"io"
	"sync"

	"github.com/golang/glog"

	"github.com/robotalks/rcio.go/pkg/rcio/packet"
	"github.com/robotalks/rcio.go/pkg/rcio/regs"
)

var (
	// ErrInjected is returned by injected channel faults.
	ErrInjected = errors.New("injected fault")
	// ErrNoResponse is returned from Read when the coprocessor is unresponsive.
	ErrNoResponse = errors.New("no response")
)

// Coprocessor implements io.ReadWriter as seen from the host.
type Coprocessor struct {
	lock     sync.Mutex
	regs     map[regs.Address]uint16
	readOnly map[uint8]bool
	rejected map[uint8]bool
	parser   packet.Parser
	pending  []byte

	corruptResponses int
	shortResponses   int
	failWrites       int
	failReads        int
	unresponsive     bool

	transactions int
	reads        map[regs.Address]int
	writes       map[regs.Address]int
}

// Defaults reported on the config page.
const (
	DefaultHardware      = 2
	DefaultBootloader    = 3
	DefaultControlCount  = 8
	DefaultActuatorCount = 8
	DefaultRCInputCount  = 18
	DefaultADCInputCount = 2
	DefaultRelayCount    = 0
)

// New creates a Coprocessor reporting a compatible configuration.
func New() *Coprocessor {
	c := &Coprocessor{
		regs:     make(map[regs.Address]uint16),
		readOnly: map[uint8]bool{regs.PageConfig: true},
		rejected: make(map[uint8]bool),
		reads:    make(map[regs.Address]int),
		writes:   make(map[regs.Address]int),
	}
	config := []uint16{
		regs.ConfigProtocolVersion:   regs.ProtocolVersion,
		regs.ConfigHardwareVersion:   DefaultHardware,
		regs.ConfigBootloaderVersion: DefaultBootloader,
		regs.ConfigMaxTransfer:       regs.MaxTransferLen,
		regs.ConfigControlCount:      DefaultControlCount,
		regs.ConfigActuatorCount:     DefaultActuatorCount,
		regs.ConfigRCInputCount:      DefaultRCInputCount,
		regs.ConfigADCInputCount:     DefaultADCInputCount,
		regs.ConfigRelayCount:        DefaultRelayCount,
	}
	for n, v := range config {
		c.regs[regs.At(regs.PageConfig, uint8(n))] = v
	}
	c.regs[regs.At(regs.PageStatus, regs.StatusFlags)] = regs.FlagInitOK | regs.FlagMixerOK
	c.regs[regs.At(regs.PageStatus, regs.StatusFreeMem)] = 4096
	return c
}

// Write implements io.Writer and consumes request bytes.
func (c *Coprocessor) Write(p []byte) (int, error) {
	c.lock.Lock()
	defer c.lock.Unlock()
	if c.failWrites > 0 {
		c.failWrites--
		return 0, ErrInjected
	}
	for _, b := range p {
		pr := c.parser.Parse(b)
		if pr.Err != nil {
			glog.V(2).Infof("sim: drop byte 0x%02x: %v", b, pr.Err)
			continue
		}
		if pr.Frame != nil {
			c.pending = append(c.pending, c.handle(pr)...)
		}
	}
	return len(p), nil
}

// Read implements io.Reader and produces response bytes.
func (c *Coprocessor) Read(p []byte) (int, error) {
	c.lock.Lock()
	defer c.lock.Unlock()
	if c.unresponsive {
		c.pending = nil
		return 0, ErrNoResponse
	}
	if c.failReads > 0 {
		c.failReads--
		c.pending = nil
		return 0, ErrInjected
	}
	if len(c.pending) == 0 {
		return 0, io.EOF
	}
	n := copy(p, c.pending)
	c.pending = c.pending[n:]
	return n, nil
}

func (c *Coprocessor) handle(pr packet.ParseResult) []byte {
	c.transactions++
	size := len(pr.Frame)
	req := pr.Packet
	if pr.Corrupt || req == nil {
		return (&packet.Packet{Code: packet.CodeCorrupt}).Frame(size)
	}
	resp := &packet.Packet{Code: packet.CodeSuccess, Page: req.Page, Offset: req.Offset}
	addr := regs.At(req.Page, req.Offset)
	if c.rejected[req.Page] || int(req.Offset)+req.Count() > 0x100 {
		resp.Code = packet.CodeError
	} else if req.Code == packet.CodeWrite {
		c.writes[addr]++
		if c.readOnly[req.Page] {
			resp.Code = packet.CodeError
		} else {
			for n, v := range req.Regs {
				c.store(addr.Next(n), v)
			}
			resp.Regs = req.Regs
		}
	} else {
		c.reads[addr]++
		resp.Regs = make([]uint16, req.Count())
		for n := range resp.Regs {
			resp.Regs[n] = c.regs[addr.Next(n)]
		}
		if c.shortResponses > 0 && len(resp.Regs) > 0 {
			c.shortResponses--
			resp.Regs = resp.Regs[:len(resp.Regs)-1]
		}
	}
	frame := resp.Frame(size)
	if c.corruptResponses > 0 {
		c.corruptResponses--
		frame[1] ^= 0xff
	}
	return frame
}

func (c *Coprocessor) store(addr regs.Address, v uint16) {
	if addr == regs.At(regs.PageStatus, regs.StatusAlarms) {
		c.regs[addr] &^= v
		return
	}
	c.regs[addr] = v
}
