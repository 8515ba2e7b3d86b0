package sim

import (
	"github.com/robotalks/rcio.go/pkg/rcio/regs"
)

// SetRegisters sets register values directly, bypassing the protocol.
func (c *Coprocessor) SetRegisters(page, offset uint8, values ...uint16) {
	c.lock.Lock()
	defer c.lock.Unlock()
	addr := regs.At(page, offset)
	for n, v := range values {
		c.regs[addr.Next(n)] = v
	}
}

// Register gets a register value directly.
func (c *Coprocessor) Register(page, offset uint8) uint16 {
	c.lock.Lock()
	defer c.lock.Unlock()
	return c.regs[regs.At(page, offset)]
}

// Registers gets count consecutive register values directly.
func (c *Coprocessor) Registers(page, offset uint8, count int) []uint16 {
	c.lock.Lock()
	defer c.lock.Unlock()
	addr := regs.At(page, offset)
	values := make([]uint16, count)
	for n := range values {
		values[n] = c.regs[addr.Next(n)]
	}
	return values
}

// Reject makes the coprocessor reply with an error code to all
// requests addressing page.
func (c *Coprocessor) Reject(page uint8) {
	c.lock.Lock()
	c.rejected[page] = true
	c.lock.Unlock()
}

// CorruptResponses flips the crc of the next n responses.
func (c *Coprocessor) CorruptResponses(n int) {
	c.lock.Lock()
	c.corruptResponses = n
	c.lock.Unlock()
}

// ShortResponses drops the last register from the next n read responses.
func (c *Coprocessor) ShortResponses(n int) {
	c.lock.Lock()
	c.shortResponses = n
	c.lock.Unlock()
}

// FailWrites makes the next n channel writes fail.
func (c *Coprocessor) FailWrites(n int) {
	c.lock.Lock()
	c.failWrites = n
	c.lock.Unlock()
}

// FailReads makes the next n channel reads fail.
func (c *Coprocessor) FailReads(n int) {
	c.lock.Lock()
	c.failReads = n
	c.lock.Unlock()
}

// SetUnresponsive makes all channel reads fail until cleared.
func (c *Coprocessor) SetUnresponsive(unresponsive bool) {
	c.lock.Lock()
	c.unresponsive = unresponsive
	c.lock.Unlock()
}

// SetRCInput simulates a receiver. source is one of the status RC source
// flags, or 0 for a lost signal.
func (c *Coprocessor) SetRCInput(source uint16, values ...uint16) {
	c.lock.Lock()
	defer c.lock.Unlock()
	flagsAddr := regs.At(regs.PageStatus, regs.StatusFlags)
	flags := c.regs[flagsAddr] &^ (regs.FlagRCOK | regs.FlagRCPPM | regs.FlagRCDSM | regs.FlagRCSBUS | regs.FlagRCST24 | regs.FlagRCSUMD)
	rawFlags := uint16(0)
	if source != 0 {
		flags |= regs.FlagRCOK | source
		rawFlags = regs.RawRCFlagRCOK
	}
	c.regs[flagsAddr] = flags
	c.regs[regs.At(regs.PageRawRCInput, regs.RawRCCount)] = uint16(len(values))
	c.regs[regs.At(regs.PageRawRCInput, regs.RawRCFlags)] = rawFlags
	base := regs.At(regs.PageRawRCInput, regs.RawRCBase)
	for n := 0; n < regs.RCInputMaxChannels; n++ {
		var v uint16
		if n < len(values) {
			v = values[n]
		}
		c.regs[base.Next(n)] = v
	}
}

// Transactions returns the number of request frames handled.
func (c *Coprocessor) Transactions() int {
	c.lock.Lock()
	defer c.lock.Unlock()
	return c.transactions
}

// Reads returns the number of read requests starting at page/offset.
func (c *Coprocessor) Reads(page, offset uint8) int {
	c.lock.Lock()
	defer c.lock.Unlock()
	return c.reads[regs.At(page, offset)]
}

// Writes returns the number of write requests starting at page/offset.
func (c *Coprocessor) Writes(page, offset uint8) int {
	c.lock.Lock()
	defer c.lock.Unlock()
	return c.writes[regs.At(page, offset)]
}

// PageReads returns the number of read requests addressing page.
func (c *Coprocessor) PageReads(page uint8) int {
	c.lock.Lock()
	defer c.lock.Unlock()
	var n int
	for addr, count := range c.reads {
		if addr.Page == page {
			n += count
		}
	}
	return n
}
