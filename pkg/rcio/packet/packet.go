package packet

import (
	"encoding/binary"
	"fmt"
	"io"
)

// Code is the operation or result code carried in count_code.
type Code byte

// Request codes.
const (
	CodeRead  Code = 0x00
	CodeWrite Code = 0x40
)

// Response codes.
const (
	CodeSuccess Code = 0x00
	CodeCorrupt Code = 0x40 // coprocessor received a frame with bad crc
	CodeError   Code = 0x80
)

const (
	codeMask  byte = 0xc0
	countMask byte = 0x3f
)

// Frame geometry.
const (
	HeaderSize   = 4
	MaxRegs      = 32
	MaxFrameSize = HeaderSize + 2*MaxRegs
)

const crcIndex = 1

// Packet is a decoded frame.
type Packet struct {
	Code   Code
	Page   uint8
	Offset uint8
	CRC    uint8
	Regs   []uint16
}

// NewRead creates a read request for count registers.
func NewRead(page, offset uint8, count int) *Packet {
	return &Packet{Code: CodeRead, Page: page, Offset: offset, Regs: make([]uint16, count)}
}

// NewWrite creates a write request carrying values.
func NewWrite(page, offset uint8, values []uint16) *Packet {
	regs := make([]uint16, len(values))
	copy(regs, values)
	return &Packet{Code: CodeWrite, Page: page, Offset: offset, Regs: regs}
}

// Count returns the register count.
func (p *Packet) Count() int {
	return len(p.Regs)
}

// Size returns the wire size of the frame.
func (p *Packet) Size() int {
	return FrameSize(len(p.Regs))
}

// FrameSize calculates the wire size of a frame carrying count registers.
func FrameSize(count int) int {
	return HeaderSize + 2*count
}

// String implements fmt.Stringer.
func (p *Packet) String() string {
	return fmt.Sprintf("code=0x%02x page=%d offset=%d count=%d crc=0x%02x",
		byte(p.Code), p.Page, p.Offset, len(p.Regs), p.CRC)
}

// Bytes encodes the packet and fills in the crc.
func (p *Packet) Bytes() []byte {
	b := make([]byte, p.Size())
	p.encode(b)
	return b
}

// Frame encodes the packet padded with zeros to size bytes. The crc
// covers the padding.
func (p *Packet) Frame(size int) []byte {
	if n := p.Size(); size < n {
		size = n
	}
	b := make([]byte, size)
	p.encode(b)
	return b
}

// WriteTo writes the encoded frame.
func (p *Packet) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(p.Bytes())
	return int64(n), err
}

func (p *Packet) encode(b []byte) {
	b[0] = (byte(p.Code) & codeMask) | (byte(len(p.Regs)) & countMask)
	b[crcIndex] = 0
	b[2], b[3] = p.Page, p.Offset
	for n, reg := range p.Regs {
		binary.LittleEndian.PutUint16(b[HeaderSize+2*n:], reg)
	}
	p.CRC = FrameCRC(b)
	b[crcIndex] = p.CRC
}

// Decode parses a complete frame. The frame length must equal the size
// implied by its count; the crc is recorded but not checked, see Verify.
func Decode(b []byte) (*Packet, error) {
	if len(b) < HeaderSize {
		return nil, ErrShortFrame
	}
	if len(b) > MaxFrameSize {
		return nil, ErrFrameTooLarge
	}
	count := int(b[0] & countMask)
	if count > MaxRegs {
		return nil, ErrTooManyRegisters
	}
	p := &Packet{
		Code:   Code(b[0] & codeMask),
		CRC:    b[crcIndex],
		Page:   b[2],
		Offset: b[3],
		Regs:   make([]uint16, count),
	}
	if body := len(b) - HeaderSize; body < 2*count || body%2 != 0 {
		return nil, ErrShortFrame
	}
	for n := range p.Regs {
		p.Regs[n] = binary.LittleEndian.Uint16(b[HeaderSize+2*n:])
	}
	return p, nil
}

// PeekHeader extracts code and count from the first byte of a frame.
func PeekHeader(b []byte) (Code, int) {
	if len(b) == 0 {
		return 0, 0
	}
	return Code(b[0] & codeMask), int(b[0] & countMask)
}

// Verify checks the crc of a raw frame.
func Verify(b []byte) bool {
	if len(b) < HeaderSize {
		return false
	}
	return FrameCRC(b) == b[crcIndex]
}
