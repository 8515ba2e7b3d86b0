package packet

// Parser assembles frames from a byte stream, one byte at a time.
type Parser struct {
	state parseState
	frame []byte
	want  int
}

// ParseResult indicates the result after one parsing step.
type ParseResult struct {
	// Packet is set when a frame completes.
	Packet *Packet
	// Frame is the raw completed frame.
	Frame []byte
	// Corrupt is set when the completed frame fails its crc.
	Corrupt bool
	// Err is set when the stream is out of sync.
	// The parser has been reset when this happens.
	Err error
}

type parseState int

const (
	stateCountCode parseState = iota // waiting for count_code
	stateHeader                      // waiting for crc, page, offset
	stateRegs                        // waiting for register bytes
)

// Receiving indicates the parser is in the middle of a frame.
func (p *Parser) Receiving() bool {
	return p.state != stateCountCode
}

// Reset drops any partial frame.
func (p *Parser) Reset() {
	p.state, p.frame, p.want = stateCountCode, nil, 0
}

// Parse consumes one byte.
func (p *Parser) Parse(b byte) (pr ParseResult) {
	switch p.state {
	case stateCountCode:
		count := int(b & countMask)
		if count > MaxRegs {
			pr.Err = ErrTooManyRegisters
			return
		}
		p.frame = make([]byte, 1, FrameSize(count))
		p.frame[0] = b
		p.want = FrameSize(count)
		p.state = stateHeader
	case stateHeader:
		p.frame = append(p.frame, b)
		if len(p.frame) == HeaderSize {
			if p.want == HeaderSize {
				return p.frameReady()
			}
			p.state = stateRegs
		}
	case stateRegs:
		p.frame = append(p.frame, b)
		if len(p.frame) >= p.want {
			return p.frameReady()
		}
	}
	return
}

// Write parses all bytes in data and returns the completed frames.
func (p *Parser) Write(data []byte) (results []ParseResult) {
	for _, b := range data {
		if pr := p.Parse(b); pr.Packet != nil || pr.Err != nil {
			results = append(results, pr)
		}
	}
	return
}

func (p *Parser) frameReady() (pr ParseResult) {
	frame := p.frame
	p.Reset()
	pr.Frame = frame
	pr.Corrupt = !Verify(frame)
	pr.Packet, pr.Err = Decode(frame)
	return
}
