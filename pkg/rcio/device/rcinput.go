package device

import (
	"fmt"

	"github.com/robotalks/rcio.go/pkg/rcio/regs"
)

// RCSource identifies the protocol the RC receiver speaks.
type RCSource int

// RC input sources
const (
	RCSourceUnknown RCSource = iota
	RCSourcePPM
	RCSourceSpektrum
	RCSourceSBUS
	RCSourceST24
)

var rcSourceNames = map[RCSource]string{
	RCSourceUnknown:  "unknown",
	RCSourcePPM:      "ppm",
	RCSourceSpektrum: "spektrum",
	RCSourceSBUS:     "sbus",
	RCSourceST24:     "st24",
}

// String implements fmt.Stringer.
func (s RCSource) String() string {
	if name, ok := rcSourceNames[s]; ok {
		return name
	}
	return fmt.Sprintf("source(%d)", int(s))
}

// RCSourceFromFlags classifies the input source from status flags.
func RCSourceFromFlags(flags uint16) RCSource {
	switch {
	case flags&regs.FlagRCPPM != 0:
		return RCSourcePPM
	case flags&regs.FlagRCDSM != 0:
		return RCSourceSpektrum
	case flags&regs.FlagRCSBUS != 0:
		return RCSourceSBUS
	case flags&regs.FlagRCST24 != 0:
		return RCSourceST24
	}
	return RCSourceUnknown
}

// RCInput is a snapshot of the raw RC channels.
type RCInput struct {
	Source RCSource `json:"source"`
	Values []uint16 `json:"values"`
}

// RCConfig is the calibration of one RC input channel.
type RCConfig struct {
	Channel    int    `json:"channel"`
	Min        uint16 `json:"min"`
	Trim       uint16 `json:"trim"`
	Max        uint16 `json:"max"`
	Deadzone   uint16 `json:"deadzone"`
	Assignment uint16 `json:"assignment"`
	Reverse    bool   `json:"reverse"`
}

// Registers encodes the config as the per-channel block of the
// RC config page.
func (c RCConfig) Registers() []uint16 {
	block := make([]uint16, regs.RCConfigStride)
	block[regs.RCConfigMin] = c.Min
	block[regs.RCConfigCenter] = c.Trim
	block[regs.RCConfigMax] = c.Max
	block[regs.RCConfigDeadzone] = c.Deadzone
	block[regs.RCConfigAssignment] = c.Assignment
	block[regs.RCConfigOptions] = regs.RCConfigOptionEnabled
	if c.Reverse {
		block[regs.RCConfigOptions] |= regs.RCConfigOptionReverse
	}
	return block
}

// Offset returns the first register of the channel block.
func (c RCConfig) Offset() uint8 {
	return uint8(c.Channel * regs.RCConfigStride)
}
