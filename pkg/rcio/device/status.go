package device

import (
	"github.com/robotalks/rcio.go/pkg/framework"
	"github.com/robotalks/rcio.go/pkg/rcio/regs"
)

// Status is a snapshot of the coprocessor status and setup registers.
type Status struct {
	FreeMem  uint16 `json:"free_mem"`
	CPULoad  uint16 `json:"cpu_load"`
	Flags    uint16 `json:"flags"`
	Alarms   uint16 `json:"alarms"`
	VBatt    uint16 `json:"vbatt"`
	IBatt    uint16 `json:"ibatt"`
	VServo   uint16 `json:"vservo"`
	VRSSI    uint16 `json:"vrssi"`
	PRSSI    uint16 `json:"prssi"`
	Features uint16 `json:"features"`
	Arming   uint16 `json:"arming"`
	Debug    uint16 `json:"debug"`
}

// OutputsArmed reports whether the PWM outputs are live.
func (s *Status) OutputsArmed() bool {
	return s.Flags&regs.FlagOutputsArmed != 0
}

// SafetyOff reports whether the safety switch has been released.
func (s *Status) SafetyOff() bool {
	return s.Flags&regs.FlagSafetyOff != 0
}

// RCOK reports whether a receiver signal is present.
func (s *Status) RCOK() bool {
	return s.Flags&regs.FlagRCOK != 0
}

// Failsafe reports whether the coprocessor is in failsafe.
func (s *Status) Failsafe() bool {
	return s.Flags&regs.FlagFailsafe != 0
}

// Snapshot reads the status page, arming and debug registers. Blocks
// that fail to read are left zero; all failures are aggregated in the
// returned error together with the partial result.
func (d *Device) Snapshot() (*Status, error) {
	var s Status
	var errs framework.AggregatedError
	block := func(page, offset uint8, out ...*uint16) {
		values, err := d.ReadRegisters(page, offset, len(out))
		if err != nil {
			errs.Add(err)
			return
		}
		for n, p := range out {
			*p = values[n]
		}
	}
	block(regs.PageStatus, regs.StatusFreeMem, &s.FreeMem, &s.CPULoad, &s.Flags, &s.Alarms)
	block(regs.PageStatus, regs.StatusVBatt, &s.VBatt, &s.IBatt, &s.VServo, &s.VRSSI, &s.PRSSI)
	block(regs.PageSetup, regs.SetupFeatures, &s.Features, &s.Arming)
	block(regs.PageSetup, regs.SetupSetDebug, &s.Debug)
	return &s, errs.Aggregate()
}
