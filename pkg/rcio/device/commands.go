package device

import (
	"github.com/golang/glog"

	"github.com/robotalks/rcio.go/pkg/rcio/regs"
)

// Command is a request handled by Device.Do. The set of commands is
// closed; each type carries its own arguments and output slots.
type Command interface {
	command()
}

// SetDebug sets the coprocessor debug verbosity.
type SetDebug struct {
	Level uint16
}

// GetDebug reads the coprocessor debug verbosity.
type GetDebug struct {
	Level *uint16
}

// GetRawADC reads the first raw analog sample.
type GetRawADC struct {
	Sample *uint16
}

// GetRCInput fetches the current RC input snapshot. Input.Values is
// reused when it has enough capacity.
type GetRCInput struct {
	Input *RCInput
}

// Arm marks the host side as armed.
type Arm struct{}

// Disarm clears the host side armed flag.
type Disarm struct{}

// SetArmOK allows the coprocessor to arm, activating the safety switch.
type SetArmOK struct{}

// ClearArmOK prevents the coprocessor from arming.
type ClearArmOK struct{}

// SetServo sets a single PWM output in us.
type SetServo struct {
	Channel int
	Value   uint16
}

// GetServo reads a single PWM output in us.
type GetServo struct {
	Channel int
	Value   *uint16
}

// SetFailsafePWM sets the outputs used in failsafe, starting at channel 0.
type SetFailsafePWM struct {
	Values []uint16
}

// GetFailsafePWM reads the failsafe outputs of all actuators.
type GetFailsafePWM struct {
	Values *[]uint16
}

// SetDisarmedPWM sets the outputs used when disarmed, starting at channel 0.
type SetDisarmedPWM struct {
	Values []uint16
}

// GetDisarmedPWM reads the disarmed outputs of all actuators.
type GetDisarmedPWM struct {
	Values *[]uint16
}

// SetRCConfig writes the calibration of one RC channel.
type SetRCConfig struct {
	Config RCConfig
}

// GetInitStatus reports the lifecycle state.
type GetInitStatus struct {
	State *State
}

func (SetDebug) command()       {}
func (GetDebug) command()       {}
func (GetRawADC) command()      {}
func (GetRCInput) command()     {}
func (Arm) command()            {}
func (Disarm) command()         {}
func (SetArmOK) command()       {}
func (ClearArmOK) command()     {}
func (SetServo) command()       {}
func (GetServo) command()       {}
func (SetFailsafePWM) command() {}
func (GetFailsafePWM) command() {}
func (SetDisarmedPWM) command() {}
func (GetDisarmedPWM) command() {}
func (SetRCConfig) command()    {}
func (GetInitStatus) command()  {}

// Do executes a command.
func (d *Device) Do(cmd Command) error {
	switch c := cmd.(type) {
	case SetDebug:
		return d.WriteRegister(regs.PageSetup, regs.SetupSetDebug, c.Level)
	case GetDebug:
		return d.readInto(c.Level, regs.PageSetup, regs.SetupSetDebug)
	case GetRawADC:
		return d.readInto(c.Sample, regs.PageRawADCInput, 0)
	case GetRCInput:
		if c.Input == nil {
			return ErrInvalidArgument
		}
		return d.fetchRCInput(c.Input)
	case Arm:
		return d.ModifyRegister(regs.PageSetup, regs.SetupArming, 0, regs.ArmingFMUArmed)
	case Disarm:
		return d.ModifyRegister(regs.PageSetup, regs.SetupArming, regs.ArmingFMUArmed, 0)
	case SetArmOK:
		return d.ModifyRegister(regs.PageSetup, regs.SetupArming, 0, regs.ArmingIOArmOK)
	case ClearArmOK:
		return d.ModifyRegister(regs.PageSetup, regs.SetupArming, regs.ArmingIOArmOK, 0)
	case SetServo:
		if err := d.checkChannel(c.Channel, d.caps.MaxActuators); err != nil {
			return err
		}
		return d.WriteRegister(regs.PageDirectPWM, uint8(c.Channel), c.Value)
	case GetServo:
		if err := d.checkChannel(c.Channel, d.caps.MaxActuators); err != nil {
			return err
		}
		return d.readInto(c.Value, regs.PageServos, uint8(c.Channel))
	case SetFailsafePWM:
		if err := d.writePWM(regs.PageFailsafePWM, c.Values); err != nil {
			return err
		}
		return d.ModifyRegister(regs.PageSetup, regs.SetupArming, 0, regs.ArmingFailsafeCustom)
	case GetFailsafePWM:
		return d.readPWM(regs.PageFailsafePWM, c.Values)
	case SetDisarmedPWM:
		return d.writePWM(regs.PageDisarmedPWM, c.Values)
	case GetDisarmedPWM:
		return d.readPWM(regs.PageDisarmedPWM, c.Values)
	case SetRCConfig:
		if err := d.checkChannel(c.Config.Channel, d.caps.MaxRCInput); err != nil {
			return err
		}
		return d.WriteRegisters(regs.PageRCConfig, c.Config.Offset(), c.Config.Registers())
	case GetInitStatus:
		if c.State == nil {
			return ErrInvalidArgument
		}
		*c.State = d.state
		return nil
	}
	glog.V(1).Infof("unsupported command %T", cmd)
	return ErrUnsupportedCommand
}

func (d *Device) readInto(out *uint16, page, offset uint8) error {
	if out == nil {
		return ErrInvalidArgument
	}
	v, err := d.ReadRegister(page, offset)
	if err != nil {
		return err
	}
	*out = v
	return nil
}

func (d *Device) checkChannel(channel, limit int) error {
	if d.state != Initialized {
		return ErrNotInitialized
	}
	if channel < 0 || channel >= limit {
		return ErrInvalidArgument
	}
	return nil
}

func (d *Device) fetchRCInput(in *RCInput) error {
	if d.state != Initialized {
		return ErrNotInitialized
	}
	status, err := d.ReadRegister(regs.PageStatus, regs.StatusFlags)
	if err != nil {
		return err
	}
	if status&regs.FlagRCOK == 0 {
		return ErrNotConnected
	}
	in.Source = RCSourceFromFlags(status)
	values, err := d.ReadRegisters(regs.PageRawRCInput, regs.RawRCBase, d.caps.MaxRCInput)
	if err != nil {
		return err
	}
	in.Values = append(in.Values[:0], values...)
	return nil
}

func clampPWM(v uint16) uint16 {
	switch {
	case v == 0:
		return 0
	case v < regs.PWMLowestMin:
		return regs.PWMLowestMin
	case v > regs.PWMHighestMax:
		return regs.PWMHighestMax
	}
	return v
}

func (d *Device) writePWM(page uint8, values []uint16) error {
	if d.state != Initialized {
		return ErrNotInitialized
	}
	if len(values) == 0 || len(values) > d.caps.MaxActuators {
		return ErrInvalidArgument
	}
	clamped := make([]uint16, len(values))
	for n, v := range values {
		clamped[n] = clampPWM(v)
	}
	step := d.maxTransfer / 2
	for start := 0; start < len(clamped); start += step {
		end := start + step
		if end > len(clamped) {
			end = len(clamped)
		}
		if err := d.WriteRegisters(page, uint8(start), clamped[start:end]); err != nil {
			return err
		}
	}
	return nil
}

func (d *Device) readPWM(page uint8, out *[]uint16) error {
	if out == nil {
		return ErrInvalidArgument
	}
	if d.state != Initialized {
		return ErrNotInitialized
	}
	values := make([]uint16, 0, d.caps.MaxActuators)
	step := d.maxTransfer / 2
	for start := 0; start < d.caps.MaxActuators; start += step {
		count := d.caps.MaxActuators - start
		if count > step {
			count = step
		}
		chunk, err := d.ReadRegisters(page, uint8(start), count)
		if err != nil {
			return err
		}
		values = append(values, chunk...)
	}
	*out = values
	return nil
}
