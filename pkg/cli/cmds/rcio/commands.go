// Package rcio provides the shell commands operating the coprocessor.
package rcio

import (
	"fmt"
	"strings"

	"github.com/abiosoft/ishell"

	"github.com/robotalks/rcio.go/pkg/cli/sh"
	"github.com/robotalks/rcio.go/pkg/rcio/device"
	"github.com/robotalks/rcio.go/pkg/rcio/regs"
)

// Registers is the result of a register read.
type Registers struct {
	Page   uint8    `json:"page"`
	Offset uint8    `json:"offset"`
	Values []uint16 `json:"values"`
}

func (r *Registers) String() string {
	var b strings.Builder
	for n, v := range r.Values {
		if n > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "%d/%d: %d (0x%04x)", r.Page, int(r.Offset)+n, v, v)
	}
	return b.String()
}

// Detection is the result of detect.
type Detection struct {
	Detected bool `json:"detected"`
}

func (d Detection) String() string {
	if d.Detected {
		return "coprocessor detected"
	}
	return "coprocessor not detected"
}

type value struct {
	Value uint16 `json:"value"`
}

func (v value) String() string {
	return fmt.Sprint(v.Value)
}

type rcInput struct {
	Source string   `json:"source"`
	Values []uint16 `json:"values"`
}

func (r *rcInput) String() string {
	return fmt.Sprintf("%s %v", r.Source, r.Values)
}

// Detect checks the coprocessor answers with the expected protocol.
func Detect(s *sh.Shell, args []string) (interface{}, error) {
	return Detection{Detected: s.Device.Detect()}, nil
}

// Init performs the handshake.
func Init(s *sh.Shell, args []string) (interface{}, error) {
	if err := s.Device.Init(); err != nil {
		return nil, err
	}
	return s.Device.Capabilities(), nil
}

// Caps shows the negotiated capabilities.
func Caps(s *sh.Shell, args []string) (interface{}, error) {
	return s.Device.Capabilities(), nil
}

// Get reads registers: PAGE OFFSET [COUNT].
func Get(s *sh.Shell, args []string) (interface{}, error) {
	if err := sh.NeedArgs(args, 2, "PAGE OFFSET"); err != nil {
		return nil, err
	}
	page, err := sh.ParseUint8(args[0], "PAGE")
	if err != nil {
		return nil, err
	}
	offset, err := sh.ParseUint8(args[1], "OFFSET")
	if err != nil {
		return nil, err
	}
	count := uint8(1)
	if len(args) > 2 {
		if count, err = sh.ParseUint8(args[2], "COUNT"); err != nil {
			return nil, err
		}
	}
	values, err := s.Device.ReadRegisters(page, offset, int(count))
	if err != nil {
		return nil, err
	}
	return &Registers{Page: page, Offset: offset, Values: values}, nil
}

// Set writes registers: PAGE OFFSET VALUE...
func Set(s *sh.Shell, args []string) (interface{}, error) {
	if err := sh.NeedArgs(args, 3, "PAGE OFFSET VALUE"); err != nil {
		return nil, err
	}
	page, err := sh.ParseUint8(args[0], "PAGE")
	if err != nil {
		return nil, err
	}
	offset, err := sh.ParseUint8(args[1], "OFFSET")
	if err != nil {
		return nil, err
	}
	values, err := sh.ParseValues(args[2:])
	if err != nil {
		return nil, err
	}
	return nil, s.Device.WriteRegisters(page, offset, values)
}

// Modify clears then sets bits: PAGE OFFSET CLEAR SET.
func Modify(s *sh.Shell, args []string) (interface{}, error) {
	if err := sh.NeedArgs(args, 4, "PAGE OFFSET CLEAR SET"); err != nil {
		return nil, err
	}
	page, err := sh.ParseUint8(args[0], "PAGE")
	if err != nil {
		return nil, err
	}
	offset, err := sh.ParseUint8(args[1], "OFFSET")
	if err != nil {
		return nil, err
	}
	bits, err := sh.ParseValues(args[2:4])
	if err != nil {
		return nil, err
	}
	return nil, s.Device.ModifyRegister(page, offset, bits[0], bits[1])
}

// Debug reads or sets the debug level: [LEVEL].
func Debug(s *sh.Shell, args []string) (interface{}, error) {
	if len(args) > 0 {
		level, err := sh.ParseUint16(args[0], "LEVEL")
		if err != nil {
			return nil, err
		}
		return nil, s.Device.Do(device.SetDebug{Level: level})
	}
	var v value
	if err := s.Device.Do(device.GetDebug{Level: &v.Value}); err != nil {
		return nil, err
	}
	return v, nil
}

// ADC reads the raw analog sample.
func ADC(s *sh.Shell, args []string) (interface{}, error) {
	var v value
	if err := s.Device.Do(device.GetRawADC{Sample: &v.Value}); err != nil {
		return nil, err
	}
	return v, nil
}

// RC reads the RC input.
func RC(s *sh.Shell, args []string) (interface{}, error) {
	var in device.RCInput
	if err := s.Device.Do(device.GetRCInput{Input: &in}); err != nil {
		return nil, err
	}
	return &rcInput{Source: in.Source.String(), Values: in.Values}, nil
}

func simple(cmd device.Command) sh.Action {
	return func(s *sh.Shell, args []string) (interface{}, error) {
		return nil, s.Device.Do(cmd)
	}
}

// Servo reads or sets a PWM output: CHANNEL [VALUE].
func Servo(s *sh.Shell, args []string) (interface{}, error) {
	if err := sh.NeedArgs(args, 1, "CHANNEL"); err != nil {
		return nil, err
	}
	ch, err := sh.ParseUint8(args[0], "CHANNEL")
	if err != nil {
		return nil, err
	}
	if len(args) > 1 {
		pwm, err := sh.ParseUint16(args[1], "VALUE")
		if err != nil {
			return nil, err
		}
		return nil, s.Device.Do(device.SetServo{Channel: int(ch), Value: pwm})
	}
	var v value
	if err := s.Device.Do(device.GetServo{Channel: int(ch), Value: &v.Value}); err != nil {
		return nil, err
	}
	return v, nil
}

func pwmValues(get func(*[]uint16) device.Command, set func([]uint16) device.Command) sh.Action {
	return func(s *sh.Shell, args []string) (interface{}, error) {
		if len(args) > 0 {
			values, err := sh.ParseValues(args)
			if err != nil {
				return nil, err
			}
			return nil, s.Device.Do(set(values))
		}
		var values []uint16
		if err := s.Device.Do(get(&values)); err != nil {
			return nil, err
		}
		return &Registers{Values: values}, nil
	}
}

// RCConfig writes a channel calibration:
// CHANNEL MIN TRIM MAX [DEADZONE [ASSIGNMENT [REVERSE]]].
func RCConfig(s *sh.Shell, args []string) (interface{}, error) {
	if err := sh.NeedArgs(args, 4, "CHANNEL MIN TRIM MAX"); err != nil {
		return nil, err
	}
	ch, err := sh.ParseUint8(args[0], "CHANNEL")
	if err != nil {
		return nil, err
	}
	values, err := sh.ParseValues(args[1:])
	if err != nil {
		return nil, err
	}
	cfg := device.RCConfig{Channel: int(ch), Min: values[0], Trim: values[1], Max: values[2]}
	if len(values) > 3 {
		cfg.Deadzone = values[3]
	}
	if len(values) > 4 {
		cfg.Assignment = values[4]
	}
	if len(values) > 5 {
		cfg.Reverse = values[5] != 0
	}
	return nil, s.Device.Do(device.SetRCConfig{Config: cfg})
}

// Status reads a status snapshot.
func Status(s *sh.Shell, args []string) (interface{}, error) {
	return s.Device.Snapshot()
}

// ClearAlarms clears latched alarms.
func ClearAlarms(s *sh.Shell, args []string) (interface{}, error) {
	return nil, s.Device.ClearAlarms()
}

// State shows the lifecycle state.
func State(s *sh.Shell, args []string) (interface{}, error) {
	var state device.State
	if err := s.Device.Do(device.GetInitStatus{State: &state}); err != nil {
		return nil, err
	}
	return state.String(), nil
}

// Commands exposed to the shell.
var (
	DetectCmd = ishell.Cmd{Name: "detect", Help: "check the coprocessor answers", Func: sh.Cmd(sh.MustBeOpen(Detect))}
	InitCmd   = ishell.Cmd{Name: "init", Help: "handshake and negotiate capabilities", Func: sh.Cmd(sh.MustBeOpen(Init))}
	CapsCmd   = ishell.Cmd{Name: "caps", Help: "show capabilities", Func: sh.Cmd(sh.MustBeInitialized(Caps))}
	StateCmd  = ishell.Cmd{Name: "state", Help: "show lifecycle state", Func: sh.Cmd(sh.MustBeOpen(State))}
	GetCmd    = ishell.Cmd{Name: "get", Aliases: []string{"g"}, Help: "PAGE OFFSET [COUNT]", Func: sh.Cmd(sh.MustBeOpen(Get))}
	SetCmd    = ishell.Cmd{Name: "set", Aliases: []string{"s"}, Help: "PAGE OFFSET VALUE...", Func: sh.Cmd(sh.MustBeOpen(Set))}
	ModifyCmd = ishell.Cmd{Name: "modify", Aliases: []string{"m"}, Help: "PAGE OFFSET CLEAR SET", Func: sh.Cmd(sh.MustBeOpen(Modify))}
	DebugCmd  = ishell.Cmd{Name: "debug", Help: "[LEVEL]", Func: sh.Cmd(sh.MustBeOpen(Debug))}
	ADCCmd    = ishell.Cmd{Name: "adc", Help: "read raw ADC sample", Func: sh.Cmd(sh.MustBeOpen(ADC))}
	RCCmd     = ishell.Cmd{Name: "rc", Help: "read RC input", Func: sh.Cmd(sh.MustBeInitialized(RC))}
	ArmCmd    = ishell.Cmd{Name: "arm", Help: "arm the outputs", Func: sh.Cmd(sh.MustBeOpen(simple(device.Arm{})))}
	DisarmCmd = ishell.Cmd{Name: "disarm", Help: "disarm the outputs", Func: sh.Cmd(sh.MustBeOpen(simple(device.Disarm{})))}
	ArmOKCmd  = ishell.Cmd{Name: "arm-ok", Help: "allow the coprocessor to arm", Func: sh.Cmd(sh.MustBeOpen(simple(device.SetArmOK{})))}
	ServoCmd  = ishell.Cmd{Name: "servo", Help: "CHANNEL [VALUE]", Func: sh.Cmd(sh.MustBeInitialized(Servo))}
	StatusCmd = ishell.Cmd{Name: "status", Help: "read status registers", Func: sh.Cmd(sh.MustBeOpen(Status))}
	AlarmsCmd = ishell.Cmd{Name: "clear-alarms", Help: "clear latched alarms", Func: sh.Cmd(sh.MustBeOpen(ClearAlarms))}
	RCConfCmd = ishell.Cmd{Name: "rcconfig", Help: "CHANNEL MIN TRIM MAX [DEADZONE [ASSIGNMENT [REVERSE]]]", Func: sh.Cmd(sh.MustBeInitialized(RCConfig))}

	FailsafeCmd = ishell.Cmd{
		Name: "failsafe",
		Help: "[VALUE...] read or set failsafe PWM",
		Func: sh.Cmd(sh.MustBeInitialized(pwmValues(
			func(out *[]uint16) device.Command { return device.GetFailsafePWM{Values: out} },
			func(values []uint16) device.Command { return device.SetFailsafePWM{Values: values} },
		))),
	}
	DisarmedCmd = ishell.Cmd{
		Name: "disarmed",
		Help: "[VALUE...] read or set disarmed PWM",
		Func: sh.Cmd(sh.MustBeInitialized(pwmValues(
			func(out *[]uint16) device.Command { return device.GetDisarmedPWM{Values: out} },
			func(values []uint16) device.Command { return device.SetDisarmedPWM{Values: values} },
		))),
	}
)

// LEDCmd toggles the test LED.
var LEDCmd = ishell.Cmd{
	Name: "led",
	Help: "ON(0|1)",
	Func: sh.Cmd(sh.MustBeOpen(func(s *sh.Shell, args []string) (interface{}, error) {
		if err := sh.NeedArgs(args, 1, "ON"); err != nil {
			return nil, err
		}
		on, err := sh.ParseUint16(args[0], "ON")
		if err != nil {
			return nil, err
		}
		return nil, s.Device.WriteRegister(regs.PageTest, regs.TestLED, on)
	})),
}

func init() {
	sh.AddCmds(
		&DetectCmd, &InitCmd, &CapsCmd, &StateCmd,
		&GetCmd, &SetCmd, &ModifyCmd,
		&DebugCmd, &ADCCmd, &RCCmd,
		&ArmCmd, &DisarmCmd, &ArmOKCmd,
		&ServoCmd, &FailsafeCmd, &DisarmedCmd, &RCConfCmd,
		&StatusCmd, &AlarmsCmd, &LEDCmd,
	)
}
