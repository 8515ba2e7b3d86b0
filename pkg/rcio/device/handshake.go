package device

import (
	"fmt"
	"time"

	"github.com/golang/glog"

	"github.com/robotalks/rcio.go/pkg/rcio/regs"
)

// State is the lifecycle state of a Device.
type State int

// States
const (
	Uninitialized State = iota
	Detected
	Initialized
	Failed
)

// String implements fmt.Stringer.
func (s State) String() string {
	switch s {
	case Uninitialized:
		return "uninitialized"
	case Detected:
		return "detected"
	case Initialized:
		return "initialized"
	case Failed:
		return "failed"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// Capabilities are the limits reported by the coprocessor during Init.
type Capabilities struct {
	Protocol     uint16 `json:"protocol"`
	Hardware     uint16 `json:"hardware"`
	Bootloader   uint16 `json:"bootloader"`
	MaxTransfer  int    `json:"max_transfer"`
	MaxControls  int    `json:"max_controls"`
	MaxActuators int    `json:"max_actuators"`
	MaxRCInput   int    `json:"max_rc_input"`
	MaxADCInput  int    `json:"max_adc_input"`
	MaxRelays    int    `json:"max_relays"`
}

// State returns the lifecycle state.
func (d *Device) State() State {
	return d.state
}

// Capabilities returns the negotiated capabilities.
// All fields are zero until Init succeeds.
func (d *Device) Capabilities() Capabilities {
	return d.caps
}

// Detect checks whether a coprocessor speaking the expected protocol
// version answers.
func (d *Device) Detect() bool {
	version, err := d.ReadRegister(regs.PageConfig, regs.ConfigProtocolVersion)
	if err != nil {
		glog.Warningf("coprocessor not installed: %v", err)
		return false
	}
	if version != regs.ProtocolVersion {
		glog.Warningf("coprocessor version error: protocol %d, want %d", version, regs.ProtocolVersion)
		return false
	}
	return true
}

// Init performs the handshake and negotiates capabilities. It returns
// immediately if the Device is already initialized.
func (d *Device) Init() error {
	if d.state == Initialized {
		return nil
	}

	timeout, interval := d.HandshakeTimeout, d.PollInterval
	if timeout <= 0 {
		timeout = DefaultHandshakeTimeout
	}
	if interval <= 0 {
		interval = DefaultPollInterval
	}

	var version uint16
	var err error
	start := time.Now()
	for {
		time.Sleep(interval)
		version, err = d.ReadRegister(regs.PageConfig, regs.ConfigProtocolVersion)
		if err == nil || time.Since(start) >= timeout {
			break
		}
	}
	if err != nil {
		glog.Error("failed to communicate with coprocessor, abort")
		return d.fail(&InitError{
			Kind:   ErrHandshakeTimeout,
			Detail: fmt.Sprintf("no answer within %v, last error: %v", timeout, err),
		})
	}
	if version != regs.ProtocolVersion {
		glog.Errorf("coprocessor protocol/firmware mismatch (%d != %d), abort", version, regs.ProtocolVersion)
		return d.fail(&InitError{
			Kind:   ErrProtocolMismatch,
			Detail: fmt.Sprintf("protocol %d, want %d", version, regs.ProtocolVersion),
		})
	}
	d.state = Detected

	caps, err := d.probe(version)
	if err != nil {
		glog.Errorf("config read fail, abort: %v", err)
		return d.fail(err)
	}
	d.caps, d.maxTransfer, d.state = caps, caps.MaxTransfer, Initialized
	glog.Infof("coprocessor initialized: hardware %d, %d actuators, %d controls, %d relays, %d rc inputs, transfer %dB",
		caps.Hardware, caps.MaxActuators, caps.MaxControls, caps.MaxRelays, caps.MaxRCInput, caps.MaxTransfer)
	return nil
}

func (d *Device) fail(err error) error {
	d.state = Failed
	return err
}

func (d *Device) probe(version uint16) (Capabilities, error) {
	caps := Capabilities{Protocol: version}
	var err error
	read := func(offset uint8) int {
		if err != nil {
			return 0
		}
		var v uint16
		v, err = d.ReadRegister(regs.PageConfig, offset)
		return int(v)
	}
	caps.Hardware = uint16(read(regs.ConfigHardwareVersion))
	caps.Bootloader = uint16(read(regs.ConfigBootloaderVersion))
	caps.MaxActuators = read(regs.ConfigActuatorCount)
	caps.MaxControls = read(regs.ConfigControlCount)
	caps.MaxRelays = read(regs.ConfigRelayCount)
	caps.MaxTransfer = read(regs.ConfigMaxTransfer) - 2
	caps.MaxRCInput = read(regs.ConfigRCInputCount)
	caps.MaxADCInput = read(regs.ConfigADCInputCount)
	if err != nil {
		return caps, &InitError{Kind: ErrInvalidCapabilities, Detail: "config read error", Err: err}
	}

	if caps.MaxActuators < 1 || caps.MaxActuators > 255 ||
		caps.MaxRelays > 32 ||
		caps.MaxTransfer < 16 || caps.MaxTransfer > 255 ||
		caps.MaxRCInput < 1 || caps.MaxRCInput > 255 {
		detail := fmt.Sprintf("actuators %d, relays %d, transfer %d, rc inputs %d",
			caps.MaxActuators, caps.MaxRelays, caps.MaxTransfer, caps.MaxRCInput)
		return caps, &InitError{Kind: ErrInvalidCapabilities, Detail: detail}
	}
	if caps.MaxRCInput > regs.RCInputMaxChannels {
		caps.MaxRCInput = regs.RCInputMaxChannels
	}
	return caps, nil
}
