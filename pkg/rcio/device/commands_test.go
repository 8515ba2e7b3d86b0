package device

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robotalks/rcio.go/pkg/rcio/regs"
	"github.com/robotalks/rcio.go/pkg/rcio/sim"
)

type bogusCommand struct{ Command }

func TestDebug(t *testing.T) {
	c, d := newInitialized(t)
	require.NoError(t, d.Do(SetDebug{Level: 5}))
	assert.Equal(t, uint16(5), c.Register(regs.PageSetup, regs.SetupSetDebug))
	var level uint16
	require.NoError(t, d.Do(GetDebug{Level: &level}))
	assert.Equal(t, uint16(5), level)
}

func TestRawADC(t *testing.T) {
	c, d := newInitialized(t)
	c.SetRegisters(regs.PageRawADCInput, 0, 2048)
	var sample uint16
	require.NoError(t, d.Do(GetRawADC{Sample: &sample}))
	assert.Equal(t, uint16(2048), sample)
}

func TestRCInput(t *testing.T) {
	c, d := newInitialized(t)
	c.SetRCInput(regs.FlagRCSBUS, 1000, 1500, 2000)
	in := RCInput{Values: make([]uint16, 0, 32)}
	buf := in.Values[:1]
	require.NoError(t, d.Do(GetRCInput{Input: &in}))
	assert.Equal(t, RCSourceSBUS, in.Source)
	require.Len(t, in.Values, regs.RCInputMaxChannels)
	assert.Equal(t, []uint16{1000, 1500, 2000}, in.Values[:3])
	buf[0] = 42
	assert.Equal(t, uint16(42), in.Values[0], "values buffer is reused")
}

func TestRCInputNotConnected(t *testing.T) {
	c, d := newInitialized(t)
	c.SetRCInput(0)
	var in RCInput
	err := d.Do(GetRCInput{Input: &in})
	assert.True(t, errors.Is(err, ErrNotConnected))
	assert.Zero(t, c.Reads(regs.PageRawRCInput, regs.RawRCBase))
}

func TestRCSourceFromFlags(t *testing.T) {
	assert.Equal(t, RCSourcePPM, RCSourceFromFlags(regs.FlagRCPPM|regs.FlagRCSBUS))
	assert.Equal(t, RCSourceSpektrum, RCSourceFromFlags(regs.FlagRCDSM|regs.FlagRCST24))
	assert.Equal(t, RCSourceSBUS, RCSourceFromFlags(regs.FlagRCSBUS))
	assert.Equal(t, RCSourceST24, RCSourceFromFlags(regs.FlagRCST24))
	assert.Equal(t, RCSourceUnknown, RCSourceFromFlags(regs.FlagRCOK))
	assert.Equal(t, "sbus", RCSourceSBUS.String())
}

func TestArming(t *testing.T) {
	c, d := newInitialized(t)
	c.SetRegisters(regs.PageSetup, regs.SetupArming, regs.ArmingLockdown)
	require.NoError(t, d.Do(Arm{}))
	require.NoError(t, d.Do(SetArmOK{}))
	assert.Equal(t, regs.ArmingLockdown|regs.ArmingFMUArmed|regs.ArmingIOArmOK, c.Register(regs.PageSetup, regs.SetupArming))
	require.NoError(t, d.Do(Disarm{}))
	require.NoError(t, d.Do(ClearArmOK{}))
	assert.Equal(t, regs.ArmingLockdown, c.Register(regs.PageSetup, regs.SetupArming))
}

func TestServo(t *testing.T) {
	c, d := newInitialized(t)
	require.NoError(t, d.Do(SetServo{Channel: 3, Value: 1700}))
	assert.Equal(t, uint16(1700), c.Register(regs.PageDirectPWM, 3))

	c.SetRegisters(regs.PageServos, 3, 1650)
	var v uint16
	require.NoError(t, d.Do(GetServo{Channel: 3, Value: &v}))
	assert.Equal(t, uint16(1650), v)

	err := d.Do(SetServo{Channel: sim.DefaultActuatorCount, Value: 1500})
	assert.True(t, errors.Is(err, ErrInvalidArgument))
	err = d.Do(SetServo{Channel: -1, Value: 1500})
	assert.True(t, errors.Is(err, ErrInvalidArgument))
}

func TestFailsafePWM(t *testing.T) {
	c, d := newInitialized(t)
	require.NoError(t, d.Do(SetFailsafePWM{Values: []uint16{0, 500, 1500, 2500}}))
	assert.Equal(t, []uint16{0, regs.PWMLowestMin, 1500, regs.PWMHighestMax}, c.Registers(regs.PageFailsafePWM, 0, 4))
	assert.NotZero(t, c.Register(regs.PageSetup, regs.SetupArming)&regs.ArmingFailsafeCustom)

	var values []uint16
	require.NoError(t, d.Do(GetFailsafePWM{Values: &values}))
	require.Len(t, values, sim.DefaultActuatorCount)
	assert.Equal(t, uint16(1500), values[2])

	err := d.Do(SetFailsafePWM{Values: make([]uint16, sim.DefaultActuatorCount+1)})
	assert.True(t, errors.Is(err, ErrInvalidArgument))
}

func TestDisarmedPWMChunked(t *testing.T) {
	c := sim.New()
	c.SetRegisters(regs.PageConfig, regs.ConfigMaxTransfer, 18)
	c.SetRegisters(regs.PageConfig, regs.ConfigActuatorCount, 12)
	d := New(c)
	require.NoError(t, d.Init())
	values := make([]uint16, 12)
	for n := range values {
		values[n] = uint16(1000 + n*10)
	}
	require.NoError(t, d.Do(SetDisarmedPWM{Values: values}))
	assert.Equal(t, values, c.Registers(regs.PageDisarmedPWM, 0, 12))
	assert.Equal(t, 1, c.Writes(regs.PageDisarmedPWM, 8))

	var got []uint16
	require.NoError(t, d.Do(GetDisarmedPWM{Values: &got}))
	assert.Equal(t, values, got)
}

func TestRCConfig(t *testing.T) {
	c, d := newInitialized(t)
	cfg := RCConfig{Channel: 2, Min: 1000, Trim: 1500, Max: 2000, Deadzone: 10, Assignment: 1, Reverse: true}
	require.NoError(t, d.Do(SetRCConfig{Config: cfg}))
	assert.Equal(t, []uint16{1000, 1500, 2000, 10, 1, regs.RCConfigOptionEnabled | regs.RCConfigOptionReverse},
		c.Registers(regs.PageRCConfig, 2*regs.RCConfigStride, regs.RCConfigStride))
}

func TestInitStatus(t *testing.T) {
	d := New(sim.New())
	var state State
	require.NoError(t, d.Do(GetInitStatus{State: &state}))
	assert.Equal(t, Uninitialized, state)
	require.NoError(t, d.Init())
	require.NoError(t, d.Do(GetInitStatus{State: &state}))
	assert.Equal(t, Initialized, state)
}

func TestCommandErrors(t *testing.T) {
	c := sim.New()
	d := New(c)
	assert.True(t, errors.Is(d.Do(nil), ErrUnsupportedCommand))
	assert.True(t, errors.Is(d.Do(bogusCommand{}), ErrUnsupportedCommand))
	assert.True(t, errors.Is(d.Do(GetDebug{}), ErrInvalidArgument))
	assert.True(t, errors.Is(d.Do(GetRCInput{}), ErrInvalidArgument))
	assert.True(t, errors.Is(d.Do(GetInitStatus{}), ErrInvalidArgument))
	assert.True(t, errors.Is(d.Do(GetRCInput{Input: &RCInput{}}), ErrNotInitialized))
	assert.True(t, errors.Is(d.Do(SetServo{Channel: 0, Value: 1500}), ErrNotInitialized))
	assert.Zero(t, c.Transactions())
}

func TestSnapshot(t *testing.T) {
	c, d := newInitialized(t)
	c.SetRegisters(regs.PageStatus, regs.StatusCPULoad, 30, regs.FlagSafetyOff|regs.FlagOutputsArmed, regs.AlarmPWMError)
	c.SetRegisters(regs.PageStatus, regs.StatusVServo, 5100)
	c.SetRegisters(regs.PageSetup, regs.SetupArming, regs.ArmingFMUArmed)
	c.SetRegisters(regs.PageSetup, regs.SetupSetDebug, 2)
	s, err := d.Snapshot()
	require.NoError(t, err)
	assert.Equal(t, uint16(4096), s.FreeMem)
	assert.Equal(t, uint16(30), s.CPULoad)
	assert.True(t, s.SafetyOff())
	assert.True(t, s.OutputsArmed())
	assert.False(t, s.RCOK())
	assert.Equal(t, regs.AlarmPWMError, s.Alarms)
	assert.Equal(t, uint16(5100), s.VServo)
	assert.Equal(t, regs.ArmingFMUArmed, s.Arming)
	assert.Equal(t, uint16(2), s.Debug)
}

func TestSnapshotPartial(t *testing.T) {
	c, d := newInitialized(t)
	c.Reject(regs.PageSetup)
	s, err := d.Snapshot()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrRejected))
	assert.Equal(t, uint16(4096), s.FreeMem)
}
