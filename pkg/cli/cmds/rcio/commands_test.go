package rcio

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robotalks/rcio.go/pkg/cli/sh"
	"github.com/robotalks/rcio.go/pkg/env"
	"github.com/robotalks/rcio.go/pkg/rcio/device"
	"github.com/robotalks/rcio.go/pkg/rcio/regs"
)

func newShell(t *testing.T) *sh.Shell {
	conf := env.NewConfig()
	conf.Sim = true
	s := &sh.Shell{Config: conf}
	require.NoError(t, s.Open())
	t.Cleanup(s.Close)
	return s
}

func run(t *testing.T, s *sh.Shell, action sh.Action, args ...string) interface{} {
	res, err := action(s, args)
	require.NoError(t, err)
	return res
}

func TestDetectInit(t *testing.T) {
	s := newShell(t)
	assert.Equal(t, Detection{Detected: true}, run(t, s, Detect))
	caps := run(t, s, Init).(device.Capabilities)
	assert.Equal(t, regs.ProtocolVersion, caps.Protocol)
	assert.Equal(t, "initialized", run(t, s, State))
}

func TestGetSetModify(t *testing.T) {
	s := newShell(t)
	assert.Nil(t, run(t, s, Set, "55", "0", "1100", "0x4b0"))
	res := run(t, s, Get, "55", "0", "2").(*Registers)
	assert.Equal(t, []uint16{1100, 1200}, res.Values)
	assert.Equal(t, "55/0: 1100 (0x044c)\n55/1: 1200 (0x04b0)", res.String())

	run(t, s, Set, "50", "1", "0xff")
	run(t, s, Modify, "50", "1", "0xff", "0x42")
	res = run(t, s, Get, "50", "1").(*Registers)
	assert.Equal(t, []uint16{0x42}, res.Values)
}

func TestArgumentErrors(t *testing.T) {
	s := newShell(t)
	for name, args := range map[string][]string{
		"missing offset": {"1"},
		"bad page":       {"x", "0"},
		"page range":     {"256", "0"},
	} {
		t.Run(name, func(t *testing.T) {
			_, err := Get(s, args)
			assert.True(t, errors.Is(err, device.ErrInvalidArgument))
		})
	}
	_, err := Set(s, []string{"1", "0", "65536"})
	assert.True(t, errors.Is(err, device.ErrInvalidArgument))
}

func TestRCAndServo(t *testing.T) {
	s := newShell(t)
	run(t, s, Init)
	in := run(t, s, RC).(*rcInput)
	assert.Equal(t, "ppm", in.Source)
	assert.Equal(t, uint16(1500), in.Values[0])

	run(t, s, Servo, "2", "1750")
	run(t, s, Set, "3", "2", "1750")
	assert.Equal(t, value{Value: 1750}, run(t, s, Servo, "2"))

	run(t, s, RCConfig, "1", "1000", "1500", "2000", "5", "2", "1")
	res := run(t, s, Get, "53", "6", "6").(*Registers)
	assert.Equal(t, []uint16{1000, 1500, 2000, 5, 2, regs.RCConfigOptionEnabled | regs.RCConfigOptionReverse}, res.Values)
}

func TestDebugAndStatus(t *testing.T) {
	s := newShell(t)
	run(t, s, Debug, "3")
	assert.Equal(t, value{Value: 3}, run(t, s, Debug))
	status := run(t, s, Status).(*device.Status)
	assert.Equal(t, uint16(3), status.Debug)
	assert.True(t, status.RCOK())
}

func TestFormat(t *testing.T) {
	s := &sh.Shell{}
	out, err := s.Format(nil)
	require.NoError(t, err)
	assert.Equal(t, "OK", out)
	s.OutputJSON = true
	out, err = s.Format(&Registers{Page: 1, Offset: 2, Values: []uint16{3}})
	require.NoError(t, err)
	assert.JSONEq(t, `{"page":1,"offset":2,"values":[3]}`, out)
}
