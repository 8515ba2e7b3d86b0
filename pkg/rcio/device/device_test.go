package device

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robotalks/rcio.go/pkg/rcio/regs"
	"github.com/robotalks/rcio.go/pkg/rcio/sim"
	"github.com/robotalks/rcio.go/pkg/rcio/transport"
)

func newInitialized(t *testing.T) (*sim.Coprocessor, *Device) {
	c := sim.New()
	d := New(c)
	require.NoError(t, d.Init())
	return c, d
}

func TestWriteReadRoundTrip(t *testing.T) {
	c, d := newInitialized(t)
	require.NoError(t, d.WriteRegisters(regs.PageFailsafePWM, 0, []uint16{1500, 1600}))
	values, err := d.ReadRegisters(regs.PageFailsafePWM, 0, 2)
	require.NoError(t, err)
	assert.Equal(t, []uint16{1500, 1600}, values)
	assert.Equal(t, []uint16{1500, 1600}, c.Registers(regs.PageFailsafePWM, 0, 2))
}

func TestRegisterSentinel(t *testing.T) {
	c := sim.New()
	d := New(c)
	assert.Equal(t, uint32(regs.ProtocolVersion), d.Register(regs.PageConfig, regs.ConfigProtocolVersion))
	c.Reject(regs.PageTest)
	assert.Equal(t, RegError, d.Register(regs.PageTest, regs.TestLED))
	c.SetUnresponsive(true)
	assert.Equal(t, RegError, d.Register(regs.PageConfig, regs.ConfigProtocolVersion))
}

func TestTooManyRegisters(t *testing.T) {
	c := sim.New()
	d := New(c)
	_, err := d.ReadRegisters(regs.PageServos, 0, DefaultMaxTransfer/2+1)
	require.True(t, errors.Is(err, ErrTooManyRegisters))
	assert.Zero(t, c.Transactions())

	err = d.WriteRegisters(regs.PageServos, 0, nil)
	require.True(t, errors.Is(err, ErrInvalidArgument))
	assert.Zero(t, c.Transactions())

	_, err = d.ReadRegisters(regs.PageServos, 0, DefaultMaxTransfer/2)
	require.NoError(t, err)
}

func TestMaxTransferAfterInit(t *testing.T) {
	_, d := newInitialized(t)
	assert.Equal(t, regs.MaxTransferLen-2, d.MaxTransfer())
	_, err := d.ReadRegisters(regs.PageRawRCInput, regs.RawRCBase, regs.RCInputMaxChannels)
	require.NoError(t, err)
}

func TestChecksumExhaustion(t *testing.T) {
	c, d := newInitialized(t)
	before := c.Transactions()
	c.CorruptResponses(transport.DefaultRetries)
	_, err := d.ReadRegister(regs.PageStatus, regs.StatusFlags)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDataError))
	assert.True(t, errors.Is(err, transport.ErrChecksumMismatch))
	assert.Equal(t, before+transport.DefaultRetries, c.Transactions())
}

func TestChecksumRecovered(t *testing.T) {
	c, d := newInitialized(t)
	c.SetRegisters(regs.PageStatus, regs.StatusFreeMem, 1234)
	c.CorruptResponses(transport.DefaultRetries - 1)
	v, err := d.ReadRegister(regs.PageStatus, regs.StatusFreeMem)
	require.NoError(t, err)
	assert.Equal(t, uint16(1234), v)
}

func TestRejected(t *testing.T) {
	c, d := newInitialized(t)
	c.Reject(regs.PageTest)
	before := c.Transactions()
	err := d.WriteRegister(regs.PageTest, regs.TestLED, 1)
	assert.True(t, errors.Is(err, ErrRejected))
	assert.True(t, errors.Is(err, transport.ErrDeviceRejected))
	assert.Equal(t, before+1, c.Transactions())
}

func TestCountMismatch(t *testing.T) {
	c, d := newInitialized(t)
	c.ShortResponses(1)
	_, err := d.ReadRegisters(regs.PageServos, 0, 4)
	assert.True(t, errors.Is(err, ErrDataError))
	assert.True(t, errors.Is(err, transport.ErrCountMismatch))
}

func TestTransportFailure(t *testing.T) {
	c, d := newInitialized(t)
	c.FailWrites(transport.DefaultRetries)
	err := d.WriteRegister(regs.PageSetup, regs.SetupSetDebug, 1)
	assert.True(t, errors.Is(err, ErrTransport))
	assert.True(t, errors.Is(err, sim.ErrInjected))
}

func TestModifyRegister(t *testing.T) {
	c, d := newInitialized(t)
	c.SetRegisters(regs.PageSetup, regs.SetupArming, 0x00ff)
	require.NoError(t, d.ModifyRegister(regs.PageSetup, regs.SetupArming, 0xffff, 0x0042))
	assert.Equal(t, uint16(0x0042), c.Register(regs.PageSetup, regs.SetupArming))
}

func TestModifyRegisterReadFailure(t *testing.T) {
	c, d := newInitialized(t)
	c.SetRegisters(regs.PageSetup, regs.SetupArming, 0x00ff)
	c.FailReads(transport.DefaultRetries)
	require.Error(t, d.ModifyRegister(regs.PageSetup, regs.SetupArming, 0xffff, 0x0042))
	assert.Zero(t, c.Writes(regs.PageSetup, regs.SetupArming))
	assert.Equal(t, uint16(0x00ff), c.Register(regs.PageSetup, regs.SetupArming))
}

func TestClearAlarms(t *testing.T) {
	c, d := newInitialized(t)
	c.SetRegisters(regs.PageStatus, regs.StatusAlarms, regs.AlarmPWMError)
	require.NoError(t, d.ClearAlarms())
	assert.Zero(t, c.Register(regs.PageStatus, regs.StatusAlarms))
}

func TestDetect(t *testing.T) {
	c := sim.New()
	d := New(c)
	assert.True(t, d.Detect())
	assert.Equal(t, Uninitialized, d.State())

	c.SetRegisters(regs.PageConfig, regs.ConfigProtocolVersion, regs.ProtocolVersion+1)
	assert.False(t, d.Detect())

	c.SetUnresponsive(true)
	assert.False(t, d.Detect())
}
