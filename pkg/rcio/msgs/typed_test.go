package msgs

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTypedRoundTrip(t *testing.T) {
	data, err := Encode(&RCInputEvent{Source: 3, Values: []uint32{1000, 1500, 2000}, Connected: true})
	require.NoError(t, err)
	typed, err := DecodeTyped(data)
	require.NoError(t, err)
	assert.Equal(t, RCInputEventTypeID, typed.TypeId)
	assert.True(t, typed.IsEvent())
	assert.False(t, typed.IsCommand())

	msg, err := typed.Decode()
	require.NoError(t, err)
	ev, ok := msg.(*RCInputEvent)
	require.True(t, ok)
	assert.Equal(t, uint32(3), ev.Source)
	assert.Equal(t, []uint32{1000, 1500, 2000}, ev.Values)
	assert.True(t, ev.Connected)
}

func TestCommandKinds(t *testing.T) {
	for _, msg := range []SerializableMessage{&SetDebugCommand{Level: 2}, &ArmCommand{Arm: true}, &SetServoCommand{}, &ClearAlarmsCommand{}} {
		typed, err := TypedFrom(msg)
		require.NoError(t, err)
		assert.True(t, typed.IsCommand(), "%T", msg)
	}
	typed, err := TypedFrom(&CommandOK{})
	require.NoError(t, err)
	assert.False(t, typed.IsCommand())
	assert.False(t, typed.IsEvent())
}

func TestUnknownType(t *testing.T) {
	data, err := (&Typed{TypeId: GroupRC | 0x7fff}).Encode()
	require.NoError(t, err)
	_, err = DecodeMessage(data)
	var unknown *ErrUnknownType
	require.True(t, errors.As(err, &unknown))
	assert.Equal(t, GroupRC|0x7fff, unknown.TypeID)
}

func TestNotSerializable(t *testing.T) {
	_, err := Encode("hello")
	assert.Equal(t, ErrNotSerializable, err)
}

func TestCommandErr(t *testing.T) {
	data, err := Encode(NewCommandErr(errors.New("boom")))
	require.NoError(t, err)
	msg, err := DecodeMessage(data)
	require.NoError(t, err)
	assert.EqualError(t, msg.(*CommandErr), "boom")
}
