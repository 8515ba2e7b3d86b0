package msgs

import (
	"github.com/golang/protobuf/proto"
)

// CommandOK is the generic reply indicating success for commands.
type CommandOK struct {
}

// NewMessage implements SerializableMessage.
func (m *CommandOK) NewMessage() SerializableMessage { return &CommandOK{} }

// TypeID implements SerializableMessage.
func (m *CommandOK) TypeID() uint32 { return CommandOKTypeID }

// ProtoMessage implements proto.Message.
func (m *CommandOK) ProtoMessage() {}

// Reset implements proto.Message.
func (m *CommandOK) Reset() { *m = CommandOK{} }

// String implements proto.Message.
func (m *CommandOK) String() string { return proto.CompactTextString(m) }

// CommandErr is the generic reply carrying a command error.
type CommandErr struct {
	Message string `protobuf:"bytes,1,opt,name=message,proto3" json:"message,omitempty"`
}

// NewMessage implements SerializableMessage.
func (m *CommandErr) NewMessage() SerializableMessage { return &CommandErr{} }

// TypeID implements SerializableMessage.
func (m *CommandErr) TypeID() uint32 { return CommandErrTypeID }

// ProtoMessage implements proto.Message.
func (m *CommandErr) ProtoMessage() {}

// Reset implements proto.Message.
func (m *CommandErr) Reset() { *m = CommandErr{} }

// String implements proto.Message.
func (m *CommandErr) String() string { return proto.CompactTextString(m) }

// NewCommandErr creates a CommandErr from an error.
func NewCommandErr(err error) *CommandErr {
	return &CommandErr{Message: err.Error()}
}

// Error implements error.
func (m *CommandErr) Error() string { return m.Message }

// RCInputEvent carries the latest RC input snapshot.
type RCInputEvent struct {
	Source    uint32   `protobuf:"varint,1,opt,name=source,proto3" json:"source,omitempty"`
	Values    []uint32 `protobuf:"varint,2,rep,packed,name=values,proto3" json:"values,omitempty"`
	Connected bool     `protobuf:"varint,3,opt,name=connected,proto3" json:"connected,omitempty"`
}

// NewMessage implements SerializableMessage.
func (m *RCInputEvent) NewMessage() SerializableMessage { return &RCInputEvent{} }

// TypeID implements SerializableMessage.
func (m *RCInputEvent) TypeID() uint32 { return RCInputEventTypeID }

// ProtoMessage implements proto.Message.
func (m *RCInputEvent) ProtoMessage() {}

// Reset implements proto.Message.
func (m *RCInputEvent) Reset() { *m = RCInputEvent{} }

// String implements proto.Message.
func (m *RCInputEvent) String() string { return proto.CompactTextString(m) }

// StatusEvent carries the coprocessor status registers.
type StatusEvent struct {
	State   string `protobuf:"bytes,1,opt,name=state,proto3" json:"state,omitempty"`
	FreeMem uint32 `protobuf:"varint,2,opt,name=free_mem,json=freeMem,proto3" json:"free_mem,omitempty"`
	CpuLoad uint32 `protobuf:"varint,3,opt,name=cpu_load,json=cpuLoad,proto3" json:"cpu_load,omitempty"`
	Flags   uint32 `protobuf:"varint,4,opt,name=flags,proto3" json:"flags,omitempty"`
	Alarms  uint32 `protobuf:"varint,5,opt,name=alarms,proto3" json:"alarms,omitempty"`
	VServo  uint32 `protobuf:"varint,6,opt,name=vservo,proto3" json:"vservo,omitempty"`
	Arming  uint32 `protobuf:"varint,7,opt,name=arming,proto3" json:"arming,omitempty"`
	Error   string `protobuf:"bytes,8,opt,name=error,proto3" json:"error,omitempty"`
}

// NewMessage implements SerializableMessage.
func (m *StatusEvent) NewMessage() SerializableMessage { return &StatusEvent{} }

// TypeID implements SerializableMessage.
func (m *StatusEvent) TypeID() uint32 { return StatusEventTypeID }

// ProtoMessage implements proto.Message.
func (m *StatusEvent) ProtoMessage() {}

// Reset implements proto.Message.
func (m *StatusEvent) Reset() { *m = StatusEvent{} }

// String implements proto.Message.
func (m *StatusEvent) String() string { return proto.CompactTextString(m) }

// SetDebugCommand sets the coprocessor debug level.
type SetDebugCommand struct {
	Level uint32 `protobuf:"varint,1,opt,name=level,proto3" json:"level,omitempty"`
}

// NewMessage implements SerializableMessage.
func (m *SetDebugCommand) NewMessage() SerializableMessage { return &SetDebugCommand{} }

// TypeID implements SerializableMessage.
func (m *SetDebugCommand) TypeID() uint32 { return SetDebugCommandTypeID }

// ProtoMessage implements proto.Message.
func (m *SetDebugCommand) ProtoMessage() {}

// Reset implements proto.Message.
func (m *SetDebugCommand) Reset() { *m = SetDebugCommand{} }

// String implements proto.Message.
func (m *SetDebugCommand) String() string { return proto.CompactTextString(m) }

// ArmCommand arms or disarms the outputs.
type ArmCommand struct {
	Arm bool `protobuf:"varint,1,opt,name=arm,proto3" json:"arm,omitempty"`
}

// NewMessage implements SerializableMessage.
func (m *ArmCommand) NewMessage() SerializableMessage { return &ArmCommand{} }

// TypeID implements SerializableMessage.
func (m *ArmCommand) TypeID() uint32 { return ArmCommandTypeID }

// ProtoMessage implements proto.Message.
func (m *ArmCommand) ProtoMessage() {}

// Reset implements proto.Message.
func (m *ArmCommand) Reset() { *m = ArmCommand{} }

// String implements proto.Message.
func (m *ArmCommand) String() string { return proto.CompactTextString(m) }

// SetServoCommand sets a single PWM output.
type SetServoCommand struct {
	Channel uint32 `protobuf:"varint,1,opt,name=channel,proto3" json:"channel,omitempty"`
	Value   uint32 `protobuf:"varint,2,opt,name=value,proto3" json:"value,omitempty"`
}

// NewMessage implements SerializableMessage.
func (m *SetServoCommand) NewMessage() SerializableMessage { return &SetServoCommand{} }

// TypeID implements SerializableMessage.
func (m *SetServoCommand) TypeID() uint32 { return SetServoCommandTypeID }

// ProtoMessage implements proto.Message.
func (m *SetServoCommand) ProtoMessage() {}

// Reset implements proto.Message.
func (m *SetServoCommand) Reset() { *m = SetServoCommand{} }

// String implements proto.Message.
func (m *SetServoCommand) String() string { return proto.CompactTextString(m) }

// ClearAlarmsCommand clears latched alarms.
type ClearAlarmsCommand struct {
}

// NewMessage implements SerializableMessage.
func (m *ClearAlarmsCommand) NewMessage() SerializableMessage { return &ClearAlarmsCommand{} }

// TypeID implements SerializableMessage.
func (m *ClearAlarmsCommand) TypeID() uint32 { return ClearAlarmsCommandTypeID }

// ProtoMessage implements proto.Message.
func (m *ClearAlarmsCommand) ProtoMessage() {}

// Reset implements proto.Message.
func (m *ClearAlarmsCommand) Reset() { *m = ClearAlarmsCommand{} }

// String implements proto.Message.
func (m *ClearAlarmsCommand) String() string { return proto.CompactTextString(m) }

// TypeID Groups
const (
	GroupCommand uint32 = 0x00000000
	GroupRC      uint32 = 0x00030000
)

// TypeIDs
const (
	CommandOKTypeID          uint32 = GroupCommand | TypeIDMaskReply | 0x0000
	CommandErrTypeID         uint32 = GroupCommand | TypeIDMaskReply | 0x0001
	RCInputEventTypeID       uint32 = GroupRC | TypeIDKindEvent | 0x0000
	StatusEventTypeID        uint32 = GroupRC | TypeIDKindEvent | 0x0001
	SetDebugCommandTypeID    uint32 = GroupRC | 0x0000
	ArmCommandTypeID         uint32 = GroupRC | 0x0001
	SetServoCommandTypeID    uint32 = GroupRC | 0x0002
	ClearAlarmsCommandTypeID uint32 = GroupRC | 0x0003
)
