// Package regs defines the paged register map of the RC I/O coprocessor.
//
// Values must stay bit-exact with the coprocessor firmware (protocol
// version 4).
package regs

// ProtocolVersion is the protocol version reported by compatible firmware.
const ProtocolVersion uint16 = 4

// Address identifies a register by page and offset.
type Address struct {
	Page   uint8
	Offset uint8
}

// At creates an Address.
func At(page, offset uint8) Address {
	return Address{Page: page, Offset: offset}
}

// Next returns the address n registers after a on the same page.
func (a Address) Next(n int) Address {
	return Address{Page: a.Page, Offset: a.Offset + uint8(n)}
}

// Static configuration page.
const (
	PageConfig uint8 = 0

	ConfigProtocolVersion   uint8 = 0
	ConfigHardwareVersion   uint8 = 1
	ConfigBootloaderVersion uint8 = 2
	ConfigMaxTransfer       uint8 = 3 // maximum transfer size in bytes
	ConfigControlCount      uint8 = 4
	ConfigActuatorCount     uint8 = 5
	ConfigRCInputCount      uint8 = 6
	ConfigADCInputCount     uint8 = 7
	ConfigRelayCount        uint8 = 8
)

// MaxTransferLen is the transfer size advertised by current firmware.
const MaxTransferLen = 64

// Dynamic status page.
const (
	PageStatus uint8 = 1

	StatusFreeMem uint8 = 0
	StatusCPULoad uint8 = 1
	StatusFlags   uint8 = 2
	StatusAlarms  uint8 = 3
	StatusVBatt   uint8 = 4 // hardware rev 1, mV
	StatusIBatt   uint8 = 5 // hardware rev 1, raw ADC
	StatusVServo  uint8 = 6 // hardware rev 2, mV
	StatusVRSSI   uint8 = 7 // hardware rev 2
	StatusPRSSI   uint8 = 8 // hardware rev 2, PWM RSSI
	StatusMixer   uint8 = 9
)

// Status flags, PageStatus/StatusFlags.
const (
	FlagOutputsArmed   uint16 = 1 << 0
	FlagOverride       uint16 = 1 << 1
	FlagRCOK           uint16 = 1 << 2
	FlagRCPPM          uint16 = 1 << 3
	FlagRCDSM          uint16 = 1 << 4
	FlagRCSBUS         uint16 = 1 << 5
	FlagFMUOK          uint16 = 1 << 6
	FlagRawPWM         uint16 = 1 << 7
	FlagMixerOK        uint16 = 1 << 8
	FlagArmSync        uint16 = 1 << 9
	FlagInitOK         uint16 = 1 << 10
	FlagFailsafe       uint16 = 1 << 11
	FlagSafetyOff      uint16 = 1 << 12
	FlagFMUInitialized uint16 = 1 << 13
	FlagRCST24         uint16 = 1 << 14
	FlagRCSUMD         uint16 = 1 << 15
)

// Alarm flags, PageStatus/StatusAlarms. Alarms latch; write 1 to clear.
const (
	AlarmVBattLow     uint16 = 1 << 0
	AlarmTemperature  uint16 = 1 << 1
	AlarmServoCurrent uint16 = 1 << 2
	AlarmAccCurrent   uint16 = 1 << 3
	AlarmFMULost      uint16 = 1 << 4
	AlarmRCLost       uint16 = 1 << 5
	AlarmPWMError     uint16 = 1 << 6
	AlarmVServoFault  uint16 = 1 << 7
)

// Output pages, one register per channel.
const (
	PageActuators uint8 = 2 // scaled actuator outputs
	PageServos    uint8 = 3 // PWM pulse widths in us
)

// Raw RC input page.
const (
	PageRawRCInput uint8 = 4

	RawRCCount          uint8 = 0
	RawRCFlags          uint8 = 1
	RawRCNRSSI          uint8 = 2
	RawRCData           uint8 = 3 // PPM frame length or DSM protocol type
	RawRCFrameCount     uint8 = 4
	RawRCLostFrameCount uint8 = 5
	RawRCBase           uint8 = 6 // ConfigRCInputCount channels from here
)

// Raw RC flags, PageRawRCInput/RawRCFlags.
const (
	RawRCFlagFrameDrop uint16 = 1 << 0
	RawRCFlagFailsafe  uint16 = 1 << 1
	RawRCFlagDSM11     uint16 = 1 << 2
	RawRCFlagMappingOK uint16 = 1 << 3
	RawRCFlagRCOK      uint16 = 1 << 4
)

// Mapped RC input page.
const (
	PageRCInput uint8 = 5

	RCValid uint8 = 0 // bitmask of valid controls
	RCBase  uint8 = 1
)

// PageRawADCInput holds one raw sample per ADC channel.
const PageRawADCInput uint8 = 6

// PWM rate map page.
const (
	PagePWMInfo uint8 = 7

	RateMapBase uint8 = 0
)

// Setup page.
const (
	PageSetup uint8 = 50

	SetupFeatures       uint8 = 0
	SetupArming         uint8 = 1
	SetupPWMRates       uint8 = 2
	SetupPWMDefaultRate uint8 = 3
	SetupPWMAltRate     uint8 = 4
	SetupRelays         uint8 = 5
	SetupVBattScale     uint8 = 6 // hardware rev 1
	SetupVServoScale    uint8 = 6 // hardware rev 2
	SetupDSM            uint8 = 7
	SetupSetDebug       uint8 = 9
	SetupRebootBL       uint8 = 10
	SetupCRC            uint8 = 11 // two registers
	SetupForceSafetyOff uint8 = 12
	SetupRCThrFailsafe  uint8 = 13
	SetupForceSafetyOn  uint8 = 14
	SetupPWMReverse     uint8 = 15
	SetupTrimRoll       uint8 = 16
	SetupTrimPitch      uint8 = 17
	SetupTrimYaw        uint8 = 18
	SetupSBUSRate       uint8 = 19
)

// Magic arguments.
const (
	RebootBLMagic    uint16 = 14662
	ForceSafetyMagic uint16 = 22027
)

// Feature flags, PageSetup/SetupFeatures.
const (
	FeatureSBUS1Out uint16 = 1 << 0
	FeatureSBUS2Out uint16 = 1 << 1
	FeaturePWMRSSI  uint16 = 1 << 2
	FeatureADCRSSI  uint16 = 1 << 3
)

// Arming flags, PageSetup/SetupArming.
const (
	ArmingIOArmOK             uint16 = 1 << 0
	ArmingFMUArmed            uint16 = 1 << 1
	ArmingManualOverrideOK    uint16 = 1 << 2
	ArmingFailsafeCustom      uint16 = 1 << 3
	ArmingInairRestartOK      uint16 = 1 << 4
	ArmingAlwaysPWMEnable     uint16 = 1 << 5
	ArmingRCHandlingDisabled  uint16 = 1 << 6
	ArmingLockdown            uint16 = 1 << 7
	ArmingForceFailsafe       uint16 = 1 << 8
	ArmingTerminationFailsafe uint16 = 1 << 9
	ArmingOverrideImmediate   uint16 = 1 << 10
)

// Controls page, MaxControlCount registers per group.
const (
	PageControls    uint8 = 51
	MaxControlCount       = 8
)

// PageMixerLoad accepts mixer text.
const PageMixerLoad uint8 = 52

// RC channel configuration page, RCConfigStride registers per channel.
const (
	PageRCConfig uint8 = 53

	RCConfigMin        uint8 = 0
	RCConfigCenter     uint8 = 1
	RCConfigMax        uint8 = 2
	RCConfigDeadzone   uint8 = 3
	RCConfigAssignment uint8 = 4
	RCConfigOptions    uint8 = 5
	RCConfigStride           = 6

	RCConfigAssignmentModeSwitch uint16 = 100

	RCConfigOptionEnabled uint16 = 1 << 0
	RCConfigOptionReverse uint16 = 1 << 1
)

// Per-channel PWM pages.
const (
	PageDirectPWM     uint8 = 54
	PageFailsafePWM   uint8 = 55
	PageSensors       uint8 = 56
	PageControlMinPWM uint8 = 106
	PageControlMaxPWM uint8 = 107
	PageDisarmedPWM   uint8 = 108
)

// Test page.
const (
	PageTest uint8 = 127

	TestLED uint8 = 0
)

// RCInputMaxChannels limits the RC channels fetched from the coprocessor.
const RCInputMaxChannels = 18

// PWM output limits in us.
const (
	PWMOutputMaxChannels = 16
	PWMLowestMin         = 900
	PWMDefaultMin        = 1000
	PWMHighestMin        = 1600
	PWMHighestMax        = 2100
	PWMDefaultMax        = 2000
	PWMLowestMax         = 1400
	PWMIgnoreThisChannel = 0xffff
)
