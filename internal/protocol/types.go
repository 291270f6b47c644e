package protocol

// CommandType is the leading byte of an outbound frame. Values are the wire
// contract with the receiver firmware; never renumber.
type CommandType byte

const (
	TypeMouseMove     CommandType = 0x01
	TypeMouseClick    CommandType = 0x02
	TypeMouseScroll   CommandType = 0x03
	TypeDragStart     CommandType = 0x04
	TypeDragEnd       CommandType = 0x05
	TypeKeyboardType  CommandType = 0x20
	TypeKeyboardKey   CommandType = 0x21
	TypeKeyboardCombo CommandType = 0x22
	TypeMediaKey      CommandType = 0x24
	TypePing          CommandType = 0x40
	TypeGetInfo       CommandType = 0x42
	TypeSetName       CommandType = 0x46
	TypeSetPin        CommandType = 0x47
	TypeVerifyPin     CommandType = 0x48
	TypeGetName       CommandType = 0x4A
	TypeGpioSetLed    CommandType = 0x80
	TypeGpioSetRelay  CommandType = 0x82
	TypeGpioGetAll    CommandType = 0x86
)

// ResponseType is the leading byte of an inbound frame.
type ResponseType byte

const (
	TypeStatus    ResponseType = 0xE0
	TypePong      ResponseType = 0x41
	TypeInfo      ResponseType = 0x43
	TypePinResult ResponseType = 0x49
	TypeName      ResponseType = 0x4B
	TypeGpioState ResponseType = 0x87
)

// StatusCode reports the outcome of a fire-and-forget command.
type StatusCode byte

const (
	StatusOK              StatusCode = 0x00
	StatusUnknownCommand  StatusCode = 0x01
	StatusInvalidLength   StatusCode = 0x02
	StatusAuthRequired    StatusCode = 0x03
	StatusTransportBusy   StatusCode = 0x04
	StatusTransportFailed StatusCode = 0x05
	StatusInvalidData     StatusCode = 0x06
)

func (c StatusCode) String() string {
	switch c {
	case StatusOK:
		return "ok"
	case StatusUnknownCommand:
		return "unknown command"
	case StatusInvalidLength:
		return "invalid length"
	case StatusAuthRequired:
		return "auth required"
	case StatusTransportBusy:
		return "transport busy"
	case StatusTransportFailed:
		return "transport failed"
	case StatusInvalidData:
		return "invalid data"
	default:
		return "unrecognized status"
	}
}

// Button identifies a pointer button in MouseClick frames.
type Button byte

const (
	ButtonLeft   Button = 0x01
	ButtonRight  Button = 0x02
	ButtonMiddle Button = 0x03
)

// Action qualifies click, key and media frames.
type Action byte

const (
	ActionPress   Action = 0x01
	ActionRelease Action = 0x02
	ActionTap     Action = 0x03
)

// Modifier is the HID-style modifier bitmask carried by keyboard frames.
type Modifier byte

const (
	ModLeftCtrl   Modifier = 1 << 0
	ModLeftShift  Modifier = 1 << 1
	ModLeftAlt    Modifier = 1 << 2
	ModLeftGUI    Modifier = 1 << 3
	ModRightCtrl  Modifier = 1 << 4
	ModRightShift Modifier = 1 << 5
	ModRightAlt   Modifier = 1 << 6
	ModRightGUI   Modifier = 1 << 7
)

// Oversized variable-length payloads are truncated to these limits at encode
// time without signaling the caller. The receiver firmware depends on the
// silent-truncation contract; do not turn these into errors.
const (
	MaxTextLen   = 64
	MaxNameLen   = 20
	MaxPinLen    = 8
	MaxComboKeys = 6
)

// GpioAll addresses every channel at once in GpioSetLed/GpioSetRelay frames;
// the state byte is then interpreted as a bitmask instead of a boolean.
const GpioAll byte = 0xFF
