package protocol

import (
	"encoding/binary"
	"errors"
)

var (
	ErrShortFrame     = errors.New("protocol: short frame")
	ErrLengthMismatch = errors.New("protocol: declared length mismatch")
	ErrShortPayload   = errors.New("protocol: short payload for response type")
)

// Response is one decoded inbound frame variant.
type Response interface {
	ResponseType() ResponseType
}

// Status couples an outcome code with the command type byte it answers.
// Commands are fire-and-forget; this byte is the only correlation handle.
type Status struct {
	Code    StatusCode
	Command CommandType
}

func (Status) ResponseType() ResponseType { return TypeStatus }

// Pong answers a Ping.
type Pong struct{}

func (Pong) ResponseType() ResponseType { return TypePong }

// Info reports firmware version and link status.
type Info struct {
	VersionMajor  byte
	VersionMinor  byte
	USBConnected  bool
	SessionActive bool
	UptimeSeconds uint32
}

func (Info) ResponseType() ResponseType { return TypeInfo }

// PinResult answers SetPin and VerifyPin.
type PinResult struct {
	Success      bool
	AttemptsLeft byte
}

func (PinResult) ResponseType() ResponseType { return TypePinResult }

// Name answers GetName.
type Name struct {
	Name string
}

func (Name) ResponseType() ResponseType { return TypeName }

// GpioState is the packed telemetry record: three channel bitmasks plus two
// 12-bit analog readings.
type GpioState struct {
	Led   byte
	Relay byte
	Din   byte
	Ain0  uint16
	Ain1  uint16
}

func (GpioState) ResponseType() ResponseType { return TypeGpioState }

// Unknown preserves the type byte of a frame this build does not understand.
type Unknown struct {
	Raw byte
}

func (u Unknown) ResponseType() ResponseType { return ResponseType(u.Raw) }

// Decode parses one complete inbound frame. Short or inconsistent buffers
// yield a sentinel error and no partial data; unknown type bytes decode to
// Unknown rather than failing.
func Decode(frame []byte) (Response, error) {
	if len(frame) < 2 {
		return nil, ErrShortFrame
	}
	payload := frame[2:]
	if int(frame[1]) != len(payload) {
		return nil, ErrLengthMismatch
	}

	switch ResponseType(frame[0]) {
	case TypeStatus:
		if len(payload) < 2 {
			return nil, ErrShortPayload
		}
		return Status{Code: StatusCode(payload[0]), Command: CommandType(payload[1])}, nil

	case TypePong:
		return Pong{}, nil

	case TypeInfo:
		if len(payload) < 8 {
			return nil, ErrShortPayload
		}
		return Info{
			VersionMajor:  payload[0],
			VersionMinor:  payload[1],
			USBConnected:  payload[2] != 0,
			SessionActive: payload[3] != 0,
			UptimeSeconds: binary.LittleEndian.Uint32(payload[4:8]),
		}, nil

	case TypePinResult:
		if len(payload) < 2 {
			return nil, ErrShortPayload
		}
		return PinResult{Success: payload[0] != 0, AttemptsLeft: payload[1]}, nil

	case TypeName:
		if len(payload) < 1 {
			return nil, ErrShortPayload
		}
		n := int(payload[0])
		if n > len(payload)-1 {
			return nil, ErrShortPayload
		}
		return Name{Name: string(payload[1 : 1+n])}, nil

	case TypeGpioState:
		// Fixed-size record: exactly 2 header + 7 payload bytes.
		if len(payload) != 7 {
			return nil, ErrShortPayload
		}
		return GpioState{
			Led:   payload[0],
			Relay: payload[1],
			Din:   payload[2],
			Ain0:  binary.LittleEndian.Uint16(payload[3:5]),
			Ain1:  binary.LittleEndian.Uint16(payload[5:7]),
		}, nil

	default:
		return Unknown{Raw: frame[0]}, nil
	}
}
