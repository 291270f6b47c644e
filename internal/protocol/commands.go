package protocol

import (
	"encoding/binary"
	"math/rand"
	"time"
)

// Command is one outbound frame variant. Implementations append their payload
// bytes; Encode owns the header.
type Command interface {
	Type() CommandType
	appendPayload(dst []byte) []byte
}

// MouseMove is a relative pointer displacement.
type MouseMove struct {
	DX, DY int16
}

func (MouseMove) Type() CommandType { return TypeMouseMove }

func (c MouseMove) appendPayload(dst []byte) []byte {
	dst = binary.LittleEndian.AppendUint16(dst, uint16(c.DX))
	return binary.LittleEndian.AppendUint16(dst, uint16(c.DY))
}

// MouseClick presses, releases or taps a pointer button.
type MouseClick struct {
	Button Button
	Action Action
}

func (MouseClick) Type() CommandType { return TypeMouseClick }

func (c MouseClick) appendPayload(dst []byte) []byte {
	return append(dst, byte(c.Button), byte(c.Action))
}

// MouseScroll carries vertical and horizontal scroll notches.
type MouseScroll struct {
	V, H int8
}

func (MouseScroll) Type() CommandType { return TypeMouseScroll }

func (c MouseScroll) appendPayload(dst []byte) []byte {
	return append(dst, byte(c.V), byte(c.H))
}

// DragStart holds the left button down until DragEnd.
type DragStart struct{}

func (DragStart) Type() CommandType               { return TypeDragStart }
func (DragStart) appendPayload(dst []byte) []byte { return dst }

// DragEnd releases a held drag.
type DragEnd struct{}

func (DragEnd) Type() CommandType               { return TypeDragEnd }
func (DragEnd) appendPayload(dst []byte) []byte { return dst }

// KeyboardType sends free text for the dongle to type out. Text beyond
// MaxTextLen bytes is dropped silently.
type KeyboardType struct {
	Modifiers Modifier
	Text      string
}

func (KeyboardType) Type() CommandType { return TypeKeyboardType }

func (c KeyboardType) appendPayload(dst []byte) []byte {
	text := clampBytes([]byte(c.Text), MaxTextLen)
	dst = append(dst, byte(c.Modifiers), byte(len(text)))
	return append(dst, text...)
}

// KeyboardKey presses or releases a single HID keycode.
type KeyboardKey struct {
	Modifiers Modifier
	Keycode   byte
	Action    Action
}

func (KeyboardKey) Type() CommandType { return TypeKeyboardKey }

func (c KeyboardKey) appendPayload(dst []byte) []byte {
	return append(dst, byte(c.Modifiers), c.Keycode, byte(c.Action))
}

// KeyboardCombo taps up to MaxComboKeys keycodes at once under a modifier
// mask; extra keycodes are dropped silently.
type KeyboardCombo struct {
	Modifiers Modifier
	Keycodes  []byte
}

func (KeyboardCombo) Type() CommandType { return TypeKeyboardCombo }

func (c KeyboardCombo) appendPayload(dst []byte) []byte {
	keys := clampBytes(c.Keycodes, MaxComboKeys)
	dst = append(dst, byte(c.Modifiers), byte(len(keys)))
	return append(dst, keys...)
}

// MediaKey sends a consumer-control usage (play/pause, volume, ...).
type MediaKey struct {
	Usage  uint16
	Action Action
}

func (MediaKey) Type() CommandType { return TypeMediaKey }

func (c MediaKey) appendPayload(dst []byte) []byte {
	dst = binary.LittleEndian.AppendUint16(dst, c.Usage)
	return append(dst, byte(c.Action))
}

// Ping carries a truncated millisecond timestamp and a random sequence
// number. Neither is unique across the ~49 day wrap; the pair only has to be
// good enough to match a Pong to a live link.
type Ping struct {
	Timestamp uint32
	Sequence  uint32
}

// NewPing stamps a Ping from wall-clock time with a random sequence.
func NewPing(now time.Time) Ping {
	return Ping{
		Timestamp: uint32(now.UnixMilli()),
		Sequence:  rand.Uint32(),
	}
}

func (Ping) Type() CommandType { return TypePing }

func (c Ping) appendPayload(dst []byte) []byte {
	dst = binary.LittleEndian.AppendUint32(dst, c.Timestamp)
	return binary.LittleEndian.AppendUint32(dst, c.Sequence)
}

// GetInfo requests firmware version and link status.
type GetInfo struct{}

func (GetInfo) Type() CommandType               { return TypeGetInfo }
func (GetInfo) appendPayload(dst []byte) []byte { return dst }

// SetName stores the advertised device name, truncated to MaxNameLen bytes.
type SetName struct {
	Name string
}

func (SetName) Type() CommandType { return TypeSetName }

func (c SetName) appendPayload(dst []byte) []byte {
	name := clampBytes([]byte(c.Name), MaxNameLen)
	dst = append(dst, byte(len(name)))
	return append(dst, name...)
}

// GetName asks the dongle for its stored name.
type GetName struct{}

func (GetName) Type() CommandType               { return TypeGetName }
func (GetName) appendPayload(dst []byte) []byte { return dst }

// SetPin stores a 4-8 digit pin, truncated to MaxPinLen bytes.
type SetPin struct {
	Pin string
}

func (SetPin) Type() CommandType { return TypeSetPin }

func (c SetPin) appendPayload(dst []byte) []byte {
	pin := clampBytes([]byte(c.Pin), MaxPinLen)
	dst = append(dst, byte(len(pin)))
	return append(dst, pin...)
}

// ClearPin removes the stored pin. On the wire it is a SetPin frame whose
// one-byte payload is the zero sentinel, not a distinct command type.
type ClearPin struct{}

func (ClearPin) Type() CommandType { return TypeSetPin }

func (ClearPin) appendPayload(dst []byte) []byte {
	return append(dst, 0x00)
}

// VerifyPin authenticates the current session.
type VerifyPin struct {
	Pin string
}

func (VerifyPin) Type() CommandType { return TypeVerifyPin }

func (c VerifyPin) appendPayload(dst []byte) []byte {
	pin := clampBytes([]byte(c.Pin), MaxPinLen)
	dst = append(dst, byte(len(pin)))
	return append(dst, pin...)
}

// GpioSetLed drives one LED channel, or all of them as a bitmask when Index
// is GpioAll.
type GpioSetLed struct {
	Index byte
	State byte
}

func (GpioSetLed) Type() CommandType { return TypeGpioSetLed }

func (c GpioSetLed) appendPayload(dst []byte) []byte {
	return append(dst, c.Index, c.State)
}

// GpioSetRelay drives one relay channel, or all of them as a bitmask when
// Index is GpioAll.
type GpioSetRelay struct {
	Index byte
	State byte
}

func (GpioSetRelay) Type() CommandType { return TypeGpioSetRelay }

func (c GpioSetRelay) appendPayload(dst []byte) []byte {
	return append(dst, c.Index, c.State)
}

// GpioGetAll requests a full GpioState telemetry frame.
type GpioGetAll struct{}

func (GpioGetAll) Type() CommandType               { return TypeGpioGetAll }
func (GpioGetAll) appendPayload(dst []byte) []byte { return dst }

func clampBytes(b []byte, max int) []byte {
	if len(b) > max {
		return b[:max]
	}
	return b
}
