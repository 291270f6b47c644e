package gesture

import "time"

// Phase is the lifecycle stage of one touch sample.
type Phase uint8

const (
	PhaseDown Phase = iota
	PhaseMove
	PhaseUp
	PhaseCancel
)

// Button identifies a pointer button in Click events.
type Button uint8

const (
	ButtonLeft Button = iota
	ButtonRight
	ButtonMiddle
)

// Sample is one raw touch observation. Fingers is the number of fingers in
// contact when the sample was taken, counting the finger going down and the
// finger lifting on up samples.
type Sample struct {
	ID      int
	X, Y    float64
	Phase   Phase
	Fingers int
	At      time.Time
}

// Event is one semantic pointer event produced by the interpreter.
type Event interface {
	isEvent()
}

// Move is a relative pointer displacement.
type Move struct {
	DX, DY float64
}

// Click is a single button tap.
type Click struct {
	Button Button
}

// DoubleClick is two taps inside the double-tap interval.
type DoubleClick struct{}

// TwoFingerTap is a two-finger touch lifted without pinching.
type TwoFingerTap struct{}

// DragStart opens a press-and-hold drag.
type DragStart struct{}

// DragEnd closes an open drag.
type DragEnd struct{}

// Scroll carries quantized scroll notches, sign already inverted for
// natural scrolling.
type Scroll struct {
	Notches int
}

func (Move) isEvent()         {}
func (Click) isEvent()        {}
func (DoubleClick) isEvent()  {}
func (TwoFingerTap) isEvent() {}
func (DragStart) isEvent()    {}
func (DragEnd) isEvent()      {}
func (Scroll) isEvent()       {}
