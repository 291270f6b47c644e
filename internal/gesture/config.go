package gesture

import "time"

// Config holds the timing and distance thresholds that disambiguate taps,
// drags, scrolls and two-finger taps. Distances are in touch-surface pixels.
type Config struct {
	// TapThreshold bounds how long a touch may stay down and still count
	// as a tap.
	TapThreshold time.Duration

	// DoubleTapInterval is the maximum gap between two taps for the second
	// to become a double-click.
	DoubleTapInterval time.Duration

	// DoubleTapDragWindow is how long after a tap a new touch-down can arm
	// a drag instead of starting a fresh click.
	DoubleTapDragWindow time.Duration

	// TapMemoryGrace extends the drag window before the advisory expiry
	// sweep discards an unclaimed tap record.
	TapMemoryGrace time.Duration

	// DragTapProximity is how close to the remembered tap a new down must
	// land to arm a drag.
	DragTapProximity float64

	// MoveThreshold is the distance from the touch origin past which a
	// touch stops being a tap and starts being motion.
	MoveThreshold float64

	// JitterThreshold suppresses per-sample deltas smaller than this in
	// both axes while moving.
	JitterThreshold float64

	// ScrollDeadband ignores per-sample midpoint deltas at or below this
	// magnitude during a two-finger gesture.
	ScrollDeadband float64

	// ScrollThreshold is the accumulated midpoint travel that produces one
	// scroll notch.
	ScrollThreshold float64

	// ScrollSensitivity scales midpoint travel before notch quantization.
	ScrollSensitivity float64

	// PinchTolerance is the separation change past which a two-finger lift
	// is a pinch rather than a two-finger tap.
	PinchTolerance float64
}

// DefaultConfig returns the tuned production thresholds.
func DefaultConfig() Config {
	return Config{
		TapThreshold:        200 * time.Millisecond,
		DoubleTapInterval:   300 * time.Millisecond,
		DoubleTapDragWindow: 250 * time.Millisecond,
		TapMemoryGrace:      100 * time.Millisecond,
		DragTapProximity:    30,
		MoveThreshold:       10,
		JitterThreshold:     0.5,
		ScrollDeadband:      2,
		ScrollThreshold:     8,
		ScrollSensitivity:   1.0,
		PinchTolerance:      30,
	}
}

// WithDefaults fills zero-valued fields from DefaultConfig.
func (c Config) WithDefaults() Config {
	def := DefaultConfig()
	if c.TapThreshold <= 0 {
		c.TapThreshold = def.TapThreshold
	}
	if c.DoubleTapInterval <= 0 {
		c.DoubleTapInterval = def.DoubleTapInterval
	}
	if c.DoubleTapDragWindow <= 0 {
		c.DoubleTapDragWindow = def.DoubleTapDragWindow
	}
	if c.TapMemoryGrace <= 0 {
		c.TapMemoryGrace = def.TapMemoryGrace
	}
	if c.DragTapProximity <= 0 {
		c.DragTapProximity = def.DragTapProximity
	}
	if c.MoveThreshold <= 0 {
		c.MoveThreshold = def.MoveThreshold
	}
	if c.JitterThreshold <= 0 {
		c.JitterThreshold = def.JitterThreshold
	}
	if c.ScrollDeadband <= 0 {
		c.ScrollDeadband = def.ScrollDeadband
	}
	if c.ScrollThreshold <= 0 {
		c.ScrollThreshold = def.ScrollThreshold
	}
	if c.ScrollSensitivity <= 0 {
		c.ScrollSensitivity = def.ScrollSensitivity
	}
	if c.PinchTolerance <= 0 {
		c.PinchTolerance = def.PinchTolerance
	}
	return c
}
