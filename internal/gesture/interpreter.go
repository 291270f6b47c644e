package gesture

import (
	"math"
	"time"
)

type mode uint8

const (
	// modeIdle: no fingers down, waiting for an isolated sequence to start.
	modeIdle mode = iota
	// modeSingle: tracking one fingertip.
	modeSingle
	// modeTwo: tracking two simultaneous fingertips.
	modeTwo
	// modeDrained: the sequence is spent (a finger lifted mid-two-finger
	// gesture, or 3+ fingers landed); remaining motion is ignored until
	// every finger has lifted.
	modeDrained
)

type point struct {
	x, y float64
}

func (p point) distTo(q point) float64 {
	return math.Hypot(p.x-q.x, p.y-q.y)
}

// Interpreter disambiguates taps, double-taps, drags, two-finger scrolls and
// two-finger taps from a raw touch sample stream. It is single-goroutine:
// each sample must be processed to completion before the next is offered.
type Interpreter struct {
	cfg Config

	mode    mode
	touches map[int]point

	// single-finger tracking
	origin    point
	last      point
	downAt    time.Time
	pathLen   float64
	moving    bool
	dragArmed bool
	dragging  bool

	// two-finger tracking
	twoReady    bool
	twoInitSep  float64
	twoLastSep  float64
	twoLastMid  point
	scrollAccum float64

	// tap memory, persists across isolated sequences inside a bounded
	// window to support double-tap and tap-then-drag
	hasTap bool
	tapAt  time.Time
	tapLoc point
}

// NewInterpreter builds an interpreter with cfg thresholds; zero-valued
// fields fall back to defaults.
func NewInterpreter(cfg Config) *Interpreter {
	return &Interpreter{
		cfg:     cfg.WithDefaults(),
		touches: make(map[int]point),
	}
}

// Step consumes one sample and yields at most one semantic event.
func (it *Interpreter) Step(s Sample) (Event, bool) {
	switch s.Phase {
	case PhaseDown:
		return it.stepDown(s)
	case PhaseMove:
		return it.stepMove(s)
	case PhaseUp:
		return it.stepUp(s)
	case PhaseCancel:
		return it.stepCancel()
	default:
		return nil, false
	}
}

func (it *Interpreter) stepDown(s Sample) (Event, bool) {
	pos := point{s.X, s.Y}
	it.touches[s.ID] = pos

	switch {
	case s.Fingers >= 3:
		// 3+ fingers: the whole sequence becomes a no-op, but an open
		// drag must never be left pressed on the host.
		wasDragging := it.dragging
		it.resetSequence()
		it.mode = modeDrained
		if wasDragging {
			return DragEnd{}, true
		}
		return nil, false

	case s.Fingers == 2:
		if it.mode == modeDrained {
			return nil, false
		}
		wasDragging := it.dragging
		it.beginTwoFinger()
		if wasDragging {
			return DragEnd{}, true
		}
		return nil, false

	case s.Fingers == 1:
		if it.mode == modeDrained {
			return nil, false
		}
		it.beginSingle(pos, s.At)
		return nil, false
	}
	return nil, false
}

func (it *Interpreter) beginSingle(pos point, at time.Time) {
	it.mode = modeSingle
	it.origin = pos
	it.last = pos
	it.downAt = at
	it.pathLen = 0
	it.moving = false
	it.dragging = false
	it.dragArmed = it.hasTap &&
		at.Sub(it.tapAt) <= it.cfg.DoubleTapDragWindow &&
		pos.distTo(it.tapLoc) <= it.cfg.DragTapProximity
}

func (it *Interpreter) beginTwoFinger() {
	it.mode = modeTwo
	it.moving = false
	it.dragging = false
	it.dragArmed = false
	it.scrollAccum = 0
	it.twoReady = false
	if sep, mid, ok := it.twoFingerGeometry(); ok {
		it.twoInitSep = sep
		it.twoLastSep = sep
		it.twoLastMid = mid
		it.twoReady = true
	}
}

// twoFingerGeometry derives separation and midpoint from the two tracked
// fingertips. Not ok until both positions have been observed.
func (it *Interpreter) twoFingerGeometry() (sep float64, mid point, ok bool) {
	if len(it.touches) != 2 {
		return 0, point{}, false
	}
	pts := make([]point, 0, 2)
	for _, p := range it.touches {
		pts = append(pts, p)
	}
	sep = pts[0].distTo(pts[1])
	mid = point{(pts[0].x + pts[1].x) / 2, (pts[0].y + pts[1].y) / 2}
	return sep, mid, true
}

func (it *Interpreter) stepMove(s Sample) (Event, bool) {
	pos := point{s.X, s.Y}
	if _, known := it.touches[s.ID]; !known {
		// Move without a matching down: ignore rather than guess.
		return nil, false
	}
	it.touches[s.ID] = pos

	switch it.mode {
	case modeSingle:
		if s.Fingers == 1 {
			return it.moveSingle(pos)
		}
		return nil, false
	case modeTwo:
		if s.Fingers == 2 {
			return it.moveTwoFinger()
		}
		return nil, false
	default:
		return nil, false
	}
}

func (it *Interpreter) moveSingle(pos point) (Event, bool) {
	dx := pos.x - it.last.x
	dy := pos.y - it.last.y
	it.pathLen += it.last.distTo(pos)
	it.last = pos

	if !it.moving && pos.distTo(it.origin) > it.cfg.MoveThreshold {
		it.moving = true
		if it.dragArmed && !it.dragging {
			// The threshold crossing itself becomes the drag start;
			// motion resumes with the next sample.
			it.dragging = true
			it.hasTap = false
			return DragStart{}, true
		}
	}
	if !it.moving {
		return nil, false
	}
	if math.Abs(dx) <= it.cfg.JitterThreshold && math.Abs(dy) <= it.cfg.JitterThreshold {
		return nil, false
	}
	return Move{DX: dx, DY: dy}, true
}

func (it *Interpreter) moveTwoFinger() (Event, bool) {
	sep, mid, ok := it.twoFingerGeometry()
	if !ok {
		return nil, false
	}
	if !it.twoReady {
		it.twoInitSep = sep
		it.twoLastSep = sep
		it.twoLastMid = mid
		it.twoReady = true
		return nil, false
	}
	it.twoLastSep = sep

	delta := mid.y - it.twoLastMid.y
	if math.Abs(delta) <= it.cfg.ScrollDeadband {
		// Below the deadband the midpoint reference stays put, so slow
		// continuous motion still accumulates into a real delta.
		return nil, false
	}
	it.twoLastMid = mid

	it.scrollAccum += delta * it.cfg.ScrollSensitivity
	notches := int(it.scrollAccum / it.cfg.ScrollThreshold)
	if notches == 0 {
		return nil, false
	}
	it.scrollAccum -= float64(notches) * it.cfg.ScrollThreshold
	// Natural scrolling: content follows the fingers, so the host scroll
	// direction is the inverse of the raw motion.
	return Scroll{Notches: -notches}, true
}

func (it *Interpreter) stepUp(s Sample) (Event, bool) {
	if _, known := it.touches[s.ID]; !known {
		// Up without a matching down corrupts nothing if we just start
		// over from a clean baseline.
		it.resetSequence()
		return nil, false
	}
	delete(it.touches, s.ID)
	lastFinger := s.Fingers <= 1

	switch it.mode {
	case modeSingle:
		ev, ok := it.finishSingle(s.At)
		it.resetSequence()
		return ev, ok

	case modeTwo:
		var ev Event
		var ok bool
		if it.twoReady && math.Abs(it.twoLastSep-it.twoInitSep) < it.cfg.PinchTolerance {
			ev, ok = TwoFingerTap{}, true
		}
		if lastFinger {
			it.resetSequence()
		} else {
			it.mode = modeDrained
		}
		return ev, ok

	default:
		if lastFinger {
			it.resetSequence()
		}
		return nil, false
	}
}

func (it *Interpreter) finishSingle(at time.Time) (Event, bool) {
	if it.dragging {
		return DragEnd{}, true
	}
	if at.Sub(it.downAt) >= it.cfg.TapThreshold || it.pathLen >= it.cfg.MoveThreshold {
		return nil, false
	}
	if it.hasTap && at.Sub(it.tapAt) <= it.cfg.DoubleTapInterval {
		it.hasTap = false
		return DoubleClick{}, true
	}
	it.hasTap = true
	it.tapAt = at
	it.tapLoc = it.last
	return Click{Button: ButtonLeft}, true
}

func (it *Interpreter) stepCancel() (Event, bool) {
	wasDragging := it.dragging
	it.resetSequence()
	if wasDragging {
		// Never leave the host's button pressed.
		return DragEnd{}, true
	}
	return nil, false
}

// resetSequence returns to the idle baseline. Tap memory survives: it spans
// isolated sequences by design and is bounded by its own window.
func (it *Interpreter) resetSequence() {
	it.mode = modeIdle
	clear(it.touches)
	it.pathLen = 0
	it.moving = false
	it.dragArmed = false
	it.dragging = false
	it.twoReady = false
	it.scrollAccum = 0
}

// ExpireTapMemory discards an unclaimed tap record once its window has
// lapsed. This is advisory cleanup: every lookup re-validates the timestamp
// window, so a missed sweep cannot misfire a drag or double-click.
func (it *Interpreter) ExpireTapMemory(now time.Time) bool {
	if !it.hasTap {
		return false
	}
	if now.Sub(it.tapAt) <= it.cfg.DoubleTapDragWindow+it.cfg.TapMemoryGrace {
		return false
	}
	it.hasTap = false
	return true
}
