package gesture

import (
	"testing"
	"time"
)

var t0 = time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)

func at(d time.Duration) time.Time { return t0.Add(d) }

func mustEmit[E Event](t *testing.T, it *Interpreter, s Sample) E {
	t.Helper()
	ev, ok := it.Step(s)
	if !ok {
		t.Fatalf("expected an event for sample %+v", s)
	}
	typed, ok := ev.(E)
	if !ok {
		t.Fatalf("expected %T, got %T", typed, ev)
	}
	return typed
}

func mustNotEmit(t *testing.T, it *Interpreter, s Sample) {
	t.Helper()
	if ev, ok := it.Step(s); ok {
		t.Fatalf("expected no event for sample %+v, got %T", s, ev)
	}
}

func TestSingleTapEmitsOneLeftClick(t *testing.T) {
	it := NewInterpreter(Config{})

	mustNotEmit(t, it, Sample{ID: 1, X: 100, Y: 100, Phase: PhaseDown, Fingers: 1, At: at(0)})
	click := mustEmit[Click](t, it, Sample{ID: 1, X: 100, Y: 100, Phase: PhaseUp, Fingers: 1, At: at(50 * time.Millisecond)})
	if click.Button != ButtonLeft {
		t.Fatalf("expected left click, got %v", click.Button)
	}
}

func TestSlowTouchIsNotATap(t *testing.T) {
	it := NewInterpreter(Config{})

	mustNotEmit(t, it, Sample{ID: 1, X: 100, Y: 100, Phase: PhaseDown, Fingers: 1, At: at(0)})
	mustNotEmit(t, it, Sample{ID: 1, X: 100, Y: 100, Phase: PhaseUp, Fingers: 1, At: at(400 * time.Millisecond)})
}

func TestDoubleTapEmitsDoubleClickAndClearsMemory(t *testing.T) {
	it := NewInterpreter(Config{})

	mustNotEmit(t, it, Sample{ID: 1, X: 100, Y: 100, Phase: PhaseDown, Fingers: 1, At: at(0)})
	mustEmit[Click](t, it, Sample{ID: 1, X: 100, Y: 100, Phase: PhaseUp, Fingers: 1, At: at(50 * time.Millisecond)})

	mustNotEmit(t, it, Sample{ID: 2, X: 100, Y: 100, Phase: PhaseDown, Fingers: 1, At: at(150 * time.Millisecond)})
	mustEmit[DoubleClick](t, it, Sample{ID: 2, X: 100, Y: 100, Phase: PhaseUp, Fingers: 1, At: at(200 * time.Millisecond)})

	// Memory was consumed: a third quick tap is a plain click again.
	mustNotEmit(t, it, Sample{ID: 3, X: 100, Y: 100, Phase: PhaseDown, Fingers: 1, At: at(300 * time.Millisecond)})
	mustEmit[Click](t, it, Sample{ID: 3, X: 100, Y: 100, Phase: PhaseUp, Fingers: 1, At: at(350 * time.Millisecond)})
}

func TestTapsTooFarApartInTimeStaySingleClicks(t *testing.T) {
	it := NewInterpreter(Config{})

	mustNotEmit(t, it, Sample{ID: 1, X: 100, Y: 100, Phase: PhaseDown, Fingers: 1, At: at(0)})
	mustEmit[Click](t, it, Sample{ID: 1, X: 100, Y: 100, Phase: PhaseUp, Fingers: 1, At: at(50 * time.Millisecond)})

	mustNotEmit(t, it, Sample{ID: 2, X: 100, Y: 100, Phase: PhaseDown, Fingers: 1, At: at(500 * time.Millisecond)})
	mustEmit[Click](t, it, Sample{ID: 2, X: 100, Y: 100, Phase: PhaseUp, Fingers: 1, At: at(550 * time.Millisecond)})
}

func TestTapThenDragEmitsExactlyOneDragStart(t *testing.T) {
	it := NewInterpreter(Config{})

	// arming tap
	mustNotEmit(t, it, Sample{ID: 1, X: 100, Y: 100, Phase: PhaseDown, Fingers: 1, At: at(0)})
	mustEmit[Click](t, it, Sample{ID: 1, X: 100, Y: 100, Phase: PhaseUp, Fingers: 1, At: at(50 * time.Millisecond)})

	// new down near the tap, inside the drag window
	mustNotEmit(t, it, Sample{ID: 2, X: 105, Y: 100, Phase: PhaseDown, Fingers: 1, At: at(150 * time.Millisecond)})
	// below the move threshold: still nothing
	mustNotEmit(t, it, Sample{ID: 2, X: 108, Y: 100, Phase: PhaseMove, Fingers: 1, At: at(160 * time.Millisecond)})
	// crossing the threshold arms the drag exactly once
	mustEmit[DragStart](t, it, Sample{ID: 2, X: 120, Y: 100, Phase: PhaseMove, Fingers: 1, At: at(170 * time.Millisecond)})

	mv := mustEmit[Move](t, it, Sample{ID: 2, X: 125, Y: 103, Phase: PhaseMove, Fingers: 1, At: at(180 * time.Millisecond)})
	if mv.DX != 5 || mv.DY != 3 {
		t.Fatalf("move delta (%v,%v) want (5,3)", mv.DX, mv.DY)
	}

	mustEmit[DragEnd](t, it, Sample{ID: 2, X: 125, Y: 103, Phase: PhaseUp, Fingers: 1, At: at(400 * time.Millisecond)})
}

func TestDownFarFromRecentTapDoesNotArmDrag(t *testing.T) {
	it := NewInterpreter(Config{})

	mustNotEmit(t, it, Sample{ID: 1, X: 100, Y: 100, Phase: PhaseDown, Fingers: 1, At: at(0)})
	mustEmit[Click](t, it, Sample{ID: 1, X: 100, Y: 100, Phase: PhaseUp, Fingers: 1, At: at(50 * time.Millisecond)})

	// 80px away: outside drag-tap proximity, so crossing the move
	// threshold is plain pointer motion.
	mustNotEmit(t, it, Sample{ID: 2, X: 180, Y: 100, Phase: PhaseDown, Fingers: 1, At: at(150 * time.Millisecond)})
	mustEmit[Move](t, it, Sample{ID: 2, X: 195, Y: 100, Phase: PhaseMove, Fingers: 1, At: at(160 * time.Millisecond)})
	mustNotEmit(t, it, Sample{ID: 2, X: 195, Y: 100, Phase: PhaseUp, Fingers: 1, At: at(170 * time.Millisecond)})
}

func TestJitterSuppressedWhileMoving(t *testing.T) {
	it := NewInterpreter(Config{})

	mustNotEmit(t, it, Sample{ID: 1, X: 100, Y: 100, Phase: PhaseDown, Fingers: 1, At: at(0)})
	mustEmit[Move](t, it, Sample{ID: 1, X: 115, Y: 100, Phase: PhaseMove, Fingers: 1, At: at(10 * time.Millisecond)})
	// 0.3px wobble in both axes stays silent
	mustNotEmit(t, it, Sample{ID: 1, X: 115.3, Y: 100.3, Phase: PhaseMove, Fingers: 1, At: at(20 * time.Millisecond)})
	mustEmit[Move](t, it, Sample{ID: 1, X: 118, Y: 100, Phase: PhaseMove, Fingers: 1, At: at(30 * time.Millisecond)})
}

func TestTwoFingerScrollQuantizedAndInverted(t *testing.T) {
	it := NewInterpreter(Config{})

	mustNotEmit(t, it, Sample{ID: 1, X: 100, Y: 100, Phase: PhaseDown, Fingers: 1, At: at(0)})
	mustNotEmit(t, it, Sample{ID: 2, X: 120, Y: 100, Phase: PhaseDown, Fingers: 2, At: at(10 * time.Millisecond)})

	// midpoint moves +5px down: under one notch
	mustNotEmit(t, it, Sample{ID: 1, X: 100, Y: 110, Phase: PhaseMove, Fingers: 2, At: at(20 * time.Millisecond)})
	// +5px more: 10px accumulated, one 8px notch crossed, inverted sign
	sc := mustEmit[Scroll](t, it, Sample{ID: 2, X: 120, Y: 110, Phase: PhaseMove, Fingers: 2, At: at(30 * time.Millisecond)})
	if sc.Notches != -1 {
		t.Fatalf("notches %d want -1", sc.Notches)
	}

	// remaining 2px of accumulation plus 6px more crosses the next notch
	mustNotEmit(t, it, Sample{ID: 1, X: 100, Y: 114, Phase: PhaseMove, Fingers: 2, At: at(40 * time.Millisecond)})
	sc = mustEmit[Scroll](t, it, Sample{ID: 2, X: 120, Y: 118, Phase: PhaseMove, Fingers: 2, At: at(50 * time.Millisecond)})
	if sc.Notches != -1 {
		t.Fatalf("notches %d want -1", sc.Notches)
	}
}

func TestTwoFingerScrollUpwardGivesPositiveNotches(t *testing.T) {
	it := NewInterpreter(Config{})

	mustNotEmit(t, it, Sample{ID: 1, X: 100, Y: 200, Phase: PhaseDown, Fingers: 1, At: at(0)})
	mustNotEmit(t, it, Sample{ID: 2, X: 130, Y: 200, Phase: PhaseDown, Fingers: 2, At: at(10 * time.Millisecond)})

	mustNotEmit(t, it, Sample{ID: 1, X: 100, Y: 190, Phase: PhaseMove, Fingers: 2, At: at(20 * time.Millisecond)})
	sc := mustEmit[Scroll](t, it, Sample{ID: 2, X: 130, Y: 190, Phase: PhaseMove, Fingers: 2, At: at(30 * time.Millisecond)})
	if sc.Notches != 1 {
		t.Fatalf("notches %d want 1", sc.Notches)
	}
}

func TestSubDeadbandMotionStillAccumulates(t *testing.T) {
	it := NewInterpreter(Config{})

	mustNotEmit(t, it, Sample{ID: 1, X: 100, Y: 100, Phase: PhaseDown, Fingers: 1, At: at(0)})
	mustNotEmit(t, it, Sample{ID: 2, X: 120, Y: 100, Phase: PhaseDown, Fingers: 2, At: at(5 * time.Millisecond)})

	// Each sample moves the midpoint 1.5px: under the 2px deadband, but
	// the reference point holds still so travel is not lost.
	y := 100.0
	emitted := 0
	for i := 0; i < 8; i++ {
		y += 3 // one finger moving 3px shifts the midpoint 1.5px
		if _, ok := it.Step(Sample{ID: 1, X: 100, Y: y, Phase: PhaseMove, Fingers: 2, At: at(time.Duration(10+i*10) * time.Millisecond)}); ok {
			emitted++
		}
	}
	if emitted == 0 {
		t.Fatal("slow continuous scroll never produced a notch")
	}
}

func TestTwoFingerTapWhenNoPinch(t *testing.T) {
	it := NewInterpreter(Config{})

	mustNotEmit(t, it, Sample{ID: 1, X: 100, Y: 100, Phase: PhaseDown, Fingers: 1, At: at(0)})
	mustNotEmit(t, it, Sample{ID: 2, X: 120, Y: 100, Phase: PhaseDown, Fingers: 2, At: at(10 * time.Millisecond)})
	mustEmit[TwoFingerTap](t, it, Sample{ID: 1, X: 100, Y: 100, Phase: PhaseUp, Fingers: 2, At: at(80 * time.Millisecond)})
	// second lift ends the drained sequence silently
	mustNotEmit(t, it, Sample{ID: 2, X: 120, Y: 100, Phase: PhaseUp, Fingers: 1, At: at(90 * time.Millisecond)})
}

func TestPinchSuppressesTwoFingerTap(t *testing.T) {
	it := NewInterpreter(Config{})

	mustNotEmit(t, it, Sample{ID: 1, X: 100, Y: 100, Phase: PhaseDown, Fingers: 1, At: at(0)})
	mustNotEmit(t, it, Sample{ID: 2, X: 120, Y: 100, Phase: PhaseDown, Fingers: 2, At: at(10 * time.Millisecond)})
	// spread to 60px separation without moving the midpoint vertically
	mustNotEmit(t, it, Sample{ID: 1, X: 80, Y: 100, Phase: PhaseMove, Fingers: 2, At: at(20 * time.Millisecond)})
	mustNotEmit(t, it, Sample{ID: 2, X: 140, Y: 100, Phase: PhaseMove, Fingers: 2, At: at(30 * time.Millisecond)})

	mustNotEmit(t, it, Sample{ID: 1, X: 80, Y: 100, Phase: PhaseUp, Fingers: 2, At: at(80 * time.Millisecond)})
	mustNotEmit(t, it, Sample{ID: 2, X: 140, Y: 100, Phase: PhaseUp, Fingers: 1, At: at(90 * time.Millisecond)})
}

func TestLiftedFingerDoesNotRestartSingleTracking(t *testing.T) {
	it := NewInterpreter(Config{})

	mustNotEmit(t, it, Sample{ID: 1, X: 100, Y: 100, Phase: PhaseDown, Fingers: 1, At: at(0)})
	mustNotEmit(t, it, Sample{ID: 2, X: 120, Y: 100, Phase: PhaseDown, Fingers: 2, At: at(10 * time.Millisecond)})
	mustEmit[TwoFingerTap](t, it, Sample{ID: 1, X: 100, Y: 100, Phase: PhaseUp, Fingers: 2, At: at(20 * time.Millisecond)})

	// remaining finger keeps moving: ignored until all fingers lift
	mustNotEmit(t, it, Sample{ID: 2, X: 200, Y: 200, Phase: PhaseMove, Fingers: 1, At: at(30 * time.Millisecond)})
	mustNotEmit(t, it, Sample{ID: 2, X: 200, Y: 200, Phase: PhaseUp, Fingers: 1, At: at(40 * time.Millisecond)})

	// a fresh isolated sequence works normally again
	mustNotEmit(t, it, Sample{ID: 3, X: 50, Y: 50, Phase: PhaseDown, Fingers: 1, At: at(500 * time.Millisecond)})
	mustEmit[Click](t, it, Sample{ID: 3, X: 50, Y: 50, Phase: PhaseUp, Fingers: 1, At: at(550 * time.Millisecond)})
}

func TestThreeFingersAreNoOp(t *testing.T) {
	it := NewInterpreter(Config{})

	mustNotEmit(t, it, Sample{ID: 1, X: 100, Y: 100, Phase: PhaseDown, Fingers: 1, At: at(0)})
	mustNotEmit(t, it, Sample{ID: 2, X: 120, Y: 100, Phase: PhaseDown, Fingers: 2, At: at(10 * time.Millisecond)})
	mustNotEmit(t, it, Sample{ID: 3, X: 140, Y: 100, Phase: PhaseDown, Fingers: 3, At: at(20 * time.Millisecond)})

	mustNotEmit(t, it, Sample{ID: 1, X: 100, Y: 200, Phase: PhaseMove, Fingers: 3, At: at(30 * time.Millisecond)})
	mustNotEmit(t, it, Sample{ID: 1, X: 100, Y: 200, Phase: PhaseUp, Fingers: 3, At: at(40 * time.Millisecond)})
	mustNotEmit(t, it, Sample{ID: 2, X: 120, Y: 100, Phase: PhaseUp, Fingers: 2, At: at(50 * time.Millisecond)})
	mustNotEmit(t, it, Sample{ID: 3, X: 140, Y: 100, Phase: PhaseUp, Fingers: 1, At: at(60 * time.Millisecond)})
}

func TestCancelClosesActiveDrag(t *testing.T) {
	it := NewInterpreter(Config{})

	mustNotEmit(t, it, Sample{ID: 1, X: 100, Y: 100, Phase: PhaseDown, Fingers: 1, At: at(0)})
	mustEmit[Click](t, it, Sample{ID: 1, X: 100, Y: 100, Phase: PhaseUp, Fingers: 1, At: at(50 * time.Millisecond)})
	mustNotEmit(t, it, Sample{ID: 2, X: 100, Y: 100, Phase: PhaseDown, Fingers: 1, At: at(150 * time.Millisecond)})
	mustEmit[DragStart](t, it, Sample{ID: 2, X: 120, Y: 100, Phase: PhaseMove, Fingers: 1, At: at(160 * time.Millisecond)})

	mustEmit[DragEnd](t, it, Sample{ID: 2, X: 120, Y: 100, Phase: PhaseCancel, Fingers: 1, At: at(170 * time.Millisecond)})

	// interpreter is back at a clean baseline
	mustNotEmit(t, it, Sample{ID: 3, X: 300, Y: 300, Phase: PhaseDown, Fingers: 1, At: at(600 * time.Millisecond)})
	mustEmit[Click](t, it, Sample{ID: 3, X: 300, Y: 300, Phase: PhaseUp, Fingers: 1, At: at(650 * time.Millisecond)})
}

func TestUnmatchedUpResetsDefensively(t *testing.T) {
	it := NewInterpreter(Config{})

	mustNotEmit(t, it, Sample{ID: 9, X: 10, Y: 10, Phase: PhaseUp, Fingers: 1, At: at(0)})

	mustNotEmit(t, it, Sample{ID: 1, X: 100, Y: 100, Phase: PhaseDown, Fingers: 1, At: at(100 * time.Millisecond)})
	mustEmit[Click](t, it, Sample{ID: 1, X: 100, Y: 100, Phase: PhaseUp, Fingers: 1, At: at(150 * time.Millisecond)})
}

func TestMoveWithoutDownIsIgnored(t *testing.T) {
	it := NewInterpreter(Config{})
	mustNotEmit(t, it, Sample{ID: 7, X: 10, Y: 10, Phase: PhaseMove, Fingers: 1, At: at(0)})
}

func TestExpireTapMemoryIsAdvisory(t *testing.T) {
	it := NewInterpreter(Config{})

	mustNotEmit(t, it, Sample{ID: 1, X: 100, Y: 100, Phase: PhaseDown, Fingers: 1, At: at(0)})
	mustEmit[Click](t, it, Sample{ID: 1, X: 100, Y: 100, Phase: PhaseUp, Fingers: 1, At: at(50 * time.Millisecond)})

	if it.ExpireTapMemory(at(200 * time.Millisecond)) {
		t.Fatal("tap memory expired inside its window")
	}
	if !it.ExpireTapMemory(at(600 * time.Millisecond)) {
		t.Fatal("tap memory not expired after the grace window")
	}

	// Even without the sweep, lookups re-validate the window: a down long
	// after the tap never arms a drag.
	it2 := NewInterpreter(Config{})
	mustNotEmit(t, it2, Sample{ID: 1, X: 100, Y: 100, Phase: PhaseDown, Fingers: 1, At: at(0)})
	mustEmit[Click](t, it2, Sample{ID: 1, X: 100, Y: 100, Phase: PhaseUp, Fingers: 1, At: at(50 * time.Millisecond)})
	mustNotEmit(t, it2, Sample{ID: 2, X: 100, Y: 100, Phase: PhaseDown, Fingers: 1, At: at(900 * time.Millisecond)})
	mustEmit[Move](t, it2, Sample{ID: 2, X: 120, Y: 100, Phase: PhaseMove, Fingers: 1, At: at(910 * time.Millisecond)})
}

func TestSecondFingerDownClosesActiveDrag(t *testing.T) {
	it := NewInterpreter(Config{})

	mustNotEmit(t, it, Sample{ID: 1, X: 100, Y: 100, Phase: PhaseDown, Fingers: 1, At: at(0)})
	mustEmit[Click](t, it, Sample{ID: 1, X: 100, Y: 100, Phase: PhaseUp, Fingers: 1, At: at(50 * time.Millisecond)})
	mustNotEmit(t, it, Sample{ID: 2, X: 100, Y: 100, Phase: PhaseDown, Fingers: 1, At: at(150 * time.Millisecond)})
	mustEmit[DragStart](t, it, Sample{ID: 2, X: 120, Y: 100, Phase: PhaseMove, Fingers: 1, At: at(160 * time.Millisecond)})

	mustEmit[DragEnd](t, it, Sample{ID: 3, X: 140, Y: 100, Phase: PhaseDown, Fingers: 2, At: at(170 * time.Millisecond)})
}
