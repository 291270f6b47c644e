// Package translate maps semantic pointer events onto wire commands.
package translate

import (
	"github.com/tapware/touchlink/internal/gesture"
	"github.com/tapware/touchlink/internal/protocol"
)

// Commands converts one semantic event into the command frames it takes on
// the wire. Most events are 1:1; a double-click is two click frames.
func Commands(ev gesture.Event) []protocol.Command {
	switch e := ev.(type) {
	case gesture.Move:
		return []protocol.Command{protocol.MouseMove{
			DX: clampI16(e.DX),
			DY: clampI16(e.DY),
		}}
	case gesture.Click:
		return []protocol.Command{protocol.MouseClick{
			Button: button(e.Button),
			Action: protocol.ActionTap,
		}}
	case gesture.DoubleClick:
		click := protocol.MouseClick{Button: protocol.ButtonLeft, Action: protocol.ActionTap}
		return []protocol.Command{click, click}
	case gesture.TwoFingerTap:
		return []protocol.Command{protocol.MouseClick{
			Button: protocol.ButtonRight,
			Action: protocol.ActionTap,
		}}
	case gesture.DragStart:
		return []protocol.Command{protocol.DragStart{}}
	case gesture.DragEnd:
		return []protocol.Command{protocol.DragEnd{}}
	case gesture.Scroll:
		return []protocol.Command{protocol.MouseScroll{
			V: clampI8(e.Notches),
		}}
	default:
		return nil
	}
}

func button(b gesture.Button) protocol.Button {
	switch b {
	case gesture.ButtonRight:
		return protocol.ButtonRight
	case gesture.ButtonMiddle:
		return protocol.ButtonMiddle
	default:
		return protocol.ButtonLeft
	}
}

func clampI16(v float64) int16 {
	switch {
	case v > 32767:
		return 32767
	case v < -32768:
		return -32768
	default:
		return int16(v)
	}
}

func clampI8(v int) int8 {
	switch {
	case v > 127:
		return 127
	case v < -128:
		return -128
	default:
		return int8(v)
	}
}
