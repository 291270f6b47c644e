// Package transport delivers encoded frames to the receiver dongle and
// pushes received frames back up.
//
// The dongle link is fire-and-forget: Send surfaces transport errors, never
// delivery outcomes. Connection lifecycle policy (retries, pairing) belongs
// to the daemon, not here.
package transport

import "errors"

var (
	ErrClosed   = errors.New("transport: closed")
	ErrNotReady = errors.New("transport: link not ready")
)

// Transport is the byte link consumed by the bridge.
type Transport interface {
	// Send writes one complete frame.
	Send(frame []byte) error
	// OnFrame registers the callback invoked with each complete inbound
	// frame. Frames arriving before registration are dropped.
	OnFrame(fn func(frame []byte))
	Close() error
}
