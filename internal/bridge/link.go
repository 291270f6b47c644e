package bridge

import (
	"sync"
	"time"

	"github.com/tapware/touchlink/internal/protocol"
)

// LinkState tracks what the dongle last told us. Written by the inbound
// dispatch, read by the HTTP surface.
type LinkState struct {
	mu sync.RWMutex

	lastPongAt time.Time
	info       protocol.Info
	hasInfo    bool
	name       string
	hasName    bool
	lastStatus protocol.Status
	hasStatus  bool
	pinResult  protocol.PinResult
	hasPin     bool
	authNeeded bool
}

// LinkSnapshot is a consistent copy for serialization.
type LinkSnapshot struct {
	LastPongAt   time.Time           `json:"last_pong_at"`
	Info         *protocol.Info      `json:"info,omitempty"`
	Name         string              `json:"name,omitempty"`
	LastStatus   *protocol.Status    `json:"last_status,omitempty"`
	PinResult    *protocol.PinResult `json:"pin_result,omitempty"`
	AuthRequired bool                `json:"auth_required"`
}

func (l *LinkState) notePong(at time.Time) {
	l.mu.Lock()
	l.lastPongAt = at
	l.mu.Unlock()
}

func (l *LinkState) noteInfo(info protocol.Info) {
	l.mu.Lock()
	l.info = info
	l.hasInfo = true
	l.mu.Unlock()
}

func (l *LinkState) noteName(name string) {
	l.mu.Lock()
	l.name = name
	l.hasName = true
	l.mu.Unlock()
}

func (l *LinkState) notePinResult(r protocol.PinResult) {
	l.mu.Lock()
	l.pinResult = r
	l.hasPin = true
	if r.Success {
		l.authNeeded = false
	}
	l.mu.Unlock()
}

func (l *LinkState) noteStatus(st protocol.Status) {
	l.mu.Lock()
	l.lastStatus = st
	l.hasStatus = true
	if st.Code == protocol.StatusAuthRequired {
		l.authNeeded = true
	}
	l.mu.Unlock()
}

// Snapshot copies the link state under the read lock.
func (l *LinkState) Snapshot() LinkSnapshot {
	l.mu.RLock()
	defer l.mu.RUnlock()
	snap := LinkSnapshot{
		LastPongAt:   l.lastPongAt,
		AuthRequired: l.authNeeded,
	}
	if l.hasInfo {
		info := l.info
		snap.Info = &info
	}
	if l.hasName {
		snap.Name = l.name
	}
	if l.hasStatus {
		st := l.lastStatus
		snap.LastStatus = &st
	}
	if l.hasPin {
		pr := l.pinResult
		snap.PinResult = &pr
	}
	return snap
}
