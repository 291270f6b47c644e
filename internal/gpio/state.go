// Package gpio keeps the last telemetry snapshot reported by the dongle.
package gpio

import (
	"sync"

	"github.com/tapware/touchlink/internal/protocol"
)

// ADC full-scale reference on the dongle.
const (
	adcMax       = 4095
	referenceV   = 3.6
	analogInputs = 2
)

// State is the process-wide GPIO record. It has a single writer (the inbound
// frame dispatcher) and any number of readers; the lock only guards against
// read-during-write tearing. Readers must tolerate staleness between
// telemetry refreshes.
type State struct {
	mu    sync.RWMutex
	led   byte
	relay byte
	din   byte
	ain   [analogInputs]uint16
	seen  bool
}

// Snapshot is a consistent copy of the record for serialization.
type Snapshot struct {
	Led   byte      `json:"led"`
	Relay byte      `json:"relay"`
	Din   byte      `json:"din"`
	Ain   []uint16  `json:"ain"`
	Volts []float64 `json:"volts"`
	Seen  bool      `json:"seen"`
}

// Apply overwrites the record with a freshly decoded telemetry frame.
func (s *State) Apply(f protocol.GpioState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.led = f.Led
	s.relay = f.Relay
	s.din = f.Din
	s.ain[0] = f.Ain0
	s.ain[1] = f.Ain1
	s.seen = true
}

// LedOn reports whether LED channel i is lit.
func (s *State) LedOn(i int) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return bit(s.led, i)
}

// RelayOn reports whether relay channel i is closed.
func (s *State) RelayOn(i int) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return bit(s.relay, i)
}

// DinActive reports whether digital input i is asserted.
func (s *State) DinActive(i int) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return bit(s.din, i)
}

// Voltage converts analog input i to volts against the 3.6V reference.
// Out-of-range channels read 0.
func (s *State) Voltage(i int) float64 {
	if i < 0 || i >= analogInputs {
		return 0
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return float64(s.ain[i]) / adcMax * referenceV
}

// Snapshot copies the record under the read lock.
func (s *State) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	volts := make([]float64, analogInputs)
	ain := make([]uint16, analogInputs)
	for i, v := range s.ain {
		ain[i] = v
		volts[i] = float64(v) / adcMax * referenceV
	}
	return Snapshot{Led: s.led, Relay: s.relay, Din: s.din, Ain: ain, Volts: volts, Seen: s.seen}
}

func bit(mask byte, i int) bool {
	if i < 0 || i > 7 {
		return false
	}
	return mask&(1<<uint(i)) != 0
}
