// Package touchsrc reads multitouch samples from a Linux evdev device.
//
// It is the impure platform adapter in front of the gesture interpreter:
// slot-protocol bookkeeping happens here so the interpreter only ever sees
// clean per-finger samples.
package touchsrc

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/kenshaw/evdev"
	"github.com/rs/zerolog/log"

	"github.com/tapware/touchlink/internal/gesture"
)

// Multitouch protocol B event codes.
const (
	evAbs           = 0x03
	absMTSlot       = 0x2F
	absMTPositionX  = 0x35
	absMTPositionY  = 0x36
	absMTTrackingID = 0x39
)

const maxSlots = 10

type slot struct {
	tracking int32
	x, y     float64
	active   bool

	// pending changes for the current SYN_REPORT window
	began, ended, moved bool
}

// Source converts evdev multitouch reports into gesture samples.
type Source struct {
	dev   *evdev.Evdev
	out   chan<- gesture.Sample
	slots [maxSlots]slot
	cur   int
}

// Open prepares device for reading. The caller owns the out channel.
func Open(device string, out chan<- gesture.Sample) (*Source, error) {
	fd, err := os.OpenFile(device, os.O_RDONLY, 0)
	if err != nil {
		return nil, fmt.Errorf("open touch device %s: %w", device, err)
	}
	d := evdev.Open(fd)
	src := &Source{dev: d, out: out}
	for i := range src.slots {
		// inactive slots carry the kernel's "no contact" sentinel
		src.slots[i].tracking = -1
	}
	log.Info().Str("device", device).Str("name", d.Name()).Msg("touch source opened")
	return src, nil
}

// Run pumps samples until ctx is done or the device disappears.
func (s *Source) Run(ctx context.Context) error {
	defer s.dev.Close()
	ch := s.dev.Poll(ctx)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case env := <-ch:
			if env == nil {
				return fmt.Errorf("touch device removed")
			}
			if env.Type == evdev.SyncReport {
				s.flush(time.Now())
				continue
			}
			s.apply(&env.Event)
		}
	}
}

func (s *Source) apply(ev *evdev.Event) {
	if ev.Type != evAbs {
		return
	}
	switch ev.Code {
	case absMTSlot:
		if int(ev.Value) >= 0 && int(ev.Value) < maxSlots {
			s.cur = int(ev.Value)
		}
	case absMTTrackingID:
		sl := &s.slots[s.cur]
		if ev.Value == -1 {
			if sl.active {
				sl.ended = true
			}
		} else {
			sl.tracking = ev.Value
			sl.began = true
		}
	case absMTPositionX:
		sl := &s.slots[s.cur]
		sl.x = float64(ev.Value)
		if sl.active {
			sl.moved = true
		}
	case absMTPositionY:
		sl := &s.slots[s.cur]
		sl.y = float64(ev.Value)
		if sl.active {
			sl.moved = true
		}
	}
}

// flush emits the samples implied by one SYN_REPORT window: downs first so
// the finger count the interpreter sees includes every new contact.
func (s *Source) flush(at time.Time) {
	active := 0
	for i := range s.slots {
		if s.slots[i].active || s.slots[i].began {
			active++
		}
	}

	for i := range s.slots {
		sl := &s.slots[i]
		if !sl.began {
			continue
		}
		sl.began = false
		sl.moved = false
		sl.active = true
		s.emit(gesture.Sample{
			ID:      int(sl.tracking),
			X:       sl.x,
			Y:       sl.y,
			Phase:   gesture.PhaseDown,
			Fingers: active,
			At:      at,
		})
	}
	for i := range s.slots {
		sl := &s.slots[i]
		if !sl.moved || !sl.active {
			sl.moved = false
			continue
		}
		sl.moved = false
		s.emit(gesture.Sample{
			ID:      int(sl.tracking),
			X:       sl.x,
			Y:       sl.y,
			Phase:   gesture.PhaseMove,
			Fingers: active,
			At:      at,
		})
	}
	for i := range s.slots {
		sl := &s.slots[i]
		if !sl.ended {
			continue
		}
		sl.ended = false
		sl.active = false
		s.emit(gesture.Sample{
			ID:      int(sl.tracking),
			X:       sl.x,
			Y:       sl.y,
			Phase:   gesture.PhaseUp,
			Fingers: active,
			At:      at,
		})
		sl.tracking = -1
		active--
	}
}

func (s *Source) emit(sample gesture.Sample) {
	select {
	case s.out <- sample:
	default:
		// A stalled consumer must not block the event device; dropping a
		// sample is recoverable, wedging the read loop is not.
		log.Warn().Msg("touch sample dropped, consumer backlogged")
	}
}
