package bridge

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/tapware/touchlink/internal/gesture"
	"github.com/tapware/touchlink/internal/gpio"
	"github.com/tapware/touchlink/internal/observability"
	"github.com/tapware/touchlink/internal/protocol"
	"github.com/tapware/touchlink/internal/translate"
	"github.com/tapware/touchlink/internal/transport"
)

// Config configures the bridge runtime.
type Config struct {
	// PingInterval spaces keepalive pings; <=0 disables them.
	PingInterval time.Duration
	// TapSweepInterval spaces the advisory tap-memory expiry sweep.
	TapSweepInterval time.Duration
	// SampleBuffer sizes the inbound touch sample channel.
	SampleBuffer int
	// Gesture holds the interpreter thresholds.
	Gesture gesture.Config
}

// DefaultConfig returns the production bridge defaults.
func DefaultConfig() Config {
	return Config{
		PingInterval:     5 * time.Second,
		TapSweepInterval: 350 * time.Millisecond,
		SampleBuffer:     64,
		Gesture:          gesture.DefaultConfig(),
	}
}

// Service owns the interpreter, the codec boundaries and the link state.
// Samples are processed to completion one at a time inside Run's loop; the
// inbound frame path runs on the transport goroutine and touches only the
// lock-guarded GPIO record and link state.
type Service struct {
	cfg     Config
	tr      transport.Transport
	interp  *gesture.Interpreter
	gpio    *gpio.State
	link    *LinkState
	samples chan gesture.Sample
}

// NewService wires a bridge over tr. The transport's frame callback is
// registered immediately so telemetry is not lost while Run spins up.
func NewService(cfg Config, tr transport.Transport) *Service {
	if cfg.SampleBuffer <= 0 {
		cfg.SampleBuffer = DefaultConfig().SampleBuffer
	}
	if cfg.TapSweepInterval <= 0 {
		cfg.TapSweepInterval = DefaultConfig().TapSweepInterval
	}
	s := &Service{
		cfg:     cfg,
		tr:      tr,
		interp:  gesture.NewInterpreter(cfg.Gesture),
		gpio:    &gpio.State{},
		link:    &LinkState{},
		samples: make(chan gesture.Sample, cfg.SampleBuffer),
	}
	tr.OnFrame(s.handleFrame)
	return s
}

// Samples is the write side of the touch sample stream.
func (s *Service) Samples() chan<- gesture.Sample { return s.samples }

// GPIO exposes the telemetry record for read-only views.
func (s *Service) GPIO() *gpio.State { return s.gpio }

// Link exposes the dongle link state for read-only views.
func (s *Service) Link() *LinkState { return s.link }

// Run drives the sample loop until ctx is done. The interpreter is only
// ever touched from this goroutine.
func (s *Service) Run(ctx context.Context) error {
	sweep := time.NewTicker(s.cfg.TapSweepInterval)
	defer sweep.Stop()

	var ping *time.Ticker
	var pingC <-chan time.Time
	if s.cfg.PingInterval > 0 {
		ping = time.NewTicker(s.cfg.PingInterval)
		defer ping.Stop()
		pingC = ping.C
	}

	log.Info().
		Dur("ping_interval", s.cfg.PingInterval).
		Msg("bridge running")

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case sample := <-s.samples:
			s.ProcessSample(sample)
		case <-sweep.C:
			if s.interp.ExpireTapMemory(time.Now()) {
				log.Trace().Msg("tap memory expired unclaimed")
			}
		case now := <-pingC:
			if err := s.SendCommand(protocol.NewPing(now)); err != nil {
				log.Warn().Err(err).Msg("ping send failed")
			}
		}
	}
}

// ProcessSample steps the interpreter with one sample and ships whatever
// event it yields. Not safe to call concurrently with Run.
func (s *Service) ProcessSample(sample gesture.Sample) {
	ev, ok := s.interp.Step(sample)
	if !ok {
		return
	}
	observability.RecordGesture(eventKind(ev))
	for _, cmd := range translate.Commands(ev) {
		if err := s.SendCommand(cmd); err != nil {
			log.Warn().Err(err).Str("event", eventKind(ev)).Msg("event send failed")
			return
		}
	}
}

// SendCommand encodes cmd and hands it to the transport, fire-and-forget.
func (s *Service) SendCommand(cmd protocol.Command) error {
	frame := protocol.Encode(cmd)
	if err := s.tr.Send(frame); err != nil {
		observability.RecordSendFailure()
		return fmt.Errorf("send %#x command: %w", byte(cmd.Type()), err)
	}
	observability.RecordFrameSent(frame[0])
	return nil
}

// handleFrame decodes one inbound frame and dispatches it. Malformed input
// degrades to a dropped tick.
func (s *Service) handleFrame(frame []byte) {
	resp, err := protocol.Decode(frame)
	if err != nil {
		observability.RecordMalformedFrame()
		log.Debug().Err(err).Int("len", len(frame)).Msg("dropping malformed frame")
		return
	}
	observability.RecordFrameReceived(frame[0])

	switch r := resp.(type) {
	case protocol.GpioState:
		s.gpio.Apply(r)
	case protocol.Pong:
		s.link.notePong(time.Now())
	case protocol.Info:
		s.link.noteInfo(r)
	case protocol.Name:
		s.link.noteName(r.Name)
	case protocol.PinResult:
		s.link.notePinResult(r)
		if !r.Success {
			log.Warn().Uint8("attempts_left", r.AttemptsLeft).Msg("pin rejected")
		}
	case protocol.Status:
		s.link.noteStatus(r)
		if r.Code == protocol.StatusAuthRequired {
			// Core only reports it; prompting for a pin is UI policy.
			log.Warn().Uint8("command", uint8(r.Command)).Msg("dongle requires authentication")
		} else if r.Code != protocol.StatusOK {
			log.Debug().
				Uint8("command", uint8(r.Command)).
				Str("status", r.Code.String()).
				Msg("command rejected")
		}
	case protocol.Unknown:
		log.Debug().Uint8("type", r.Raw).Msg("unknown response type")
	}
}

func eventKind(ev gesture.Event) string {
	switch ev.(type) {
	case gesture.Move:
		return "move"
	case gesture.Click:
		return "click"
	case gesture.DoubleClick:
		return "double_click"
	case gesture.TwoFingerTap:
		return "two_finger_tap"
	case gesture.DragStart:
		return "drag_start"
	case gesture.DragEnd:
		return "drag_end"
	case gesture.Scroll:
		return "scroll"
	default:
		return "unknown"
	}
}
