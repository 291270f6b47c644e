package transport

import (
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"
	"github.com/tarm/serial"
)

// Serial links to a dongle over a serial device (USB CDC or UART).
type Serial struct {
	port *serial.Port

	mu      sync.Mutex
	onFrame func([]byte)
	closed  bool
}

// DialSerial opens the serial device and starts the read pump.
func DialSerial(device string, baud int) (*Serial, error) {
	port, err := serial.OpenPort(&serial.Config{Name: device, Baud: baud})
	if err != nil {
		return nil, fmt.Errorf("open serial port %s: %w", device, err)
	}
	s := &Serial{port: port}
	go s.readPump()
	return s, nil
}

func (s *Serial) Send(frame []byte) error {
	s.mu.Lock()
	closed := s.closed
	s.mu.Unlock()
	if closed {
		return ErrClosed
	}
	if _, err := s.port.Write(frame); err != nil {
		return fmt.Errorf("serial write: %w", err)
	}
	return nil
}

func (s *Serial) OnFrame(fn func([]byte)) {
	s.mu.Lock()
	s.onFrame = fn
	s.mu.Unlock()
}

func (s *Serial) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	s.mu.Unlock()
	return s.port.Close()
}

func (s *Serial) readPump() {
	var framer Framer
	buf := make([]byte, 256)
	for {
		n, err := s.port.Read(buf)
		if err != nil {
			s.mu.Lock()
			closed := s.closed
			s.mu.Unlock()
			if !closed {
				log.Warn().Err(err).Msg("serial read pump stopped")
			}
			return
		}
		framer.Feed(buf[:n], s.deliver)
	}
}

func (s *Serial) deliver(frame []byte) {
	s.mu.Lock()
	fn := s.onFrame
	s.mu.Unlock()
	if fn == nil {
		log.Debug().Int("len", len(frame)).Msg("dropping frame, no handler registered")
		return
	}
	fn(frame)
}
