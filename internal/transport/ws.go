package transport

import (
	"fmt"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

// WS links to a dongle bridge over a websocket, one binary message per
// frame. Message boundaries replace the stream framer.
type WS struct {
	conn *websocket.Conn

	mu      sync.Mutex
	onFrame func([]byte)
	closed  bool
}

// DialWS connects to url and starts the read pump.
func DialWS(url string) (*WS, error) {
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		return nil, fmt.Errorf("dial websocket %s: %w", url, err)
	}
	w := &WS{conn: conn}
	go w.readPump()
	return w, nil
}

func (w *WS) Send(frame []byte) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return ErrClosed
	}
	if err := w.conn.WriteMessage(websocket.BinaryMessage, frame); err != nil {
		return fmt.Errorf("websocket write: %w", err)
	}
	return nil
}

func (w *WS) OnFrame(fn func([]byte)) {
	w.mu.Lock()
	w.onFrame = fn
	w.mu.Unlock()
}

func (w *WS) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	w.mu.Unlock()
	return w.conn.Close()
}

func (w *WS) readPump() {
	for {
		kind, data, err := w.conn.ReadMessage()
		if err != nil {
			w.mu.Lock()
			closed := w.closed
			w.mu.Unlock()
			if !closed {
				log.Warn().Err(err).Msg("websocket read pump stopped")
			}
			return
		}
		if kind != websocket.BinaryMessage {
			continue
		}
		w.mu.Lock()
		fn := w.onFrame
		w.mu.Unlock()
		if fn == nil {
			log.Debug().Int("len", len(data)).Msg("dropping frame, no handler registered")
			continue
		}
		fn(data)
	}
}
