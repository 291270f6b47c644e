package transport

// Framer reassembles [type][len][payload] frames from an arbitrary split of
// stream reads. It carries partial frames across Feed calls; serial reads in
// particular deliver frames in fragments.
type Framer struct {
	buf []byte
}

// Feed appends data and invokes emit once per complete frame, in order.
func (f *Framer) Feed(data []byte, emit func(frame []byte)) {
	f.buf = append(f.buf, data...)
	for {
		if len(f.buf) < 2 {
			return
		}
		total := 2 + int(f.buf[1])
		if len(f.buf) < total {
			return
		}
		frame := make([]byte, total)
		copy(frame, f.buf[:total])
		f.buf = f.buf[total:]
		emit(frame)
	}
}

// Reset discards any buffered partial frame.
func (f *Framer) Reset() {
	f.buf = f.buf[:0]
}
