package protocol

// Encode serializes cmd into a complete frame. The length byte always equals
// len(frame)-2.
func Encode(cmd Command) []byte {
	frame := make([]byte, 2, 2+8)
	frame[0] = byte(cmd.Type())
	frame = cmd.appendPayload(frame)
	frame[1] = byte(len(frame) - 2)
	return frame
}
