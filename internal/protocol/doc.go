// Package protocol owns the dongle wire contract.
//
// Ownership boundary:
// - frame header and payload layout
// - command encoding
// - response decoding and telemetry records
//
// Every frame is [type:u8][len:u8][payload:len bytes]; multi-byte numeric
// fields are little-endian. Encode and Decode are pure and safe to call
// from any goroutine.
package protocol
