// Package bridge runs the sample-to-frame pipeline.
//
// Outbound: touch samples step the gesture interpreter, semantic events are
// translated into commands, encoded and handed to the transport. Inbound:
// transport frames are decoded and dispatched onto the GPIO record and the
// link state; malformed frames are counted and dropped, never fatal.
package bridge
