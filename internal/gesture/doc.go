// Package gesture turns a raw multi-touch sample stream into semantic
// pointer events.
//
// The interpreter is a pure state machine: each Step consumes one sample,
// mutates interpreter-owned state and yields at most one event. It never
// blocks, never errors, and knows nothing about transports or platforms;
// malformed sequences (an up with no matching down, a touch cancel) reset
// tracking instead of failing, since a missed reset would corrupt every
// following gesture.
package gesture
