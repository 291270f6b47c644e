// Package observability owns the prometheus metrics for the daemon.
package observability

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce sync.Once

	framesSent = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "touchlink",
			Subsystem: "link",
			Name:      "frames_sent_total",
			Help:      "Frames sent to the dongle, by command type byte.",
		},
		[]string{"type"},
	)
	framesReceived = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "touchlink",
			Subsystem: "link",
			Name:      "frames_received_total",
			Help:      "Frames received from the dongle, by response type byte.",
		},
		[]string{"type"},
	)
	framesMalformed = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "touchlink",
			Subsystem: "link",
			Name:      "frames_malformed_total",
			Help:      "Inbound frames dropped as malformed.",
		},
	)
	sendFailures = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "touchlink",
			Subsystem: "link",
			Name:      "send_failures_total",
			Help:      "Frames the transport refused to send.",
		},
	)
	gesturesEmitted = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "touchlink",
			Subsystem: "gesture",
			Name:      "events_total",
			Help:      "Semantic events produced by the interpreter, by kind.",
		},
		[]string{"kind"},
	)
)

func RegisterMetrics() {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			framesSent,
			framesReceived,
			framesMalformed,
			sendFailures,
			gesturesEmitted,
		)
	})
}

func RecordFrameSent(typeByte byte) {
	framesSent.WithLabelValues(hexLabel(typeByte)).Inc()
}

func RecordFrameReceived(typeByte byte) {
	framesReceived.WithLabelValues(hexLabel(typeByte)).Inc()
}

func RecordMalformedFrame() {
	framesMalformed.Inc()
}

func RecordSendFailure() {
	sendFailures.Inc()
}

func RecordGesture(kind string) {
	gesturesEmitted.WithLabelValues(kind).Inc()
}

const hexDigits = "0123456789abcdef"

func hexLabel(b byte) string {
	return "0x" + string([]byte{hexDigits[b>>4], hexDigits[b&0x0F]})
}
