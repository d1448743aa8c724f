package rpc

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/0xAtelerix/esdt/library/esdt"
)

const (
	outcomeDecoded  = "decoded"
	outcomeRejected = "rejected"
)

var (
	DecodedCallData = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "esdt",
			Subsystem: "rpc",
			Name:      "decoded_total",
			Help:      "Call data items decoded, by transfer kind and outcome",
		},
		[]string{"kind", "outcome"},
	)

	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "esdt",
			Subsystem: "rpc",
			Name:      "request_duration_seconds",
			Help:      "Histogram of JSON-RPC method durations",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "status"},
	)
)

func init() {
	prometheus.MustRegister(
		DecodedCallData,
		RequestDuration,
	)
}

func observeDecode(kind esdt.TransferKind) {
	outcome := outcomeDecoded
	if kind == esdt.None {
		outcome = outcomeRejected
	}

	DecodedCallData.WithLabelValues(kind.String(), outcome).Inc()
}

func observeRequest(method string, start time.Time, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}

	// unregistered names would grow label cardinality without bound
	if errors.Is(err, ErrMethodNotFound) {
		method = "unknown"
	}

	RequestDuration.WithLabelValues(method, status).Observe(time.Since(start).Seconds())
}
