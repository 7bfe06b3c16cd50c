package metrics

import "github.com/prometheus/client_golang/prometheus"

// Service holds all the Prometheus metrics for the application.
type Service struct {
	StoreRequests       *prometheus.CounterVec
	StoreFailures       *prometheus.CounterVec
	PagesFetched        *prometheus.HistogramVec
	SilentWriteFailures *prometheus.CounterVec
	OrphanedAdjustments prometheus.Counter
	EventsPublished     *prometheus.CounterVec
	SlackNotifSent      prometheus.Counter
	SlackNotifFailed    prometheus.Counter
	StartupTimeSeconds  prometheus.Gauge
}
