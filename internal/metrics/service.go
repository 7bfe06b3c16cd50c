package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var _ Metrics = (*Service)(nil)

// NewMetricsHandler returns an http.Handler for the given Gatherer.
// If no gatherer is provided, it uses the default one.
func NewMetricsHandler(gatherer ...prometheus.Gatherer) http.Handler {
	gath := prometheus.DefaultGatherer
	if len(gatherer) > 0 {
		gath = gatherer[0]
	}
	return promhttp.HandlerFor(gath, promhttp.HandlerOpts{})
}

// NewService creates and registers the Prometheus metrics.
// If no registerer is provided, it uses the default Prometheus registerer.
func NewService(registerer ...prometheus.Registerer) *Service {
	reg := prometheus.DefaultRegisterer
	if len(registerer) > 0 {
		reg = registerer[0]
	}

	s := &Service{
		StoreRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "league_store_requests_total",
			Help: "The total number of requests sent to the Airtable store.",
		}, []string{"operation", "table"}),
		StoreFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "league_store_failures_total",
			Help: "The total number of Airtable requests that failed or were rejected.",
		}, []string{"operation", "table"}),
		PagesFetched: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "league_store_pages_fetched",
			Help:    "The number of pages needed to read a full table.",
			Buckets: []float64{1, 2, 3, 5, 10, 20, 50},
		}, []string{"table"}),
		SilentWriteFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "league_silent_write_failures_total",
			Help: "The total number of single-field writes that failed without raising.",
		}, []string{"field"}),
		OrphanedAdjustments: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "league_orphaned_adjustments_total",
			Help: "The total number of adjustment records created without a player back-reference.",
		}),
		EventsPublished: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "league_events_published_total",
			Help: "The total number of league events published to pub/sub.",
		}, []string{"event"}),
		SlackNotifSent: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "league_slack_notifications_sent_total",
			Help: "The total number of Slack notifications successfully sent.",
		}),
		SlackNotifFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "league_slack_notifications_failed_total",
			Help: "The total number of Slack notifications that failed to send.",
		}),
		StartupTimeSeconds: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "league_startup_duration_seconds",
			Help: "The duration of the application startup in seconds.",
		}),
	}

	reg.MustRegister(
		s.StoreRequests,
		s.StoreFailures,
		s.PagesFetched,
		s.SilentWriteFailures,
		s.OrphanedAdjustments,
		s.EventsPublished,
		s.SlackNotifSent,
		s.SlackNotifFailed,
		s.StartupTimeSeconds,
	)

	return s
}

func (s *Service) IncStoreRequests(operation, table string) {
	s.StoreRequests.WithLabelValues(operation, table).Inc()
}

func (s *Service) IncStoreFailures(operation, table string) {
	s.StoreFailures.WithLabelValues(operation, table).Inc()
}

func (s *Service) ObservePagesFetched(table string, pages int) {
	s.PagesFetched.WithLabelValues(table).Observe(float64(pages))
}

func (s *Service) IncSilentWriteFailures(field string) {
	s.SilentWriteFailures.WithLabelValues(field).Inc()
}

func (s *Service) IncOrphanedAdjustments() {
	s.OrphanedAdjustments.Inc()
}

func (s *Service) IncEventsPublished(event string) {
	s.EventsPublished.WithLabelValues(event).Inc()
}

func (s *Service) IncSlackNotifSent() {
	s.SlackNotifSent.Inc()
}

func (s *Service) IncSlackNotifFailed() {
	s.SlackNotifFailed.Inc()
}

func (s *Service) SetStartupTime(duration float64) {
	s.StartupTimeSeconds.Set(duration)
}
