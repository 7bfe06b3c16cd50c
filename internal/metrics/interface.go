package metrics

// Metrics defines the interface for collecting application metrics.
// This decouples the application from the specific metrics implementation (e.g., Prometheus).
type Metrics interface {
	IncStoreRequests(operation, table string)
	IncStoreFailures(operation, table string)
	ObservePagesFetched(table string, pages int)
	IncSilentWriteFailures(field string)
	IncOrphanedAdjustments()
	IncEventsPublished(event string)
	IncSlackNotifSent()
	IncSlackNotifFailed()
	SetStartupTime(duration float64)
}
