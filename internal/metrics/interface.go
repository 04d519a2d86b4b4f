package metrics

// Metrics defines the interface for collecting application metrics.
// This decouples the application from the specific metrics implementation (e.g., Prometheus).
type Metrics interface {
	IncMatchesCreated()
	IncMatchesJoined()
	IncMatchesCompleted()
	IncJoinConflicts()
	IncActivationsDelivered()
	IncScoreUpdates()
	IncSlotNotFound()
	ObserveMatchmakingDuration(duration float64)
	SetStartupTime(duration float64)
}

// MetricsStore defines persistent operational counters kept in the
// shared store, next to the Prometheus metrics.
type MetricsStore interface {
	Increment(key string)
	GetAll() (map[string]int, error)
}
