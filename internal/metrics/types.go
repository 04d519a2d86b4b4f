package metrics

import "github.com/prometheus/client_golang/prometheus"

// Service holds all the Prometheus metrics for the application.
// By defining them all in one place, we ensure consistency in naming and labeling.
type Service struct {
	MatchesCreated       prometheus.Counter
	MatchesJoined        prometheus.Counter
	MatchesCompleted     prometheus.Counter
	JoinConflicts        prometheus.Counter
	ActivationsDelivered prometheus.Counter
	ScoreUpdates         prometheus.Counter
	SlotNotFound         prometheus.Counter
	MatchmakingDuration  prometheus.Histogram
	StartupTimeSeconds   prometheus.Gauge
}
