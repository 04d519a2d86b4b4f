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
		MatchesCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "quizduel_matches_created_total",
			Help: "The total number of matches created in the waiting state.",
		}),
		MatchesJoined: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "quizduel_matches_joined_total",
			Help: "The total number of waiting matches successfully joined.",
		}),
		MatchesCompleted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "quizduel_matches_completed_total",
			Help: "The total number of matches transitioned to completed.",
		}),
		JoinConflicts: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "quizduel_join_conflicts_total",
			Help: "The total number of conditional joins lost to a concurrent requester.",
		}),
		ActivationsDelivered: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "quizduel_activations_delivered_total",
			Help: "The total number of waiting-to-active transitions delivered to creators.",
		}),
		ScoreUpdates: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "quizduel_score_updates_total",
			Help: "The total number of score deltas applied.",
		}),
		SlotNotFound: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "quizduel_slot_not_found_total",
			Help: "The total number of score updates rejected because the user holds no slot.",
		}),
		MatchmakingDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "quizduel_matchmaking_duration_seconds",
			Help:    "The duration of individual find-or-create calls.",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),
		StartupTimeSeconds: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "quizduel_startup_duration_seconds",
			Help: "The duration of the application startup in seconds.",
		}),
	}

	reg.MustRegister(
		s.MatchesCreated,
		s.MatchesJoined,
		s.MatchesCompleted,
		s.JoinConflicts,
		s.ActivationsDelivered,
		s.ScoreUpdates,
		s.SlotNotFound,
		s.MatchmakingDuration,
		s.StartupTimeSeconds,
	)

	return s
}

func (s *Service) IncMatchesCreated() {
	s.MatchesCreated.Inc()
}

func (s *Service) IncMatchesJoined() {
	s.MatchesJoined.Inc()
}

func (s *Service) IncMatchesCompleted() {
	s.MatchesCompleted.Inc()
}

func (s *Service) IncJoinConflicts() {
	s.JoinConflicts.Inc()
}

func (s *Service) IncActivationsDelivered() {
	s.ActivationsDelivered.Inc()
}

func (s *Service) IncScoreUpdates() {
	s.ScoreUpdates.Inc()
}

func (s *Service) IncSlotNotFound() {
	s.SlotNotFound.Inc()
}

func (s *Service) ObserveMatchmakingDuration(duration float64) {
	s.MatchmakingDuration.Observe(duration)
}

func (s *Service) SetStartupTime(duration float64) {
	s.StartupTimeSeconds.Set(duration)
}
