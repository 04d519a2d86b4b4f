package http

import (
	"net/http"

	"github.com/mavikus/quizduel/internal/config"
	"github.com/mavikus/quizduel/internal/match"
	"github.com/mavikus/quizduel/internal/matchmaker"
	"github.com/mavikus/quizduel/internal/metrics"
	"github.com/mavikus/quizduel/internal/players"
	"github.com/mavikus/quizduel/internal/pubsub"
	"github.com/mavikus/quizduel/internal/questions"
)

func NewServer(matches match.MatchStore, playerStore players.PlayerStore, questionStore questions.QuestionStore, mm *matchmaker.Matchmaker, metricsSvc metrics.Metrics, metricsHandler http.Handler, stats metrics.MetricsStore, cfg config.Config, pubsub pubsub.PubSubClient) *Server {
	server := &Server{
		Matches:        matches,
		Players:        playerStore,
		Questions:      questionStore,
		Matchmaker:     mm,
		Metrics:        metricsSvc,
		MetricsHandler: metricsHandler,
		Stats:          stats,
		Cfg:            cfg,
		Router:         http.NewServeMux(),
		pubsub:         pubsub,
	}

	server.routes()
	return server
}

func (s *Server) routes() {
	// All handlers are wrapped with middleware using the Chain helper.
	// This makes it easy to add more middlewares in the future, like an authentication middleware.
	// e.g. Chain(s.MyHandler(), paramsMiddleware, authMiddleware)
	s.Router.Handle("/metrics", s.MetricsHandler)
	s.Router.Handle("/health", Chain(s.HealthCheckHandler(), paramsMiddleware))
	s.Router.Handle("/clear", Chain(s.ClearStoreHandler(), paramsMiddleware))
	s.Router.Handle("/matchmake", Chain(s.MatchmakeHandler(), paramsMiddleware))
	s.Router.Handle("/score", Chain(s.ScoreHandler(), paramsMiddleware))
	s.Router.Handle("/complete", Chain(s.CompleteMatchHandler(), paramsMiddleware))
	s.Router.Handle("/match", Chain(s.GetMatchHandler(), paramsMiddleware))
	s.Router.Handle("/my-matches", Chain(s.MyMatchesHandler(), paramsMiddleware))
	s.Router.Handle("/waiting", Chain(s.WaitingMatchesHandler(), paramsMiddleware))
	s.Router.Handle("/questions", Chain(s.QuestionsHandler(), paramsMiddleware))
	s.Router.Handle("/stats", Chain(s.StatsHandler(), paramsMiddleware))
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Router.ServeHTTP(w, r)
}
