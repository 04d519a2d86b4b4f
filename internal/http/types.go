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

type Server struct {
	Matches        match.MatchStore
	Players        players.PlayerStore
	Questions      questions.QuestionStore
	Matchmaker     *matchmaker.Matchmaker
	Metrics        metrics.Metrics
	MetricsHandler http.Handler
	Stats          metrics.MetricsStore
	Cfg            config.Config
	Router         *http.ServeMux
	pubsub         pubsub.PubSubClient
}
