package http

import (
	"net/http"

	"github.com/mauv0809/draft-league/internal/audit"
	"github.com/mauv0809/draft-league/internal/config"
	"github.com/mauv0809/draft-league/internal/http/handlers"
	"github.com/mauv0809/draft-league/internal/league"
	"github.com/mauv0809/draft-league/internal/metrics"
	"github.com/mauv0809/draft-league/internal/notifier"
	"github.com/mauv0809/draft-league/internal/pubsub"
)

func NewServer(repo league.Repository, ledger audit.Ledger, metricsSvc metrics.Metrics, metricsHandler http.Handler, cfg config.Config, notifier notifier.Notifier, pubsub pubsub.PubSubClient) *Server {
	server := &Server{
		Repo:           repo,
		Ledger:         ledger,
		Metrics:        metricsSvc,
		MetricsHandler: metricsHandler,
		Cfg:            cfg,
		Notifier:       notifier,
		PubSub:         pubsub,
		Router:         http.NewServeMux(),
	}

	server.routes()
	return server
}

func (s *Server) routes() {
	// All handlers are wrapped with middleware using the Chain helper.
	// e.g. Chain(s.MyHandler(), paramsMiddleware, authMiddleware)
	slackAuth := slackVerificationMiddleware(s.Cfg.Slack.SigningSecret)

	s.Router.Handle("GET /metrics", s.MetricsHandler)
	s.Router.Handle("GET /health", Chain(handlers.HealthCheckHandler(), paramsMiddleware))

	s.Router.Handle("GET /players", Chain(handlers.ListPlayersHandler(s.Repo), paramsMiddleware))
	s.Router.Handle("POST /players", Chain(handlers.RegisterPlayerHandler(s.Repo, s.PubSub), paramsMiddleware))
	s.Router.Handle("GET /players/{discordID}", Chain(handlers.GetPlayerHandler(s.Repo), paramsMiddleware))
	s.Router.Handle("GET /players/{discordID}/standing", Chain(handlers.PlayerStandingHandler(s.Repo), paramsMiddleware))
	s.Router.Handle("GET /players/{discordID}/played", Chain(handlers.HasPlayedSetHandler(s.Repo), paramsMiddleware))
	s.Router.Handle("PUT /players/{discordID}/role", Chain(handlers.SetRoleHandler(s.Repo), paramsMiddleware))
	s.Router.Handle("PUT /players/{discordID}/friend-code", Chain(handlers.SetFriendCodeHandler(s.Repo), paramsMiddleware))
	s.Router.Handle("POST /players/{discordID}/penalties", Chain(handlers.PenalizePlayerHandler(s.Repo, s.PubSub), paramsMiddleware))

	s.Router.Handle("GET /maps", Chain(handlers.MapListHandler(s.Repo), paramsMiddleware))
	s.Router.Handle("POST /sets", Chain(handlers.ReportSetHandler(s.Repo, s.PubSub), paramsMiddleware))
	s.Router.Handle("GET /leaderboard", Chain(handlers.LeaderboardHandler(s.Repo), paramsMiddleware))

	s.Router.Handle("GET /audit/orphans", Chain(handlers.OrphanedAdjustmentsHandler(s.Ledger), paramsMiddleware))
	s.Router.Handle("GET /audit/recent", Chain(handlers.RecentWritesHandler(s.Ledger), paramsMiddleware))

	s.Router.Handle("POST /pubsub/set-reported", Chain(handlers.SetReportedHandler(s.Notifier, s.PubSub), paramsMiddleware))
	s.Router.Handle("POST /pubsub/player-penalized", Chain(handlers.PlayerPenalizedHandler(s.Notifier, s.PubSub), paramsMiddleware))
	s.Router.Handle("POST /pubsub/player-registered", Chain(handlers.PlayerRegisteredHandler(s.Notifier, s.PubSub), paramsMiddleware))

	s.Router.Handle("POST /slack/command/standing", Chain(handlers.StandingCommandHandler(s.Repo, s.Notifier), paramsMiddleware, slackAuth))
	s.Router.Handle("POST /slack/command/leaderboard", Chain(handlers.LeaderboardCommandHandler(s.Repo, s.Notifier), paramsMiddleware, slackAuth))
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Router.ServeHTTP(w, r)
}
