package http

import (
	"net/http"

	"github.com/mauv0809/draft-league/internal/audit"
	"github.com/mauv0809/draft-league/internal/config"
	"github.com/mauv0809/draft-league/internal/league"
	"github.com/mauv0809/draft-league/internal/metrics"
	"github.com/mauv0809/draft-league/internal/notifier"
	"github.com/mauv0809/draft-league/internal/pubsub"
)

type Server struct {
	Repo           league.Repository
	Ledger         audit.Ledger
	Metrics        metrics.Metrics
	MetricsHandler http.Handler
	Cfg            config.Config
	Notifier       notifier.Notifier
	PubSub         pubsub.PubSubClient
	Router         *http.ServeMux
}
