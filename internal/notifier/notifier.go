package notifier

import (
	"github.com/mauv0809/draft-league/internal/league"
	"github.com/mauv0809/draft-league/internal/pubsub"
)

// Notifier defines a high-level interface for sending notifications about league events.
// This decouples the rest of the application from the specific notification provider (e.g., Slack).
type Notifier interface {
	// For league events delivered through pub/sub
	SendSetReport(event pubsub.SetReportedEvent, dryRun bool) error
	SendPenaltyNotice(event pubsub.PlayerPenalizedEvent, dryRun bool) error
	SendRegistrationNotice(event pubsub.PlayerRegisteredEvent, dryRun bool) error

	// For formatting responses for slash commands
	FormatStandingResponse(player league.Player, standing league.Standing) (any, error)
	FormatLeaderboardResponse(board []league.RankedPlayer) (any, error)
	FormatPlayerNotFoundResponse(query string) (any, error)
}
