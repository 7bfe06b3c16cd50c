package pubsub

import (
	"sync"
	"time"

	"cloud.google.com/go/pubsub"
	"github.com/google/uuid"
	"github.com/mauv0809/draft-league/internal/league"
	"github.com/mauv0809/draft-league/internal/metrics"
)

type client struct {
	client  *pubsub.Client
	metrics metrics.Metrics

	mu     sync.Mutex
	topics map[EventType]*pubsub.Topic
}

// EventType represents the type of event/message sent via pubsub.
// The value doubles as the topic name.
type EventType string

const (
	EventSetReported      EventType = "set-reported"
	EventPlayerPenalized  EventType = "player-penalized"
	EventPlayerRegistered EventType = "player-registered"
)

// SetReportedEvent is published after a Draft Log record was created.
type SetReportedEvent struct {
	ID         string         `msgpack:"id"`
	RecordID   string         `msgpack:"record_id"`
	ReportedAt time.Time      `msgpack:"reported_at"`
	AlphaScore int            `msgpack:"alpha_score"`
	BravoScore int            `msgpack:"bravo_score"`
	AlphaTally map[string]int `msgpack:"alpha_tally"`
	BravoTally map[string]int `msgpack:"bravo_tally"`
	Gain       float64        `msgpack:"gain"`
	Loss       float64        `msgpack:"loss"`
	Stages     []string       `msgpack:"stages"`
}

// PlayerPenalizedEvent is published after an Adjustment was created. Linked
// is false when the player record could not be updated.
type PlayerPenalizedEvent struct {
	ID           string `msgpack:"id"`
	DiscordID    uint64 `msgpack:"discord_id"`
	AdjustmentID string `msgpack:"adjustment_id"`
	Points       int    `msgpack:"points"`
	Notes        string `msgpack:"notes"`
	Linked       bool   `msgpack:"linked"`
}

// PlayerRegisteredEvent is published after a new standings record was created.
type PlayerRegisteredEvent struct {
	ID            string  `msgpack:"id"`
	DiscordID     uint64  `msgpack:"discord_id"`
	Name          string  `msgpack:"name"`
	StartingPower float64 `msgpack:"starting_power"`
}

func NewSetReportedEvent(set league.Set, report league.SetReport) SetReportedEvent {
	stages := make([]string, 0, len(set.Stages))
	for _, stage := range set.Stages {
		stages = append(stages, stage.String())
	}
	return SetReportedEvent{
		ID:         uuid.NewString(),
		RecordID:   report.RecordID,
		ReportedAt: report.ReportedAt,
		AlphaScore: report.AlphaScore,
		BravoScore: report.BravoScore,
		AlphaTally: tallyByAcronym(report.AlphaTally),
		BravoTally: tallyByAcronym(report.BravoTally),
		Gain:       report.Gain,
		Loss:       report.Loss,
		Stages:     stages,
	}
}

func NewPlayerPenalizedEvent(discordID uint64, adjustment league.Adjustment, linked bool) PlayerPenalizedEvent {
	return PlayerPenalizedEvent{
		ID:           uuid.NewString(),
		DiscordID:    discordID,
		AdjustmentID: adjustment.RecordID,
		Points:       adjustment.Points,
		Notes:        adjustment.Notes,
		Linked:       linked,
	}
}

func NewPlayerRegisteredEvent(discordID uint64, name string, startingPower float64) PlayerRegisteredEvent {
	return PlayerRegisteredEvent{
		ID:            uuid.NewString(),
		DiscordID:     discordID,
		Name:          name,
		StartingPower: startingPower,
	}
}

func tallyByAcronym(tally league.ModeTally) map[string]int {
	out := make(map[string]int, len(tally))
	for mode, wins := range tally {
		out[mode.Acronym()] = wins
	}
	return out
}
