package notifier

import (
	"sync"

	"github.com/mauv0809/draft-league/internal/league"
	"github.com/mauv0809/draft-league/internal/pubsub"
)

// Mock is a mock implementation of the Notifier interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu sync.Mutex

	// Call records
	SendSetReportCalls          []pubsub.SetReportedEvent
	SendPenaltyNoticeCalls      []pubsub.PlayerPenalizedEvent
	SendRegistrationNoticeCalls []pubsub.PlayerRegisteredEvent
	DryRunCalls                 []bool

	// Spies for send functions
	SendSetReportFunc          func(event pubsub.SetReportedEvent, dryRun bool) error
	SendPenaltyNoticeFunc      func(event pubsub.PlayerPenalizedEvent, dryRun bool) error
	SendRegistrationNoticeFunc func(event pubsub.PlayerRegisteredEvent, dryRun bool) error

	// Spies for format functions
	FormatStandingResponseFunc       func(player league.Player, standing league.Standing) (any, error)
	FormatLeaderboardResponseFunc    func(board []league.RankedPlayer) (any, error)
	FormatPlayerNotFoundResponseFunc func(query string) (any, error)

	// Call records for format functions
	LastStandingResponse       any
	LastLeaderboardResponse    any
	LastPlayerNotFoundResponse any
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{}
}

// Reset clears all call records.
func (m *Mock) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendSetReportCalls = nil
	m.SendPenaltyNoticeCalls = nil
	m.SendRegistrationNoticeCalls = nil
	m.DryRunCalls = nil
	m.LastStandingResponse = nil
	m.LastLeaderboardResponse = nil
	m.LastPlayerNotFoundResponse = nil
}

func (m *Mock) SendSetReport(event pubsub.SetReportedEvent, dryRun bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendSetReportCalls = append(m.SendSetReportCalls, event)
	m.DryRunCalls = append(m.DryRunCalls, dryRun)
	if m.SendSetReportFunc != nil {
		return m.SendSetReportFunc(event, dryRun)
	}
	return nil
}

func (m *Mock) SendPenaltyNotice(event pubsub.PlayerPenalizedEvent, dryRun bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendPenaltyNoticeCalls = append(m.SendPenaltyNoticeCalls, event)
	m.DryRunCalls = append(m.DryRunCalls, dryRun)
	if m.SendPenaltyNoticeFunc != nil {
		return m.SendPenaltyNoticeFunc(event, dryRun)
	}
	return nil
}

func (m *Mock) SendRegistrationNotice(event pubsub.PlayerRegisteredEvent, dryRun bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendRegistrationNoticeCalls = append(m.SendRegistrationNoticeCalls, event)
	m.DryRunCalls = append(m.DryRunCalls, dryRun)
	if m.SendRegistrationNoticeFunc != nil {
		return m.SendRegistrationNoticeFunc(event, dryRun)
	}
	return nil
}

func (m *Mock) FormatStandingResponse(player league.Player, standing league.Standing) (any, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var resp any
	var err error
	if m.FormatStandingResponseFunc != nil {
		resp, err = m.FormatStandingResponseFunc(player, standing)
	}
	m.LastStandingResponse = resp
	return resp, err
}

func (m *Mock) FormatLeaderboardResponse(board []league.RankedPlayer) (any, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var resp any
	var err error
	if m.FormatLeaderboardResponseFunc != nil {
		resp, err = m.FormatLeaderboardResponseFunc(board)
	}
	m.LastLeaderboardResponse = resp
	return resp, err
}

func (m *Mock) FormatPlayerNotFoundResponse(query string) (any, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var resp any
	var err error
	if m.FormatPlayerNotFoundResponseFunc != nil {
		resp, err = m.FormatPlayerNotFoundResponseFunc(query)
	}
	m.LastPlayerNotFoundResponse = resp
	return resp, err
}
