package league

import (
	"context"
	"sync"
)

// MockRepository is a mock implementation of the Repository interface for testing.
// It is safe for concurrent use. Unset hooks return zero values.
type MockRepository struct {
	mu sync.Mutex

	HasPlayedSetFunc       func(ctx context.Context, player Player) (bool, error)
	SetRoleFunc            func(ctx context.Context, player Player, role string) WriteResult
	SetFriendCodeFunc      func(ctx context.Context, player Player, code string) WriteResult
	RegisterPlayerFunc     func(ctx context.Context, discordID uint64, startingPower float64, nickname string) (bool, error)
	ReportScoresFunc       func(ctx context.Context, set Set, gain, loss float64) (SetReport, error)
	GetMapListFunc         func(ctx context.Context) ([]Stage, error)
	PenalizePlayerFunc     func(ctx context.Context, discordID uint64, points int, notes string) (Adjustment, error)
	RetrieveAllPlayersFunc func(ctx context.Context) ([]Player, error)
	RetrievePlayerFunc     func(ctx context.Context, discordID uint64) (Player, error)
	GetPlayerStandingsFunc func(ctx context.Context, player Player) (Standing, error)
	GetLeaderboardFunc     func(ctx context.Context) ([]RankedPlayer, error)

	SetRoleCalls []struct {
		Player Player
		Role   string
	}
	SetFriendCodeCalls []struct {
		Player Player
		Code   string
	}
	RegisterPlayerCalls []struct {
		DiscordID     uint64
		StartingPower float64
		Nickname      string
	}
	ReportScoresCalls []struct {
		Set        Set
		Gain, Loss float64
	}
	PenalizePlayerCalls []struct {
		DiscordID uint64
		Points    int
		Notes     string
	}
}

// NewMock creates a new mock repository.
func NewMock() *MockRepository {
	return &MockRepository{}
}

func (m *MockRepository) HasPlayedSet(ctx context.Context, player Player) (bool, error) {
	if m.HasPlayedSetFunc != nil {
		return m.HasPlayedSetFunc(ctx, player)
	}
	return false, nil
}

func (m *MockRepository) SetRole(ctx context.Context, player Player, role string) WriteResult {
	m.mu.Lock()
	m.SetRoleCalls = append(m.SetRoleCalls, struct {
		Player Player
		Role   string
	}{player, role})
	m.mu.Unlock()
	if m.SetRoleFunc != nil {
		return m.SetRoleFunc(ctx, player, role)
	}
	return WriteResult{OK: true, RecordID: player.RecordID}
}

func (m *MockRepository) SetFriendCode(ctx context.Context, player Player, code string) WriteResult {
	m.mu.Lock()
	m.SetFriendCodeCalls = append(m.SetFriendCodeCalls, struct {
		Player Player
		Code   string
	}{player, code})
	m.mu.Unlock()
	if m.SetFriendCodeFunc != nil {
		return m.SetFriendCodeFunc(ctx, player, code)
	}
	return WriteResult{OK: true, RecordID: player.RecordID}
}

func (m *MockRepository) RegisterPlayer(ctx context.Context, discordID uint64, startingPower float64, nickname string) (bool, error) {
	m.mu.Lock()
	m.RegisterPlayerCalls = append(m.RegisterPlayerCalls, struct {
		DiscordID     uint64
		StartingPower float64
		Nickname      string
	}{discordID, startingPower, nickname})
	m.mu.Unlock()
	if m.RegisterPlayerFunc != nil {
		return m.RegisterPlayerFunc(ctx, discordID, startingPower, nickname)
	}
	return true, nil
}

func (m *MockRepository) ReportScores(ctx context.Context, set Set, gain, loss float64) (SetReport, error) {
	m.mu.Lock()
	m.ReportScoresCalls = append(m.ReportScoresCalls, struct {
		Set        Set
		Gain, Loss float64
	}{set, gain, loss})
	m.mu.Unlock()
	if m.ReportScoresFunc != nil {
		return m.ReportScoresFunc(ctx, set, gain, loss)
	}
	return SetReport{}, nil
}

func (m *MockRepository) GetMapList(ctx context.Context) ([]Stage, error) {
	if m.GetMapListFunc != nil {
		return m.GetMapListFunc(ctx)
	}
	return nil, nil
}

func (m *MockRepository) PenalizePlayer(ctx context.Context, discordID uint64, points int, notes string) (Adjustment, error) {
	m.mu.Lock()
	m.PenalizePlayerCalls = append(m.PenalizePlayerCalls, struct {
		DiscordID uint64
		Points    int
		Notes     string
	}{discordID, points, notes})
	m.mu.Unlock()
	if m.PenalizePlayerFunc != nil {
		return m.PenalizePlayerFunc(ctx, discordID, points, notes)
	}
	return Adjustment{Points: -points, Notes: notes}, nil
}

func (m *MockRepository) RetrieveAllPlayers(ctx context.Context) ([]Player, error) {
	if m.RetrieveAllPlayersFunc != nil {
		return m.RetrieveAllPlayersFunc(ctx)
	}
	return nil, nil
}

func (m *MockRepository) RetrievePlayer(ctx context.Context, discordID uint64) (Player, error) {
	if m.RetrievePlayerFunc != nil {
		return m.RetrievePlayerFunc(ctx, discordID)
	}
	return Player{}, ErrNotFound
}

func (m *MockRepository) GetPlayerStandings(ctx context.Context, player Player) (Standing, error) {
	if m.GetPlayerStandingsFunc != nil {
		return m.GetPlayerStandingsFunc(ctx, player)
	}
	return StandingOf(nil, player.PowerLevel), nil
}

func (m *MockRepository) GetLeaderboard(ctx context.Context) ([]RankedPlayer, error) {
	if m.GetLeaderboardFunc != nil {
		return m.GetLeaderboardFunc(ctx)
	}
	return nil, nil
}
