package league

import "context"

// Repository is the league's view of the Airtable base. Every error it
// returns is an *Error and has already been logged.
type Repository interface {
	// HasPlayedSet reports whether player appears on either side of any Draft Log entry.
	HasPlayedSet(ctx context.Context, player Player) (bool, error)
	SetRole(ctx context.Context, player Player, role string) WriteResult
	SetFriendCode(ctx context.Context, player Player, code string) WriteResult
	// RegisterPlayer creates a player unless one with discordID already
	// exists. It reports whether a record was created.
	RegisterPlayer(ctx context.Context, discordID uint64, startingPower float64, nickname string) (bool, error)
	ReportScores(ctx context.Context, set Set, gain, loss float64) (SetReport, error)
	GetMapList(ctx context.Context) ([]Stage, error)
	PenalizePlayer(ctx context.Context, discordID uint64, points int, notes string) (Adjustment, error)
	RetrieveAllPlayers(ctx context.Context) ([]Player, error)
	RetrievePlayer(ctx context.Context, discordID uint64) (Player, error)
	GetPlayerStandings(ctx context.Context, player Player) (Standing, error)
	GetLeaderboard(ctx context.Context) ([]RankedPlayer, error)
}
