package league

import (
	"fmt"
	"time"
)

// GameMode is one of the four ranked modes.
type GameMode string

const (
	SplatZones   GameMode = "SplatZones"
	TowerControl GameMode = "TowerControl"
	Rainmaker    GameMode = "Rainmaker"
	ClamBlitz    GameMode = "ClamBlitz"
)

// Modes lists every mode in the order the base stores its columns.
var Modes = []GameMode{SplatZones, TowerControl, Rainmaker, ClamBlitz}

var modeAcronyms = map[GameMode]string{
	SplatZones:   "SZ",
	TowerControl: "TC",
	Rainmaker:    "RM",
	ClamBlitz:    "CB",
}

func (m GameMode) Acronym() string {
	return modeAcronyms[m]
}

func (m GameMode) Valid() bool {
	_, ok := modeAcronyms[m]
	return ok
}

// ModeFromAcronym maps "SZ", "TC", "RM" and "CB" to their mode.
func ModeFromAcronym(acronym string) (GameMode, bool) {
	for mode, a := range modeAcronyms {
		if a == acronym {
			return mode, true
		}
	}
	return "", false
}

// UnknownWinRate marks a player without an overall win rate on record.
const UnknownWinRate = -1

// Player is a registered league member.
type Player struct {
	RecordID       string               `json:"recordId"`
	DiscordID      uint64               `json:"discordId,string"`
	Name           string               `json:"name"`
	PowerLevel     float64              `json:"powerLevel"`
	WinRates       map[GameMode]float64 `json:"winRates,omitempty"`
	FriendCode     string               `json:"friendCode,omitempty"`
	Role           string               `json:"role,omitempty"`
	OverallWinRate float64              `json:"overallWinRate"`
}

// Stage is a map played in a specific mode.
type Stage struct {
	MapName string   `json:"mapName"`
	Mode    GameMode `json:"mode"`
}

func (s Stage) String() string {
	return fmt.Sprintf("%s %s", s.MapName, s.Mode.Acronym())
}

// TeamSide prefixes the per-mode tally columns of a Draft Log record.
type TeamSide string

const (
	Alpha TeamSide = "A"
	Bravo TeamSide = "B"
)

// Team is one side of a set. OrderedMatchResults holds 1 for a won stage and
// 0 for a lost one, index aligned with the set's stages.
type Team struct {
	Players             []Player `json:"players"`
	OrderedMatchResults []int    `json:"orderedMatchResults"`
}

// Score is the number of stages the team won.
func (t Team) Score() int {
	score := 0
	for _, result := range t.OrderedMatchResults {
		if result == 1 {
			score++
		}
	}
	return score
}

// PlayerRecordIDs returns the store ids of the team's players in order.
func (t Team) PlayerRecordIDs() []string {
	ids := make([]string, 0, len(t.Players))
	for _, p := range t.Players {
		ids = append(ids, p.RecordID)
	}
	return ids
}

// Set is a completed match between Alpha and Bravo.
type Set struct {
	Stages []Stage `json:"stages"`
	Alpha  Team    `json:"alpha"`
	Bravo  Team    `json:"bravo"`
}

// Validate checks that both result sequences line up with the stages.
func (s Set) Validate() error {
	for _, side := range []struct {
		name string
		team Team
	}{{"Alpha", s.Alpha}, {"Bravo", s.Bravo}} {
		if len(side.team.OrderedMatchResults) != len(s.Stages) {
			return fmt.Errorf("%s has %d results for %d stages", side.name, len(side.team.OrderedMatchResults), len(s.Stages))
		}
		for i, result := range side.team.OrderedMatchResults {
			if result != 0 && result != 1 {
				return fmt.Errorf("%s result %d is %d, expected 0 or 1", side.name, i, result)
			}
		}
	}
	for i, stage := range s.Stages {
		if !stage.Mode.Valid() {
			return fmt.Errorf("stage %d has unknown mode %q", i, stage.Mode)
		}
	}
	return nil
}

// Adjustment is a point penalty posted against a player. Points is the
// stored value, i.e. the negated penalty.
type Adjustment struct {
	RecordID       string `json:"recordId"`
	PlayerRecordID string `json:"playerRecordId"`
	Points         int    `json:"points"`
	Notes          string `json:"notes"`
}

// Standing is a player's position in the power ranking. Ordinal is the
// English suffix ("st", "nd", ...) or the bare number when Placement <= 0.
type Standing struct {
	Placement int    `json:"placement"`
	Ordinal   string `json:"ordinal"`
}

func (s Standing) String() string {
	if s.Placement <= 0 {
		return s.Ordinal
	}
	return fmt.Sprintf("%d%s", s.Placement, s.Ordinal)
}

// RankedPlayer is a leaderboard row.
type RankedPlayer struct {
	Player   Player   `json:"player"`
	Standing Standing `json:"standing"`
}

// SetReport is what ReportScores wrote to the Draft Log.
type SetReport struct {
	RecordID   string    `json:"recordId"`
	ReportedAt time.Time `json:"reportedAt"`
	AlphaScore int       `json:"alphaScore"`
	BravoScore int       `json:"bravoScore"`
	AlphaTally ModeTally `json:"alphaTally"`
	BravoTally ModeTally `json:"bravoTally"`
	Gain       float64   `json:"gain"`
	Loss       float64   `json:"loss"`
}

// WriteResult is the outcome of a single-field write. A failed write is
// logged and reported here but never returned as an error.
type WriteResult struct {
	OK       bool   `json:"ok"`
	RecordID string `json:"recordId"`
	Err      error  `json:"-"`
}
