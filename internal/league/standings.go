package league

import (
	"math"
	"sort"
	"strconv"
)

// placementTolerance absorbs rounding between the stored and displayed power.
const placementTolerance = 0.1

// Placement returns the 1-based rank of target among powers, ordered from
// highest to lowest. When several powers lie within tolerance of target the
// last (lowest) rank of that group wins. It returns -1 when nothing matches.
func Placement(powers []float64, target float64) int {
	ordered := append([]float64(nil), powers...)
	sort.Sort(sort.Reverse(sort.Float64Slice(ordered)))

	placement := -1
	for i, power := range ordered {
		if math.Abs(power-target) >= placementTolerance {
			continue
		}
		placement = i + 1
	}
	return placement
}

// Ordinal returns the English ordinal suffix for n. Non-positive values come
// back as the bare number.
func Ordinal(n int) string {
	if n <= 0 {
		return strconv.Itoa(n)
	}
	switch n % 100 {
	case 11, 12, 13:
		return "th"
	}
	switch n % 10 {
	case 1:
		return "st"
	case 2:
		return "nd"
	case 3:
		return "rd"
	default:
		return "th"
	}
}

// StandingOf computes the standing of a player with the given power.
func StandingOf(powers []float64, target float64) Standing {
	placement := Placement(powers, target)
	return Standing{Placement: placement, Ordinal: Ordinal(placement)}
}

// RankPlayers orders players by power, highest first, and attaches each
// player's standing. Ties keep their input order.
func RankPlayers(players []Player) []RankedPlayer {
	powers := make([]float64, 0, len(players))
	for _, p := range players {
		powers = append(powers, p.PowerLevel)
	}

	ranked := make([]RankedPlayer, 0, len(players))
	for _, p := range players {
		ranked = append(ranked, RankedPlayer{Player: p, Standing: StandingOf(powers, p.PowerLevel)})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Player.PowerLevel > ranked[j].Player.PowerLevel
	})
	return ranked
}
