package league

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPlacement_TieTakesLowestRank(t *testing.T) {
	powers := []float64{100, 100, 90}

	a := StandingOf(powers, 100)
	b := StandingOf(powers, 100)
	c := StandingOf(powers, 90)

	assert.Equal(t, a, b)
	assert.Equal(t, Standing{Placement: 2, Ordinal: "nd"}, a)
	assert.Equal(t, Standing{Placement: 3, Ordinal: "rd"}, c)
}

func TestPlacement_Tolerance(t *testing.T) {
	powers := []float64{2000.04, 1999.98, 1500}

	assert.Equal(t, 2, Placement(powers, 2000), "both within 0.1 of target")
	assert.Equal(t, -1, Placement(powers, 1500.2))
	assert.Equal(t, 3, Placement(powers, 1500.09))
}

func TestPlacement_UnsortedInputIsNotModified(t *testing.T) {
	powers := []float64{90, 120, 100}

	assert.Equal(t, 1, Placement(powers, 120))
	assert.Equal(t, []float64{90, 120, 100}, powers)
}

func TestStandingOf_EdgeCases(t *testing.T) {
	assert.Equal(t, Standing{Placement: 1, Ordinal: "st"}, StandingOf([]float64{1800}, 1800))
	assert.Equal(t, Standing{Placement: -1, Ordinal: "-1"}, StandingOf(nil, 1800))
	assert.Equal(t, "-1", StandingOf(nil, 1800).String())
	assert.Equal(t, "1st", StandingOf([]float64{1800}, 1800).String())
}

func TestOrdinal(t *testing.T) {
	tests := map[int]string{
		1:   "st",
		2:   "nd",
		3:   "rd",
		4:   "th",
		10:  "th",
		11:  "th",
		12:  "th",
		13:  "th",
		21:  "st",
		22:  "nd",
		23:  "rd",
		101: "st",
		111: "th",
		112: "th",
		0:   "0",
		-1:  "-1",
	}
	for n, want := range tests {
		assert.Equal(t, want, Ordinal(n), "Ordinal(%d)", n)
	}
}

func TestRankPlayers(t *testing.T) {
	players := []Player{
		{Name: "Low", PowerLevel: 1500},
		{Name: "TopA", PowerLevel: 2100},
		{Name: "TopB", PowerLevel: 2100},
	}

	ranked := RankPlayers(players)

	assert.Len(t, ranked, 3)
	assert.Equal(t, "TopA", ranked[0].Player.Name)
	assert.Equal(t, "TopB", ranked[1].Player.Name)
	assert.Equal(t, "Low", ranked[2].Player.Name)
	assert.Equal(t, 2, ranked[0].Standing.Placement)
	assert.Equal(t, 2, ranked[1].Standing.Placement)
	assert.Equal(t, Standing{Placement: 3, Ordinal: "rd"}, ranked[2].Standing)
}
