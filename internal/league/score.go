package league

import "github.com/mauv0809/draft-league/internal/airtable"

// ModeTally counts won stages per mode.
type ModeTally map[GameMode]int

// TallyModes pairs each result with the stage at the same index and counts
// the wins per mode. Every mode is present in the result, zero if unplayed.
// results must not be longer than stages; Set.Validate guarantees that.
func TallyModes(stages []Stage, results []int) ModeTally {
	tally := make(ModeTally, len(Modes))
	for _, mode := range Modes {
		tally[mode] = 0
	}
	for i, result := range results {
		if result == 1 {
			tally[stages[i].Mode]++
		}
	}
	return tally
}

// Tally returns the per-mode wins of one side of the set.
func (s Set) Tally(side TeamSide) ModeTally {
	if side == Bravo {
		return TallyModes(s.Stages, s.Bravo.OrderedMatchResults)
	}
	return TallyModes(s.Stages, s.Alpha.OrderedMatchResults)
}

// reportFields builds the Draft Log record for a set.
func reportFields(set Set, alpha, bravo ModeTally, gain, loss float64, date string) airtable.Fields {
	fields := airtable.Fields{
		FieldDate:         date,
		FieldAlphaPlayers: set.Alpha.PlayerRecordIDs(),
		FieldBravoPlayers: set.Bravo.PlayerRecordIDs(),
		FieldAlphaScore:   set.Alpha.Score(),
		FieldBravoScore:   set.Bravo.Score(),
		FieldGain:         gain,
		FieldLoss:         loss,
	}
	for _, mode := range Modes {
		fields[tallyField(Alpha, mode)] = alpha[mode]
		fields[tallyField(Bravo, mode)] = bravo[mode]
	}
	return fields
}
