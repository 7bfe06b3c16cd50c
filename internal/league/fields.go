package league

// Table names in the league base.
const (
	TablePlayers     = "Draft Standings"
	TableDraftLog    = "Draft Log"
	TableMapList     = "Map List"
	TableAdjustments = "Adjustments"
)

// Field names are the wire contract with the base; do not rename.
const (
	FieldDiscordID     = "DiscordID"
	FieldPower         = "Power"
	FieldName          = "Name"
	FieldFriendCode    = "Friend Code"
	FieldRole          = "Role"
	FieldWinRate       = "W%"
	FieldStartingPower = "Starting Power"
	FieldAdjustments   = "Adjustments"
	FieldPoints        = "Points"
	FieldNotes         = "Notes"
	FieldPlayer        = "Player"
	FieldDate          = "Date"
	FieldAlphaPlayers  = "Alpha Players"
	FieldBravoPlayers  = "Bravo Players"
	FieldAlphaScore    = "Alpha Score"
	FieldBravoScore    = "Bravo Score"
	FieldGain          = "Gain"
	FieldLoss          = "Loss"
	FieldStageName     = "Name"
)

// modeWinRateField returns e.g. "SZ W%".
func modeWinRateField(mode GameMode) string {
	return mode.Acronym() + " W%"
}

// tallyField returns e.g. "A SZ" for Alpha or "B TC" for Bravo.
func tallyField(side TeamSide, mode GameMode) string {
	return string(side) + " " + mode.Acronym()
}
