package league

import (
	"encoding/json"
	"testing"

	"github.com/mauv0809/draft-league/internal/airtable"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func playerRecord(fields airtable.Fields) airtable.Record {
	return airtable.Record{ID: "recPlayer", Fields: fields}
}

func TestMapPlayer_AllFields(t *testing.T) {
	mapper := NewRecordMapper(nil)
	rec := playerRecord(airtable.Fields{
		"DiscordID":   json.Number("228019100008316948"),
		"Power":       "2150.5",
		"Name":        "Squiddo",
		"Friend Code": "SW-1234-5678-9012",
		"Role":        "Captain",
		"W%":          json.Number("0.625"),
		"SZ W%":       json.Number("0.5"),
		"TC W%":       0.75,
		"RM W%":       "0.4",
		"CB W%":       json.Number("1"),
	})

	player, err := mapper.Player(rec)

	require.NoError(t, err)
	assert.Equal(t, "recPlayer", player.RecordID)
	assert.Equal(t, uint64(228019100008316948), player.DiscordID)
	assert.Equal(t, 2150.5, player.PowerLevel)
	assert.Equal(t, "Squiddo", player.Name)
	assert.Equal(t, "SW-1234-5678-9012", player.FriendCode)
	assert.Equal(t, "Captain", player.Role)
	assert.Equal(t, 0.625, player.OverallWinRate)
	assert.Equal(t, map[GameMode]float64{
		SplatZones:   0.5,
		TowerControl: 0.75,
		Rainmaker:    0.4,
		ClamBlitz:    1,
	}, player.WinRates)
}

func TestMapPlayer_OptionalFieldsDefault(t *testing.T) {
	player, err := NewRecordMapper(nil).Player(playerRecord(airtable.Fields{
		"DiscordID": "42",
		"Power":     json.Number("1800"),
	}))

	require.NoError(t, err)
	assert.Empty(t, player.Name)
	assert.Empty(t, player.FriendCode)
	assert.Empty(t, player.Role)
	assert.Empty(t, player.WinRates)
	assert.Equal(t, float64(UnknownWinRate), player.OverallWinRate)
}

func TestMapPlayer_MalformedModeWinRateIsSkipped(t *testing.T) {
	player, err := NewRecordMapper(nil).Player(playerRecord(airtable.Fields{
		"DiscordID": "42",
		"Power":     "1800",
		"SZ W%":     "#ERROR!",
		"TC W%":     json.Number("0.3"),
	}))

	require.NoError(t, err)
	_, hasSZ := player.WinRates[SplatZones]
	assert.False(t, hasSZ)
	assert.Equal(t, 0.3, player.WinRates[TowerControl])
}

func TestMapPlayer_StrictFieldsFail(t *testing.T) {
	tests := []struct {
		name   string
		fields airtable.Fields
	}{
		{"missing DiscordID", airtable.Fields{"Power": "1800"}},
		{"malformed DiscordID", airtable.Fields{"DiscordID": "squid", "Power": "1800"}},
		{"negative DiscordID", airtable.Fields{"DiscordID": "-4", "Power": "1800"}},
		{"missing Power", airtable.Fields{"DiscordID": "42"}},
		{"malformed Power", airtable.Fields{"DiscordID": "42", "Power": "lots"}},
		{"malformed W%", airtable.Fields{"DiscordID": "42", "Power": "1800", "W%": "#DIV/0!"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewRecordMapper(nil).Player(playerRecord(tt.fields))
			assert.Error(t, err)
		})
	}
}

func TestMapPlayer_CustomPolicies(t *testing.T) {
	policies := DefaultFieldPolicies()
	policies[FieldWinRate] = FieldLenient
	mapper := NewRecordMapper(policies)

	player, err := mapper.Player(playerRecord(airtable.Fields{
		"DiscordID": "42",
		"Power":     "1800",
		"W%":        "#DIV/0!",
	}))

	require.NoError(t, err)
	assert.Equal(t, float64(UnknownWinRate), player.OverallWinRate)
}

func TestMapPlayer_IsIdempotent(t *testing.T) {
	mapper := NewRecordMapper(nil)
	rec := playerRecord(airtable.Fields{
		"DiscordID": json.Number("18446744073709551615"),
		"Power":     "2000.1",
		"Name":      "Max",
		"SZ W%":     "bad",
		"RM W%":     0.2,
	})

	first, err := mapper.Player(rec)
	require.NoError(t, err)
	second, err := mapper.Player(rec)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, uint64(18446744073709551615), first.DiscordID)
}

func TestDefaultFieldPolicies(t *testing.T) {
	policies := DefaultFieldPolicies()

	assert.Equal(t, FieldStrict, policies.of("DiscordID"))
	assert.Equal(t, FieldStrict, policies.of("Power"))
	assert.Equal(t, FieldStrict, policies.of("W%"))
	for _, field := range []string{"SZ W%", "TC W%", "RM W%", "CB W%"} {
		assert.Equal(t, FieldLenient, policies.of(field), field)
	}
	assert.Equal(t, FieldStrict, policies.of("Unlisted"))
}

func TestMapStage(t *testing.T) {
	mapper := NewRecordMapper(nil)
	tests := []struct {
		name string
		want Stage
	}{
		{"Moray Towers SZ", Stage{MapName: "Moray Towers", Mode: SplatZones}},
		{"Kelp Dome TC", Stage{MapName: "Kelp Dome", Mode: TowerControl}},
		{"Arowana Mall RM", Stage{MapName: "Arowana Mall", Mode: Rainmaker}},
		{"Blackbelly Skatepark CB", Stage{MapName: "Blackbelly Skatepark", Mode: ClamBlitz}},
		{"A SZ", Stage{MapName: "A", Mode: SplatZones}},
		{"Étang Café TC", Stage{MapName: "Étang Café", Mode: TowerControl}},
	}
	for _, tt := range tests {
		stage, err := mapper.Stage(airtable.Record{ID: "recMap", Fields: airtable.Fields{"Name": tt.name}})
		require.NoError(t, err, tt.name)
		assert.Equal(t, tt.want, stage)
	}
}

func TestMapStage_Failures(t *testing.T) {
	mapper := NewRecordMapper(nil)
	for _, name := range []string{"", " SZ", "éSZ", "Moray Towers TW", "Moray Towers sz"} {
		_, err := mapper.Stage(airtable.Record{ID: "recMap", Fields: airtable.Fields{"Name": name}})
		assert.Error(t, err, "name %q", name)
	}
	_, err := mapper.Stage(airtable.Record{ID: "recMap", Fields: airtable.Fields{}})
	assert.Error(t, err)
}
