package league

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/draft-league/internal/airtable"
)

// FieldPolicy decides what happens when an optional numeric field is present
// but cannot be parsed.
type FieldPolicy int

const (
	// FieldStrict fails the whole mapping.
	FieldStrict FieldPolicy = iota
	// FieldLenient logs the problem and leaves the value unset.
	FieldLenient
)

// FieldPolicies maps store field names to their policy. Fields not listed
// are strict.
type FieldPolicies map[string]FieldPolicy

// DefaultFieldPolicies is the classification the league base relies on:
// identity, power and overall win rate are strict, per-mode win rates lenient.
func DefaultFieldPolicies() FieldPolicies {
	policies := FieldPolicies{
		FieldDiscordID: FieldStrict,
		FieldPower:     FieldStrict,
		FieldWinRate:   FieldStrict,
	}
	for _, mode := range Modes {
		policies[modeWinRateField(mode)] = FieldLenient
	}
	return policies
}

func (p FieldPolicies) of(field string) FieldPolicy {
	if policy, ok := p[field]; ok {
		return policy
	}
	return FieldStrict
}

// RecordMapper turns raw store records into players and stages.
type RecordMapper struct {
	policies FieldPolicies
}

// NewRecordMapper creates a mapper. A nil policies map means DefaultFieldPolicies.
func NewRecordMapper(policies FieldPolicies) *RecordMapper {
	if policies == nil {
		policies = DefaultFieldPolicies()
	}
	return &RecordMapper{policies: policies}
}

// Player maps a Draft Standings record. DiscordID and Power must be present
// and parseable whatever their policy.
func (m *RecordMapper) Player(rec airtable.Record) (Player, error) {
	rawID, ok := rec.Fields[FieldDiscordID]
	if !ok {
		return Player{}, fmt.Errorf("record %s: missing field %q", rec.ID, FieldDiscordID)
	}
	discordID, err := parseUint64(rawID)
	if err != nil {
		return Player{}, fmt.Errorf("record %s: field %q: %w", rec.ID, FieldDiscordID, err)
	}

	rawPower, ok := rec.Fields[FieldPower]
	if !ok {
		return Player{}, fmt.Errorf("record %s: missing field %q", rec.ID, FieldPower)
	}
	power, err := parseFloat(rawPower)
	if err != nil {
		return Player{}, fmt.Errorf("record %s: field %q: %w", rec.ID, FieldPower, err)
	}

	player := Player{
		RecordID:       rec.ID,
		DiscordID:      discordID,
		Name:           fieldString(rec.Fields, FieldName),
		PowerLevel:     power,
		WinRates:       make(map[GameMode]float64),
		FriendCode:     fieldString(rec.Fields, FieldFriendCode),
		Role:           fieldString(rec.Fields, FieldRole),
		OverallWinRate: UnknownWinRate,
	}

	for _, mode := range Modes {
		rate, present, err := m.optionalFloat(rec, modeWinRateField(mode))
		if err != nil {
			return Player{}, err
		}
		if present {
			player.WinRates[mode] = rate
		}
	}

	overall, present, err := m.optionalFloat(rec, FieldWinRate)
	if err != nil {
		return Player{}, err
	}
	if present {
		player.OverallWinRate = overall
	}

	return player, nil
}

// optionalFloat reads an optional numeric field. A malformed value is an
// error for strict fields and reported as absent for lenient ones.
func (m *RecordMapper) optionalFloat(rec airtable.Record, field string) (float64, bool, error) {
	raw, ok := rec.Fields[field]
	if !ok {
		return 0, false, nil
	}
	value, err := parseFloat(raw)
	if err == nil {
		return value, true, nil
	}
	if m.policies.of(field) == FieldLenient {
		log.Warn("Ignoring malformed field", "record", rec.ID, "field", field, "value", raw, "error", err)
		return 0, false, nil
	}
	return 0, false, fmt.Errorf("record %s: field %q: %w", rec.ID, field, err)
}

// Stage maps a Map List record whose Name looks like "Moray Towers SZ".
func (m *RecordMapper) Stage(rec airtable.Record) (Stage, error) {
	name := fieldString(rec.Fields, FieldStageName)
	runes := []rune(name)
	if len(runes) < 4 {
		return Stage{}, fmt.Errorf("record %s: stage name %q is too short", rec.ID, name)
	}
	acronym := string(runes[len(runes)-2:])
	mode, ok := ModeFromAcronym(acronym)
	if !ok {
		return Stage{}, fmt.Errorf("record %s: unknown mode acronym %q in %q", rec.ID, acronym, name)
	}
	return Stage{MapName: string(runes[:len(runes)-3]), Mode: mode}, nil
}

func fieldString(fields airtable.Fields, name string) string {
	raw, ok := fields[name]
	if !ok || raw == nil {
		return ""
	}
	switch v := raw.(type) {
	case string:
		return v
	case json.Number:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}

func parseFloat(raw any) (float64, error) {
	switch v := raw.(type) {
	case json.Number:
		return v.Float64()
	case float64:
		return v, nil
	case float32:
		return float64(v), nil
	case int:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case uint64:
		return float64(v), nil
	case string:
		return strconv.ParseFloat(strings.TrimSpace(v), 64)
	default:
		return 0, fmt.Errorf("cannot read %T as a number", raw)
	}
}

func parseUint64(raw any) (uint64, error) {
	switch v := raw.(type) {
	case json.Number:
		return strconv.ParseUint(v.String(), 10, 64)
	case string:
		return strconv.ParseUint(strings.TrimSpace(v), 10, 64)
	case uint64:
		return v, nil
	case int:
		if v < 0 {
			return 0, fmt.Errorf("negative id %d", v)
		}
		return uint64(v), nil
	case int64:
		if v < 0 {
			return 0, fmt.Errorf("negative id %d", v)
		}
		return uint64(v), nil
	case float64:
		if v < 0 || v != math.Trunc(v) || v >= 1<<64 {
			return 0, fmt.Errorf("invalid id %v", v)
		}
		return uint64(v), nil
	default:
		return 0, fmt.Errorf("cannot read %T as an id", raw)
	}
}
