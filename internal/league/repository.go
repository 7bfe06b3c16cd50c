package league

import (
	"context"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/draft-league/internal/airtable"
	"github.com/mauv0809/draft-league/internal/audit"
	"github.com/mauv0809/draft-league/internal/metrics"
)

// repository implements Repository on top of an airtable.Client.
type repository struct {
	client  airtable.Client
	fetcher *pagedFetcher
	mapper  *RecordMapper
	metrics metrics.Metrics
	ledger  audit.Ledger
	now     func() time.Time
}

// Option customises a repository.
type Option func(*repository)

// WithFieldPolicies overrides the strict/lenient field classification.
func WithFieldPolicies(policies FieldPolicies) Option {
	return func(r *repository) { r.mapper = NewRecordMapper(policies) }
}

// WithClock replaces time.Now, used for the Draft Log date.
func WithClock(now func() time.Time) Option {
	return func(r *repository) { r.now = now }
}

// New creates a Repository. Write outcomes are appended to ledger.
func New(client airtable.Client, metrics metrics.Metrics, ledger audit.Ledger, opts ...Option) Repository {
	r := &repository{
		client:  client,
		fetcher: &pagedFetcher{client: client, metrics: metrics},
		mapper:  NewRecordMapper(nil),
		metrics: metrics,
		ledger:  ledger,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *repository) HasPlayedSet(ctx context.Context, player Player) (bool, error) {
	records, err := r.fetcher.fetchAll(ctx, TableDraftLog)
	if err != nil {
		return false, err
	}
	for _, rec := range records {
		for _, field := range []string{FieldAlphaPlayers, FieldBravoPlayers} {
			for _, id := range idList(rec.Fields, field) {
				if id == player.RecordID {
					return true, nil
				}
			}
		}
	}
	return false, nil
}

func (r *repository) SetRole(ctx context.Context, player Player, role string) WriteResult {
	return r.updateField(ctx, player, FieldRole, role, audit.OpUpdateRole)
}

func (r *repository) SetFriendCode(ctx context.Context, player Player, code string) WriteResult {
	return r.updateField(ctx, player, FieldFriendCode, code, audit.OpUpdateFriendCode)
}

// updateField writes a single player field. Failures are logged and
// reported in the result, never raised.
func (r *repository) updateField(ctx context.Context, player Player, field, value string, op audit.Operation) WriteResult {
	result := WriteResult{RecordID: player.RecordID}
	if player.RecordID == "" {
		result.Err = raise(newError(KindGeneric, nil, "player %d has no store record", player.DiscordID))
	} else {
		_, result.Err = r.write("update", TablePlayers, func() (airtable.RecordResponse, error) {
			return r.client.UpdateRecord(ctx, TablePlayers, player.RecordID, airtable.Fields{field: value}, true)
		})
	}
	result.OK = result.Err == nil

	if !result.OK {
		r.metrics.IncSilentWriteFailures(field)
	}
	r.audit(ctx, op, TablePlayers, player.RecordID, "", result.Err)
	return result
}

func (r *repository) RegisterPlayer(ctx context.Context, discordID uint64, startingPower float64, nickname string) (bool, error) {
	records, err := r.fetcher.fetchAll(ctx, TablePlayers)
	if err != nil {
		return false, err
	}
	for _, rec := range records {
		if id, ok := recordDiscordID(rec); ok && id == discordID {
			log.Info("Player already registered", "discord_id", discordID, "record", rec.ID)
			return false, nil
		}
	}

	fields := airtable.Fields{
		FieldName:          nickname,
		FieldDiscordID:     strconv.FormatUint(discordID, 10),
		FieldStartingPower: startingPower,
	}
	created, err := r.write("create", TablePlayers, func() (airtable.RecordResponse, error) {
		return r.client.CreateRecord(ctx, TablePlayers, fields, true)
	})
	r.audit(ctx, audit.OpCreatePlayer, TablePlayers, created.ID, "", err)
	if err != nil {
		return false, err
	}
	log.Info("Registered player", "discord_id", discordID, "record", created.ID, "name", nickname)
	return true, nil
}

func (r *repository) ReportScores(ctx context.Context, set Set, gain, loss float64) (SetReport, error) {
	if err := set.Validate(); err != nil {
		return SetReport{}, raise(newError(KindGeneric, err, "invalid set: %s", err.Error()))
	}

	report := SetReport{
		ReportedAt: r.now().UTC(),
		AlphaScore: set.Alpha.Score(),
		BravoScore: set.Bravo.Score(),
		AlphaTally: set.Tally(Alpha),
		BravoTally: set.Tally(Bravo),
		Gain:       gain,
		Loss:       loss,
	}
	fields := reportFields(set, report.AlphaTally, report.BravoTally, gain, loss, report.ReportedAt.Format(time.RFC3339))

	created, err := r.write("create", TableDraftLog, func() (airtable.RecordResponse, error) {
		return r.client.CreateRecord(ctx, TableDraftLog, fields, true)
	})
	r.audit(ctx, audit.OpCreateSetLog, TableDraftLog, created.ID, "", err)
	if err != nil {
		return SetReport{}, err
	}
	report.RecordID = created.ID
	log.Info("Reported set", "record", created.ID, "alpha_score", report.AlphaScore, "bravo_score", report.BravoScore)
	return report, nil
}

func (r *repository) GetMapList(ctx context.Context) ([]Stage, error) {
	records, err := r.fetcher.fetchAll(ctx, TableMapList)
	if err != nil {
		return nil, err
	}
	stages := make([]Stage, 0, len(records))
	for _, rec := range records {
		stage, err := r.mapper.Stage(rec)
		if err != nil {
			return nil, wrapGeneric(err)
		}
		stages = append(stages, stage)
	}
	return stages, nil
}

// PenalizePlayer creates an Adjustment and then links it from the player.
// The two writes are not atomic: when linking fails the created Adjustment
// is kept, returned alongside the error and recorded as orphaned.
func (r *repository) PenalizePlayer(ctx context.Context, discordID uint64, points int, notes string) (Adjustment, error) {
	playerRecord, err := r.playerRecord(ctx, discordID)
	if err != nil {
		return Adjustment{}, err
	}

	adjustment := Adjustment{PlayerRecordID: playerRecord.ID, Points: -points, Notes: notes}
	created, err := r.write("create", TableAdjustments, func() (airtable.RecordResponse, error) {
		return r.client.CreateRecord(ctx, TableAdjustments, airtable.Fields{
			FieldPlayer: []string{playerRecord.ID},
			FieldPoints: adjustment.Points,
			FieldNotes:  notes,
		}, true)
	})
	r.audit(ctx, audit.OpCreateAdjustment, TableAdjustments, created.ID, playerRecord.ID, err)
	if err != nil {
		return Adjustment{}, err
	}
	adjustment.RecordID = created.ID

	linked := append(idList(playerRecord.Fields, FieldAdjustments), created.ID)
	_, err = r.write("update", TablePlayers, func() (airtable.RecordResponse, error) {
		return r.client.UpdateRecord(ctx, TablePlayers, playerRecord.ID, airtable.Fields{FieldAdjustments: linked}, true)
	})
	r.audit(ctx, audit.OpLinkAdjustment, TablePlayers, playerRecord.ID, created.ID, err)
	if err != nil {
		r.metrics.IncOrphanedAdjustments()
		log.Warn("Adjustment left without player link", "adjustment", created.ID, "player", playerRecord.ID)
		return adjustment, err
	}

	log.Info("Penalized player", "discord_id", discordID, "points", points, "adjustment", created.ID)
	return adjustment, nil
}

func (r *repository) RetrieveAllPlayers(ctx context.Context) ([]Player, error) {
	records, err := r.fetcher.fetchAll(ctx, TablePlayers)
	if err != nil {
		return nil, err
	}
	players := make([]Player, 0, len(records))
	for _, rec := range records {
		player, err := r.mapper.Player(rec)
		if err != nil {
			return nil, wrapGeneric(err)
		}
		players = append(players, player)
	}
	return players, nil
}

func (r *repository) RetrievePlayer(ctx context.Context, discordID uint64) (Player, error) {
	rec, err := r.playerRecord(ctx, discordID)
	if err != nil {
		return Player{}, err
	}
	player, err := r.mapper.Player(rec)
	if err != nil {
		return Player{}, wrapGeneric(err)
	}
	return player, nil
}

func (r *repository) GetPlayerStandings(ctx context.Context, player Player) (Standing, error) {
	records, err := r.fetcher.fetchAll(ctx, TablePlayers)
	if err != nil {
		return Standing{}, err
	}
	powers := make([]float64, 0, len(records))
	for _, rec := range records {
		power, err := parseFloat(rec.Fields[FieldPower])
		if err != nil {
			return Standing{}, wrapGeneric(err)
		}
		powers = append(powers, power)
	}
	return StandingOf(powers, player.PowerLevel), nil
}

func (r *repository) GetLeaderboard(ctx context.Context) ([]RankedPlayer, error) {
	players, err := r.RetrieveAllPlayers(ctx)
	if err != nil {
		return nil, err
	}
	return RankPlayers(players), nil
}

// playerRecord finds the single Draft Standings record for discordID.
// Records without a readable DiscordID never match.
func (r *repository) playerRecord(ctx context.Context, discordID uint64) (airtable.Record, error) {
	records, err := r.fetcher.fetchAll(ctx, TablePlayers)
	if err != nil {
		return airtable.Record{}, err
	}

	var matches []airtable.Record
	for _, rec := range records {
		if id, ok := recordDiscordID(rec); ok && id == discordID {
			matches = append(matches, rec)
		}
	}

	switch len(matches) {
	case 1:
		return matches[0], nil
	case 0:
		return airtable.Record{}, raise(newError(KindNotFound, nil,
			"There are no players registered with the discord id %d!", discordID))
	default:
		return airtable.Record{}, raise(newError(KindUnexpectedDuplicate, nil,
			"There are multiple records in the %s table with the id %d!", TablePlayers, discordID))
	}
}

// write runs a single create or update call. Any failure comes back as a
// logged CommunicationError.
func (r *repository) write(operation, table string, call func() (airtable.RecordResponse, error)) (airtable.Record, error) {
	r.metrics.IncStoreRequests(operation, table)
	resp, err := call()
	if err != nil {
		r.metrics.IncStoreFailures(operation, table)
		return airtable.Record{}, raise(newError(KindCommunication, err, "%s", err.Error()))
	}
	if !resp.Success {
		r.metrics.IncStoreFailures(operation, table)
		return airtable.Record{}, raise(storeError(resp.Err))
	}
	return resp.Record, nil
}

// audit appends a write outcome to the ledger. A ledger failure never
// changes the result of the write.
func (r *repository) audit(ctx context.Context, op audit.Operation, table, recordID, relatedID string, writeErr error) {
	if r.ledger == nil {
		return
	}
	entry := audit.Entry{
		Operation:       op,
		Table:           table,
		RecordID:        recordID,
		RelatedRecordID: relatedID,
		Success:         writeErr == nil,
	}
	if writeErr != nil {
		entry.Error = writeErr.Error()
	}
	if err := r.ledger.Record(ctx, entry); err != nil {
		log.Warn("Could not record write outcome", "operation", op, "error", err)
	}
}

func recordDiscordID(rec airtable.Record) (uint64, bool) {
	raw, ok := rec.Fields[FieldDiscordID]
	if !ok {
		return 0, false
	}
	id, err := parseUint64(raw)
	if err != nil {
		log.Debug("Skipping record with unreadable DiscordID", "record", rec.ID, "value", raw)
		return 0, false
	}
	return id, true
}

// idList reads a linked-record field. Missing fields are empty.
func idList(fields airtable.Fields, name string) []string {
	switch v := fields[name].(type) {
	case []string:
		return append([]string(nil), v...)
	case []any:
		ids := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				ids = append(ids, s)
			}
		}
		return ids
	case string:
		return []string{v}
	default:
		return []string{}
	}
}
