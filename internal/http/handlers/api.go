package handlers

import (
	"net/http"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/draft-league/internal/audit"
	"github.com/mauv0809/draft-league/internal/league"
	"github.com/mauv0809/draft-league/internal/pubsub"
)

// RegisterRequest is the body of POST /players.
type RegisterRequest struct {
	DiscordID     uint64  `json:"discordId,string"`
	StartingPower float64 `json:"startingPower"`
	Name          string  `json:"name"`
}

// RegisterResponse reports whether a new record was created.
type RegisterResponse struct {
	Created bool `json:"created"`
}

// FieldRequest is the body of the single-field player updates.
type FieldRequest struct {
	Value string `json:"value"`
}

// WriteResponse mirrors league.WriteResult with the error as text.
type WriteResponse struct {
	OK       bool   `json:"ok"`
	RecordID string `json:"recordId"`
	Error    string `json:"error,omitempty"`
}

// PenaltyRequest is the body of POST /players/{discordID}/penalties.
type PenaltyRequest struct {
	Points int    `json:"points"`
	Notes  string `json:"notes"`
}

// PenaltyResponse carries the created adjustment. Error is set when the
// adjustment exists but could not be linked to the player.
type PenaltyResponse struct {
	Adjustment league.Adjustment `json:"adjustment"`
	Error      string            `json:"error,omitempty"`
}

// ReportRequest is the body of POST /sets.
type ReportRequest struct {
	Set  league.Set `json:"set"`
	Gain float64    `json:"gain"`
	Loss float64    `json:"loss"`
}

// StandingResponse is a player with their placement.
type StandingResponse struct {
	Player   league.Player   `json:"player"`
	Standing league.Standing `json:"standing"`
	Text     string          `json:"text"`
}

// PlayedResponse answers GET /players/{discordID}/played.
type PlayedResponse struct {
	Played bool `json:"played"`
}

// ListPlayersHandler lists every player, or ranks them by similarity when
// ?name= is given.
func ListPlayersHandler(repo league.Repository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		players, err := repo.RetrieveAllPlayers(r.Context())
		if err != nil {
			respondError(w, err)
			return
		}
		if name := r.URL.Query().Get("name"); name != "" {
			matches := league.FindPlayersByName(players, name)
			if matches == nil {
				matches = []league.NameMatch{}
			}
			respondJSON(w, http.StatusOK, matches)
			return
		}
		respondJSON(w, http.StatusOK, players)
	}
}

func GetPlayerHandler(repo league.Repository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		discordID, ok := pathDiscordID(w, r)
		if !ok {
			return
		}
		player, err := repo.RetrievePlayer(r.Context(), discordID)
		if err != nil {
			respondError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, player)
	}
}

func RegisterPlayerHandler(repo league.Repository, pubsubClient pubsub.PubSubClient) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req RegisterRequest
		if !decodeBody(w, r, &req) {
			return
		}
		if req.DiscordID == 0 || req.Name == "" {
			badRequest(w, "discordId and name are required")
			return
		}

		created, err := repo.RegisterPlayer(r.Context(), req.DiscordID, req.StartingPower, req.Name)
		if err != nil {
			respondError(w, err)
			return
		}
		if !created {
			respondJSON(w, http.StatusOK, RegisterResponse{Created: false})
			return
		}

		publish(r, pubsubClient, pubsub.EventPlayerRegistered,
			pubsub.NewPlayerRegisteredEvent(req.DiscordID, req.Name, req.StartingPower))
		respondJSON(w, http.StatusCreated, RegisterResponse{Created: true})
	}
}

func PlayerStandingHandler(repo league.Repository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		discordID, ok := pathDiscordID(w, r)
		if !ok {
			return
		}
		player, err := repo.RetrievePlayer(r.Context(), discordID)
		if err != nil {
			respondError(w, err)
			return
		}
		standing, err := repo.GetPlayerStandings(r.Context(), player)
		if err != nil {
			respondError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, StandingResponse{Player: player, Standing: standing, Text: standing.String()})
	}
}

func HasPlayedSetHandler(repo league.Repository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		discordID, ok := pathDiscordID(w, r)
		if !ok {
			return
		}
		player, err := repo.RetrievePlayer(r.Context(), discordID)
		if err != nil {
			respondError(w, err)
			return
		}
		played, err := repo.HasPlayedSet(r.Context(), player)
		if err != nil {
			respondError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, PlayedResponse{Played: played})
	}
}

// fieldWriter is SetRole or SetFriendCode.
type fieldWriter func(repo league.Repository, r *http.Request, player league.Player, value string) league.WriteResult

func setRole(repo league.Repository, r *http.Request, player league.Player, value string) league.WriteResult {
	return repo.SetRole(r.Context(), player, value)
}

func setFriendCode(repo league.Repository, r *http.Request, player league.Player, value string) league.WriteResult {
	return repo.SetFriendCode(r.Context(), player, value)
}

func SetRoleHandler(repo league.Repository) http.HandlerFunc {
	return playerFieldHandler(repo, setRole)
}

func SetFriendCodeHandler(repo league.Repository) http.HandlerFunc {
	return playerFieldHandler(repo, setFriendCode)
}

func playerFieldHandler(repo league.Repository, write fieldWriter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		discordID, ok := pathDiscordID(w, r)
		if !ok {
			return
		}
		var req FieldRequest
		if !decodeBody(w, r, &req) {
			return
		}
		player, err := repo.RetrievePlayer(r.Context(), discordID)
		if err != nil {
			respondError(w, err)
			return
		}

		result := write(repo, r, player, req.Value)
		resp := WriteResponse{OK: result.OK, RecordID: result.RecordID}
		status := http.StatusOK
		if result.Err != nil {
			resp.Error = result.Err.Error()
			status = StatusFor(result.Err)
		}
		respondJSON(w, status, resp)
	}
}

func PenalizePlayerHandler(repo league.Repository, pubsubClient pubsub.PubSubClient) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		discordID, ok := pathDiscordID(w, r)
		if !ok {
			return
		}
		var req PenaltyRequest
		if !decodeBody(w, r, &req) {
			return
		}

		adjustment, err := repo.PenalizePlayer(r.Context(), discordID, req.Points, req.Notes)
		if err != nil && adjustment.RecordID == "" {
			respondError(w, err)
			return
		}

		linked := err == nil
		publish(r, pubsubClient, pubsub.EventPlayerPenalized, pubsub.NewPlayerPenalizedEvent(discordID, adjustment, linked))
		if !linked {
			respondJSON(w, StatusFor(err), PenaltyResponse{Adjustment: adjustment, Error: err.Error()})
			return
		}
		respondJSON(w, http.StatusCreated, PenaltyResponse{Adjustment: adjustment})
	}
}

func MapListHandler(repo league.Repository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		stages, err := repo.GetMapList(r.Context())
		if err != nil {
			respondError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, stages)
	}
}

func ReportSetHandler(repo league.Repository, pubsubClient pubsub.PubSubClient) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req ReportRequest
		if !decodeBody(w, r, &req) {
			return
		}
		if err := req.Set.Validate(); err != nil {
			badRequest(w, "%s", err.Error())
			return
		}

		report, err := repo.ReportScores(r.Context(), req.Set, req.Gain, req.Loss)
		if err != nil {
			respondError(w, err)
			return
		}
		publish(r, pubsubClient, pubsub.EventSetReported, pubsub.NewSetReportedEvent(req.Set, report))
		respondJSON(w, http.StatusCreated, report)
	}
}

func LeaderboardHandler(repo league.Repository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		board, err := repo.GetLeaderboard(r.Context())
		if err != nil {
			respondError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, board)
	}
}

func OrphanedAdjustmentsHandler(ledger audit.Ledger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		entries, err := ledger.ListOrphanedAdjustments(r.Context())
		if err != nil {
			log.FromContext(r.Context()).Error("Failed to list orphaned adjustments", "error", err)
			respondJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "Failed to list orphaned adjustments"})
			return
		}
		if entries == nil {
			entries = []audit.Entry{}
		}
		respondJSON(w, http.StatusOK, entries)
	}
}

func RecentWritesHandler(ledger audit.Ledger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit := 0
		if raw := r.URL.Query().Get("limit"); raw != "" {
			parsed, err := strconv.Atoi(raw)
			if err != nil || parsed <= 0 {
				badRequest(w, "invalid limit %q", raw)
				return
			}
			limit = parsed
		}
		entries, err := ledger.ListRecent(r.Context(), limit)
		if err != nil {
			log.FromContext(r.Context()).Error("Failed to list recent writes", "error", err)
			respondJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "Failed to list recent writes"})
			return
		}
		if entries == nil {
			entries = []audit.Entry{}
		}
		respondJSON(w, http.StatusOK, entries)
	}
}

// publish announces a completed write. The write already happened, so a
// publishing failure is only logged.
func publish(r *http.Request, pubsubClient pubsub.PubSubClient, event pubsub.EventType, data any) {
	if IsDryRunFromContext(r) {
		log.FromContext(r.Context()).Info("[Dry Run] Would have published event", "event", event)
		return
	}
	if err := pubsubClient.SendMessage(event, data); err != nil {
		log.FromContext(r.Context()).Error("Failed to publish event", "event", event, "error", err)
	}
}
