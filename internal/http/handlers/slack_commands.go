package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/draft-league/internal/league"
	"github.com/mauv0809/draft-league/internal/notifier"
	"github.com/slack-go/slack"
)

// respondWithSlackMsg is a helper to format and write a Slack message as an HTTP response.
func respondWithSlackMsg(w http.ResponseWriter, msg slack.Message) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(msg); err != nil {
		log.Error("Failed to encode slack message to JSON", "error", err)
	}
}

func writeSlackResponse(w http.ResponseWriter, msg any, err error) {
	if err != nil {
		http.Error(w, "Failed to format response", http.StatusInternalServerError)
		log.Error("Failed to format slack response", "error", err)
		return
	}
	slackMsg, ok := msg.(slack.Message)
	if !ok {
		http.Error(w, "Invalid message format for Slack", http.StatusInternalServerError)
		log.Error("Failed to cast message to slack.Message")
		return
	}
	respondWithSlackMsg(w, slackMsg)
}

// StandingCommandHandler serves /standing <discord id or name>. A name is
// resolved only when one player matches it confidently.
func StandingCommandHandler(repo league.Repository, notifier notifier.Notifier) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Error parsing form", http.StatusBadRequest)
			return
		}
		query := strings.TrimSpace(r.FormValue("text"))
		if query == "" {
			http.Error(w, "A discord id or player name is required.", http.StatusBadRequest)
			return
		}
		log.FromContext(r.Context()).Info("Received standing command", "query", query)

		player, err := lookupPlayer(r.Context(), repo, query)
		if errors.Is(err, league.ErrNotFound) {
			msg, err := notifier.FormatPlayerNotFoundResponse(query)
			writeSlackResponse(w, msg, err)
			return
		}
		if err != nil {
			http.Error(w, "Failed to look up player", StatusFor(err))
			return
		}

		standing, err := repo.GetPlayerStandings(r.Context(), player)
		if err != nil {
			http.Error(w, "Failed to compute standing", StatusFor(err))
			return
		}
		msg, err := notifier.FormatStandingResponse(player, standing)
		writeSlackResponse(w, msg, err)
	}
}

func lookupPlayer(ctx context.Context, repo league.Repository, query string) (league.Player, error) {
	if discordID, err := ParseDiscordID(query); err == nil {
		return repo.RetrievePlayer(ctx, discordID)
	}
	players, err := repo.RetrieveAllPlayers(ctx)
	if err != nil {
		return league.Player{}, err
	}
	matches := league.FindPlayersByName(players, query)
	if len(matches) == 0 || matches[0].Confidence <= league.ConfidentMatch {
		log.FromContext(ctx).Warn("No confident name match", "query", query, "candidates", len(matches))
		return league.Player{}, league.ErrNotFound
	}
	log.FromContext(ctx).Info("Resolved player by name", "query", query, "player", matches[0].Player.Name, "confidence", matches[0].Confidence)
	return matches[0].Player, nil
}

// LeaderboardCommandHandler serves /leaderboard.
func LeaderboardCommandHandler(repo league.Repository, notifier notifier.Notifier) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		board, err := repo.GetLeaderboard(r.Context())
		if err != nil {
			http.Error(w, "Failed to get leaderboard", StatusFor(err))
			return
		}
		msg, err := notifier.FormatLeaderboardResponse(board)
		writeSlackResponse(w, msg, err)
	}
}
