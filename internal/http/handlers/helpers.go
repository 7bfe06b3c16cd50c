package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/draft-league/internal/league"
)

// ContextKey is a custom type to avoid key collisions in context.
type ContextKey string

const (
	DryRunKey ContextKey = "dryRun"
)

// IsDryRunFromContext is a helper to safely retrieve the dry_run flag from the request context.
func IsDryRunFromContext(r *http.Request) bool {
	dryRun, ok := r.Context().Value(DryRunKey).(bool)
	return ok && dryRun
}

// ErrorResponse is the JSON body of every failed API call.
type ErrorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error("Failed to write response", "error", err)
	}
}

// StatusFor maps a league error kind to an HTTP status.
func StatusFor(err error) int {
	switch league.KindOf(err) {
	case league.KindNotFound:
		return http.StatusNotFound
	case league.KindUnexpectedDuplicate:
		return http.StatusConflict
	case league.KindCommunication:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes a league error. The repository has already logged it.
func respondError(w http.ResponseWriter, err error) {
	respondJSON(w, StatusFor(err), ErrorResponse{Error: err.Error(), Kind: league.KindOf(err).String()})
}

func badRequest(w http.ResponseWriter, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	log.Warn("Rejected request", "reason", msg)
	respondJSON(w, http.StatusBadRequest, ErrorResponse{Error: msg})
}

// ParseDiscordID accepts a plain id or a Discord/Slack style mention such as "<@123>".
func ParseDiscordID(raw string) (uint64, error) {
	raw = strings.TrimSpace(raw)
	raw = strings.TrimSuffix(strings.TrimPrefix(raw, "<@"), ">")
	raw = strings.TrimPrefix(raw, "!")
	if raw == "" {
		return 0, errors.New("discord id is required")
	}
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid discord id %q", raw)
	}
	return id, nil
}

func pathDiscordID(w http.ResponseWriter, r *http.Request) (uint64, bool) {
	id, err := ParseDiscordID(r.PathValue("discordID"))
	if err != nil {
		badRequest(w, "%s", err.Error())
		return 0, false
	}
	return id, true
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		badRequest(w, "invalid JSON body: %s", err.Error())
		return false
	}
	return true
}
