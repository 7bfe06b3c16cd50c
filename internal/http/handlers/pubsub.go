package handlers

import (
	"encoding/base64"
	"encoding/json"
	"io"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/draft-league/internal/notifier"
	"github.com/mauv0809/draft-league/internal/pubsub"
)

// PushEnvelope is the JSON body Pub/Sub push subscriptions deliver.
type PushEnvelope struct {
	Subscription string `json:"subscription"`
	Message      struct {
		Data      string `json:"data"`
		MessageID string `json:"messageId"`
	} `json:"message"`
}

// decodePush unwraps a push request into out. It writes the error response
// itself and reports whether decoding succeeded.
func decodePush(w http.ResponseWriter, r *http.Request, pubsubClient pubsub.PubSubClient, out any) bool {
	bodyBytes, err := io.ReadAll(r.Body)
	if err != nil {
		log.FromContext(r.Context()).Error("Failed to read request body", "error", err)
		http.Error(w, "Failed to read request body", http.StatusInternalServerError)
		return false
	}
	log.FromContext(r.Context()).Debug("Received push message", "path", r.URL.Path, "body", string(bodyBytes))

	var envelope PushEnvelope
	if err := json.Unmarshal(bodyBytes, &envelope); err != nil {
		log.FromContext(r.Context()).Error("Failed to unmarshal wrapper JSON", "error", err)
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return false
	}
	rawData, err := base64.StdEncoding.DecodeString(envelope.Message.Data)
	if err != nil {
		log.FromContext(r.Context()).Error("Failed to decode base64 data", "error", err)
		http.Error(w, "Invalid base64 data", http.StatusBadRequest)
		return false
	}
	if err := pubsubClient.ProcessMessage(rawData, out); err != nil {
		http.Error(w, "Invalid message payload", http.StatusBadRequest)
		return false
	}
	return true
}

func SetReportedHandler(notifier notifier.Notifier, pubsubClient pubsub.PubSubClient) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var event pubsub.SetReportedEvent
		if !decodePush(w, r, pubsubClient, &event) {
			return
		}
		if err := notifier.SendSetReport(event, IsDryRunFromContext(r)); err != nil {
			log.FromContext(r.Context()).Error("Failed to notify set report", "error", err, "event", event.ID)
			http.Error(w, "Failed to notify set report", http.StatusInternalServerError)
			return
		}
		w.Write([]byte("OK"))
	}
}

func PlayerPenalizedHandler(notifier notifier.Notifier, pubsubClient pubsub.PubSubClient) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var event pubsub.PlayerPenalizedEvent
		if !decodePush(w, r, pubsubClient, &event) {
			return
		}
		if err := notifier.SendPenaltyNotice(event, IsDryRunFromContext(r)); err != nil {
			log.FromContext(r.Context()).Error("Failed to notify penalty", "error", err, "event", event.ID)
			http.Error(w, "Failed to notify penalty", http.StatusInternalServerError)
			return
		}
		w.Write([]byte("OK"))
	}
}

func PlayerRegisteredHandler(notifier notifier.Notifier, pubsubClient pubsub.PubSubClient) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var event pubsub.PlayerRegisteredEvent
		if !decodePush(w, r, pubsubClient, &event) {
			return
		}
		if err := notifier.SendRegistrationNotice(event, IsDryRunFromContext(r)); err != nil {
			log.FromContext(r.Context()).Error("Failed to notify registration", "error", err, "event", event.ID)
			http.Error(w, "Failed to notify registration", http.StatusInternalServerError)
			return
		}
		w.Write([]byte("OK"))
	}
}
