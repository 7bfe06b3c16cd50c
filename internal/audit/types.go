package audit

import "time"

// Operation names a single store write.
type Operation string

const (
	OpCreatePlayer     Operation = "create-player"
	OpUpdateRole       Operation = "update-role"
	OpUpdateFriendCode Operation = "update-friend-code"
	OpCreateSetLog     Operation = "create-set-log"
	OpCreateAdjustment Operation = "create-adjustment"
	OpLinkAdjustment   Operation = "link-adjustment"
)

// Entry is the recorded outcome of one store write. For OpLinkAdjustment,
// RecordID is the player and RelatedRecordID the adjustment.
type Entry struct {
	ID              string    `json:"id"`
	Operation       Operation `json:"operation"`
	Table           string    `json:"table"`
	RecordID        string    `json:"recordId,omitempty"`
	RelatedRecordID string    `json:"relatedRecordId,omitempty"`
	Success         bool      `json:"success"`
	Error           string    `json:"error,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
}
