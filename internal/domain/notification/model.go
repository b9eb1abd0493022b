package notification

import (
	"encoding/json"
	"time"

	"github.com/claimsdesk/claims-service/internal/types"
)

// Notification is the outbox entry of a claim event. It is written with the
// claim and tracks delivery until the broker accepts the event.
type Notification struct {
	ID            string                  `db:"id" json:"id"`
	ClaimID       string                  `db:"claim_id" json:"claim_id"`
	Destination   string                  `db:"destination" json:"destination"`
	EventName     string                  `db:"event_name" json:"event_name"`
	Payload       json.RawMessage         `db:"payload" json:"payload"`
	State         types.NotificationState `db:"state" json:"state"`
	Attempts      int                     `db:"attempts" json:"attempts"`
	LastError     string                  `db:"last_error" json:"last_error"`
	NextAttemptAt time.Time               `db:"next_attempt_at" json:"next_attempt_at"`
	SentAt        *time.Time              `db:"sent_at" json:"sent_at,omitempty"`

	types.BaseModel
}

// MarkSent records a successful publish
func (n *Notification) MarkSent(now time.Time) {
	n.State = types.NotificationStateSent
	n.SentAt = &now
	n.LastError = ""
}

// MarkFailedAttempt records a failed publish; after maxAttempts the entry is parked as failed
func (n *Notification) MarkFailedAttempt(err error, now time.Time, retryAfter time.Duration, maxAttempts int) {
	n.Attempts++
	n.LastError = err.Error()
	n.NextAttemptAt = now.Add(retryAfter)
	if maxAttempts > 0 && n.Attempts >= maxAttempts {
		n.State = types.NotificationStateFailed
	}
}
