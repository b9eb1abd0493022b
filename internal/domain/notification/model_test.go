package notification

import (
	"errors"
	"testing"
	"time"

	"github.com/claimsdesk/claims-service/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarkFailedAttempt(t *testing.T) {
	now := time.Date(2024, time.June, 1, 12, 0, 0, 0, time.UTC)
	n := &Notification{State: types.NotificationStatePending}

	n.MarkFailedAttempt(errors.New("connection refused"), now, time.Minute, 3)
	assert.Equal(t, 1, n.Attempts)
	assert.Equal(t, "connection refused", n.LastError)
	assert.Equal(t, now.Add(time.Minute), n.NextAttemptAt)
	assert.Equal(t, types.NotificationStatePending, n.State)

	n.MarkFailedAttempt(errors.New("timeout"), now, time.Minute, 3)
	n.MarkFailedAttempt(errors.New("timeout"), now, time.Minute, 3)
	assert.Equal(t, 3, n.Attempts)
	assert.Equal(t, types.NotificationStateFailed, n.State)
}

func TestMarkFailedAttemptWithoutLimit(t *testing.T) {
	n := &Notification{State: types.NotificationStatePending}
	for range 20 {
		n.MarkFailedAttempt(errors.New("down"), time.Now(), time.Second, 0)
	}
	assert.Equal(t, types.NotificationStatePending, n.State)
}

func TestMarkSent(t *testing.T) {
	now := time.Now().UTC()
	n := &Notification{State: types.NotificationStatePending, LastError: "down"}

	n.MarkSent(now)
	assert.Equal(t, types.NotificationStateSent, n.State)
	assert.Empty(t, n.LastError)
	require.NotNil(t, n.SentAt)
	assert.Equal(t, now, *n.SentAt)
}
