package rabbitmq

import (
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
)

func TestToPublishing(t *testing.T) {
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	msg := message.NewMessage("msg_01", []byte(`{"claimId":"clm_01"}`))
	msg.Metadata.Set("event_name", "claim.submitted")
	msg.Metadata.Set("claim_id", "clm_01")

	p := toPublishing(msg, false, now)
	assert.Equal(t, "application/json", p.ContentType)
	assert.Equal(t, "msg_01", p.MessageId)
	assert.Equal(t, now, p.Timestamp)
	assert.Equal(t, amqp.Transient, p.DeliveryMode)
	assert.Equal(t, "claim.submitted", p.Headers["event_name"])
	assert.Equal(t, "clm_01", p.Headers["claim_id"])
	assert.Equal(t, []byte(msg.Payload), p.Body)

	assert.Equal(t, amqp.Persistent, toPublishing(msg, true, now).DeliveryMode)
}
