package memory

import (
	"context"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/claimsdesk/claims-service/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublishThenSubscribe(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	ps := NewPubSub(logger.NewNoopLogger())
	defer ps.Close()

	msg := message.NewMessage("msg_1", []byte(`{"claimId":"clm_1"}`))
	msg.Metadata.Set("event_name", "claim.submitted")
	require.NoError(t, ps.Publish(ctx, "claims_submitted", msg))

	messages, err := ps.Subscribe(ctx, "claims_submitted")
	require.NoError(t, err)

	select {
	case got := <-messages:
		assert.Equal(t, "msg_1", got.UUID)
		assert.Equal(t, "claim.submitted", got.Metadata.Get("event_name"))
		assert.JSONEq(t, `{"claimId":"clm_1"}`, string(got.Payload))
		got.Ack()
	case <-ctx.Done():
		t.Fatal("message was not delivered")
	}
}
