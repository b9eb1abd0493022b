package testutil

import (
	"context"
	"sync"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/claimsdesk/claims-service/internal/pubsub"
)

var _ pubsub.Publisher = (*InMemoryPubSub)(nil)

// InMemoryPubSub records every published message. SetFailure makes
// subsequent publishes fail without recording anything.
type InMemoryPubSub struct {
	messages map[string][]*message.Message
	failWith error
	attempts int
	mu       sync.RWMutex
}

// NewInMemoryPubSub creates a new instance of InMemoryPubSub
func NewInMemoryPubSub() *InMemoryPubSub {
	return &InMemoryPubSub{
		messages: make(map[string][]*message.Message),
	}
}

// Publish implements pubsub.Publisher interface
func (ps *InMemoryPubSub) Publish(_ context.Context, topic string, msg *message.Message) error {
	ps.mu.Lock()
	defer ps.mu.Unlock()

	ps.attempts++
	if ps.failWith != nil {
		return ps.failWith
	}
	ps.messages[topic] = append(ps.messages[topic], msg)
	return nil
}

func (ps *InMemoryPubSub) Close() error {
	ps.ClearMessages()
	return nil
}

// SetFailure makes every following Publish return err. Pass nil to recover.
func (ps *InMemoryPubSub) SetFailure(err error) {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	ps.failWith = err
}

// GetMessages returns all messages published to a topic
func (ps *InMemoryPubSub) GetMessages(topic string) []*message.Message {
	ps.mu.RLock()
	defer ps.mu.RUnlock()

	return append([]*message.Message(nil), ps.messages[topic]...)
}

// Attempts counts every Publish call, failed ones included
func (ps *InMemoryPubSub) Attempts() int {
	ps.mu.RLock()
	defer ps.mu.RUnlock()
	return ps.attempts
}

// ClearMessages clears all stored messages
func (ps *InMemoryPubSub) ClearMessages() {
	ps.mu.Lock()
	defer ps.mu.Unlock()

	ps.messages = make(map[string][]*message.Message)
	ps.attempts = 0
}
