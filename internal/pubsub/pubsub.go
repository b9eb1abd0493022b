package pubsub

import (
	"context"

	"github.com/ThreeDotsLabs/watermill/message"
)

// Publisher delivers a message to a topic or queue. A nil error means the
// broker accepted the message, not that anything consumed it.
type Publisher interface {
	Publish(ctx context.Context, topic string, msg *message.Message) error
	// Close releases the broker connection
	Close() error
}

// Subscriber consumes messages from a topic or queue
type Subscriber interface {
	Subscribe(ctx context.Context, topic string) (<-chan *message.Message, error)
	Close() error
}

// PubSub combines both Publisher and Subscriber interfaces
type PubSub interface {
	Publisher
	Subscriber
}
