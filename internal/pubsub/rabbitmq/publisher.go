package rabbitmq

import (
	"context"
	"sync"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/claimsdesk/claims-service/internal/config"
	ierr "github.com/claimsdesk/claims-service/internal/errors"
	"github.com/claimsdesk/claims-service/internal/logger"
	"github.com/claimsdesk/claims-service/internal/pubsub"
	amqp "github.com/rabbitmq/amqp091-go"
)

const contentTypeJSON = "application/json"

// Publisher keeps one connection and one confirm-mode channel open and
// re-dials them when the broker drops either. Messages go to the default
// exchange with the queue name as routing key.
type Publisher struct {
	cfg    config.RabbitMQConfig
	logger *logger.Logger

	mu       sync.Mutex
	conn     *amqp.Connection
	channel  *amqp.Channel
	declared map[string]struct{}
	closed   bool
}

// NewPublisher dials messaging.rabbitmq.url
func NewPublisher(cfg *config.Configuration, logger *logger.Logger) (pubsub.Publisher, error) {
	p := &Publisher{
		cfg:      cfg.Messaging.RabbitMQ,
		logger:   logger,
		declared: make(map[string]struct{}),
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.connect(); err != nil {
		return nil, err
	}
	return p, nil
}

// connect must be called with mu held
func (p *Publisher) connect() error {
	conn, err := amqp.Dial(p.cfg.URL)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to connect to RabbitMQ").
			Mark(ierr.ErrNotification)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return ierr.WithError(err).
			WithHint("Failed to open RabbitMQ channel").
			Mark(ierr.ErrNotification)
	}

	if err := ch.Confirm(false); err != nil {
		ch.Close()
		conn.Close()
		return ierr.WithError(err).
			WithHint("Failed to enable publisher confirms").
			Mark(ierr.ErrNotification)
	}

	p.conn = conn
	p.channel = ch
	p.declared = make(map[string]struct{})
	p.logger.Infow("connected to rabbitmq", "durable_queue", p.cfg.DurableQueue)
	return nil
}

// ensureChannel must be called with mu held
func (p *Publisher) ensureChannel() error {
	if p.closed {
		return ierr.NewError("publisher is closed").
			WithHint("Message broker connection is closed").
			Mark(ierr.ErrNotification)
	}
	if p.conn != nil && !p.conn.IsClosed() && p.channel != nil && !p.channel.IsClosed() {
		return nil
	}

	p.logger.Warnw("rabbitmq connection lost, reconnecting")
	p.closeLocked()
	return p.connect()
}

// ensureQueue must be called with mu held
func (p *Publisher) ensureQueue(queue string) error {
	if _, ok := p.declared[queue]; ok {
		return nil
	}
	_, err := p.channel.QueueDeclare(
		queue,
		p.cfg.DurableQueue, // durable
		false,              // auto-delete
		false,              // exclusive
		false,              // no-wait
		nil,
	)
	if err != nil {
		return ierr.WithError(err).
			WithHintf("Failed to declare queue %s", queue).
			Mark(ierr.ErrNotification)
	}
	p.declared[queue] = struct{}{}
	return nil
}

// Publish waits for the broker to confirm the message. It never waits for a consumer.
func (p *Publisher) Publish(ctx context.Context, queue string, msg *message.Message) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.ensureChannel(); err != nil {
		return err
	}
	if err := p.ensureQueue(queue); err != nil {
		return err
	}

	confirm, err := p.channel.PublishWithDeferredConfirmWithContext(
		ctx,
		"",    // default exchange
		queue, // routing key
		false, // mandatory
		false, // immediate
		toPublishing(msg, p.cfg.DurableQueue, time.Now().UTC()),
	)
	if err != nil {
		return ierr.WithError(err).
			WithHintf("Failed to publish message to queue %s", queue).
			Mark(ierr.ErrNotification)
	}

	timeout := p.cfg.ConfirmTimeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	waitCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	acked, err := confirm.WaitContext(waitCtx)
	if err != nil {
		return ierr.WithError(err).
			WithHintf("Broker did not confirm message on queue %s", queue).
			Mark(ierr.ErrNotification)
	}
	if !acked {
		return ierr.NewErrorf("broker nacked message %s", msg.UUID).
			WithHintf("Broker rejected message on queue %s", queue).
			Mark(ierr.ErrNotification)
	}
	return nil
}

func toPublishing(msg *message.Message, persistent bool, now time.Time) amqp.Publishing {
	headers := amqp.Table{}
	for k, v := range msg.Metadata {
		headers[k] = v
	}

	mode := amqp.Transient
	if persistent {
		mode = amqp.Persistent
	}

	return amqp.Publishing{
		ContentType:  contentTypeJSON,
		MessageId:    msg.UUID,
		Timestamp:    now,
		DeliveryMode: mode,
		Headers:      headers,
		Body:         msg.Payload,
	}
}

func (p *Publisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closed = true
	return p.closeLocked()
}

func (p *Publisher) closeLocked() error {
	var err error
	if p.channel != nil && !p.channel.IsClosed() {
		err = p.channel.Close()
	}
	if p.conn != nil && !p.conn.IsClosed() {
		if cerr := p.conn.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	p.channel = nil
	p.conn = nil
	return err
}
