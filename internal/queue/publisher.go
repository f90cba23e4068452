package queue

import (
	"context"
	"encoding/json"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"
)

// StatusQueueName is the durable queue carrying booking status events.
const StatusQueueName = "booking.status"

// Publisher sends booking status events to RabbitMQ.  A connection is
// dialed per publish so a broker restart never leaves the service
// holding a dead channel; publish failures are logged and returned so
// callers can ignore them without interrupting the request flow.
type Publisher struct {
	url    string
	logger zerolog.Logger
}

// NewPublisher returns a Publisher for the given broker URL.  An empty
// URL produces a disabled publisher whose Publish is a no-op.
func NewPublisher(url string, logger zerolog.Logger) *Publisher {
	return &Publisher{url: url, logger: logger}
}

// Publish sends one BookingStatusEvent to the booking.status queue.
// Messages are marked persistent so they survive broker restarts.
func (p *Publisher) Publish(ctx context.Context, event BookingStatusEvent) error {
	if p == nil || p.url == "" {
		return nil
	}
	conn, err := amqp.Dial(p.url)
	if err != nil {
		p.logger.Warn().Err(err).Msg("rabbitmq: dial failed")
		return err
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		p.logger.Warn().Err(err).Msg("rabbitmq: channel open failed")
		return err
	}
	defer func() { _ = ch.Close() }()

	// Ensure the queue exists (idempotent). Durable so messages survive
	// broker restarts.
	if _, err := ch.QueueDeclare(StatusQueueName, true, false, false, false, nil); err != nil {
		p.logger.Warn().Err(err).Msg("rabbitmq: queue declare failed")
		return err
	}

	body, err := json.Marshal(event)
	if err != nil {
		p.logger.Warn().Err(err).Msg("rabbitmq: marshal event failed")
		return err
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}
	if err := ch.PublishWithContext(ctx, "", StatusQueueName, false, false, pub); err != nil {
		p.logger.Warn().Err(err).Msg("rabbitmq: publish failed")
		return err
	}
	return nil
}
