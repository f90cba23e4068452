package queue

import (
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"
)

// StartStatusConsumer connects to RabbitMQ, declares the booking.status
// queue and consumes it, writing one structured log line per event.
// The function runs a reconnect loop with exponential backoff and never
// returns under normal operation; malformed messages are rejected
// without requeue so the stream keeps moving.  Run it on its own
// goroutine.
func StartStatusConsumer(url string, logger zerolog.Logger) {
	if url == "" {
		logger.Info().Msg("booking-consumer: no broker configured, consumer disabled")
		return
	}
	backoff := time.Second
	for {
		conn, err := amqp.Dial(url)
		if err != nil {
			logger.Warn().Err(err).Dur("retry_in", backoff).Msg("booking-consumer: dial failed")
			time.Sleep(backoff)
			if backoff < 30*time.Second {
				backoff *= 2
			}
			continue
		}
		backoff = time.Second // reset after successful connect

		if err := consumeLoop(conn, logger); err != nil {
			logger.Warn().Err(err).Msg("booking-consumer: consume loop ended, reconnecting")
			time.Sleep(2 * time.Second)
		}
	}
}

func consumeLoop(conn *amqp.Connection, logger zerolog.Logger) error {
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("channel open: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if _, err := ch.QueueDeclare(StatusQueueName, true, false, false, false, nil); err != nil {
		return fmt.Errorf("queue declare: %w", err)
	}

	deliveries, err := ch.Consume(StatusQueueName, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("consume: %w", err)
	}

	for d := range deliveries {
		var ev BookingStatusEvent
		if err := json.Unmarshal(d.Body, &ev); err != nil {
			logger.Warn().Err(err).Msg("booking-consumer: bad payload")
			_ = d.Reject(false)
			continue
		}
		logger.Info().
			Uint64("booking_id", ev.BookingID).
			Uint64("item_id", ev.ItemID).
			Str("item_name", ev.ItemName).
			Uint64("booker_id", ev.BookerID).
			Uint64("owner_id", ev.OwnerID).
			Str("status", ev.Status).
			Str("start", ev.Start).
			Str("end", ev.End).
			Msg("booking status changed")
		_ = d.Ack(false)
	}
	return fmt.Errorf("delivery channel closed")
}
