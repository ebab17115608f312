package queue

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"country-currency-api/internal/model"
)

// Renderer draws the summary artifact for one snapshot. Satisfied by
// image.Generator.
type Renderer interface {
	Render(total int64, top []model.TopCountry, refreshedAt *string) (string, error)
}

// StartSnapshotConsumer connects to RabbitMQ, declares the durable
// snapshot.refreshed queue and renders the summary image for every event
// received. It runs a reconnect loop with capped exponential backoff and
// never returns under normal operation; rendering failures nack the message
// without requeueing so a bad payload cannot wedge the queue.
func StartSnapshotConsumer(r Renderer) {
	backoff := time.Second
	for {
		conn, err := amqp.Dial(brokerURL())
		if err != nil {
			log.Printf("snapshot-consumer: failed to dial broker: %v; retrying in %s", err, backoff)
			time.Sleep(backoff)
			if backoff < 30*time.Second {
				backoff *= 2
			}
			continue
		}
		backoff = time.Second

		if err := consumeLoop(conn, r); err != nil {
			log.Printf("snapshot-consumer: consume loop ended: %v; reconnecting", err)
			time.Sleep(2 * time.Second)
		}
	}
}

func consumeLoop(conn *amqp.Connection, r Renderer) error {
	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("channel open: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if _, err := ch.QueueDeclare(SnapshotQueueName, true, false, false, false, nil); err != nil {
		return fmt.Errorf("queue declare: %w", err)
	}

	msgs, err := ch.Consume(SnapshotQueueName, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("queue consume: %w", err)
	}

	for d := range msgs {
		if err := handleSnapshot(d.Body, r); err != nil {
			log.Printf("snapshot-consumer: handle event failed: %v", err)
			_ = d.Nack(false, false)
			continue
		}
		_ = d.Ack(false)
	}
	return errors.New("deliveries channel closed")
}

func handleSnapshot(body []byte, r Renderer) error {
	var ev SnapshotRefreshedEvent
	if err := json.Unmarshal(body, &ev); err != nil {
		return fmt.Errorf("unmarshal: %w", err)
	}
	var stamp *string
	if ev.RefreshedAt != "" {
		stamp = &ev.RefreshedAt
	}
	path, err := r.Render(ev.TotalCountries, ev.TopCountries, stamp)
	if err != nil {
		return fmt.Errorf("render summary: %w", err)
	}
	log.Printf("snapshot-consumer: summary image regenerated at %s", path)
	return nil
}
