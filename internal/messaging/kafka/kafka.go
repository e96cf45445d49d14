package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	kafkaGo "github.com/segmentio/kafka-go"

	"storefront/internal/messaging"
)

// Broker publishes JSON events through a single long-lived writer.
type Broker struct {
	writer *kafkaGo.Writer
}

// NewKafkaPublisher creates a publisher that writes to any topic on brokers.
// Close releases the underlying writer.
func NewKafkaPublisher(brokers []string) *Broker {
	return &Broker{writer: &kafkaGo.Writer{
		Addr:         kafkaGo.TCP(brokers...),
		Balancer:     &kafkaGo.Hash{},
		RequiredAcks: kafkaGo.RequireOne,
		BatchTimeout: 10 * time.Millisecond,
	}}
}

var _ messaging.Publisher = (*Broker)(nil)

func (k *Broker) PublishEvent(ctx context.Context, topic string, key string, event any) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	return k.writer.WriteMessages(ctx, kafkaGo.Message{
		Topic: topic,
		Key:   []byte(key),
		Value: payload,
	})
}

func (k *Broker) Close() error {
	return k.writer.Close()
}
