package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/znsio/specmatic-catalog-admin-go/internal/models"
)

// EventPublisher announces confirmed product changes to other systems.
type EventPublisher interface {
	Publish(ctx context.Context, message models.ProductMessage) error
}

type KafkaPublisher struct {
	writer *kafka.Writer
}

func NewKafkaPublisher(brokers []string, topic string) *KafkaPublisher {
	w := kafka.NewWriter(kafka.WriterConfig{
		Brokers:      brokers,
		Topic:        topic,
		Balancer:     &kafka.LeastBytes{},
		WriteTimeout: 10 * time.Second,
		ReadTimeout:  10 * time.Second,
		Async:        false,
	})
	return &KafkaPublisher{writer: w}
}

func (p *KafkaPublisher) Publish(ctx context.Context, message models.ProductMessage) error {
	msg, err := encodeProductMessage(message)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("error writing message to Kafka: %w", err)
	}
	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

// Messages are keyed by product id so all changes to one product stay ordered
// within a partition.
func encodeProductMessage(message models.ProductMessage) (kafka.Message, error) {
	value, err := json.Marshal(message)
	if err != nil {
		return kafka.Message{}, fmt.Errorf("error marshaling product message: %w", err)
	}

	return kafka.Message{
		Key:   []byte(message.ProductID),
		Value: value,
		Time:  message.OccurredAt,
		Headers: []kafka.Header{
			{Key: "event-type", Value: []byte(message.Type)},
		},
	}, nil
}

type nopPublisher struct{}

func (nopPublisher) Publish(context.Context, models.ProductMessage) error { return nil }
