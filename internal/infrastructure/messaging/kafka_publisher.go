package messaging

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"time"

	"portal_pagos/internal/domain/entities"
	"portal_pagos/internal/usecase/interfaces"

	"github.com/segmentio/kafka-go"
)

// MessageWriter is the part of *kafka.Writer the publisher needs.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaReportPublisher publishes a PaymentReportedEvent per reported
// transaction, keyed by <gateway>:<transaction id>.
type KafkaReportPublisher struct {
	writer MessageWriter
	topic  string
}

var _ interfaces.IReportPublisher = (*KafkaReportPublisher)(nil)

func NewKafkaReportPublisher(broker, topic string) *KafkaReportPublisher {
	logger := log.New(os.Stdout, "kafka-writer: ", 0)
	return NewKafkaReportPublisherWithWriter(&kafka.Writer{
		Addr:         kafka.TCP(broker),
		Topic:        topic,
		Balancer:     &kafka.LeastBytes{},
		Logger:       kafka.LoggerFunc(logger.Printf),
		BatchTimeout: 10 * time.Millisecond,
		RequiredAcks: kafka.RequireOne,
	}, topic)
}

func NewKafkaReportPublisherWithWriter(w MessageWriter, topic string) *KafkaReportPublisher {
	return &KafkaReportPublisher{writer: w, topic: topic}
}

func (p *KafkaReportPublisher) PublishReported(ctx context.Context, event entities.PaymentReportedEvent) error {
	value, err := json.Marshal(event)
	if err != nil {
		return err
	}
	key := string(event.Gateway) + ":" + event.TransactionID
	if err := p.writer.WriteMessages(ctx, kafka.Message{Key: []byte(key), Value: value}); err != nil {
		log.Printf("[report][publisher] write failed topic=%s key=%s err=%v", p.topic, key, err)
		return err
	}
	log.Printf("[report][publisher] published topic=%s key=%s", p.topic, key)
	return nil
}

func (p *KafkaReportPublisher) Close() error {
	return p.writer.Close()
}

// NoopReportPublisher is used when no broker is configured.
type NoopReportPublisher struct{}

var _ interfaces.IReportPublisher = NoopReportPublisher{}

func (NoopReportPublisher) PublishReported(context.Context, entities.PaymentReportedEvent) error {
	return nil
}
