// Package kafka publishes audit events to a Kafka topic for downstream
// consumers (long-term archival, SIEM ingestion). Delivery is best-effort:
// the PostgreSQL store is the durable record, Kafka is fan-out.
package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	audit "paperflow/pkg/platform/audit"

	"github.com/twmb/franz-go/pkg/kadm"
	"github.com/twmb/franz-go/pkg/kerr"
	"github.com/twmb/franz-go/pkg/kgo"
)

// Publisher produces audit events to a single topic, keyed by paper ID so
// all events for one paper land on the same partition in order.
type Publisher struct {
	client *kgo.Client
	topic  string
	logger *slog.Logger
}

// New connects to the brokers and ensures the audit topic exists.
func New(ctx context.Context, brokers []string, topic string, logger *slog.Logger) (*Publisher, error) {
	client, err := kgo.NewClient(
		kgo.SeedBrokers(brokers...),
		kgo.DefaultProduceTopic(topic),
		kgo.ProducerBatchCompression(kgo.SnappyCompression()),
		kgo.ProduceRequestTimeout(10 * time.Second),
	)
	if err != nil {
		return nil, fmt.Errorf("create kafka client: %w", err)
	}

	if err := ensureTopic(ctx, client, topic); err != nil {
		client.Close()
		return nil, err
	}

	return &Publisher{
		client: client,
		topic:  topic,
		logger: logger,
	}, nil
}

// ensureTopic creates the audit topic if the cluster does not have it yet.
// Safe to race with other instances doing the same.
func ensureTopic(ctx context.Context, client *kgo.Client, topic string) error {
	admin := kadm.NewClient(client)

	existing, err := admin.ListTopics(ctx, topic)
	if err != nil {
		return fmt.Errorf("list kafka topics: %w", err)
	}
	if existing.Has(topic) {
		return nil
	}

	resp, err := admin.CreateTopics(ctx, 3, 1, nil, topic)
	if err != nil {
		return fmt.Errorf("create kafka topic %q: %w", topic, err)
	}
	for _, result := range resp {
		if result.Err != nil && !errors.Is(result.Err, kerr.TopicAlreadyExists) {
			return fmt.Errorf("create kafka topic %q: %w", topic, result.Err)
		}
	}
	return nil
}

// Publish sends one event. Errors are logged, not returned to the caller's
// request path; the worker invokes this off the hot path.
func (p *Publisher) Publish(ctx context.Context, event audit.Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal audit event: %w", err)
	}

	record := &kgo.Record{
		Topic: p.topic,
		Key:   []byte(event.PaperID.String()),
		Value: payload,
	}

	results := p.client.ProduceSync(ctx, record)
	if err := results.FirstErr(); err != nil {
		return fmt.Errorf("produce audit event: %w", err)
	}
	return nil
}

// Close flushes buffered records and releases the client.
func (p *Publisher) Close() {
	p.client.Close()
}
