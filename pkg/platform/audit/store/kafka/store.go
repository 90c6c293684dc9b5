// Package kafka ships audit events to a Kafka topic as JSON records keyed by
// subject, so all events for a resident land on the same partition.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/twmb/franz-go/pkg/kgo"

	audit "resident/pkg/platform/audit"
)

// Producer is the subset of *kgo.Client used by the store.
type Producer interface {
	ProduceSync(ctx context.Context, rs ...*kgo.Record) kgo.ProduceResults
}

// Store implements audit.Store by producing to a Kafka topic.
type Store struct {
	producer Producer
	topic    string
}

func New(producer Producer, topic string) *Store {
	return &Store{producer: producer, topic: topic}
}

type payload struct {
	ID          string `json:"id"`
	Category    string `json:"category"`
	Type        string `json:"type"`
	Timestamp   string `json:"timestamp"`
	Action      string `json:"action"`
	Description string `json:"description,omitempty"`
	Subject     string `json:"subject"`
	Reason      string `json:"reason,omitempty"`
	RequestID   string `json:"request_id,omitempty"`
	ClientIP    string `json:"client_ip,omitempty"`
	Device      string `json:"device,omitempty"`
	Module      string `json:"module,omitempty"`
}

func (s *Store) Append(ctx context.Context, event audit.Event) error {
	value, err := json.Marshal(payload{
		ID:          event.ID,
		Category:    string(event.Category),
		Type:        string(event.Type),
		Timestamp:   event.Timestamp.UTC().Format(time.RFC3339Nano),
		Action:      event.Action,
		Description: event.Description,
		Subject:     event.Subject,
		Reason:      event.Reason,
		RequestID:   event.RequestID,
		ClientIP:    event.ClientIP,
		Device:      event.Device,
		Module:      event.Module,
	})
	if err != nil {
		return fmt.Errorf("marshal audit payload: %w", err)
	}

	record := &kgo.Record{
		Topic: s.topic,
		Key:   []byte(event.Subject),
		Value: value,
		Headers: []kgo.RecordHeader{
			{Key: "event", Value: []byte(event.Action)},
			{Key: "category", Value: []byte(event.Category)},
		},
	}
	if err := s.producer.ProduceSync(ctx, record).FirstErr(); err != nil {
		return fmt.Errorf("produce audit event: %w", err)
	}
	return nil
}
