//go:build integration

package kafka_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/twmb/franz-go/pkg/kgo"

	"resident/internal/platform/config"
	"resident/internal/platform/kafka"
	audit "resident/pkg/platform/audit"
	auditkafka "resident/pkg/platform/audit/store/kafka"
	"resident/pkg/testutil/containers"
)

func TestAuditTopicRoundTrip(t *testing.T) {
	rp := containers.GetManager().GetRedpanda(t)
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	cfg := config.KafkaConfig{
		Brokers:           rp.Brokers,
		AuditTopic:        "resident.audit." + uuid.NewString(),
		Partitions:        1,
		ReplicationFactor: 1,
	}
	producer, err := kafka.NewClient(ctx, cfg)
	require.NoError(t, err)
	require.NotNil(t, producer)
	defer producer.Close()

	require.NoError(t, kafka.EnsureTopic(ctx, producer, cfg))
	require.NoError(t, kafka.EnsureTopic(ctx, producer, cfg), "an existing topic is not an error")

	event := audit.NewEvent(audit.EventSendOTPSuccess, "resident-otp", "1234567890")
	event.ID = uuid.NewString()
	event.Timestamp = time.Now()
	event.Reason = "sent"
	require.NoError(t, auditkafka.New(producer, cfg.AuditTopic).Append(ctx, event))

	consumer, err := kgo.NewClient(
		kgo.SeedBrokers(cfg.Brokers...),
		kgo.ConsumeTopics(cfg.AuditTopic),
		kgo.ConsumeResetOffset(kgo.NewOffset().AtStart()),
	)
	require.NoError(t, err)
	defer consumer.Close()

	var records []*kgo.Record
	for len(records) == 0 {
		fetches := consumer.PollFetches(ctx)
		require.NoError(t, ctx.Err(), "no record consumed before the deadline")
		fetches.EachError(func(topic string, partition int32, err error) {
			t.Fatalf("fetch %s/%d: %v", topic, partition, err)
		})
		records = append(records, fetches.Records()...)
	}

	require.Len(t, records, 1)
	got := records[0]
	assert.Equal(t, "1234567890", string(got.Key))

	var body map[string]any
	require.NoError(t, json.Unmarshal(got.Value, &body))
	assert.Equal(t, event.ID, body["id"])
	assert.Equal(t, string(audit.EventSendOTPSuccess), body["action"])
	assert.Equal(t, "sent", body["reason"])
	assert.Equal(t, "1234567890", body["subject"])

	headers := map[string]string{}
	for _, h := range got.Headers {
		headers[h.Key] = string(h.Value)
	}
	assert.Equal(t, string(audit.EventSendOTPSuccess), headers["event"])
}
