package kafka_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resident/internal/platform/config"
	"resident/internal/platform/kafka"
)

func TestNewClient_NoBrokersDisablesShipping(t *testing.T) {
	client, err := kafka.NewClient(context.Background(), config.KafkaConfig{AuditTopic: "resident.audit"})
	require.NoError(t, err)
	assert.Nil(t, client)
}
