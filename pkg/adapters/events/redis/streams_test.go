package redis

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/aescanero/shortcast/pkg/domain"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestStreamsEventBus_PublishAppendsToStream(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	bus := NewStreamsEventBus(client, "test", zap.NewNop())
	ctx := context.Background()

	event := domain.Event{ID: "e1", Type: domain.EventTypeStageStarted, RunID: "run-1", Stage: domain.StateRendering}
	require.NoError(t, bus.Publish(ctx, domain.RunEventsTopic, event))

	entries, err := client.XRange(ctx, "test:events:run.events", "-", "+").Result()
	require.NoError(t, err)
	require.Len(t, entries, 1)

	var decoded domain.Event
	require.NoError(t, json.Unmarshal([]byte(entries[0].Values["data"].(string)), &decoded))
	assert.Equal(t, event.ID, decoded.ID)
	assert.Equal(t, domain.StateRendering, decoded.Stage)
}
