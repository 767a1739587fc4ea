package memory

import (
	"context"
	"testing"
	"time"

	"github.com/aescanero/shortcast/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryEventBus_PublishSubscribe(t *testing.T) {
	bus := NewInMemoryEventBus()
	ctx, cancel := context.WithCancel(context.Background())

	var got []domain.Event
	require.NoError(t, bus.Subscribe(ctx, domain.RunEventsTopic, func(ctx context.Context, e domain.Event) error {
		got = append(got, e)
		return nil
	}))

	require.NoError(t, bus.Publish(ctx, domain.RunEventsTopic, domain.Event{ID: "1", RunID: "r"}))
	require.NoError(t, bus.Publish(ctx, "other", domain.Event{ID: "2"}))

	require.Len(t, got, 1)
	assert.Equal(t, "1", got[0].ID)

	cancel()
	assert.Eventually(t, func() bool {
		return bus.SubscriberCount(domain.RunEventsTopic) == 0
	}, time.Second, 10*time.Millisecond)
}

func TestInMemoryEventBus_Close(t *testing.T) {
	bus := NewInMemoryEventBus()
	require.NoError(t, bus.Subscribe(context.Background(), "t", func(context.Context, domain.Event) error { return nil }))
	require.NoError(t, bus.Close())
	assert.Equal(t, 0, bus.SubscriberCount("t"))
}
