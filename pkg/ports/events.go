package ports

import (
	"context"

	"github.com/aescanero/shortcast/pkg/domain"
)

// EventHandler handles one event delivered by the bus
type EventHandler func(ctx context.Context, event domain.Event) error

// EventBus publishes run lifecycle events to subscribers
type EventBus interface {
	Publish(ctx context.Context, topic string, event domain.Event) error
	Subscribe(ctx context.Context, topic string, handler EventHandler) error
	Close() error
}
