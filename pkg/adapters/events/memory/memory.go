package memory

import (
	"context"
	"sync"

	"github.com/aescanero/shortcast/pkg/domain"
	"github.com/aescanero/shortcast/pkg/ports"
)

// InMemoryEventBus implements EventBus using in-memory handlers
type InMemoryEventBus struct {
	subscribers map[string]map[uint64]ports.EventHandler
	nextID      uint64
	mu          sync.RWMutex
}

// NewInMemoryEventBus creates a new in-memory event bus
func NewInMemoryEventBus() *InMemoryEventBus {
	return &InMemoryEventBus{
		subscribers: make(map[string]map[uint64]ports.EventHandler),
	}
}

// Publish delivers the event to every subscriber of the topic.
// Handlers run synchronously in subscription order.
func (e *InMemoryEventBus) Publish(ctx context.Context, topic string, event domain.Event) error {
	e.mu.RLock()
	handlers := make([]ports.EventHandler, 0, len(e.subscribers[topic]))
	for _, h := range e.subscribers[topic] {
		handlers = append(handlers, h)
	}
	e.mu.RUnlock()

	for _, h := range handlers {
		// handler errors are the subscriber's concern
		_ = h(ctx, event)
	}

	return nil
}

// Subscribe registers a handler until ctx is cancelled
func (e *InMemoryEventBus) Subscribe(ctx context.Context, topic string, handler ports.EventHandler) error {
	e.mu.Lock()
	if e.subscribers[topic] == nil {
		e.subscribers[topic] = make(map[uint64]ports.EventHandler)
	}
	id := e.nextID
	e.nextID++
	e.subscribers[topic][id] = handler
	e.mu.Unlock()

	go func() {
		<-ctx.Done()
		e.unsubscribe(topic, id)
	}()

	return nil
}

// Close removes all subscribers
func (e *InMemoryEventBus) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.subscribers = make(map[string]map[uint64]ports.EventHandler)
	return nil
}

// SubscriberCount returns the number of live subscriptions on topic
func (e *InMemoryEventBus) SubscriberCount(topic string) int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.subscribers[topic])
}

func (e *InMemoryEventBus) unsubscribe(topic string, id uint64) {
	e.mu.Lock()
	defer e.mu.Unlock()

	delete(e.subscribers[topic], id)
	if len(e.subscribers[topic]) == 0 {
		delete(e.subscribers, topic)
	}
}
