package events

import (
	"context"

	"github.com/mkopp/mysite-backend/domain"
	"github.com/sirupsen/logrus"
)

// Subscriber consumes one event. Subscribers run on the dispatcher
// goroutine, decoupled from the request that produced the event.
type Subscriber func(ctx context.Context, event domain.Event)

// Bus is an in-process, best-effort event channel. Services publish
// into a bounded queue and a single dispatcher task fans events out to
// the registered subscribers. Delivery failures never reach the
// publisher.
type Bus struct {
	ch          chan domain.Event
	subscribers []Subscriber
}

var _ domain.EventPublisher = (*Bus)(nil)

func NewBus(buffer int, subscribers ...Subscriber) *Bus {
	return &Bus{
		ch:          make(chan domain.Event, buffer),
		subscribers: subscribers,
	}
}

// Publish enqueues an event without blocking. A full queue drops the
// event instead of stalling the write path that produced it.
func (b *Bus) Publish(event domain.Event) {
	select {
	case b.ch <- event:
	default:
		logrus.Warnf("event bus queue is full, %s event dropped", event.Topic())
	}
}

func (b *Bus) Start(ctx context.Context) {
	for {
		select {
		case event := <-b.ch:
			b.dispatch(ctx, event)
		case <-ctx.Done():
			logrus.Info("shutting down event bus, flushing remaining events...")
			b.drain()
			return
		}
	}
}

func (b *Bus) drain() {
	for {
		select {
		case event := <-b.ch:
			b.dispatch(context.Background(), event)
		default:
			return
		}
	}
}

func (b *Bus) dispatch(ctx context.Context, event domain.Event) {
	for _, sub := range b.subscribers {
		b.deliver(ctx, sub, event)
	}
}

func (b *Bus) deliver(ctx context.Context, sub Subscriber, event domain.Event) {
	defer func() {
		if r := recover(); r != nil {
			logrus.Errorf("event subscriber panicked on %s: %v", event.Topic(), r)
		}
	}()
	sub(ctx, event)
}
