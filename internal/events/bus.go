package events

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
)

// Handler reacts to one event. A returned error is logged and swallowed;
// it never reaches the publisher's caller. Handlers run on the publishing
// goroutine, so anything slow or failure-prone must hand off internally.
type Handler func(ctx context.Context, e Event) error

type subscription struct {
	name    string
	handler Handler
}

// Bus is the process-wide, synchronous-dispatch pub/sub pipeline.
// Subscribe only during startup; the registry is read concurrently during
// dispatch without locking and is not safe for registration afterwards.
type Bus struct {
	logger   *logrus.Logger
	handlers map[Topic][]subscription
}

func NewBus(logger *logrus.Logger) *Bus {
	return &Bus{
		logger:   logger,
		handlers: make(map[Topic][]subscription),
	}
}

// Subscribe registers a named handler for the process lifetime. Handlers
// for the same topic run in registration order.
func (b *Bus) Subscribe(topic Topic, name string, h Handler) {
	b.handlers[topic] = append(b.handlers[topic], subscription{name: name, handler: h})
}

// Publish dispatches the event to every subscriber of its topic, in
// registration order, passing the same payload to each. Publish is called
// strictly after the store mutation succeeded; subscribers may assume the
// payload reflects persisted state. A failing or panicking subscriber is
// logged and does not stop later subscribers.
func (b *Bus) Publish(ctx context.Context, topic Topic, payload any, meta Meta) {
	e := Event{Topic: topic, Payload: payload, At: time.Now().UTC(), Meta: meta}
	for _, sub := range b.handlers[topic] {
		b.dispatch(ctx, sub, e)
	}
}

func (b *Bus) dispatch(ctx context.Context, sub subscription, e Event) {
	defer func() {
		if r := recover(); r != nil {
			b.logFailure(sub.name, e, fmt.Errorf("panic: %v", r))
		}
	}()
	if err := sub.handler(ctx, e); err != nil {
		b.logFailure(sub.name, e, err)
	}
}

func (b *Bus) logFailure(name string, e Event, err error) {
	if b.logger == nil {
		return
	}
	b.logger.WithFields(logrus.Fields{
		"subscriber": name,
		"topic":      e.Topic.String(),
	}).WithError(err).Error("event subscriber failed")
}
