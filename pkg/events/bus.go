// Package events provides a typed, synchronous publish/subscribe bus.
//
// Topics carry their payload type, so a subscriber for a topic can only be
// registered with a function accepting that payload:
//
//	var Loaded = events.NewTopic[[]string]("names-loaded")
//
//	bus := events.NewBus(logger)
//	sub := events.Subscribe(bus, Loaded, func(names []string) { ... })
//	defer sub.Cancel()
//	events.Publish(bus, Loaded, []string{"bulbasaur"})
//
// # Delivery
//
// Publish calls every subscriber registered at the moment of the call, in
// subscription order, on the publishing goroutine, and returns once all of
// them have run. Events are never buffered: a subscriber added after a
// publish does not see it. A subscriber that panics is logged and skipped;
// the remaining subscribers still receive the event.
package events

import (
	"fmt"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

// Topic names an event stream whose payloads have type T.
type Topic[T any] struct {
	name string
}

// NewTopic declares a topic. Two topics with the same name and payload type
// address the same subscribers.
func NewTopic[T any](name string) Topic[T] {
	return Topic[T]{name: name}
}

// Name returns the topic name.
func (t Topic[T]) Name() string { return t.name }

// Bus routes published events to subscribers. The zero value is not usable;
// create one with [NewBus]. A Bus is safe for concurrent use.
type Bus struct {
	mu     sync.RWMutex
	subs   map[string][]subscriber
	logger *log.Logger
}

type subscriber struct {
	id      uuid.UUID
	deliver func(any)
}

// NewBus creates a bus. Subscriber panics are reported to logger; a nil
// logger uses log.Default().
func NewBus(logger *log.Logger) *Bus {
	if logger == nil {
		logger = log.Default()
	}
	return &Bus{subs: make(map[string][]subscriber), logger: logger}
}

// Subscription is a handle returned by [Subscribe].
type Subscription struct {
	bus   *Bus
	topic string
	id    uuid.UUID
}

// ID uniquely identifies the subscription.
func (s Subscription) ID() string { return s.id.String() }

// Topic returns the name of the subscribed topic.
func (s Subscription) Topic() string { return s.topic }

// Cancel removes the subscriber. It is safe to call more than once and from
// inside a handler; a cancelled subscriber misses any publish that starts
// after Cancel returns.
func (s Subscription) Cancel() {
	if s.bus == nil {
		return
	}
	s.bus.mu.Lock()
	defer s.bus.mu.Unlock()

	subs := s.bus.subs[s.topic]
	for i, sub := range subs {
		if sub.id == s.id {
			s.bus.subs[s.topic] = append(subs[:i:i], subs[i+1:]...)
			break
		}
	}
	if len(s.bus.subs[s.topic]) == 0 {
		delete(s.bus.subs, s.topic)
	}
}

// Subscribe registers fn for events on topic.
func Subscribe[T any](b *Bus, topic Topic[T], fn func(T)) Subscription {
	sub := subscriber{
		id:      uuid.New(),
		deliver: func(v any) { fn(v.(T)) },
	}

	b.mu.Lock()
	b.subs[topic.name] = append(b.subs[topic.name], sub)
	b.mu.Unlock()

	return Subscription{bus: b, topic: topic.name, id: sub.id}
}

// Publish delivers v to every current subscriber of topic and returns how
// many handled it without panicking.
func Publish[T any](b *Bus, topic Topic[T], v T) int {
	b.mu.RLock()
	subs := append([]subscriber(nil), b.subs[topic.name]...)
	b.mu.RUnlock()

	delivered := 0
	for _, sub := range subs {
		if b.deliver(topic.name, sub, v) {
			delivered++
		}
	}
	return delivered
}

// Subscribers returns the number of subscribers on topic.
func Subscribers[T any](b *Bus, topic Topic[T]) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs[topic.name])
}

func (b *Bus) deliver(topic string, sub subscriber, v any) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.Error("event subscriber panicked",
				"topic", topic,
				"subscription", sub.id.String(),
				"panic", fmt.Sprint(r))
			ok = false
		}
	}()
	sub.deliver(v)
	return true
}
