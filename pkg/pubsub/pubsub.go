// Package pubsub is a typed in-process broker. The analyzer publishes
// finished reports on it; the serve command and the TUI subscribe.
package pubsub

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
)

// ErrShutdown is returned when subscribing to a broker that was shut down.
var ErrShutdown = errors.New("pubsub: broker is shut down")

// DefaultBuffer is the per-subscription channel capacity.
const DefaultBuffer = 64

// Broker delivers messages of type T to the subscribers of a topic.
// Publishing never blocks: a subscriber whose buffer is full misses the
// message and the drop is counted.
type Broker[T any] struct {
	subscribers map[string]map[*Subscription[T]]bool
	mu          sync.RWMutex
	shutdown    chan struct{}
	shutdownMu  sync.Mutex
	isShutdown  bool
	buffer      int
	dropped     atomic.Uint64
}

// Subscription represents a subscription to a topic
type Subscription[T any] struct {
	topic     string
	channel   chan T
	broker    *Broker[T]
	cancel    context.CancelFunc
	closeOnce sync.Once
}

// NewBroker creates a broker whose subscriptions buffer up to buffer
// messages; buffer <= 0 selects DefaultBuffer.
func NewBroker[T any](buffer int) *Broker[T] {
	if buffer <= 0 {
		buffer = DefaultBuffer
	}
	return &Broker[T]{
		subscribers: make(map[string]map[*Subscription[T]]bool),
		shutdown:    make(chan struct{}),
		buffer:      buffer,
	}
}

// Subscribe creates a new subscription to a topic. It ends when ctx is
// cancelled, when Unsubscribe is called or when the broker shuts down.
func (b *Broker[T]) Subscribe(ctx context.Context, topic string) (*Subscription[T], error) {
	b.shutdownMu.Lock()
	defer b.shutdownMu.Unlock()
	if b.isShutdown {
		return nil, ErrShutdown
	}

	subCtx, cancel := context.WithCancel(ctx)
	sub := &Subscription[T]{
		topic:   topic,
		channel: make(chan T, b.buffer),
		broker:  b,
		cancel:  cancel,
	}

	b.mu.Lock()
	if b.subscribers[topic] == nil {
		b.subscribers[topic] = make(map[*Subscription[T]]bool)
	}
	b.subscribers[topic][sub] = true
	b.mu.Unlock()

	go func() {
		select {
		case <-subCtx.Done():
			sub.Unsubscribe()
		case <-b.shutdown:
			sub.cancel()
		}
	}()

	return sub, nil
}

// Publish sends a message to all subscribers of a topic and returns how
// many received it.
func (b *Broker[T]) Publish(topic string, message T) int {
	// Holding the read lock keeps Unsubscribe and Shutdown from closing a
	// channel mid-send; sends never block.
	b.mu.RLock()
	defer b.mu.RUnlock()

	delivered := 0
	for sub := range b.subscribers[topic] {
		select {
		case sub.channel <- message:
			delivered++
		default:
			b.dropped.Add(1)
		}
	}
	return delivered
}

// SubscriberCount returns the number of subscribers for a topic
func (b *Broker[T]) SubscriberCount(topic string) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subscribers[topic])
}

// Dropped returns the number of messages lost to full subscriber buffers.
func (b *Broker[T]) Dropped() uint64 {
	return b.dropped.Load()
}

// Shutdown closes all subscriptions. Later publishes are discarded.
func (b *Broker[T]) Shutdown() {
	b.shutdownMu.Lock()
	if b.isShutdown {
		b.shutdownMu.Unlock()
		return
	}
	b.isShutdown = true
	b.shutdownMu.Unlock()

	close(b.shutdown)

	b.mu.Lock()
	for topic, subs := range b.subscribers {
		for sub := range subs {
			sub.close()
		}
		delete(b.subscribers, topic)
	}
	b.mu.Unlock()
}

// Channel returns the subscription's message channel. It is closed when the
// subscription ends.
func (s *Subscription[T]) Channel() <-chan T {
	return s.channel
}

// Unsubscribe removes the subscription
func (s *Subscription[T]) Unsubscribe() {
	s.cancel()

	s.broker.mu.Lock()
	defer s.broker.mu.Unlock()

	if subs := s.broker.subscribers[s.topic]; subs != nil {
		delete(subs, s)
		if len(subs) == 0 {
			delete(s.broker.subscribers, s.topic)
		}
	}
	s.close()
}

// close closes the subscription channel safely (idempotent)
func (s *Subscription[T]) close() {
	s.closeOnce.Do(func() {
		close(s.channel)
	})
}
