package pubsub

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

type score struct {
	RunID string
	Value float64
}

// TestBasicPubSub tests basic publish/subscribe functionality
func TestBasicPubSub(t *testing.T) {
	b := NewBroker[score](0)
	defer b.Shutdown()

	sub, err := b.Subscribe(context.Background(), "tellability")
	if err != nil {
		t.Fatalf("Failed to subscribe: %v", err)
	}

	if n := b.Publish("tellability", score{RunID: "r1", Value: 0.45}); n != 1 {
		t.Errorf("Expected delivery to 1 subscriber, got %d", n)
	}

	select {
	case msg := <-sub.Channel():
		if msg.RunID != "r1" || msg.Value != 0.45 {
			t.Errorf("Unexpected message %+v", msg)
		}
	case <-time.After(time.Second):
		t.Fatal("Timeout waiting for message")
	}

	sub.Unsubscribe()
}

// TestMultipleSubscribers tests multiple subscribers to the same topic
func TestMultipleSubscribers(t *testing.T) {
	b := NewBroker[string](1)
	defer b.Shutdown()

	subs := make([]*Subscription[string], 5)
	for i := range subs {
		sub, err := b.Subscribe(context.Background(), "runs")
		if err != nil {
			t.Fatalf("Failed to subscribe %d: %v", i, err)
		}
		subs[i] = sub
	}

	if n := b.Publish("runs", "done"); n != len(subs) {
		t.Fatalf("Expected %d deliveries, got %d", len(subs), n)
	}
	for i, sub := range subs {
		if msg := <-sub.Channel(); msg != "done" {
			t.Errorf("Subscriber %d got %q", i, msg)
		}
	}
}

// TestTopicIsolation tests that topics do not leak into each other
func TestTopicIsolation(t *testing.T) {
	b := NewBroker[string](1)
	defer b.Shutdown()

	a, _ := b.Subscribe(context.Background(), "a")
	other, _ := b.Subscribe(context.Background(), "b")

	b.Publish("a", "for a")

	if msg := <-a.Channel(); msg != "for a" {
		t.Errorf("Expected 'for a', got %q", msg)
	}
	select {
	case msg := <-other.Channel():
		t.Errorf("Topic b received %q", msg)
	default:
	}
}

// TestUnsubscribe tests that an unsubscribed channel is closed and skipped
func TestUnsubscribe(t *testing.T) {
	b := NewBroker[int](1)
	defer b.Shutdown()

	sub, _ := b.Subscribe(context.Background(), "n")
	sub.Unsubscribe()
	sub.Unsubscribe()

	if _, ok := <-sub.Channel(); ok {
		t.Error("Expected closed channel after Unsubscribe")
	}
	if n := b.Publish("n", 1); n != 0 {
		t.Errorf("Expected no deliveries, got %d", n)
	}
	if c := b.SubscriberCount("n"); c != 0 {
		t.Errorf("Expected 0 subscribers, got %d", c)
	}
}

// TestContextCancellation tests that cancelling the context ends the subscription
func TestContextCancellation(t *testing.T) {
	b := NewBroker[int](1)
	defer b.Shutdown()

	ctx, cancel := context.WithCancel(context.Background())
	sub, _ := b.Subscribe(ctx, "n")
	cancel()

	select {
	case _, ok := <-sub.Channel():
		if ok {
			t.Error("Expected channel to be closed")
		}
	case <-time.After(time.Second):
		t.Fatal("Timeout waiting for subscription to end")
	}
}

// TestConcurrentPublish tests publishing from many goroutines
func TestConcurrentPublish(t *testing.T) {
	const publishers, perPublisher = 8, 50
	b := NewBroker[int](publishers * perPublisher)
	defer b.Shutdown()

	sub, _ := b.Subscribe(context.Background(), "n")

	var wg sync.WaitGroup
	for p := 0; p < publishers; p++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perPublisher; i++ {
				b.Publish("n", i)
			}
		}()
	}
	wg.Wait()

	if got := len(sub.Channel()); got != publishers*perPublisher {
		t.Errorf("Expected %d buffered messages, got %d", publishers*perPublisher, got)
	}
}

// TestDroppedWhenFull tests that a full buffer drops instead of blocking
func TestDroppedWhenFull(t *testing.T) {
	b := NewBroker[int](2)
	defer b.Shutdown()

	sub, _ := b.Subscribe(context.Background(), "n")
	for i := 0; i < 5; i++ {
		b.Publish("n", i)
	}

	if b.Dropped() != 3 {
		t.Errorf("Expected 3 dropped messages, got %d", b.Dropped())
	}
	if first := <-sub.Channel(); first != 0 {
		t.Errorf("Expected oldest message first, got %d", first)
	}
}

// TestShutdown tests that shutdown closes subscriptions and rejects new ones
func TestShutdown(t *testing.T) {
	b := NewBroker[int](1)
	sub, _ := b.Subscribe(context.Background(), "n")

	b.Shutdown()
	b.Shutdown()

	if _, ok := <-sub.Channel(); ok {
		t.Error("Expected closed channel after Shutdown")
	}
	if _, err := b.Subscribe(context.Background(), "n"); !errors.Is(err, ErrShutdown) {
		t.Errorf("Expected ErrShutdown, got %v", err)
	}
	if n := b.Publish("n", 1); n != 0 {
		t.Errorf("Expected no deliveries after shutdown, got %d", n)
	}
}
