package eventbus

import (
	"context"
	"errors"
	"testing"
)

func TestBusPublishBroadcast(t *testing.T) {
	bus := NewBus()
	calledA := false
	calledB := false

	bus.Subscribe(ActivityEventRecorded, func(ctx context.Context, event ActivityEvent) error {
		calledA = true
		return nil
	})
	bus.Subscribe(ActivityEventRecorded, func(ctx context.Context, event ActivityEvent) error {
		calledB = true
		return nil
	})

	if err := bus.Publish(context.Background(), ActivityEvent{Type: ActivityEventRecorded}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !calledA || !calledB {
		t.Fatalf("expected handlers to be called")
	}
}

func TestBusUnsubscribe(t *testing.T) {
	bus := NewBus()
	called := false
	unsubscribe := bus.Subscribe(ActivityEventRecorded, func(ctx context.Context, event ActivityEvent) error {
		called = true
		return nil
	})
	unsubscribe()

	if err := bus.Publish(context.Background(), ActivityEvent{Type: ActivityEventRecorded}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if called {
		t.Fatalf("expected handler to be unsubscribed")
	}
}

func TestBusPublishJoinErrors(t *testing.T) {
	bus := NewBus()
	bus.Subscribe(ActivityEventRecorded, func(ctx context.Context, event ActivityEvent) error {
		return errors.New("err-a")
	})
	bus.Subscribe(ActivityEventRecorded, func(ctx context.Context, event ActivityEvent) error {
		return errors.New("err-b")
	})

	if err := bus.Publish(context.Background(), ActivityEvent{Type: ActivityEventRecorded}); err == nil {
		t.Fatalf("expected error")
	}
}
