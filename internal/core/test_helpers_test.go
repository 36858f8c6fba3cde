package core

import (
	"context"
	"testing"
	"time"
)

var fixedTime = time.Date(2024, 3, 1, 14, 5, 9, 0, time.UTC)

func fixedClock() time.Time { return fixedTime }

func startHub(t *testing.T) *Hub {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	t.Cleanup(cancel)

	hub := NewHub(HubConfig{Clock: fixedClock})
	go hub.Run(ctx)
	return hub
}

// connect registers a client and consumes its welcome message.
func connect(t *testing.T, hub *Hub, id string) *Client {
	t.Helper()

	c := NewClient(id, 64)
	if err := hub.RegisterClient(context.Background(), c); err != nil {
		t.Fatalf("register %s: %v", id, err)
	}
	ev := mustEvent(t, c.Events, EventMessage)
	if ev.Message.Text != "Welcome to chat app!" {
		t.Fatalf("unexpected welcome: %+v", ev.Message)
	}
	return c
}

func submit(t *testing.T, hub *Hub, cmd Command) {
	t.Helper()
	if err := hub.Submit(context.Background(), cmd); err != nil {
		t.Fatalf("submit %v: %v", cmd.Kind, err)
	}
}

// settle waits until the hub has applied every command submitted so far.
func settle(t *testing.T, hub *Hub) []Connection {
	t.Helper()
	conns, err := hub.Snapshot(context.Background())
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	return conns
}

func drain(ch <-chan *Event) {
	for {
		select {
		case <-ch:
		default:
			return
		}
	}
}

func mustEvent(t *testing.T, ch <-chan *Event, kind EventKind) *Event {
	t.Helper()
	return waitFor(t, ch, func(ev *Event) bool { return ev.Kind == kind })
}

func waitFor(t *testing.T, ch <-chan *Event, match func(*Event) bool) *Event {
	t.Helper()

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		select {
		case ev, ok := <-ch:
			if !ok {
				t.Fatalf("event channel closed")
			}
			if ev != nil && match(ev) {
				return ev
			}
		default:
			time.Sleep(5 * time.Millisecond)
		}
	}
	t.Fatalf("expected event not received")
	return nil
}

func userNames(users []Connection) []string {
	names := make([]string, 0, len(users))
	for _, u := range users {
		names = append(names, u.Name)
	}
	return names
}
