package notifier

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"lendcircle-backend/internal/event"
)

func TestAttach_PublishesEventsToChannel(t *testing.T) {
	mr := miniredis.RunT(t)
	defer mr.Close()
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	const channel = "lendcircle:events"
	sub := rdb.Subscribe(context.Background(), channel)
	t.Cleanup(func() { _ = sub.Close() })
	// Wait for the subscription before publishing
	if _, err := sub.Receive(context.Background()); err != nil {
		t.Fatalf("subscribe: %v", err)
	}

	d := event.NewDispatcher()
	n := NewRedis(rdb, channel)
	detach := n.Attach(d)
	defer detach()

	want := event.Event{
		Kind:       event.LoanAccepted,
		LoanID:     "11111111111111111111111111111111",
		ActorID:    "bbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb",
		LenderID:   "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa",
		BorrowerID: "bbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb",
	}
	d.Publish(want)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	msg, err := sub.ReceiveMessage(ctx)
	if err != nil {
		t.Fatalf("receive: %v", err)
	}

	var got event.Event
	if err := json.Unmarshal([]byte(msg.Payload), &got); err != nil {
		t.Fatalf("bad payload: %v (raw=%s)", err, msg.Payload)
	}
	if got.Kind != want.Kind || got.LoanID != want.LoanID || got.ActorID != want.ActorID {
		t.Fatalf("payload mismatch: %+v", got)
	}
	if got.At.IsZero() {
		t.Fatalf("dispatcher did not stamp At before delivery")
	}
}

func TestDetach_StopsForwarding(t *testing.T) {
	mr := miniredis.RunT(t)
	defer mr.Close()
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	const channel = "lendcircle:events"
	sub := rdb.Subscribe(context.Background(), channel)
	t.Cleanup(func() { _ = sub.Close() })
	if _, err := sub.Receive(context.Background()); err != nil {
		t.Fatalf("subscribe: %v", err)
	}

	d := event.NewDispatcher()
	detach := NewRedis(rdb, channel).Attach(d)
	detach()

	d.Publish(event.Event{Kind: event.LoanCreated, LoanID: "x"})

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()
	if msg, err := sub.ReceiveMessage(ctx); err == nil {
		t.Fatalf("received %q after detach", msg.Payload)
	}
}
