package executor

import (
	"testing"

	"github.com/team-rocos/rclgo-executor/middleware"
	"github.com/team-rocos/rclgo-executor/middleware/faketake"
)

func TestTableInsertCountsByKind(t *testing.T) {
	table := NewTable(4)

	sub := faketake.NewSubscription()
	if _, err := table.Insert(Handle{Kind: KindSubscription, Target: sub}); err != nil {
		t.Fatalf("insert: %v", err)
	}
	timer := faketake.NewTimer()
	if _, err := table.Insert(Handle{Kind: KindTimer, Target: timer}); err != nil {
		t.Fatalf("insert: %v", err)
	}

	counters := table.WaitCounters()
	if counters.Subscriptions != 1 || counters.Timers != 1 {
		t.Fatalf("unexpected counters: %+v", counters)
	}
	if table.Count() != 2 {
		t.Fatalf("expected count=2, got %d", table.Count())
	}
}

func TestTableRemovePreservesOrder(t *testing.T) {
	table := NewTable(4)

	a := faketake.NewSubscription()
	b := faketake.NewSubscription()
	c := faketake.NewSubscription()
	for _, s := range []*faketake.Subscription{a, b, c} {
		if _, err := table.Insert(Handle{Kind: KindSubscription, Target: s}); err != nil {
			t.Fatalf("insert: %v", err)
		}
	}

	if err := table.Remove(b); err != nil {
		t.Fatalf("remove: %v", err)
	}

	handles := table.Handles()
	if len(handles) != 2 {
		t.Fatalf("expected 2 handles remaining, got %d", len(handles))
	}
	if handles[0].Target != middleware.Endpoint(a) || handles[1].Target != middleware.Endpoint(c) {
		t.Fatalf("order not preserved after removal: %+v", handles)
	}

	counters := table.WaitCounters()
	if counters.Subscriptions != 2 {
		t.Fatalf("expected 2 subscriptions after removal, got %d", counters.Subscriptions)
	}
}

func TestTableOverflow(t *testing.T) {
	table := NewTable(1)

	if _, err := table.Insert(Handle{Kind: KindTimer, Target: faketake.NewTimer()}); err != nil {
		t.Fatalf("first insert: %v", err)
	}
	if _, err := table.Insert(Handle{Kind: KindTimer, Target: faketake.NewTimer()}); err != ErrOverflow {
		t.Fatalf("expected ErrOverflow, got %v", err)
	}
	if table.WaitCounters().Timers != 1 {
		t.Fatalf("timer counter should remain 1 after rejected insert")
	}
}

func TestTableRemoveNotFound(t *testing.T) {
	table := NewTable(1)
	if err := table.Remove(faketake.NewSubscription()); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
