// Package libtest_executor_demo is a runnable, non-_test.go integration
// harness in the spirit of libtest_simple_action: it drives a real
// Executor through a full round against the fake in-memory middleware
// rather than a live DDS transport.
package libtest_executor_demo

import (
	"testing"

	"github.com/google/uuid"

	"github.com/team-rocos/rclgo-executor/action"
	"github.com/team-rocos/rclgo-executor/executor"
	"github.com/team-rocos/rclgo-executor/middleware/faketake"
)

// pingMsg is the demo subscription's message type.
type pingMsg struct {
	Count int
}

// RTTest wires one subscription, one timer, and one action server into a
// single executor and spins it through a few rounds, logging each
// callback invocation the way libtest_simple_action logs action-client
// transitions.
func RTTest(t *testing.T) {
	ctx := faketake.NewContext()
	clock := faketake.NewClock()

	ex, err := executor.New(ctx, 3, faketake.Factory(), clock)
	if err != nil {
		t.Fatalf("could not create executor: %s", err)
	}
	defer ex.Drop()

	sub := faketake.NewSubscription()
	received := 0
	if err := ex.AddSubscription(sub, new(pingMsg), func(msg *pingMsg) {
		received = msg.Count
		t.Logf("subscription callback: count=%d", received)
	}, executor.OnNewData); err != nil {
		t.Fatalf("AddSubscription: %s", err)
	}

	timer := faketake.NewTimer()
	ticks := 0
	if err := ex.AddTimer(timer); err != nil {
		t.Fatalf("AddTimer: %s", err)
	}

	srv := faketake.NewActionServer()
	goalsAccepted := 0
	goalCb := func(gh *action.ServerGoalHandle, _ interface{}) action.GoalDecision {
		goalsAccepted++
		t.Logf("action-server goal callback: goal=%s", gh.GoalUUID)
		return action.AcceptedDecision
	}
	cancelCb := func(gh *action.ServerGoalHandle, _ interface{}) bool {
		return true
	}
	if err := ex.AddActionServer(srv, 2, new(pingMsg), goalCb, cancelCb, nil); err != nil {
		t.Fatalf("AddActionServer: %s", err)
	}

	// Round 1: only the subscription has data.
	sub.Deliver(&pingMsg{Count: 1})
	if err := ex.SpinSome(1e6); err != nil {
		t.Fatalf("SpinSome round 1: %s", err)
	}
	if received != 1 {
		t.Fatalf("expected subscription callback to observe count=1, got %d", received)
	}

	// Round 2: the timer elapses and a goal request arrives together.
	timer.Fire()
	goalID := uuid.New()
	srv.EnqueueGoalRequest(goalID, &pingMsg{Count: 2})
	if err := ex.SpinSome(1e6); err != nil {
		t.Fatalf("SpinSome round 2: %s", err)
	}
	ticks = timer.Calls
	if ticks != 1 {
		t.Fatalf("expected the timer to have fired once, got %d", ticks)
	}
	if goalsAccepted != 1 {
		t.Fatalf("expected exactly one accepted goal, got %d", goalsAccepted)
	}

	t.Logf("demo complete: received=%d ticks=%d goals=%d", received, ticks, goalsAccepted)
}
