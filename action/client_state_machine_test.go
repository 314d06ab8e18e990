package action

import "testing"

func TestNextClientStatesGoalAckToActive(t *testing.T) {
	states, err := nextClientStates(WaitingForGoalAck, StatusActive)
	if err != nil {
		t.Fatalf("nextClientStates: %v", err)
	}
	if states.Len() != 1 || states.Front().Value.(CommState) != Active {
		t.Fatalf("expected a single transition to Active, got %v", states)
	}
}

func TestNextClientStatesRejectedFromGoalAckPendsThenResults(t *testing.T) {
	states, err := nextClientStates(WaitingForGoalAck, StatusRejected)
	if err != nil {
		t.Fatalf("nextClientStates: %v", err)
	}
	want := []CommState{Pending, WaitingForResult}
	if states.Len() != len(want) {
		t.Fatalf("expected %d transitions, got %d", len(want), states.Len())
	}
	e := states.Front()
	for _, w := range want {
		if e.Value.(CommState) != w {
			t.Fatalf("expected %v, got %v", w, e.Value)
		}
		e = e.Next()
	}
}

func TestNextClientStatesActiveRejectsPending(t *testing.T) {
	if _, err := nextClientStates(Active, StatusPending); err != ErrInvalidTransition {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}
}

func TestNextClientStatesActiveToWaitingForResultOnSucceeded(t *testing.T) {
	states, err := nextClientStates(Active, StatusSucceeded)
	if err != nil {
		t.Fatalf("nextClientStates: %v", err)
	}
	if states.Len() != 1 || states.Front().Value.(CommState) != WaitingForResult {
		t.Fatalf("expected a single transition to WaitingForResult, got %v", states)
	}
}

func TestNextClientStatesDoneIsMostlyTerminal(t *testing.T) {
	if _, err := nextClientStates(Done, StatusActive); err != ErrInvalidTransition {
		t.Fatalf("Done + Active should be illegal, got %v", err)
	}
	states, err := nextClientStates(Done, StatusRecalled)
	if err != nil {
		t.Fatalf("nextClientStates: %v", err)
	}
	if states.Len() != 0 {
		t.Fatalf("Done + Recalled should be a no-op transition, got %v", states)
	}
}

func TestCommStateString(t *testing.T) {
	if Active.String() != "ACTIVE" {
		t.Fatalf("unexpected String(): %s", Active.String())
	}
	if CommState(255).String() != "UNKNOWN" {
		t.Fatalf("expected UNKNOWN for an out-of-range state")
	}
}
