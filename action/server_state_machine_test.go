package action

import "testing"

func TestTransitionServerStatusAcceptFromUnknown(t *testing.T) {
	next, err := transitionServerStatus(Unknown, EventAccept)
	if err != nil {
		t.Fatalf("transitionServerStatus: %v", err)
	}
	if next != Accepted {
		t.Fatalf("expected Accepted, got %v", next)
	}
}

func TestTransitionServerStatusRejectFromUnknown(t *testing.T) {
	next, err := transitionServerStatus(Unknown, EventReject)
	if err != nil {
		t.Fatalf("transitionServerStatus: %v", err)
	}
	if next != Aborted {
		t.Fatalf("expected Aborted, got %v", next)
	}
}

func TestTransitionServerStatusCancelFromUnknownIsInvalid(t *testing.T) {
	if _, err := transitionServerStatus(Unknown, EventCancelGoal); err != ErrInvalidTransition {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}
}

func TestTransitionServerStatusExecutingToCanceling(t *testing.T) {
	next, err := transitionServerStatus(Executing, EventCancelGoal)
	if err != nil {
		t.Fatalf("transitionServerStatus: %v", err)
	}
	if next != Canceling {
		t.Fatalf("expected Canceling, got %v", next)
	}
}

func TestTransitionServerStatusCancelingToCanceled(t *testing.T) {
	next, err := transitionServerStatus(Canceling, EventCanceled)
	if err != nil {
		t.Fatalf("transitionServerStatus: %v", err)
	}
	if next != Canceled {
		t.Fatalf("expected Canceled, got %v", next)
	}
}

func TestTransitionServerStatusTerminalRejectsFurtherEvents(t *testing.T) {
	if _, err := transitionServerStatus(Succeeded, EventCancelGoal); err != ErrInvalidTransition {
		t.Fatalf("expected ErrInvalidTransition from a terminal state, got %v", err)
	}
}

func TestServerGoalStatusIsTerminal(t *testing.T) {
	for _, s := range []ServerGoalStatus{Succeeded, Canceled, Aborted} {
		if !s.IsTerminal() {
			t.Fatalf("%v should be terminal", s)
		}
	}
	for _, s := range []ServerGoalStatus{Unknown, Accepted, Executing, Canceling} {
		if s.IsTerminal() {
			t.Fatalf("%v should not be terminal", s)
		}
	}
}
