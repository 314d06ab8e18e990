package executor

import (
	"testing"

	"github.com/team-rocos/rclgo-executor/middleware/faketake"
)

func TestTriggerAny(t *testing.T) {
	handles := []Handle{
		{Initialized: true, DataAvailable: false},
		{Initialized: true, DataAvailable: true},
	}
	if !TriggerAny(handles, nil) {
		t.Fatalf("expected TriggerAny to fire when one handle has data")
	}
	handles[1].DataAvailable = false
	if TriggerAny(handles, nil) {
		t.Fatalf("expected TriggerAny not to fire when no handle has data")
	}
}

func TestTriggerAll(t *testing.T) {
	handles := []Handle{
		{Initialized: true, DataAvailable: true},
		{Initialized: true, DataAvailable: false},
	}
	if TriggerAll(handles, nil) {
		t.Fatalf("expected TriggerAll not to fire when one handle lacks data")
	}
	handles[1].DataAvailable = true
	if !TriggerAll(handles, nil) {
		t.Fatalf("expected TriggerAll to fire when every handle has data")
	}
}

func TestTriggerAlways(t *testing.T) {
	if !TriggerAlways(nil, nil) {
		t.Fatalf("TriggerAlways must always fire")
	}
}

func TestTriggerOneUnregisteredNeverFires(t *testing.T) {
	sub := faketake.NewSubscription()
	handles := []Handle{
		{Initialized: true, Target: sub, DataAvailable: true},
	}
	otherTarget := faketake.NewSubscription()
	if TriggerOne(handles, otherTarget) {
		t.Fatalf("TriggerOne must not fire for an unregistered target")
	}
	if !TriggerOne(handles, sub) {
		t.Fatalf("TriggerOne must fire when the target handle has data")
	}
}
