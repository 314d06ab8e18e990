package action

import (
	"testing"

	"github.com/google/uuid"
)

func TestClientGoalPoolAcquireRelease(t *testing.T) {
	p := NewClientGoalPool(nil, 2)

	a := uuid.New()
	b := uuid.New()

	gha, err := p.Acquire(a)
	if err != nil {
		t.Fatalf("Acquire: %v", err)
	}
	ghb, err := p.Acquire(b)
	if err != nil {
		t.Fatalf("Acquire: %v", err)
	}
	if gha == ghb {
		t.Fatalf("expected distinct slots for distinct goals")
	}

	if _, err := p.Acquire(uuid.New()); err != ErrPoolExhausted {
		t.Fatalf("expected ErrPoolExhausted on a full pool, got %v", err)
	}

	p.Release(gha)
	c := uuid.New()
	ghc, err := p.Acquire(c)
	if err != nil {
		t.Fatalf("Acquire after release: %v", err)
	}
	if ghc.GoalUUID != c {
		t.Fatalf("reacquired slot does not carry the new goal's UUID")
	}

	if p.ByUUID(b) != ghb {
		t.Fatalf("ByUUID did not find the still-live goal b")
	}
	if p.ByUUID(a) != nil {
		t.Fatalf("ByUUID should not find a released goal")
	}
}

func TestClientGoalPoolByRequestSeq(t *testing.T) {
	p := NewClientGoalPool(nil, 1)
	gh, err := p.Acquire(uuid.New())
	if err != nil {
		t.Fatalf("Acquire: %v", err)
	}
	gh.GoalRequestSeq = 42

	if p.ByGoalRequestSeq(42) != gh {
		t.Fatalf("ByGoalRequestSeq did not find the matching handle")
	}
	if p.ByGoalRequestSeq(7) != nil {
		t.Fatalf("ByGoalRequestSeq should not match an unrelated sequence number")
	}
}

func TestClientGoalPoolEachReleasesAfterSweep(t *testing.T) {
	p := NewClientGoalPool(nil, 3)
	ids := []uuid.UUID{uuid.New(), uuid.New(), uuid.New()}
	for _, id := range ids {
		if _, err := p.Acquire(id); err != nil {
			t.Fatalf("Acquire: %v", err)
		}
	}

	seen := 0
	p.Each(func(gh *ClientGoalHandle) bool {
		seen++
		return gh.GoalUUID == ids[1]
	})
	if seen != 3 {
		t.Fatalf("expected Each to visit all 3 live handles, visited %d", seen)
	}
	if p.ByUUID(ids[1]) != nil {
		t.Fatalf("handle marked for release should be gone after Each returns")
	}
	if p.ByUUID(ids[0]) == nil || p.ByUUID(ids[2]) == nil {
		t.Fatalf("handles not marked for release should survive Each")
	}

	// The freed slot must be reusable.
	if _, err := p.Acquire(uuid.New()); err != nil {
		t.Fatalf("Acquire after Each-driven release: %v", err)
	}
}

func TestServerGoalPoolAcquireRelease(t *testing.T) {
	p := NewServerGoalPool(nil, 1)
	id := uuid.New()

	gh, err := p.Acquire(id)
	if err != nil {
		t.Fatalf("Acquire: %v", err)
	}
	if gh.Status != Unknown {
		t.Fatalf("a freshly acquired server goal handle should start Unknown, got %v", gh.Status)
	}

	if _, err := p.Acquire(uuid.New()); err != ErrPoolExhausted {
		t.Fatalf("expected ErrPoolExhausted, got %v", err)
	}

	if err := gh.Transition(EventAccept); err != nil {
		t.Fatalf("Transition: %v", err)
	}
	if gh.Status != Accepted {
		t.Fatalf("expected Accepted, got %v", gh.Status)
	}

	p.Release(gh)
	if p.ByUUID(id) != nil {
		t.Fatalf("released goal should no longer be found by UUID")
	}
	if _, err := p.Acquire(uuid.New()); err != nil {
		t.Fatalf("Acquire after release: %v", err)
	}
}
