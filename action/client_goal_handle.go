package action

import "github.com/google/uuid"

// ClientGoalHandle tracks one outstanding goal on the action-client
// side. Allocated from ClientGoalPool's fixed free-list when the user
// issues a goal; released when the final result response is delivered
// or the goal is rejected/errored.
type ClientGoalHandle struct {
	GoalUUID uuid.UUID

	GoalRequestSeq   int64
	CancelRequestSeq int64
	ResultRequestSeq int64

	AvailableGoalResponse   bool
	AvailableFeedback       bool
	AvailableCancelResponse bool
	AvailableResultResponse bool

	Accepted  bool
	Cancelled bool
	Comm      CommState
	Status    GoalStatusCode

	// FeedbackPayload and ResultPayload are this goal's own destination
	// buffers, assigned from the owning ClientHandle's pool-wide clones
	// when the slot is acquired.
	FeedbackPayload interface{}
	ResultPayload   interface{}

	owner *ClientHandle
	slot  int
	used  bool
}

// ClientGoalPool is a fixed-capacity free-list of ClientGoalHandle,
// sized at action-client registration (max_concurrent_goals), ported in
// idiom from the original rclc executor's array + first_free bookkeeping
// rather than growing a Go slice on demand.
type ClientGoalPool struct {
	slots []ClientGoalHandle
	free  []int // stack of free slot indices
}

// NewClientGoalPool allocates a pool with room for maxConcurrentGoals
// live goals. This is the one allocation permitted at action-client
// registration time; no further allocation happens once spinning
// begins.
func NewClientGoalPool(owner *ClientHandle, maxConcurrentGoals int) *ClientGoalPool {
	p := &ClientGoalPool{
		slots: make([]ClientGoalHandle, maxConcurrentGoals),
		free:  make([]int, maxConcurrentGoals),
	}
	for i := range p.slots {
		p.slots[i].owner = owner
		p.slots[i].slot = i
		p.free[i] = maxConcurrentGoals - 1 - i
	}
	return p
}

// Acquire pops a free slot and initializes it for goalID, or returns
// ErrPoolExhausted if every slot is in use.
func (p *ClientGoalPool) Acquire(goalID uuid.UUID) (*ClientGoalHandle, error) {
	if len(p.free) == 0 {
		return nil, ErrPoolExhausted
	}
	i := p.free[len(p.free)-1]
	p.free = p.free[:len(p.free)-1]

	gh := &p.slots[i]
	owner := gh.owner
	*gh = ClientGoalHandle{GoalUUID: goalID, owner: owner, slot: i, used: true}
	if owner != nil {
		if i < len(owner.feedbackBufs) {
			gh.FeedbackPayload = owner.feedbackBufs[i]
		}
		if i < len(owner.resultBufs) {
			gh.ResultPayload = owner.resultBufs[i]
		}
	}
	return gh, nil
}

// Release returns a goal handle's slot to the free list.
func (p *ClientGoalPool) Release(gh *ClientGoalHandle) {
	if !gh.used {
		return
	}
	gh.used = false
	p.free = append(p.free, gh.slot)
}

// ByGoalRequestSeq finds the live goal handle awaiting a goal response
// with the given sequence number.
func (p *ClientGoalPool) ByGoalRequestSeq(seq int64) *ClientGoalHandle {
	for i := range p.slots {
		if p.slots[i].used && p.slots[i].GoalRequestSeq == seq {
			return &p.slots[i]
		}
	}
	return nil
}

// ByCancelRequestSeq finds the live goal handle awaiting a cancel
// response with the given sequence number.
func (p *ClientGoalPool) ByCancelRequestSeq(seq int64) *ClientGoalHandle {
	for i := range p.slots {
		if p.slots[i].used && p.slots[i].CancelRequestSeq == seq {
			return &p.slots[i]
		}
	}
	return nil
}

// ByResultRequestSeq finds the live goal handle awaiting a result
// response with the given sequence number.
func (p *ClientGoalPool) ByResultRequestSeq(seq int64) *ClientGoalHandle {
	for i := range p.slots {
		if p.slots[i].used && p.slots[i].ResultRequestSeq == seq {
			return &p.slots[i]
		}
	}
	return nil
}

// ByUUID finds the live goal handle for a UUID-correlated event
// (feedback).
func (p *ClientGoalPool) ByUUID(id uuid.UUID) *ClientGoalHandle {
	for i := range p.slots {
		if p.slots[i].used && p.slots[i].GoalUUID == id {
			return &p.slots[i]
		}
	}
	return nil
}

// Each calls fn for every live goal handle, in slot order. fn may mark
// the handle for release by returning release=true; release happens
// after the iteration so fn can safely inspect sibling slots.
func (p *ClientGoalPool) Each(fn func(gh *ClientGoalHandle) (release bool)) {
	var toRelease []*ClientGoalHandle
	for i := range p.slots {
		if !p.slots[i].used {
			continue
		}
		if fn(&p.slots[i]) {
			toRelease = append(toRelease, &p.slots[i])
		}
	}
	for _, gh := range toRelease {
		p.Release(gh)
	}
}
