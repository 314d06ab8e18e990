package action

import (
	"github.com/google/uuid"

	"github.com/team-rocos/rclgo-executor/middleware"
)

// ServerGoalHandle tracks one goal on the action-server side. Acquired
// on inbound goal request, moved through the server goal state machine,
// released on terminal transition.
type ServerGoalHandle struct {
	GoalUUID uuid.UUID

	GoalHeader   middleware.GoalRequestHeader
	CancelHeader middleware.CancelRequestHeader
	ResultHeader middleware.ResultRequestHeader

	RosGoalRequest interface{}
	Status         ServerGoalStatus

	AvailableGoalRequest   bool
	AvailableCancelRequest bool
	AvailableResultRequest bool
	GoalEnded              bool

	owner *ServerHandle
	slot  int
	used  bool
}

// Transition drives the goal through the server-side state machine,
// returning ErrInvalidTransition (surfaced by the executor as a
// cancel-rejected response with reason Terminated) on an illegal move.
func (gh *ServerGoalHandle) Transition(ev ServerEvent) error {
	next, err := transitionServerStatus(gh.Status, ev)
	if err != nil {
		return err
	}
	gh.Status = next
	return nil
}

// ServerGoalPool is the fixed-capacity free-list of ServerGoalHandle,
// sized at action-server registration (max_concurrent_goals), mirroring
// ClientGoalPool's allocation discipline.
type ServerGoalPool struct {
	slots []ServerGoalHandle
	free  []int
}

func NewServerGoalPool(owner *ServerHandle, maxConcurrentGoals int) *ServerGoalPool {
	p := &ServerGoalPool{
		slots: make([]ServerGoalHandle, maxConcurrentGoals),
		free:  make([]int, maxConcurrentGoals),
	}
	for i := range p.slots {
		p.slots[i].owner = owner
		p.slots[i].slot = i
		p.free[i] = maxConcurrentGoals - 1 - i
	}
	return p
}

// PeekFreeSlot returns the slot index Acquire would hand out next, or -1
// if the pool is exhausted. Lets a caller prepare a destination buffer
// for that slot before the take that will fill it.
func (p *ServerGoalPool) PeekFreeSlot() int {
	if len(p.free) == 0 {
		return -1
	}
	return p.free[len(p.free)-1]
}

// Acquire pops a free slot for a newly-arrived goal request. Returns
// ErrPoolExhausted when every slot is in use; the caller must then skip
// the middleware take and retry on a later round.
func (p *ServerGoalPool) Acquire(goalID uuid.UUID) (*ServerGoalHandle, error) {
	if len(p.free) == 0 {
		return nil, ErrPoolExhausted
	}
	i := p.free[len(p.free)-1]
	p.free = p.free[:len(p.free)-1]

	gh := &p.slots[i]
	*gh = ServerGoalHandle{GoalUUID: goalID, Status: Unknown, owner: gh.owner, slot: i, used: true}
	return gh, nil
}

func (p *ServerGoalPool) Release(gh *ServerGoalHandle) {
	if !gh.used {
		return
	}
	gh.used = false
	p.free = append(p.free, gh.slot)
}

func (p *ServerGoalPool) ByUUID(id uuid.UUID) *ServerGoalHandle {
	for i := range p.slots {
		if p.slots[i].used && p.slots[i].GoalUUID == id {
			return &p.slots[i]
		}
	}
	return nil
}

// Each calls fn for every live goal handle, in slot order, releasing any
// handle fn asks to release only after the full sweep completes.
func (p *ServerGoalPool) Each(fn func(gh *ServerGoalHandle) (release bool)) {
	var toRelease []*ServerGoalHandle
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
