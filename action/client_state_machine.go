package action

import "container/list"

// CommState is the client-side communication state for one goal, tracking
// the goal/result protocol independently of the goal's own reported
// status. Ported from the teacher's clientStateMachine in
// actionlib/client_state_machine.go, dropping the sync.RWMutex there: a
// ClientGoalHandle is only ever touched from the executor's single thread
// of control.
type CommState uint8

const (
	WaitingForGoalAck CommState = iota
	Pending
	Active
	WaitingForResult
	WaitingForCancelAck
	Recalling
	Preempting
	Done
	Lost
)

func (cs CommState) String() string {
	switch cs {
	case WaitingForGoalAck:
		return "WAITING_FOR_GOAL_ACK"
	case Pending:
		return "PENDING"
	case Active:
		return "ACTIVE"
	case WaitingForResult:
		return "WAITING_FOR_RESULT"
	case WaitingForCancelAck:
		return "WAITING_FOR_CANCEL_ACK"
	case Recalling:
		return "RECALLING"
	case Preempting:
		return "PREEMPTING"
	case Done:
		return "DONE"
	case Lost:
		return "LOST"
	default:
		return "UNKNOWN"
	}
}

// nextClientStates returns the sequence of CommState transitions implied
// by observing goalStatus while in state cur, or an error if the
// combination is illegal. Mirrors clientStateMachine.getTransitions
// verbatim; the large per-state switch is how the original ROS
// actionlib comm-state table reads, state by state.
func nextClientStates(cur CommState, status GoalStatusCode) (*list.List, error) {
	states := list.New()

	switch cur {
	case WaitingForGoalAck:
		switch status {
		case StatusPending:
			states.PushBack(Pending)
		case StatusActive:
			states.PushBack(Active)
		case StatusRejected:
			states.PushBack(Pending)
			states.PushBack(WaitingForResult)
		case StatusRecalling:
			states.PushBack(Pending)
			states.PushBack(Recalling)
		case StatusRecalled:
			states.PushBack(Pending)
			states.PushBack(WaitingForResult)
		case StatusPreempted:
			states.PushBack(Active)
			states.PushBack(Preempting)
			states.PushBack(WaitingForResult)
		case StatusSucceeded:
			states.PushBack(Active)
			states.PushBack(WaitingForResult)
		case StatusAborted:
			states.PushBack(Active)
			states.PushBack(WaitingForResult)
		case StatusPreempting:
			states.PushBack(Active)
			states.PushBack(Preempting)
		}

	case Pending:
		switch status {
		case StatusPending:
		case StatusActive:
			states.PushBack(Active)
		case StatusRejected:
			states.PushBack(WaitingForResult)
		case StatusRecalling:
			states.PushBack(Recalling)
		case StatusRecalled:
			states.PushBack(Recalling)
			states.PushBack(WaitingForResult)
		case StatusPreempted:
			states.PushBack(Active)
			states.PushBack(Preempting)
			states.PushBack(WaitingForResult)
		case StatusSucceeded:
			states.PushBack(Active)
			states.PushBack(WaitingForResult)
		case StatusAborted:
			states.PushBack(Active)
			states.PushBack(WaitingForResult)
		case StatusPreempting:
			states.PushBack(Active)
			states.PushBack(Preempting)
		}

	case Active:
		switch status {
		case StatusPending:
			return states, ErrInvalidTransition
		case StatusActive:
		case StatusRejected:
			return states, ErrInvalidTransition
		case StatusRecalling:
			return states, ErrInvalidTransition
		case StatusRecalled:
			return states, ErrInvalidTransition
		case StatusPreempted:
			states.PushBack(Preempting)
			states.PushBack(WaitingForResult)
		case StatusSucceeded:
			states.PushBack(WaitingForResult)
		case StatusAborted:
			states.PushBack(WaitingForResult)
		case StatusPreempting:
			states.PushBack(Preempting)
		}

	case WaitingForResult:
		switch status {
		case StatusPending:
			return states, ErrInvalidTransition
		case StatusActive:
		case StatusRejected:
		case StatusRecalling:
			return states, ErrInvalidTransition
		case StatusRecalled:
		case StatusPreempted:
		case StatusSucceeded:
		case StatusAborted:
		case StatusPreempting:
			return states, ErrInvalidTransition
		}

	case WaitingForCancelAck:
		switch status {
		case StatusPending:
		case StatusActive:
		case StatusRejected:
			states.PushBack(WaitingForResult)
		case StatusRecalling:
			states.PushBack(Recalling)
		case StatusRecalled:
			states.PushBack(Recalling)
			states.PushBack(WaitingForResult)
		case StatusPreempted:
			states.PushBack(Preempting)
			states.PushBack(WaitingForResult)
		case StatusSucceeded:
			states.PushBack(Recalling)
			states.PushBack(WaitingForResult)
		case StatusAborted:
			states.PushBack(Recalling)
			states.PushBack(WaitingForResult)
		case StatusPreempting:
			states.PushBack(Preempting)
		}

	case Recalling:
		switch status {
		case StatusPending:
			return states, ErrInvalidTransition
		case StatusActive:
			return states, ErrInvalidTransition
		case StatusRejected:
			states.PushBack(WaitingForResult)
		case StatusRecalling:
		case StatusRecalled:
			states.PushBack(WaitingForResult)
		case StatusPreempted:
			states.PushBack(Preempting)
			states.PushBack(WaitingForResult)
		case StatusSucceeded:
			states.PushBack(Preempting)
			states.PushBack(WaitingForResult)
		case StatusAborted:
			states.PushBack(Preempting)
			states.PushBack(WaitingForResult)
		case StatusPreempting:
			states.PushBack(Preempting)
		}

	case Preempting:
		switch status {
		case StatusPending:
			return states, ErrInvalidTransition
		case StatusActive:
			return states, ErrInvalidTransition
		case StatusRejected:
			return states, ErrInvalidTransition
		case StatusRecalling:
			return states, ErrInvalidTransition
		case StatusRecalled:
			return states, ErrInvalidTransition
		case StatusPreempted:
			states.PushBack(WaitingForResult)
		case StatusSucceeded:
			states.PushBack(WaitingForResult)
		case StatusAborted:
			states.PushBack(WaitingForResult)
		case StatusPreempting:
		}

	case Done:
		switch status {
		case StatusPending:
			return states, ErrInvalidTransition
		case StatusActive:
			return states, ErrInvalidTransition
		case StatusRejected:
		case StatusRecalling:
			return states, ErrInvalidTransition
		case StatusRecalled:
		case StatusPreempted:
		case StatusSucceeded:
		case StatusAborted:
		case StatusPreempting:
			return states, ErrInvalidTransition
		}
	}

	return states, nil
}
