package action

import "github.com/pkg/errors"

var (
	// ErrPoolExhausted is returned when a goal pool has no free slots
	// left; callers skip the middleware take in this case and retry on a
	// later round.
	ErrPoolExhausted = errors.New("action: goal handle pool exhausted")
	// ErrGoalNotFound is returned when a response/feedback/request cannot
	// be correlated to any live goal handle.
	ErrGoalNotFound = errors.New("action: goal handle not found")
	// ErrInvalidTransition mirrors the teacher's client/server state
	// machine "invalid transition from X to Y" errors.
	ErrInvalidTransition = errors.New("action: invalid state transition")
)
