package action

import (
	"github.com/team-rocos/rclgo-executor/internal/elog"
	"github.com/team-rocos/rclgo-executor/middleware"
)

// GoalDecision is the action-server goal callback's return value. Any
// error return from the user callback is treated as Rejected.
type GoalDecision uint8

const (
	Rejected GoalDecision = iota
	AcceptedDecision
)

// ServerHandle is the action-server state the executor drives: the
// middleware endpoint, its fixed goal pool, the two user callbacks, and
// the record-level readiness flags from the last readiness pass.
type ServerHandle struct {
	Endpoint middleware.ActionServer
	Pool     *ServerGoalPool

	GoalCallback   interface{} // func(gh *ServerGoalHandle, ctx interface{}) GoalDecision
	CancelCallback interface{} // func(gh *ServerGoalHandle, ctx interface{}) bool
	Context        interface{}

	// goalReqBufs holds one destination buffer per pool slot, cloned
	// from the prototype passed to NewServerHandle, so takeGoalRequest
	// always has a real per-goal buffer instead of a shared or nil one.
	goalReqBufs []interface{}

	log   *elog.Logger
	ready middleware.ActionServerReady
}

// NewServerHandle wires an action-server endpoint into the executor with
// a goal pool sized for maxConcurrentGoals. goalReqBuf is a prototype
// pointer (e.g. new(MyGoalRequest)) cloned once per slot.
func NewServerHandle(ep middleware.ActionServer, maxConcurrentGoals int, goalReqBuf interface{}, goalCb, cancelCb interface{}, ctx interface{}) *ServerHandle {
	sh := &ServerHandle{
		Endpoint:       ep,
		GoalCallback:   goalCb,
		CancelCallback: cancelCb,
		Context:        ctx,
		goalReqBufs:    cloneBufs(goalReqBuf, maxConcurrentGoals),
		log:            elog.New("action.server"),
	}
	sh.Pool = NewServerGoalPool(sh, maxConcurrentGoals)
	return sh
}

// RefreshReady runs the action-server readiness query and stores the
// result for this round's trigger evaluation.
func (sh *ServerHandle) RefreshReady() {
	sh.ready = sh.Endpoint.ReadyFlags()
}

// AnyReady is the OR of the four readiness sub-flags plus goal_ended.
func (sh *ServerHandle) AnyReady() bool {
	r := sh.ready
	return r.GoalRequest || r.CancelRequest || r.ResultRequest || r.GoalExpired || r.GoalEnded
}

// Take runs the action-server take pass: one sub-event class at a time.
func (sh *ServerHandle) Take() error {
	if sh.ready.GoalRequest {
		if err := sh.takeGoalRequest(); err != nil {
			return err
		}
	}
	if sh.ready.ResultRequest {
		if err := sh.takeResultRequest(); err != nil {
			return err
		}
	}
	if sh.ready.CancelRequest {
		if err := sh.takeCancelRequest(); err != nil {
			return err
		}
	}
	return nil
}

func (sh *ServerHandle) takeGoalRequest() error {
	slot := sh.Pool.PeekFreeSlot()
	if slot < 0 {
		// Pool exhausted: skip the take and leave the request pending in
		// the middleware for a later round.
		sh.log.Warnf("goal pool exhausted, deferring goal request")
		return nil
	}
	buf := sh.goalReqBufs[slot]

	res, hdr, err := sh.Endpoint.TakeGoalRequest(buf)
	if err != nil {
		return err
	}
	if res != middleware.TakeOK {
		return nil
	}
	gh, err := sh.Pool.Acquire(hdr.GoalID)
	if err != nil {
		sh.log.Warnf("goal pool exhausted after take, dropping goal %s", hdr.GoalID)
		return nil
	}
	gh.GoalHeader = hdr
	gh.RosGoalRequest = buf
	gh.AvailableGoalRequest = true
	return nil
}

func (sh *ServerHandle) takeResultRequest() error {
	res, hdr, err := sh.Endpoint.TakeResultRequest()
	if err != nil {
		return err
	}
	if res != middleware.TakeOK {
		return nil
	}
	gh := sh.Pool.ByUUID(hdr.GoalID)
	if gh == nil {
		sh.log.Warnf("result request for unknown goal %s", hdr.GoalID)
		return nil
	}
	gh.ResultHeader = hdr
	_ = gh.Transition(EventExecute)
	gh.AvailableResultRequest = true
	return nil
}

func (sh *ServerHandle) takeCancelRequest() error {
	res, hdr, err := sh.Endpoint.TakeCancelRequest()
	if err != nil {
		return err
	}
	if res != middleware.TakeOK {
		return nil
	}
	gh := sh.Pool.ByUUID(hdr.GoalID)
	if gh == nil {
		return sh.Endpoint.SendCancelResponse(hdr, false, middleware.CancelRejectUnknownGoal)
	}
	if err := gh.Transition(EventCancelGoal); err != nil {
		return sh.Endpoint.SendCancelResponse(hdr, false, middleware.CancelRejectTerminated)
	}
	gh.CancelHeader = hdr
	gh.AvailableCancelRequest = true
	return nil
}

// Execute runs the action-server execute pass's three sweeps, in order.
func (sh *ServerHandle) Execute() error {
	// 1. Terminal cleanup.
	sh.Pool.Each(func(gh *ServerGoalHandle) bool {
		if !gh.Status.IsTerminal() {
			return false
		}
		gh.GoalEnded = false
		return true
	})

	// 2. Goal requests.
	var firstErr error
	sh.Pool.Each(func(gh *ServerGoalHandle) bool {
		if gh.Status != Unknown || !gh.AvailableGoalRequest {
			return false
		}
		gh.AvailableGoalRequest = false

		decision := sh.invokeGoalCallback(gh)
		accept := decision == AcceptedDecision

		if err := sh.Endpoint.SendGoalResponse(gh.GoalHeader, accept); err != nil && firstErr == nil {
			firstErr = err
		}
		if accept {
			_ = gh.Transition(EventAccept)
			return false
		}
		_ = gh.Transition(EventReject)
		return true
	})
	if firstErr != nil {
		return firstErr
	}

	// 3. Cancel requests.
	sh.Pool.Each(func(gh *ServerGoalHandle) bool {
		if gh.Status != Canceling || !gh.AvailableCancelRequest {
			return false
		}
		gh.AvailableCancelRequest = false

		accept := sh.invokeCancelCallback(gh)
		if accept {
			if err := sh.Endpoint.SendCancelResponse(gh.CancelHeader, true, middleware.CancelRejectNone); err != nil && firstErr == nil {
				firstErr = err
			}
			return false
		}
		if err := sh.Endpoint.SendCancelResponse(gh.CancelHeader, false, middleware.CancelRejectRejected); err != nil && firstErr == nil {
			firstErr = err
		}
		gh.Status = Executing // roll back Canceling -> Executing
		return false
	})
	return firstErr
}

func (sh *ServerHandle) invokeGoalCallback(gh *ServerGoalHandle) GoalDecision {
	rets := callVariadic(sh.GoalCallback, gh, sh.Context)
	for _, r := range rets {
		if e, ok := r.Interface().(error); ok && e != nil {
			return Rejected
		}
	}
	for _, r := range rets {
		if d, ok := r.Interface().(GoalDecision); ok {
			return d
		}
	}
	return Rejected
}

func (sh *ServerHandle) invokeCancelCallback(gh *ServerGoalHandle) bool {
	rets := callVariadic(sh.CancelCallback, gh, sh.Context)
	for _, r := range rets {
		if b, ok := r.Interface().(bool); ok {
			return b
		}
	}
	return false
}

// SucceedGoal, CancelGoal, and AbortGoal are the user-facing "outcome"
// helpers that live outside the executor core. They are the single
// place goal_ended is set.
func (gh *ServerGoalHandle) SucceedGoal() error {
	if err := gh.Transition(EventSucceed); err != nil {
		return err
	}
	gh.GoalEnded = true
	return nil
}

func (gh *ServerGoalHandle) AbortGoal() error {
	if err := gh.Transition(EventAbort); err != nil {
		return err
	}
	gh.GoalEnded = true
	return nil
}

func (gh *ServerGoalHandle) CancelGoal() error {
	if err := gh.Transition(EventCanceled); err != nil {
		return err
	}
	gh.GoalEnded = true
	return nil
}
