package action

import (
	"github.com/google/uuid"

	"github.com/team-rocos/rclgo-executor/internal/elog"
	"github.com/team-rocos/rclgo-executor/middleware"
)

// ClientHandle is the action-client state the executor drives: the
// middleware endpoint, its fixed goal pool, the four user callbacks, and
// the record-level readiness flags from the last readiness pass.
type ClientHandle struct {
	Endpoint middleware.ActionClient
	Pool     *ClientGoalPool

	GoalCallback     interface{} // func(gh *ClientGoalHandle, accepted bool, ctx interface{})
	FeedbackCallback interface{} // func(gh *ClientGoalHandle, payload interface{}, ctx interface{})
	CancelCallback   interface{} // func(gh *ClientGoalHandle, cancelled bool, ctx interface{})
	ResultCallback   interface{} // func(gh *ClientGoalHandle, payload interface{}, ctx interface{})
	Context          interface{}

	// feedbackBufs and resultBufs hold one destination buffer per pool
	// slot, cloned from the prototypes passed to NewClientHandle, so a
	// taken payload always lands in a goal's own buffer rather than
	// aliasing whatever the middleware handed back.
	feedbackBufs []interface{}
	resultBufs   []interface{}

	log   *elog.Logger
	ready middleware.ActionClientReady
}

// NewClientHandle wires an action-client endpoint into the executor with
// a goal pool sized for maxConcurrentGoals. feedbackBuf and resultBuf
// are prototype pointers (e.g. new(MyFeedback)) cloned once per slot.
func NewClientHandle(ep middleware.ActionClient, maxConcurrentGoals int, feedbackBuf, resultBuf interface{}, goalCb, feedbackCb, resultCb, cancelCb interface{}, ctx interface{}) *ClientHandle {
	ch := &ClientHandle{
		Endpoint:         ep,
		GoalCallback:     goalCb,
		FeedbackCallback: feedbackCb,
		ResultCallback:   resultCb,
		CancelCallback:   cancelCb,
		Context:          ctx,
		feedbackBufs:     cloneBufs(feedbackBuf, maxConcurrentGoals),
		resultBufs:       cloneBufs(resultBuf, maxConcurrentGoals),
		log:              elog.New("action.client"),
	}
	ch.Pool = NewClientGoalPool(ch, maxConcurrentGoals)
	return ch
}

// SendGoal issues a new goal request and acquires a tracking handle for
// it. Mirrors defaultActionClient.SendGoal's publish-then-track shape.
func (ch *ClientHandle) SendGoal(req interface{}) (*ClientGoalHandle, error) {
	id := uuid.New()
	gh, err := ch.Pool.Acquire(id)
	if err != nil {
		return nil, err
	}
	seq, err := ch.Endpoint.SendGoalRequest(req)
	if err != nil {
		ch.Pool.Release(gh)
		return nil, err
	}
	gh.GoalRequestSeq = seq
	gh.Comm = WaitingForGoalAck
	return gh, nil
}

// CancelGoal issues a cancel request for a live goal.
func (ch *ClientHandle) CancelGoal(gh *ClientGoalHandle) error {
	seq, err := ch.Endpoint.SendCancelRequest(gh.GoalUUID)
	if err != nil {
		return err
	}
	gh.CancelRequestSeq = seq
	return nil
}

func (ch *ClientHandle) sendResultRequest(gh *ClientGoalHandle) error {
	seq, err := ch.Endpoint.SendResultRequest(gh.GoalUUID)
	if err != nil {
		return err
	}
	gh.ResultRequestSeq = seq
	return nil
}

// advanceComm runs the goal's current comm state and the freshly
// observed status through nextClientStates and walks gh.Comm through
// every intermediate state the transition table returns, landing on
// whatever state it ends in. An illegal combination is logged and
// leaves gh.Comm untouched, mirroring how a stray or duplicate status
// update is tolerated rather than treated as a round error.
func (ch *ClientHandle) advanceComm(gh *ClientGoalHandle, status GoalStatusCode) {
	states, err := nextClientStates(gh.Comm, status)
	if err != nil {
		ch.log.Warnf("goal %s: no transition from %s on status %s", gh.GoalUUID, gh.Comm, status)
		return
	}
	for e := states.Front(); e != nil; e = e.Next() {
		gh.Comm = e.Value.(CommState)
	}
}

// RefreshReady runs the action-client readiness query and stores the
// five flags for this round's trigger evaluation.
func (ch *ClientHandle) RefreshReady() {
	ch.ready = ch.Endpoint.ReadyFlags()
}

// AnyReady is the OR of the five readiness sub-flags the action-client
// execute gate requires.
func (ch *ClientHandle) AnyReady() bool {
	r := ch.ready
	return r.GoalResponse || r.Feedback || r.CancelResponse || r.ResultResponse || r.Status
}

// Take runs the action-client take pass: one sub-event class at a time,
// each correlated to a live goal handle, with feedback and result
// payloads copied into that goal's own buffer.
func (ch *ClientHandle) Take() error {
	if ch.ready.GoalResponse {
		res, gr, err := ch.Endpoint.TakeGoalResponse()
		if err != nil {
			return err
		}
		if res == middleware.TakeOK {
			if gh := ch.Pool.ByGoalRequestSeq(gr.Seq); gh != nil {
				gh.AvailableGoalResponse = true
				gh.Accepted = gr.Accepted
			} else {
				ch.log.Warnf("goal response for unknown seq %d", gr.Seq)
			}
		}
	}

	if ch.ready.Feedback {
		res, fb, err := ch.Endpoint.TakeFeedback()
		if err != nil {
			return err
		}
		if res == middleware.TakeOK {
			if gh := ch.Pool.ByUUID(fb.GoalID); gh != nil {
				copyPayload(gh.FeedbackPayload, fb.Payload)
				gh.AvailableFeedback = true
			}
		}
	}

	if ch.ready.CancelResponse {
		res, cr, err := ch.Endpoint.TakeCancelResponse()
		if err != nil {
			return err
		}
		if res == middleware.TakeOK {
			if gh := ch.Pool.ByCancelRequestSeq(cr.Seq); gh != nil {
				gh.AvailableCancelResponse = true
				gh.Cancelled = containsUUID(cr.GoalsCanceling, gh.GoalUUID)
			}
		}
	}

	if ch.ready.ResultResponse {
		res, rr, err := ch.Endpoint.TakeResultResponse()
		if err != nil {
			return err
		}
		if res == middleware.TakeOK {
			if gh := ch.Pool.ByResultRequestSeq(rr.Seq); gh != nil {
				copyPayload(gh.ResultPayload, rr.Payload)
				gh.Status = GoalStatusCode(rr.Status)
				ch.advanceComm(gh, gh.Status)
				gh.AvailableResultResponse = true
			}
		}
	}

	return nil
}

// Execute runs the action-client execute pass's four sweeps in order,
// each draining every matching goal handle before moving to the next
// class.
func (ch *ClientHandle) Execute() {
	// 1. Goal responses.
	ch.Pool.Each(func(gh *ClientGoalHandle) bool {
		if !gh.AvailableGoalResponse {
			return false
		}
		gh.AvailableGoalResponse = false
		callVariadic(ch.GoalCallback, gh, gh.Accepted, ch.Context)

		if !gh.Accepted {
			ch.advanceComm(gh, StatusRejected)
			return true
		}
		if err := ch.sendResultRequest(gh); err != nil {
			ch.log.Warnf("failed to issue result request for goal %s: %v", gh.GoalUUID, err)
			return true
		}
		ch.advanceComm(gh, StatusPending)
		return false
	})

	// 2. Feedback.
	ch.Pool.Each(func(gh *ClientGoalHandle) bool {
		if !gh.AvailableFeedback {
			return false
		}
		gh.AvailableFeedback = false
		if ch.FeedbackCallback != nil {
			callVariadic(ch.FeedbackCallback, gh, gh.FeedbackPayload, ch.Context)
		}
		return false
	})

	// 3. Cancel responses.
	ch.Pool.Each(func(gh *ClientGoalHandle) bool {
		if !gh.AvailableCancelResponse {
			return false
		}
		gh.AvailableCancelResponse = false
		if ch.CancelCallback != nil {
			callVariadic(ch.CancelCallback, gh, gh.Cancelled, ch.Context)
		}
		return false
	})

	// 4. Result responses.
	ch.Pool.Each(func(gh *ClientGoalHandle) bool {
		if !gh.AvailableResultResponse {
			return false
		}
		gh.AvailableResultResponse = false
		if ch.ResultCallback != nil {
			callVariadic(ch.ResultCallback, gh, gh.ResultPayload, ch.Context)
		}
		return true
	})
}

func containsUUID(list []uuid.UUID, id uuid.UUID) bool {
	for _, x := range list {
		if x == id {
			return true
		}
	}
	return false
}
