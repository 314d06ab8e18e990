package middleware

import "github.com/google/uuid"

// ActionClient is the client side of an action endpoint: five independent
// sub-channels (goal response, feedback, cancel response, result response,
// plus the readiness query itself), each with its own take primitive.
type ActionClient interface {
	Endpoint

	// SubEntityCounts reports how many middleware subscriptions, guard
	// conditions, timers, clients, and services this action endpoint is
	// built from, so the executor can fold them into its wait-set sizing.
	SubEntityCounts() Capacities

	SendGoalRequest(req interface{}) (seq int64, err error)
	SendCancelRequest(goalID uuid.UUID) (seq int64, err error)
	SendResultRequest(goalID uuid.UUID) (seq int64, err error)

	// ReadyFlags reports which of the five sub-channels have data pending.
	ReadyFlags() ActionClientReady

	TakeGoalResponse() (TakeResult, GoalResponse, error)
	TakeFeedback() (TakeResult, Feedback, error)
	TakeCancelResponse() (TakeResult, CancelResponse, error)
	TakeResultResponse() (TakeResult, ResultResponse, error)
}

// ActionClientReady mirrors the five flags the executor's readiness pass
// queries for an action-client handle.
type ActionClientReady struct {
	GoalResponse   bool
	Feedback       bool
	CancelResponse bool
	ResultResponse bool
	Status         bool
}

// GoalResponse correlates to a goal request by sequence number.
type GoalResponse struct {
	Seq      int64
	Accepted bool
	GoalID   uuid.UUID
}

// Feedback correlates to a goal by UUID.
type Feedback struct {
	GoalID  uuid.UUID
	Payload interface{}
}

// CancelResponse correlates to a cancel request by sequence number and
// carries the list of goals the server actually agreed to cancel.
type CancelResponse struct {
	Seq            int64
	GoalsCanceling []uuid.UUID
}

// ResultResponse correlates to a result request by sequence number.
type ResultResponse struct {
	Seq     int64
	GoalID  uuid.UUID
	Status  uint8
	Payload interface{}
}

// ActionServer is the server side of an action endpoint.
type ActionServer interface {
	Endpoint

	// SubEntityCounts reports the same aggregate sizing information as
	// ActionClient.SubEntityCounts, from the server side.
	SubEntityCounts() Capacities

	ReadyFlags() ActionServerReady

	TakeGoalRequest(dst interface{}) (TakeResult, GoalRequestHeader, error)
	TakeCancelRequest() (TakeResult, CancelRequestHeader, error)
	TakeResultRequest() (TakeResult, ResultRequestHeader, error)

	SendGoalResponse(h GoalRequestHeader, accepted bool) error
	SendCancelResponse(h CancelRequestHeader, accepted bool, reason CancelRejectReason) error
	SendResultResponse(goalID uuid.UUID, status uint8, payload interface{}) error
}

// ActionServerReady mirrors the four flags the executor's readiness pass
// queries for an action-server handle, plus the externally-set
// goal_ended flag.
type ActionServerReady struct {
	GoalRequest   bool
	CancelRequest bool
	ResultRequest bool
	GoalExpired   bool
	GoalEnded     bool
}

// GoalRequestHeader is the header captured alongside a taken goal request.
type GoalRequestHeader struct {
	GoalID uuid.UUID
}

// CancelRequestHeader is the header captured alongside a taken cancel
// request.
type CancelRequestHeader struct {
	GoalID uuid.UUID
}

// ResultRequestHeader is the header captured alongside a taken result
// request.
type ResultRequestHeader struct {
	GoalID uuid.UUID
}

// CancelRejectReason enumerates why a cancel request was refused.
type CancelRejectReason uint8

const (
	CancelRejectNone CancelRejectReason = iota
	CancelRejectTerminated
	CancelRejectUnknownGoal
	CancelRejectRejected
)
