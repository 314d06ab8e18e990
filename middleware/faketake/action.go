package faketake

import (
	"github.com/google/uuid"

	"github.com/team-rocos/rclgo-executor/middleware"
)

// ActionServer is a fake middleware.ActionServer: three FIFO queues
// (goal/cancel/result requests) a test can push onto, each drained one
// request per Take call like the real middleware's tri-state take
// primitives.
type ActionServer struct {
	goalQueue   []goalRequestRecord
	cancelQueue []middleware.CancelRequestHeader
	resultQueue []middleware.ResultRequestHeader

	GoalResponses   []goalResponseRecord
	CancelResponses []cancelResponseRecord
	ResultResponses []resultResponseRecord

	GoalExpired bool
}

type goalRequestRecord struct {
	Header  middleware.GoalRequestHeader
	Payload interface{}
}

type goalResponseRecord struct {
	GoalID   uuid.UUID
	Accepted bool
}

type cancelResponseRecord struct {
	GoalID   uuid.UUID
	Accepted bool
	Reason   middleware.CancelRejectReason
}

type resultResponseRecord struct {
	GoalID  uuid.UUID
	Status  uint8
	Payload interface{}
}

func NewActionServer() *ActionServer { return &ActionServer{} }

func (a *ActionServer) Kind() middleware.Kind { return middleware.KindActionServer }
func (a *ActionServer) Valid() bool           { return true }

func (a *ActionServer) SubEntityCounts() middleware.Capacities {
	// A real rclc-style action server is built from two subscriptions
	// (goal, cancel) and one service (result) under the hood; modeled
	// here purely for wait-set sizing.
	return middleware.Capacities{Subscriptions: 2, Services: 1}
}

// EnqueueGoalRequest makes a goal request available to the next Take.
// payload, if non-nil, is copied into whatever destination buffer the
// take call supplies, the same way a real transport would decode the
// wire goal request into it.
func (a *ActionServer) EnqueueGoalRequest(goalID uuid.UUID, payload interface{}) {
	a.goalQueue = append(a.goalQueue, goalRequestRecord{
		Header:  middleware.GoalRequestHeader{GoalID: goalID},
		Payload: payload,
	})
}

func (a *ActionServer) EnqueueCancelRequest(goalID uuid.UUID) {
	a.cancelQueue = append(a.cancelQueue, middleware.CancelRequestHeader{GoalID: goalID})
}

func (a *ActionServer) EnqueueResultRequest(goalID uuid.UUID) {
	a.resultQueue = append(a.resultQueue, middleware.ResultRequestHeader{GoalID: goalID})
}

func (a *ActionServer) ReadyFlags() middleware.ActionServerReady {
	return middleware.ActionServerReady{
		GoalRequest:   len(a.goalQueue) > 0,
		CancelRequest: len(a.cancelQueue) > 0,
		ResultRequest: len(a.resultQueue) > 0,
		GoalExpired:   a.GoalExpired,
	}
}

func (a *ActionServer) TakeGoalRequest(dst interface{}) (middleware.TakeResult, middleware.GoalRequestHeader, error) {
	if len(a.goalQueue) == 0 {
		return middleware.TakeEmpty, middleware.GoalRequestHeader{}, nil
	}
	rec := a.goalQueue[0]
	a.goalQueue = a.goalQueue[1:]
	if dst != nil && rec.Payload != nil {
		copyInto(dst, rec.Payload)
	}
	return middleware.TakeOK, rec.Header, nil
}

func (a *ActionServer) TakeCancelRequest() (middleware.TakeResult, middleware.CancelRequestHeader, error) {
	if len(a.cancelQueue) == 0 {
		return middleware.TakeEmpty, middleware.CancelRequestHeader{}, nil
	}
	h := a.cancelQueue[0]
	a.cancelQueue = a.cancelQueue[1:]
	return middleware.TakeOK, h, nil
}

func (a *ActionServer) TakeResultRequest() (middleware.TakeResult, middleware.ResultRequestHeader, error) {
	if len(a.resultQueue) == 0 {
		return middleware.TakeEmpty, middleware.ResultRequestHeader{}, nil
	}
	h := a.resultQueue[0]
	a.resultQueue = a.resultQueue[1:]
	return middleware.TakeOK, h, nil
}

func (a *ActionServer) SendGoalResponse(h middleware.GoalRequestHeader, accepted bool) error {
	a.GoalResponses = append(a.GoalResponses, goalResponseRecord{GoalID: h.GoalID, Accepted: accepted})
	return nil
}

func (a *ActionServer) SendCancelResponse(h middleware.CancelRequestHeader, accepted bool, reason middleware.CancelRejectReason) error {
	a.CancelResponses = append(a.CancelResponses, cancelResponseRecord{GoalID: h.GoalID, Accepted: accepted, Reason: reason})
	return nil
}

func (a *ActionServer) SendResultResponse(goalID uuid.UUID, status uint8, payload interface{}) error {
	a.ResultResponses = append(a.ResultResponses, resultResponseRecord{GoalID: goalID, Status: status, Payload: payload})
	return nil
}

// ActionClient is a fake middleware.ActionClient.
type ActionClient struct {
	seq int64

	goalResponse   *middleware.GoalResponse
	feedback       *middleware.Feedback
	cancelResponse *middleware.CancelResponse
	resultResponse *middleware.ResultResponse
}

func NewActionClient() *ActionClient { return &ActionClient{} }

func (a *ActionClient) Kind() middleware.Kind { return middleware.KindActionClient }
func (a *ActionClient) Valid() bool           { return true }

func (a *ActionClient) SubEntityCounts() middleware.Capacities {
	return middleware.Capacities{Subscriptions: 3, Clients: 2}
}

func (a *ActionClient) SendGoalRequest(req interface{}) (int64, error) {
	a.seq++
	return a.seq, nil
}

func (a *ActionClient) SendCancelRequest(goalID uuid.UUID) (int64, error) {
	a.seq++
	return a.seq, nil
}

func (a *ActionClient) SendResultRequest(goalID uuid.UUID) (int64, error) {
	a.seq++
	return a.seq, nil
}

func (a *ActionClient) ReadyFlags() middleware.ActionClientReady {
	return middleware.ActionClientReady{
		GoalResponse:   a.goalResponse != nil,
		Feedback:       a.feedback != nil,
		CancelResponse: a.cancelResponse != nil,
		ResultResponse: a.resultResponse != nil,
	}
}

func (a *ActionClient) DeliverGoalResponse(r middleware.GoalResponse)     { a.goalResponse = &r }
func (a *ActionClient) DeliverFeedback(f middleware.Feedback)            { a.feedback = &f }
func (a *ActionClient) DeliverCancelResponse(r middleware.CancelResponse) { a.cancelResponse = &r }
func (a *ActionClient) DeliverResultResponse(r middleware.ResultResponse) { a.resultResponse = &r }

func (a *ActionClient) TakeGoalResponse() (middleware.TakeResult, middleware.GoalResponse, error) {
	if a.goalResponse == nil {
		return middleware.TakeEmpty, middleware.GoalResponse{}, nil
	}
	r := *a.goalResponse
	a.goalResponse = nil
	return middleware.TakeOK, r, nil
}

func (a *ActionClient) TakeFeedback() (middleware.TakeResult, middleware.Feedback, error) {
	if a.feedback == nil {
		return middleware.TakeEmpty, middleware.Feedback{}, nil
	}
	f := *a.feedback
	a.feedback = nil
	return middleware.TakeOK, f, nil
}

func (a *ActionClient) TakeCancelResponse() (middleware.TakeResult, middleware.CancelResponse, error) {
	if a.cancelResponse == nil {
		return middleware.TakeEmpty, middleware.CancelResponse{}, nil
	}
	r := *a.cancelResponse
	a.cancelResponse = nil
	return middleware.TakeOK, r, nil
}

func (a *ActionClient) TakeResultResponse() (middleware.TakeResult, middleware.ResultResponse, error) {
	if a.resultResponse == nil {
		return middleware.TakeEmpty, middleware.ResultResponse{}, nil
	}
	r := *a.resultResponse
	a.resultResponse = nil
	return middleware.TakeOK, r, nil
}
