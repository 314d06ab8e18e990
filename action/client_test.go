package action

import (
	"testing"

	"github.com/google/uuid"

	"github.com/team-rocos/rclgo-executor/middleware"
	"github.com/team-rocos/rclgo-executor/middleware/faketake"
)

type clientTestFeedback struct {
	Progress int
}

type clientTestResult struct {
	Code int
}

// TestClientHandleGoalFeedbackResultRoundTrip drives a ClientHandle
// through a full send-goal/feedback/result round against the fake
// action-client endpoint, checking that taken payloads land in the
// goal's own buffer and reach the callbacks, and that the comm state
// machine advances as each response arrives.
func TestClientHandleGoalFeedbackResultRoundTrip(t *testing.T) {
	ep := faketake.NewActionClient()

	var goalAccepted bool
	var feedbackSeen *clientTestFeedback
	var resultSeen *clientTestResult
	var resultComm CommState

	ch := NewClientHandle(ep, 2, new(clientTestFeedback), new(clientTestResult),
		func(gh *ClientGoalHandle, accepted bool, _ interface{}) {
			goalAccepted = accepted
		},
		func(gh *ClientGoalHandle, payload interface{}, _ interface{}) {
			feedbackSeen = payload.(*clientTestFeedback)
		},
		func(gh *ClientGoalHandle, payload interface{}, _ interface{}) {
			resultSeen = payload.(*clientTestResult)
			resultComm = gh.Comm
		},
		nil, // no cancel callback exercised here
		nil,
	)

	gh, err := ch.SendGoal(&struct{}{})
	if err != nil {
		t.Fatalf("SendGoal: %v", err)
	}
	if gh.Comm != WaitingForGoalAck {
		t.Fatalf("expected WaitingForGoalAck immediately after SendGoal, got %v", gh.Comm)
	}

	// Round 1: goal accepted.
	ep.DeliverGoalResponse(middleware.GoalResponse{Seq: gh.GoalRequestSeq, Accepted: true, GoalID: gh.GoalUUID})
	ch.RefreshReady()
	if !ch.AnyReady() {
		t.Fatalf("expected AnyReady after delivering a goal response")
	}
	if err := ch.Take(); err != nil {
		t.Fatalf("Take: %v", err)
	}
	ch.Execute()
	if !goalAccepted {
		t.Fatalf("expected the goal callback to observe accepted=true")
	}
	if gh.Comm != Pending {
		t.Fatalf("expected comm state Pending after an accepted goal, got %v", gh.Comm)
	}

	// Round 2: feedback arrives and is copied into this goal's own buffer.
	ep.DeliverFeedback(middleware.Feedback{GoalID: gh.GoalUUID, Payload: &clientTestFeedback{Progress: 42}})
	ch.RefreshReady()
	if err := ch.Take(); err != nil {
		t.Fatalf("Take: %v", err)
	}
	ch.Execute()
	if feedbackSeen == nil || feedbackSeen.Progress != 42 {
		t.Fatalf("expected feedback callback to observe Progress=42, got %+v", feedbackSeen)
	}
	if gh.FeedbackPayload.(*clientTestFeedback).Progress != 42 {
		t.Fatalf("expected the goal handle's own feedback buffer to hold the taken payload")
	}

	// Round 3: result response arrives, advancing comm to WaitingForResult.
	ep.DeliverResultResponse(middleware.ResultResponse{
		Seq:     gh.ResultRequestSeq,
		GoalID:  gh.GoalUUID,
		Status:  uint8(StatusSucceeded),
		Payload: &clientTestResult{Code: 7},
	})
	ch.RefreshReady()
	if err := ch.Take(); err != nil {
		t.Fatalf("Take: %v", err)
	}
	ch.Execute()
	if resultSeen == nil || resultSeen.Code != 7 {
		t.Fatalf("expected result callback to observe Code=7, got %+v", resultSeen)
	}
	if resultComm != WaitingForResult {
		t.Fatalf("expected comm state WaitingForResult when the result callback ran, got %v", resultComm)
	}
}

// TestClientHandleRejectedGoalAdvancesCommAndSkipsResultRequest checks
// that a rejected goal response runs the goal callback with
// accepted=false, advances the comm state machine accordingly, and
// never issues a result request.
func TestClientHandleRejectedGoalAdvancesCommAndSkipsResultRequest(t *testing.T) {
	ep := faketake.NewActionClient()

	var accepted bool
	ch := NewClientHandle(ep, 1, new(clientTestFeedback), new(clientTestResult),
		func(gh *ClientGoalHandle, ok bool, _ interface{}) { accepted = ok },
		nil, nil, nil, nil,
	)

	gh, err := ch.SendGoal(&struct{}{})
	if err != nil {
		t.Fatalf("SendGoal: %v", err)
	}

	ep.DeliverGoalResponse(middleware.GoalResponse{Seq: gh.GoalRequestSeq, Accepted: false, GoalID: gh.GoalUUID})
	ch.RefreshReady()
	if err := ch.Take(); err != nil {
		t.Fatalf("Take: %v", err)
	}
	ch.Execute()

	if accepted {
		t.Fatalf("expected the goal callback to observe accepted=false")
	}
	if gh.ResultRequestSeq != 0 {
		t.Fatalf("a rejected goal must never issue a result request")
	}
}

// TestClientGoalPoolAcquireAssignsOwnBuffers checks that each acquired
// slot gets its own clone of the feedback/result prototypes rather than
// sharing one across goals.
func TestClientGoalPoolAcquireAssignsOwnBuffers(t *testing.T) {
	ch := NewClientHandle(faketake.NewActionClient(), 2, new(clientTestFeedback), new(clientTestResult),
		nil, nil, nil, nil, nil,
	)

	a, err := ch.Pool.Acquire(uuid.New())
	if err != nil {
		t.Fatalf("Acquire: %v", err)
	}
	b, err := ch.Pool.Acquire(uuid.New())
	if err != nil {
		t.Fatalf("Acquire: %v", err)
	}

	if a.FeedbackPayload == b.FeedbackPayload {
		t.Fatalf("expected distinct feedback buffers per goal slot")
	}
	if a.ResultPayload == b.ResultPayload {
		t.Fatalf("expected distinct result buffers per goal slot")
	}

	a.FeedbackPayload.(*clientTestFeedback).Progress = 1
	b.FeedbackPayload.(*clientTestFeedback).Progress = 2
	if a.FeedbackPayload.(*clientTestFeedback).Progress == b.FeedbackPayload.(*clientTestFeedback).Progress {
		t.Fatalf("buffers must not alias across goal slots")
	}
}
