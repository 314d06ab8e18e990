package executor

import (
	"github.com/team-rocos/rclgo-executor/action"
	"github.com/team-rocos/rclgo-executor/middleware"
)

// Kind tags a Handle with which of the eleven event-source variants it is.
type Kind uint8

const (
	KindNone Kind = iota
	KindSubscription
	KindSubscriptionWithContext
	KindTimer
	KindClient
	KindClientWithRequestID
	KindService
	KindServiceWithRequestID
	KindServiceWithContext
	KindGuardCondition
	KindActionClient
	KindActionServer
)

func (k Kind) String() string {
	switch k {
	case KindSubscription:
		return "SUBSCRIPTION"
	case KindSubscriptionWithContext:
		return "SUBSCRIPTION_WITH_CONTEXT"
	case KindTimer:
		return "TIMER"
	case KindClient:
		return "CLIENT"
	case KindClientWithRequestID:
		return "CLIENT_WITH_REQUEST_ID"
	case KindService:
		return "SERVICE"
	case KindServiceWithRequestID:
		return "SERVICE_WITH_REQUEST_ID"
	case KindServiceWithContext:
		return "SERVICE_WITH_CONTEXT"
	case KindGuardCondition:
		return "GUARD_CONDITION"
	case KindActionClient:
		return "ACTION_CLIENT"
	case KindActionServer:
		return "ACTION_SERVER"
	default:
		return "NONE"
	}
}

// Invocation controls whether a handle's callback fires only on fresh data
// or unconditionally once per round (after the handle's first wait).
type Invocation uint8

const (
	OnNewData Invocation = iota
	Always
)

// unassignedSlot is the sentinel slot_index value meaning "not yet
// registered with the wait set": the fixed value -1, which is never a
// valid slot index. It does not depend on the table's capacity.
const unassignedSlot = -1

// Handle is the tagged-union record describing one registered event
// source. Only the fields relevant to Kind are meaningful; the others sit
// at their zero value. This mirrors the teacher's style of one struct per
// concrete endpoint kind (defaultSubscriber, defaultServiceClient, ...)
// collapsed into a single sum type, since the executor must hold a fixed,
// homogeneous array of these rather than a slice of interfaces: no
// dynamic memory allocation is permitted once the table is built.
type Handle struct {
	Kind       Kind
	Target     middleware.Endpoint
	Invocation Invocation

	// Callback holds one of several possible signatures, selected by
	// Kind. Invoked via reflection, matching the teacher's handling of
	// user-supplied callbacks of varying arity in subscriber.go and
	// action_server.go.
	Callback interface{}

	UserContext interface{}

	DataBuffer     interface{}
	ResponseBuffer interface{}
	RequestID      middleware.RequestID

	ActionClient *action.ClientHandle
	ActionServer *action.ServerHandle

	SlotIndex     int
	DataAvailable bool
	Initialized   bool
}

func zeroHandle() Handle {
	return Handle{Kind: KindNone, SlotIndex: unassignedSlot, Initialized: false}
}

// consolidatedReady is the single "did this handle receive anything this
// round" predicate the execute pass gates OnNewData callbacks on. For
// action handles this ORs together every sub-flag.
func (h *Handle) consolidatedReady() bool {
	switch h.Kind {
	case KindActionClient:
		if h.ActionClient == nil {
			return false
		}
		return h.ActionClient.AnyReady()
	case KindActionServer:
		if h.ActionServer == nil {
			return false
		}
		return h.ActionServer.AnyReady()
	default:
		return h.DataAvailable
	}
}
