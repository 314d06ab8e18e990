// Package middleware describes the black-box collaborator the executor is
// built against: a context, a set of endpoints, and a wait primitive. Node
// and endpoint construction, transport, and message registration are out of
// scope for this module — callers supply their own implementation of these
// interfaces (a DDS/ROS 2 binding, or, for tests, middleware/faketake).
package middleware

import "github.com/pkg/errors"

// TakeResult is the tri-state every take primitive returns.
type TakeResult uint8

const (
	// TakeOK means new data was copied into the caller-provided buffer.
	TakeOK TakeResult = iota
	// TakeEmpty means the endpoint had nothing ready; not an error.
	TakeEmpty
	// TakeFailed means the underlying middleware reported a transient
	// failure; the executor treats this the same as TakeEmpty for
	// subscriptions and services, but never propagates it as a round error.
	TakeFailed
)

// ErrTimerCanceled is returned by Timer.Call when the timer's call
// was skipped because it had been canceled between wait and take; the
// executor maps this to success.
var ErrTimerCanceled = errors.New("middleware: timer canceled")

// Context represents the middleware runtime context (node handle, DDS
// participant, ...). The executor only ever asks whether it is still valid.
type Context interface {
	// Valid reports whether the context may still be used. spin_some and
	// spin consult this before waiting and between rounds.
	Valid() bool
}

// Clock abstracts system time for spin_one_period's jitter-tolerant sleep,
// so that tests can inject a fake clock instead of sleeping for real.
type Clock interface {
	Now() int64 // nanoseconds since an arbitrary epoch
	Sleep(ns int64)
}

// Kind tags an Endpoint with the handle kind it can satisfy. Defined here
// (not in package executor) because it's intrinsic to what the middleware
// endpoint *is*, independent of how the executor schedules it.
type Kind uint8

const (
	KindNone Kind = iota
	KindSubscription
	KindTimer
	KindClient
	KindService
	KindGuardCondition
	KindActionClient
	KindActionServer
)

// Endpoint is the common handle every middleware object exposes to the
// executor: identity for the wait set, plus a validity check mirroring
// rcl's "is this handle still good" pattern.
type Endpoint interface {
	Kind() Kind
	Valid() bool
}

// Subscription is a middleware subscription endpoint: one take pulls at
// most one message into dst, returning TakeEmpty when nothing was pending.
type Subscription interface {
	Endpoint
	Take(dst interface{}) (TakeResult, error)
}

// Timer is a periodic source whose readiness is determined purely by the
// wait set; Call actually invokes the timer's scheduled callback machinery
// inside the middleware (rcl_timer_call semantics), separate from the
// executor's own user callback invocation.
type Timer interface {
	Endpoint
	Call() error
}

// Service is a server-side RPC endpoint.
type Service interface {
	Endpoint
	TakeRequest(reqDst interface{}) (TakeResult, RequestID, error)
	SendResponse(id RequestID, resp interface{}) error
}

// Client is a client-side RPC endpoint.
type Client interface {
	Endpoint
	TakeResponse(respDst interface{}) (TakeResult, RequestID, error)
}

// RequestID identifies one in-flight service request/response pair.
type RequestID struct {
	WriterGUID [16]byte
	SequenceNo int64
}

// GuardCondition is an externally triggerable wake source with no data of
// its own; readiness alone is the signal.
type GuardCondition interface {
	Endpoint
}

// WaitSet is the middleware's blocking multiplexer. The executor owns
// exactly one instance, rebuilding it whenever the handle table's
// composition changes (see executor.WaitSetManager).
type WaitSet interface {
	// Init (re)allocates the wait set for the given per-kind capacities.
	// This is the only allocation permitted outside steady-state spinning.
	Init(capacities Capacities) error
	// Clear empties the set of previously-added endpoints without
	// releasing the underlying allocation.
	Clear() error
	// Add registers an endpoint and returns its slot index for that kind.
	Add(e Endpoint) (slot int, err error)
	// Wait blocks up to timeoutNs for any added endpoint to become ready,
	// or returns ErrWaitTimeout if none did.
	Wait(timeoutNs int64) (Result, error)
	// Valid reports whether Init has succeeded and Clear/Dispose hasn't
	// invalidated the set since.
	Valid() bool
	// Dispose releases the wait set's resources.
	Dispose() error
}

// Capacities is the per-kind sizing the wait set must be initialized with,
// mirroring rcl_wait_set_init's subscription/timer/client/service/guard
// counts plus this module's action-derived aggregates.
type Capacities struct {
	Subscriptions   int
	Timers          int
	Clients         int
	Services        int
	GuardConditions int
}

// Result is the readiness snapshot returned by Wait: for each kind, which
// slot indices (by position, matching the Add order) came back non-null.
type Result struct {
	SubscriptionsReady   []bool
	TimersReady          []bool
	ClientsReady         []bool
	ServicesReady        []bool
	GuardConditionsReady []bool
}

// ErrWaitTimeout is returned by WaitSet.Wait when the timeout elapsed with
// nothing ready.
var ErrWaitTimeout = errors.New("middleware: wait timed out")
