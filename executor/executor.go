// Package executor implements a single-threaded callback executor: a
// multiplexer that waits on a bounded, user-declared set of event
// sources and dispatches each ready one to a user callback, in
// registration order, under either the Default or LET scheduling
// discipline.
package executor

import (
	"github.com/team-rocos/rclgo-executor/action"
	"github.com/team-rocos/rclgo-executor/internal/elog"
	"github.com/team-rocos/rclgo-executor/middleware"
)

const defaultTimeoutNs int64 = 1e9

// Executor owns a fixed-capacity handle table and a lazily-prepared wait
// set, and drives rounds of readiness -> take -> execute over them.
// Nothing on Executor is internally thread-safe: all registration and
// spin calls must happen on one goroutine.
type Executor struct {
	ctx   middleware.Context
	table *Table
	ws    *WaitSetManager

	timeoutNs int64
	semantics Semantics

	trigger    Trigger
	triggerObj interface{}

	lastInvocationNs int64
	clock            middleware.Clock

	log *elog.Logger
}

// New allocates an executor with room for capacity handles, wired
// against ctx and a wait-set factory. Fails ErrInvalidArgument on a nil
// context/factory or zero capacity.
func New(ctx middleware.Context, capacity int, wsFactory func() middleware.WaitSet, clock middleware.Clock) (*Executor, error) {
	if ctx == nil || wsFactory == nil || capacity == 0 {
		return nil, ErrInvalidArgument
	}
	return &Executor{
		ctx:       ctx,
		table:     NewTable(capacity),
		ws:        NewWaitSetManager(wsFactory),
		timeoutNs: defaultTimeoutNs,
		semantics: Default,
		trigger:   TriggerAny,
		clock:     clock,
		log:       elog.New("executor"),
	}, nil
}

// Drop disposes the wait set. The handle table is left in place and is
// not cleared. Safe to call more than once, including on a zero-value
// Executor.
func (e *Executor) Drop() {
	if e == nil || e.ws == nil {
		return
	}
	_ = e.ws.Dispose()
}

// SetTimeout sets the default wait timeout used by Spin and
// SpinOnePeriod's internal SpinSome call.
func (e *Executor) SetTimeout(ns int64) error {
	if e == nil || e.table == nil {
		return ErrInvalidArgument
	}
	e.timeoutNs = ns
	return nil
}

// SetSemantics switches between Default and LET scheduling.
func (e *Executor) SetSemantics(s Semantics) error {
	if e == nil || e.table == nil {
		return ErrInvalidArgument
	}
	e.semantics = s
	return nil
}

// SetTrigger installs a custom trigger predicate and its opaque object.
func (e *Executor) SetTrigger(t Trigger, obj interface{}) error {
	if e == nil || e.table == nil || t == nil {
		return ErrInvalidArgument
	}
	e.trigger = t
	e.triggerObj = obj
	return nil
}

// Count returns the number of registered handles.
func (e *Executor) Count() int { return e.table.Count() }

// Capacity returns the handle table's fixed capacity.
func (e *Executor) Capacity() int { return e.table.Capacity() }

func (e *Executor) insert(h Handle) (*Handle, error) {
	slot, err := e.table.Insert(h)
	if err != nil {
		return nil, err
	}
	e.ws.Invalidate()
	return slot, nil
}

// AddSubscription registers a subscription handle.
func (e *Executor) AddSubscription(ep middleware.Subscription, buf interface{}, callback interface{}, inv Invocation) error {
	if ep == nil || buf == nil || callback == nil {
		return ErrInvalidArgument
	}
	_, err := e.insert(Handle{Kind: KindSubscription, Target: ep, DataBuffer: buf, Callback: callback, Invocation: inv})
	return err
}

// AddSubscriptionWithContext registers a context-carrying subscription
// handle.
func (e *Executor) AddSubscriptionWithContext(ep middleware.Subscription, buf interface{}, callback interface{}, ctx interface{}, inv Invocation) error {
	if ep == nil || buf == nil || callback == nil {
		return ErrInvalidArgument
	}
	_, err := e.insert(Handle{Kind: KindSubscriptionWithContext, Target: ep, DataBuffer: buf, Callback: callback, UserContext: ctx, Invocation: inv})
	return err
}

// AddTimer registers a timer handle.
func (e *Executor) AddTimer(ep middleware.Timer) error {
	if ep == nil {
		return ErrInvalidArgument
	}
	_, err := e.insert(Handle{Kind: KindTimer, Target: ep, Invocation: OnNewData})
	return err
}

// AddClient registers a client handle.
func (e *Executor) AddClient(ep middleware.Client, respBuf interface{}, callback interface{}) error {
	if ep == nil || respBuf == nil || callback == nil {
		return ErrInvalidArgument
	}
	_, err := e.insert(Handle{Kind: KindClient, Target: ep, DataBuffer: respBuf, Callback: callback, Invocation: OnNewData})
	return err
}

// AddClientWithRequestID registers a request-id-carrying client handle.
func (e *Executor) AddClientWithRequestID(ep middleware.Client, respBuf interface{}, callback interface{}) error {
	if ep == nil || respBuf == nil || callback == nil {
		return ErrInvalidArgument
	}
	_, err := e.insert(Handle{Kind: KindClientWithRequestID, Target: ep, DataBuffer: respBuf, Callback: callback, Invocation: OnNewData})
	return err
}

// AddService registers a service handle.
func (e *Executor) AddService(ep middleware.Service, reqBuf, respBuf interface{}, callback interface{}) error {
	if ep == nil || reqBuf == nil || respBuf == nil || callback == nil {
		return ErrInvalidArgument
	}
	_, err := e.insert(Handle{Kind: KindService, Target: ep, DataBuffer: reqBuf, ResponseBuffer: respBuf, Callback: callback, Invocation: OnNewData})
	return err
}

// AddServiceWithRequestID registers a request-id-carrying service
// handle.
func (e *Executor) AddServiceWithRequestID(ep middleware.Service, reqBuf, respBuf interface{}, callback interface{}) error {
	if ep == nil || reqBuf == nil || respBuf == nil || callback == nil {
		return ErrInvalidArgument
	}
	_, err := e.insert(Handle{Kind: KindServiceWithRequestID, Target: ep, DataBuffer: reqBuf, ResponseBuffer: respBuf, Callback: callback, Invocation: OnNewData})
	return err
}

// AddServiceWithContext registers a context-carrying service handle.
func (e *Executor) AddServiceWithContext(ep middleware.Service, reqBuf, respBuf interface{}, callback interface{}, ctx interface{}) error {
	if ep == nil || reqBuf == nil || respBuf == nil || callback == nil {
		return ErrInvalidArgument
	}
	_, err := e.insert(Handle{Kind: KindServiceWithContext, Target: ep, DataBuffer: reqBuf, ResponseBuffer: respBuf, Callback: callback, UserContext: ctx, Invocation: OnNewData})
	return err
}

// AddGuardCondition registers a guard-condition handle.
func (e *Executor) AddGuardCondition(ep middleware.GuardCondition, callback interface{}) error {
	if ep == nil || callback == nil {
		return ErrInvalidArgument
	}
	_, err := e.insert(Handle{Kind: KindGuardCondition, Target: ep, Callback: callback, Invocation: OnNewData})
	return err
}

// AddActionClient registers an action-client handle, allocating its
// fixed goal pool up front. feedbackBuf and resultBuf are prototype
// pointers (e.g. new(MyFeedback)) cloned once per pool slot so every
// concurrently-live goal owns its own feedback/result destination
// buffer, the same way AddSubscription's buf is the destination for a
// single subscription.
func (e *Executor) AddActionClient(ep middleware.ActionClient, maxConcurrentGoals int, feedbackBuf, resultBuf interface{}, goalCb, feedbackCb, resultCb, cancelCb interface{}, ctx interface{}) error {
	if ep == nil || maxConcurrentGoals <= 0 || feedbackBuf == nil || resultBuf == nil {
		return ErrInvalidArgument
	}
	ach := action.NewClientHandle(ep, maxConcurrentGoals, feedbackBuf, resultBuf, goalCb, feedbackCb, resultCb, cancelCb, ctx)
	_, err := e.insert(Handle{Kind: KindActionClient, Target: ep, ActionClient: ach, Invocation: OnNewData})
	return err
}

// AddActionServer registers an action-server handle, allocating its
// fixed goal pool up front. goalReqBuf is a prototype pointer cloned
// once per pool slot so the goal-request take pass always has a real,
// per-slot destination buffer to take into instead of a shared or nil
// one.
func (e *Executor) AddActionServer(ep middleware.ActionServer, maxConcurrentGoals int, goalReqBuf interface{}, goalCb, cancelCb interface{}, ctx interface{}) error {
	if ep == nil || maxConcurrentGoals <= 0 || goalReqBuf == nil {
		return ErrInvalidArgument
	}
	ash := action.NewServerHandle(ep, maxConcurrentGoals, goalReqBuf, goalCb, cancelCb, ctx)
	_, err := e.insert(Handle{Kind: KindActionServer, Target: ep, ActionServer: ash, Invocation: OnNewData})
	return err
}

// remove locates and removes the handle registered for ep.
func (e *Executor) remove(ep middleware.Endpoint) error {
	if ep == nil {
		return ErrInvalidArgument
	}
	if err := e.table.Remove(ep); err != nil {
		return err
	}
	e.ws.Invalidate()
	return nil
}

func (e *Executor) RemoveSubscription(ep middleware.Subscription) error    { return e.remove(ep) }
func (e *Executor) RemoveTimer(ep middleware.Timer) error                 { return e.remove(ep) }
func (e *Executor) RemoveClient(ep middleware.Client) error               { return e.remove(ep) }
func (e *Executor) RemoveService(ep middleware.Service) error             { return e.remove(ep) }
func (e *Executor) RemoveGuardCondition(ep middleware.GuardCondition) error { return e.remove(ep) }
func (e *Executor) RemoveActionClient(ep middleware.ActionClient) error   { return e.remove(ep) }
func (e *Executor) RemoveActionServer(ep middleware.ActionServer) error   { return e.remove(ep) }

// Prepare (re)initializes the wait set from the table's current
// per-kind counters if it's currently invalid; a no-op otherwise.
func (e *Executor) Prepare() error {
	return e.ws.Prepare(e.table.WaitCounters())
}
