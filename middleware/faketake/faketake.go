// Package faketake is an in-memory stand-in for the middleware transport,
// in the spirit of rosgo's subscriber_test.go testMessageType/testMessage
// fakes: just enough of a wait set, subscriptions, timers, clients,
// services, and guard conditions to drive the executor through real
// rounds in tests.
package faketake

import (
	"fmt"
	"reflect"

	"github.com/team-rocos/rclgo-executor/middleware"
)

// Context is a fake middleware.Context whose validity the test controls.
type Context struct {
	valid bool
}

func NewContext() *Context { return &Context{valid: true} }

func (c *Context) Valid() bool   { return c.valid }
func (c *Context) Invalidate()   { c.valid = false }

// Clock is a fake middleware.Clock with a manually-advanced nanosecond
// counter, so spin_one_period's jitter behavior can be tested without a
// real sleep.
type Clock struct {
	nowNs int64
}

func NewClock() *Clock { return &Clock{} }

func (c *Clock) Now() int64      { return c.nowNs }
func (c *Clock) Sleep(ns int64)  { c.nowNs += ns }
func (c *Clock) Advance(ns int64) { c.nowNs += ns }

// Subscription is a fake middleware.Subscription: Deliver queues one
// message, Take drains it.
type Subscription struct {
	pending  interface{}
	failNext bool
}

func NewSubscription() *Subscription { return &Subscription{} }

func (s *Subscription) Kind() middleware.Kind { return middleware.KindSubscription }
func (s *Subscription) Valid() bool           { return true }

// Deliver makes msg available to the next Take.
func (s *Subscription) Deliver(msg interface{}) { s.pending = msg }

// FailNextTake makes the next Take report TakeFailed instead of
// consuming the pending message.
func (s *Subscription) FailNextTake() { s.failNext = true }

func (s *Subscription) Take(dst interface{}) (middleware.TakeResult, error) {
	if s.failNext {
		s.failNext = false
		return middleware.TakeFailed, nil
	}
	if s.pending == nil {
		return middleware.TakeEmpty, nil
	}
	copyInto(dst, s.pending)
	s.pending = nil
	return middleware.TakeOK, nil
}

func (s *Subscription) ready() bool { return s.pending != nil }

// Timer is a fake middleware.Timer: Fire marks it as elapsed for the
// next wait; Call runs its scheduled work.
type Timer struct {
	due     bool
	callErr error
	Calls   int
}

func NewTimer() *Timer { return &Timer{} }

func (t *Timer) Kind() middleware.Kind { return middleware.KindTimer }
func (t *Timer) Valid() bool           { return true }

// Fire marks the timer as elapsed for the next Wait.
func (t *Timer) Fire() { t.due = true }

// SetCallError makes the next Call return err.
func (t *Timer) SetCallError(err error) { t.callErr = err }

func (t *Timer) Call() error {
	t.due = false
	t.Calls++
	err := t.callErr
	t.callErr = nil
	return err
}

func (t *Timer) ready() bool { return t.due }

// Service is a fake middleware.Service.
type Service struct {
	pendingReq interface{}
	LastResp   interface{}
	failNext   bool
	seq        int64
}

func NewService() *Service { return &Service{} }

func (s *Service) Kind() middleware.Kind { return middleware.KindService }
func (s *Service) Valid() bool           { return true }

func (s *Service) DeliverRequest(req interface{}) { s.pendingReq = req }
func (s *Service) FailNextTake()                  { s.failNext = true }

func (s *Service) TakeRequest(dst interface{}) (middleware.TakeResult, middleware.RequestID, error) {
	if s.failNext {
		s.failNext = false
		return middleware.TakeFailed, middleware.RequestID{}, nil
	}
	if s.pendingReq == nil {
		return middleware.TakeEmpty, middleware.RequestID{}, nil
	}
	copyInto(dst, s.pendingReq)
	s.pendingReq = nil
	s.seq++
	return middleware.TakeOK, middleware.RequestID{SequenceNo: s.seq}, nil
}

func (s *Service) SendResponse(id middleware.RequestID, resp interface{}) error {
	s.LastResp = resp
	return nil
}

func (s *Service) ready() bool { return s.pendingReq != nil }

// Client is a fake middleware.Client.
type Client struct {
	pendingResp interface{}
	failNext    bool
	seq         int64
}

func NewClient() *Client { return &Client{} }

func (c *Client) Kind() middleware.Kind { return middleware.KindClient }
func (c *Client) Valid() bool           { return true }

func (c *Client) DeliverResponse(resp interface{}) { c.pendingResp = resp }
func (c *Client) FailNextTake()                    { c.failNext = true }

func (c *Client) TakeResponse(dst interface{}) (middleware.TakeResult, middleware.RequestID, error) {
	if c.failNext {
		c.failNext = false
		return middleware.TakeFailed, middleware.RequestID{}, nil
	}
	if c.pendingResp == nil {
		return middleware.TakeEmpty, middleware.RequestID{}, nil
	}
	copyInto(dst, c.pendingResp)
	c.pendingResp = nil
	c.seq++
	return middleware.TakeOK, middleware.RequestID{SequenceNo: c.seq}, nil
}

func (c *Client) ready() bool { return c.pendingResp != nil }

// GuardCondition is a fake middleware.GuardCondition: edge-triggered,
// auto-resetting once the wait set observes it ready (matching rcl guard
// condition semantics).
type GuardCondition struct {
	signaled bool
}

func NewGuardCondition() *GuardCondition { return &GuardCondition{} }

func (g *GuardCondition) Kind() middleware.Kind { return middleware.KindGuardCondition }
func (g *GuardCondition) Valid() bool           { return true }

func (g *GuardCondition) Signal() { g.signaled = true }

func (g *GuardCondition) ready() bool { return g.signaled }

// copyInto copies *src onto *dst via reflection, the same trick
// rosgo's dynamic message decoding uses to avoid a type-specific fake
// per test message.
func copyInto(dst, src interface{}) {
	dv := reflect.ValueOf(dst)
	if dv.Kind() != reflect.Ptr {
		panic(fmt.Sprintf("faketake: destination buffer must be a pointer, got %T", dst))
	}
	dv.Elem().Set(reflect.ValueOf(src).Elem())
}

// WaitSet is a fake middleware.WaitSet built directly on the fakes
// above, enough to exercise the executor's real readiness/take/execute
// passes end to end.
type WaitSet struct {
	caps  middleware.Capacities
	valid bool

	subs     []*Subscription
	timers   []*Timer
	clients  []*Client
	services []*Service
	guards   []*GuardCondition

	actionServers []*ActionServer
	actionClients []*ActionClient
}

func NewWaitSet() *WaitSet { return &WaitSet{} }

func (w *WaitSet) Init(c middleware.Capacities) error {
	w.caps = c
	w.valid = true
	return nil
}

func (w *WaitSet) Clear() error {
	w.subs = nil
	w.timers = nil
	w.clients = nil
	w.services = nil
	w.guards = nil
	w.actionServers = nil
	w.actionClients = nil
	return nil
}

func (w *WaitSet) Add(e middleware.Endpoint) (int, error) {
	switch v := e.(type) {
	case *Subscription:
		w.subs = append(w.subs, v)
		return len(w.subs) - 1, nil
	case *Timer:
		w.timers = append(w.timers, v)
		return len(w.timers) - 1, nil
	case *Client:
		w.clients = append(w.clients, v)
		return len(w.clients) - 1, nil
	case *Service:
		w.services = append(w.services, v)
		return len(w.services) - 1, nil
	case *GuardCondition:
		w.guards = append(w.guards, v)
		return len(w.guards) - 1, nil
	case *ActionServer:
		// Not decomposed into the per-kind arrays above: an action
		// endpoint's own take/execute passes poll it directly via
		// ReadyFlags (see markReadiness), so it only needs to
		// participate in Wait's overall readiness decision.
		w.actionServers = append(w.actionServers, v)
		return len(w.actionServers) - 1, nil
	case *ActionClient:
		w.actionClients = append(w.actionClients, v)
		return len(w.actionClients) - 1, nil
	default:
		return 0, fmt.Errorf("faketake: unsupported endpoint type %T", e)
	}
}

func (w *WaitSet) Wait(timeoutNs int64) (middleware.Result, error) {
	var res middleware.Result
	any := false

	res.SubscriptionsReady = make([]bool, len(w.subs))
	for i, s := range w.subs {
		if s.ready() {
			res.SubscriptionsReady[i] = true
			any = true
		}
	}
	res.TimersReady = make([]bool, len(w.timers))
	for i, t := range w.timers {
		if t.ready() {
			res.TimersReady[i] = true
			any = true
		}
	}
	res.ClientsReady = make([]bool, len(w.clients))
	for i, c := range w.clients {
		if c.ready() {
			res.ClientsReady[i] = true
			any = true
		}
	}
	res.ServicesReady = make([]bool, len(w.services))
	for i, s := range w.services {
		if s.ready() {
			res.ServicesReady[i] = true
			any = true
		}
	}
	res.GuardConditionsReady = make([]bool, len(w.guards))
	for i, g := range w.guards {
		if g.ready() {
			res.GuardConditionsReady[i] = true
			any = true
			g.signaled = false
		}
	}

	for _, a := range w.actionServers {
		r := a.ReadyFlags()
		if r.GoalRequest || r.CancelRequest || r.ResultRequest || r.GoalExpired {
			any = true
		}
	}
	for _, a := range w.actionClients {
		r := a.ReadyFlags()
		if r.GoalResponse || r.Feedback || r.CancelResponse || r.ResultResponse {
			any = true
		}
	}

	if !any {
		return res, middleware.ErrWaitTimeout
	}
	return res, nil
}

func (w *WaitSet) Valid() bool { return w.valid }

func (w *WaitSet) Dispose() error {
	w.valid = false
	return nil
}

// Factory returns a middleware.WaitSet factory suitable for
// executor.New, producing fresh *WaitSet instances.
func Factory() func() middleware.WaitSet {
	return func() middleware.WaitSet { return NewWaitSet() }
}
