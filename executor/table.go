package executor

import "github.com/team-rocos/rclgo-executor/middleware"

// Table is the fixed-capacity, order-preserving sequence of registered
// Handle records. Capacity is fixed at construction; entries
// [0, count) are always Initialized=true, and removal shifts the tail
// left by one to preserve registration order.
type Table struct {
	handles  []Handle
	capacity int
	count    int

	// waitCounters aggregates the per-kind counts the wait set must be
	// sized with: one per simple endpoint, plus whatever sub-entity
	// counts each registered action endpoint reports.
	waitCounters middleware.Capacities
}

// NewTable allocates a table with room for capacity handles. New calls it
// once, at executor construction; the table never grows afterwards.
func NewTable(capacity int) *Table {
	t := &Table{handles: make([]Handle, capacity), capacity: capacity}
	for i := range t.handles {
		t.handles[i] = zeroHandle()
	}
	return t
}

func (t *Table) Capacity() int { return t.capacity }
func (t *Table) Count() int    { return t.count }

// WaitCounters returns the current per-kind sizing for the wait set.
func (t *Table) WaitCounters() middleware.Capacities { return t.waitCounters }

// Handles returns the live prefix of the table, in registration order.
// Callers must not retain the slice across a mutating call.
func (t *Table) Handles() []Handle {
	return t.handles[:t.count]
}

// At returns a pointer to the live handle at index i, for in-place
// mutation by the readiness/take/execute passes.
func (t *Table) At(i int) *Handle {
	return &t.handles[i]
}

// Insert appends h to the table's live prefix, returning ErrOverflow if
// the table is already at capacity.
func (t *Table) Insert(h Handle) (*Handle, error) {
	if t.count == t.capacity {
		return nil, ErrOverflow
	}
	h.Initialized = true
	if h.SlotIndex == 0 {
		h.SlotIndex = unassignedSlot
	}
	t.handles[t.count] = h
	slot := &t.handles[t.count]
	t.addCounters(h)
	t.count++
	return slot, nil
}

// Remove locates the handle whose Target equals target, shifts the tail
// left to preserve order (invariant I3/P3), and resets the vacated slot.
// Returns ErrNotFound if target isn't registered.
func (t *Table) Remove(target middleware.Endpoint) error {
	idx := -1
	for i := 0; i < t.count; i++ {
		if t.handles[i].Target == target {
			idx = i
			break
		}
	}
	if idx < 0 {
		return ErrNotFound
	}
	t.removeCounters(t.handles[idx])
	copy(t.handles[idx:t.count-1], t.handles[idx+1:t.count])
	t.handles[t.count-1] = zeroHandle()
	t.count--
	return nil
}

func (t *Table) addCounters(h Handle) {
	c := &t.waitCounters
	switch h.Kind {
	case KindSubscription, KindSubscriptionWithContext:
		c.Subscriptions++
	case KindTimer:
		c.Timers++
	case KindClient, KindClientWithRequestID:
		c.Clients++
	case KindService, KindServiceWithRequestID, KindServiceWithContext:
		c.Services++
	case KindGuardCondition:
		c.GuardConditions++
	case KindActionClient:
		addCapacities(c, h.ActionClient.Endpoint.SubEntityCounts())
	case KindActionServer:
		addCapacities(c, h.ActionServer.Endpoint.SubEntityCounts())
	}
}

func (t *Table) removeCounters(h Handle) {
	c := &t.waitCounters
	switch h.Kind {
	case KindSubscription, KindSubscriptionWithContext:
		c.Subscriptions--
	case KindTimer:
		c.Timers--
	case KindClient, KindClientWithRequestID:
		c.Clients--
	case KindService, KindServiceWithRequestID, KindServiceWithContext:
		c.Services--
	case KindGuardCondition:
		c.GuardConditions--
	case KindActionClient:
		subCapacities(c, h.ActionClient.Endpoint.SubEntityCounts())
	case KindActionServer:
		subCapacities(c, h.ActionServer.Endpoint.SubEntityCounts())
	}
}

func addCapacities(dst *middleware.Capacities, src middleware.Capacities) {
	dst.Subscriptions += src.Subscriptions
	dst.Timers += src.Timers
	dst.Clients += src.Clients
	dst.Services += src.Services
	dst.GuardConditions += src.GuardConditions
}

func subCapacities(dst *middleware.Capacities, src middleware.Capacities) {
	dst.Subscriptions -= src.Subscriptions
	dst.Timers -= src.Timers
	dst.Clients -= src.Clients
	dst.Services -= src.Services
	dst.GuardConditions -= src.GuardConditions
}
