package executor

import "github.com/team-rocos/rclgo-executor/middleware"

// WaitSetManager owns the executor's single middleware.WaitSet instance,
// lazily (re)preparing it whenever the handle table's composition has
// changed since the last prepare.
type WaitSetManager struct {
	ws      middleware.WaitSet
	valid   bool
	factory func() middleware.WaitSet
}

// NewWaitSetManager wraps a factory that produces fresh middleware wait
// sets; the manager calls it once, at first Prepare, and disposes the
// result in Dispose.
func NewWaitSetManager(factory func() middleware.WaitSet) *WaitSetManager {
	return &WaitSetManager{factory: factory}
}

// Invalidate marks the wait set stale. Every registration/removal
// operation calls this; the next Prepare rebuilds it.
func (m *WaitSetManager) Invalidate() {
	m.valid = false
}

// Valid reports whether the wait set is ready to Add/Wait against.
func (m *WaitSetManager) Valid() bool {
	return m.valid
}

// Prepare (re)initializes the wait set from capacities when invalid; a
// no-op when already valid.
func (m *WaitSetManager) Prepare(capacities middleware.Capacities) error {
	if m.valid {
		return nil
	}
	if m.ws == nil {
		m.ws = m.factory()
	}
	if err := m.ws.Init(capacities); err != nil {
		return err
	}
	m.valid = true
	return nil
}

// Rebuild clears the existing set and re-adds every live handle's
// endpoint, recording each returned slot index onto the handle — the
// per-round bookkeeping SpinSome performs before Wait.
func (m *WaitSetManager) Rebuild(table *Table) error {
	if err := m.ws.Clear(); err != nil {
		return err
	}
	for i := 0; i < table.Count(); i++ {
		h := table.At(i)
		ep := waitSetEndpoint(h)
		if ep == nil {
			continue
		}
		slot, err := m.ws.Add(ep)
		if err != nil {
			return err
		}
		h.SlotIndex = slot
	}
	return nil
}

// Wait blocks up to timeoutNs for readiness.
func (m *WaitSetManager) Wait(timeoutNs int64) (middleware.Result, error) {
	return m.ws.Wait(timeoutNs)
}

// Dispose releases the underlying wait set, if any. Safe to call
// multiple times.
func (m *WaitSetManager) Dispose() error {
	if m.ws == nil {
		return nil
	}
	err := m.ws.Dispose()
	m.ws = nil
	m.valid = false
	return err
}

// waitSetEndpoint returns the middleware.Endpoint a handle registers
// with the wait set. Action handles register the action endpoint
// itself; the middleware black box is responsible for decomposing it
// into its underlying subscriptions/services for wait purposes, the
// same way it decomposes them for counter aggregation.
func waitSetEndpoint(h *Handle) middleware.Endpoint {
	return h.Target
}
