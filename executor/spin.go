package executor

import "github.com/team-rocos/rclgo-executor/middleware"

// SpinSome runs exactly one round: verify context validity, prepare the
// wait set, rebuild it from the current handle table, wait up to
// timeoutNs, mark readiness, evaluate the trigger, and — if it fires —
// take and execute under the selected scheduling discipline.
func (e *Executor) SpinSome(timeoutNs int64) error {
	if !e.ctx.Valid() {
		return ErrContextInvalid
	}
	if err := e.Prepare(); err != nil {
		return err
	}
	if err := e.ws.Rebuild(e.table); err != nil {
		return err
	}

	result, err := e.ws.Wait(timeoutNs)
	if err != nil {
		if err == middleware.ErrWaitTimeout {
			return ErrTimeout
		}
		return err
	}

	if err := markReadiness(e.table, result); err != nil {
		return err
	}

	if !e.trigger(e.table.Handles(), e.triggerObj) {
		e.log.Debug("trigger did not fire; skipping take/execute this round")
		return nil
	}

	switch e.semantics {
	case LET:
		return runLET(e.table)
	default:
		return runDefault(e.table)
	}
}

// Spin loops SpinSome(e.timeoutNs) while the context remains valid,
// tolerating ErrTimeout as a normal idle round.
func (e *Executor) Spin() error {
	for e.ctx.Valid() {
		if err := e.SpinSome(e.timeoutNs); err != nil && err != ErrTimeout {
			return err
		}
	}
	return nil
}

// SpinPeriod repeatedly calls SpinOnePeriod(periodNs) while the context
// remains valid, or until it returns an error other than ErrTimeout.
func (e *Executor) SpinPeriod(periodNs int64) error {
	for e.ctx.Valid() {
		if err := e.SpinOnePeriod(periodNs); err != nil && err != ErrTimeout {
			return err
		}
	}
	return nil
}

// SpinOnePeriod runs one SpinSome(e.timeoutNs), then sleeps until
// lastInvocationNs + periodNs before returning, advancing
// lastInvocationNs by exactly one period regardless of overrun. Split
// out from SpinPeriod so jitter behavior is unit-testable with a fake
// Clock.
func (e *Executor) SpinOnePeriod(periodNs int64) error {
	if e.lastInvocationNs == 0 {
		e.lastInvocationNs = e.clock.Now()
	}

	err := e.SpinSome(e.timeoutNs)
	if err != nil && err != ErrTimeout {
		return err
	}

	deadline := e.lastInvocationNs + periodNs
	now := e.clock.Now()
	if deadline > now {
		e.clock.Sleep(deadline - now)
	}
	e.lastInvocationNs += periodNs
	return err
}
