package executor

// Trigger is the pluggable round-gate: evaluated once per round, after
// the readiness pass; a false result skips take and execute entirely
// for that round.
type Trigger func(handles []Handle, obj interface{}) bool

// TriggerAny is the default trigger: true iff at least one initialized
// handle has data available.
func TriggerAny(handles []Handle, _ interface{}) bool {
	for i := range handles {
		if handles[i].Initialized && handles[i].consolidatedReady() {
			return true
		}
	}
	return false
}

// TriggerAll is true iff every initialized handle has data available.
func TriggerAll(handles []Handle, _ interface{}) bool {
	any := false
	for i := range handles {
		if !handles[i].Initialized {
			continue
		}
		any = true
		if !handles[i].consolidatedReady() {
			return false
		}
	}
	return any
}

// TriggerAlways always fires.
func TriggerAlways(_ []Handle, _ interface{}) bool {
	return true
}

// TriggerOne fires iff the initialized handle whose Target equals obj
// (the trigger object passed to SetTrigger) has data available. If no handle's target
// matches, it never fires.
func TriggerOne(handles []Handle, obj interface{}) bool {
	for i := range handles {
		if !handles[i].Initialized {
			continue
		}
		if handles[i].Target == obj {
			return handles[i].consolidatedReady()
		}
	}
	return false
}
