package action

import "reflect"

// callVariadic invokes callback with as many of args as its declared
// arity accepts, matching the teacher's reflect-based dispatch in
// client_state_machine.go's transitionTo and action_server.go's
// internalGoalCallback — user callbacks are stored as interface{}
// because each handle kind accepts a different signature, and Go has no
// sum-of-function-types without this.
func callVariadic(callback interface{}, args ...interface{}) []reflect.Value {
	if callback == nil {
		return nil
	}
	fun := reflect.ValueOf(callback)
	n := fun.Type().NumIn()
	if n > len(args) {
		n = len(args)
	}
	vals := make([]reflect.Value, n)
	for i := 0; i < n; i++ {
		if args[i] == nil {
			vals[i] = reflect.Zero(fun.Type().In(i))
			continue
		}
		vals[i] = reflect.ValueOf(args[i])
	}
	return fun.Call(vals)
}
