package executor

import "reflect"

// callVariadic invokes callback with as many of args as its declared
// arity accepts. Ported from the same reflect-dispatch idiom as
// action.callVariadic (and ultimately rosgo's subscriber.go/
// action_server.go): each handle kind accepts a distinct callback
// signature, so callbacks are stored as interface{}.
func callVariadic(callback interface{}, args ...interface{}) {
	if callback == nil {
		return
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
	fun.Call(vals)
}
