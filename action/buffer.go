package action

import "reflect"

// cloneBufs allocates n independent copies of proto (a pointer to a
// zero-value message struct), one per goal-pool slot, so every
// concurrently-live goal owns its own destination buffer instead of
// racing to share one across takes. The allocation happens once, here,
// at registration time — never once spinning begins.
func cloneBufs(proto interface{}, n int) []interface{} {
	bufs := make([]interface{}, n)
	if proto == nil {
		return bufs
	}
	t := reflect.TypeOf(proto)
	if t.Kind() != reflect.Ptr {
		return bufs
	}
	elem := t.Elem()
	for i := range bufs {
		bufs[i] = reflect.New(elem).Interface()
	}
	return bufs
}

// copyPayload copies *src onto *dst via reflection, the same trick
// middleware/faketake's copyInto uses, so a taken payload lands in the
// goal handle's own buffer rather than aliasing whatever the middleware
// handed back.
func copyPayload(dst, src interface{}) {
	if dst == nil || src == nil {
		return
	}
	dv := reflect.ValueOf(dst)
	if dv.Kind() != reflect.Ptr {
		return
	}
	sv := reflect.ValueOf(src)
	if sv.Kind() == reflect.Ptr {
		sv = sv.Elem()
	}
	if sv.Type() != dv.Elem().Type() {
		return
	}
	dv.Elem().Set(sv)
}
