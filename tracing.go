package mayan

/*
Method tracing: bulk-wraps the function fields a target declares as
trace points so every call first logs "[TRACE] name(args...)". The
wrapper re-checks the live tracing level on each call, so tracing can be
narrowed or silenced at runtime without re-wrapping; the wrapped
function then runs with unchanged arguments and its results are returned
unchanged (pending asynchronous results included, nothing is awaited).
*/

import (
	"reflect"
	"strings"
)

// TRACE_PREFIX starts every message synthesized by a tracing wrapper.
const TRACE_PREFIX = "[TRACE] "

// Traceable declares an object's wrappable entry points: a map from
// point name to a pointer to the function-typed field holding it.
//
//	type UserService struct {
//	    GetUser func(id int) (*User, error)
//	}
//
//	func (s *UserService) TracePoints() map[string]any {
//	    return map[string]any{"GetUser": &s.GetUser}
//	}
//
// AddTracing replaces each pointed-to function with a traced wrapper of
// the same type.
type Traceable interface {
	TracePoints() map[string]any
}

// AddTracing applies bulk tracing to the target, logging through the
// collector for the configured tracing tag. A complete no-op when
// tracing or the logger is disabled; idempotent per target, so wiring
// code may call it unconditionally.
func (l *Logger) AddTracing(target Traceable, untraced ...string) error {
	return l.addTracing(l.For(l.options.Tracing.Tag).state, target, untraced)
}

func (l *Logger) addTracing(state *CollectorState, target Traceable, untraced []string) error {
	if !l.options.Tracing.Enabled || !l.GetState().Enabled {
		return nil
	}
	if target == nil {
		return errInvalidTarget(_ERROR_MESSAGE_INVALID_TARGET)
	}
	if tv := reflect.ValueOf(target); tv.Kind() != reflect.Pointer || tv.IsNil() {
		return errInvalidTarget(_ERROR_MESSAGE_INVALID_TARGET)
	}

	l.sync.trceMtx.Lock()
	defer l.sync.trceMtx.Unlock()
	if l.traced[target] {
		return nil
	}

	// validate every point before touching any, a bad map entry must not
	// leave the target half-wrapped
	points := target.TracePoints()
	for _, point := range points {
		pv := reflect.ValueOf(point)
		if !pv.IsValid() || pv.Kind() != reflect.Pointer || pv.Elem().Kind() != reflect.Func || pv.Elem().IsNil() {
			return errInvalidTarget(_ERROR_MESSAGE_INVALID_POINT)
		}
	}

	skip := make(map[string]bool, len(untraced))
	for _, name := range untraced {
		skip[name] = true
	}
	for name, point := range points {
		if skip[name] {
			continue
		}
		slot := reflect.ValueOf(point).Elem()
		original := reflect.ValueOf(slot.Interface()) // snapshot before replacing
		slot.Set(l.traceWrapper(state, name, original))
	}
	l.traced[target] = true
	return nil
}

// traceWrapper builds the traced replacement for one function value.
func (l *Logger) traceWrapper(state *CollectorState, name string, original reflect.Value) reflect.Value {
	fnType := original.Type()
	level := l.options.Tracing.Level
	return reflect.MakeFunc(fnType, func(args []reflect.Value) []reflect.Value {
		if l.shouldLog(state, level) {
			l.logMsg(state, level, true, TRACE_PREFIX+name+"("+renderCallArgs(fnType, args)+")")
		}
		if fnType.IsVariadic() {
			return original.CallSlice(args)
		}
		return original.Call(args)
	})
}

// renderCallArgs renders invocation arguments compactly, flattening the
// variadic tail so traced calls read like the original call site.
func renderCallArgs(fnType reflect.Type, args []reflect.Value) string {
	parts := make([]string, 0, len(args))
	for i, arg := range args {
		if fnType.IsVariadic() && i == len(args)-1 {
			for j := 0; j < arg.Len(); j++ {
				parts = append(parts, inspectCompact(arg.Index(j).Interface()))
			}
			continue
		}
		parts = append(parts, inspectCompact(arg.Interface()))
	}
	return strings.Join(parts, ", ")
}

// Traced wraps a single function with trace logging through the given
// collector, for call sites that want tracing without implementing
// Traceable:
//
//	getUser, err := mayan.Traced(users, "GetUser", svc.GetUser)
//
// The returned function has the same type as fn. Fails with a coded
// configuration error when fn is not a non-nil function.
func Traced[F any](c *Collector, name string, fn F) (F, error) {
	fv := reflect.ValueOf(fn)
	if fv.Kind() != reflect.Func || fv.IsNil() {
		return fn, errInvalidTarget(_ERROR_MESSAGE_INVALID_FUNC)
	}
	wrapped := c.logger.traceWrapper(c.state, name, fv)
	return wrapped.Interface().(F), nil
}
