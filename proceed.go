package mayan

/*
proceed.go

Contains the synchronous log pipeline that turns a log call into a
written line. Responsible for:
 - the live filtering decision (enabled flag, collector override, level)
 - message construction: message coercion, error extraction and
   identity-based duplicate suppression
 - invoking the on-log listener (panics reported, then re-raised)
 - formatting and writing, with all internal problems reported to the
   fallback writer instead of failing the call

Every step runs on the caller's goroutine; when a log call returns, the
line is written (or was deliberately dropped).
*/

import (
	"fmt"
	"reflect"
)

// shouldLog is the filtering decision, taken live at call time: false
// when the logger is disabled, otherwise the level rule applied against
// the collector override (when set) or the global level.
func (l *Logger) shouldLog(state *CollectorState, level LogLevel) bool {
	l.sync.chngMtx.RLock()
	defer l.sync.chngMtx.RUnlock()
	if !l.enabled {
		return false
	}
	threshold := l.level
	if state != nil && state.level != LVL_UNSET {
		threshold = state.level
	}
	return shouldEmit(level, threshold)
}

// log runs the full pipeline for one call.
func (l *Logger) log(state *CollectorState, level LogLevel, message any, args ...any) {
	l.logMsg(state, level, false, message, args...)
}

// logMsg is log with the tracing-origin flag explicit. The filter check
// is the hot path: a filtered-out call returns before any Message is
// allocated.
func (l *Logger) logMsg(state *CollectorState, level LogLevel, fromTracing bool, message any, args ...any) {
	if !normLevel(level).callable() {
		l.handleInternalError(_ERROR_MESSAGE_BAD_CALL_LEVEL + ": " + level.String())
		return
	}
	if !l.shouldLog(state, level) {
		return
	}

	msg := Message{Collector: state, Level: level, FromTracing: fromTracing}
	switch m := message.(type) {
	case nil:
		// empty message, errors or data may still follow
	case error:
		msg.Error = m
	case string:
		msg.Message = m
	default:
		if reflect.ValueOf(message).Kind() == reflect.Func {
			msg.Message = funcName(message) + "()"
		} else {
			msg.Message = fmt.Sprint(message)
		}
	}
	if msg.Error == nil && len(args) > 0 {
		if err, ok := args[0].(error); ok && err != nil {
			msg.Error = err
			args = args[1:]
		}
	}
	if len(args) > 0 {
		msg.Data = args
	}
	if msg.Error != nil && !l.markErrorSeen(msg.Error) {
		// this exact error instance was logged before, suppress the repeat
		return
	}
	if l.timestamp != nil {
		now := l.timestamp()
		msg.Timestamp = &now
	}
	if l.options.OnLog != nil {
		l.invokeOnLog(&msg)
	}
	l.write(&msg)
}

// invokeOnLog runs the user listener. A panicking listener is reported
// to the fallback writer and the panic is re-raised, so the failure
// surfaces at the log call site instead of being swallowed.
func (l *Logger) invokeOnLog(msg *Message) {
	defer func() {
		if r := recover(); r != nil {
			l.handleInternalError("panic in on-log listener" + panicDesc(r))
			panic(r)
		}
	}()
	l.options.OnLog(msg)
}

// write formats the message and hands the finished line to the stream
// writer. Formatting or write panics and write errors are reported to
// the fallback writer; the log call itself never fails.
func (l *Logger) write(msg *Message) {
	defer func() {
		if r := recover(); r != nil {
			l.handleInternalError("panic writing log message" + panicDesc(r))
		}
	}()
	l.sync.wrtMtx.Lock()
	defer l.sync.wrtMtx.Unlock()
	if err := l.writer.writeLine(msg.Level, l.format.format(msg)); err != nil {
		l.handleInternalError("error writing log message: " + err.Error())
	}
}

/////////////////////////////////////////////////////////////////////////////////////////

// markErrorSeen records the error identity in the logger's dedup set.
// Returns false when this exact instance was already logged.
func (l *Logger) markErrorSeen(err error) bool {
	l.sync.dedpMtx.Lock()
	defer l.sync.dedpMtx.Unlock()
	return l.seenErrs.add(err)
}

// errKey is the identity of one logged error: pointer-shaped errors key
// by pointer, other comparable errors by value. Two distinct instances
// carrying the same text stay distinct.
type errKey struct {
	typ reflect.Type
	ptr uintptr
	val any
}

// errorSet is a bounded identity set with two generations: when the
// active generation fills up it is demoted and the oldest entries are
// forgotten, so the memory of seen errors stays capped.
type errorSet struct {
	limit int
	seen  map[errKey]struct{}
	prev  map[errKey]struct{}
}

func newErrorSet(limit int) *errorSet {
	return &errorSet{limit: limit, seen: map[errKey]struct{}{}}
}

// add inserts the error identity and reports whether it was new. Errors
// with no usable identity (non-comparable, non-pointer shapes) are
// treated as always new.
func (s *errorSet) add(err error) bool {
	key, ok := errIdentity(err)
	if !ok {
		return true
	}
	if _, dup := s.seen[key]; dup {
		return false
	}
	if _, dup := s.prev[key]; dup {
		return false
	}
	if len(s.seen) >= s.limit {
		s.prev = s.seen
		s.seen = make(map[errKey]struct{}, s.limit)
	}
	s.seen[key] = struct{}{}
	return true
}

// errIdentity computes the identity key for an error instance.
func errIdentity(err error) (errKey, bool) {
	rv := reflect.ValueOf(err)
	if !rv.IsValid() {
		return errKey{}, false
	}
	switch rv.Kind() {
	case reflect.Pointer, reflect.UnsafePointer, reflect.Chan, reflect.Map, reflect.Func, reflect.Slice:
		return errKey{typ: rv.Type(), ptr: rv.Pointer()}, true
	}
	if rv.Comparable() {
		return errKey{typ: rv.Type(), val: err}, true
	}
	return errKey{}, false
}
