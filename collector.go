package mayan

/*
collector.go

A Collector is the handle application code logs through: an abstraction
for a program part, module or subsystem identified by an ordered tag
set. Collectors are obtained from Logger.For, registered once per
distinct tag set and never destroyed.

All logs are written through collectors, not by the logger itself. For a
simple single-part program the untagged root collector (log.For()) can
be the only one.

Concurrency notes:
 - Collector methods are thread-safe and intended to be called from
   application goroutines.
 - Collectors hold no own mutable state: every filtering and emission
   decision is delegated to the logger at call time, so SetLevel,
   SetEnabled and SetCollectorLevel affect live collector handles
   immediately.
*/

// Collector is a per-tag-set logging handle obtained from Logger.For.
type Collector struct {
	logger *Logger
	state  *CollectorState
}

// State exposes the collector's registry entry. Shared by reference,
// treat as read-only.
func (c *Collector) State() *CollectorState {
	return c.state
}

// Log writes a message at an explicit level.
//
// The message argument may be a string, an error (moved to the error
// slot, message left empty), a named function (logged as "name()") or
// any other value (coerced to a string). If the first extra argument is
// an error it is extracted into the error slot; remaining arguments are
// carried as structured data.
//
// A message whose error instance was already logged through this logger
// is suppressed entirely.
func (c *Collector) Log(level LogLevel, message any, args ...any) {
	c.logger.log(c.state, level, message, args...)
}

// WouldLog reports whether a message at the given level would currently
// be emitted through this collector, without logging anything. Useful
// for guarding expensive argument construction:
//
//	if users.WouldLog(mayan.LVL_DEBUG) {
//	    users.Debug("cache dump", cache.Snapshot())
//	}
func (c *Collector) WouldLog(level LogLevel) bool {
	return normLevel(level).callable() && c.logger.shouldLog(c.state, normLevel(level))
}

/////////////////////////////////////////////////////////////////////////////////////////
/*
Convenience level-specific helpers for the six callable levels. These
are thin wrappers around Log that give inline hints in editors and
documentation tools. None of them return anything: delivery problems are
reported to the logger's fallback writer.
*/

// Error logs a message at error level.
//
// Use for failures that need attention. Accepts an error as the message
// itself or as the first extra argument.
func (c *Collector) Error(message any, args ...any) {
	c.logger.log(c.state, LVL_ERROR, message, args...)
}

// Warn logs a message at warn level.
//
// Use for recoverable or noteworthy conditions that deserve attention.
func (c *Collector) Warn(message any, args ...any) {
	c.logger.log(c.state, LVL_WARN, message, args...)
}

// Info logs a message at info level.
//
// Use for normal operational messages.
func (c *Collector) Info(message any, args ...any) {
	c.logger.log(c.state, LVL_INFO, message, args...)
}

// Verbose logs a message at verbose level.
//
// Use for detail that is useful when watching a system closely but too
// chatty for day-to-day operation.
func (c *Collector) Verbose(message any, args ...any) {
	c.logger.log(c.state, LVL_VERBOSE, message, args...)
}

// Debug logs a message at debug level.
//
// Intended for developer-focused debugging output.
func (c *Collector) Debug(message any, args ...any) {
	c.logger.log(c.state, LVL_DEBUG, message, args...)
}

// Trace logs a message at trace level, the most verbose level there is.
//
// Tracing wrappers write their call records at a configurable level,
// this one by default.
func (c *Collector) Trace(message any, args ...any) {
	c.logger.log(c.state, LVL_TRACE, message, args...)
}

// ErrorHandler logs a non-nil error at error level and ignores nil.
// The method value is handy wherever a func(error) callback is wanted:
//
//	service.OnFailure(users.ErrorHandler)
func (c *Collector) ErrorHandler(err error) {
	if err != nil {
		c.logger.log(c.state, LVL_ERROR, err)
	}
}

// AddTracing wraps the target's declared trace points so each call logs
// a "[TRACE] name(args...)" record through this collector. Names listed
// in untraced are skipped. See Logger.AddTracing for the variant that
// routes through the configured tracing tag.
func (c *Collector) AddTracing(target Traceable, untraced ...string) error {
	return c.logger.addTracing(c.state, target, untraced)
}
