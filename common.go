package mayan

/*
Defines the core data types shared across the package:
  - basetype and the typed aliases for the level/output enums
  - LevelMap name tables (forward and reverse) with parsing helpers
  - Message: the record handed to the on-log listener and the formatter
  - CollectorState: per-tag-set registry state
  - State: the observable logger snapshot

Also defines package-wide default constants and normalization helpers.
*/

import (
	"strconv"
	"strings"
	"time"
)

type basetype byte // basetype is the underlying byte-sized representation used for enums

type LogLevel basetype  // Log severity (alias for byte)
type LogOutput basetype // Rendering format selector (alias for byte)

const (
	// Log level values. LVL_UNSET is the zero value and means "not
	// configured" in options and "inherit the global level" in collector
	// overrides. The trailing _LVL_MAX_for_checks_only is used as an
	// exclusive upper bound for normalization checks.
	LVL_UNSET LogLevel = iota
	LVL_SILENT
	LVL_ERROR
	LVL_WARN
	LVL_INFO
	LVL_VERBOSE
	LVL_DEBUG
	LVL_TRACE
	_LVL_MAX_for_checks_only
)

const (
	// Output format values. OUTPUT_UNSET means "not configured".
	OUTPUT_UNSET LogOutput = iota
	OUTPUT_TERMINAL
	OUTPUT_JSON
	_OUTPUT_MAX_for_checks_only
)

const (
	// Default values applied while normalizing Options.
	DEFAULT_LEVEL         = LVL_INFO
	DEFAULT_OUTPUT        = OUTPUT_TERMINAL
	DEFAULT_TRACING_LEVEL = LVL_TRACE
	DEFAULT_TRACING_TAG   = "trace"
	DEFAULT_TIME_FORMAT   = "2006-01-02T15:04:05.000Z07:00"
	DEFAULT_ERROR_MEMORY  = 1024 // remembered error identities per dedup generation
)

const (
	// Building blocks of collector keys and display tag strings.
	TAG_KEY_SEPARATOR    = "_"
	TAG_STRING_SEPARATOR = " > "
)

/////////////////////////////////////////////////////////////////////////////////////////

// LevelMap is a fixed-size array with one string entry per log level.
// Used for the level name table and terminal style lookups.
type LevelMap [_LVL_MAX_for_checks_only]string

// LevelNames holds the canonical lowercase level names, indexed by
// LogLevel. The empty entry belongs to LVL_UNSET which has no name.
var LevelNames = &LevelMap{
	"",        //LVL_UNSET
	"silent",  //LVL_SILENT
	"error",   //LVL_ERROR
	"warn",    //LVL_WARN
	"info",    //LVL_INFO
	"verbose", //LVL_VERBOSE
	"debug",   //LVL_DEBUG
	"trace",   //LVL_TRACE
}

// levelByName is the reverse of LevelNames. The two tables must stay in
// sync (paired in tests).
var levelByName = map[string]LogLevel{
	"silent":  LVL_SILENT,
	"error":   LVL_ERROR,
	"warn":    LVL_WARN,
	"info":    LVL_INFO,
	"verbose": LVL_VERBOSE,
	"debug":   LVL_DEBUG,
	"trace":   LVL_TRACE,
}

// Value returns the level's canonical numeric value: silent=-1, error=0,
// warn=1, info=2, verbose=3, debug=4, trace=5. Only meaningful for the
// seven named levels.
func (l LogLevel) Value() int {
	return int(l) - 2
}

// String returns the canonical lowercase name ("info"), or a bracketed
// numeric form for values outside the named set.
func (l LogLevel) String() string {
	if l.valid() {
		return LevelNames[l]
	}
	return "level(" + strconv.Itoa(int(l)) + ")"
}

// valid reports whether the level is one of the seven named levels.
func (l LogLevel) valid() bool {
	return l > LVL_UNSET && l < _LVL_MAX_for_checks_only
}

// callable reports whether the level may carry an actual message.
// Silent is a threshold, never a message level.
func (l LogLevel) callable() bool {
	return l.valid() && l != LVL_SILENT
}

// LevelFromName maps a canonical name to its level, false for unknown
// names.
func LevelFromName(name string) (LogLevel, bool) {
	level, ok := levelByName[name]
	return level, ok
}

// LevelFromValue maps a canonical numeric value (-1..5) back to its
// level, false for values outside the range.
func LevelFromValue(value int) (LogLevel, bool) {
	if value < LVL_SILENT.Value() || value > LVL_TRACE.Value() {
		return LVL_UNSET, false
	}
	return LogLevel(value + 2), true
}

// ParseLevel resolves a level from either a canonical name ("debug") or
// a canonical numeric value ("4"). Case and surrounding space are
// ignored. Unknown inputs produce a coded configuration error.
func ParseLevel(s string) (LogLevel, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if level, ok := LevelFromName(name); ok {
		return level, nil
	}
	if value, err := strconv.Atoi(name); err == nil {
		if level, ok := LevelFromValue(value); ok {
			return level, nil
		}
	}
	return LVL_UNSET, errInvalidLevel(s)
}

// Output format names recognized by ParseOutput.
const (
	OUTPUT_NAME_TERMINAL = "terminal"
	OUTPUT_NAME_HUMAN    = "human" // accepted alias of terminal
	OUTPUT_NAME_JSON     = "json"
)

// String returns the canonical output format name.
func (o LogOutput) String() string {
	switch o {
	case OUTPUT_TERMINAL:
		return OUTPUT_NAME_TERMINAL
	case OUTPUT_JSON:
		return OUTPUT_NAME_JSON
	}
	return "output(" + strconv.Itoa(int(o)) + ")"
}

// ParseOutput resolves an output format from its name: "terminal" (or
// its alias "human") and "json".
func ParseOutput(s string) (LogOutput, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case OUTPUT_NAME_TERMINAL, OUTPUT_NAME_HUMAN:
		return OUTPUT_TERMINAL, nil
	case OUTPUT_NAME_JSON:
		return OUTPUT_JSON, nil
	}
	return OUTPUT_UNSET, errInvalidOutput(s)
}

// shouldEmit is the core filtering rule: a message at the candidate
// level is emitted when its value does not exceed the threshold's.
// A silent threshold admits nothing, since no callable level sorts
// at or below it.
func shouldEmit(candidate, threshold LogLevel) bool {
	return candidate <= threshold
}

/////////////////////////////////////////////////////////////////////////////////////////

// Generic byte normalization helper.
func norm_byte[T ~byte](val, overlimit, def T) T {
	if val < overlimit {
		return val
	} else {
		return def
	}
}

// Ensures a provided LogLevel is within the valid range
func normLevel(level LogLevel) LogLevel {
	return norm_byte(level, _LVL_MAX_for_checks_only, LVL_UNSET)
}

// Ensures a provided LogOutput is within the valid range
func normOutput(output LogOutput) LogOutput {
	return norm_byte(output, _OUTPUT_MAX_for_checks_only, OUTPUT_UNSET)
}

// Converts a panic value into a compact readable string (used when
// translating panics into errors or fallback messages)
func panicDesc(panic any) (errtext string) {
	switch v := panic.(type) {
	case string:
		errtext = ": `" + v + "`"
	case error:
		errtext = ": (error) `" + v.Error() + "`"
	default:
		errtext = " " + _ERROR_UNKNOWN_PANIC_TEXT
	}
	return errtext
}

/////////////////////////////////////////////////////////////////////////////////////////

// Message is the record of one emitted log event, handed to the on-log
// listener and then to the formatter. Collector points into the owning
// logger's registry and must be treated as read-only.
type Message struct {
	Collector   *CollectorState
	Level       LogLevel
	Message     string
	Error       error      // filled by the error extraction steps, may be nil
	Data        []any      // remaining positional arguments, nil when none
	Timestamp   *time.Time // nil when timestamps are disabled
	FromTracing bool       // true for messages synthesized by tracing wrappers
}

// CollectorState is the per-tag-set state held in the logger registry.
// Exactly one instance exists per distinct key for the lifetime of the
// logger. Tags never change after registration; the level override is
// the one mutable field, changed only through Logger.SetCollectorLevel.
type CollectorState struct {
	Key  string   // tags joined by "_"
	Tags []string // ordered tags as derived by Logger.For

	level     LogLevel // override, LVL_UNSET = inherit the global level
	tagString string   // cached "[a > b]" form, empty for no tags
}

func newCollectorState(key string, tags []string, level LogLevel) *CollectorState {
	state := &CollectorState{Key: key, Tags: tags, level: normLevel(level)}
	if len(tags) > 0 {
		state.tagString = "[" + strings.Join(tags, TAG_STRING_SEPARATOR) + "]"
	}
	return state
}

// TagString returns the cached display form of the tag set: "[a > b]",
// or the empty string for an untagged collector.
func (cs *CollectorState) TagString() string {
	return cs.tagString
}

// Level returns the collector's level override, LVL_UNSET when the
// collector inherits the global level. The value may be stale while a
// concurrent SetCollectorLevel is in flight.
func (cs *CollectorState) Level() LogLevel {
	return cs.level
}

// State is the observable logger snapshot returned by GetState and the
// setters. Collector states are shared by reference, callers must not
// mutate them.
type State struct {
	Enabled        bool
	Level          LogLevel
	TracingEnabled bool
	Collectors     []*CollectorState
}
