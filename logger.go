// A structured, levelled logging package for embedding in long-running
// services. Callers obtain tagged collectors from a shared logger and log
// through them; the logger filters against live-reconfigurable levels,
// renders terminal or JSON lines and routes them to the right stream.
// An opt-in tracing facility wraps selected functions with automatic
// call logging.
package mayan

import (
	"io"
	"reflect"
	"sort"
	"strings"
	"sync"
	"time"
)

// Logger is the central coordinator. It owns the enabled/level state,
// the collector registry, the duplicate-error set and the formatting and
// writing pipeline. Every log call completes synchronously: when a level
// method returns, the line has been written (or filtered, or reported to
// the fallback writer).
type Logger struct {
	sync struct {
		chngMtx sync.RWMutex // guards enabled, level and collector overrides
		collMtx sync.RWMutex // guards the collector registry
		dedpMtx sync.Mutex   // guards the logged-errors identity set
		trceMtx sync.Mutex   // guards the traced-targets marker set
		fbckMtx sync.RWMutex // guards access to fallback writer
		wrtMtx  sync.Mutex   // serializes format+write so lines don't interleave
	}
	options    Options               // normalized copy, immutable after New
	enabled    bool                  // master switch, toggled by SetEnabled
	level      LogLevel              // global severity threshold
	collectors map[string]*Collector // registry, keyed by CollectorState.Key
	seenErrs   *errorSet             // identity de-duplication of logged errors
	traced     map[Traceable]bool    // targets already wrapped by AddTracing
	format     formatter
	writer     *streamWriter
	fallbck    io.Writer        // fallback writer used to report internal errors
	timestamp  func() time.Time // nil when timestamps are disabled
}

// New constructs a Logger from the provided options. Validation is
// strict and fails fast with coded configuration errors; see Options for
// the defaults and merge rules.
//
// Preferred usage example:
//
//	log, err := mayan.New(mayan.Options{Level: mayan.LVL_DEBUG})
//	if err != nil {
//	    panic(err)
//	}
//	users := log.For("UserService")
//	users.Info("user loaded", user)
func New(options Options) (*Logger, error) {
	options, err := options.normalized()
	if err != nil {
		return nil, err
	}
	// Style specs are resolved up front even for JSON output, so a bad
	// color name cannot surface later from a runtime output switch.
	painters, err := buildPainters(options.TerminalColors)
	if err != nil {
		return nil, err
	}
	l := &Logger{
		options:    options,
		enabled:    !options.Disabled,
		level:      options.Level,
		collectors: map[string]*Collector{},
		seenErrs:   newErrorSet(DEFAULT_ERROR_MEMORY),
		traced:     map[Traceable]bool{},
		writer:     &streamWriter{stdout: options.Stdout, errout: options.Stderr},
		fallbck:    options.Fallback,
		timestamp:  options.TimestampProvider,
	}
	if options.Output == OUTPUT_JSON {
		l.format = &jsonFormatter{}
	} else {
		l.format = newTerminalFormatter(painters, options.IndentMultiline)
	}
	return l, nil
}

/////////////////////////////////////////////////////////////////////////////////////////

// For returns the collector for the given tag set, registering it on
// first use. Arguments are converted to string tags: strings pass
// through, named functions contribute their name, other values
// contribute their type name; empty results are dropped. Repeated calls
// with the same derived tags return the identical collector, and a
// collector once registered lives as long as the logger.
func (l *Logger) For(tags ...any) *Collector {
	names := make([]string, 0, len(tags))
	for _, tag := range tags {
		if name := tagName(tag); name != "" {
			names = append(names, name)
		}
	}
	key := strings.Join(names, TAG_KEY_SEPARATOR)

	l.sync.collMtx.RLock()
	collector := l.collectors[key]
	l.sync.collMtx.RUnlock()
	if collector != nil {
		return collector
	}

	l.sync.collMtx.Lock()
	defer l.sync.collMtx.Unlock()
	if collector = l.collectors[key]; collector != nil {
		// lost the registration race, reuse the winner
		return collector
	}
	collector = &Collector{
		logger: l,
		state:  newCollectorState(key, names, l.options.CollectorLevels[key]),
	}
	l.collectors[key] = collector
	return collector
}

// tagName converts one For argument into its tag string.
func tagName(tag any) string {
	switch v := tag.(type) {
	case nil:
		return ""
	case string:
		return v
	}
	if reflect.ValueOf(tag).Kind() == reflect.Func {
		if name := funcName(tag); name != "function" {
			return name
		}
		return ""
	}
	t := reflect.TypeOf(tag)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t.Name()
}

/////////////////////////////////////////////////////////////////////////////////////////

// SetLevel changes the global severity threshold. The change applies
// live to all collectors without an override. The level must be one of
// the seven named levels (silent is allowed and admits nothing).
// Returns the updated observable state.
func (l *Logger) SetLevel(level LogLevel) (State, error) {
	if !level.valid() {
		return l.GetState(), errInvalidLevel(level.String())
	}
	l.sync.chngMtx.Lock()
	l.level = level
	l.sync.chngMtx.Unlock()
	return l.GetState(), nil
}

// SetEnabled turns the whole logger on or off, unconditionally.
func (l *Logger) SetEnabled(enabled bool) State {
	l.sync.chngMtx.Lock()
	l.enabled = enabled
	l.sync.chngMtx.Unlock()
	return l.GetState()
}

// SetCollectorLevel changes the level override of a registered
// collector, addressed by its derived key (tags joined by "_").
// LVL_UNSET clears the override so the collector inherits the global
// level again. Unknown keys fail with a coded not-found error.
func (l *Logger) SetCollectorLevel(key string, level LogLevel) error {
	if level != LVL_UNSET && !level.valid() {
		return errInvalidLevel(level.String())
	}
	l.sync.collMtx.RLock()
	collector := l.collectors[key]
	l.sync.collMtx.RUnlock()
	if collector == nil {
		return errUnknownCollector(key)
	}
	l.sync.chngMtx.Lock()
	collector.state.level = level
	l.sync.chngMtx.Unlock()
	return nil
}

// GetState returns a snapshot of the observable logger state. Collector
// states are shared by reference and sorted by key.
func (l *Logger) GetState() State {
	l.sync.chngMtx.RLock()
	state := State{
		Enabled:        l.enabled,
		Level:          l.level,
		TracingEnabled: l.options.Tracing.Enabled,
	}
	l.sync.chngMtx.RUnlock()

	l.sync.collMtx.RLock()
	state.Collectors = make([]*CollectorState, 0, len(l.collectors))
	for _, collector := range l.collectors {
		state.Collectors = append(state.Collectors, collector.state)
	}
	l.sync.collMtx.RUnlock()
	sort.Slice(state.Collectors, func(i, j int) bool {
		return state.Collectors[i].Key < state.Collectors[j].Key
	})
	return state
}

/////////////////////////////////////////////////////////////////////////////////////////

// Sets the fallback output used to report internal errors, io.Discard is
// used instead of nil to silently drop fallback messages.
//
// The operation is protected by mutex for thread safety.
func (l *Logger) SetFallback(w io.Writer) *Logger {
	l.sync.fbckMtx.Lock()
	defer l.sync.fbckMtx.Unlock()
	if w != nil {
		l.fallbck = w
	} else {
		l.fallbck = io.Discard
	}
	return l
}

// Writes a one-line internal diagnostic to the fallback writer. Internal
// problems never fail or panic the log call that hit them.
func (l *Logger) handleInternalError(errormsg string) {
	defer func() {
		recover() // a broken fallback writer must not take the caller down
	}()
	l.sync.fbckMtx.RLock()
	defer l.sync.fbckMtx.RUnlock()
	if l.fallbck != nil {
		l.fallbck.Write([]byte(errormsg + "\n"))
	}
}
