package mayan

/*
Options: the construction-time configuration of a Logger. Validation
happens once, inside New; the logger then owns a normalized copy and all
later reconfiguration goes through the Logger setters.

Merge rules: Tracing merges field by field with its defaults (a zero
field inherits the default), TerminalColors merges key by key over the
built-in palette, every other field replaces its default wholesale.
*/

import (
	"io"
	"os"
	"time"

	"github.com/mattn/go-isatty"
)

// TracingOptions configures the method-tracing facility.
type TracingOptions struct {
	Enabled bool     // master switch, off by default
	Level   LogLevel // level traced calls log at, LVL_TRACE when unset
	Tag     string   // tag of the collector used by Logger.AddTracing, "trace" when unset
}

// Options configures a Logger. The zero value is fully usable: info
// level, terminal output, timestamps on, writing to the process streams.
type Options struct {
	// Level is the initial global severity threshold (LVL_INFO when
	// unset). LVL_SILENT is a valid threshold that admits nothing.
	Level LogLevel

	// Disabled starts the logger turned off. Nothing is written at any
	// level until SetEnabled(true).
	Disabled bool

	// Output selects the rendering format (terminal when unset).
	Output LogOutput

	// CollectorLevels seeds per-collector level overrides, keyed by
	// collector key (tags joined by "_"). LVL_UNSET values inherit the
	// global level.
	CollectorLevels map[string]LogLevel

	// NoTimestamp omits timestamps from messages entirely.
	NoTimestamp bool

	// TimestampProvider overrides the message time source (time.Now
	// when nil). Ignored when NoTimestamp is set.
	TimestampProvider func() time.Time

	// IndentMultiline aligns interior lines of multi-line terminal
	// messages under the message column.
	IndentMultiline bool

	// OnLog is invoked synchronously with every message that passed
	// filtering, before it is formatted. A panicking listener is
	// reported to the fallback writer and the panic is re-raised to the
	// log call site.
	OnLog func(*Message)

	// Tracing configures the method-tracing facility.
	Tracing TracingOptions

	// TerminalColors overrides the built-in palette per field (level
	// names plus "timestamp", "tags" and "message"). A present-but-nil
	// spec removes the default decoration; style lists compose with the
	// first name outermost. Unknown style names fail construction.
	TerminalColors map[string][]string

	// Stdout and Stderr replace the process streams. Warn and error
	// lines go to Stderr, everything else to Stdout.
	Stdout io.Writer
	Stderr io.Writer

	// Fallback receives internal diagnostics (listener panics, write
	// failures). os.Stderr when nil; use io.Discard to silence.
	Fallback io.Writer
}

// normalized returns a copy with defaults applied and every field
// validated. Returns coded configuration errors for out-of-range levels
// and outputs.
func (o Options) normalized() (Options, error) {
	if o.Level == LVL_UNSET {
		o.Level = DEFAULT_LEVEL
	}
	if !o.Level.valid() {
		return o, errInvalidLevel(o.Level.String())
	}
	if o.Output == OUTPUT_UNSET {
		o.Output = DEFAULT_OUTPUT
	}
	if normOutput(o.Output) == OUTPUT_UNSET {
		return o, errInvalidOutput(o.Output.String())
	}
	for key, level := range o.CollectorLevels {
		if level != LVL_UNSET && !level.valid() {
			return o, errInvalidLevel(key + "=" + level.String())
		}
	}
	if o.Tracing.Level == LVL_UNSET {
		o.Tracing.Level = DEFAULT_TRACING_LEVEL
	}
	if !o.Tracing.Level.callable() {
		return o, errInvalidLevel(o.Tracing.Level.String())
	}
	if o.Tracing.Tag == "" {
		o.Tracing.Tag = DEFAULT_TRACING_TAG
	}
	if o.TimestampProvider == nil {
		o.TimestampProvider = time.Now
	}
	if o.NoTimestamp {
		o.TimestampProvider = nil
	}
	if o.Stdout == nil {
		o.Stdout = os.Stdout
	}
	if o.Stderr == nil {
		o.Stderr = os.Stderr
	}
	if o.Fallback == nil {
		o.Fallback = os.Stderr
	}
	return o, nil
}

/////////////////////////////////////////////////////////////////////////////////////////

const (
	// Environment variables read by OptionsFromEnv.
	ENV_LOG_LEVEL       = "MAYAN_LOG_LEVEL"
	ENV_MODE            = "MAYAN_ENV"
	ENV_MODE_PRODUCTION = "production"
)

// OptionsFromEnv builds Options from an environment snapshot. There are
// no load-time side effects: the host passes a lookup function (usually
// os.Getenv) exactly when it wants the environment read.
//
// MAYAN_LOG_LEVEL selects the initial level by name ("debug") or by
// canonical numeric value ("4"). MAYAN_ENV=production selects JSON
// output; with MAYAN_ENV unset, JSON is also selected when stdout is
// not an interactive terminal.
func OptionsFromEnv(getenv func(string) string) (Options, error) {
	if getenv == nil {
		getenv = os.Getenv
	}
	var options Options
	if raw := getenv(ENV_LOG_LEVEL); raw != "" {
		level, err := ParseLevel(raw)
		if err != nil {
			return options, err
		}
		options.Level = level
	}
	switch getenv(ENV_MODE) {
	case ENV_MODE_PRODUCTION:
		options.Output = OUTPUT_JSON
	case "":
		if !isTerminal(os.Stdout) {
			options.Output = OUTPUT_JSON
		}
	}
	return options, nil
}

// isTerminal reports whether the file is an interactive terminal.
func isTerminal(f *os.File) bool {
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// NewFromEnv is the environment-driven constructor, for building the
// process-wide default instance in one call:
//
//	log, err := mayan.NewFromEnv(os.Getenv)
func NewFromEnv(getenv func(string) string) (*Logger, error) {
	options, err := OptionsFromEnv(getenv)
	if err != nil {
		return nil, err
	}
	return New(options)
}

// NewNull returns a logger with logging fully disabled, for tests and
// silent contexts. Streams are discarded even if the instance is later
// re-enabled with SetEnabled.
func NewNull() *Logger {
	l, err := New(Options{
		Disabled: true,
		Stdout:   io.Discard,
		Stderr:   io.Discard,
		Fallback: io.Discard,
	})
	if err != nil {
		panic(err) // the options above are statically valid
	}
	return l
}
