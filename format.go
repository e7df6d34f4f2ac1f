package mayan

/*
Formatters: pure functions from Message to one finished line (without
the trailing newline).

The terminal form is "[timestamp] [level:] [tags] message" with painted
segments, the level label padded to the longest level name, error-aware
message augmentation and optional multi-line indentation. The JSON form
is one flat compact document per message. Both are defensive: a line is
always produced, whatever the message contents.
*/

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"gitlab.com/tozd/go/errors"
)

// formatter renders one message to a finished line.
type formatter interface {
	format(msg *Message) string
}

/////////////////////////////////////////////////////////////////////////////////////////

// terminalFormatter renders human-readable lines.
type terminalFormatter struct {
	painters   map[string]painter
	indent     bool
	labelWidth int // longest level name plus the colon
}

func newTerminalFormatter(painters map[string]painter, indent bool) *terminalFormatter {
	width := 0
	for level := LVL_SILENT; level < _LVL_MAX_for_checks_only; level++ {
		if n := len(LevelNames[level]); n > width {
			width = n
		}
	}
	return &terminalFormatter{painters: painters, indent: indent, labelWidth: width + 1}
}

func (f *terminalFormatter) format(msg *Message) string {
	var segments []string // painted prefix segments
	prefixLen := 0        // raw prefix width, one space per segment included

	if msg.Timestamp != nil {
		raw := msg.Timestamp.Format(DEFAULT_TIME_FORMAT)
		segments = append(segments, paintFor(f.painters, "timestamp")(raw))
		prefixLen += len(raw) + 1
	}

	label := msg.Level.String() + ":"
	pad := f.labelWidth - len(label)
	if pad < 0 {
		pad = 0
	}
	segments = append(segments,
		paintFor(f.painters, msg.Level.String())(label)+strings.Repeat(" ", pad))
	prefixLen += len(label) + pad + 1

	if msg.Collector != nil && msg.Collector.TagString() != "" {
		raw := msg.Collector.TagString()
		segments = append(segments, paintFor(f.painters, "tags")(raw))
		prefixLen += len(raw) + 1
	}

	text := f.messageText(msg)
	if f.indent {
		// interior lines align under the message column; the padding is
		// computed from raw widths, so pasted ANSI codes don't shift it
		text = strings.ReplaceAll(text, "\n", "\n"+strings.Repeat(" ", prefixLen))
	}
	return strings.Join(segments, " ") + " " + paintFor(f.painters, "message")(text)
}

// messageText applies the error augmentation rules to produce the final
// message body.
func (f *terminalFormatter) messageText(msg *Message) string {
	if msg.Error == nil {
		return msg.Message
	}
	errMsg := msg.Error.Error()
	trace := errorTrace(msg.Error)
	extended := extendedErrorDisplay(msg.Error)

	if msg.Message == "" {
		var text string
		switch {
		case extended && trace != "":
			text = trace
		case errMsg != "":
			text = errMsg
		default:
			text = fmt.Sprintf("%v", msg.Error)
		}
		for _, line := range errorDetailLines(msg.Error) {
			text += "\n" + line
		}
		return text
	}
	if extended && trace != "" {
		return msg.Message + "\n" + trace
	}
	if errMsg != "" && !strings.Contains(msg.Message, errMsg) {
		return msg.Message + ": " + errMsg
	}
	return msg.Message
}

// extendedErrorDisplay reports whether the error's rich rendering should
// be shown. Client-error codes (400..499) get the short form only;
// anything else, including uncoded errors, gets the full treatment.
func extendedErrorDisplay(err error) bool {
	code := ErrorCode(err)
	return code < 400 || code >= 500
}

// errorTrace returns the error's rich multi-line rendering (message plus
// stack trace and wrap chain) when it differs from the plain message,
// empty string otherwise.
func errorTrace(err error) string {
	trace := strings.TrimRight(fmt.Sprintf("%+v", err), "\n")
	if trace == err.Error() {
		return ""
	}
	return trace
}

// errorDetailLines renders structured error details as "> key: value"
// lines, sorted by key for stable output.
func errorDetailLines(err error) []string {
	details := errors.AllDetails(err)
	if len(details) == 0 {
		return nil
	}
	keys := make([]string, 0, len(details))
	for key := range details {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	lines := make([]string, 0, len(keys))
	for _, key := range keys {
		lines = append(lines, "> "+key+": "+fmt.Sprint(details[key]))
	}
	return lines
}

/////////////////////////////////////////////////////////////////////////////////////////

// jsonFormatter renders one compact JSON document per message.
type jsonFormatter struct{}

// jsonError is the plain replacement object carrying the error fields
// that would not survive default serialization.
type jsonError struct {
	Message string `json:"message"`
	Stack   string `json:"stack,omitempty"`
	Code    int    `json:"code,omitempty"`
}

// jsonEntry is the flat serialized form of a Message. Tags is always
// present, even when empty, so downstream filters can rely on the key.
type jsonEntry struct {
	Timestamp *time.Time `json:"timestamp,omitempty"`
	Level     string     `json:"level"`
	Tags      []string   `json:"tags"`
	Message   string     `json:"message"`
	Data      []any      `json:"data,omitempty"`
	Error     *jsonError `json:"error,omitempty"`
	Tracing   bool       `json:"tracing,omitempty"`
}

func (f *jsonFormatter) format(msg *Message) string {
	entry := jsonEntry{
		Timestamp: msg.Timestamp,
		Level:     msg.Level.String(),
		Tags:      []string{},
		Message:   msg.Message,
		Data:      msg.Data,
		Tracing:   msg.FromTracing,
	}
	if msg.Collector != nil && len(msg.Collector.Tags) > 0 {
		entry.Tags = msg.Collector.Tags
	}
	if msg.Error != nil {
		entry.Error = &jsonError{
			Message: msg.Error.Error(),
			Stack:   errorTrace(msg.Error),
			Code:    ErrorCode(msg.Error),
		}
		if entry.Message == "" {
			entry.Message = entry.Error.Message
		}
		if entry.Message == "" {
			entry.Message = fmt.Sprintf("%v", msg.Error)
		}
	}

	encoded, err := json.Marshal(entry)
	if err != nil {
		// data held unserializable values, degrade them to strings
		safe := make([]any, len(entry.Data))
		for i, value := range entry.Data {
			safe[i] = fmt.Sprint(value)
		}
		entry.Data = safe
		encoded, err = json.Marshal(entry)
	}
	if err != nil {
		encoded, _ = json.Marshal(jsonEntry{
			Level:   msg.Level.String(),
			Tags:    entry.Tags,
			Message: entry.Message,
		})
	}
	return string(encoded)
}
