package mayan

/*********************************************************************************
Output routing and the io.Writer adapter.

streamWriter routes finished lines by level: warn and error lines go to
the error stream, everything else to standard output. It receives
already formatted strings and appends the line terminator; there is no
buffering at this layer.

The levelWriter adapter lets a Collector serve as an io.Writer so it can
back fmt.Fprintf and the stdlib log package:

	fmt.Fprintf(collector.Writer(LVL_WARN), "disk low: %d%%", percent)
*/

import (
	"io"
	"strings"
)

// streamWriter holds the two destination streams.
type streamWriter struct {
	stdout io.Writer
	errout io.Writer
}

// streamFor picks the destination stream for a level.
func (w *streamWriter) streamFor(level LogLevel) io.Writer {
	if level == LVL_WARN || level == LVL_ERROR {
		return w.errout
	}
	return w.stdout
}

// writeLine writes one formatted line, appending the newline.
func (w *streamWriter) writeLine(level LogLevel, line string) error {
	_, err := io.WriteString(w.streamFor(level), line+"\n")
	return err
}

// levelWriter adapts a collector and a fixed level to io.Writer.
type levelWriter struct {
	collector *Collector
	level     LogLevel
}

// Write forwards the payload as one log message at the adapter's level.
// A single trailing newline is trimmed, line termination is the stream
// writer's job. The full length is always reported as consumed, a
// filtered-out message is a successful no-op rather than a failed write.
func (lw *levelWriter) Write(p []byte) (n int, err error) {
	if len(p) == 0 {
		return 0, nil
	}
	lw.collector.Log(lw.level, strings.TrimSuffix(string(p), "\n"))
	return len(p), nil
}

// Writer returns an io.Writer that logs every write at the given level
// through this collector. This allows patterns like:
//
//	fmt.Fprintf(collector.Writer(LVL_WARN), "disk low: %d%%", percent)
//	log.SetOutput(collector.Writer(LVL_INFO))
func (c *Collector) Writer(level LogLevel) io.Writer {
	return &levelWriter{collector: c, level: normLevel(level)}
}
