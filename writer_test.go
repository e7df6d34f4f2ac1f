package mayan

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_streamWriter_streamFor(t *testing.T) {
	out := &FakeWriter{}
	errs := &FakeWriter{}
	w := &streamWriter{stdout: out, errout: errs}

	tests := []struct {
		level LogLevel
		wants *FakeWriter
	}{
		{LVL_ERROR, errs},
		{LVL_WARN, errs},
		{LVL_INFO, out},
		{LVL_VERBOSE, out},
		{LVL_DEBUG, out},
		{LVL_TRACE, out},
	}
	for _, tt := range tests {
		assert.Same(t, tt.wants, w.streamFor(tt.level), "wrong stream for %s", tt.level)
	}
}

func Test_streamWriter_writeLine(t *testing.T) {
	out := &FakeWriter{}
	errs := &FakeWriter{}
	w := &streamWriter{stdout: out, errout: errs}

	assert.NoError(t, w.writeLine(LVL_INFO, testlogstr), "error writing line")
	assert.Equal(t, testlogstr+"\n", out.String(), "wrong stdout content")
	assert.Empty(t, errs.buffer, "info line leaked to the error stream")

	assert.NoError(t, w.writeLine(LVL_ERROR, testlogstr), "error writing line")
	assert.Equal(t, testlogstr+"\n", errs.String(), "wrong stderr content")

	failing := &streamWriter{stdout: &ErrorWriter{}, errout: &FakeWriter{}}
	assert.ErrorContains(t, failing.writeLine(LVL_INFO, testlogstr), errorStr, "write error swallowed")
}

func Test_Collector_Writer(t *testing.T) {
	l, s := newTestLogger(t, func(o *Options) { o.Level = LVL_DEBUG })
	c := l.For("adapter")

	t.Run("fprintf", func(t *testing.T) {
		s.Clear()
		n, err := fmt.Fprintf(c.Writer(LVL_WARN), "disk low: %d%%", 91)
		assert.NoError(t, err, "write error")
		assert.Equal(t, len("disk low: 91%"), n, "short write reported")
		assert.Equal(t, "warn:    [adapter] disk low: 91%\n", s.errs.String(), "wrong line")
	})
	t.Run("trailing_newline_trimmed", func(t *testing.T) {
		s.Clear()
		n, err := c.Writer(LVL_INFO).Write([]byte("one line\n"))
		assert.NoError(t, err, "write error")
		assert.Equal(t, len("one line\n"), n, "newline not counted as consumed")
		assert.Equal(t, "info:    [adapter] one line\n", s.out.String(), "wrong line")
	})
	t.Run("empty_write", func(t *testing.T) {
		s.Clear()
		n, err := c.Writer(LVL_INFO).Write(nil)
		assert.NoError(t, err, "write error")
		assert.Zero(t, n, "empty write consumed bytes")
		assert.Empty(t, s.out.buffer, "empty write produced output")
	})
	t.Run("filtered_write_is_a_noop", func(t *testing.T) {
		s.Clear()
		w := c.Writer(LVL_TRACE) // logger sits at debug
		n, err := w.Write([]byte(testlogstr))
		assert.NoError(t, err, "filtered write reported an error")
		assert.Equal(t, len(testlogstr), n, "filtered write not fully consumed")
		assert.Empty(t, s.out.buffer, "filtered write produced output")
	})
}
