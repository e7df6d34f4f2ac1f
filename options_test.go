package mayan

import (
	"io"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func fakeEnv(env map[string]string) func(string) string {
	return func(key string) string { return env[key] }
}

func Test_Options_normalized(t *testing.T) {
	t.Run("zero_value_defaults", func(t *testing.T) {
		normed, err := Options{}.normalized()
		assert.NoError(t, err, "error on zero options")
		assert.Equal(t, DEFAULT_LEVEL, normed.Level, "wrong default level")
		assert.Equal(t, DEFAULT_OUTPUT, normed.Output, "wrong default output")
		assert.Equal(t, DEFAULT_TRACING_LEVEL, normed.Tracing.Level, "wrong default tracing level")
		assert.Equal(t, DEFAULT_TRACING_TAG, normed.Tracing.Tag, "wrong default tracing tag")
		assert.False(t, normed.Tracing.Enabled, "tracing on by default")
		assert.NotNil(t, normed.TimestampProvider, "no default timestamp provider")
		assert.Equal(t, os.Stdout, normed.Stdout, "wrong default stdout")
		assert.Equal(t, os.Stderr, normed.Stderr, "wrong default stderr")
		assert.Equal(t, os.Stderr, normed.Fallback, "wrong default fallback")
	})
	t.Run("explicit_fields_kept", func(t *testing.T) {
		normed, err := Options{
			Level:   LVL_SILENT,
			Output:  OUTPUT_JSON,
			Tracing: TracingOptions{Level: LVL_DEBUG, Tag: "calls"},
		}.normalized()
		assert.NoError(t, err, "silent is a valid threshold")
		assert.Equal(t, LVL_SILENT, normed.Level, "explicit level replaced")
		assert.Equal(t, OUTPUT_JSON, normed.Output, "explicit output replaced")
		assert.Equal(t, LVL_DEBUG, normed.Tracing.Level, "explicit tracing level replaced")
		assert.Equal(t, "calls", normed.Tracing.Tag, "explicit tracing tag replaced")
	})
	t.Run("timestamp_provider", func(t *testing.T) {
		fixed := func() time.Time { return time.Unix(0, 0) }
		normed, _ := Options{TimestampProvider: fixed}.normalized()
		assert.NotNil(t, normed.TimestampProvider, "custom provider dropped")
		assert.Equal(t, time.Unix(0, 0), normed.TimestampProvider(), "wrong provider kept")

		normed, _ = Options{NoTimestamp: true, TimestampProvider: fixed}.normalized()
		assert.Nil(t, normed.TimestampProvider, "NoTimestamp does not win over a custom provider")
	})
	t.Run("validation", func(t *testing.T) {
		_, err := Options{Level: 200}.normalized()
		assert.ErrorContains(t, err, _ERROR_MESSAGE_INVALID_LEVEL, "bad level accepted")

		_, err = Options{Output: 200}.normalized()
		assert.ErrorContains(t, err, _ERROR_MESSAGE_INVALID_OUTPUT, "bad output accepted")

		_, err = Options{CollectorLevels: map[string]LogLevel{"db": 200}}.normalized()
		assert.ErrorContains(t, err, _ERROR_MESSAGE_INVALID_LEVEL, "bad collector seed accepted")

		_, err = Options{CollectorLevels: map[string]LogLevel{"db": LVL_UNSET}}.normalized()
		assert.NoError(t, err, "unset collector seed rejected")

		_, err = Options{Tracing: TracingOptions{Level: LVL_SILENT}}.normalized()
		assert.ErrorContains(t, err, _ERROR_MESSAGE_INVALID_LEVEL, "silent tracing level accepted")
	})
}

func Test_OptionsFromEnv(t *testing.T) {
	t.Run("level_by_name", func(t *testing.T) {
		options, err := OptionsFromEnv(fakeEnv(map[string]string{
			ENV_LOG_LEVEL: "debug",
			ENV_MODE:      "development",
		}))
		assert.NoError(t, err, "error on valid environment")
		assert.Equal(t, LVL_DEBUG, options.Level, "wrong level")
		assert.Equal(t, OUTPUT_UNSET, options.Output, "non-production environment forced an output")
	})
	t.Run("level_by_value", func(t *testing.T) {
		options, err := OptionsFromEnv(fakeEnv(map[string]string{
			ENV_LOG_LEVEL: "4",
			ENV_MODE:      "development",
		}))
		assert.NoError(t, err, "error on valid environment")
		assert.Equal(t, LVL_DEBUG, options.Level, "wrong level")
	})
	t.Run("level_unset", func(t *testing.T) {
		options, err := OptionsFromEnv(fakeEnv(map[string]string{ENV_MODE: "development"}))
		assert.NoError(t, err, "error on empty environment")
		assert.Equal(t, LVL_UNSET, options.Level, "level set from empty variable")
	})
	t.Run("level_invalid", func(t *testing.T) {
		_, err := OptionsFromEnv(fakeEnv(map[string]string{ENV_LOG_LEVEL: "loud"}))
		assert.ErrorContains(t, err, _ERROR_MESSAGE_INVALID_LEVEL, "bad level accepted")
		assert.Equal(t, CODE_BAD_CONFIG, ErrorCode(err), "wrong error code")
	})
	t.Run("production_mode", func(t *testing.T) {
		options, err := OptionsFromEnv(fakeEnv(map[string]string{ENV_MODE: ENV_MODE_PRODUCTION}))
		assert.NoError(t, err, "error on production environment")
		assert.Equal(t, OUTPUT_JSON, options.Output, "production did not select JSON")
	})
	t.Run("mode_unset_follows_terminal_detection", func(t *testing.T) {
		wants := OUTPUT_UNSET
		if !isTerminal(os.Stdout) {
			wants = OUTPUT_JSON
		}
		options, err := OptionsFromEnv(fakeEnv(nil))
		assert.NoError(t, err, "error on empty environment")
		assert.Equal(t, wants, options.Output, "output disagrees with terminal detection")
	})
}

func Test_NewFromEnv(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		l, err := NewFromEnv(fakeEnv(map[string]string{
			ENV_LOG_LEVEL: "trace",
			ENV_MODE:      "development",
		}))
		assert.NoError(t, err, "error on valid environment")
		assert.Equal(t, LVL_TRACE, l.level, "environment level not applied")
	})
	t.Run("invalid", func(t *testing.T) {
		l, err := NewFromEnv(fakeEnv(map[string]string{ENV_LOG_LEVEL: "loud"}))
		assert.Nil(t, l, "logger built from invalid environment")
		assert.ErrorContains(t, err, _ERROR_MESSAGE_INVALID_LEVEL, "wrong error")
	})
}

func Test_NewNull(t *testing.T) {
	l := NewNull()
	assert.False(t, l.enabled, "null logger starts enabled")
	assert.Equal(t, io.Discard, l.writer.stdout, "stdout not discarded")
	assert.Equal(t, io.Discard, l.writer.errout, "stderr not discarded")
	assert.Equal(t, io.Discard, l.fallbck, "fallback not discarded")

	// Calls must be safe both before and after re-enabling.
	c := l.For("null")
	c.Error(testlogstr)
	l.SetEnabled(true)
	c.Error(testlogstr)
}
