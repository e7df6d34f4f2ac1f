package mayan

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_buildPainter(t *testing.T) {
	t.Run("empty_spec_is_identity", func(t *testing.T) {
		for _, spec := range [][]string{nil, {}} {
			p, err := buildPainter(spec)
			assert.NoError(t, err, "error on empty spec")
			assert.Equal(t, testlogstr, p(testlogstr), "empty spec decorated the text")
		}
	})
	t.Run("single_style", func(t *testing.T) {
		p, err := buildPainter([]string{"red"})
		assert.NoError(t, err, "error on valid style")
		assert.Equal(t, "\x1b[31mx\x1b[0m", p("x"), "wrong decoration")
	})
	t.Run("first_style_outermost", func(t *testing.T) {
		p, err := buildPainter([]string{"bold", "red"})
		assert.NoError(t, err, "error on valid spec")
		assert.Equal(t, "\x1b[1m\x1b[31mx\x1b[0m\x1b[0m", p("x"), "wrong composition order")
	})
	t.Run("unknown_style", func(t *testing.T) {
		p, err := buildPainter([]string{"sparkly"})
		assert.Nil(t, p, "painter built from unknown style")
		assert.ErrorContains(t, err, _ERROR_MESSAGE_INVALID_STYLE, "wrong error")
		assert.Equal(t, CODE_BAD_CONFIG, ErrorCode(err), "wrong error code")
	})
	t.Run("unknown_style_after_valid_ones", func(t *testing.T) {
		_, err := buildPainter([]string{"bold", "sparkly"})
		assert.ErrorContains(t, err, _ERROR_MESSAGE_INVALID_STYLE, "late unknown style accepted")
	})
}

func Test_buildPainters(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		painters, err := buildPainters(nil)
		assert.NoError(t, err, "error building default palette")
		assert.Equal(t, "\x1b[31mx\x1b[0m", paintFor(painters, "error")("x"), "wrong default error style")
		assert.Equal(t, "\x1b[33mx\x1b[0m", paintFor(painters, "warn")("x"), "wrong default warn style")
		assert.Equal(t, "\x1b[90mx\x1b[0m", paintFor(painters, "timestamp")("x"), "wrong default timestamp style")
		assert.Equal(t, "x", paintFor(painters, "message")("x"), "message decorated by default")
	})
	t.Run("override_replaces_one_field", func(t *testing.T) {
		painters, err := buildPainters(map[string][]string{"error": {"magenta"}})
		assert.NoError(t, err, "error on valid override")
		assert.Equal(t, "\x1b[35mx\x1b[0m", paintFor(painters, "error")("x"), "override not applied")
		assert.Equal(t, "\x1b[33mx\x1b[0m", paintFor(painters, "warn")("x"), "unrelated default changed")
	})
	t.Run("nil_override_removes_the_default", func(t *testing.T) {
		painters, err := buildPainters(map[string][]string{"error": nil})
		assert.NoError(t, err, "error on nil override")
		assert.Equal(t, "x", paintFor(painters, "error")("x"), "default not removed")
	})
	t.Run("unknown_field_keys_accepted", func(t *testing.T) {
		painters, err := buildPainters(map[string][]string{"banner": {"bold"}})
		assert.NoError(t, err, "unknown field key rejected")
		assert.Equal(t, "\x1b[1mx\x1b[0m", paintFor(painters, "banner")("x"), "extra field not resolved")
	})
	t.Run("unknown_style_names_rejected", func(t *testing.T) {
		painters, err := buildPainters(map[string][]string{"error": {"sparkly"}})
		assert.Nil(t, painters, "palette built from unknown style")
		assert.ErrorContains(t, err, _ERROR_MESSAGE_INVALID_STYLE, "wrong error")
	})
}

func Test_paintFor(t *testing.T) {
	painters, err := buildPainters(nil)
	assert.NoError(t, err, "error building default palette")
	assert.Equal(t, testlogstr, paintFor(painters, "no-such-field")(testlogstr), "missing field not identity")
	assert.Equal(t, testlogstr, paintFor(nil, "error")(testlogstr), "nil palette not identity")
}
