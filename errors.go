package mayan

/*
Configuration and misuse error helpers. Every such error carries a
machine-readable "code" detail (HTTP-flavored: 400 for invalid
configuration, 404 for unknown collector keys) so hosts can branch on
the failure class without matching message strings. Built on
gitlab.com/tozd/go/errors for stack traces and structured details.
*/

import (
	stderrors "errors"

	"gitlab.com/tozd/go/errors"
)

const (
	// Error messages used across logger operations (used for testing).
	_ERROR_MESSAGE_INVALID_LEVEL     = "invalid log level"
	_ERROR_MESSAGE_INVALID_OUTPUT    = "invalid log output"
	_ERROR_MESSAGE_INVALID_STYLE     = "unknown terminal style"
	_ERROR_MESSAGE_UNKNOWN_COLLECTOR = "no such collector"
	_ERROR_MESSAGE_INVALID_TARGET    = "tracing target must be a non-nil pointer"
	_ERROR_MESSAGE_INVALID_POINT     = "trace point must be a pointer to a function field"
	_ERROR_MESSAGE_INVALID_FUNC      = "traced value must be a function"
	_ERROR_MESSAGE_BAD_CALL_LEVEL    = "dropped a log call with a non-loggable level"
	_ERROR_UNKNOWN_PANIC_TEXT        = "[no panic description]"
)

const (
	// Machine-readable codes attached to misuse errors via error details.
	CODE_BAD_CONFIG = 400
	CODE_NOT_FOUND  = 404
)

func errInvalidLevel(given string) error {
	return errors.WithDetails(errors.New(_ERROR_MESSAGE_INVALID_LEVEL), "code", CODE_BAD_CONFIG, "level", given)
}

func errInvalidOutput(given string) error {
	return errors.WithDetails(errors.New(_ERROR_MESSAGE_INVALID_OUTPUT), "code", CODE_BAD_CONFIG, "output", given)
}

func errUnknownStyle(style string) error {
	return errors.WithDetails(errors.New(_ERROR_MESSAGE_INVALID_STYLE), "code", CODE_BAD_CONFIG, "style", style)
}

func errUnknownCollector(key string) error {
	return errors.WithDetails(errors.New(_ERROR_MESSAGE_UNKNOWN_COLLECTOR), "code", CODE_NOT_FOUND, "key", key)
}

func errInvalidTarget(msg string) error {
	return errors.WithDetails(errors.New(msg), "code", CODE_BAD_CONFIG)
}

// ErrorCode extracts a numeric status code from an error: a Code() or
// StatusCode() method anywhere in the chain wins, then a "code" detail
// (gitlab.com/tozd/go/errors). Returns 0 when the error carries no code.
func ErrorCode(err error) int {
	if err == nil {
		return 0
	}
	var coded interface{ Code() int }
	if stderrors.As(err, &coded) {
		return coded.Code()
	}
	var statused interface{ StatusCode() int }
	if stderrors.As(err, &statused) {
		return statused.StatusCode()
	}
	if value, ok := errors.AllDetails(err)["code"]; ok {
		switch code := value.(type) {
		case int:
			return code
		case int64:
			return int(code)
		case float64:
			return int(code)
		}
	}
	return 0
}
