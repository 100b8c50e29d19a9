package avkit

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Error codes as constants
const (
	ErrCodePermissionDenied   = "PERMISSION_DENIED"
	ErrCodeRecordingFailed    = "RECORDING_FAILED"
	ErrCodePlaybackFailed     = "PLAYBACK_FAILED"
	ErrCodeLoadFailed         = "LOAD_FAILED"
	ErrCodeInvalidURI         = "INVALID_URI"
	ErrCodeUnsupportedFormat  = "UNSUPPORTED_FORMAT"
	ErrCodeDeviceNotAvailable = "DEVICE_NOT_AVAILABLE"
	ErrCodeUnknown            = "UNKNOWN_ERROR"
)

// Error is the SDK error type. Every failure the SDK reports carries one of
// the ErrCode* constants plus optional detail fields.
type Error struct {
	Code      string
	Message   string
	Details   map[string]interface{}
	Timestamp time.Time
	err       error
}

func NewError(message, code string) *Error {
	return &Error{
		Code:      code,
		Message:   message,
		Timestamp: time.Now(),
	}
}

func (e *Error) Error() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s (%s)", e.Message, e.Code)
	if len(e.Details) > 0 {
		sb.WriteString(":")
		for k, v := range e.Details {
			fmt.Fprintf(&sb, " %s=%v", k, v)
		}
	}
	return sb.String()
}

func (e *Error) Unwrap() error {
	return e.err
}

// AddDetail attaches a detail field and returns the error for chaining.
func (e *Error) AddDetail(key string, value interface{}) *Error {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// GetDetail returns a detail field if present.
func (e *Error) GetDetail(key string) (interface{}, bool) {
	if e.Details == nil {
		return nil, false
	}
	value, exists := e.Details[key]
	return value, exists
}

// Specific error creators with common codes
func NewPermissionError(message string) *Error {
	return NewError(message, ErrCodePermissionDenied)
}

func NewRecordingError(message string) *Error {
	return NewError(message, ErrCodeRecordingFailed)
}

func NewPlaybackError(message string) *Error {
	return NewError(message, ErrCodePlaybackFailed)
}

func NewLoadError(message string) *Error {
	return NewError(message, ErrCodeLoadFailed)
}

func NewInvalidURIError(uri string) *Error {
	return NewError("invalid uri", ErrCodeInvalidURI).AddDetail("uri", uri)
}

func NewUnsupportedFormatError(format string) *Error {
	return NewError("unsupported format", ErrCodeUnsupportedFormat).AddDetail("format", format)
}

func NewDeviceError(message string) *Error {
	return NewError(message, ErrCodeDeviceNotAvailable)
}

func NewUnknownError(message string) *Error {
	return NewError(message, ErrCodeUnknown)
}

// WrapError wraps any error as *Error, preserving the original for
// errors.Unwrap. A nil input stays nil; an existing *Error passes through
// untouched so codes set close to the failure are not overwritten.
func WrapError(err error, code string) *Error {
	if err == nil {
		return nil
	}
	var kitErr *Error
	if errors.As(err, &kitErr) {
		return kitErr
	}
	wrapped := NewError(err.Error(), code)
	wrapped.err = err
	return wrapped
}

// IsCode reports whether err is (or wraps) an *Error with the given code.
func IsCode(err error, code string) bool {
	var kitErr *Error
	if !errors.As(err, &kitErr) {
		return false
	}
	return kitErr.Code == code
}
