package tts

import (
	"errors"
	"fmt"
)

// Common errors.
var (
	// ErrEmptyText indicates there was nothing to synthesize.
	ErrEmptyText = errors.New("text is empty")

	// ErrUnknownVoice indicates a voice name outside the fixed table.
	ErrUnknownVoice = errors.New("unknown voice")

	// ErrEngineUnavailable indicates the synthesis engine cannot run.
	ErrEngineUnavailable = errors.New("synthesis engine is not available")
)

// ErrorCode identifies specific failure classes.
type ErrorCode string

const (
	CodeSynthesisFailed   ErrorCode = "SYNTHESIS_FAILED"
	CodeEngineUnavailable ErrorCode = "ENGINE_UNAVAILABLE"
	CodeTimeout           ErrorCode = "TIMEOUT"
	CodeInvalidInput      ErrorCode = "INVALID_INPUT"
)

// Error is a synthesis error with a code and an optional cause.
type Error struct {
	Code    ErrorCode
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Cause
}

// NewError creates an Error with the given code, message and cause.
func NewError(code ErrorCode, message string, cause error) *Error {
	return &Error{Code: code, Message: message, Cause: cause}
}
