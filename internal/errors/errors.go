package errors

import (
	stderrors "errors"
	"fmt"

	"incosedss/domain/survey"
)

// AppError represents a structured application error
type AppError struct {
	Code    string
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// New creates a new AppError
func New(code, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an error with additional context
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return &AppError{
			Code:    appErr.Code,
			Message: message,
			Cause:   err,
		}
	}
	return &AppError{
		Code:    CodeFor(err),
		Message: message,
		Cause:   err,
	}
}

// Wrapf wraps an error with formatted additional context
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return Wrap(err, fmt.Sprintf(format, args...))
}

// GetCode returns the error code if it's an AppError, otherwise the code the
// error maps to
func GetCode(err error) string {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Code
	}
	return CodeFor(err)
}

// Predefined error codes
const (
	CodeUnreadableUpload = "UNREADABLE_UPLOAD"
	CodeEmptyDataset     = "EMPTY_DATASET"
	CodeMissingColumns   = "MISSING_COLUMNS"
	CodeNoResponses      = "NO_RESPONSES"
	CodeConfigInvalid    = "CONFIG_INVALID"
	CodeInvalidInput     = "INVALID_INPUT"
	CodeInternalError    = "INTERNAL_ERROR"
)

// ConfigInvalid creates an AppError for invalid configuration
func ConfigInvalid(message string) *AppError {
	return New(CodeConfigInvalid, message)
}

// InvalidInput creates an AppError for invalid user input
func InvalidInput(message string) *AppError {
	return New(CodeInvalidInput, message)
}

// CodeFor maps a survey failure to its error code
func CodeFor(err error) string {
	switch {
	case err == nil:
		return ""
	case stderrors.Is(err, survey.ErrUnreadable):
		return CodeUnreadableUpload
	case stderrors.Is(err, survey.ErrEmptyDataset):
		return CodeEmptyDataset
	case stderrors.Is(err, survey.ErrMissingColumns):
		return CodeMissingColumns
	case stderrors.Is(err, survey.ErrNoResponses):
		return CodeNoResponses
	default:
		return CodeInternalError
	}
}
