package errors

import (
	stderrors "errors"

	"incosedss/domain/survey"
)

// Alert levels
const (
	LevelError   = "error"
	LevelWarning = "warning"
	LevelInfo    = "info"
	LevelSuccess = "success"
)

// Alert is the user-facing form of an error
type Alert struct {
	Level string
	Title string
	Lines []string
}

// ToAlert converts any pipeline error into the single message shown to the user
func ToAlert(err error) Alert {
	switch GetCode(err) {
	case CodeUnreadableUpload:
		return Alert{Level: LevelError, Title: "Failed to read the Excel file.", Lines: causeLines(err)}
	case CodeEmptyDataset:
		return Alert{Level: LevelError, Title: "The uploaded file contains no data."}
	case CodeMissingColumns:
		alert := Alert{Level: LevelError, Title: "Required columns not found:"}
		var missing *survey.MissingColumnsError
		if stderrors.As(err, &missing) {
			alert.Lines = missing.Labels()
		}
		return alert
	case CodeNoResponses:
		return Alert{Level: LevelWarning, Title: "No responses available for the selected domain."}
	case CodeInvalidInput:
		return Alert{Level: LevelError, Title: message(err)}
	default:
		return Alert{Level: LevelError, Title: "Something went wrong while building the report."}
	}
}

// IsWarning reports whether the error leaves the session usable
func IsWarning(err error) bool {
	return GetCode(err) == CodeNoResponses
}

func message(err error) string {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Message
	}
	return err.Error()
}

func causeLines(err error) []string {
	var appErr *AppError
	if stderrors.As(err, &appErr) && appErr.Cause != nil {
		return []string{appErr.Cause.Error()}
	}
	return []string{err.Error()}
}
