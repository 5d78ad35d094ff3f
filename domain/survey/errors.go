package survey

import (
	"errors"
	"fmt"
	"strings"
)

// Report halting conditions
var (
	ErrUnreadable     = errors.New("upload could not be read as a spreadsheet")
	ErrEmptyDataset   = errors.New("dataset contains no data")
	ErrMissingColumns = errors.New("required columns not found")
	ErrNoResponses    = errors.New("no responses for the selected domain")
)

// MissingColumnsError lists every role that could not be bound to a column.
type MissingColumnsError struct {
	Roles []Role
}

func (e *MissingColumnsError) Error() string {
	return fmt.Sprintf("%v: %s", ErrMissingColumns, strings.Join(e.Labels(), ", "))
}

func (e *MissingColumnsError) Unwrap() error {
	return ErrMissingColumns
}

// Labels returns the user-facing names of the missing roles
func (e *MissingColumnsError) Labels() []string {
	labels := make([]string, len(e.Roles))
	for i, r := range e.Roles {
		labels[i] = r.Label()
	}
	return labels
}

// NewUnreadableError wraps a parse failure
func NewUnreadableError(cause error) error {
	return fmt.Errorf("%w: %v", ErrUnreadable, cause)
}

// NewNoResponsesError names the domain that matched nothing
func NewNoResponsesError(domain string) error {
	return fmt.Errorf("%w: %q", ErrNoResponses, domain)
}
