package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"incosedss/domain/survey"

	"github.com/stretchr/testify/assert"
)

func TestCodeFor(t *testing.T) {
	tests := []struct {
		err  error
		code string
	}{
		{survey.NewUnreadableError(fmt.Errorf("zip: not a valid zip file")), CodeUnreadableUpload},
		{fmt.Errorf("%w: header row only", survey.ErrEmptyDataset), CodeEmptyDataset},
		{&survey.MissingColumnsError{Roles: []survey.Role{survey.RoleDomain}}, CodeMissingColumns},
		{survey.NewNoResponsesError("Space"), CodeNoResponses},
		{stderrors.New("boom"), CodeInternalError},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.code, CodeFor(tt.err), tt.err.Error())
	}
}

func TestWrapKeepsCode(t *testing.T) {
	err := Wrap(survey.NewNoResponsesError("Space"), "report failed")
	assert.Equal(t, CodeNoResponses, GetCode(err))
	assert.True(t, stderrors.Is(err, survey.ErrNoResponses))

	assert.Equal(t, CodeInvalidInput, GetCode(Wrap(InvalidInput("bad"), "upload")))
	assert.Nil(t, Wrap(nil, "nothing"))
}

func TestToAlert(t *testing.T) {
	alert := ToAlert(&survey.MissingColumnsError{Roles: []survey.Role{survey.RoleMembership, survey.RoleDomain}})
	assert.Equal(t, LevelError, alert.Level)
	assert.Equal(t, "Required columns not found:", alert.Title)
	assert.Equal(t, []string{"Membership", "Domain"}, alert.Lines)

	alert = ToAlert(survey.NewNoResponsesError("Space"))
	assert.Equal(t, LevelWarning, alert.Level)
	assert.Equal(t, "No responses available for the selected domain.", alert.Title)

	alert = ToAlert(Wrap(survey.NewUnreadableError(stderrors.New("zip: not a valid zip file")), "upload failed"))
	assert.Equal(t, "Failed to read the Excel file.", alert.Title)
	assert.Len(t, alert.Lines, 1)

	assert.Equal(t, "The uploaded file contains no data.", ToAlert(survey.ErrEmptyDataset).Title)
	assert.Equal(t, "Only .xlsx files are supported", ToAlert(InvalidInput("Only .xlsx files are supported")).Title)
}

func TestIsWarning(t *testing.T) {
	assert.True(t, IsWarning(survey.NewNoResponsesError("Space")))
	assert.False(t, IsWarning(survey.ErrEmptyDataset))
}
