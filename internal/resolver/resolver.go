// Package resolver binds the survey roles to actual sheet columns by keyword.
package resolver

import (
	"strings"

	"incosedss/domain/survey"

	"golang.org/x/text/cases"
)

// Rule lists the keyword tokens a column name must contain to fill a role.
type Rule struct {
	Role     survey.Role `yaml:"role" validate:"required,oneof=membership confidence expectation domain"`
	Keywords []string    `yaml:"keywords" validate:"required,min=1,dive,required"`
}

// DefaultRules returns the keyword rules for the INCOSE India questionnaire
func DefaultRules() []Rule {
	return []Rule{
		{Role: survey.RoleMembership, Keywords: []string{"incose", "member"}},
		{Role: survey.RoleConfidence, Keywords: []string{"decide"}},
		{Role: survey.RoleExpectation, Keywords: []string{"valuable"}},
		{Role: survey.RoleDomain, Keywords: []string{"domain"}},
	}
}

// FindColumn returns the first column, in order, whose case-folded name
// contains every keyword as a substring.
func FindColumn(columns []string, keywords []string) (string, bool) {
	folder := cases.Fold()
	folded := make([]string, len(keywords))
	for i, k := range keywords {
		folded[i] = folder.String(k)
	}

	for _, column := range columns {
		name := folder.String(column)
		matched := true
		for _, k := range folded {
			if !strings.Contains(name, k) {
				matched = false
				break
			}
		}
		if matched {
			return column, true
		}
	}
	return "", false
}

// Resolve binds every role to the column of its first matching rule. Later
// rules for an already bound role are skipped. When any role stays unbound the
// returned *survey.MissingColumnsError names all of them, in role order.
func Resolve(columns []string, rules []Rule) (survey.FieldMapping, error) {
	var mapping survey.FieldMapping
	for _, rule := range rules {
		if mapping.Column(rule.Role) != "" {
			continue
		}
		if column, ok := FindColumn(columns, rule.Keywords); ok {
			mapping.Set(rule.Role, column)
		}
	}

	var missing []survey.Role
	for _, role := range survey.Roles {
		if mapping.Column(role) == "" {
			missing = append(missing, role)
		}
	}

	if len(missing) > 0 {
		return survey.FieldMapping{}, &survey.MissingColumnsError{Roles: missing}
	}
	return mapping, nil
}
