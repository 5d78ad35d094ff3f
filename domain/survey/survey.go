package survey

// Role names one of the logical survey questions the report depends on.
type Role string

const (
	RoleMembership  Role = "membership"
	RoleConfidence  Role = "confidence"
	RoleExpectation Role = "expectation"
	RoleDomain      Role = "domain"
)

// Roles lists every role in resolution and reporting order.
var Roles = []Role{RoleMembership, RoleConfidence, RoleExpectation, RoleDomain}

// Label returns the user-facing name of the role
func (r Role) Label() string {
	switch r {
	case RoleMembership:
		return "Membership"
	case RoleConfidence:
		return "Decision / Confidence"
	case RoleExpectation:
		return "Expectations"
	case RoleDomain:
		return "Domain"
	default:
		return string(r)
	}
}

// AllDomains is the domain filter option that applies no restriction.
const AllDomains = "All"

// MissingLabel is the category a missing cell is counted under.
const MissingLabel = "(no response)"

// FieldMapping binds each role to one normalized column name
type FieldMapping struct {
	Membership  string
	Confidence  string
	Expectation string
	Domain      string
}

// Column returns the column bound to a role
func (m FieldMapping) Column(r Role) string {
	switch r {
	case RoleMembership:
		return m.Membership
	case RoleConfidence:
		return m.Confidence
	case RoleExpectation:
		return m.Expectation
	case RoleDomain:
		return m.Domain
	}
	return ""
}

// Set binds a role to a column
func (m *FieldMapping) Set(r Role, column string) {
	switch r {
	case RoleMembership:
		m.Membership = column
	case RoleConfidence:
		m.Confidence = column
	case RoleExpectation:
		m.Expectation = column
	case RoleDomain:
		m.Domain = column
	}
}
