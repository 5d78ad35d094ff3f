package analysis

import "incosedss/internal/table"

// Tokens matched case-insensitively against answers
var (
	MemberTokens   = []string{"yes"}
	GuidanceTokens = []string{"asep", "csep"}
	ProspectTokens = []string{"exploring", "decide"}
)

// Metrics are the headline counts of the filtered responses
type Metrics struct {
	TotalResponses      int
	ExistingMembers     int
	GuidanceNeed        int
	ConversionProspects int
}

// ComputeMetrics counts members, guidance requests and conversion prospects
func ComputeMetrics(rows int, membership, confidence *table.Series) Metrics {
	return Metrics{
		TotalResponses:      rows,
		ExistingMembers:     membership.CountContaining(MemberTokens...),
		GuidanceNeed:        confidence.CountContaining(GuidanceTokens...),
		ConversionProspects: membership.CountContaining(ProspectTokens...),
	}
}
