// Package insights turns survey aggregates into risk and opportunity flags and
// the fixed narrative shown alongside the charts.
package insights

import (
	"fmt"

	"incosedss/internal/analysis"
)

// Placeholder lines for empty finding lists
const (
	NoRisks         = "No critical risks identified."
	NoOpportunities = "No major opportunities identified."
)

// Finding messages
const (
	GuidanceRisk          = "Lack of structured ASEP/CSEP guidance may delay membership conversion"
	ConversionOpportunity = "High near-term conversion potential with targeted follow-up"
	focusDomainFormat     = "%s domain shows strong potential for focused INCOSE initiatives"
)

// Thresholds configures when each rule fires. Counts must strictly exceed the
// threshold.
type Thresholds struct {
	GuidanceRisk          int    `yaml:"guidance_risk" validate:"gte=0"`
	ConversionOpportunity int    `yaml:"conversion_opportunity" validate:"gte=0"`
	FocusDomain           string `yaml:"focus_domain" validate:"required"`
	FocusDomainRank       int    `yaml:"focus_domain_rank" validate:"gte=1"`
}

// DefaultThresholds returns the rule settings used for the INCOSE India survey
func DefaultThresholds() Thresholds {
	return Thresholds{
		GuidanceRisk:          10,
		ConversionOpportunity: 8,
		FocusDomain:           "Healthcare",
		FocusDomainRank:       3,
	}
}

// Findings are the triggered risks and opportunities, in rule order
type Findings struct {
	Risks         []string
	Opportunities []string
}

// Evaluate applies every rule independently to the metrics of one filtered table
func Evaluate(m analysis.Metrics, domains analysis.Distribution, th Thresholds) Findings {
	var f Findings

	if m.GuidanceNeed > th.GuidanceRisk {
		f.Risks = append(f.Risks, GuidanceRisk)
	}

	if m.ConversionProspects > th.ConversionOpportunity {
		f.Opportunities = append(f.Opportunities, ConversionOpportunity)
	}

	for _, label := range domains.TopN(th.FocusDomainRank) {
		if label == th.FocusDomain {
			f.Opportunities = append(f.Opportunities, fmt.Sprintf(focusDomainFormat, th.FocusDomain))
			break
		}
	}

	return f
}

// RiskLines returns the risks, or the placeholder line when none fired
func (f Findings) RiskLines() []string {
	if len(f.Risks) == 0 {
		return []string{NoRisks}
	}
	return f.Risks
}

// OpportunityLines returns the opportunities, or the placeholder line when none fired
func (f Findings) OpportunityLines() []string {
	if len(f.Opportunities) == 0 {
		return []string{NoOpportunities}
	}
	return f.Opportunities
}
