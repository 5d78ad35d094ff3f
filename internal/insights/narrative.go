package insights

import (
	"fmt"
	"strings"
)

// Recommendations is the fixed strategic recommendation list
var Recommendations = []string{
	"Launch a structured ASEP/CSEP guidance program with clear timelines",
	"Create domain-focused engagement tracks starting with Healthcare",
	"Introduce mentorship-driven certification enablement",
	"Position INCOSE membership as a career credential",
	"Develop employer-facing material highlighting certification ROI",
	"Repeat this survey annually to track engagement trends",
}

const insightTemplate = `### Insight Summary
- **Most represented domain:** %s
- **Top expectation for 2026:** %s
- Most non-members are seeking **clarity, not awareness**
- **Certification pathway guidance** is the strongest conversion lever
`

const summaryTemplate = `Executive Summary – INCOSE India Survey

Total Responses: %d
Most Represented Domain: %s
Primary Member Expectation (2026): %s

Key Findings:
- Strong interest exists, but clarity gaps slow conversion
- Certification guidance is the strongest decision driver
- Domain-specific engagement improves perceived value

Strategic Direction:
INCOSE India should shift toward certification-led,
domain-focused professional enablement.
`

// InsightMarkdown renders the insight summary as Markdown
func InsightMarkdown(topDomain, topExpectation string) string {
	return fmt.Sprintf(insightTemplate, escapeMarkdown(topDomain), escapeMarkdown(topExpectation))
}

// RecommendationsMarkdown renders the recommendations as a numbered Markdown list
func RecommendationsMarkdown() string {
	var b strings.Builder
	for i, rec := range Recommendations {
		fmt.Fprintf(&b, "%d. %s\n", i+1, rec)
	}
	return b.String()
}

// ExecutiveSummary renders the plain text executive summary. The same inputs
// always produce the same text.
func ExecutiveSummary(totalResponses int, topDomain, topExpectation string) string {
	return fmt.Sprintf(summaryTemplate, totalResponses, topDomain, topExpectation)
}

var markdownEscaper = strings.NewReplacer(
	`\`, `\\`,
	"*", `\*`,
	"_", `\_`,
	"`", "\\`",
	"[", `\[`,
	"]", `\]`,
	"<", `\<`,
)

// escapeMarkdown keeps survey answers from being read as Markdown syntax
func escapeMarkdown(s string) string {
	return markdownEscaper.Replace(s)
}
