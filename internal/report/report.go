// Package report runs the survey pipeline: field resolution, domain filtering,
// aggregation, heuristics and narrative, for one request at a time.
package report

import (
	"errors"
	"fmt"

	"incosedss/domain/survey"
	"incosedss/internal/analysis"
	"incosedss/internal/insights"
	"incosedss/internal/resolver"
	"incosedss/internal/table"
)

// Dataset is an uploaded table with its roles resolved. It is never mutated;
// every report request filters a fresh view of it.
type Dataset struct {
	Table         *table.Table
	Mapping       survey.FieldMapping
	DomainOptions []string
}

// Prepare normalizes column names, resolves every role and lists the domain
// filter options ("All" first, then the sorted distinct answered domains).
func Prepare(t *table.Table, rules []resolver.Rule) (*Dataset, error) {
	if t == nil || t.Len() == 0 {
		return nil, survey.ErrEmptyDataset
	}

	normalized := t.Normalize()
	mapping, err := resolver.Resolve(normalized.Columns(), rules)
	if err != nil {
		return nil, err
	}

	domains, err := normalized.Series(mapping.Domain)
	if err != nil {
		return nil, err
	}

	options := append([]string{survey.AllDomains}, domains.Distinct()...)
	return &Dataset{Table: normalized, Mapping: mapping, DomainOptions: options}, nil
}

// HasDomain reports whether choice is one of the filter options
func (d *Dataset) HasDomain(choice string) bool {
	for _, option := range d.DomainOptions {
		if option == choice {
			return true
		}
	}
	return false
}

// Request selects the domain filter and whether the executive summary is wanted
type Request struct {
	Domain      string
	WithSummary bool
}

// Report holds every section of one rendered report
type Report struct {
	Domain           string
	Mapping          survey.FieldMapping
	Metrics          analysis.Metrics
	Membership       analysis.Distribution
	Domains          analysis.Distribution
	Expectations     analysis.Distribution
	CrossTab         analysis.CrossTab
	Association      *analysis.Association
	TopDomain        string
	TopExpectation   string
	Findings         insights.Findings
	InsightMarkdown  string
	Recommendations  []string
	ExecutiveSummary string
	Table            *table.Table
}

// Build filters the dataset and computes every report section. A filter that
// matches no rows returns survey.ErrNoResponses.
func Build(d *Dataset, req Request, th insights.Thresholds) (*Report, error) {
	working, domain, err := d.filter(req.Domain)
	if err != nil {
		return nil, err
	}

	membership, err := working.Series(d.Mapping.Membership)
	if err != nil {
		return nil, err
	}
	confidence, err := working.Series(d.Mapping.Confidence)
	if err != nil {
		return nil, err
	}
	expectation, err := working.Series(d.Mapping.Expectation)
	if err != nil {
		return nil, err
	}
	domains, err := working.Series(d.Mapping.Domain)
	if err != nil {
		return nil, err
	}

	crossTab, err := analysis.NewCrossTab(domains, membership)
	if err != nil {
		return nil, err
	}

	r := &Report{
		Domain:          domain,
		Mapping:         d.Mapping,
		Metrics:         analysis.ComputeMetrics(working.Len(), membership, confidence),
		Membership:      analysis.NewDistribution(membership),
		Domains:         analysis.NewDistribution(domains),
		Expectations:    analysis.NewDistribution(expectation),
		CrossTab:        crossTab,
		Recommendations: append([]string(nil), insights.Recommendations...),
		Table:           working,
	}
	if assoc, ok := crossTab.Association(); ok {
		r.Association = &assoc
	}

	r.TopDomain = r.Domains.Top()
	r.TopExpectation = r.Expectations.Top()
	r.Findings = insights.Evaluate(r.Metrics, r.Domains, th)
	r.InsightMarkdown = insights.InsightMarkdown(r.TopDomain, r.TopExpectation)
	if req.WithSummary {
		r.ExecutiveSummary = insights.ExecutiveSummary(r.Metrics.TotalResponses, r.TopDomain, r.TopExpectation)
	}
	return r, nil
}

func (d *Dataset) filter(choice string) (*table.Table, string, error) {
	if choice == "" || choice == survey.AllDomains {
		return d.Table, survey.AllDomains, nil
	}

	if !d.HasDomain(choice) {
		return nil, choice, survey.NewNoResponsesError(choice)
	}

	filtered, err := d.Table.Where(d.Mapping.Domain, choice)
	if errors.Is(err, table.ErrNoRows) {
		return nil, choice, survey.NewNoResponsesError(choice)
	}
	if err != nil {
		return nil, choice, fmt.Errorf("failed to filter by domain: %w", err)
	}
	return filtered, choice, nil
}
