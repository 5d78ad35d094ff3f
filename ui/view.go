package ui

import (
	"html/template"
	"net/url"

	"incosedss/internal/analysis"
	"incosedss/internal/errors"
	"incosedss/internal/insights"
	"incosedss/internal/report"
	"incosedss/ui/services"
)

// Page text
const (
	pageTitle    = "INCOSE India – Survey Decision Support System"
	pageCaption  = "Outcomes • Insights • Risks • Strategic Direction"
	uploadPrompt = "Please upload the INCOSE India survey Excel file to proceed."
	loadedBanner = "Survey data loaded successfully"
)

// PageData is everything report.html renders
type PageData struct {
	Title    string
	Caption  string
	Notices  []errors.Alert
	Alert    *errors.Alert
	FileName string

	DomainOptions  []string
	SelectedDomain string

	Report *ReportView
}

// ReportView is a built report with its charts and markdown rendered
type ReportView struct {
	Metrics          analysis.Metrics
	Membership       services.ChartView
	Domains          services.ChartView
	Expectations     services.ChartView
	CrossTab         analysis.CrossTab
	Association      *analysis.Association
	Insights         template.HTML
	Risks            []string
	Opportunities    []string
	Recommendations  template.HTML
	ExecutiveSummary string
	SummaryURL       string
	RawHeader        []string
	RawRows          [][]string
}

func newPage() PageData {
	return PageData{Title: pageTitle, Caption: pageCaption}
}

func (p *PageData) notify(level, title string) {
	p.Notices = append(p.Notices, errors.Alert{Level: level, Title: title})
}

func (p *PageData) fail(err error) {
	alert := errors.ToAlert(err)
	p.Alert = &alert
	p.Report = nil
}

func (s *Server) reportView(r *report.Report) *ReportView {
	records := r.Table.Records()
	view := &ReportView{
		Metrics:          r.Metrics,
		Membership:       s.render.Chart("Membership Status", r.Membership),
		Domains:          s.render.Chart("Domain Representation", r.Domains),
		Expectations:     s.render.Chart("What Members Expect from INCOSE (2026)", r.Expectations),
		CrossTab:         r.CrossTab,
		Association:      r.Association,
		Insights:         s.render.Markdown(r.InsightMarkdown),
		Risks:            r.Findings.RiskLines(),
		Opportunities:    r.Findings.OpportunityLines(),
		Recommendations:  s.render.Markdown(insights.RecommendationsMarkdown()),
		ExecutiveSummary: r.ExecutiveSummary,
		SummaryURL:       "/?" + url.Values{"domain": {r.Domain}, "summary": {"1"}}.Encode(),
		RawHeader:        records[0],
		RawRows:          records[1:],
	}
	return view
}
