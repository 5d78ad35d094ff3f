package services

import (
	"html/template"
	"log"

	"incosedss/internal/analysis"
	"incosedss/internal/charts"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
)

// ChartView is a distribution ready for the page: an inline SVG when it
// rendered, otherwise the bucket table alone
type ChartView struct {
	Title    string
	SVG      template.HTML
	Buckets  []analysis.Bucket
	Fallback bool
}

type RenderService struct{}

func NewRenderService() *RenderService {
	return &RenderService{}
}

// Markdown renders Markdown to HTML. Raw HTML in the source is dropped.
func (s *RenderService) Markdown(source string) template.HTML {
	p := parser.NewWithExtensions(parser.CommonExtensions)
	renderer := html.NewRenderer(html.RendererOptions{Flags: html.CommonFlags | html.SkipHTML})
	return template.HTML(markdown.ToHTML([]byte(source), p, renderer))
}

// Chart renders a distribution as an SVG bar chart
func (s *RenderService) Chart(title string, d analysis.Distribution) ChartView {
	view := ChartView{Title: title, Buckets: d.Buckets}

	bar, err := charts.RenderDistribution(title, d)
	if err != nil {
		log.Printf("[ERROR] Failed to render %s chart: %v", title, err)
		view.Fallback = true
		return view
	}

	// labels are escaped by the chart renderer
	view.SVG = template.HTML(bar.SVG)
	return view
}
