// Package charts renders value distributions as SVG bar charts.
package charts

import (
	"bytes"
	"fmt"
	"html"
	"unicode/utf8"

	"incosedss/internal/analysis"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// Layout of a rendered bar chart
const (
	DefaultHeight  = 320
	minWidth       = 420
	barWidth       = 44
	barSpacing     = 18
	maxLabelRunes  = 16
	widthPerMargin = 120
)

var (
	barColor     = drawing.ColorFromHex("3b6fb6")
	missingColor = drawing.ColorFromHex("b0b7c3")
)

// BarChart is a rendered distribution
type BarChart struct {
	Title string
	SVG   string
}

// RenderDistribution draws one bar per bucket, in bucket order, as SVG.
// Axis labels are shortened and escaped; full values belong in a table.
func RenderDistribution(title string, d analysis.Distribution) (*BarChart, error) {
	if d.Empty() {
		return nil, fmt.Errorf("distribution %q has no values", d.Field)
	}

	bars := make([]chart.Value, len(d.Buckets))
	maxCount := 1
	for i, b := range d.Buckets {
		color := barColor
		if b.Missing {
			color = missingColor
		}
		bars[i] = chart.Value{
			Label: html.EscapeString(ShortLabel(b.Label)),
			Value: float64(b.Count),
			Style: chart.Style{FillColor: color, StrokeColor: color, StrokeWidth: 1},
		}
		if b.Count > maxCount {
			maxCount = b.Count
		}
	}

	width := len(bars)*(barWidth+barSpacing) + widthPerMargin
	if width < minWidth {
		width = minWidth
	}

	bc := chart.BarChart{
		Width:      width,
		Height:     DefaultHeight,
		BarWidth:   barWidth,
		BarSpacing: barSpacing,
		Background: chart.Style{Padding: chart.Box{Top: 20, Left: 10, Right: 10, Bottom: 10}},
		YAxis: chart.YAxis{
			Range:          &chart.ContinuousRange{Min: 0, Max: float64(maxCount)},
			ValueFormatter: countFormatter,
		},
		Bars: bars,
	}

	var buf bytes.Buffer
	if err := bc.Render(chart.SVG, &buf); err != nil {
		return nil, fmt.Errorf("failed to render %s chart: %w", title, err)
	}
	return &BarChart{Title: title, SVG: buf.String()}, nil
}

// ShortLabel cuts a label to fit under a bar
func ShortLabel(label string) string {
	if utf8.RuneCountInString(label) <= maxLabelRunes {
		return label
	}
	runes := []rune(label)
	return string(runes[:maxLabelRunes-1]) + "…"
}

func countFormatter(v interface{}) string {
	if f, ok := v.(float64); ok {
		return fmt.Sprintf("%.0f", f)
	}
	return ""
}
