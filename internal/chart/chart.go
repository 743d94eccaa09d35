// Package chart renders benchmark timings as a horizontal bar chart.
package chart

import (
	"fmt"
	"strings"

	"github.com/go-analyze/charts"

	"github.com/awmpietro/palindrome-trace/internal/bench"
	"github.com/awmpietro/palindrome-trace/internal/palindrome"
)

// Format is a chart output encoding.
type Format string

const (
	SVG Format = charts.ChartOutputSVG
	PNG Format = charts.ChartOutputPNG
)

// ParseFormat maps a request value to a Format; empty means SVG.
func ParseFormat(v string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "", "svg":
		return SVG, nil
	case "png":
		return PNG, nil
	}
	return "", fmt.Errorf("unhandled chart format: %s", v)
}

// ContentType returns the HTTP media type for f.
func (f Format) ContentType() string {
	if f == PNG {
		return "image/png"
	}
	return "image/svg+xml"
}

const (
	width     = 800
	barHeight = 28
)

// Render draws one bar per timed engine, in milliseconds. Skipped engines
// get no bar and are named in the subtitle instead.
func Render(res bench.Result, format Format) ([]byte, error) {
	ran := res.Ran()
	if len(ran) == 0 {
		return nil, fmt.Errorf("no timed engines to chart")
	}

	values := make([]float64, len(ran))
	labels := make([]string, len(ran))
	for i, t := range ran {
		values[i] = t.Millis()
		labels[i] = displayName(t.Algorithm)
	}

	opt := charts.NewHorizontalBarChartOptionWithData([][]float64{values})
	opt.Title.Text = fmt.Sprintf("Benchmark (n=%d, ms)", res.Length)
	if skipped := res.Skipped(); len(skipped) > 0 {
		names := make([]string, len(skipped))
		for i, t := range skipped {
			names[i] = displayName(t.Algorithm)
		}
		opt.Title.Subtext = "skipped: " + strings.Join(names, ", ")
	}
	opt.YAxis.Labels = labels
	opt.BarHeight = barHeight
	opt.SeriesList[0].Label.Show = charts.Ptr(true)
	opt.SeriesList[0].Label.ValueFormatter = func(f float64) string {
		return charts.FormatValueHumanize(f, 3, false) + " ms"
	}

	p := charts.NewPainter(charts.PainterOptions{
		OutputFormat: string(format),
		Width:        width,
		Height:       120 + len(ran)*(barHeight*2),
	})
	if err := p.HorizontalBarChart(opt); err != nil {
		return nil, fmt.Errorf("error rendering chart: %w", err)
	}
	return p.Bytes()
}

func displayName(a palindrome.Algorithm) string {
	for _, info := range palindrome.Describe() {
		if info.Algorithm == a {
			return info.Name
		}
	}
	return string(a)
}
