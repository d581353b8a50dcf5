package visualization

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/TheMathDoctor/random-walks/internal/store"
	"github.com/TheMathDoctor/random-walks/internal/walk"
)

// chartHeight is the pixel height of the SVG probability charts.
const chartHeight = 220

// reportData holds data passed to the report template.
type reportData struct {
	Title       string
	Runs        []runView
	Comparison  *comparisonView
	ChartHeight int
}

// runView is a single run prepared for rendering.
type runView struct {
	Run     *store.Run
	Bars    []barView
	Mean    string
	StdDev  string
	BarStep float64
}

// barView is one SVG bar of a probability chart.
type barView struct {
	Node   int
	X      float64
	Y      float64
	Width  float64
	Height float64
	Prob   string
	Count  int
}

// comparisonView carries the summary row shown when the report holds a
// classical/quantum pair.
type comparisonView struct {
	TotalVariation string
}

// RenderHTML produces a self-contained HTML report for one or more
// runs. When the report holds exactly one classical and one quantum
// run over the same cycle, a comparison summary is included.
func RenderHTML(title string, runs []*store.Run) ([]byte, error) {
	if len(runs) == 0 {
		return nil, fmt.Errorf("visualization: no runs to render")
	}

	data := reportData{
		Title:       title,
		ChartHeight: chartHeight,
	}
	for _, run := range runs {
		view, err := buildRunView(run)
		if err != nil {
			return nil, err
		}
		data.Runs = append(data.Runs, view)
	}

	if cv, ok := buildComparison(runs); ok {
		data.Comparison = cv
	}

	tmplBytes, err := templates.ReadFile("templates/report.html.tmpl")
	if err != nil {
		return nil, fmt.Errorf("read HTML template: %w", err)
	}
	tmpl, err := template.New("report").Parse(string(tmplBytes))
	if err != nil {
		return nil, fmt.Errorf("parse HTML template: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("execute HTML template: %w", err)
	}
	return buf.Bytes(), nil
}

// buildRunView lays out one run's distribution as SVG bars on a fixed
// 800-unit-wide viewBox. Bars are scaled to the run's own maximum
// probability so the chart shape is readable at any shot count.
func buildRunView(run *store.Run) (runView, error) {
	if run.Distribution == nil {
		return runView{}, fmt.Errorf("visualization: run %s has no distribution", run.ID)
	}
	dist := run.Distribution
	probs := dist.Probabilities()

	maxProb := 0.0
	for _, p := range probs {
		if p > maxProb {
			maxProb = p
		}
	}
	if maxProb == 0 {
		maxProb = 1
	}

	const chartWidth = 800.0
	barStep := chartWidth / float64(dist.Nodes)
	barW := barStep * 0.8

	view := runView{
		Run:     run,
		Mean:    fmt.Sprintf("%.2f", dist.Mean()),
		StdDev:  fmt.Sprintf("%.2f", dist.StdDev()),
		BarStep: barStep,
	}
	for n := 0; n < dist.Nodes; n++ {
		p := probs[n]
		h := p / maxProb * float64(chartHeight)
		view.Bars = append(view.Bars, barView{
			Node:   n,
			X:      float64(n)*barStep + (barStep-barW)/2,
			Y:      float64(chartHeight) - h,
			Width:  barW,
			Height: h,
			Prob:   fmt.Sprintf("%.4f", p),
			Count:  dist.Counts[n],
		})
	}
	return view, nil
}

// buildComparison returns the comparison summary when runs are exactly
// one classical and one quantum run over the same cycle.
func buildComparison(runs []*store.Run) (*comparisonView, bool) {
	if len(runs) != 2 {
		return nil, false
	}
	a, b := runs[0], runs[1]
	if a.Kind == b.Kind {
		return nil, false
	}
	if a.Distribution == nil || b.Distribution == nil {
		return nil, false
	}
	tv, err := walk.TotalVariationDistance(a.Distribution, b.Distribution)
	if err != nil {
		return nil, false
	}
	return &comparisonView{TotalVariation: fmt.Sprintf("%.4f", tv)}, true
}
