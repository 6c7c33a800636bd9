// Package report renders HTML diagnostic charts for a completed run,
// adapted from _examples/RuiCat-circuit/mna/debug's Charts type (a
// go-echarts line-chart-per-quantity dashboard), generalized from
// per-node voltage/current traces to per-vessel pressure/flow traces
// plus a Newton-iterations-per-step chart (spec §7's diagnostics
// output).
package report

import (
	"io"
	"strconv"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"

	"zerod0d/internal/telemetry"
	"zerod0d/resultio"
)

// Report renders a completed run's traces and solver telemetry.
type Report struct {
	Rows      []resultio.Row
	Newton    telemetry.Newton
	StepIters []int
}

func lineChart(title, subtitle string) *charts.Line {
	l := charts.NewLine()
	l.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Theme: types.ThemeWesteros}),
		charts.WithTitleOpts(opts.Title{Title: title, Subtitle: subtitle}),
		charts.WithLegendOpts(opts.Legend{Type: "scroll", Orient: "vertical", Right: "10", Top: "20", Bottom: "20"}),
		charts.WithXAxisOpts(opts.XAxis{SplitNumber: 20}),
		charts.WithYAxisOpts(opts.YAxis{Scale: opts.Bool(true)}),
		charts.WithDataZoomOpts(opts.DataZoom{Type: "inside", Start: 0, End: 100, XAxisIndex: []int{0}}),
	)
	return l
}

// Render writes a self-contained HTML page with a pressure trace
// chart, a flow trace chart, and a Newton-iterations-per-step chart.
func (r *Report) Render(w io.Writer) error {
	xAxis := make([]string, len(r.Rows))
	for i, row := range r.Rows {
		xAxis[i] = formatTime(row.Time)
	}

	pressure := lineChart("Pressure", "pressure traces by vessel node")
	flow := lineChart("Flow", "flow traces by vessel node")
	pressure.SetXAxis(xAxis)
	flow.SetXAxis(xAxis)

	for _, key := range sortedTraceKeys(r.Rows) {
		series := make([]opts.LineData, len(r.Rows))
		for i, row := range r.Rows {
			series[i] = opts.LineData{Value: row.Values[key]}
		}
		if hasSuffix(key, "pressure_in") || hasSuffix(key, "pressure_out") {
			pressure.AddSeries(key, series)
		} else if hasSuffix(key, "flow_in") || hasSuffix(key, "flow_out") {
			flow.AddSeries(key, series)
		}
	}
	pressure.SetSeriesOptions(charts.WithLineChartOpts(opts.LineChart{Smooth: opts.Bool(true)}))
	flow.SetSeriesOptions(charts.WithLineChartOpts(opts.LineChart{Smooth: opts.Bool(true)}))

	newton := lineChart("Newton iterations", "iterations to convergence per time step")
	stepAxis := make([]string, len(r.StepIters))
	iterSeries := make([]opts.LineData, len(r.StepIters))
	for i, n := range r.StepIters {
		stepAxis[i] = formatTime(float64(i))
		iterSeries[i] = opts.LineData{Value: n}
	}
	newton.SetXAxis(stepAxis)
	newton.AddSeries("iterations", iterSeries)

	page := components.NewPage()
	page.AddCharts(pressure, flow, newton)
	return page.Render(w)
}

func sortedTraceKeys(rows []resultio.Row) []string {
	seen := make(map[string]bool)
	var keys []string
	for _, r := range rows {
		for k := range r.Values {
			if !seen[k] {
				seen[k] = true
				keys = append(keys, k)
			}
		}
	}
	for i := 1; i < len(keys); i++ {
		for j := i; j > 0 && keys[j-1] > keys[j]; j-- {
			keys[j-1], keys[j] = keys[j], keys[j-1]
		}
	}
	return keys
}

func hasSuffix(s, suffix string) bool {
	return len(s) >= len(suffix) && s[len(s)-len(suffix):] == suffix
}

func formatTime(t float64) string {
	return strconv.FormatFloat(t, 'g', 4, 64)
}
