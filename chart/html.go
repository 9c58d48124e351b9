package chart

import (
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// RenderHTML writes the spec as a self-contained ECharts HTML page. The
// chart identifier is used as the ECharts element ID, so output for a fixed
// spec is byte-identical across runs.
func RenderHTML(w io.Writer, spec Spec) error {
	switch s := spec.(type) {
	case PieSpec:
		return renderPieHTML(w, s)
	case BarSpec:
		return renderBarHTML(w, s)
	case TreemapSpec:
		return renderTreemapHTML(w, s)
	default:
		return fmt.Errorf("unsupported chart spec %T", spec)
	}
}

func initOpts(id ID, title string) charts.GlobalOpts {
	return charts.WithInitializationOpts(opts.Initialization{
		ChartID:   string(id),
		PageTitle: title,
		Width:     "900px",
		Height:    "520px",
	})
}

func renderPieHTML(w io.Writer, s PieSpec) error {
	pie := charts.NewPie()
	pie.SetGlobalOptions(
		initOpts(s.Chart, s.Title),
		charts.WithTitleOpts(opts.Title{Title: s.Title}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true), Left: "right", Orient: "vertical"}),
	)

	data := make([]opts.PieData, len(s.Labels))
	for i := range s.Labels {
		data[i] = opts.PieData{Name: s.Labels[i], Value: s.Values[i]}
	}

	// ECharts expresses the hole as an inner/outer radius pair.
	const outer = 60.0
	inner := fmt.Sprintf("%.0f%%", s.Hole*outer)

	pie.AddSeries(s.CenterText, data,
		charts.WithPieChartOpts(opts.PieChart{
			Radius: []string{inner, fmt.Sprintf("%.0f%%", outer)},
		}),
		charts.WithLabelOpts(opts.Label{Show: opts.Bool(true), Formatter: "{b}: {c}"}),
	)
	return pie.Render(w)
}

func renderBarHTML(w io.Writer, s BarSpec) error {
	bar := charts.NewBar()
	global := []charts.GlobalOpts{
		initOpts(s.Chart, s.Title),
		charts.WithTitleOpts(opts.Title{Title: s.Title}),
		charts.WithXAxisOpts(opts.XAxis{Name: s.XLabel}),
		charts.WithYAxisOpts(opts.YAxis{Name: s.YLabel}),
	}
	if s.Color != "" {
		global = append(global, charts.WithColorsOpts(opts.Colors{s.Color}))
	}
	bar.SetGlobalOptions(global...)

	data := make([]opts.BarData, len(s.Values))
	for i, v := range s.Values {
		data[i] = opts.BarData{Value: v}
	}

	var series []charts.SeriesOpts
	if s.ShowValues {
		series = append(series, charts.WithLabelOpts(opts.Label{Show: opts.Bool(true), Position: "top"}))
	}

	bar.SetXAxis(s.Labels).AddSeries(s.YLabel, data, series...)
	return bar.Render(w)
}

func renderTreemapHTML(w io.Writer, s TreemapSpec) error {
	tm := charts.NewTreeMap()
	global := []charts.GlobalOpts{
		initOpts(s.Chart, s.Title),
		charts.WithTitleOpts(opts.Title{Title: s.Title}),
	}

	var palette opts.Colors
	for _, b := range s.Branches {
		if b.Color != "" {
			palette = append(palette, b.Color)
		}
	}
	if len(palette) > 0 {
		global = append(global, charts.WithColorsOpts(palette))
	}
	tm.SetGlobalOptions(global...)

	branches := make([]opts.TreeMapNode, len(s.Branches))
	for i, b := range s.Branches {
		children := make([]opts.TreeMapNode, len(b.Leaves))
		for j, l := range b.Leaves {
			children[j] = opts.TreeMapNode{Name: l.Name, Value: int(l.Value)}
		}
		branches[i] = opts.TreeMapNode{
			Name:     b.Name,
			Value:    int(b.Value()),
			Children: children,
		}
	}
	root := opts.TreeMapNode{Name: s.Root, Children: branches}

	tm.AddSeries(s.Root, []opts.TreeMapNode{root},
		charts.WithLabelOpts(opts.Label{Show: opts.Bool(true), Formatter: "{b}: {c}"}),
	)
	return tm.Render(w)
}
