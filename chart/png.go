package chart

import (
	"fmt"
	"image/color"
	"io"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// RenderPNG writes the spec as a PNG image. Bar charts use the stock
// plotter; the pie and treemap are drawn with vg primitives, which gonum
// does not ship chart types for.
func RenderPNG(w io.Writer, spec Spec) error {
	var (
		p   *plot.Plot
		err error
	)
	switch s := spec.(type) {
	case PieSpec:
		p, err = piePlot(s)
	case BarSpec:
		p, err = barPlot(s)
	case TreemapSpec:
		p, err = treemapPlot(s)
	default:
		return fmt.Errorf("unsupported chart spec %T", spec)
	}
	if err != nil {
		return err
	}

	wt, err := p.WriterTo(10*vg.Inch, 6*vg.Inch, "png")
	if err != nil {
		return fmt.Errorf("creating plot writer: %w", err)
	}
	if _, err := wt.WriteTo(w); err != nil {
		return fmt.Errorf("writing plot: %w", err)
	}
	return nil
}

func barPlot(s BarSpec) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = s.Title
	p.X.Label.Text = s.XLabel
	p.Y.Label.Text = s.YLabel

	bars, err := plotter.NewBarChart(plotter.Values(s.Values), vg.Points(28))
	if err != nil {
		return nil, fmt.Errorf("building bar chart: %w", err)
	}
	bars.LineStyle.Width = 0
	bars.Color = parseColor(s.Color, plotutil.Color(0))

	p.Add(bars)
	p.NominalX(s.Labels...)

	// Template prefixes can be long; slant them so they stay legible.
	if len(s.Labels) > 4 {
		p.X.Tick.Label.Rotation = math.Pi / 3
		p.X.Tick.Label.XAlign = draw.XRight
		p.X.Tick.Label.YAlign = draw.YCenter
	}
	return p, nil
}

func piePlot(s PieSpec) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = s.Title
	p.HideAxes()
	p.Add(pieWedges{spec: s})
	return p, nil
}

func treemapPlot(s TreemapSpec) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = s.Title
	p.HideAxes()
	p.Add(treemapBoxes{spec: s})
	return p, nil
}

// pieWedges draws a doughnut chart onto the plot canvas.
type pieWedges struct {
	spec PieSpec
}

func (pw pieWedges) Plot(c draw.Canvas, plt *plot.Plot) {
	s := pw.spec

	total := 0.0
	for _, v := range s.Values {
		total += v
	}
	if total == 0 {
		return
	}

	center := vg.Point{
		X: (c.Min.X + c.Max.X) / 2,
		Y: (c.Min.Y + c.Max.Y) / 2,
	}
	radius := 0.38 * min(c.Max.X-c.Min.X, c.Max.Y-c.Min.Y)

	labelStyle := plt.Title.TextStyle
	labelStyle.Font.Size = vg.Points(10)
	labelStyle.YAlign = draw.YCenter

	// Wedges start at 12 o'clock and run clockwise.
	start := math.Pi / 2
	for i, v := range s.Values {
		sweep := -2 * math.Pi * v / total

		var path vg.Path
		path.Move(center)
		path.Arc(center, radius, start, sweep)
		path.Close()
		c.SetColor(plotutil.Color(i))
		c.Fill(path)

		mid := start + sweep/2
		at := vg.Point{
			X: center.X + 1.1*radius*vg.Length(math.Cos(mid)),
			Y: center.Y + 1.1*radius*vg.Length(math.Sin(mid)),
		}
		sty := labelStyle
		if math.Cos(mid) < 0 {
			sty.XAlign = draw.XRight
		} else {
			sty.XAlign = draw.XLeft
		}
		c.FillText(sty, at, fmt.Sprintf("%s: %.0f", s.Labels[i], v))

		start += sweep
	}

	// Punch the hole and annotate it.
	if s.Hole > 0 {
		hole := radius * vg.Length(s.Hole)
		var path vg.Path
		path.Move(vg.Point{X: center.X + hole, Y: center.Y})
		path.Arc(center, hole, 0, 2*math.Pi)
		path.Close()
		c.SetColor(color.White)
		c.Fill(path)

		if s.CenterText != "" {
			sty := plt.Title.TextStyle
			sty.Font.Size = vg.Points(14)
			sty.XAlign = draw.XCenter
			sty.YAlign = draw.YCenter
			c.FillText(sty, center, s.CenterText)
		}
	}
}

// treemapBoxes draws a two-level slice-and-dice treemap: branches split the
// width proportionally, leaves split each branch's height.
type treemapBoxes struct {
	spec TreemapSpec
}

func (tb treemapBoxes) Plot(c draw.Canvas, plt *plot.Plot) {
	s := tb.spec

	total := 0.0
	for _, b := range s.Branches {
		total += b.Value()
	}
	if total == 0 {
		return
	}

	pad := vg.Points(4)
	area := draw.Crop(c, pad, -pad, pad, -pad).Rectangle

	branchStyle := plt.Title.TextStyle
	branchStyle.Font.Size = vg.Points(12)
	branchStyle.Color = color.White
	branchStyle.XAlign = draw.XCenter
	branchStyle.YAlign = -1 // top-aligned

	leafStyle := plt.Title.TextStyle
	leafStyle.Font.Size = vg.Points(10)
	leafStyle.XAlign = draw.XCenter
	leafStyle.YAlign = draw.YCenter

	x := area.Min.X
	for i, b := range s.Branches {
		bv := b.Value()
		if bv == 0 {
			continue
		}
		w := (area.Max.X - area.Min.X) * vg.Length(bv/total)
		fill := parseColor(b.Color, plotutil.Color(i))

		y := area.Min.Y
		for _, l := range b.Leaves {
			h := (area.Max.Y - area.Min.Y) * vg.Length(l.Value/bv)
			rect := vg.Rectangle{
				Min: vg.Point{X: x, Y: y},
				Max: vg.Point{X: x + w, Y: y + h},
			}

			c.SetColor(fill)
			c.Fill(rectPath(rect))
			c.SetColor(color.White)
			c.SetLineWidth(vg.Points(1.5))
			c.Stroke(rectPath(rect))

			mid := vg.Point{X: (rect.Min.X + rect.Max.X) / 2, Y: (rect.Min.Y + rect.Max.Y) / 2}
			c.FillText(leafStyle, mid, fmt.Sprintf("%s: %.0f", l.Name, l.Value))
			y += h
		}

		at := vg.Point{X: x + w/2, Y: area.Max.Y - vg.Points(2)}
		c.FillText(branchStyle, at, b.Name)
		x += w
	}
}

func rectPath(r vg.Rectangle) vg.Path {
	var path vg.Path
	path.Move(r.Min)
	path.Line(vg.Point{X: r.Max.X, Y: r.Min.Y})
	path.Line(r.Max)
	path.Line(vg.Point{X: r.Min.X, Y: r.Max.Y})
	path.Close()
	return path
}

// parseColor decodes a #rrggbb hex color, falling back when absent or
// malformed.
func parseColor(hex string, fallback color.Color) color.Color {
	if len(hex) != 7 || hex[0] != '#' {
		return fallback
	}
	var r, g, b uint8
	if _, err := fmt.Sscanf(hex[1:], "%02x%02x%02x", &r, &g, &b); err != nil {
		return fallback
	}
	return color.RGBA{R: r, G: g, B: b, A: 255}
}
