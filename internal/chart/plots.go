package chart

import (
	"fmt"
	"image/color"
	"math"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette/moreland"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"github.com/aadit1011/Insurance-Price-Prediction-Model/internal/analysis"
	"github.com/aadit1011/Insurance-Price-Prediction-Model/internal/dataset"
)

// kdePoints is the grid resolution of density curves.
const kdePoints = 200

type builder func(t *dataset.Table, title string) (*plot.Plot, error)

func columns(t *dataset.Table, names ...string) ([]*dataset.Column, error) {
	out := make([]*dataset.Column, len(names))
	for i, name := range names {
		c, err := t.Column(name)
		if err != nil {
			return nil, err
		}
		out[i] = c
	}
	return out, nil
}

func newPlot(title, x, y string) *plot.Plot {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = x
	p.Y.Label.Text = y
	return p
}

// scatter plots x against y with one colour per hue value and one glyph
// shape per style value.
func scatter(x, y, hue, style string) builder {
	return func(t *dataset.Table, title string) (*plot.Plot, error) {
		cols, err := columns(t, x, y, hue, style)
		if err != nil {
			return nil, err
		}
		xc, yc := cols[0], cols[1]
		hues := dataset.EncodeValues(cols[2])
		styles := dataset.EncodeValues(cols[3])

		groups := make([][]plotter.XYs, len(hues.Categories))
		for h := range groups {
			groups[h] = make([]plotter.XYs, len(styles.Categories))
		}
		for i := 0; i < t.Len(); i++ {
			h, s := hues.Codes[i], styles.Codes[i]
			if h < 0 || s < 0 || xc.IsNull(i) || yc.IsNull(i) {
				continue
			}
			groups[h][s] = append(groups[h][s], plotter.XY{X: xc.Float(i), Y: yc.Float(i)})
		}

		p := newPlot(title, x, y)
		p.Legend.Top = true
		for h, byStyle := range groups {
			for s, xys := range byStyle {
				if len(xys) == 0 {
					continue
				}
				sc, err := plotter.NewScatter(xys)
				if err != nil {
					return nil, err
				}
				sc.GlyphStyle.Color = plotutil.Color(h)
				sc.GlyphStyle.Shape = plotutil.Shape(s)
				sc.GlyphStyle.Radius = vg.Points(2.5)
				p.Add(sc)
				p.Legend.Add(fmt.Sprintf("%s=%s, %s=%s", hue, hues.Categories[h], style, styles.Categories[s]), sc)
			}
		}
		return p, nil
	}
}

// bars draws the mean of y for each x category, one bar per hue value.
func bars(x, y, hue string) builder {
	return func(t *dataset.Table, title string) (*plot.Plot, error) {
		cols, err := columns(t, x, y, hue)
		if err != nil {
			return nil, err
		}
		xs := dataset.EncodeValues(cols[0])
		yc := cols[1]
		hues := dataset.EncodeValues(cols[2])

		groups := make([][][]float64, len(hues.Categories))
		for h := range groups {
			groups[h] = make([][]float64, len(xs.Categories))
		}
		for i := 0; i < t.Len(); i++ {
			k, h := xs.Codes[i], hues.Codes[i]
			if k < 0 || h < 0 || yc.IsNull(i) {
				continue
			}
			groups[h][k] = append(groups[h][k], yc.Float(i))
		}

		p := newPlot(title, x, y)
		p.Legend.Top = true
		w := vg.Points(20)
		for h, byX := range groups {
			means := make(plotter.Values, len(byX))
			for k, vals := range byX {
				if len(vals) > 0 {
					means[k] = stat.Mean(vals, nil)
				}
			}
			bc, err := plotter.NewBarChart(means, w)
			if err != nil {
				return nil, err
			}
			bc.Color = plotutil.Color(h)
			bc.LineStyle.Width = vg.Length(0)
			bc.Offset = vg.Length(float64(h)-float64(len(groups)-1)/2) * w
			p.Add(bc)
			p.Legend.Add(fmt.Sprintf("%s=%s", hue, hues.Categories[h]), bc)
		}
		p.NominalX(xs.Categories...)
		return p, nil
	}
}

// density draws a filled Gaussian KDE of one column over a grid.
func density(col string) builder {
	return func(t *dataset.Table, title string) (*plot.Plot, error) {
		c, err := t.Column(col)
		if err != nil {
			return nil, err
		}
		p := newPlot(title, col, "Density")
		p.Add(plotter.NewGrid())
		vals := c.Values()
		xs, ys := analysis.KDE(vals, kdePoints)
		if xs == nil {
			// no spread to estimate from: draw empty axes around the data
			center := 0.0
			if len(vals) > 0 {
				center = vals[0]
			}
			p.X.Min, p.X.Max = center-1, center+1
			p.Y.Min, p.Y.Max = 0, 1
			return p, nil
		}
		xys := make(plotter.XYs, len(xs))
		for i := range xs {
			xys[i] = plotter.XY{X: xs[i], Y: ys[i]}
		}
		l, err := plotter.NewLine(xys)
		if err != nil {
			return nil, err
		}
		l.LineStyle.Color = plotutil.Color(0)
		l.LineStyle.Width = vg.Points(1.5)
		l.FillColor = color.RGBA{R: 56, G: 108, B: 176, A: 64}
		p.Add(l)
		return p, nil
	}
}

// heatmap draws the annotated correlation matrix of two columns.
func heatmap(a, b string) builder {
	return func(t *dataset.Table, title string) (*plot.Plot, error) {
		cols, err := columns(t, a, b)
		if err != nil {
			return nil, err
		}
		sub, err := dataset.New("", cols...)
		if err != nil {
			return nil, err
		}
		m := analysis.Correlate(sub)
		if len(m.Columns) != 2 {
			return nil, fmt.Errorf("heatmap needs numeric columns %q and %q", a, b)
		}

		pal := moreland.SmoothBlueRed()
		pal.SetMax(1)
		pal.SetMin(-1)
		g := corrGrid{m: m}
		hm := plotter.NewHeatMap(g, pal.Palette(255))
		hm.Min, hm.Max = -1, 1

		n := len(m.Columns)
		labels := plotter.XYLabels{XYs: make(plotter.XYs, 0, n*n), Labels: make([]string, 0, n*n)}
		for c := 0; c < n; c++ {
			for r := 0; r < n; r++ {
				labels.XYs = append(labels.XYs, plotter.XY{X: g.X(c), Y: g.Y(r)})
				labels.Labels = append(labels.Labels, fmt.Sprintf("%.2f", g.Z(c, r)))
			}
		}
		lb, err := plotter.NewLabels(labels)
		if err != nil {
			return nil, err
		}

		p := newPlot(title, "", "")
		p.Add(hm, lb)
		p.NominalX(m.Columns...)
		rev := make([]string, n)
		for i, name := range m.Columns {
			rev[n-1-i] = name
		}
		p.NominalY(rev...)
		return p, nil
	}
}

// corrGrid exposes a correlation matrix as a heat map grid with the first
// column at the top, as matrices are usually read.
type corrGrid struct {
	m *analysis.CorrMatrix
}

func (g corrGrid) Dims() (c, r int) {
	n := len(g.m.Columns)
	return n, n
}

func (g corrGrid) Z(c, r int) float64 {
	n := len(g.m.Columns)
	v := g.m.Values[n-1-r][c]
	if math.IsNaN(v) {
		return 0
	}
	return v
}

func (g corrGrid) X(c int) float64 { return float64(c) }
func (g corrGrid) Y(r int) float64 { return float64(r) }
