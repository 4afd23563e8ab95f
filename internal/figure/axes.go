package figure

import (
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/example/peakfinder/internal/peaks"
	"github.com/example/peakfinder/internal/picker"
)

// Axes is one plot of a Figure. It implements picker.Axis.
type Axes struct {
	fig   *Figure
	index int

	// Plot holds the axis ranges, labels and artists.
	Plot *plot.Plot

	artists     []Artist
	annotations []*annotation

	// data area of the last screen render
	dc     draw.Canvas
	placed bool
}

var _ picker.Axis = (*Axes)(nil)

// Index is the position of the axes within its figure.
func (a *Axes) Index() int { return a.index }

// Add draws the artists on the axes and extends the axis ranges to fit.
func (a *Axes) Add(artists ...Artist) {
	a.fig.mu.Lock()
	defer a.fig.mu.Unlock()
	for _, ar := range artists {
		ar.setColor(a.fig.theme.color(len(a.artists)))
		a.artists = append(a.artists, ar)
		a.Plot.Add(ar)
	}
}

// Artists returns the artists in drawing order.
func (a *Axes) Artists() []Artist {
	a.fig.mu.Lock()
	defer a.fig.mu.Unlock()
	return append([]Artist(nil), a.artists...)
}

// DataToAxes maps a data position to fractions of the data area.
func (a *Axes) DataToAxes(x, y float64) (float64, float64) {
	a.fig.mu.Lock()
	defer a.fig.mu.Unlock()
	return norm(a.Plot.X, x), norm(a.Plot.Y, y)
}

func norm(ax plot.Axis, v float64) float64 {
	if ax.Min == ax.Max || math.IsInf(ax.Min, 0) || math.IsInf(ax.Max, 0) {
		return 0.5
	}
	return ax.Norm(v)
}

// HLine draws a horizontal line across the axes at y.
func (a *Axes) HLine(y float64, s picker.LineStyle) peaks.Handle {
	ls := lineStyle(s)
	return a.annotate(func(c draw.Canvas, p *plot.Plot) {
		f := norm(p.Y, y)
		if f < 0 || f > 1 {
			return
		}
		yy := c.Y(f)
		c.StrokeLine2(ls, c.Min.X, yy, c.Max.X, yy)
	})
}

// VLine draws a vertical line across the axes at x.
func (a *Axes) VLine(x float64, s picker.LineStyle) peaks.Handle {
	ls := lineStyle(s)
	return a.annotate(func(c draw.Canvas, p *plot.Plot) {
		f := norm(p.X, x)
		if f < 0 || f > 1 {
			return
		}
		xx := c.X(f)
		c.StrokeLine2(ls, xx, c.Min.Y, xx, c.Max.Y)
	})
}

// Marker draws a circle at (x, y).
func (a *Axes) Marker(x, y float64, s picker.MarkerStyle) peaks.Handle {
	gs := draw.GlyphStyle{Color: s.Color, Radius: vg.Points(s.Radius), Shape: draw.CircleGlyph{}}
	return a.annotate(func(c draw.Canvas, p *plot.Plot) {
		c.DrawGlyph(gs, vg.Point{X: c.X(norm(p.X, x)), Y: c.Y(norm(p.Y, y))})
	})
}

// Text draws a label. Components in axes coordinates may lie outside the
// data area, for example above its top edge.
func (a *Axes) Text(at picker.TextAnchor, text string, s picker.TextStyle) peaks.Handle {
	return a.annotate(func(c draw.Canvas, p *plot.Plot) {
		ts := p.X.Tick.Label
		if s.Color != nil {
			ts.Color = s.Color
		}
		if s.Size > 0 {
			ts.Font.Size = vg.Points(s.Size)
		}
		ts.Rotation = s.Rotation * math.Pi / 180
		ts.XAlign = xAlign(s.HAlign)
		ts.YAlign = yAlign(s.VAlign)
		fx, fy := at.X, at.Y
		if at.XCoords == picker.CoordsData {
			fx = norm(p.X, at.X)
		}
		if at.YCoords == picker.CoordsData {
			fy = norm(p.Y, at.Y)
		}
		pt := vg.Point{X: c.X(fx), Y: c.Y(fy)}
		if s.Background != nil {
			c.SetColor(s.Background)
			c.Fill(ts.Rectangle(text).Add(pt).Path())
		}
		c.FillText(ts, pt, text)
	})
}

func (a *Axes) annotate(fn func(draw.Canvas, *plot.Plot)) peaks.Handle {
	a.fig.mu.Lock()
	defer a.fig.mu.Unlock()
	an := &annotation{axes: a, plot: fn}
	a.annotations = append(a.annotations, an)
	return an
}

// Annotations reports how many annotations are drawn on the axes.
func (a *Axes) Annotations() int {
	a.fig.mu.Lock()
	defer a.fig.mu.Unlock()
	return len(a.annotations)
}

// PixelToData converts a pixel of the last Render into data coordinates.
// ok is false when the pixel lies outside the data area.
func (a *Axes) PixelToData(px, py float64) (x, y float64, ok bool) {
	a.fig.mu.Lock()
	defer a.fig.mu.Unlock()
	if !a.placed {
		return 0, 0, false
	}
	p := a.fig.toCanvas(px, py)
	r := a.dc.Rectangle
	fx := float64((p.X - r.Min.X) / (r.Max.X - r.Min.X))
	fy := float64((p.Y - r.Min.Y) / (r.Max.Y - r.Min.Y))
	x = a.Plot.X.Min + fx*(a.Plot.X.Max-a.Plot.X.Min)
	y = a.Plot.Y.Min + fy*(a.Plot.Y.Max-a.Plot.Y.Min)
	return x, y, fx >= 0 && fx <= 1 && fy >= 0 && fy <= 1
}

// DataToPixel converts data coordinates into a pixel of the last Render.
func (a *Axes) DataToPixel(x, y float64) (px, py float64, ok bool) {
	a.fig.mu.Lock()
	defer a.fig.mu.Unlock()
	if !a.placed {
		return 0, 0, false
	}
	px, py = a.fig.toPixel(a.transform()(x, y))
	return px, py, true
}

func (a *Axes) transform() transform {
	c := a.dc
	p := a.Plot
	return func(x, y float64) vg.Point {
		return vg.Point{X: c.X(norm(p.X, x)), Y: c.Y(norm(p.Y, y))}
	}
}

type annotation struct {
	axes *Axes
	plot func(draw.Canvas, *plot.Plot)
}

// Remove deletes the annotation from its axes. Removing twice is a no-op.
func (an *annotation) Remove() {
	a := an.axes
	a.fig.mu.Lock()
	defer a.fig.mu.Unlock()
	for i, x := range a.annotations {
		if x == an {
			a.annotations = append(a.annotations[:i], a.annotations[i+1:]...)
			return
		}
	}
}

func lineStyle(s picker.LineStyle) draw.LineStyle {
	ls := draw.LineStyle{Color: s.Color, Width: vg.Points(s.Width)}
	if s.Dashed {
		ls.Dashes = []vg.Length{vg.Points(4), vg.Points(2)}
	}
	return ls
}

func xAlign(a picker.Align) draw.XAlignment {
	switch a {
	case picker.AlignCenter:
		return draw.XCenter
	case picker.AlignEnd:
		return draw.XRight
	}
	return draw.XLeft
}

func yAlign(a picker.Align) draw.YAlignment {
	switch a {
	case picker.AlignCenter:
		return draw.YCenter
	case picker.AlignEnd:
		return draw.YTop
	}
	return draw.YBottom
}
