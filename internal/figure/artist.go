package figure

import (
	"fmt"
	"image/color"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/example/peakfinder/internal/picker"
)

// Artist is a pickable element drawn on an Axes.
type Artist interface {
	plot.Plotter
	plot.DataRanger
	picker.Pickable
	fmt.Stringer

	// hit reports whether p lies on the artist. tr maps data to canvas
	// coordinates.
	hit(tr transform, p vg.Point, tol vg.Length) bool
	setColor(c color.Color)
}

type transform func(x, y float64) vg.Point

func toXYs(xs, ys []float64) (plotter.XYs, error) {
	if len(xs) != len(ys) {
		return nil, fmt.Errorf("%d x values and %d y values", len(xs), len(ys))
	}
	xys := make(plotter.XYs, len(xs))
	for i := range xs {
		xys[i] = plotter.XY{X: xs[i], Y: ys[i]}
	}
	return xys, nil
}

func fromXYer(xy plotter.XYer) (xs, ys []float64) {
	n := xy.Len()
	xs = make([]float64, n)
	ys = make([]float64, n)
	for i := 0; i < n; i++ {
		xs[i], ys[i] = xy.XY(i)
	}
	return xs, ys
}

// Line is a curve through its samples.
type Line struct {
	*plotter.Line
	Name string
}

// NewLine returns a Line through (xs[i], ys[i]).
func NewLine(name string, xs, ys []float64) (*Line, error) {
	xys, err := toXYs(xs, ys)
	if err != nil {
		return nil, fmt.Errorf("line %s: %w", name, err)
	}
	l, err := plotter.NewLine(xys)
	if err != nil {
		return nil, fmt.Errorf("line %s: %w", name, err)
	}
	l.LineStyle.Width = vg.Points(1.5)
	return &Line{Line: l, Name: name}, nil
}

// PickSource returns the samples of the line.
func (l *Line) PickSource() ([]float64, []float64, error) {
	if l.XYs == nil {
		return nil, nil, fmt.Errorf("line %s has no samples", l.Name)
	}
	xs, ys := fromXYer(l.XYs)
	return xs, ys, nil
}

func (l *Line) String() string { return "Line(" + l.Name + ")" }

func (l *Line) setColor(c color.Color) {
	if l.LineStyle.Color == nil || l.LineStyle.Color == color.Black {
		l.LineStyle.Color = c
	}
}

func (l *Line) hit(tr transform, p vg.Point, tol vg.Length) bool {
	n := l.XYs.Len()
	if n == 1 {
		return dist(tr(l.XYs.XY(0)), p) <= tol
	}
	for i := 1; i < n; i++ {
		if segmentDist(tr(l.XYs.XY(i-1)), tr(l.XYs.XY(i)), p) <= tol {
			return true
		}
	}
	return false
}

// Polygon is a closed shape.
type Polygon struct {
	*plotter.Polygon
	Name string
}

// NewPolygon returns a Polygon with the given vertices.
func NewPolygon(name string, xs, ys []float64) (*Polygon, error) {
	xys, err := toXYs(xs, ys)
	if err != nil {
		return nil, fmt.Errorf("polygon %s: %w", name, err)
	}
	p, err := plotter.NewPolygon(xys)
	if err != nil {
		return nil, fmt.Errorf("polygon %s: %w", name, err)
	}
	return &Polygon{Polygon: p, Name: name}, nil
}

// PickSource returns the vertices of the outer ring.
func (p *Polygon) PickSource() ([]float64, []float64, error) {
	if len(p.XYs) == 0 {
		return nil, nil, fmt.Errorf("polygon %s has no vertices", p.Name)
	}
	xs, ys := fromXYer(p.XYs[0])
	return xs, ys, nil
}

func (p *Polygon) String() string { return "Polygon(" + p.Name + ")" }

func (p *Polygon) setColor(c color.Color) {
	if p.Color == nil || p.Color == color.White {
		r, g, b, _ := c.RGBA()
		p.Color = color.NRGBA64{R: uint16(r), G: uint16(g), B: uint16(b), A: 0x8000}
		p.LineStyle.Color = c
	}
}

func (p *Polygon) hit(tr transform, pt vg.Point, tol vg.Length) bool {
	for _, ring := range p.XYs {
		pts := make([]vg.Point, len(ring))
		for i := range ring {
			pts[i] = tr(ring[i].X, ring[i].Y)
		}
		if insidePolygon(pts, pt) {
			return true
		}
		for i := range pts {
			if segmentDist(pts[i], pts[(i+1)%len(pts)], pt) <= tol {
				return true
			}
		}
	}
	return false
}

// Bar is a rectangle standing on y = 0 with its left edge at X.
type Bar struct {
	X       float64
	Width   float64
	Height  float64
	Color   color.Color
	Outline draw.LineStyle
	Name    string
}

// NewBars returns one Bar per (xs[i], heights[i]) pair.
func NewBars(name string, xs, heights []float64, width float64) ([]*Bar, error) {
	if len(xs) != len(heights) {
		return nil, fmt.Errorf("bars %s: %d x values and %d heights", name, len(xs), len(heights))
	}
	bars := make([]*Bar, len(xs))
	for i := range xs {
		bars[i] = &Bar{
			X:       xs[i],
			Width:   width,
			Height:  heights[i],
			Outline: plotter.DefaultLineStyle,
			Name:    fmt.Sprintf("%s[%d]", name, i),
		}
	}
	return bars, nil
}

// PickSource returns the single point (X, Height).
func (b *Bar) PickSource() ([]float64, []float64, error) {
	if math.IsNaN(b.X) || math.IsNaN(b.Height) {
		return nil, nil, fmt.Errorf("bar %s is not finite", b.Name)
	}
	return []float64{b.X}, []float64{b.Height}, nil
}

func (b *Bar) String() string { return "Bar(" + b.Name + ")" }

func (b *Bar) setColor(c color.Color) {
	if b.Color == nil {
		b.Color = c
	}
}

// DataRange implements plot.DataRanger.
func (b *Bar) DataRange() (xmin, xmax, ymin, ymax float64) {
	return b.X, b.X + b.Width, math.Min(0, b.Height), math.Max(0, b.Height)
}

// Plot implements plot.Plotter.
func (b *Bar) Plot(c draw.Canvas, plt *plot.Plot) {
	trX, trY := plt.Transforms(&c)
	x0, x1 := trX(b.X), trX(b.X+b.Width)
	y0, y1 := trY(0), trY(b.Height)
	pts := []vg.Point{{X: x0, Y: y0}, {X: x0, Y: y1}, {X: x1, Y: y1}, {X: x1, Y: y0}}
	if b.Color != nil {
		c.FillPolygon(b.Color, c.ClipPolygonXY(pts))
	}
	outline := append(pts, pts[0])
	c.StrokeLines(b.Outline, c.ClipLinesXY(outline)...)
}

func (b *Bar) hit(tr transform, p vg.Point, tol vg.Length) bool {
	a, z := tr(b.X, 0), tr(b.X+b.Width, b.Height)
	r := vg.Rectangle{
		Min: vg.Point{X: min(a.X, z.X) - tol, Y: min(a.Y, z.Y) - tol},
		Max: vg.Point{X: max(a.X, z.X) + tol, Y: max(a.Y, z.Y) + tol},
	}
	return p.X >= r.Min.X && p.X <= r.Max.X && p.Y >= r.Min.Y && p.Y <= r.Max.Y
}

func dist(a, b vg.Point) vg.Length {
	return vg.Length(math.Hypot(float64(a.X-b.X), float64(a.Y-b.Y)))
}

func segmentDist(a, b, p vg.Point) vg.Length {
	dx, dy := float64(b.X-a.X), float64(b.Y-a.Y)
	l2 := dx*dx + dy*dy
	if l2 == 0 {
		return dist(a, p)
	}
	t := (float64(p.X-a.X)*dx + float64(p.Y-a.Y)*dy) / l2
	t = math.Max(0, math.Min(1, t))
	q := vg.Point{X: a.X + vg.Length(t*dx), Y: a.Y + vg.Length(t*dy)}
	return dist(q, p)
}

func insidePolygon(pts []vg.Point, p vg.Point) bool {
	in := false
	for i, j := 0, len(pts)-1; i < len(pts); j, i = i, i+1 {
		a, b := pts[i], pts[j]
		if (a.Y > p.Y) != (b.Y > p.Y) &&
			p.X < (b.X-a.X)*(p.Y-a.Y)/(b.Y-a.Y)+a.X {
			in = !in
		}
	}
	return in
}
