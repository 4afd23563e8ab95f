// Package figure draws stacked plots with gonum/plot and maps between screen
// pixels and data coordinates so picks and region selections can be resolved.
package figure

import (
	"fmt"
	"image"
	"image/color"
	stddraw "image/draw"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

// DPI is the resolution used for screen renders.
const DPI = 96

// PickRadius is the distance in pixels within which a click hits an artist.
const PickRadius = 5

// Colors are the figure colors. Cycle is used for artists without a color.
type Colors struct {
	Background color.Color
	Foreground color.Color
	Grid       color.Color
	Cycle      []color.Color
}

// DefaultColors returns black on white with the classic ten color cycle.
func DefaultColors() Colors {
	return Colors{
		Background: color.White,
		Foreground: color.Black,
		Cycle: []color.Color{
			color.RGBA{0x1f, 0x77, 0xb4, 0xff},
			color.RGBA{0xff, 0x7f, 0x0e, 0xff},
			color.RGBA{0x2c, 0xa0, 0x2c, 0xff},
			color.RGBA{0xd6, 0x27, 0x28, 0xff},
			color.RGBA{0x94, 0x67, 0xbd, 0xff},
			color.RGBA{0x8c, 0x56, 0x4b, 0xff},
			color.RGBA{0xe3, 0x77, 0xc2, 0xff},
			color.RGBA{0x7f, 0x7f, 0x7f, 0xff},
			color.RGBA{0xbc, 0xbd, 0x22, 0xff},
			color.RGBA{0x17, 0xbe, 0xcf, 0xff},
		},
	}
}

func (c Colors) color(i int) color.Color {
	if len(c.Cycle) == 0 {
		return color.Black
	}
	return c.Cycle[i%len(c.Cycle)]
}

// Figure is a column of Axes.
type Figure struct {
	mu sync.Mutex

	// Width and Height are the size of saved figures.
	Width, Height vg.Length

	theme   Colors
	siTicks bool
	axes    []*Axes
	redraw  func()

	// pixel height of the last Render
	pxHeight int
}

// Option configures a Figure.
type Option func(*Figure)

// WithColors sets the figure colors.
func WithColors(c Colors) Option { return func(f *Figure) { f.theme = c } }

// WithSize sets the size of saved figures.
func WithSize(w, h vg.Length) Option {
	return func(f *Figure) { f.Width, f.Height = w, h }
}

// WithSITicks labels ticks with SI prefixes.
func WithSITicks(on bool) Option { return func(f *Figure) { f.siTicks = on } }

// New returns a Figure with n axes stacked top to bottom.
func New(n int, opts ...Option) *Figure {
	f := &Figure{
		Width:  8 * vg.Inch,
		Height: 6 * vg.Inch,
		theme:  DefaultColors(),
	}
	for _, o := range opts {
		o(f)
	}
	for i := 0; i < n; i++ {
		f.AddAxes()
	}
	return f
}

// AddAxes appends an empty Axes below the existing ones.
func (f *Figure) AddAxes() *Axes {
	f.mu.Lock()
	defer f.mu.Unlock()
	p := plot.New()
	if f.siTicks {
		p.X.Tick.Marker = SITicks{}
		p.Y.Tick.Marker = SITicks{}
	}
	if f.theme.Grid != nil {
		g := plotter.NewGrid()
		g.Vertical.Color = f.theme.Grid
		g.Horizontal.Color = f.theme.Grid
		p.Add(g)
	}
	a := &Axes{fig: f, index: len(f.axes), Plot: p}
	f.axes = append(f.axes, a)
	return a
}

// Axes returns the axes in index order.
func (f *Figure) Axes() []*Axes {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]*Axes(nil), f.axes...)
}

// OnRedraw sets the function called by Draw.
func (f *Figure) OnRedraw(fn func()) {
	f.mu.Lock()
	f.redraw = fn
	f.mu.Unlock()
}

// Draw requests a repaint. It implements picker.Canvas.
func (f *Figure) Draw() {
	f.mu.Lock()
	fn := f.redraw
	f.mu.Unlock()
	if fn != nil {
		fn()
	}
}

// Render draws the figure into a w×h image and remembers the layout for
// pixel conversions and hit tests.
func (f *Figure) Render(w, h int) *image.RGBA {
	f.mu.Lock()
	defer f.mu.Unlock()
	c := vgimg.NewWith(
		vgimg.UseWH(vg.Length(w)*vg.Inch/DPI, vg.Length(h)*vg.Inch/DPI),
		vgimg.UseDPI(DPI),
	)
	dcs := f.paint(draw.New(c))
	for i, a := range f.axes {
		a.dc = dcs[i]
		a.placed = true
	}
	f.pxHeight = h
	img := c.Image()
	if rgba, ok := img.(*image.RGBA); ok {
		return rgba
	}
	rgba := image.NewRGBA(img.Bounds())
	stddraw.Draw(rgba, rgba.Bounds(), img, img.Bounds().Min, stddraw.Src)
	return rgba
}

// Encode writes the figure to w in the named format (png, pdf, svg, eps,
// jpg or tiff).
func (f *Figure) Encode(w io.Writer, format string) error {
	c, err := draw.NewFormattedCanvas(f.Width, f.Height, format)
	if err != nil {
		return err
	}
	f.mu.Lock()
	f.paint(draw.New(c))
	f.mu.Unlock()
	_, err = c.WriteTo(w)
	return err
}

// Save writes the figure to name, choosing the format from its extension.
func (f *Figure) Save(name string) error {
	format := strings.ToLower(strings.TrimPrefix(filepath.Ext(name), "."))
	if format == "" {
		return fmt.Errorf("save %s: missing file extension", name)
	}
	w, err := os.Create(name)
	if err != nil {
		return fmt.Errorf("save %s: %w", name, err)
	}
	if err := f.Encode(w, format); err != nil {
		w.Close()
		os.Remove(name)
		return fmt.Errorf("save %s: %w", name, err)
	}
	return w.Close()
}

func (f *Figure) paint(c draw.Canvas) []draw.Canvas {
	c.SetColor(f.theme.Background)
	c.Fill(c.Rectangle.Path())
	if len(f.axes) == 0 {
		return nil
	}
	plots := make([][]*plot.Plot, len(f.axes))
	for i, a := range f.axes {
		f.style(a.Plot)
		plots[i] = []*plot.Plot{a.Plot}
	}
	tiles := draw.Tiles{
		Rows:      len(f.axes),
		Cols:      1,
		PadTop:    vg.Points(36),
		PadBottom: vg.Points(4),
		PadLeft:   vg.Points(4),
		PadRight:  vg.Points(40),
		PadY:      vg.Points(36),
	}
	cells := plot.Align(plots, tiles, c)
	dcs := make([]draw.Canvas, len(f.axes))
	for i, a := range f.axes {
		a.Plot.Draw(cells[i][0])
		dc := a.Plot.DataCanvas(cells[i][0])
		for _, an := range a.annotations {
			an.plot(dc, a.Plot)
		}
		dcs[i] = dc
	}
	return dcs
}

func (f *Figure) style(p *plot.Plot) {
	fg := f.theme.Foreground
	p.BackgroundColor = f.theme.Background
	for _, ax := range []*plot.Axis{&p.X, &p.Y} {
		ax.LineStyle.Color = fg
		ax.Tick.LineStyle.Color = fg
		ax.Tick.Label.Color = fg
		ax.Label.TextStyle.Color = fg
	}
	p.Title.TextStyle.Color = fg
}

// Hit returns the topmost artist under the pixel and its axes.
func (f *Figure) Hit(px, py float64) (*Axes, Artist, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p := f.toCanvas(px, py)
	tol := vg.Length(PickRadius) * vg.Inch / DPI
	for _, a := range f.axes {
		if !a.placed || !a.dc.Contains(p) {
			continue
		}
		tr := a.transform()
		for i := len(a.artists) - 1; i >= 0; i-- {
			if a.artists[i].hit(tr, p, tol) {
				return a, a.artists[i], true
			}
		}
		return a, nil, false
	}
	return nil, nil, false
}

// AxesAt returns the axes whose data area contains the pixel.
func (f *Figure) AxesAt(px, py float64) (*Axes, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p := f.toCanvas(px, py)
	for _, a := range f.axes {
		if a.placed && a.dc.Contains(p) {
			return a, true
		}
	}
	return nil, false
}

func (f *Figure) toCanvas(px, py float64) vg.Point {
	s := vg.Inch / DPI
	return vg.Point{X: vg.Length(px) * s, Y: vg.Length(float64(f.pxHeight)-py) * s}
}

func (f *Figure) toPixel(p vg.Point) (float64, float64) {
	s := float64(DPI / vg.Inch)
	return float64(p.X) * s, float64(f.pxHeight) - float64(p.Y)*s
}
