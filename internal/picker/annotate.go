package picker

import (
	"fmt"
	"image/color"

	"github.com/example/peakfinder/internal/peaks"
)

// Align positions text relative to its anchor.
type Align int

const (
	AlignStart Align = iota
	AlignCenter
	AlignEnd
)

// LineStyle describes a reference line.
type LineStyle struct {
	Color  color.Color
	Width  float64
	Dashed bool
}

// MarkerStyle describes the point marker.
type MarkerStyle struct {
	Color  color.Color
	Radius float64
}

// TextStyle describes a coordinate label. Rotation is in degrees.
type TextStyle struct {
	Color      color.Color
	Background color.Color
	Size       float64
	Rotation   float64
	HAlign     Align
	VAlign     Align
}

// TextLoc places the x label either at a fixed axes fraction or inside the
// axes, halfway between the result and the top edge.
type TextLoc struct {
	Inside   bool
	Fraction float64
}

// String renders the location the way the configuration file spells it.
func (l TextLoc) String() string {
	if l.Inside {
		return "inside"
	}
	return fmt.Sprintf("%g", l.Fraction)
}

// Style selects which decorations accompany a result.
type Style struct {
	YLine bool
	XLine bool
	Point bool
	XText bool
	YText bool

	XTextFormat string
	YTextFormat string
	XTextLoc    TextLoc
	YTextLoc    float64

	Line   LineStyle
	Marker MarkerStyle
	XLabel TextStyle
	YLabel TextStyle
}

// DefaultStyle draws a vertical line with its x value above the axes.
func DefaultStyle() Style {
	return Style{
		XLine:       true,
		XText:       true,
		XTextFormat: "%.3f",
		YTextFormat: "%.3f",
		XTextLoc:    TextLoc{Fraction: 1.02},
		YTextLoc:    1.02,
		Line:        LineStyle{Color: color.Black, Width: 1},
		Marker:      MarkerStyle{Color: color.RGBA{R: 0xd6, G: 0x27, B: 0x28, A: 0xff}, Radius: 3},
		XLabel:      TextStyle{Color: color.Black, Size: 10, Rotation: 90, HAlign: AlignCenter, VAlign: AlignStart},
		YLabel:      TextStyle{Color: color.Black, Size: 10, HAlign: AlignStart, VAlign: AlignCenter},
	}
}

// Annotator draws and removes the decorations of results.
type Annotator struct {
	Style  Style
	canvas Canvas
}

// NewAnnotator returns an Annotator that redraws canvas after each change.
func NewAnnotator(canvas Canvas, s Style) *Annotator {
	return &Annotator{Style: s, canvas: canvas}
}

// Create draws the enabled decorations for (x, y) on ax and returns their
// handles in drawing order.
func (a *Annotator) Create(ax Axis, x, y float64) peaks.HandleGroup {
	s := a.Style
	var g peaks.HandleGroup
	add := func(h peaks.Handle) {
		if h != nil {
			g = append(g, h)
		}
	}
	if s.YLine {
		add(ax.HLine(y, s.Line))
	}
	if s.XLine {
		add(ax.VLine(x, s.Line))
	}
	if s.Point {
		add(ax.Marker(x, y, s.Marker))
	}
	if s.XText {
		at := TextAnchor{X: x, XCoords: CoordsData, Y: s.XTextLoc.Fraction, YCoords: CoordsAxes}
		ts := s.XLabel
		if s.XTextLoc.Inside {
			_, ay := ax.DataToAxes(x, y)
			at.Y = 0.5 * (ay + 1)
			ts.VAlign = AlignCenter
		}
		add(ax.Text(at, fmt.Sprintf(s.XTextFormat, x), ts))
	}
	if s.YText {
		at := TextAnchor{X: s.YTextLoc, XCoords: CoordsAxes, Y: y, YCoords: CoordsData}
		add(ax.Text(at, fmt.Sprintf(s.YTextFormat, y), s.YLabel))
	}
	a.redraw()
	return g
}

// Destroy removes every handle in g and redraws.
func (a *Annotator) Destroy(g peaks.HandleGroup) {
	for _, h := range g {
		h.Remove()
	}
	a.redraw()
}

func (a *Annotator) redraw() {
	if a.canvas != nil {
		a.canvas.Draw()
	}
}
