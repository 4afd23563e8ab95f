package theme

import (
	"image/color"

	"github.com/example/peakfinder/internal/figure"
)

// Theme defines the colors of the figure and the window chrome around it.
type Theme struct {
	Name string

	// Figure
	Background color.RGBA // Figure and axes background
	Foreground color.RGBA // Axis lines, ticks and labels
	Grid       color.RGBA // Zero alpha disables the grid

	// Data series, used in order for artists without a color
	Series1 color.RGBA
	Series2 color.RGBA
	Series3 color.RGBA
	Series4 color.RGBA
	Series5 color.RGBA
	Series6 color.RGBA

	// Result annotations
	Annotation color.RGBA
	Marker     color.RGBA

	// Window
	StatusBackground color.RGBA
	StatusText       color.RGBA
	Selection        color.RGBA // Region rubber band
}

// Default returns the hardcoded default light theme (fallback).
func Default() *Theme {
	return &Theme{
		Name:             "Default",
		Background:       color.RGBA{255, 255, 255, 255},
		Foreground:       color.RGBA{0, 0, 0, 255},
		Series1:          color.RGBA{0x1f, 0x77, 0xb4, 255},
		Series2:          color.RGBA{0xff, 0x7f, 0x0e, 255},
		Series3:          color.RGBA{0x2c, 0xa0, 0x2c, 255},
		Series4:          color.RGBA{0xd6, 0x27, 0x28, 255},
		Series5:          color.RGBA{0x94, 0x67, 0xbd, 255},
		Series6:          color.RGBA{0x8c, 0x56, 0x4b, 255},
		Annotation:       color.RGBA{0, 0, 0, 255},
		Marker:           color.RGBA{0xd6, 0x27, 0x28, 255},
		StatusBackground: color.RGBA{220, 220, 220, 255},
		StatusText:       color.RGBA{0, 0, 0, 255},
		Selection:        color.RGBA{0, 0, 0, 255},
	}
}

// FigureColors returns the colors used to draw plots.
func (t *Theme) FigureColors() figure.Colors {
	c := figure.Colors{
		Background: t.Background,
		Foreground: t.Foreground,
		Cycle: []color.Color{
			t.Series1, t.Series2, t.Series3,
			t.Series4, t.Series5, t.Series6,
		},
	}
	if t.Grid.A != 0 {
		c.Grid = t.Grid
	}
	return c
}
