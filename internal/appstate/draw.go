package appstate

import (
	"context"
	"image"
	"image/color"
	"image/draw"
	"log"
	"math"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"golang.org/x/exp/shiny/screen"

	"github.com/example/peakfinder/internal/figure"
	"github.com/example/peakfinder/internal/theme"
)

// statusHeight is the height in pixels of the status bar below the figure.
const statusHeight = 24

// frameDropThreshold specifies how many consecutive frames can be canceled
// before a draw is allowed to complete to keep the UI responsive.
const frameDropThreshold = 10

var statusFace font.Face

func init() {
	f, err := opentype.Parse(goregular.TTF)
	if err != nil {
		log.Fatalf("parse font: %v", err)
	}
	statusFace, err = opentype.NewFace(f, &opentype.FaceOptions{Size: 13, DPI: 72, Hinting: font.HintingFull})
	if err != nil {
		log.Fatalf("font face: %v", err)
	}
}

type paintState struct {
	width, height int
	gen           uint64
	fig           *figure.Figure
	theme         *theme.Theme
	selecting     bool
	selection     image.Rectangle
	mode          string
	status        string
}

// frameCache holds the last rendered figure. It is owned by the paint
// goroutine.
type frameCache struct {
	gen  uint64
	size image.Point
	img  *image.RGBA
}

// figureImage renders the figure unless the cached image is still current.
func (fc *frameCache) figureImage(st paintState) *image.RGBA {
	sz := figureSize(st.width, st.height)
	if fc.img != nil && fc.gen == st.gen && fc.size == sz {
		return fc.img
	}
	if sz.X <= 0 || sz.Y <= 0 {
		return nil
	}
	fc.img = st.fig.Render(sz.X, sz.Y)
	fc.gen = st.gen
	fc.size = sz
	return fc.img
}

// figureSize is the part of the window given to the figure.
func figureSize(winW, winH int) image.Point {
	return image.Pt(winW, winH-statusHeight)
}

func drawFrame(ctx context.Context, s screen.Screen, w screen.Window, fc *frameCache, st paintState) {
	b, err := s.NewBuffer(image.Point{st.width, st.height})
	if err != nil {
		log.Printf("new buffer: %v", err)
		return
	}
	defer b.Release()

	dst := b.RGBA()
	draw.Draw(dst, dst.Bounds(), &image.Uniform{st.theme.Background}, image.Point{}, draw.Src)
	if img := fc.figureImage(st); img != nil {
		xdraw.Copy(dst, image.Point{}, img, img.Bounds(), xdraw.Src, nil)
	}
	if ctx.Err() != nil {
		return
	}

	if st.selecting && !st.selection.Empty() {
		drawDashedRect(dst, st.selection, 4, 1, st.theme.Selection, st.theme.Background)
	}

	drawStatus(dst, st)
	if ctx.Err() != nil {
		return
	}

	w.Upload(image.Point{}, b, b.Bounds())
	w.Publish()
}

// drawStatus paints the status bar along the bottom edge of dst.
func drawStatus(dst *image.RGBA, st paintState) {
	r := image.Rect(0, st.height-statusHeight, st.width, st.height)
	draw.Draw(dst, r, &image.Uniform{st.theme.StatusBackground}, image.Point{}, draw.Src)
	drawLine(dst, r.Min.X, r.Min.Y, r.Max.X-1, r.Min.Y, st.theme.Foreground, 1)

	m := statusFace.Metrics()
	baseline := r.Min.Y + (statusHeight+m.Ascent.Ceil()-m.Descent.Ceil())/2
	d := &font.Drawer{Dst: dst, Src: image.NewUniform(st.theme.StatusText), Face: statusFace}
	d.Dot = fixed.P(r.Min.X+8, baseline)
	d.DrawString(statusText(st.mode, st.status))
}

func statusText(mode, status string) string {
	s := "mode: " + mode
	if status != "" {
		s += "   " + status
	}
	return s
}

func setThickPixel(img *image.RGBA, x, y, thick int, col color.Color) {
	r := thick / 2
	for dx := -r; dx <= r; dx++ {
		for dy := -r; dy <= r; dy++ {
			p := image.Pt(x+dx, y+dy)
			if p.In(img.Bounds()) {
				img.Set(p.X, p.Y, col)
			}
		}
	}
}

func drawLine(img *image.RGBA, x0, y0, x1, y1 int, col color.Color, thick int) {
	dx := math.Abs(float64(x1 - x0))
	dy := math.Abs(float64(y1 - y0))
	sx, sy := -1, -1
	if x0 < x1 {
		sx = 1
	}
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy
	for {
		setThickPixel(img, x0, y0, thick, col)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

// drawDashedLine draws an axis-aligned line alternating c1 and c2 every
// dash pixels.
func drawDashedLine(img *image.RGBA, x0, y0, x1, y1, dash, thickness int, c1, c2 color.Color) {
	horiz := y0 == y1
	length, step := x1-x0, 1
	if !horiz {
		length = y1 - y0
	}
	if length < 0 {
		length, step = -length, -1
	}
	if dash < 1 {
		dash = 1
	}
	for i := 0; i <= length; i++ {
		col := c1
		if (i/dash)%2 == 1 {
			col = c2
		}
		for t := 0; t < thickness; t++ {
			x, y := x0+step*i, y0+t
			if !horiz {
				x, y = x0+t, y0+step*i
			}
			if image.Pt(x, y).In(img.Bounds()) {
				img.Set(x, y, col)
			}
		}
	}
}

func drawDashedRect(img *image.RGBA, rect image.Rectangle, dash, thickness int, c1, c2 color.Color) {
	drawDashedLine(img, rect.Min.X, rect.Min.Y, rect.Max.X, rect.Min.Y, dash, thickness, c1, c2)
	drawDashedLine(img, rect.Max.X, rect.Min.Y, rect.Max.X, rect.Max.Y, dash, thickness, c1, c2)
	drawDashedLine(img, rect.Max.X, rect.Max.Y, rect.Min.X, rect.Max.Y, dash, thickness, c1, c2)
	drawDashedLine(img, rect.Min.X, rect.Max.Y, rect.Min.X, rect.Min.Y, dash, thickness, c1, c2)
}
