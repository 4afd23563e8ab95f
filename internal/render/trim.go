package render

import (
	"image"
	"image/color"
	"image/draw"

	xdraw "golang.org/x/image/draw"
)

// Trim removes the margin of img whose pixels match the top left pixel and
// surrounds what is left with border pixels of bg. An image that is entirely
// margin is returned as a border sized square of bg.
func Trim(img image.Image, border int, bg color.Color) *image.RGBA {
	if border < 0 {
		border = 0
	}
	b := img.Bounds()
	content := image.Rectangle{}
	if !b.Empty() {
		ref := color.RGBAModel.Convert(img.At(b.Min.X, b.Min.Y))
		for y := b.Min.Y; y < b.Max.Y; y++ {
			for x := b.Min.X; x < b.Max.X; x++ {
				if color.RGBAModel.Convert(img.At(x, y)) == ref {
					continue
				}
				content = content.Union(image.Rect(x, y, x+1, y+1))
			}
		}
	}
	out := image.NewRGBA(image.Rect(0, 0, content.Dx()+2*border, content.Dy()+2*border))
	draw.Draw(out, out.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)
	if !content.Empty() {
		dst := image.Rect(border, border, border+content.Dx(), border+content.Dy())
		xdraw.Copy(out, dst.Min, img, content, xdraw.Src, nil)
	}
	return out
}
