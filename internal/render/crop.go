// Package render post-processes saved figures: cropping white margins after
// save and converting between formats with external tools.
package render

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
)

// DefaultBorder is the margin in points (pdf) or pixels kept around the
// cropped figure.
const DefaultBorder = 10

// DefaultDensity is the resolution used when rasterising vector figures.
const DefaultDensity = 300

// Runner executes an external command.
type Runner func(ctx context.Context, name string, args ...string) error

// ExecRunner runs the command and includes its output in errors.
func ExecRunner(ctx context.Context, name string, args ...string) error {
	out, err := exec.CommandContext(ctx, name, args...).CombinedOutput()
	if err != nil {
		msg := strings.TrimSpace(string(out))
		if msg == "" {
			return fmt.Errorf("%s: %w", name, err)
		}
		return fmt.Errorf("%s: %w: %s", name, err, msg)
	}
	return nil
}

// CropCommand returns the command that trims name in place: pdfcrop for PDF
// files and ImageMagick for everything else.
func CropCommand(name string, border int) []string {
	b := strconv.Itoa(border)
	if strings.EqualFold(filepath.Ext(name), ".pdf") {
		return []string{"pdfcrop", "-margins", b, name, name}
	}
	return []string{"convert", "-trim", "-border", b, "-bordercolor", "white", name, name}
}

// ConvertCommand returns the ImageMagick command converting in to out.
func ConvertCommand(in, out string, density int) []string {
	return []string{"convert", "-density", strconv.Itoa(density), "-quality", "100%", in, out}
}

// Cropper trims figures after they are saved.
type Cropper struct {
	Border int
	Run    Runner
	// LookPath reports whether a tool is installed.
	LookPath func(string) (string, error)
}

// NewCropper returns a Cropper using the installed tools.
func NewCropper(border int) *Cropper {
	return &Cropper{Border: border, Run: ExecRunner, LookPath: exec.LookPath}
}

// Crop trims name in place. Missing files are skipped. When ImageMagick is
// not installed PNG and JPEG figures are trimmed in process instead.
func (c *Cropper) Crop(ctx context.Context, name string) error {
	if _, err := os.Stat(name); err != nil {
		return nil
	}
	cmd := CropCommand(name, c.Border)
	if c.LookPath != nil {
		if _, err := c.LookPath(cmd[0]); err != nil {
			if cmd[0] == "convert" {
				return TrimFile(name, c.Border)
			}
			log.Printf("crop %s: %s not installed", name, cmd[0])
			return nil
		}
	}
	return c.Run(ctx, cmd[0], cmd[1:]...)
}

// Convert converts in to out at the given density.
func Convert(ctx context.Context, run Runner, in, out string, density int) error {
	if _, err := os.Stat(in); err != nil {
		return err
	}
	cmd := ConvertCommand(in, out, density)
	return run(ctx, cmd[0], cmd[1:]...)
}

// TrimFile crops the uniform margin of a PNG or JPEG file in place and adds a
// white border.
func TrimFile(name string, border int) error {
	f, err := os.Open(name)
	if err != nil {
		return err
	}
	img, format, err := image.Decode(f)
	f.Close()
	if err != nil {
		return fmt.Errorf("trim %s: %w", name, err)
	}
	out := Trim(img, border, color.White)
	w, err := os.Create(name)
	if err != nil {
		return err
	}
	switch format {
	case "png":
		err = png.Encode(w, out)
	case "jpeg":
		err = jpeg.Encode(w, out, &jpeg.Options{Quality: 100})
	default:
		err = errors.New("unsupported format " + format)
	}
	if cerr := w.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return fmt.Errorf("trim %s: %w", name, err)
	}
	return nil
}
