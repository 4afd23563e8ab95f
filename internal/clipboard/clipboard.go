// Package clipboard publishes the result table and rendered figures to the
// system clipboard.
package clipboard

import (
	"bytes"
	"fmt"
	"io"
)

// Encoder renders a figure in the named format.
type Encoder interface {
	Encode(w io.Writer, format string) error
}

// Clipboard copies text and figures. It implements picker.Clipboard.
type Clipboard struct {
	figure Encoder
}

// New returns a Clipboard that copies fig as a PNG.
func New(fig Encoder) *Clipboard {
	return &Clipboard{figure: fig}
}

// CopyText places text on the clipboard.
func (c *Clipboard) CopyText(text string) error {
	return WriteText(text)
}

// CopyFigure renders the figure as PNG and places it on the clipboard.
func (c *Clipboard) CopyFigure() error {
	if c.figure == nil {
		return fmt.Errorf("no figure to copy")
	}
	if err := ensureInit(); err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := c.figure.Encode(&buf, "png"); err != nil {
		return fmt.Errorf("render figure: %w", err)
	}
	return WritePNG(buf.Bytes())
}
