package picker

import (
	"bytes"
	"errors"
	"fmt"
	"slices"

	"github.com/example/peakfinder/internal/extremum"
	"github.com/example/peakfinder/internal/peaks"
)

// OnPick makes artist the source of subsequent region selections. Artists
// that cannot supply samples leave the current selection untouched; a
// supported artist whose samples cannot be read clears it.
func (c *Controller) OnPick(artist any, axis Axis) {
	p, ok := artist.(Pickable)
	if !ok {
		c.logf("can not select %s", describe(artist))
		return
	}
	xs, ys, err := p.PickSource()
	switch {
	case err != nil:
	case axis == nil:
		err = errors.New("artist has no axes")
	case len(xs) == 0 || len(ys) == 0:
		err = errors.New("artist has no data")
	case len(xs) != len(ys):
		err = fmt.Errorf("artist has %d x values and %d y values", len(xs), len(ys))
	}
	if err != nil {
		c.source = nil
		c.axis = nil
		c.logf("can not select %s: %v", describe(artist), err)
		return
	}
	c.source = &Source{X: slices.Clone(xs), Y: slices.Clone(ys), Axis: axis}
	c.axis = axis
	c.logf("selected %s", describe(artist))
}

// OnRegionSelect finds the extremum of the picked data inside the rectangle
// spanned by a and b, annotates it and records it.
func (c *Controller) OnRegionSelect(a, b Point) {
	if c.axis == nil {
		c.logf("selector not in axis")
		return
	}
	if c.source == nil {
		c.logf("first click on an artist, then select data region")
		return
	}
	region := extremum.NewRegion(a, b)
	xs, ys := region.Filter(c.source.X, c.source.Y)
	if len(xs) == 0 {
		c.logf("no data in selection")
		return
	}
	var x, y float64
	switch c.mode {
	case peaks.ModeMax:
		x, y = extremum.FindMax(xs, ys)
	case peaks.ModeMin:
		x, y = extremum.FindMin(xs, ys)
	case peaks.ModeFit:
		var ok bool
		if x, y, ok = extremum.FindFit(xs, ys); !ok {
			c.logf("no extremum found in selection")
			return
		}
	default:
		c.logf("invalid mode %s", c.mode)
		return
	}
	r := peaks.Result{X: x, Y: y, Axis: c.axis.Index(), Mode: c.mode}
	if c.store.Contains(r) {
		return
	}
	handles := c.annotator.Create(c.axis, x, y)
	c.store.Append(r, handles)
	c.store.Sort()
	c.logf("(%g, %g)", x, y)
}

// AdvanceMode cycles min, max, fit and back to min.
func (c *Controller) AdvanceMode() {
	c.mode = c.mode.Next()
	c.logf("mode = %s", c.mode)
}

// Undo removes the last result in (axis, x) order together with its
// annotations. Results are kept sorted, so this is not necessarily the one
// added most recently.
func (c *Controller) Undo() {
	if _, ok := c.store.PopLast(c.annotator); !ok {
		c.logf("nothing to undo")
		return
	}
	c.logf("removed last result")
}

// InvokeCallback runs the installed callback. A failing first attempt is
// retried without the controller; a second failure is returned.
func (c *Controller) InvokeCallback() error {
	if c.callback == nil {
		c.logf("no callback function installed")
		return nil
	}
	c.logf("callback function called")
	if err := c.callSafely(c); err == nil {
		return nil
	}
	if err := c.callback(nil); err != nil {
		return fmt.Errorf("%w: %w", ErrCallback, err)
	}
	return nil
}

func (c *Controller) callSafely(arg *Controller) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("callback panic: %v", r)
		}
	}()
	return c.callback(arg)
}

// Print writes the result table to the console stream.
func (c *Controller) Print() {
	if c.store.Len() == 0 {
		c.logf("no peaks")
		return
	}
	c.logf("saving to <stdout>")
	if err := peaks.Print(&c.store, c.out); err != nil {
		c.logf("print: %v", err)
	}
}

// Save writes the result table to the handle file and the figure to the
// save name.
func (c *Controller) Save() {
	c.saveResults()
	c.saveFigureFile()
}

func (c *Controller) saveResults() {
	err := peaks.SaveFile(&c.store, c.handleFile)
	switch {
	case errors.Is(err, peaks.ErrNoPeaks):
		c.logf("no peaks")
	case err != nil:
		c.logf("save: %v", err)
	default:
		c.logf("saving to %s", c.handleFile)
		c.notifySave(c.handleFile)
	}
}

func (c *Controller) saveFigureFile() {
	if c.saveFigure == nil {
		return
	}
	c.logf("saving to %s", c.saveName)
	if err := c.saveFigure(c.saveName); err != nil {
		c.logf("save figure: %v", err)
		return
	}
	c.notifySave(c.saveName)
}

// CopyTable places the result table on the clipboard.
func (c *Controller) CopyTable() {
	if c.clipboard == nil {
		c.logf("clipboard not available")
		return
	}
	var buf bytes.Buffer
	if err := c.store.WriteTable(&buf); err != nil {
		c.logf("no peaks")
		return
	}
	if err := c.clipboard.CopyText(buf.String()); err != nil {
		c.logf("copy: %v", err)
		return
	}
	c.logf("copied %d results", c.store.Len())
	if c.notifier != nil {
		c.notifier.Copy(fmt.Sprintf("%d results", c.store.Len()))
	}
}

// CopyFigure places a rendering of the figure on the clipboard.
func (c *Controller) CopyFigure() {
	if c.clipboard == nil {
		c.logf("clipboard not available")
		return
	}
	if err := c.clipboard.CopyFigure(); err != nil {
		c.logf("copy: %v", err)
		return
	}
	c.logf("copied figure")
	if c.notifier != nil {
		c.notifier.Copy("figure")
	}
}

func (c *Controller) notifySave(path string) {
	if c.notifier != nil {
		c.notifier.Save(path)
	}
}

func describe(artist any) string {
	switch a := artist.(type) {
	case nil:
		return "<nil>"
	case fmt.Stringer:
		return a.String()
	default:
		return fmt.Sprintf("%T", artist)
	}
}
