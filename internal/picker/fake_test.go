package picker

import (
	"bytes"
	"errors"
	"log"

	"github.com/example/peakfinder/internal/peaks"
)

type fakeCanvas struct{ draws int }

func (c *fakeCanvas) Draw() { c.draws++ }

type fakeHandle struct {
	kind    string
	text    string
	anchor  TextAnchor
	removed int
}

func (h *fakeHandle) Remove() { h.removed++ }

type fakeAxis struct {
	index   int
	handles []*fakeHandle
}

func (a *fakeAxis) Index() int { return a.index }

func (a *fakeAxis) add(h *fakeHandle) peaks.Handle {
	a.handles = append(a.handles, h)
	return h
}

func (a *fakeAxis) HLine(y float64, s LineStyle) peaks.Handle {
	return a.add(&fakeHandle{kind: "hline"})
}

func (a *fakeAxis) VLine(x float64, s LineStyle) peaks.Handle {
	return a.add(&fakeHandle{kind: "vline"})
}

func (a *fakeAxis) Marker(x, y float64, s MarkerStyle) peaks.Handle {
	return a.add(&fakeHandle{kind: "marker"})
}

func (a *fakeAxis) Text(at TextAnchor, text string, s TextStyle) peaks.Handle {
	return a.add(&fakeHandle{kind: "text", text: text, anchor: at})
}

// DataToAxes maps data y in [0, 10] onto the axes.
func (a *fakeAxis) DataToAxes(x, y float64) (float64, float64) { return x / 10, y / 10 }

func (a *fakeAxis) live() int {
	n := 0
	for _, h := range a.handles {
		if h.removed == 0 {
			n++
		}
	}
	return n
}

type fakeLine struct{ xs, ys []float64 }

func (l fakeLine) PickSource() ([]float64, []float64, error) {
	return l.xs, l.ys, nil
}

func (l fakeLine) String() string {
	return "line"
}

type brokenArtist struct{}

func (brokenArtist) PickSource() ([]float64, []float64, error) {
	return nil, nil, errors.New("detached")
}

type fakeClipboard struct {
	text    string
	figures int
	err     error
}

func (c *fakeClipboard) CopyText(s string) error {
	if c.err != nil {
		return c.err
	}
	c.text = s
	return nil
}

func (c *fakeClipboard) CopyFigure() error {
	if c.err != nil {
		return c.err
	}
	c.figures++
	return nil
}

type fakeNotifier struct{ saved, copied []string }

func (n *fakeNotifier) Save(p string) { n.saved = append(n.saved, p) }
func (n *fakeNotifier) Copy(d string) { n.copied = append(n.copied, d) }

// newTestController returns a controller logging to the returned buffer.
func newTestController(opts ...Option) (*Controller, *fakeCanvas, *bytes.Buffer) {
	var logs bytes.Buffer
	canvas := &fakeCanvas{}
	opts = append([]Option{WithLogger(log.New(&logs, "PeakFinder : ", 0))}, opts...)
	c := New(canvas, opts...)
	logs.Reset()
	return c, canvas, &logs
}

// parabola samples y = 9 - (x-3)^2 at x = 0..6.
func parabola() fakeLine {
	xs := []float64{0, 1, 2, 3, 4, 5, 6}
	ys := make([]float64, len(xs))
	for i, x := range xs {
		ys[i] = 9 - (x-3)*(x-3)
	}
	return fakeLine{xs: xs, ys: ys}
}
