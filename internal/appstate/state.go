package appstate

import (
	"context"
	"image"
	"io"
	"log"
	"strings"
	"sync"
	"sync/atomic"

	"golang.org/x/exp/shiny/driver"
	"golang.org/x/exp/shiny/screen"
	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/lifecycle"
	"golang.org/x/mobile/event/mouse"
	"golang.org/x/mobile/event/paint"
	"golang.org/x/mobile/event/size"

	"github.com/example/peakfinder/internal/figure"
	"github.com/example/peakfinder/internal/picker"
	"github.com/example/peakfinder/internal/theme"
)

// AppState hosts a figure in a window and forwards mouse and keyboard
// input to an event handler.
type AppState struct {
	Figure  *figure.Figure
	Handler picker.EventHandler
	Theme   *theme.Theme
	Title   string
	Width   int
	Height  int

	modeLabel func() string
	updateCh  chan struct{}
	gen       atomic.Uint64
	status    Status

	onClose   func()
	closeOnce sync.Once
}

// Option modifies an AppState during creation.
type Option func(*AppState)

// WithFigure sets the figure shown in the window.
func WithFigure(f *figure.Figure) Option { return func(a *AppState) { a.Figure = f } }

// WithHandler sets the receiver of pick, region and key events.
func WithHandler(h picker.EventHandler) Option { return func(a *AppState) { a.Handler = h } }

// WithTheme sets the window colors.
func WithTheme(t *theme.Theme) Option { return func(a *AppState) { a.Theme = t } }

// WithTitle sets the window title.
func WithTitle(title string) Option { return func(a *AppState) { a.Title = title } }

// WithSize sets the initial size of the figure area in pixels.
func WithSize(w, h int) Option { return func(a *AppState) { a.Width, a.Height = w, h } }

// WithModeLabel sets the function reporting the current mode for the status bar.
func WithModeLabel(fn func() string) Option { return func(a *AppState) { a.modeLabel = fn } }

// WithOnClose registers a callback run once when the window closes.
func WithOnClose(fn func()) Option { return func(a *AppState) { a.onClose = fn } }

func New(opts ...Option) *AppState {
	a := &AppState{
		Theme:    theme.Default(),
		Title:    "PeakFinder",
		Width:    768,
		Height:   576,
		updateCh: make(chan struct{}, 1),
	}
	for _, o := range opts {
		o(a)
	}
	a.status.changed = a.requestPaint
	return a
}

// StatusWriter returns a writer whose last line is shown in the status bar.
// Pass it to the controller's logger to mirror diagnostics in the window.
func (a *AppState) StatusWriter() io.Writer { return &a.status }

// Invalidate marks the figure as changed and requests a repaint.
func (a *AppState) Invalidate() {
	a.gen.Add(1)
	a.requestPaint()
}

func (a *AppState) requestPaint() {
	if a.updateCh == nil {
		return
	}
	select {
	case a.updateCh <- struct{}{}:
	default:
	}
}

func (a *AppState) mode() string {
	if a.modeLabel == nil {
		return ""
	}
	return a.modeLabel()
}

func (a *AppState) notifyClose() {
	a.closeOnce.Do(func() {
		if a.onClose != nil {
			a.onClose()
		}
	})
}

// Run executes the UI loop using shiny's driver.
func (a *AppState) Run() { driver.Main(a.Main) }

func (a *AppState) Main(s screen.Screen) {
	width := a.Width
	height := a.Height + statusHeight
	w, err := s.NewWindow(&screen.NewWindowOptions{Width: width, Height: height, Title: a.Title})
	if err != nil {
		log.Fatalf("new window: %v", err)
	}
	defer w.Release()

	defer a.notifyClose()

	a.Figure.OnRedraw(a.Invalidate)
	defer a.Figure.OnRedraw(nil)

	done := make(chan struct{})
	go func() {
		for {
			select {
			case <-a.updateCh:
				w.Send(paint.Event{})
			case <-done:
				return
			}
		}
	}()
	defer close(done)

	var paintMu sync.Mutex
	var paintCancel context.CancelFunc
	var dropCount int
	paintCh := make(chan paintState, 1)
	go func() {
		var fc frameCache
		for st := range paintCh {
			ctx, cancel := context.WithCancel(context.Background())
			paintMu.Lock()
			paintCancel = cancel
			paintMu.Unlock()
			drawFrame(ctx, s, w, &fc, st)
			paintMu.Lock()
			paintCancel = nil
			if ctx.Err() == nil {
				dropCount = 0
			}
			paintMu.Unlock()
			cancel()
		}
	}()
	defer close(paintCh)

	var button mouse.Button
	var start, last image.Point

	for {
		e := w.NextEvent()
		switch e := e.(type) {
		case lifecycle.Event:
			if e.To == lifecycle.StageDead {
				paintMu.Lock()
				if paintCancel != nil {
					paintCancel()
				}
				paintMu.Unlock()
				return
			}
		case size.Event:
			width = e.WidthPx
			height = e.HeightPx
			w.Send(paint.Event{})
		case paint.Event:
			paintMu.Lock()
			if paintCancel != nil {
				if dropCount < frameDropThreshold {
					paintCancel()
					dropCount++
				}
			}
			paintMu.Unlock()
			st := paintState{
				width:     width,
				height:    height,
				gen:       a.gen.Load(),
				fig:       a.Figure,
				theme:     a.Theme,
				selecting: button == mouse.ButtonLeft && classify(button, start, last) == gestureSelect,
				selection: selectionRect(start, last),
				mode:      a.mode(),
				status:    a.status.Line(),
			}
			handOff(paintCh, st)
		case mouse.Event:
			p := image.Pt(int(e.X), int(e.Y))
			switch e.Direction {
			case mouse.DirPress:
				if button != mouse.ButtonNone {
					continue
				}
				button = e.Button
				start, last = p, p
			case mouse.DirNone:
				if button == mouse.ButtonLeft {
					last = p
					w.Send(paint.Event{})
				}
			case mouse.DirRelease:
				if e.Button != button {
					continue
				}
				a.release(button, start, p)
				button = mouse.ButtonNone
				w.Send(paint.Event{})
			}
		case key.Event:
			if e.Direction != key.DirPress {
				continue
			}
			name := keyName(e)
			switch name {
			case "":
				continue
			case "q", "escape":
				return
			}
			if err := a.Handler.OnKey(name); err != nil {
				log.Printf("%v", err)
				return
			}
			w.Send(paint.Event{})
		case error:
			log.Print(e)
		}
	}
}

// release turns a finished mouse gesture into a pick or a region selection.
// handOff replaces any frame still waiting in ch with st. The caller must be
// the only sender.
func handOff(ch chan paintState, st paintState) {
	select {
	case <-ch:
	default:
	}
	ch <- st
}

func (a *AppState) release(b mouse.Button, start, end image.Point) {
	switch classify(b, start, end) {
	case gesturePick:
		ax, artist, ok := a.Figure.Hit(float64(end.X), float64(end.Y))
		if !ok {
			return
		}
		a.Handler.OnPick(artist, ax)
	case gestureSelect:
		ax, ok := a.Figure.AxesAt(float64(start.X), float64(start.Y))
		if !ok {
			return
		}
		x0, y0, _ := ax.PixelToData(float64(start.X), float64(start.Y))
		x1, y1, _ := ax.PixelToData(float64(end.X), float64(end.Y))
		a.Handler.OnRegionSelect(picker.Point{X: x0, Y: y0}, picker.Point{X: x1, Y: y1})
	}
}

// Status keeps the last non-empty line written to it.
type Status struct {
	mu      sync.Mutex
	line    string
	changed func()
}

func (s *Status) Write(p []byte) (int, error) {
	var last string
	for _, l := range strings.Split(string(p), "\n") {
		if l = strings.TrimSpace(l); l != "" {
			last = l
		}
	}
	if last == "" {
		return len(p), nil
	}
	s.mu.Lock()
	s.line = last
	fn := s.changed
	s.mu.Unlock()
	if fn != nil {
		fn()
	}
	return len(p), nil
}

// Line returns the most recent line.
func (s *Status) Line() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.line
}
