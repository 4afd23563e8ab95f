// Package picker implements the interactive peak picking state machine. A
// host feeds it pick, region and key events; it filters the picked data,
// computes an extremum, annotates it and records it in a peaks.Store.
package picker

import (
	"errors"
	"io"
	"log"
	"os"

	"github.com/example/peakfinder/internal/extremum"
	"github.com/example/peakfinder/internal/peaks"
)

// DefaultSaveName is the figure written by the save command.
const DefaultSaveName = "plot.pdf"

var (
	// ErrCallback wraps the error of a callback that failed twice.
	ErrCallback = errors.New("callback failed")
	// ErrNoSource is returned by Selection when nothing has been picked.
	ErrNoSource = errors.New("no artist selected")
)

// Point is a location in axis data coordinates.
type Point = extremum.Point

// EventHandler is the surface a host event loop drives.
type EventHandler interface {
	OnPick(artist any, axis Axis)
	OnRegionSelect(a, b Point)
	OnKey(key string) error
}

// Pickable is implemented by every artist kind that can supply sample
// coordinates: a line yields its samples, a polygon its vertices and a bar a
// single (x, height) point.
type Pickable interface {
	PickSource() (xs, ys []float64, err error)
}

// Coords names the coordinate system of one text anchor component.
type Coords int

const (
	// CoordsData positions in data units.
	CoordsData Coords = iota
	// CoordsAxes positions as a fraction of the axes, 0 at the bottom/left
	// edge and 1 at the top/right edge.
	CoordsAxes
)

// TextAnchor locates a text label; x and y may use different systems.
type TextAnchor struct {
	X       float64
	XCoords Coords
	Y       float64
	YCoords Coords
}

// Axis is one set of axes on the canvas that annotations are drawn on.
type Axis interface {
	// Index is the position of the axes within its figure.
	Index() int
	HLine(y float64, s LineStyle) peaks.Handle
	VLine(x float64, s LineStyle) peaks.Handle
	Marker(x, y float64, s MarkerStyle) peaks.Handle
	Text(at TextAnchor, text string, s TextStyle) peaks.Handle
	// DataToAxes converts a data position into axes fractions.
	DataToAxes(x, y float64) (ax, ay float64)
}

// Canvas redraws the figure after annotations change.
type Canvas interface {
	Draw()
}

// Clipboard publishes results outside the application.
type Clipboard interface {
	CopyText(text string) error
	CopyFigure() error
}

// Notifier reports completed saves and copies to the desktop.
type Notifier interface {
	Save(path string)
	Copy(detail string)
}

// Callback is a user hook run by the callback command. It is first called
// with the controller; if that fails it is retried with nil.
type Callback func(c *Controller) error

// FigureSaver writes the current figure to the named file.
type FigureSaver func(name string) error

// Source is the data of the currently picked artist.
type Source struct {
	X, Y []float64
	Axis Axis
}

// Controller tracks the picked artist, the active axes and the current mode.
// It must only be used from the goroutine that dispatches canvas events.
type Controller struct {
	canvas    Canvas
	annotator *Annotator
	store     peaks.Store

	source *Source
	axis   Axis
	mode   peaks.Mode

	handleFile string
	saveName   string
	callback   Callback
	saveFigure FigureSaver
	clipboard  Clipboard
	notifier   Notifier
	out        io.Writer
	logger     *log.Logger

	keys map[string]string
}

// Option modifies a Controller during creation.
type Option func(*Controller)

// WithMode sets the initial mode.
func WithMode(m peaks.Mode) Option { return func(c *Controller) { c.mode = m } }

// WithHandleFile sets the file the save command writes results to.
func WithHandleFile(name string) Option { return func(c *Controller) { c.handleFile = name } }

// WithSaveName sets the figure file the save command writes.
func WithSaveName(name string) Option { return func(c *Controller) { c.saveName = name } }

// WithCallback installs the hook run by the callback command.
func WithCallback(cb Callback) Option { return func(c *Controller) { c.callback = cb } }

// WithFigureSaver sets how the figure is written by the save command.
func WithFigureSaver(fn FigureSaver) Option { return func(c *Controller) { c.saveFigure = fn } }

// WithClipboard enables the copy commands.
func WithClipboard(cb Clipboard) Option { return func(c *Controller) { c.clipboard = cb } }

// WithNotifier sends desktop notifications after saves and copies.
func WithNotifier(n Notifier) Option { return func(c *Controller) { c.notifier = n } }

// WithOutput sets the console stream used by the print command.
func WithOutput(w io.Writer) Option { return func(c *Controller) { c.out = w } }

// WithLogger sets the destination of diagnostics.
func WithLogger(l *log.Logger) Option { return func(c *Controller) { c.logger = l } }

// WithStyle configures how results are annotated.
func WithStyle(s Style) Option { return func(c *Controller) { c.annotator.Style = s } }

// New creates a Controller drawing on canvas.
func New(canvas Canvas, opts ...Option) *Controller {
	c := &Controller{
		canvas:     canvas,
		annotator:  NewAnnotator(canvas, DefaultStyle()),
		mode:       peaks.ModeFit,
		handleFile: peaks.DefaultHandleFile,
		saveName:   DefaultSaveName,
		out:        os.Stdout,
		logger:     log.New(os.Stdout, "PeakFinder : ", 0),
	}
	for _, o := range opts {
		o(c)
	}
	c.keys = defaultKeys()
	c.logf("init = ok")
	return c
}

// Mode returns the current mode.
func (c *Controller) Mode() peaks.Mode { return c.mode }

// Results returns the recorded results in sorted order.
func (c *Controller) Results() []peaks.Result { return c.store.Results() }

// Store exposes the result store for read access.
func (c *Controller) Store() *peaks.Store { return &c.store }

// Annotator returns the renderer used for new results.
func (c *Controller) Annotator() *Annotator { return c.annotator }

// Selection returns the currently picked source.
func (c *Controller) Selection() (Source, error) {
	if c.source == nil {
		return Source{}, ErrNoSource
	}
	return *c.source, nil
}

func (c *Controller) logf(format string, args ...any) {
	if c.logger == nil {
		return
	}
	c.logger.Printf(format, args...)
}
