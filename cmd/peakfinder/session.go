package main

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/example/peakfinder/internal/clipboard"
	"github.com/example/peakfinder/internal/dataset"
	"github.com/example/peakfinder/internal/figure"
	"github.com/example/peakfinder/internal/peaks"
	"github.com/example/peakfinder/internal/picker"
	"github.com/example/peakfinder/internal/render"
)

// plotOptions are the flags shared by commands that open data files.
type plotOptions struct {
	kind     string
	mode     string
	handle   string
	saveName string
	border   int
	barWidth float64
	stack    bool
	si       bool
	callback string
}

func (r *root) plotFlags(fs *flag.FlagSet) *plotOptions {
	o := &plotOptions{}
	cfg := r.config
	fs.StringVar(&o.kind, "kind", "line", "how to plot each column: line, bar or polygon")
	fs.StringVar(&o.mode, "mode", cfg.Mode, "initial extremum mode: min, max or fit")
	fs.StringVar(&o.handle, "handle", cfg.Handle, "file the result table is written to")
	fs.StringVar(&o.saveName, "save", cfg.SaveName, "file the figure is written to; the extension selects the format")
	fs.IntVar(&o.border, "border", cfg.Border, "margin kept when cropping a saved figure")
	fs.Float64Var(&o.barWidth, "bar-width", 0.8, "bar width in data units")
	fs.BoolVar(&o.stack, "stack", false, "plot each file on its own axes")
	fs.BoolVar(&o.si, "si", false, "label ticks with SI prefixes")
	fs.StringVar(&o.callback, "callback", "", "command run on the callback key; the result table is passed on stdin")
	return o
}

// session is a figure loaded from data files and the controller picking on it.
type session struct {
	fig     *figure.Figure
	ctrl    *picker.Controller
	artists []figure.Artist
	axesOf  map[figure.Artist]*figure.Axes
}

func (r *root) newSession(files []string, o *plotOptions, logger *log.Logger) (*session, error) {
	if len(files) == 0 {
		return nil, errors.New("no data files given")
	}
	mode, err := peaks.ParseMode(o.mode)
	if err != nil {
		return nil, err
	}
	tables := make([]*dataset.Table, 0, len(files))
	for _, f := range files {
		t, err := dataset.Load(f)
		if err != nil {
			return nil, err
		}
		tables = append(tables, t)
	}

	n := 1
	if o.stack {
		n = len(tables)
	}
	fig := figure.New(n, figure.WithColors(r.activeTheme.FigureColors()), figure.WithSITicks(o.si))
	s := &session{fig: fig, axesOf: make(map[figure.Artist]*figure.Axes)}
	axes := fig.Axes()
	for i, t := range tables {
		ax := axes[0]
		if o.stack {
			ax = axes[i]
		}
		if ax.Plot.X.Label.Text == "" && len(t.Columns) > 1 {
			ax.Plot.X.Label.Text = t.ColumnName(0)
		}
		for _, col := range t.YColumns() {
			name := t.Name
			if len(t.YColumns()) > 1 {
				name = t.Name + ":" + t.ColumnName(col)
			}
			arts, err := buildArtists(t, col, name, o)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", t.Name, err)
			}
			ax.Add(arts...)
			for _, a := range arts {
				s.artists = append(s.artists, a)
				s.axesOf[a] = ax
			}
		}
	}

	style, err := r.config.PickerStyle(r.activeTheme)
	if err != nil {
		return nil, err
	}
	cropper := render.NewCropper(o.border)
	opts := []picker.Option{
		picker.WithMode(mode),
		picker.WithHandleFile(o.handle),
		picker.WithSaveName(o.saveName),
		picker.WithStyle(style),
		picker.WithFigureSaver(func(name string) error {
			if err := fig.Save(name); err != nil {
				return err
			}
			return cropper.Crop(context.Background(), name)
		}),
		picker.WithClipboard(clipboard.New(fig)),
		picker.WithOutput(r.stdout),
		picker.WithLogger(logger),
	}
	if r.notifier != nil {
		opts = append(opts, picker.WithNotifier(r.notifier))
	}
	if o.callback != "" {
		opts = append(opts, picker.WithCallback(commandCallback(o.callback, r.stdout, r.stderr)))
	}
	s.ctrl = picker.New(fig, opts...)
	return s, nil
}

func buildArtists(t *dataset.Table, col int, name string, o *plotOptions) ([]figure.Artist, error) {
	xs, ys, err := t.Series(col)
	if err != nil {
		return nil, err
	}
	switch o.kind {
	case "line":
		l, err := figure.NewLine(name, xs, ys)
		if err != nil {
			return nil, err
		}
		return []figure.Artist{l}, nil
	case "polygon":
		p, err := figure.NewPolygon(name, xs, ys)
		if err != nil {
			return nil, err
		}
		return []figure.Artist{p}, nil
	case "bar":
		bars, err := figure.NewBars(name, xs, ys, o.barWidth)
		if err != nil {
			return nil, err
		}
		out := make([]figure.Artist, len(bars))
		for i, b := range bars {
			out[i] = b
		}
		return out, nil
	}
	return nil, fmt.Errorf("unknown plot kind %q (want line, bar or polygon)", o.kind)
}

// title names the window after the data files.
func title(files []string) string {
	names := make([]string, len(files))
	for i, f := range files {
		names[i] = filepath.Base(f)
	}
	return "PeakFinder - " + strings.Join(names, ", ")
}

// commandCallback runs command through the shell. The first attempt gets the
// result table on stdin; the retry without a controller gets nothing.
func commandCallback(command string, stdout, stderr io.Writer) picker.Callback {
	return func(c *picker.Controller) error {
		cmd := exec.Command(shell(), "-c", command)
		cmd.Stdout = stdout
		cmd.Stderr = stderr
		if c != nil {
			var buf bytes.Buffer
			if err := c.Store().WriteTable(&buf); err != nil && !errors.Is(err, peaks.ErrNoPeaks) {
				return err
			}
			cmd.Stdin = &buf
		}
		if err := cmd.Run(); err != nil {
			return fmt.Errorf("callback %q: %w", command, err)
		}
		return nil
	}
}

func shell() string {
	if sh := os.Getenv("SHELL"); sh != "" {
		return sh
	}
	return "/bin/sh"
}
