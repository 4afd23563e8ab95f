package main

import (
	"flag"
	"io"
	"log"

	"github.com/example/peakfinder/internal/appstate"
	"github.com/example/peakfinder/internal/picker"
)

type viewCmd struct {
	*root
	fs     *flag.FlagSet
	plot   *plotOptions
	width  int
	height int
}

func parseViewCmd(args []string, r *root) (*viewCmd, error) {
	fs := flag.NewFlagSet("view", flag.ExitOnError)
	v := &viewCmd{root: r, fs: fs}
	v.plot = r.plotFlags(fs)
	fs.IntVar(&v.width, "width", 768, "initial window width in pixels")
	fs.IntVar(&v.height, "height", 576, "initial figure height in pixels")
	fs.Usage = usageFunc(v)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() == 0 {
		return nil, &UsageError{of: v}
	}
	return v, nil
}

func (v *viewCmd) FlagSet() *flag.FlagSet {
	return v.fs
}

func (v *viewCmd) Run() error {
	files := v.fs.Args()
	var ctrl *picker.Controller
	app := appstate.New(
		appstate.WithTheme(v.activeTheme),
		appstate.WithTitle(title(files)),
		appstate.WithSize(v.width, v.height),
		appstate.WithModeLabel(func() string { return ctrl.Mode().String() }),
	)
	logger := log.New(io.MultiWriter(v.stdout, app.StatusWriter()), "PeakFinder : ", 0)
	s, err := v.newSession(files, v.plot, logger)
	if err != nil {
		return err
	}
	ctrl = s.ctrl
	app.Figure = s.fig
	app.Handler = ctrl
	app.Run()
	return nil
}
