package main

import (
	"context"
	"flag"
	"fmt"

	"github.com/example/peakfinder/internal/render"
)

type convertCmd struct {
	*root
	fs      *flag.FlagSet
	density int
	run     render.Runner
}

func parseConvertCmd(args []string, r *root) (*convertCmd, error) {
	fs := flag.NewFlagSet("convert", flag.ExitOnError)
	c := &convertCmd{root: r, fs: fs, run: render.ExecRunner}
	fs.IntVar(&c.density, "density", render.DefaultDensity, "resolution used to rasterise vector input")
	fs.Usage = usageFunc(c)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() != 2 {
		return nil, &UsageError{of: c}
	}
	return c, nil
}

func (c *convertCmd) FlagSet() *flag.FlagSet {
	return c.fs
}

func (c *convertCmd) Run() error {
	in, out := c.fs.Arg(0), c.fs.Arg(1)
	if err := render.Convert(context.Background(), c.run, in, out, c.density); err != nil {
		return fmt.Errorf("failed to convert %s: %w", in, err)
	}
	fmt.Fprintf(c.stdout, "saved %s\n", out)
	return nil
}
