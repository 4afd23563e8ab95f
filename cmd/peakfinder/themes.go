package main

import (
	"flag"
	"fmt"
	"sort"

	"github.com/example/peakfinder/internal/theme"
)

type themesCmd struct {
	*root
	fs *flag.FlagSet
}

func parseThemesCmd(args []string, r *root) (*themesCmd, error) {
	fs := flag.NewFlagSet("themes", flag.ExitOnError)
	cmd := &themesCmd{root: r, fs: fs}
	fs.Usage = usageFunc(cmd)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() != 0 {
		return nil, &UsageError{of: cmd}
	}
	return cmd, nil
}

func (c *themesCmd) FlagSet() *flag.FlagSet {
	return c.fs
}

func (c *themesCmd) Run() error {
	fmt.Fprintln(c.stdout, "built-in themes:")
	for _, name := range theme.Embedded() {
		fmt.Fprintf(c.stdout, "  %s\n", name)
	}
	if len(c.config.Themes) == 0 {
		return nil
	}
	names := make([]string, 0, len(c.config.Themes))
	for name := range c.config.Themes {
		names = append(names, name)
	}
	sort.Strings(names)
	fmt.Fprintln(c.stdout, "themes from config:")
	for _, name := range names {
		fmt.Fprintf(c.stdout, "  %s\n", name)
	}
	return nil
}
