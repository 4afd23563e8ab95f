package main

import (
	"flag"
	"fmt"

	"github.com/example/peakfinder/internal/config"
)

type configCmd struct {
	*root
	fs    *flag.FlagSet
	write bool
	path  string
}

func parseConfigCmd(args []string, r *root) (*configCmd, error) {
	fs := flag.NewFlagSet("config", flag.ExitOnError)
	c := &configCmd{root: r, fs: fs}
	fs.BoolVar(&c.write, "write", false, "write the configuration instead of printing it")
	fs.StringVar(&c.path, "path", "", "file to write (default: the loaded config or "+config.DefaultPath()+")")
	fs.Usage = usageFunc(c)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() != 0 {
		return nil, &UsageError{of: c}
	}
	return c, nil
}

func (c *configCmd) FlagSet() *flag.FlagSet {
	return c.fs
}

func (c *configCmd) Run() error {
	if !c.write {
		fmt.Fprint(c.stdout, c.config.String())
		return nil
	}
	path := c.path
	if path == "" {
		path = config.NewLoader(version, configPathOverride).GetConfigPath()
	}
	if path == "" {
		path = config.DefaultPath()
	}
	if path == "" {
		return fmt.Errorf("no config path: set -path or HOME")
	}
	if err := config.Save(c.config, path); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	fmt.Fprintf(c.stderr, "Configuration saved to %s\n", path)
	return nil
}
