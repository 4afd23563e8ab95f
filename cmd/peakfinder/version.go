package main

import (
	"flag"
	"fmt"
)

type versionCmd struct{ r *root }

func (v *versionCmd) Run() error {
	fmt.Fprintf(v.r.stdout, "%s version %s\n", v.r.program, version)
	if commit != "" {
		fmt.Fprintf(v.r.stdout, "commit %s built %s\n", commit, date)
	}
	return nil
}

func (v *versionCmd) Program() string {
	return v.r.Program()
}

func (v *versionCmd) FlagSet() *flag.FlagSet {
	return nil
}
