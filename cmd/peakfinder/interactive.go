package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/example/peakfinder/internal/picker"
)

type commandList []string

func (c *commandList) String() string {
	return strings.Join(*c, ";")
}

func (c *commandList) Set(value string) error {
	*c = append(*c, value)
	return nil
}

// interactiveCmd drives a controller from text commands instead of a window.
type interactiveCmd struct {
	*root
	fs    *flag.FlagSet
	plot  *plotOptions
	execs commandList
	sess  *session
}

func parseInteractiveCmd(args []string, r *root) (*interactiveCmd, error) {
	fs := flag.NewFlagSet("interactive", flag.ExitOnError)
	c := &interactiveCmd{root: r, fs: fs}
	c.plot = r.plotFlags(fs)
	fs.Var(&c.execs, "e", "execute a command in immediate mode (may be specified multiple times)")
	fs.Usage = usageFunc(c)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() == 0 {
		return nil, &UsageError{of: c}
	}
	return c, nil
}

func (c *interactiveCmd) FlagSet() *flag.FlagSet {
	return c.fs
}

func (c *interactiveCmd) Run() error {
	logger := log.New(c.stdout, "PeakFinder : ", 0)
	s, err := c.newSession(c.fs.Args(), c.plot, logger)
	if err != nil {
		return err
	}
	c.sess = s

	if len(c.execs) > 0 {
		for _, line := range c.execs {
			done, err := c.executeLine(line)
			if err != nil {
				return err
			}
			if done {
				break
			}
		}
		return nil
	}

	fmt.Fprintln(c.stdout, "Enter commands (type 'help' for a list, 'exit' to quit)")
	scanner := bufio.NewScanner(c.stdin)
	for {
		fmt.Fprint(c.stdout, "> ")
		if !scanner.Scan() {
			break
		}
		done, err := c.executeLine(scanner.Text())
		if errors.Is(err, picker.ErrCallback) {
			return err
		}
		if err != nil {
			fmt.Fprintln(c.stderr, err)
		}
		if done {
			break
		}
	}
	return scanner.Err()
}

const interactiveHelp = `commands:
  artists                 list pickable artists
  pick <n>                pick artist n
  select <x0> <y0> <x1> <y1>
                          select a region in data coordinates
  key <name>              press a key, e.g. m, w or ctrl+z
  results                 print the result table
  exit                    leave the session`

// executeLine runs one command. done reports that the session should end.
func (c *interactiveCmd) executeLine(line string) (done bool, err error) {
	args := strings.Fields(line)
	if len(args) == 0 {
		return false, nil
	}
	ctrl := c.sess.ctrl
	switch args[0] {
	case "exit", "quit":
		return true, nil
	case "help":
		fmt.Fprintln(c.stdout, interactiveHelp)
	case "artists":
		for i, a := range c.sess.artists {
			fmt.Fprintf(c.stdout, "%2d ax %d %s\n", i, c.sess.axesOf[a].Index(), a)
		}
	case "pick":
		if len(args) != 2 {
			return false, errors.New("usage: pick <n>")
		}
		i, err := strconv.Atoi(args[1])
		if err != nil || i < 0 || i >= len(c.sess.artists) {
			return false, fmt.Errorf("pick: no artist %q", args[1])
		}
		a := c.sess.artists[i]
		ctrl.OnPick(a, c.sess.axesOf[a])
	case "select":
		if len(args) != 5 {
			return false, errors.New("usage: select <x0> <y0> <x1> <y1>")
		}
		var v [4]float64
		for i := range v {
			f, err := strconv.ParseFloat(args[i+1], 64)
			if err != nil {
				return false, fmt.Errorf("select: %w", err)
			}
			v[i] = f
		}
		ctrl.OnRegionSelect(picker.Point{X: v[0], Y: v[1]}, picker.Point{X: v[2], Y: v[3]})
	case "key":
		if len(args) != 2 {
			return false, errors.New("usage: key <name>")
		}
		if err := ctrl.OnKey(args[1]); err != nil {
			return true, err
		}
	case "results":
		ctrl.Print()
	default:
		return false, fmt.Errorf("unknown command %q", args[0])
	}
	return false, nil
}
