package peaks

import (
	"fmt"
	"strings"
)

// Mode selects the algorithm used to reduce a region to a single extremum.
type Mode int

const (
	ModeMin Mode = iota
	ModeMax
	ModeFit
)

var modeNames = [...]string{
	ModeMin: "min",
	ModeMax: "max",
	ModeFit: "fit",
}

// Modes lists every mode in cycling order.
func Modes() []Mode { return []Mode{ModeMin, ModeMax, ModeFit} }

// Next returns the mode that follows m: min, max, fit, then min again.
func (m Mode) Next() Mode {
	return (m + 1) % Mode(len(modeNames))
}

func (m Mode) String() string {
	if m < 0 || int(m) >= len(modeNames) {
		return fmt.Sprintf("Mode(%d)", int(m))
	}
	return modeNames[m]
}

// ParseMode converts a mode name such as "fit" into a Mode.
func ParseMode(s string) (Mode, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for i, n := range modeNames {
		if n == name {
			return Mode(i), nil
		}
	}
	return ModeFit, fmt.Errorf("unknown mode %q (want min, max or fit)", s)
}
