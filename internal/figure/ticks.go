package figure

import (
	"strings"

	"github.com/dustin/go-humanize"
	"gonum.org/v1/plot"
)

// SITicks places ticks like plot.DefaultTicks and labels the major ones with
// SI prefixes, e.g. 1.5k or 20µ.
type SITicks struct{}

// Ticks implements plot.Ticker.
func (SITicks) Ticks(min, max float64) []plot.Tick {
	ticks := plot.DefaultTicks{}.Ticks(min, max)
	for i, t := range ticks {
		if t.IsMinor() {
			continue
		}
		ticks[i].Label = strings.TrimSpace(humanize.SI(t.Value, ""))
	}
	return ticks
}
