package config

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/example/peakfinder/internal/peaks"
	"github.com/example/peakfinder/internal/picker"
	"github.com/example/peakfinder/internal/theme"
)

// Notify holds notification settings.
type Notify struct {
	Save bool
	Copy bool
}

// Style selects the decorations drawn for each result.
type Style struct {
	XLine    bool
	YLine    bool
	Point    bool
	XText    bool
	YText    bool
	XTextFmt string
	YTextFmt string
	// XTextLoc is an axes fraction or "inside".
	XTextLoc string
	YTextLoc float64
}

// Config holds the application configuration.
type Config struct {
	Mode     string
	Handle   string
	SaveName string
	Border   int
	Theme    string
	Style    Style
	Notify   Notify
	Themes   map[string]*theme.Theme
}

// New creates a new Config with defaults.
func New() *Config {
	return &Config{
		Mode:     peaks.ModeFit.String(),
		Handle:   peaks.DefaultHandleFile,
		SaveName: picker.DefaultSaveName,
		Border:   10,
		Theme:    "", // Default to empty to allow fallback to Env/Default
		Style: Style{
			XLine:    true,
			XText:    true,
			XTextFmt: "%.3f",
			YTextFmt: "%.3f",
			XTextLoc: "1.02",
			YTextLoc: 1.02,
		},
		Themes: make(map[string]*theme.Theme),
	}
}

// String implements fmt.Stringer and returns the configuration in RC format.
func (c *Config) String() string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "mode = %s\n", c.Mode)
	fmt.Fprintf(&sb, "handle = %s\n", c.Handle)
	fmt.Fprintf(&sb, "save_name = %s\n", c.SaveName)
	fmt.Fprintf(&sb, "border = %d\n", c.Border)
	if c.Theme != "" {
		fmt.Fprintf(&sb, "theme = %s\n", c.Theme)
	}
	sb.WriteString("\n")

	sb.WriteString("[style]\n")
	fmt.Fprintf(&sb, "xline = %v\n", c.Style.XLine)
	fmt.Fprintf(&sb, "yline = %v\n", c.Style.YLine)
	fmt.Fprintf(&sb, "point = %v\n", c.Style.Point)
	fmt.Fprintf(&sb, "xtext = %v\n", c.Style.XText)
	fmt.Fprintf(&sb, "ytext = %v\n", c.Style.YText)
	fmt.Fprintf(&sb, "xtext_fmt = %q\n", c.Style.XTextFmt)
	fmt.Fprintf(&sb, "ytext_fmt = %q\n", c.Style.YTextFmt)
	fmt.Fprintf(&sb, "xtext_loc = %s\n", c.Style.XTextLoc)
	fmt.Fprintf(&sb, "ytext_loc = %g\n", c.Style.YTextLoc)
	sb.WriteString("\n")

	sb.WriteString("[notify]\n")
	fmt.Fprintf(&sb, "save = %v\n", c.Notify.Save)
	fmt.Fprintf(&sb, "copy = %v\n", c.Notify.Copy)
	sb.WriteString("\n")

	// Sort keys for deterministic output
	var themeNames []string
	for name := range c.Themes {
		themeNames = append(themeNames, name)
	}
	sort.Strings(themeNames)

	for _, name := range themeNames {
		t := c.Themes[name]
		fmt.Fprintf(&sb, "[theme.%s]\n", name)
		fmt.Fprintf(&sb, "Name: %s\n", t.Name)
		for _, field := range theme.Fields(t) {
			col, _ := theme.Get(t, field)
			fmt.Fprintf(&sb, "%s: %s\n", field, theme.FormatColor(col))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// ParsedMode returns the configured initial mode.
func (c *Config) ParsedMode() (peaks.Mode, error) {
	return peaks.ParseMode(c.Mode)
}

// PickerStyle combines the style section with the annotation colors of th.
func (c *Config) PickerStyle(th *theme.Theme) (picker.Style, error) {
	s := picker.DefaultStyle()
	s.XLine, s.YLine, s.Point = c.Style.XLine, c.Style.YLine, c.Style.Point
	s.XText, s.YText = c.Style.XText, c.Style.YText
	s.XTextFormat, s.YTextFormat = c.Style.XTextFmt, c.Style.YTextFmt
	s.YTextLoc = c.Style.YTextLoc
	if strings.EqualFold(c.Style.XTextLoc, "inside") {
		s.XTextLoc = picker.TextLoc{Inside: true}
	} else {
		v, err := strconv.ParseFloat(c.Style.XTextLoc, 64)
		if err != nil {
			return s, fmt.Errorf("xtext_loc %q: want a number or inside", c.Style.XTextLoc)
		}
		s.XTextLoc = picker.TextLoc{Fraction: v}
	}
	if th != nil {
		s.Line.Color = th.Annotation
		s.XLabel.Color = th.Annotation
		s.YLabel.Color = th.Annotation
		s.Marker.Color = th.Marker
	}
	return s, nil
}
