package config

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/example/peakfinder/internal/peaks"
	"github.com/example/peakfinder/internal/theme"
)

// Parse reads configuration from an io.Reader.
func Parse(r io.Reader) (*Config, error) {
	cfg := New()
	scanner := bufio.NewScanner(r)

	var currentSection string
	var currentTheme *theme.Theme
	lineNo := 0

	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "//") {
			continue
		}

		if strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]") {
			currentSection = strings.TrimSuffix(strings.TrimPrefix(line, "["), "]")
			currentTheme = nil

			if themeName, ok := strings.CutPrefix(currentSection, "theme."); ok {
				// Start with defaults so missing keys are fine
				currentTheme = theme.Default()
				currentTheme.Name = themeName
				cfg.Themes[themeName] = currentTheme
			}
			continue
		}

		// Key = Value or Key: Value
		var key, value string
		var ok bool
		if key, value, ok = strings.Cut(line, "="); !ok {
			if key, value, ok = strings.Cut(line, ":"); !ok {
				continue
			}
		}
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)
		if len(value) >= 2 && strings.HasPrefix(value, "\"") && strings.HasSuffix(value, "\"") {
			value = value[1 : len(value)-1]
		}

		var err error
		switch {
		case currentTheme != nil:
			err = theme.SetField(currentTheme, key, value)
		case currentSection == "style":
			err = setStyleField(&cfg.Style, key, value)
		case currentSection == "notify":
			err = setNotifyField(&cfg.Notify, key, value)
		case currentSection == "":
			err = setRootField(cfg, key, value)
		}
		if err != nil {
			section := currentSection
			if section == "" {
				section = "root"
			}
			return nil, fmt.Errorf("line %d: error in section [%s]: %w", lineNo, section, err)
		}
	}

	return cfg, scanner.Err()
}

func setRootField(cfg *Config, key, value string) error {
	switch strings.ToLower(key) {
	case "mode":
		if _, err := peaks.ParseMode(value); err != nil {
			return err
		}
		cfg.Mode = value
	case "handle":
		cfg.Handle = value
	case "save_name":
		cfg.SaveName = value
	case "border":
		n, err := strconv.Atoi(value)
		if err != nil || n < 0 {
			return fmt.Errorf("invalid border %q", value)
		}
		cfg.Border = n
	case "theme":
		cfg.Theme = value
	}
	return nil
}

func setStyleField(s *Style, key, value string) error {
	k := strings.ToLower(key)
	switch k {
	case "xtext_fmt":
		s.XTextFmt = value
		return nil
	case "ytext_fmt":
		s.YTextFmt = value
		return nil
	case "xtext_loc":
		if !strings.EqualFold(value, "inside") {
			if _, err := strconv.ParseFloat(value, 64); err != nil {
				return fmt.Errorf("invalid xtext_loc %q", value)
			}
		}
		s.XTextLoc = value
		return nil
	case "ytext_loc":
		v, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("invalid ytext_loc %q", value)
		}
		s.YTextLoc = v
		return nil
	}
	flags := map[string]*bool{
		"xline": &s.XLine,
		"yline": &s.YLine,
		"point": &s.Point,
		"xtext": &s.XText,
		"ytext": &s.YText,
	}
	dst, ok := flags[k]
	if !ok {
		return nil
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return fmt.Errorf("invalid boolean for key %s: %w", key, err)
	}
	*dst = b
	return nil
}

func setNotifyField(n *Notify, key, value string) error {
	b, err := strconv.ParseBool(value)
	if err != nil {
		return fmt.Errorf("invalid boolean for key %s: %w", key, err)
	}
	switch strings.ToLower(key) {
	case "save":
		n.Save = b
	case "copy":
		n.Copy = b
	}
	return nil
}
