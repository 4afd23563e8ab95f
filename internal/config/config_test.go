package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/example/peakfinder/internal/peaks"
	"github.com/example/peakfinder/internal/theme"
)

func TestParse(t *testing.T) {
	input := `
mode = max
handle = results.dat
save_name = "fig.png"
border = 4
theme = my_custom_theme

[style]
yline = true
point = 1
xtext_loc = inside
ytext_fmt = "%.1f"

[notify]
save = false
copy = true

[theme.my_custom_theme]
Background = #111111
Marker: #FF0000
`
	cfg, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if m, err := cfg.ParsedMode(); err != nil || m != peaks.ModeMax {
		t.Errorf("Expected mode max, got %v (%v)", m, err)
	}
	if cfg.Handle != "results.dat" || cfg.SaveName != "fig.png" || cfg.Border != 4 {
		t.Errorf("Unexpected root section: %+v", cfg)
	}
	if cfg.Theme != "my_custom_theme" {
		t.Errorf("Expected theme 'my_custom_theme', got '%s'", cfg.Theme)
	}
	if !cfg.Style.YLine || !cfg.Style.Point || !cfg.Style.XLine {
		t.Errorf("Unexpected style flags: %+v", cfg.Style)
	}
	if cfg.Style.XTextLoc != "inside" || cfg.Style.YTextFmt != "%.1f" {
		t.Errorf("Unexpected style text: %+v", cfg.Style)
	}
	if cfg.Notify.Save || !cfg.Notify.Copy {
		t.Errorf("Unexpected notify: %+v", cfg.Notify)
	}

	th, ok := cfg.Themes["my_custom_theme"]
	if !ok {
		t.Fatal("Expected theme 'my_custom_theme' to be loaded")
	}
	if th.Background.R != 0x11 || th.Marker.R != 0xFF {
		t.Errorf("Unexpected colors: %+v %+v", th.Background, th.Marker)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"mode", "mode = peak\n"},
		{"border", "border = -1\n"},
		{"flag", "[style]\nxline = maybe\n"},
		{"loc", "[style]\nxtext_loc = top\n"},
		{"notify", "[notify]\nsave = sometimes\n"},
		{"color", "[theme.x]\nBackground = white\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse(strings.NewReader(tt.input)); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestCircular(t *testing.T) {
	input := `mode = min
handle = out.dat
theme = dark

[style]
xline = false
ytext = true
xtext_loc = 1.1
ytext_loc = 0.95

[notify]
save = true
copy = false

[theme.custom]
Name = custom
Background = #000000
Foreground = #FFFFFF
`
	cfg, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Initial parse failed: %v", err)
	}

	generated := cfg.String()

	cfg2, err := Parse(strings.NewReader(generated))
	if err != nil {
		t.Fatalf("Circular parse failed: %v\n%s", err, generated)
	}

	if cfg.Mode != cfg2.Mode || cfg.Handle != cfg2.Handle || cfg.Theme != cfg2.Theme {
		t.Errorf("Root mismatch: %+v vs %+v", cfg, cfg2)
	}
	if cfg.Style != cfg2.Style {
		t.Errorf("Style mismatch: %+v vs %+v", cfg.Style, cfg2.Style)
	}
	if cfg.Notify != cfg2.Notify {
		t.Errorf("Notify mismatch: %+v vs %+v", cfg.Notify, cfg2.Notify)
	}

	t1 := cfg.Themes["custom"]
	t2 := cfg2.Themes["custom"]
	if t1 == nil || t2 == nil {
		t.Fatalf("Custom theme missing in one config")
	}
	if *t1 != *t2 {
		t.Errorf("Theme mismatch: %+v vs %+v", t1, t2)
	}
}

func TestPickerStyle(t *testing.T) {
	cfg := New()
	cfg.Style.XTextLoc = "inside"
	th := theme.Default()
	s, err := cfg.PickerStyle(th)
	if err != nil {
		t.Fatal(err)
	}
	if !s.XTextLoc.Inside || !s.XLine || s.YLine || s.XTextFormat != "%.3f" {
		t.Errorf("Unexpected style: %+v", s)
	}
	if s.Marker.Color != th.Marker {
		t.Errorf("Marker color %v", s.Marker.Color)
	}
	cfg.Style.XTextLoc = "1.5"
	if s, _ = cfg.PickerStyle(nil); s.XTextLoc.Fraction != 1.5 {
		t.Errorf("Fraction %v", s.XTextLoc)
	}
}

func TestLoaderOverride(t *testing.T) {
	p := filepath.Join(t.TempDir(), "peakfinder.rc")
	if err := os.WriteFile(p, []byte("mode = min\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := NewLoader("1.0", p).Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Mode != "min" {
		t.Errorf("Expected mode min, got %s", cfg.Mode)
	}
}

func TestLoaderDefaults(t *testing.T) {
	t.Setenv("PEAKFINDER_CONFIG", "")
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())
	cfg, err := NewLoader("1.0", "").Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Handle != peaks.DefaultHandleFile || cfg.Mode != "fit" {
		t.Errorf("Unexpected defaults: %+v", cfg)
	}
}

func TestLoaderEnvPath(t *testing.T) {
	p := filepath.Join(t.TempDir(), "env.rc")
	if err := os.WriteFile(p, []byte("border = 4\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("PEAKFINDER_CONFIG", p)
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	l := NewLoader("1.0", "")
	if got := l.GetConfigPath(); got != p {
		t.Fatalf("GetConfigPath() = %q, want %q", got, p)
	}
	cfg, err := l.Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Border != 4 {
		t.Errorf("Expected border 4, got %d", cfg.Border)
	}
}

func TestSave(t *testing.T) {
	t.Setenv("PEAKFINDER_CONFIG", "")
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	cfg := New()
	cfg.Border = 3
	if err := Save(cfg, DefaultPath()); err != nil {
		t.Fatal(err)
	}
	got, err := NewLoader("1.0", "").Load()
	if err != nil {
		t.Fatal(err)
	}
	if got.Border != 3 {
		t.Errorf("Expected border 3, got %d", got.Border)
	}
}
