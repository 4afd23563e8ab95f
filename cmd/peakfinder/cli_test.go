package main

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/example/peakfinder/internal/config"
	"github.com/example/peakfinder/internal/theme"
)

func newTestRoot(t *testing.T) (*root, *bytes.Buffer) {
	t.Helper()
	var out bytes.Buffer
	r := &root{
		fs:          flag.NewFlagSet("peakfinder", flag.ContinueOnError),
		program:     "peakfinder",
		config:      config.New(),
		activeTheme: theme.Default(),
		stdin:       strings.NewReader(""),
		stdout:      &out,
		stderr:      &out,
	}
	return r, &out
}

func writeParabola(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "parabola.dat")
	data := "x y\n0 0\n1 5\n2 8\n3 9\n4 8\n5 5\n6 0\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestParseViewRequiresFiles(t *testing.T) {
	r, _ := newTestRoot(t)
	_, err := parseViewCmd(nil, r)
	var uerr *UsageError
	if !errors.As(err, &uerr) {
		t.Fatalf("expected usage error, got %v", err)
	}
	if want := "Usage: peakfinder view"; !strings.Contains(uerr.Error(), want) {
		t.Fatalf("help does not mention %q:\n%s", want, uerr.Error())
	}
}

func TestRootUsageListsCommands(t *testing.T) {
	r, _ := newTestRoot(t)
	err := r.Run(nil)
	var uerr *UsageError
	if !errors.As(err, &uerr) {
		t.Fatalf("expected usage error, got %v", err)
	}
	for _, want := range []string{"view", "interactive", "convert", "config", "themes"} {
		if !strings.Contains(uerr.Error(), want) {
			t.Fatalf("root help missing %q", want)
		}
	}
}

func TestInteractivePickSelectPrint(t *testing.T) {
	r, out := newTestRoot(t)
	path := writeParabola(t)
	handle := filepath.Join(t.TempDir(), "peaks.dat")
	cmd, err := parseInteractiveCmd([]string{
		"-mode", "max",
		"-handle", handle,
		"-e", "artists",
		"-e", "pick 0",
		"-e", "select 0 -10 6 10",
		"-e", "results",
		"-e", "key ctrl+z",
		"-e", "key p",
		path,
	}, r)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if err := cmd.Run(); err != nil {
		t.Fatalf("run: %v", err)
	}
	got := out.String()
	for _, want := range []string{
		" 0 ax 0 Line(parabola)",
		"PeakFinder : selected Line(parabola)",
		"PeakFinder : (3, 9)",
		" 0  0  max",
		"PeakFinder : removed last result",
		"PeakFinder : no peaks",
	} {
		if !strings.Contains(got, want) {
			t.Fatalf("output missing %q:\n%s", want, got)
		}
	}
}

func TestInteractiveSelectWithoutPick(t *testing.T) {
	r, out := newTestRoot(t)
	cmd, err := parseInteractiveCmd([]string{"-e", "select 0 0 1 1", writeParabola(t)}, r)
	if err != nil {
		t.Fatal(err)
	}
	if err := cmd.Run(); err != nil {
		t.Fatal(err)
	}
	if want := "selector not in axis"; !strings.Contains(out.String(), want) {
		t.Fatalf("output missing %q:\n%s", want, out.String())
	}
}

func TestInteractiveUnknownCommand(t *testing.T) {
	r, _ := newTestRoot(t)
	cmd, err := parseInteractiveCmd([]string{"-e", "frobnicate", writeParabola(t)}, r)
	if err != nil {
		t.Fatal(err)
	}
	if err := cmd.Run(); err == nil || !strings.Contains(err.Error(), "unknown command") {
		t.Fatalf("expected unknown command error, got %v", err)
	}
}

func TestInteractiveReadsStdin(t *testing.T) {
	r, out := newTestRoot(t)
	r.stdin = strings.NewReader("pick 0\nbogus\nexit\npick 0\n")
	cmd, err := parseInteractiveCmd([]string{writeParabola(t)}, r)
	if err != nil {
		t.Fatal(err)
	}
	if err := cmd.Run(); err != nil {
		t.Fatal(err)
	}
	got := out.String()
	if n := strings.Count(got, "selected Line(parabola)"); n != 1 {
		t.Fatalf("selected %d times, want 1 (exit stops the session):\n%s", n, got)
	}
	if !strings.Contains(got, `unknown command "bogus"`) {
		t.Fatalf("missing error for bogus command:\n%s", got)
	}
}

func TestUnknownKind(t *testing.T) {
	r, _ := newTestRoot(t)
	cmd, err := parseInteractiveCmd([]string{"-kind", "pie", writeParabola(t)}, r)
	if err != nil {
		t.Fatal(err)
	}
	if err := cmd.Run(); err == nil || !strings.Contains(err.Error(), "unknown plot kind") {
		t.Fatalf("expected kind error, got %v", err)
	}
}

func TestBarsArePickedOneByOne(t *testing.T) {
	r, out := newTestRoot(t)
	cmd, err := parseInteractiveCmd([]string{"-kind", "bar", "-e", "artists", writeParabola(t)}, r)
	if err != nil {
		t.Fatal(err)
	}
	if err := cmd.Run(); err != nil {
		t.Fatal(err)
	}
	if want := " 6 ax 0 Bar(parabola[6])"; !strings.Contains(out.String(), want) {
		t.Fatalf("output missing %q:\n%s", want, out.String())
	}
}

func TestConvertUsesRunner(t *testing.T) {
	r, _ := newTestRoot(t)
	in := filepath.Join(t.TempDir(), "plot.pdf")
	if err := os.WriteFile(in, []byte("%PDF"), 0o644); err != nil {
		t.Fatal(err)
	}
	cmd, err := parseConvertCmd([]string{"-density", "150", in, "plot.png"}, r)
	if err != nil {
		t.Fatal(err)
	}
	var got []string
	cmd.run = func(_ context.Context, name string, args ...string) error {
		got = append([]string{name}, args...)
		return nil
	}
	if err := cmd.Run(); err != nil {
		t.Fatal(err)
	}
	want := []string{"convert", "-density", "150", "-quality", "100%", in, "plot.png"}
	if strings.Join(got, " ") != strings.Join(want, " ") {
		t.Fatalf("ran %v, want %v", got, want)
	}
}

func TestConvertMissingInput(t *testing.T) {
	r, _ := newTestRoot(t)
	cmd, err := parseConvertCmd([]string{filepath.Join(t.TempDir(), "nope.pdf"), "out.png"}, r)
	if err != nil {
		t.Fatal(err)
	}
	cmd.run = func(context.Context, string, ...string) error {
		t.Fatal("runner called for a missing file")
		return nil
	}
	if err := cmd.Run(); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected not-exist error, got %v", err)
	}
}

func TestConfigPrintAndWrite(t *testing.T) {
	r, out := newTestRoot(t)
	cmd, err := parseConfigCmd(nil, r)
	if err != nil {
		t.Fatal(err)
	}
	if err := cmd.Run(); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "mode = fit") {
		t.Fatalf("unexpected config output:\n%s", out.String())
	}

	path := filepath.Join(t.TempDir(), "sub", "config.rc")
	cmd, err = parseConfigCmd([]string{"-write", "-path", path}, r)
	if err != nil {
		t.Fatal(err)
	}
	if err := cmd.Run(); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "handle = peaks.dat") {
		t.Fatalf("written config:\n%s", data)
	}
}

func TestThemePrecedence(t *testing.T) {
	r, _ := newTestRoot(t)
	r.config.Theme = "light"
	t.Setenv("PEAKFINDER_THEME", "dark")
	if got := r.resolveTheme(); !strings.EqualFold(got.Name, "dark") {
		t.Fatalf("env theme: got %q", got.Name)
	}
	r.themeName = "light"
	if got := r.resolveTheme(); !strings.EqualFold(got.Name, "light") {
		t.Fatalf("flag theme: got %q", got.Name)
	}
	custom := theme.Default()
	custom.Name = "mine"
	r.config.Themes["mine"] = custom
	r.themeName = "mine"
	if got := r.resolveTheme(); got != custom {
		t.Fatalf("config theme not used: %q", got.Name)
	}
	r.themeName = "no-such-theme"
	if got := r.resolveTheme(); got.Name != theme.Default().Name {
		t.Fatalf("fallback: got %q", got.Name)
	}
}
