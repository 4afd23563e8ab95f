package peaks

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

type countingHandle struct {
	removed *int
}

func (h countingHandle) Remove() { *h.removed++ }

type recordingDestroyer struct {
	groups []HandleGroup
}

func (d *recordingDestroyer) Destroy(g HandleGroup) {
	d.groups = append(d.groups, g)
	for _, h := range g {
		h.Remove()
	}
}

func TestModeNextCycles(t *testing.T) {
	m := ModeMin
	want := []Mode{ModeMax, ModeFit, ModeMin, ModeMax}
	for i, w := range want {
		m = m.Next()
		if m != w {
			t.Fatalf("step %d: got %v, want %v", i, m, w)
		}
	}
}

func TestParseMode(t *testing.T) {
	for _, m := range Modes() {
		got, err := ParseMode(strings.ToUpper(m.String()))
		if err != nil || got != m {
			t.Fatalf("ParseMode(%q) = %v, %v", m.String(), got, err)
		}
	}
	if _, err := ParseMode("median"); err == nil {
		t.Fatal("expected error for unknown mode")
	}
}

func TestStoreDeduplicationByContains(t *testing.T) {
	var s Store
	r := Result{X: 2, Y: 5, Axis: 0, Mode: ModeMax}
	for i := 0; i < 2; i++ {
		if !s.Contains(r) {
			s.Append(r, nil)
		}
	}
	if s.Len() != 1 {
		t.Fatalf("Len = %d, want 1", s.Len())
	}
	if s.Contains(Result{X: 2, Y: 5, Axis: 0, Mode: ModeFit}) {
		t.Fatal("results differing in mode must not compare equal")
	}
}

func TestStoreAppendUndoDestroysEachGroupOnce(t *testing.T) {
	var s Store
	const n = 5
	removed := make([]int, n)
	for i := 0; i < n; i++ {
		g := HandleGroup{countingHandle{&removed[i]}, countingHandle{&removed[i]}}
		s.Append(Result{X: float64(i), Axis: 0}, g)
	}
	d := &recordingDestroyer{}
	for i := 0; i < n; i++ {
		if _, ok := s.PopLast(d); !ok {
			t.Fatalf("undo %d reported empty store", i)
		}
	}
	if s.Len() != 0 {
		t.Fatalf("Len = %d after undoing everything", s.Len())
	}
	for i, c := range removed {
		if c != 2 {
			t.Fatalf("group %d handles removed %d times, want 2", i, c)
		}
	}
	if _, ok := s.PopLast(d); ok {
		t.Fatal("PopLast on empty store reported ok")
	}
	if len(d.groups) != n {
		t.Fatalf("destroyer saw %d groups, want %d", len(d.groups), n)
	}
}

func TestStoreUndoReturnsLast(t *testing.T) {
	var s Store
	first := Result{X: 1, Y: 1}
	second := Result{X: 2, Y: 2}
	third := Result{X: 3, Y: 3}
	s.Append(first, nil)
	s.Append(second, nil)
	s.Append(third, nil)
	got, ok := s.PopLast(nil)
	if !ok || got != third {
		t.Fatalf("PopLast = %+v, %v", got, ok)
	}
	res := s.Results()
	if len(res) != 2 || res[1] != second {
		t.Fatalf("store after undo = %+v", res)
	}
}

func TestStoreSortStableByAxisThenX(t *testing.T) {
	var s Store
	in := []Result{
		{X: 5, Y: 1, Axis: 1, Mode: ModeMax},
		{X: 2, Y: 9, Axis: 0, Mode: ModeMin},
		{X: 5, Y: 2, Axis: 1, Mode: ModeFit},
		{X: 1, Y: 0, Axis: 1, Mode: ModeMax},
		{X: 2, Y: 3, Axis: 0, Mode: ModeMax},
	}
	tags := make([]int, len(in))
	for i, r := range in {
		tags[i] = i
		n := &tags[i]
		s.Append(r, HandleGroup{countingHandle{n}})
	}
	s.Sort()
	want := []Result{in[1], in[4], in[3], in[0], in[2]}
	got := s.Results()
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("position %d: got %+v, want %+v", i, got[i], want[i])
		}
	}
	// Handles must travel with their results.
	for _, e := range s.Entries() {
		h := e.Handles[0].(countingHandle)
		if in[*h.removed] != e.Result {
			t.Fatalf("handle for %+v belongs to %+v", e.Result, in[*h.removed])
		}
	}
}

func TestWriteTableFormat(t *testing.T) {
	var s Store
	s.Append(Result{X: 2, Y: 5, Axis: 0, Mode: ModeMax}, nil)
	s.Append(Result{X: -1.5e-3, Y: 12345.678, Axis: 1, Mode: ModeFit}, nil)
	var buf bytes.Buffer
	if err := s.WriteTable(&buf); err != nil {
		t.Fatalf("WriteTable: %v", err)
	}
	want := "" +
		"id ax mode                       x                       y\n" +
		" 0  0  max   2.000000000000000e+00   5.000000000000000e+00\n" +
		" 1  1  fit  -1.500000000000000e-03   1.234567800000000e+04\n"
	if buf.String() != want {
		t.Fatalf("table mismatch:\n%q\nwant\n%q", buf.String(), want)
	}
}

func TestWriteTableEmpty(t *testing.T) {
	var s Store
	var buf bytes.Buffer
	if err := s.WriteTable(&buf); !errors.Is(err, ErrNoPeaks) {
		t.Fatalf("expected ErrNoPeaks, got %v", err)
	}
	if buf.Len() != 0 {
		t.Fatalf("empty store wrote %q", buf.String())
	}
}

func TestSaveFileTruncates(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, DefaultHandleFile)
	if err := os.WriteFile(path, []byte(strings.Repeat("stale\n", 100)), 0o644); err != nil {
		t.Fatal(err)
	}
	var s Store
	s.Append(Result{X: 1, Y: 2, Mode: ModeMin}, nil)
	if err := SaveFile(&s, path); err != nil {
		t.Fatalf("SaveFile: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(data), "stale") {
		t.Fatal("file was not truncated")
	}
	if lines := strings.Count(string(data), "\n"); lines != 2 {
		t.Fatalf("got %d lines, want 2", lines)
	}
}

func TestSaveFileEmptyCreatesNothing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "none.dat")
	var s Store
	if err := SaveFile(&s, path); !errors.Is(err, ErrNoPeaks) {
		t.Fatalf("expected ErrNoPeaks, got %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("expected no file, stat err = %v", err)
	}
}

func TestStorePopLastFollowsSortOrder(t *testing.T) {
	var s Store
	s.Append(Result{X: 5, Axis: 0}, nil)
	s.Sort()
	s.Append(Result{X: 1, Axis: 0}, nil)
	s.Sort()
	r, ok := s.PopLast(&recordingDestroyer{})
	if !ok || r.X != 5 {
		t.Fatalf("PopLast = %+v, %v; want x=5 (largest, not latest)", r, ok)
	}
}
