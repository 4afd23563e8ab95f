// Package peaks records picked extrema together with the annotations drawn
// for them and writes them out as a fixed-width text table.
package peaks

import (
	"errors"
	"fmt"
	"io"
	"sort"
)

// ErrNoPeaks is returned when writing an empty store.
var ErrNoPeaks = errors.New("no peaks")

// Result is one recorded extremum. Results compare equal only when all four
// fields are identical.
type Result struct {
	X, Y float64
	Axis int
	Mode Mode
}

// Handle is an opaque reference to something drawn on the canvas.
type Handle interface {
	Remove()
}

// HandleGroup holds every handle drawn for one Result.
type HandleGroup []Handle

// Destroyer removes a handle group from the canvas.
type Destroyer interface {
	Destroy(HandleGroup)
}

// Entry pairs a Result with the annotations drawn for it.
type Entry struct {
	Result
	Handles HandleGroup
}

// Store is an ordered list of recorded results. It is not safe for
// concurrent use; callers mutate it from a single event loop.
type Store struct {
	entries []Entry
}

// Len reports the number of recorded results.
func (s *Store) Len() int { return len(s.entries) }

// Contains reports whether an identical result is already recorded.
func (s *Store) Contains(r Result) bool {
	for _, e := range s.entries {
		if e.Result == r {
			return true
		}
	}
	return false
}

// Append adds r and its handles at the end of the store.
func (s *Store) Append(r Result, handles HandleGroup) {
	s.entries = append(s.entries, Entry{Result: r, Handles: handles})
}

// PopLast removes the last entry in store order, hands its handles to d and
// returns the removed result. After Sort that is the largest (axis, x), not
// the latest Append. ok is false when the store is empty.
func (s *Store) PopLast(d Destroyer) (r Result, ok bool) {
	n := len(s.entries)
	if n == 0 {
		return Result{}, false
	}
	last := s.entries[n-1]
	s.entries[n-1] = Entry{}
	s.entries = s.entries[:n-1]
	if d != nil {
		d.Destroy(last.Handles)
	}
	return last.Result, true
}

// Sort orders the entries by axis and then x. Entries that tie keep their
// relative order.
func (s *Store) Sort() {
	sort.SliceStable(s.entries, func(i, j int) bool {
		a, b := s.entries[i], s.entries[j]
		if a.Axis != b.Axis {
			return a.Axis < b.Axis
		}
		return a.X < b.X
	})
}

// Results returns a copy of the recorded results in store order.
func (s *Store) Results() []Result {
	out := make([]Result, len(s.entries))
	for i, e := range s.entries {
		out[i] = e.Result
	}
	return out
}

// Entries returns a copy of the entries in store order.
func (s *Store) Entries() []Entry {
	out := make([]Entry, len(s.entries))
	copy(out, s.entries)
	return out
}

// WriteTable writes the header and one row per result to w. An empty store
// writes nothing and returns ErrNoPeaks.
func (s *Store) WriteTable(w io.Writer) error {
	if len(s.entries) == 0 {
		return ErrNoPeaks
	}
	if _, err := fmt.Fprintf(w, "%2s %2s %4s %23s %23s\n", "id", "ax", "mode", "x", "y"); err != nil {
		return err
	}
	for i, e := range s.entries {
		if _, err := fmt.Fprintf(w, "%2d %2d %4s %23.15e %23.15e\n", i, e.Axis, e.Mode, e.X, e.Y); err != nil {
			return err
		}
	}
	return nil
}
