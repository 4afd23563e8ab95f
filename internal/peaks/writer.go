package peaks

import (
	"fmt"
	"io"
	"os"
)

// DefaultHandleFile is the result file written by the save command.
const DefaultHandleFile = "peaks.dat"

// SaveFile writes the table to name, truncating any existing file. Nothing
// is created when the store is empty; ErrNoPeaks is returned instead.
func SaveFile(s *Store, name string) error {
	if s.Len() == 0 {
		return ErrNoPeaks
	}
	f, err := os.Create(name)
	if err != nil {
		return fmt.Errorf("create %s: %w", name, err)
	}
	if err := s.WriteTable(f); err != nil {
		if cerr := f.Close(); cerr != nil {
			return fmt.Errorf("write %s: %w (close: %v)", name, err, cerr)
		}
		return fmt.Errorf("write %s: %w", name, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", name, err)
	}
	return nil
}

// Print writes the table to a live stream such as the console.
func Print(s *Store, w io.Writer) error {
	return s.WriteTable(w)
}
