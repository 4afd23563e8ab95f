// Package dataset reads whitespace or comma separated numeric columns, the
// usual shape of spectra exported by lab instruments.
package dataset

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// ErrEmpty is returned for files without data rows.
var ErrEmpty = errors.New("no data rows")

// Table is a set of equally long numeric columns.
type Table struct {
	Name    string
	Header  []string
	Columns [][]float64
}

// Load reads the file at path. The table is named after the file.
func Load(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	t, err := Read(f, strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

// Read parses a table. Blank lines and lines starting with '#' or '%' are
// skipped. A non-numeric line before the first data row is the header.
func Read(r io.Reader, name string) (*Table, error) {
	t := &Table{Name: name}
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 1024*1024)
	line := 0
	for sc.Scan() {
		line++
		s := strings.TrimSpace(sc.Text())
		if s == "" || s[0] == '#' || s[0] == '%' {
			continue
		}
		fields := split(s)
		if len(fields) == 0 {
			return nil, fmt.Errorf("line %d: no fields", line)
		}
		row, err := parseRow(fields)
		if err != nil {
			if t.Columns == nil && t.Header == nil {
				t.Header = fields
				continue
			}
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		if t.Columns == nil {
			t.Columns = make([][]float64, len(row))
		}
		if len(row) != len(t.Columns) {
			return nil, fmt.Errorf("line %d: %d columns, want %d", line, len(row), len(t.Columns))
		}
		for i, v := range row {
			t.Columns[i] = append(t.Columns[i], v)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if t.Columns == nil {
		return nil, ErrEmpty
	}
	return t, nil
}

func split(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ';' || r == ' ' || r == '\t'
	})
}

func parseRow(fields []string) ([]float64, error) {
	row := make([]float64, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, fmt.Errorf("column %d: %q is not a number", i+1, f)
		}
		row[i] = v
	}
	return row, nil
}

// Rows reports the number of data rows.
func (t *Table) Rows() int {
	if len(t.Columns) == 0 {
		return 0
	}
	return len(t.Columns[0])
}

// ColumnName returns the header of column i, or "col<i>" without a header.
func (t *Table) ColumnName(i int) string {
	if i < len(t.Header) {
		return t.Header[i]
	}
	return fmt.Sprintf("col%d", i)
}

// Series returns x and y for plotting column ycol. A single column table is
// plotted against the row index.
func (t *Table) Series(ycol int) (xs, ys []float64, err error) {
	if len(t.Columns) == 1 {
		if ycol != 0 {
			return nil, nil, fmt.Errorf("column %d out of range", ycol)
		}
		xs = make([]float64, t.Rows())
		for i := range xs {
			xs[i] = float64(i)
		}
		return xs, t.Columns[0], nil
	}
	if ycol < 1 || ycol >= len(t.Columns) {
		return nil, nil, fmt.Errorf("column %d out of range", ycol)
	}
	return t.Columns[0], t.Columns[ycol], nil
}

// YColumns lists the columns plotted against the first one.
func (t *Table) YColumns() []int {
	if len(t.Columns) == 1 {
		return []int{0}
	}
	cols := make([]int, 0, len(t.Columns)-1)
	for i := 1; i < len(t.Columns); i++ {
		cols = append(cols, i)
	}
	return cols
}
