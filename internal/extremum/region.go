package extremum

import "fmt"

// Point is a location in axis data coordinates.
type Point struct {
	X, Y float64
}

// Region is an axis-aligned rectangle with inclusive bounds, X0 <= X1 and
// Y0 <= Y1.
type Region struct {
	X0, X1 float64
	Y0, Y1 float64
}

// NewRegion normalises two arbitrary corners into a Region.
func NewRegion(a, b Point) Region {
	r := Region{X0: a.X, X1: b.X, Y0: a.Y, Y1: b.Y}
	if r.X0 > r.X1 {
		r.X0, r.X1 = r.X1, r.X0
	}
	if r.Y0 > r.Y1 {
		r.Y0, r.Y1 = r.Y1, r.Y0
	}
	return r
}

// Contains reports whether (x, y) lies inside r, edges included.
func (r Region) Contains(x, y float64) bool {
	return x >= r.X0 && x <= r.X1 && y >= r.Y0 && y <= r.Y1
}

// Filter returns the samples inside r in their original order. Extra
// entries in the longer slice are ignored.
func (r Region) Filter(xs, ys []float64) (fx, fy []float64) {
	n := min(len(xs), len(ys))
	for i := 0; i < n; i++ {
		if r.Contains(xs[i], ys[i]) {
			fx = append(fx, xs[i])
			fy = append(fy, ys[i])
		}
	}
	return fx, fy
}

func (r Region) String() string {
	return fmt.Sprintf("[%g, %g] x [%g, %g]", r.X0, r.X1, r.Y0, r.Y1)
}
