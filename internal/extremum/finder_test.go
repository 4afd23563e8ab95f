package extremum

import (
	"math"
	"testing"
)

func nearlyEqual(a, b, eps float64) bool {
	return math.Abs(a-b) <= eps
}

func TestFindMaxFirstOccurrence(t *testing.T) {
	xs := []float64{1, 2, 3, 4, 5}
	ys := []float64{0, 7, 3, 7, 1}
	x, y := FindMax(xs, ys)
	if x != 2 || y != 7 {
		t.Fatalf("FindMax = (%v, %v), want (2, 7)", x, y)
	}
}

func TestFindMinFirstOccurrence(t *testing.T) {
	xs := []float64{1, 2, 3, 4, 5}
	ys := []float64{4, -1, 3, -1, 1}
	x, y := FindMin(xs, ys)
	if x != 2 || y != -1 {
		t.Fatalf("FindMin = (%v, %v), want (2, -1)", x, y)
	}
}

func TestFindMaxMinBoundEverySample(t *testing.T) {
	xs := make([]float64, 50)
	ys := make([]float64, 50)
	for i := range xs {
		xs[i] = float64(i) * 0.1
		ys[i] = math.Sin(xs[i]*3) + 0.2*math.Cos(xs[i]*11)
	}
	_, ymax := FindMax(xs, ys)
	_, ymin := FindMin(xs, ys)
	for i, v := range ys {
		if v > ymax {
			t.Fatalf("sample %d = %v above max %v", i, v, ymax)
		}
		if v < ymin {
			t.Fatalf("sample %d = %v below min %v", i, v, ymin)
		}
	}
}

func TestFindFitSinglePoint(t *testing.T) {
	x, y, ok := FindFit([]float64{3.5}, []float64{-2})
	if !ok || x != 3.5 || y != -2 {
		t.Fatalf("FindFit single = (%v, %v, %v), want (3.5, -2, true)", x, y, ok)
	}
}

func TestFindFitThreePointParabola(t *testing.T) {
	x, y, ok := FindFit([]float64{0, 1, 2}, []float64{0, 1, 0})
	if !ok {
		t.Fatal("expected a vertex")
	}
	if !nearlyEqual(x, 1, 1e-9) || !nearlyEqual(y, 1, 1e-9) {
		t.Fatalf("vertex = (%v, %v), want (1, 1)", x, y)
	}
}

func TestFindFitKnownParabola(t *testing.T) {
	tests := []struct {
		name    string
		a, b, c float64
		lo, hi  float64
	}{
		{name: "peak", a: -2, b: 1.2, c: 3, lo: -2, hi: 2},
		{name: "trough", a: 0.5, b: -3, c: 1, lo: 0, hi: 6},
		{name: "narrow", a: -1e3, b: 2e3, c: 5, lo: 0.9, hi: 1.1},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var xs, ys []float64
			const n = 81
			for i := 0; i < n; i++ {
				x := tc.lo + (tc.hi-tc.lo)*float64(i)/(n-1)
				xs = append(xs, x)
				ys = append(ys, tc.a*x*x+tc.b*x+tc.c)
			}
			wantX := -tc.b / (2 * tc.a)
			wantY := tc.a*wantX*wantX + tc.b*wantX + tc.c
			x, y, ok := FindFit(xs, ys)
			if !ok {
				t.Fatalf("expected vertex near (%v, %v)", wantX, wantY)
			}
			if !nearlyEqual(x, wantX, 1e-8) || !nearlyEqual(y, wantY, 1e-8*math.Max(1, math.Abs(wantY))) {
				t.Fatalf("vertex = (%v, %v), want (%v, %v)", x, y, wantX, wantY)
			}
		})
	}
}

func TestFindFitRankDeficient(t *testing.T) {
	tests := []struct {
		name   string
		xs, ys []float64
	}{
		{name: "same x", xs: []float64{2, 2, 2, 2}, ys: []float64{1, 3, 2, 5}},
		{name: "two distinct x", xs: []float64{1, 1, 3, 3}, ys: []float64{0, 1, 4, 5}},
		{name: "two points", xs: []float64{0, 1}, ys: []float64{0, 1}},
		{name: "zero column", xs: []float64{0, 0, 0}, ys: []float64{1, 2, 3}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if x, y, ok := FindFit(tc.xs, tc.ys); ok {
				t.Fatalf("expected no result, got (%v, %v)", x, y)
			}
		})
	}
}

func TestFindFitCollinear(t *testing.T) {
	xs := []float64{0, 1, 2, 3, 4}
	ys := []float64{1, 3, 5, 7, 9}
	if x, y, ok := FindFit(xs, ys); ok {
		t.Fatalf("collinear samples produced vertex (%v, %v)", x, y)
	}
}

func TestFindFitRejectsVertexOutsideWindow(t *testing.T) {
	// Rising branch of y = -(x-10)^2: the vertex at x=10 is far right of the
	// samples in [0, 4].
	var xs, ys []float64
	for i := 0; i <= 8; i++ {
		x := float64(i) * 0.5
		xs = append(xs, x)
		ys = append(ys, -(x-10)*(x-10))
	}
	if x, y, ok := FindFit(xs, ys); ok {
		t.Fatalf("expected rejection, got (%v, %v)", x, y)
	}
}

func TestFindFitAcceptsVertexWithinSlack(t *testing.T) {
	// Vertex at x=4.05 lies 1.25 % of the [0, 4] range beyond the last sample.
	var xs, ys []float64
	for i := 0; i <= 40; i++ {
		x := float64(i) * 0.1
		xs = append(xs, x)
		ys = append(ys, -(x-4.05)*(x-4.05))
	}
	x, _, ok := FindFit(xs, ys)
	if !ok {
		t.Fatal("expected vertex inside the widened window")
	}
	if !nearlyEqual(x, 4.05, 1e-8) {
		t.Fatalf("vertex x = %v, want 4.05", x)
	}
}

func TestFindFitOffsetAbscissa(t *testing.T) {
	for _, off := range []float64{1e6, 1e7, 1e8} {
		var xs, ys []float64
		for i := 0; i <= 20; i++ {
			x := off + float64(i)*0.1
			xs = append(xs, x)
			d := x - (off + 1)
			ys = append(ys, 5-d*d)
		}
		x, y, ok := FindFit(xs, ys)
		if !ok {
			t.Fatalf("offset %g: expected vertex near (%v, 5)", off, off+1)
		}
		if !nearlyEqual(x-off, 1, 1e-6) || !nearlyEqual(y, 5, 1e-6) {
			t.Fatalf("offset %g: vertex = (%v, %v), want (%v, 5)", off, x-off, y, 1.0)
		}
	}
}

func TestFindFitRejectsVertexAboveWindow(t *testing.T) {
	// The fitted vertex sits at x=1.5, inside the samples, but y=1.125 is
	// above the widened limit of 1.025.
	xs := []float64{0, 1, 2, 3}
	ys := []float64{0, 1, 1, 0}
	if x, y, ok := FindFit(xs, ys); ok {
		t.Fatalf("expected rejection, got (%v, %v)", x, y)
	}
}
