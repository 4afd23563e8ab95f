package extremum

import (
	"reflect"
	"testing"
)

func TestNewRegionNormalisesCorners(t *testing.T) {
	r := NewRegion(Point{X: 3, Y: -1}, Point{X: 1, Y: 4})
	want := Region{X0: 1, X1: 3, Y0: -1, Y1: 4}
	if r != want {
		t.Fatalf("NewRegion = %+v, want %+v", r, want)
	}
}

func TestRegionFilterInclusive(t *testing.T) {
	xs := []float64{0, 1, 2, 3, 4}
	ys := []float64{5, 1, 2, 6, 2}
	r := NewRegion(Point{X: 1, Y: 1}, Point{X: 4, Y: 2})
	fx, fy := r.Filter(xs, ys)
	if !reflect.DeepEqual(fx, []float64{1, 2, 4}) || !reflect.DeepEqual(fy, []float64{1, 2, 2}) {
		t.Fatalf("Filter = %v, %v", fx, fy)
	}
}

func TestRegionFilterEmpty(t *testing.T) {
	r := NewRegion(Point{X: 10, Y: 10}, Point{X: 11, Y: 11})
	fx, fy := r.Filter([]float64{1, 2}, []float64{1, 2})
	if len(fx) != 0 || len(fy) != 0 {
		t.Fatalf("expected empty subset, got %v, %v", fx, fy)
	}
}
