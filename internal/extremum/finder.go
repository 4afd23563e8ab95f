// Package extremum locates representative extrema inside a set of sampled
// points. All functions are pure; callers own the slices they pass in.
package extremum

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// machineEpsilon is the spacing between 1.0 and the next float64.
const machineEpsilon = 2.220446049250313e-16

// rangeSlack widens the accepted vertex window by this fraction of the data
// range on each side.
const rangeSlack = 0.025

// FindMax returns the sample with the largest y. When several samples share
// the maximum the lowest index wins. It panics if ys is empty.
func FindMax(xs, ys []float64) (x, y float64) {
	i := floats.MaxIdx(ys)
	return xs[i], ys[i]
}

// FindMin returns the sample with the smallest y. When several samples share
// the minimum the lowest index wins. It panics if ys is empty.
func FindMin(xs, ys []float64) (x, y float64) {
	i := floats.MinIdx(ys)
	return xs[i], ys[i]
}

// FindFit fits y = a·x² + b·x + c through the samples by least squares and
// returns the vertex of the parabola. A single sample is returned unchanged.
//
// ok is false when the system is rank deficient (fewer than three distinct x
// values) or when the vertex lies outside the sample bounds widened by 2.5 %
// of their range on either axis.
func FindFit(xs, ys []float64) (x, y float64, ok bool) {
	if len(xs) == 1 && len(ys) == 1 {
		return xs[0], ys[0], true
	}
	coef, shift, spread, ok := fitQuadratic(xs, ys)
	if !ok {
		return 0, 0, false
	}
	a, b, c := coef[0], coef[1], coef[2]
	u := -b / (2 * a)
	x = shift + spread*u
	y = (a*u+b)*u + c
	if !withinSlack(x, xs) || !withinSlack(y, ys) {
		return 0, 0, false
	}
	return x, y, true
}

// fitQuadratic returns the coefficients (a, b, c) of the least squares
// parabola in u = (x-shift)/spread, where shift is the mean of xs and spread
// their range. The Vandermonde columns are then scaled to unit norm before
// the SVD and the rank cutoff is len(xs)·eps relative to the largest singular
// value.
func fitQuadratic(xs, ys []float64) (coef [3]float64, shift, spread float64, ok bool) {
	n := len(xs)
	if n < 3 || n != len(ys) {
		return coef, 0, 0, false
	}
	shift = floats.Sum(xs) / float64(n)
	spread = floats.Max(xs) - floats.Min(xs)
	if spread == 0 || math.IsInf(spread, 0) || math.IsNaN(spread) {
		return coef, 0, 0, false
	}

	lhs := mat.NewDense(n, 3, nil)
	for i, x := range xs {
		u := (x - shift) / spread
		lhs.Set(i, 0, u*u)
		lhs.Set(i, 1, u)
		lhs.Set(i, 2, 1)
	}

	var scale [3]float64
	col := make([]float64, n)
	for j := range scale {
		mat.Col(col, j, lhs)
		s := floats.Norm(col, 2)
		if s == 0 {
			return coef, 0, 0, false
		}
		scale[j] = s
		floats.Scale(1/s, col)
		lhs.SetCol(j, col)
	}

	var svd mat.SVD
	if !svd.Factorize(lhs, mat.SVDThin) {
		return coef, 0, 0, false
	}
	if svd.Rank(float64(n)*machineEpsilon) < 3 {
		return coef, 0, 0, false
	}

	var sol mat.VecDense
	svd.SolveVecTo(&sol, mat.NewVecDense(n, append([]float64(nil), ys...)), 3)
	for j := range coef {
		coef[j] = sol.AtVec(j) / scale[j]
	}
	return coef, shift, spread, true
}

func withinSlack(v float64, samples []float64) bool {
	lo, hi := floats.Min(samples), floats.Max(samples)
	margin := rangeSlack * (hi - lo)
	return v >= lo-margin && v <= hi+margin
}
