// Package interp produces the smooth display curve of a traverse with a
// shape-preserving (Fritsch–Carlson) monotone cubic interpolant.
//
// The curve passes exactly through every knot and never introduces a local maximum or
// minimum that the knots do not already have, so a plotted curve cannot suggest a
// peak the readings do not show.
package interp

import (
	"errors"
	"math"

	gonuminterp "gonum.org/v1/gonum/interp"
)

// DefaultSamplesPerSegment is the sampling density used when none is configured.
const DefaultSamplesPerSegment = 25

var (
	// ErrLengthMismatch is returned when x and y differ in length.
	ErrLengthMismatch = errors.New("interp: x and y differ in length")
	// ErrNonFinite is returned when a knot coordinate is NaN or infinite.
	ErrNonFinite = errors.New("interp: non-finite knot")
	// ErrNotIncreasing is returned when x is not strictly increasing.
	ErrNotIncreasing = errors.New("interp: x is not strictly increasing")
)

// Point is one vertex of the sampled curve.
type Point struct {
	X, Y float64
}

// MonotoneCubic samples the monotone cubic interpolant through (x, y).
//
// Each of the n-1 segments is sampled at samplesPerSeg+1 evenly spaced parameter
// values including both ends, and the runs are concatenated, so a shared knot appears
// once at the end of one run and again at the start of the next. samplesPerSeg below 1
// is treated as 1. Fewer than two knots yield an empty curve; exactly two yield a
// straight line.
func MonotoneCubic(x, y []float64, samplesPerSeg int) ([]Point, error) {
	if err := validate(x, y); err != nil {
		return nil, err
	}

	n := len(x)
	if n < 2 {
		return []Point{}, nil
	}

	spp := max(samplesPerSeg, 1)
	out := make([]Point, 0, (n-1)*(spp+1))

	if n == 2 {
		for j := 0; j < spp; j++ {
			t := float64(j) / float64(spp)
			out = append(out, Point{X: x[0] + t*(x[1]-x[0]), Y: y[0] + t*(y[1]-y[0])})
		}

		return append(out, Point{X: x[1], Y: y[1]}), nil
	}

	var pc gonuminterp.PiecewiseCubic
	pc.FitWithDerivatives(x, y, tangents(x, y))

	for i := range n - 1 {
		h := x[i+1] - x[i]
		for j := 0; j < spp; j++ {
			xs := x[i] + float64(j)/float64(spp)*h
			out = append(out, Point{X: xs, Y: pc.Predict(xs)})
		}
		// emit the closing knot at its exact abscissa so the curve hits it exactly
		out = append(out, Point{X: x[i+1], Y: pc.Predict(x[i+1])})
	}

	return out, nil
}

// Tangents returns the limited Fritsch–Carlson knot derivatives for (x, y).
func Tangents(x, y []float64) ([]float64, error) {
	if err := validate(x, y); err != nil {
		return nil, err
	}
	if len(x) < 2 {
		return []float64{}, nil
	}

	return tangents(x, y), nil
}

// tangents assumes validated input with at least two knots.
func tangents(x, y []float64) []float64 {
	n := len(x)
	h := make([]float64, n-1)
	d := make([]float64, n-1)
	for i := range n - 1 {
		h[i] = x[i+1] - x[i]
		d[i] = (y[i+1] - y[i]) / h[i]
	}

	m := make([]float64, n)
	m[0] = d[0]
	m[n-1] = d[n-2]
	for i := 1; i < n-1; i++ {
		// a direction change or flat neighbour pins the knot as an extremum
		if d[i-1]*d[i] <= 0 {
			m[i] = 0
			continue
		}
		w1 := 2*h[i] + h[i-1]
		w2 := h[i] + 2*h[i-1]
		m[i] = (w1 + w2) / (w1/d[i-1] + w2/d[i])
	}

	for i := range n - 1 {
		if d[i] == 0 {
			m[i] = 0
			m[i+1] = 0

			continue
		}

		alpha := m[i] / d[i]
		beta := m[i+1] / d[i]
		if s := alpha*alpha + beta*beta; s > 9 {
			tau := 3 / math.Sqrt(s)
			m[i] = tau * alpha * d[i]
			m[i+1] = tau * beta * d[i]
		}
	}

	return m
}

func validate(x, y []float64) error {
	if len(x) != len(y) {
		return ErrLengthMismatch
	}
	for i := range x {
		if !finite(x[i]) || !finite(y[i]) {
			return ErrNonFinite
		}
		if i > 0 && x[i] <= x[i-1] {
			return ErrNotIncreasing
		}
	}

	return nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
