package regression

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"
)

// Fit is the result of an ordinary least-squares line fit y = Intercept + Slope*x.
type Fit struct {
	// Intercept is a in y = a + b*x.
	Intercept float64
	// Slope is b in y = a + b*x. NaN when x has zero variance.
	Slope float64
	// RSquared is 1 - SSE/Syy, or exactly 1 when y has zero variance.
	RSquared float64
	// N is the number of points fitted.
	N int
}

// Linear fits y = a + b*x by ordinary least squares.
//
// The sums are mean-centred: b = Sxy/Sxx and a = mean(y) - b*mean(x). Sxx == 0 yields
// a NaN slope (and therefore a NaN intercept); Syy == 0 yields R² == 1.
//
// Linear panics if x and y differ in length.
func Linear(x, y []float64) Fit {
	if len(x) != len(y) {
		panic(fmt.Sprintf("regression: slice length mismatch: %d x vs %d y", len(x), len(y)))
	}

	n := len(x)
	xMean := stat.Mean(x, nil)
	yMean := stat.Mean(y, nil)

	var sxx, sxy, syy float64
	for i := range n {
		dx := x[i] - xMean
		dy := y[i] - yMean
		sxx += dx * dx
		sxy += dx * dy
		syy += dy * dy
	}

	slope := math.NaN()
	if sxx != 0 {
		slope = sxy / sxx
	}
	intercept := yMean - slope*xMean

	fit := Fit{Intercept: intercept, Slope: slope, N: n}

	fit.RSquared = 1
	if syy != 0 {
		fit.RSquared = 1 - fit.SSE(x, y)/syy
	}

	return fit
}

// Predict evaluates the fitted line at x.
func (f Fit) Predict(x float64) float64 {
	return f.Intercept + f.Slope*x
}

// SSE returns the sum of squared residuals of the line over (x, y).
func (f Fit) SSE(x, y []float64) float64 {
	var sse float64
	for i := range x {
		r := y[i] - f.Predict(x[i])
		sse += r * r
	}

	return sse
}

// Finite reports whether both coefficients are finite.
func (f Fit) Finite() bool {
	return isFinite(f.Intercept) && isFinite(f.Slope)
}

// Model wraps the fit as a linear Model.
func (f Fit) Model(x, y []float64) *Model {
	return &Model{
		Type:         ModelTypeLinear,
		Coefficients: []float64{f.Intercept, f.Slope},
		RSquared:     f.RSquared,
		RMSE:         rmse(f.SSE(x, y), len(x)),
		Formula:      fmt.Sprintf("y = %.4f + %.4f * x", f.Intercept, f.Slope),
		Estimator:    NewLinearEstimator(f.Intercept, f.Slope),
	}
}

// FitHyperbolic fits y = a + b/x by regressing y on 1/x.
//
// A zero x maps to an infinite regressor and poisons the fit with NaN; the result is
// returned as is so the caller can surface it.
func FitHyperbolic(x, y []float64) *Model {
	inv := make([]float64, len(x))
	for i, xi := range x {
		inv[i] = 1 / xi
	}

	f := Linear(inv, y)

	return &Model{
		Type:         ModelTypeHyperbolic,
		Coefficients: []float64{f.Intercept, f.Slope},
		RSquared:     f.RSquared,
		RMSE:         rmse(f.SSE(inv, y), len(x)),
		Formula:      fmt.Sprintf("y = %.4f + %.4f / x", f.Intercept, f.Slope),
		Estimator:    NewHyperbolicEstimator(f.Intercept, f.Slope),
	}
}

// rmse converts a residual sum of squares into a root mean square error.
func rmse(sse float64, n int) float64 {
	if n == 0 {
		return 0
	}

	return math.Sqrt(sse / float64(n))
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
