package regression

import "math"

// ModelType identifies a regression model family.
type ModelType int

const (
	// ModelTypeLinear is y = a + b*x.
	ModelTypeLinear ModelType = iota
	// ModelTypeHyperbolic is y = a + b/x.
	ModelTypeHyperbolic
)

// String returns the lower-case name of the model type.
func (mt ModelType) String() string {
	switch mt {
	case ModelTypeLinear:
		return "linear"
	case ModelTypeHyperbolic:
		return "hyperbolic"
	default:
		return "unknown"
	}
}

// Estimator evaluates a fitted model.
type Estimator interface {
	// Estimate returns the model value at x.
	Estimate(x float64) float64
	// Limit returns the value the model approaches as x grows without bound.
	Limit() float64
	// Type returns the model type.
	Type() ModelType
	// Coefficients returns a copy of the model coefficients [a, b].
	Coefficients() []float64
}

// LinearEstimator implements y = a + b*x.
type LinearEstimator struct {
	a, b float64
}

var _ Estimator = (*LinearEstimator)(nil)

// NewLinearEstimator creates a linear estimator with intercept a and slope b.
func NewLinearEstimator(a, b float64) *LinearEstimator {
	return &LinearEstimator{a: a, b: b}
}

// Estimate returns a + b*x.
func (l *LinearEstimator) Estimate(x float64) float64 {
	return l.a + l.b*x
}

// Limit returns a signed infinity for a sloped line, a for a flat one and NaN when
// the slope is NaN.
func (l *LinearEstimator) Limit() float64 {
	switch {
	case l.b > 0:
		return math.Inf(1)
	case l.b < 0:
		return math.Inf(-1)
	case l.b == 0:
		return l.a
	default:
		return math.NaN()
	}
}

// Type returns ModelTypeLinear.
func (l *LinearEstimator) Type() ModelType {
	return ModelTypeLinear
}

// Coefficients returns [a, b].
func (l *LinearEstimator) Coefficients() []float64 {
	return []float64{l.a, l.b}
}

// HyperbolicEstimator implements y = a + b/x.
type HyperbolicEstimator struct {
	a, b float64
}

var _ Estimator = (*HyperbolicEstimator)(nil)

// NewHyperbolicEstimator creates a hyperbolic estimator with coefficients a and b.
func NewHyperbolicEstimator(a, b float64) *HyperbolicEstimator {
	return &HyperbolicEstimator{a: a, b: b}
}

// Estimate returns a + b/x. At x == 0 the result follows IEEE-754 division.
func (h *HyperbolicEstimator) Estimate(x float64) float64 {
	return h.a + h.b/x
}

// Limit returns a, the asymptote as x tends to infinity.
func (h *HyperbolicEstimator) Limit() float64 {
	return h.a
}

// Type returns ModelTypeHyperbolic.
func (h *HyperbolicEstimator) Type() ModelType {
	return ModelTypeHyperbolic
}

// Coefficients returns [a, b].
func (h *HyperbolicEstimator) Coefficients() []float64 {
	return []float64{h.a, h.b}
}
