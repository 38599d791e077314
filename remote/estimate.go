package remote

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/arloliu/eprcalc/knee"
	"github.com/arloliu/eprcalc/regression"
)

// MinTail is the smallest tail size SelectTail will use as its minimum.
const MinTail = 3

// ErrUnknownStrategy is returned for a Strategy value or name outside the declared set.
var ErrUnknownStrategy = errors.New("unknown remote estimation strategy")

// Tail is a contiguous suffix [Start, Start+Len) of the ordered included readings.
type Tail struct {
	Start int
	Len   int
	// FromKnee is true when the tail begins at a detected knee.
	FromKnee bool
}

// End returns the exclusive end index of the tail.
func (t Tail) End() int {
	return t.Start + t.Len
}

// SelectTail picks the tail of an n-reading series.
//
// If the knee was found and at least tailMin readings lie at or beyond it, the tail
// starts at the knee. Otherwise it is the last tailMin readings, or all n when the
// series is shorter. tailMin below MinTail is raised to MinTail.
func SelectTail(n int, k knee.Result, tailMin int) Tail {
	tailMin = max(tailMin, MinTail)
	if k.Found && k.Index >= 0 && n-k.Index >= tailMin {
		return Tail{Start: k.Index, Len: n - k.Index, FromKnee: true}
	}

	start := max(n-tailMin, 0)

	return Tail{Start: start, Len: n - start}
}

// Result is a V∞ estimate with its justification.
type Result struct {
	Strategy Strategy
	// VInf is the estimated remote-earth voltage in the units of the input voltages.
	VInf float64
	// Points is the number of readings the estimate used.
	Points int
	// RSquared is the fit quality for Extrapolate and NaN for the other strategies.
	RSquared float64
	// Model is the fitted hyperbola for Extrapolate, nil otherwise.
	Model  *regression.Model
	Detail string
}

// Estimate runs strategy s over the ordered readings (dist, volts).
//
// tail is used only by Extrapolate; nLast only by AverageLastN. The only error is
// ErrUnknownStrategy. Degenerate input yields NaN estimates, never an error.
func Estimate(s Strategy, dist, volts []float64, tail Tail, nLast int) (Result, error) {
	switch s {
	case Extrapolate:
		return ExtrapolateTail(dist, volts, tail), nil
	case AverageLastN:
		return AverageLast(volts, nLast), nil
	case LastPoint:
		return Last(dist, volts), nil
	default:
		return Result{}, fmt.Errorf("%w: %d", ErrUnknownStrategy, int(s))
	}
}

// ExtrapolateTail fits V = a + b/d over the tail and returns a as V∞.
//
// The tail is clipped to the bounds of the series. A zero distance in the tail makes
// the fit NaN, which is returned as is.
func ExtrapolateTail(dist, volts []float64, tail Tail) Result {
	n := min(len(dist), len(volts))
	start := min(max(tail.Start, 0), n)
	end := min(max(tail.End(), start), n)
	ds := dist[start:end]
	vs := volts[start:end]

	res := Result{Strategy: Extrapolate, Points: len(ds)}
	if len(ds) == 0 {
		res.VInf = math.NaN()
		res.RSquared = math.NaN()
		res.Detail = "Extrapolation needs at least one tail point."

		return res
	}

	model := regression.FitHyperbolic(ds, vs)
	res.Model = model
	res.VInf = model.Estimator.Limit()
	res.RSquared = model.RSquared

	origin := fmt.Sprintf("last %d points", len(ds))
	if tail.FromKnee {
		origin = fmt.Sprintf("%d points from knee at %.1f m", len(ds), ds[0])
	}
	res.Detail = fmt.Sprintf("Extrapolated V vs 1/d over %s: V∞ = %.4f V, R²=%.3f",
		origin, res.VInf, res.RSquared)

	return res
}

// AverageLast returns the mean of the last nLast voltages of the full series.
func AverageLast(volts []float64, nLast int) Result {
	count := min(max(nLast, 0), len(volts))

	res := Result{Strategy: AverageLastN, Points: count, RSquared: math.NaN()}
	if count == 0 {
		res.VInf = math.NaN()
		res.Detail = "Averaging needs at least one point."

		return res
	}

	res.VInf = stat.Mean(volts[len(volts)-count:], nil)
	res.Detail = fmt.Sprintf("Average of last %d of %d points: V∞ = %.4f V", count, len(volts), res.VInf)

	return res
}

// Last returns the voltage of the farthest reading.
func Last(dist, volts []float64) Result {
	res := Result{Strategy: LastPoint, RSquared: math.NaN()}
	if len(volts) == 0 {
		res.VInf = math.NaN()
		res.Detail = "No points available."

		return res
	}

	i := len(volts) - 1
	res.Points = 1
	res.VInf = volts[i]
	if i < len(dist) {
		res.Detail = fmt.Sprintf("Last point at %.1f m of %d points: V∞ = %.4f V", dist[i], len(volts), res.VInf)
	} else {
		res.Detail = fmt.Sprintf("Last of %d points: V∞ = %.4f V", len(volts), res.VInf)
	}

	return res
}
