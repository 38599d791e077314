// Package eprcalc evaluates fall-of-potential earth tests.
//
// A traverse of probe readings (distance from the test electrode, probe voltage) is
// turned into a ground resistance, an estimate of the remote-earth voltage V∞, the
// knee between near-field and remote behaviour, a stability verdict on the far
// readings, and a smooth display curve.
//
// # Basic Usage
//
//	snap := survey.NewSnapshot([]survey.Sample{
//	    {ID: "p1", Distance: 0.1, VoltageMV: 141},
//	    {ID: "p2", Distance: 1, VoltageMV: 151},
//	    // ...
//	}, nil)
//
//	res, err := eprcalc.Evaluate(snap, eprcalc.Instrument{
//	    TestCurrent:  1,
//	    FaultCurrent: 5000,
//	    SafetyFactor: 1.2,
//	})
//	if err != nil {
//	    return err
//	}
//	fmt.Printf("Rg = %.3f Ω, EPR = %.0f V (%s)\n", res.Rg, res.EPRScaled, res.Plateau.Status)
//
// # Package Structure
//
// This package wires the analysis packages together. Each stage is usable on its own:
// geo for haversine distances, regression for least-squares fits, knee for the
// breakpoint search, plateau for the tail classifier, remote for the V∞ strategies,
// interp for the monotone display curve and survey for the input snapshot.
package eprcalc

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/arloliu/eprcalc/internal/pool"
	"github.com/arloliu/eprcalc/interp"
	"github.com/arloliu/eprcalc/knee"
	"github.com/arloliu/eprcalc/plateau"
	"github.com/arloliu/eprcalc/remote"
	"github.com/arloliu/eprcalc/survey"
)

// ErrInvalidTestCurrent is returned when the injected test current is not a positive
// finite number. No result is produced in that case.
var ErrInvalidTestCurrent = errors.New("invalid test current")

// Instrument holds the electrical constants of a test.
type Instrument struct {
	// TestCurrent is the injected current in amperes. It must be positive.
	TestCurrent float64
	// FaultCurrent is the prospective earth fault current in amperes.
	FaultCurrent float64
	// SafetyFactor is a dimensionless multiplier on the scaled EPR.
	SafetyFactor float64
}

// Validate reports ErrInvalidTestCurrent for a zero, negative or non-finite test
// current.
func (i Instrument) Validate() error {
	if math.IsNaN(i.TestCurrent) || math.IsInf(i.TestCurrent, 0) || i.TestCurrent <= 0 {
		return ErrInvalidTestCurrent
	}

	return nil
}

// Scale returns (FaultCurrent / TestCurrent) × SafetyFactor.
func (i Instrument) Scale() float64 {
	return i.FaultCurrent / i.TestCurrent * i.SafetyFactor
}

// Result is the outcome of one evaluation.
type Result struct {
	// Fingerprint identifies the snapshot the result was computed from.
	Fingerprint uint64
	// Points is the number of included readings.
	Points int

	Knee knee.Result
	// KneeDistance is the distance of the knee reading in metres, NaN without a knee.
	KneeDistance float64

	Tail   remote.Tail
	Remote remote.Result

	// VInf is the estimated remote-earth voltage in volts.
	VInf float64
	// Rg is the ground resistance VInf / TestCurrent in ohms.
	Rg float64
	// Scale is (FaultCurrent / TestCurrent) × SafetyFactor.
	Scale float64
	// EPRScaled is the earth potential rise at fault current, VInf × Scale, in volts.
	EPRScaled float64

	Plateau plateau.Result
}

// Evaluate runs the full analysis on the included readings of snap.
//
// Voltages are converted to volts and divided by the test current to give the
// per-reading resistance used by the knee and plateau stages. The knee selects the
// extrapolation tail, the configured strategy estimates V∞, and the plateau classifier
// runs on the whole series independently of the knee.
//
// The only errors are ErrInvalidTestCurrent and option errors. Too few readings or
// degenerate fits are reported through the statuses and NaN values of the result.
func Evaluate(snap survey.Snapshot, inst Instrument, opts ...Option) (*Result, error) {
	if err := inst.Validate(); err != nil {
		return nil, err
	}

	cfg, err := NewConfig(opts...)
	if err != nil {
		return nil, err
	}

	dist, mv := snap.Included()
	volts := make([]float64, len(mv))
	r, release := pool.GetFloat64Slice(len(mv))
	defer release()
	for i, v := range mv {
		volts[i] = v / 1000
		r[i] = volts[i] / inst.TestCurrent
	}

	res := &Result{
		Fingerprint:  snap.Fingerprint(),
		Points:       len(dist),
		KneeDistance: math.NaN(),
	}

	res.Knee = knee.Detect(dist, r)
	if res.Knee.Found {
		res.KneeDistance = dist[res.Knee.Index]
	}

	res.Tail = remote.SelectTail(len(dist), res.Knee, cfg.tailMin)
	res.Remote, err = remote.Estimate(cfg.strategy, dist, volts, res.Tail, cfg.plateauWindow)
	if err != nil {
		return nil, err
	}

	res.VInf = res.Remote.VInf
	res.Rg = res.VInf / inst.TestCurrent
	res.Scale = inst.Scale()
	res.EPRScaled = res.VInf * res.Scale

	res.Plateau = plateau.Classify(dist, r, cfg.plateauWindow)

	return res, nil
}

// Curve returns the monotone display curve through the included readings as
// (distance m, voltage mV) points.
//
// Readings that share a distance are merged into one knot at their mean voltage.
func Curve(snap survey.Snapshot, opts ...Option) ([]interp.Point, error) {
	cfg, err := NewConfig(opts...)
	if err != nil {
		return nil, err
	}

	dist, mv := snap.Included()
	x, y := mergeEqualDistances(dist, mv)

	return interp.MonotoneCubic(x, y, cfg.samplesPerSegment)
}

// mergeEqualDistances collapses runs of equal x in sorted input to their mean y.
func mergeEqualDistances(dist, mv []float64) (x, y []float64) {
	x = make([]float64, 0, len(dist))
	y = make([]float64, 0, len(mv))
	for i := 0; i < len(dist); {
		j := i + 1
		for j < len(dist) && dist[j] == dist[i] {
			j++
		}
		x = append(x, dist[i])
		y = append(y, stat.Mean(mv[i:j], nil))
		i = j
	}

	return x, y
}
