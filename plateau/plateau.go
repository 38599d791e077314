// Package plateau classifies how flat the far end of a resistance traverse is.
//
// A stable plateau in resistance versus distance is the field sign that the potential
// probe has reached remote earth. The classifier looks at the last few included
// readings and measures their spread (range as a percentage of the mean) and their
// trend (regression slope as a percentage of the mean per 100 m).
package plateau

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/arloliu/eprcalc/regression"
)

// MinWindow is the smallest window that can be classified.
const MinWindow = 3

// Classification thresholds, in percent and percent per 100 m.
const (
	PlateauRangePct   = 8.0
	PlateauSlopePct   = 5.0
	BorderlineRange   = 15.0
	BorderlineSlope   = 10.0
	slopeScalePer100m = 100 * 100
)

// Status is the stability verdict for the window.
type Status int

const (
	// StatusInsufficient means fewer than MinWindow readings were available.
	StatusInsufficient Status = iota
	// StatusLikelyPlateau means the tail is flat and tight.
	StatusLikelyPlateau
	// StatusBorderline means the tail is close to flat.
	StatusBorderline
	// StatusUnstable means the tail still moves; the probe is not far enough out.
	StatusUnstable
)

// String returns the label shown to the operator.
func (s Status) String() string {
	switch s {
	case StatusInsufficient:
		return "Insufficient"
	case StatusLikelyPlateau:
		return "Likely plateau"
	case StatusBorderline:
		return "Borderline"
	case StatusUnstable:
		return "Unstable / not far enough"
	default:
		return "Unknown"
	}
}

// Severity ranks a status for display badges.
type Severity int

const (
	SeverityGood Severity = iota
	SeverityWarn
	SeverityBad
)

// String returns good, warn or bad.
func (s Severity) String() string {
	switch s {
	case SeverityGood:
		return "good"
	case SeverityWarn:
		return "warn"
	default:
		return "bad"
	}
}

// Severity returns the display severity of the status.
func (s Status) Severity() Severity {
	switch s {
	case StatusLikelyPlateau:
		return SeverityGood
	case StatusInsufficient, StatusBorderline:
		return SeverityWarn
	default:
		return SeverityBad
	}
}

// Result is the outcome of Classify.
type Result struct {
	Status Status
	// Window is the number of readings actually evaluated.
	Window int
	// RangePct is (max-min)/mean*100 over the window. +Inf when the mean is zero.
	RangePct float64
	// SlopePctPer100m is the regression slope of r against distance, relative to the
	// mean, in percent per 100 m. +Inf when the mean is zero.
	SlopePctPer100m float64
	Detail          string
}

// Classify evaluates the last window readings of (dist, r).
//
// The effective window is min(window, len(r)). Checks run in order: fewer than
// MinWindow readings is Insufficient; range ≤ 8% with |slope| ≤ 5%/100m is a likely
// plateau; range ≤ 15% with |slope| ≤ 10%/100m is borderline; anything else, NaN
// included, is unstable.
func Classify(dist, r []float64, window int) Result {
	n := min(window, len(r))
	if n < MinWindow {
		return Result{
			Status:          StatusInsufficient,
			Window:          max(n, 0),
			RangePct:        math.NaN(),
			SlopePctPer100m: math.NaN(),
			Detail:          fmt.Sprintf("Need ≥%d points.", MinWindow),
		}
	}

	rs := r[len(r)-n:]
	ds := dist[len(dist)-n:]

	mean := stat.Mean(rs, nil)
	rangePct := math.Inf(1)
	slopePct := math.Inf(1)
	if mean != 0 {
		rangePct = (floats.Max(rs) - floats.Min(rs)) / mean * 100
		slopePct = regression.Linear(ds, rs).Slope / mean * slopeScalePer100m
	}

	res := Result{
		Window:          n,
		RangePct:        rangePct,
		SlopePctPer100m: slopePct,
		Detail:          fmt.Sprintf("Last %d: range %.1f%%, slope %.1f%%/100m.", n, rangePct, slopePct),
	}

	switch {
	case rangePct <= PlateauRangePct && math.Abs(slopePct) <= PlateauSlopePct:
		res.Status = StatusLikelyPlateau
	case rangePct <= BorderlineRange && math.Abs(slopePct) <= BorderlineSlope:
		res.Status = StatusBorderline
	default:
		res.Status = StatusUnstable
	}

	return res
}
