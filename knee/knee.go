// Package knee locates the transition between the near-field rise and the remote
// plateau of a resistance-versus-distance traverse.
//
// The detector tries every admissible split of the ordered series into two runs,
// fits an independent least-squares line to each run and keeps the split with the
// smallest combined sum of squared errors. The scan is O(n²) in the number of
// readings.
package knee

import (
	"fmt"
	"math"

	"github.com/arloliu/eprcalc/regression"
)

// MinPoints is the smallest series the detector will attempt to split.
const MinPoints = 6

// Status describes the outcome of a detection.
type Status int

const (
	// StatusFound means a split index was selected.
	StatusFound Status = iota
	// StatusInsufficient means fewer than MinPoints readings were supplied.
	StatusInsufficient
	// StatusTooNoisy means no candidate split produced finite fits.
	StatusTooNoisy
)

// String returns a short name for the status.
func (s Status) String() string {
	switch s {
	case StatusFound:
		return "found"
	case StatusInsufficient:
		return "insufficient"
	case StatusTooNoisy:
		return "too noisy"
	default:
		return "unknown"
	}
}

// Result is the outcome of Detect.
//
// When Found is true, Index partitions the series into [0, Index) and [Index, n).
// Index is -1 otherwise.
type Result struct {
	Found  bool
	Index  int
	Status Status
	// SSE is the combined sum of squared errors of the selected split.
	SSE float64
	// Pre and Post are the fits of the two runs. Their R² values are diagnostics
	// only and play no part in choosing the split.
	Pre, Post regression.Fit
	// Detail is a human-readable diagnostic.
	Detail string
}

// Detect finds the split of (dist, r) that minimises the combined SSE of two
// independent line fits.
//
// Candidates k run from 2 to n-3 inclusive so each side keeps at least two points.
// A candidate whose fit on either side has a non-finite intercept is skipped. Only a
// strictly smaller SSE replaces the current best, so on ties the lowest k wins.
//
// dist must be sorted ascending and have the same length as r.
func Detect(dist, r []float64) Result {
	n := len(dist)
	if n < MinPoints {
		return Result{
			Index:  -1,
			Status: StatusInsufficient,
			SSE:    math.NaN(),
			Detail: fmt.Sprintf("Need ≥%d included points for knee detection.", MinPoints),
		}
	}

	best := Result{Index: -1, SSE: math.Inf(1)}
	for k := 2; k <= n-3; k++ {
		pre := regression.Linear(dist[:k], r[:k])
		post := regression.Linear(dist[k:], r[k:])
		if !finite(pre.Intercept) || !finite(post.Intercept) {
			continue
		}

		sse := pre.SSE(dist[:k], r[:k]) + post.SSE(dist[k:], r[k:])
		if sse < best.SSE {
			best = Result{Found: true, Index: k, SSE: sse, Pre: pre, Post: post}
		}
	}

	if !best.Found {
		return Result{
			Index:  -1,
			Status: StatusTooNoisy,
			SSE:    math.NaN(),
			Detail: "Knee detection failed (too noisy).",
		}
	}

	best.Status = StatusFound
	best.Detail = fmt.Sprintf("Split fit (R vs d): R²(pre)=%.2f, R²(post)=%.2f",
		best.Pre.RSquared, best.Post.RSquared)

	return best
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
