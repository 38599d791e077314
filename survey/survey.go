// Package survey holds the readings of one fall-of-potential traverse.
//
// A Snapshot is built once per evaluation from the raw rows and an optional GPS
// reference. Building it applies geodesic distance correction, drops unusable rows and
// orders the rest by distance, so every derived result is computed from the same
// consistent view of the data.
package survey

import (
	"cmp"
	"math"
	"slices"

	"github.com/paulmach/orb"

	"github.com/arloliu/eprcalc/geo"
	"github.com/arloliu/eprcalc/internal/hash"
)

// Sample is one probe reading.
type Sample struct {
	ID string
	// Distance from the test electrode in metres.
	Distance float64
	// VoltageMV is the probe voltage in millivolts.
	VoltageMV float64
	// Excluded readings stay in the snapshot but are left out of every computation.
	Excluded bool
	// Position is the probe location, nil when unknown.
	Position *orb.Point
	// PositionDerived marks a row whose distance comes from its position rather than
	// a tape measurement.
	PositionDerived bool
}

func (s Sample) clone() Sample {
	if s.Position != nil {
		p := *s.Position
		s.Position = &p
	}

	return s
}

// Snapshot is an immutable, distance-ordered view of a traverse.
type Snapshot struct {
	samples   []Sample
	reference *orb.Point
	dropped   int
}

// NewSnapshot builds a snapshot from samples and an optional reference point.
//
// When ref has finite coordinates, every position-derived sample with a finite
// position gets its distance replaced by the geodesic distance to ref. Manually
// entered distances are kept. Samples whose distance or voltage is then NaN or
// infinite are dropped. The rest are sorted by ascending distance, ties keeping
// their input order. The input slice is not modified.
func NewSnapshot(samples []Sample, ref *orb.Point) Snapshot {
	snap := Snapshot{samples: make([]Sample, 0, len(samples))}

	useRef := ref != nil && geo.Finite(*ref)
	if useRef {
		p := *ref
		snap.reference = &p
	}

	for _, s := range samples {
		s = s.clone()
		if useRef && s.PositionDerived && s.Position != nil && geo.Finite(*s.Position) {
			s.Distance = geo.Distance(*snap.reference, *s.Position)
		}
		if !finite(s.Distance) || !finite(s.VoltageMV) {
			snap.dropped++
			continue
		}
		snap.samples = append(snap.samples, s)
	}

	slices.SortStableFunc(snap.samples, func(a, b Sample) int {
		return cmp.Compare(a.Distance, b.Distance)
	})

	return snap
}

// Len returns the number of retained samples, excluded ones included.
func (s Snapshot) Len() int {
	return len(s.samples)
}

// Dropped returns how many input rows were discarded for non-finite values.
func (s Snapshot) Dropped() int {
	return s.dropped
}

// Reference returns the reference point used for distance correction.
func (s Snapshot) Reference() (orb.Point, bool) {
	if s.reference == nil {
		return orb.Point{}, false
	}

	return *s.reference, true
}

// Samples returns a copy of the retained samples in canonical order.
func (s Snapshot) Samples() []Sample {
	out := make([]Sample, len(s.samples))
	for i, smp := range s.samples {
		out[i] = smp.clone()
	}

	return out
}

// Included returns the distances (m) and voltages (mV) of the non-excluded samples
// as parallel slices in canonical order.
func (s Snapshot) Included() (dist, mv []float64) {
	dist = make([]float64, 0, len(s.samples))
	mv = make([]float64, 0, len(s.samples))
	for _, smp := range s.samples {
		if smp.Excluded {
			continue
		}
		dist = append(dist, smp.Distance)
		mv = append(mv, smp.VoltageMV)
	}

	return dist, mv
}

// Fingerprint returns an xxHash64 digest of the retained samples.
//
// Two snapshots with the same samples in the same order, including IDs and exclusion
// flags, share a fingerprint.
func (s Snapshot) Fingerprint() uint64 {
	f := hash.NewFingerprint()
	for _, smp := range s.samples {
		f.String(smp.ID).Float(smp.Distance).Float(smp.VoltageMV).Bool(smp.Excluded)
	}

	return f.Sum64()
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
