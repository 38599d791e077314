package knee

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDetectKnownBreakpoint(t *testing.T) {
	// rising run y = x for the first four points, flat y = 10 afterwards
	dist := []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}
	r := []float64{1, 2, 3, 4, 10, 10, 10, 10, 10, 10}

	res := Detect(dist, r)
	require.True(t, res.Found)
	require.Equal(t, StatusFound, res.Status)
	require.Equal(t, 4, res.Index)
	require.InDelta(t, 0, res.SSE, 1e-20)
	require.InDelta(t, 1, res.Pre.Slope, 1e-12)
	require.InDelta(t, 0, res.Post.Slope, 1e-12)
	require.Equal(t, "Split fit (R vs d): R²(pre)=1.00, R²(post)=1.00", res.Detail)
}

func TestDetectBreakpointPositions(t *testing.T) {
	for _, k := range []int{2, 3, 5, 7} {
		dist := make([]float64, 10)
		r := make([]float64, 10)
		for i := range dist {
			dist[i] = float64(i + 1)
			if i < k {
				r[i] = 3 * dist[i]
			} else {
				r[i] = 40 - 0.5*dist[i]
			}
		}

		res := Detect(dist, r)
		require.True(t, res.Found)
		require.Equal(t, k, res.Index, "breakpoint at %d", k)
	}
}

func TestDetectTieKeepsEarliestSplit(t *testing.T) {
	// one exact line: every split fits with zero error
	dist := []float64{1, 2, 3, 4, 5, 6, 7, 8}
	r := []float64{2, 4, 6, 8, 10, 12, 14, 16}

	res := Detect(dist, r)
	require.True(t, res.Found)
	require.Equal(t, 2, res.Index)
	require.Equal(t, 0.0, res.SSE)
}

func TestDetectInsufficient(t *testing.T) {
	for n := range MinPoints {
		dist := make([]float64, n)
		r := make([]float64, n)
		for i := range n {
			dist[i] = float64(i)
			r[i] = float64(i)
		}

		res := Detect(dist, r)
		require.False(t, res.Found)
		require.Equal(t, -1, res.Index)
		require.Equal(t, StatusInsufficient, res.Status)
		require.Contains(t, res.Detail, "Need ≥6")
		require.True(t, math.IsNaN(res.SSE))
	}
}

func TestDetectTooNoisy(t *testing.T) {
	// identical distances make every side's slope NaN
	dist := []float64{5, 5, 5, 5, 5, 5, 5}
	r := []float64{1, 2, 3, 4, 5, 6, 7}

	res := Detect(dist, r)
	require.False(t, res.Found)
	require.Equal(t, -1, res.Index)
	require.Equal(t, StatusTooNoisy, res.Status)
	require.Equal(t, "Knee detection failed (too noisy).", res.Detail)
}

func TestDetectSkipsDegenerateCandidates(t *testing.T) {
	// the first two distances coincide, so k=2 has a NaN pre-fit and must be skipped
	dist := []float64{1, 1, 2, 3, 4, 5, 6, 7}
	r := []float64{1, 1.5, 2, 3, 4, 4, 4, 4}

	res := Detect(dist, r)
	require.True(t, res.Found)
	require.Greater(t, res.Index, 2)
	require.LessOrEqual(t, res.Index, len(dist)-3)
}

func TestStatusString(t *testing.T) {
	require.Equal(t, "found", StatusFound.String())
	require.Equal(t, "insufficient", StatusInsufficient.String())
	require.Equal(t, "too noisy", StatusTooNoisy.String())
	require.Equal(t, "unknown", Status(42).String())
}

func BenchmarkDetect(b *testing.B) {
	const n = 150
	dist := make([]float64, n)
	r := make([]float64, n)
	for i := range n {
		dist[i] = float64(i+1) * 2.5
		r[i] = 0.22 - 0.6/dist[i] + 0.001*math.Sin(float64(i))
	}

	for b.Loop() {
		_ = Detect(dist, r)
	}
}
