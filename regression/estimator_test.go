package regression

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestModelTypeString(t *testing.T) {
	tests := []struct {
		modelType ModelType
		expected  string
	}{
		{ModelTypeLinear, "linear"},
		{ModelTypeHyperbolic, "hyperbolic"},
		{ModelType(99), "unknown"},
	}

	for _, tt := range tests {
		require.Equal(t, tt.expected, tt.modelType.String())
	}
}

func TestEstimatorImplementations(t *testing.T) {
	tests := []struct {
		name      string
		estimator Estimator
		x         float64
		expected  float64
		limit     float64
		modelType ModelType
	}{
		{"linear rising", NewLinearEstimator(1, 2), 3, 7, math.Inf(1), ModelTypeLinear},
		{"linear falling", NewLinearEstimator(1, -2), 3, -5, math.Inf(-1), ModelTypeLinear},
		{"linear flat", NewLinearEstimator(4, 0), 3, 4, 4, ModelTypeLinear},
		{"hyperbolic", NewHyperbolicEstimator(10, 50), 100, 10.5, 10, ModelTypeHyperbolic},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.InDelta(t, tt.expected, tt.estimator.Estimate(tt.x), 1e-12)
			require.Equal(t, tt.limit, tt.estimator.Limit())
			require.Equal(t, tt.modelType, tt.estimator.Type())
			require.Len(t, tt.estimator.Coefficients(), 2)
		})
	}
}

func TestEstimatorEdgeCases(t *testing.T) {
	require.True(t, math.IsNaN(NewLinearEstimator(1, math.NaN()).Limit()))
	require.True(t, math.IsInf(NewHyperbolicEstimator(1, 2).Estimate(0), 1))
	require.True(t, math.IsInf(NewHyperbolicEstimator(1, -2).Estimate(0), -1))

	// Coefficients returns a copy the caller may modify.
	h := NewHyperbolicEstimator(1, 2)
	c := h.Coefficients()
	c[0] = 42
	require.Equal(t, []float64{1, 2}, h.Coefficients())
}
