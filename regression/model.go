package regression

import "fmt"

// Model is a fitted regression model with its statistics and a concrete estimator.
type Model struct {
	// Type is the model family.
	Type ModelType
	// Coefficients holds [a, b] for both supported families.
	Coefficients []float64
	// RSquared is the coefficient of determination of the underlying linear fit.
	RSquared float64
	// RMSE is the root mean square error in units of y.
	RMSE float64
	// Formula is a human-readable rendering of the fitted equation.
	Formula string
	// Estimator evaluates the fitted model.
	Estimator Estimator
}

// String returns a one-line summary of the model.
func (m *Model) String() string {
	return fmt.Sprintf("Model{Type: %s, R²: %.4f, RMSE: %.4g, Formula: %s}",
		m.Type, m.RSquared, m.RMSE, m.Formula)
}
