// Package regression provides the least-squares fits used by the EPR calculator.
//
// Two fits are offered:
//
//   - Linear: ordinary least squares y = a + b*x with the coefficient of determination.
//   - Hyperbolic: y = a + b/x, fitted as a linear regression of y on 1/x. Its intercept
//     a is the limit of y as x grows without bound, which is how remote-earth voltage
//     is extrapolated from a far-field probe traverse.
//
// # Degenerate Inputs
//
// The degenerate cases are part of the contract and never panic or return errors:
//
//   - When x has zero variance the slope is NaN, and so is the intercept.
//   - When y has zero variance R² is defined as 1.
//
// Callers that scan many candidate fits (see package knee) rely on the NaN slope to
// recognise and skip unusable candidates.
//
// # Usage
//
//	fit := regression.Linear(distance, resistance)
//	if math.IsNaN(fit.Slope) {
//	    // all distances identical
//	}
//
//	model := regression.FitHyperbolic(distance, voltage)
//	vInf := model.Estimator.Limit()
//	fmt.Println(model.Formula, model.RSquared)
package regression
