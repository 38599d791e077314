// Package remote estimates the remote-earth voltage V∞ of a fall-of-potential
// traverse.
//
// Three strategies are available and selected through the closed Strategy type:
//
//   - Extrapolate fits V = a + b/d over the tail of the traverse and reports a, the
//     limit as the probe distance grows without bound.
//   - AverageLastN averages the last N voltages of the whole included series.
//   - LastPoint takes the voltage of the farthest reading.
//
// # Tail Selection
//
// The tail is shared by Extrapolate and the plateau check but not by AverageLastN.
// When a knee was found and at least tailMin readings lie at or beyond it, the tail is
// that suffix. Otherwise it is the last tailMin readings, or the whole series when it
// is shorter.
//
// Every estimate carries a human-readable justification with the number of readings
// used, and the R² of the fit for Extrapolate.
package remote
