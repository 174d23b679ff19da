package calc

const (
	// MarginEpsilon replaces a zero contribution margin or conversion rate
	// before dividing. A zero margin therefore yields a very large, finite ROAS.
	MarginEpsilon = 1e-4

	// UnitMarginFloor replaces a zero per-unit margin in the curve sampler.
	// It differs from MarginEpsilon on purpose: changing it rescales the chart.
	UnitMarginFloor = 1.0
)

// SafeDivide returns numerator/denominator, substituting epsilon for the
// denominator when it is exactly zero. Negative denominators are kept as-is.
func SafeDivide(numerator, denominator, epsilon float64) float64 {
	if denominator == 0 {
		denominator = epsilon
	}
	return numerator / denominator
}
