package calc

import (
	"fmt"
	"math"
)

// Compute derives the profitability snapshot for a set of cost inputs.
//
// It is the single validation gate: an average order value that is not
// strictly positive, or any non-finite field, is rejected with ErrInvalidInput
// and no partial result. A snapshot that cannot reach the target profit is not
// an error; it comes back with IsViable=false and zeroed target metrics.
func Compute(in CostInputs) (*ProfitabilityResult, error) {
	if err := validate(in); err != nil {
		return nil, err
	}

	aov := in.AvgOrderValue
	varCost := in.VarCostPerUnit()

	contributionMargin := aov - varCost
	breakEvenROAS := SafeDivide(aov, contributionMargin, MarginEpsilon)
	desiredProfitPerOrder := aov * (in.TargetProfitPercent / 100)
	targetCPA := contributionMargin - desiredProfitPerOrder
	isViable := targetCPA > 0

	res := &ProfitabilityResult{
		ContributionMargin: contributionMargin,
		BreakEvenROAS:      breakEvenROAS,
		BreakEvenCPA:       contributionMargin,
		TargetCPA:          targetCPA,
		DailyRevenue:       aov * in.OrdersPerDay,
		IsViable:           isViable,
	}

	if isViable {
		clicksNeeded := SafeDivide(100, in.ConversionRate, MarginEpsilon)
		res.TargetROAS = aov / targetCPA
		res.TargetCPC = targetCPA / clicksNeeded
		res.DailySpend = targetCPA * in.OrdersPerDay
	}

	res.DailyProfit = res.DailyRevenue - varCost*in.OrdersPerDay - res.DailySpend
	return res, nil
}

func validate(in CostInputs) error {
	fields := []struct {
		name  string
		value float64
	}{
		{"cogs", in.COGS},
		{"opEx", in.OpEx},
		{"conversionRate", in.ConversionRate},
		{"avgOrderValue", in.AvgOrderValue},
		{"ordersPerDay", in.OrdersPerDay},
		{"targetProfitPercent", in.TargetProfitPercent},
	}
	for _, f := range fields {
		if math.IsNaN(f.value) || math.IsInf(f.value, 0) {
			return fmt.Errorf("%w: %s must be a finite number", ErrInvalidInput, f.name)
		}
	}

	if in.AvgOrderValue <= 0 {
		return fmt.Errorf("%w: avgOrderValue must be greater than zero, got %g", ErrInvalidInput, in.AvgOrderValue)
	}
	return nil
}
