// Package calc provides deterministic profitability calculations for paid
// acquisition: break-even and target ROAS/CPA/CPC limits, and the break-even
// curve a chart layer renders.
//
// Every function in this package is pure. Callers recompute on each input
// change; nothing is cached or retained between calls.
package calc

// CostInputs is the numeric snapshot the calculator consumes.
// Absent values are zero. AvgOrderValue must be positive for Compute to accept it.
type CostInputs struct {
	COGS                float64 `json:"cogs" yaml:"cogs"`                               // Cost of goods sold per order
	OpEx                float64 `json:"opEx" yaml:"opEx"`                               // Operating expense per order (shipping, fees, ...)
	ConversionRate      float64 `json:"conversionRate" yaml:"conversionRate"`           // Percent of clicks that convert (0-100)
	AvgOrderValue       float64 `json:"avgOrderValue" yaml:"avgOrderValue"`             // AOV
	OrdersPerDay        float64 `json:"ordersPerDay" yaml:"ordersPerDay"`               // Expected daily order volume
	TargetProfitPercent float64 `json:"targetProfitPercent" yaml:"targetProfitPercent"` // Desired net profit as % of AOV
}

// VarCostPerUnit is the variable cost of one order before advertising.
func (in CostInputs) VarCostPerUnit() float64 {
	return in.COGS + in.OpEx
}

// ProfitabilityResult is the derived snapshot produced by Compute.
// Target* fields and DailySpend are zero whenever IsViable is false.
type ProfitabilityResult struct {
	ContributionMargin float64 `json:"contributionMargin"`
	BreakEvenROAS      float64 `json:"breakEvenROAS"`
	BreakEvenCPA       float64 `json:"breakEvenCPA"`
	TargetROAS         float64 `json:"targetROAS"`
	TargetCPA          float64 `json:"targetCPA"`
	TargetCPC          float64 `json:"targetCPC"`
	DailySpend         float64 `json:"dailySpend"`
	DailyRevenue       float64 `json:"dailyRevenue"`
	DailyProfit        float64 `json:"dailyProfit"`
	IsViable           bool    `json:"isViable"`
}

// CurvePoint is one sample of the break-even chart.
// At most one of Profit and Loss is non-zero.
type CurvePoint struct {
	Units  float64 `json:"units"`
	Income float64 `json:"income"`
	Cost   float64 `json:"cost"`
	Profit float64 `json:"profit"`
	Loss   float64 `json:"loss"`
}

// BreakEvenCurve is the sampled cost/revenue crossing plus its scalar reference points.
type BreakEvenCurve struct {
	Points         []CurvePoint `json:"points"`
	MaxUnits       float64      `json:"maxUnits"`
	BEPUnits       float64      `json:"bepUnits"`
	BEPRevenue     float64      `json:"bepRevenue"`
	FixedCost      float64      `json:"fixedCost"`
	VarCostPerUnit float64      `json:"varCostPerUnit"`
}
