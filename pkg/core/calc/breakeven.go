package calc

import "math"

// CurveSteps is the number of intervals sampled between 0 and MaxUnits.
// Sample returns CurveSteps+1 points.
const CurveSteps = 20

// minChartUnits keeps the x-axis readable for tiny volumes.
const minChartUnits = 10

// Sample builds the break-even curve for a computed result.
//
// Daily ad spend is treated as the fixed cost line and cogs+opEx as the
// variable cost per order. A nil or non-viable result yields an empty curve;
// callers must not chart it.
func Sample(in CostInputs, res *ProfitabilityResult) *BreakEvenCurve {
	if res == nil || !res.IsViable {
		return &BreakEvenCurve{Points: []CurvePoint{}}
	}

	aov := in.AvgOrderValue
	varCostPerUnit := in.VarCostPerUnit()
	fixedCost := res.DailySpend
	marginPerUnit := aov - varCostPerUnit

	bepUnits := SafeDivide(fixedCost, marginPerUnit, UnitMarginFloor)
	bepRevenue := bepUnits * aov
	maxUnits := math.Max(math.Max(bepUnits*2, in.OrdersPerDay*1.5), minChartUnits)

	points := make([]CurvePoint, 0, CurveSteps+1)
	for i := 0; i <= CurveSteps; i++ {
		units := (maxUnits / CurveSteps) * float64(i)
		income := units * aov
		cost := fixedCost + units*varCostPerUnit

		p := CurvePoint{Units: units, Income: income, Cost: cost}
		if income > cost {
			p.Profit = income - cost
		} else if cost > income {
			p.Loss = cost - income
		}
		points = append(points, p)
	}

	return &BreakEvenCurve{
		Points:         points,
		MaxUnits:       maxUnits,
		BEPUnits:       bepUnits,
		BEPRevenue:     bepRevenue,
		FixedCost:      fixedCost,
		VarCostPerUnit: varCostPerUnit,
	}
}

// MaxBEPUnits caps BEPUnitsRounded so the conversion stays inside int range
// on every platform.
const MaxBEPUnits = math.MaxInt32

// BEPUnitsRounded is the whole number of orders needed to break even,
// clamped to [0, MaxBEPUnits].
func (c *BreakEvenCurve) BEPUnitsRounded() int {
	units := math.Ceil(c.BEPUnits)
	switch {
	case math.IsNaN(units) || units <= 0:
		return 0
	case units >= MaxBEPUnits:
		return MaxBEPUnits
	}
	return int(units)
}

// BEPPosition is the break-even point as a fraction of the sampled x-axis,
// used to place the marker over the chart.
func (c *BreakEvenCurve) BEPPosition() float64 {
	last := 0.0
	if n := len(c.Points); n > 0 {
		last = c.Points[n-1].Units
	}
	if last == 0 {
		last = 1
	}
	return c.BEPUnits / last
}
