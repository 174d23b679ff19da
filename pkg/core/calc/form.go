package calc

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// DefaultTargetProfitPercent is the target profit a fresh form starts with.
const DefaultTargetProfitPercent = "20"

// FormInputs holds the raw text a form or CLI collects before parsing.
type FormInputs struct {
	COGS                string `json:"cogs"`
	OpEx                string `json:"opEx"`
	ConversionRate      string `json:"conversionRate"`
	AvgOrderValue       string `json:"avgOrderValue"`
	OrdersPerDay        string `json:"ordersPerDay"`
	TargetProfitPercent string `json:"targetProfitPercent"`
}

// DefaultForm returns the reset state of the input form.
func DefaultForm() FormInputs {
	return FormInputs{TargetProfitPercent: DefaultTargetProfitPercent}
}

// ParseForm converts raw text into CostInputs. Blank fields become 0.
// Anything else must parse as a finite number; it is never coerced to 0.
// Range checks are left to Compute.
func ParseForm(f FormInputs) (CostInputs, error) {
	var in CostInputs
	fields := []struct {
		name string
		raw  string
		dst  *float64
	}{
		{"cogs", f.COGS, &in.COGS},
		{"opEx", f.OpEx, &in.OpEx},
		{"conversionRate", f.ConversionRate, &in.ConversionRate},
		{"avgOrderValue", f.AvgOrderValue, &in.AvgOrderValue},
		{"ordersPerDay", f.OrdersPerDay, &in.OrdersPerDay},
		{"targetProfitPercent", f.TargetProfitPercent, &in.TargetProfitPercent},
	}

	for _, fld := range fields {
		v, err := parseNumber(fld.raw)
		if err != nil {
			return CostInputs{}, fmt.Errorf("%w: %s: %v", ErrInvalidField, fld.name, err)
		}
		*fld.dst = v
	}
	return in, nil
}

// parseNumber parses one field with a default of 0 for blank text.
// A lone comma is accepted as the decimal separator ("12,5").
func parseNumber(raw string) (float64, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, nil
	}
	if strings.Count(s, ",") == 1 && !strings.Contains(s, ".") {
		s = strings.Replace(s, ",", ".", 1)
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%q is not a number", raw)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%q is not a finite number", raw)
	}
	return v, nil
}
