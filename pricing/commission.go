package pricing

import "github.com/shopspring/decimal"

// CommissionSplit divides a booking's gross amount between the platform and the operator.
type CommissionSplit struct {
	Gross      decimal.Decimal
	Commission decimal.Decimal
	Payout     decimal.Decimal
}

// SplitCommission applies a percentage commission (clamped to [0, 100]) to gross.
// The commission is rounded to cents and the payout takes the remainder, so the
// two always add up to gross.
func SplitCommission(gross decimal.Decimal, ratePct float64) CommissionSplit {
	rate := max(0, min(100, ratePct))
	commission := gross.Mul(decimal.NewFromFloat(rate)).Div(hundred).Round(2)
	return CommissionSplit{
		Gross:      gross,
		Commission: commission,
		Payout:     gross.Sub(commission),
	}
}

// Add accumulates another split into s.
func (s CommissionSplit) Add(o CommissionSplit) CommissionSplit {
	return CommissionSplit{
		Gross:      s.Gross.Add(o.Gross),
		Commission: s.Commission.Add(o.Commission),
		Payout:     s.Payout.Add(o.Payout),
	}
}
