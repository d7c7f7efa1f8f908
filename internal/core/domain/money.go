package domain

import "github.com/shopspring/decimal"

// Round2 rounds a monetary amount to 2 decimal places, half away from zero.
// All amounts in this system are non-negative, so this is round-half-up.
// Every monetary figure crosses this function exactly once, at the point the
// component it belongs to is finalised.
func Round2(v float64) float64 {
	f, _ := decimal.NewFromFloat(v).Round(2).Float64()
	return f
}
