package dto

import "github.com/shopspring/decimal"

// round2 rounds half away from zero to two decimal places for display.
func round2(f float64) float64 {
	return decimal.NewFromFloat(f).Round(2).InexactFloat64()
}
