// Package util provides small numeric presentation helpers.
package util

import "github.com/shopspring/decimal"

// Round2 rounds to 2 decimal places. Used for quantities, output, prices
// and percentages.
func Round2(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}

// Round4 rounds to 4 decimal places. Used for marginal products, which are
// typically well below 1.
func Round4(v float64) float64 {
	return decimal.NewFromFloat(v).Round(4).InexactFloat64()
}
