package models

import "github.com/shopspring/decimal"

// LineTotal returns unit price × quantity without float drift
func LineTotal(unitPrice float64, quantity int) float64 {
	total, _ := decimal.NewFromFloat(unitPrice).
		Mul(decimal.NewFromInt(int64(quantity))).
		Round(2).
		Float64()
	return total
}

// ToMinorUnits converts a price to the provider's smallest currency unit (cents)
func ToMinorUnits(amount float64) int64 {
	return decimal.NewFromFloat(amount).Mul(decimal.NewFromInt(100)).Round(0).IntPart()
}

// FromMinorUnits is the inverse of ToMinorUnits
func FromMinorUnits(minor int64) float64 {
	f, _ := decimal.New(minor, -2).Float64()
	return f
}
