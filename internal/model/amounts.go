package model

import "github.com/shopspring/decimal"

// Hundred is the percentage denominator.
var Hundred = decimal.NewFromInt(100)

// HasCents reports whether d has at most two decimal places.
func HasCents(d decimal.Decimal) bool {
	scaled := d.Mul(Hundred)
	return scaled.Equal(scaled.Floor())
}

// TypeValues holds one amount per Type. It carries splits (percentages) and
// limits alike.
type TypeValues struct {
	Needs   decimal.Decimal
	Wants   decimal.Decimal
	Savings decimal.Decimal
}

// Get returns the value for t; unknown types yield zero.
func (v TypeValues) Get(t Type) decimal.Decimal {
	switch t {
	case TypeNeeds:
		return v.Needs
	case TypeWants:
		return v.Wants
	case TypeSavings:
		return v.Savings
	default:
		return decimal.Zero
	}
}

// Set returns a copy of v with the value for t replaced.
func (v TypeValues) Set(t Type, d decimal.Decimal) TypeValues {
	switch t {
	case TypeNeeds:
		v.Needs = d
	case TypeWants:
		v.Wants = d
	case TypeSavings:
		v.Savings = d
	}
	return v
}

// Sum adds the three values.
func (v TypeValues) Sum() decimal.Decimal {
	return v.Needs.Add(v.Wants).Add(v.Savings)
}
