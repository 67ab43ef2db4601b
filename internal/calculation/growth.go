package calculation

import (
	"github.com/fireplan/fireplan/internal/domain"
	"github.com/fireplan/fireplan/pkg/money"
	"github.com/shopspring/decimal"
)

// carDepreciationPerYear is the straight-line fraction a car loses of its
// original value each year.
var carDepreciationPerYear = decimal.NewFromFloat(0.20)

// GrowthModel converts annual bucket growth rates into per-month compounding
// factors once, at construction, and applies them to a bucket set. The car is
// the exception: its value is recomputed from the original value every month
// (straight-line, floored at zero) so repeated application cannot drift.
// The mortgage is not a growth concern; it amortizes like any other debt.
type GrowthModel struct {
	savings    decimal.Decimal
	taxable    decimal.Decimal
	retirement decimal.Decimal
	realEstate decimal.Decimal
	other      decimal.Decimal

	originalCarValue decimal.Decimal
}

// NewGrowthModel builds a growth model from annual rates and the car's
// starting value.
func NewGrowthModel(rates domain.GrowthRates, originalCarValue decimal.Decimal) *GrowthModel {
	return &GrowthModel{
		savings:          money.MonthlyGrowthFactor(rates.Savings),
		taxable:          money.MonthlyGrowthFactor(rates.Taxable),
		retirement:       money.MonthlyGrowthFactor(rates.Retirement),
		realEstate:       money.MonthlyGrowthFactor(rates.RealEstate),
		other:            money.MonthlyGrowthFactor(rates.Other),
		originalCarValue: money.ClampBalance(originalCarValue),
	}
}

// Apply advances every bucket by one month of growth. month is the index of
// the month being simulated; the car's value for that month is derived from
// years elapsed at the end of it.
func (g *GrowthModel) Apply(b *domain.BucketBalances, month int) {
	b.Savings = grow(b.Savings, g.savings)
	b.Taxable = grow(b.Taxable, g.taxable)
	b.Retirement = grow(b.Retirement, g.retirement)
	b.RealEstate = grow(b.RealEstate, g.realEstate)
	b.Other = grow(b.Other, g.other)
	b.Car = g.CarValueAtMonth(month + 1)
}

// CarValueAtMonth returns originalValue * max(0, 1 - 0.20 * yearsElapsed),
// with yearsElapsed measured in fractional years from simulation start.
func (g *GrowthModel) CarValueAtMonth(month int) decimal.Decimal {
	years := decimal.NewFromInt(int64(month)).Div(decimal.NewFromInt(12))
	factor := decimal.NewFromInt(1).Sub(carDepreciationPerYear.Mul(years))
	return g.originalCarValue.Mul(money.NonNegative(factor))
}

func grow(balance, monthlyFactor decimal.Decimal) decimal.Decimal {
	return balance.Add(balance.Mul(monthlyFactor))
}
