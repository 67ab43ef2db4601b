package money

import (
	"math"

	"github.com/shopspring/decimal"
)

// MaxBalance is the sanity ceiling applied to caller-supplied balances so a
// malformed input cannot overflow 600 months of compounding.
var MaxBalance = decimal.NewFromInt(1_000_000_000)

var (
	hundred = decimal.NewFromInt(100)
	twelve  = decimal.NewFromInt(12)
	one     = decimal.NewFromInt(1)
)

// ClampRatePercent clamps an annual percentage rate to [0, 100].
func ClampRatePercent(rate decimal.Decimal) decimal.Decimal {
	if rate.IsNegative() {
		return decimal.Zero
	}
	if rate.GreaterThan(hundred) {
		return hundred
	}
	return rate
}

// ClampBalance clamps a monetary amount to [0, MaxBalance].
func ClampBalance(v decimal.Decimal) decimal.Decimal {
	if v.IsNegative() {
		return decimal.Zero
	}
	if v.GreaterThan(MaxBalance) {
		return MaxBalance
	}
	return v
}

// NonNegative floors a value at zero.
func NonNegative(v decimal.Decimal) decimal.Decimal {
	if v.IsNegative() {
		return decimal.Zero
	}
	return v
}

// Min returns the smaller of two amounts.
func Min(a, b decimal.Decimal) decimal.Decimal {
	if a.LessThan(b) {
		return a
	}
	return b
}

// Max returns the larger of two amounts.
func Max(a, b decimal.Decimal) decimal.Decimal {
	if a.GreaterThan(b) {
		return a
	}
	return b
}

// MonthlyGrowthFactor converts an annual growth rate (fraction, e.g. 0.07) to
// the equivalent monthly compounding factor: (1+r)^(1/12) - 1.
func MonthlyGrowthFactor(annualRate decimal.Decimal) decimal.Decimal {
	r, _ := annualRate.Float64()
	return decimal.NewFromFloat(math.Pow(1+r, 1.0/12.0) - 1)
}

// AnnualFactor returns (1+rate)^years for a whole number of years. The
// simulator derives each month's inflation multiplier from the base values
// with this, never from the prior month's inflated value.
func AnnualFactor(rate decimal.Decimal, years int) decimal.Decimal {
	if years <= 0 {
		return one
	}
	return one.Add(rate).Pow(decimal.NewFromInt(int64(years)))
}

// MonthlyRateFromPercent converts an annual percentage rate into the monthly
// periodic rate used by the amortization math: (rate/100)/12.
func MonthlyRateFromPercent(annualPct decimal.Decimal) decimal.Decimal {
	return annualPct.Div(hundred).Div(twelve)
}
