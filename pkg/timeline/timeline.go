// Package timeline provides month/age arithmetic for the simulators, which
// step in month indexes rather than calendar dates.
package timeline

import (
	"github.com/shopspring/decimal"
)

var monthsPerYear = decimal.NewFromInt(12)

// MonthsBetweenAges returns the number of simulated months between the current
// age and the target retirement age, floored at zero.
func MonthsBetweenAges(currentAge, targetAge int) int {
	months := (targetAge - currentAge) * 12
	if months < 0 {
		return 0
	}
	return months
}

// AgeAtMonth returns the household's age, in fractional years, at a month
// index of the simulation.
func AgeAtMonth(currentAge, month int) decimal.Decimal {
	return decimal.NewFromInt(int64(currentAge)).
		Add(decimal.NewFromInt(int64(month)).Div(monthsPerYear))
}

// YearIndex returns the whole simulated years elapsed at a month index.
func YearIndex(month int) int { return month / 12 }

// IsYearBoundary reports whether a month index starts a new simulated year.
// Month 0 is the exception: it is the start of the run, not a rollover.
func IsYearBoundary(month int) bool { return month > 0 && month%12 == 0 }
