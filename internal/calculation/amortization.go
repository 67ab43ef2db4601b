package calculation

import (
	"github.com/fireplan/fireplan/pkg/money"
	"github.com/shopspring/decimal"
)

// MonthlyPayment computes the fixed payment that amortizes balance over
// termMonths at the given annual percentage rate (standard PMT formula).
// A zero rate degenerates to straight division; a non-positive balance or
// term returns zero. The rate is clamped to [0, 100] and the balance to the
// sanity ceiling before use.
func MonthlyPayment(balance, annualRatePct decimal.Decimal, termMonths int) decimal.Decimal {
	balance = money.ClampBalance(balance)
	if balance.IsZero() || termMonths <= 0 {
		return decimal.Zero
	}
	rate := money.ClampRatePercent(annualRatePct)
	if rate.IsZero() {
		return balance.Div(decimal.NewFromInt(int64(termMonths)))
	}
	i := money.MonthlyRateFromPercent(rate)
	// PMT = P * i * (1+i)^n / ((1+i)^n - 1)
	compound := decimal.NewFromInt(1).Add(i).Pow(decimal.NewFromInt(int64(termMonths)))
	return balance.Mul(i).Mul(compound).Div(compound.Sub(decimal.NewFromInt(1)))
}

// InterestPortion returns one month of interest on a balance at an annual
// percentage rate: balance * (rate/100) / 12.
func InterestPortion(balance, annualRatePct decimal.Decimal) decimal.Decimal {
	balance = money.ClampBalance(balance)
	rate := money.ClampRatePercent(annualRatePct)
	return balance.Mul(money.MonthlyRateFromPercent(rate))
}

// PrincipalPortion returns the part of a payment that reduces principal:
// max(0, payment - interest), further capped so the balance cannot go
// negative.
func PrincipalPortion(payment, interest, balance decimal.Decimal) decimal.Decimal {
	principal := money.NonNegative(payment.Sub(interest))
	return money.Min(principal, money.NonNegative(balance))
}
