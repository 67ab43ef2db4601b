package calculation

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decimalWithin(t *testing.T, want, got decimal.Decimal, tolerance float64) {
	t.Helper()
	diff := want.Sub(got).Abs()
	if diff.GreaterThan(decimal.NewFromFloat(tolerance)) {
		t.Fatalf("want %s, got %s (diff %s exceeds tolerance %v)", want, got, diff, tolerance)
	}
}

func TestMonthlyPayment(t *testing.T) {
	t.Run("standard loan", func(t *testing.T) {
		pmt := MonthlyPayment(decimal.NewFromInt(5000), decimal.NewFromInt(20), 24)
		decimalWithin(t, decimal.NewFromFloat(254.48), pmt, 0.01)
	})

	t.Run("zero rate divides evenly", func(t *testing.T) {
		pmt := MonthlyPayment(decimal.NewFromInt(1200), decimal.Zero, 12)
		assert.True(t, pmt.Equal(decimal.NewFromInt(100)), "got %s", pmt)
	})

	t.Run("zero balance", func(t *testing.T) {
		pmt := MonthlyPayment(decimal.Zero, decimal.NewFromInt(5), 12)
		assert.True(t, pmt.IsZero())
	})

	t.Run("zero term", func(t *testing.T) {
		pmt := MonthlyPayment(decimal.NewFromInt(5000), decimal.NewFromInt(5), 0)
		assert.True(t, pmt.IsZero())
	})

	t.Run("negative rate clamps to zero", func(t *testing.T) {
		pmt := MonthlyPayment(decimal.NewFromInt(1200), decimal.NewFromInt(-8), 12)
		assert.True(t, pmt.Equal(decimal.NewFromInt(100)), "got %s", pmt)
	})
}

// The fixed payment must fully amortize the balance over the term.
func TestMonthlyPaymentAmortizesToZero(t *testing.T) {
	balance := decimal.NewFromInt(5000)
	rate := decimal.NewFromInt(20)
	term := 24

	pmt := MonthlyPayment(balance, rate, term)
	require.True(t, pmt.GreaterThan(decimal.Zero))

	remaining := balance
	for m := 0; m < term; m++ {
		interest := InterestPortion(remaining, rate)
		principal := PrincipalPortion(pmt, interest, remaining)
		remaining = remaining.Sub(principal)
	}
	decimalWithin(t, decimal.Zero, remaining, 0.01)
}

func TestInterestPortion(t *testing.T) {
	// 10000 at 12% annual accrues 100 in one month.
	got := InterestPortion(decimal.NewFromInt(10000), decimal.NewFromInt(12))
	assert.True(t, got.Equal(decimal.NewFromInt(100)), "got %s", got)
}

func TestPrincipalPortionNeverOvershoots(t *testing.T) {
	payment := decimal.NewFromInt(500)
	interest := decimal.NewFromInt(20)
	balance := decimal.NewFromInt(300)

	principal := PrincipalPortion(payment, interest, balance)
	assert.True(t, principal.Equal(balance), "principal capped at balance, got %s", principal)

	// Interest exceeding the payment yields zero principal, not negative.
	principal = PrincipalPortion(decimal.NewFromInt(10), decimal.NewFromInt(50), balance)
	assert.True(t, principal.IsZero())
}
