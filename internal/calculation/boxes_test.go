package calculation

import (
	"testing"

	"github.com/fireplan/fireplan/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestState(debts ...*DebtState) *WaterfallState {
	return &WaterfallState{
		Buckets: &domain.BucketBalances{},
		Debts:   debts,
		Limits:  NewLimitTracker(domain.ContributionLimits{}, decimal.Zero, decimal.Zero),
	}
}

func testDebt(label, category string, balance, rate float64) *DebtState {
	return NewDebtState(domain.Debt{
		Category:     category,
		Label:        label,
		Balance:      decimal.NewFromFloat(balance),
		InterestRate: decimal.NewFromFloat(rate),
		TermMonths:   60,
	})
}

func TestDebtBandMembership(t *testing.T) {
	high := &debtBandBox{key: domain.BoxHighInterestDebt, high: true}
	moderate := &debtBandBox{key: domain.BoxModerateDebt, high: false}

	tests := []struct {
		name         string
		debt         *DebtState
		inHigh, inMod bool
	}{
		{"credit card at 22.9", testDebt("cc", "creditCard", 5000, 22.9), true, false},
		{"exactly 10 is moderate", testDebt("loan", "personal", 5000, 10), false, true},
		{"just above 10 is high", testDebt("loan", "personal", 5000, 10.01), true, false},
		{"exactly 5 is moderate", testDebt("auto", "auto", 5000, 5), false, true},
		{"below 5 is neither", testDebt("auto", "auto", 5000, 4.9), false, false},
		{"mortgage excluded at any rate", testDebt("home", domain.DebtCategoryMortgage, 200000, 12), false, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.inHigh, high.matches(tc.debt))
			assert.Equal(t, tc.inMod, moderate.matches(tc.debt))
		})
	}
}

// Paydown inside a band follows the order the debts were supplied in, not an
// internal sort.
func TestDebtBandPaysInCallerOrder(t *testing.T) {
	first := testDebt("first", "creditCard", 300, 18)
	second := testDebt("second", "creditCard", 300, 24)
	s := newTestState(first, second)

	box := &debtBandBox{key: domain.BoxHighInterestDebt, high: true}
	used := box.Allocate(s, decimal.NewFromInt(400))

	assert.True(t, used.Equal(decimal.NewFromInt(400)))
	assert.True(t, first.Balance.IsZero(), "first debt paid in full before second")
	assert.True(t, second.Balance.Equal(decimal.NewFromInt(200)), "got %s", second.Balance)
}

func TestDebtBandRespectsCap(t *testing.T) {
	d := testDebt("cc", "creditCard", 1000, 20)
	s := newTestState(d)

	cap := decimal.NewFromInt(150)
	box := &debtBandBox{key: domain.BoxHighInterestDebt, cap: &cap, high: true}
	used := box.Allocate(s, decimal.NewFromInt(500))

	assert.True(t, used.Equal(cap))
	assert.True(t, d.Balance.Equal(decimal.NewFromInt(850)))
}

func TestDebtBandCompleteWhenEmpty(t *testing.T) {
	s := newTestState(testDebt("auto", "auto", 9000, 6.4))
	high := &debtBandBox{key: domain.BoxHighInterestDebt, high: true}
	assert.True(t, high.Need(s).IsZero(), "no high-interest debt means the box is complete")
}

func TestHSAIRABoxRouting(t *testing.T) {
	s := newTestState()
	s.Settings = domain.FireSettings{HasHSA: true, IsContributingToHSA: true}
	s.Tax = domain.TaxAllocations{
		HSA:            decimal.NewFromInt(300),
		TraditionalIRA: decimal.NewFromInt(250),
		RothIRA:        decimal.NewFromInt(250),
	}

	box := &hsaIRABox{}
	used := box.Allocate(s, decimal.NewFromInt(1000))

	require.True(t, used.Equal(decimal.NewFromInt(800)), "got %s", used)
	assert.True(t, s.Buckets.Taxable.Equal(decimal.NewFromInt(300)), "HSA lands in the taxable bucket")
	assert.True(t, s.Buckets.Retirement.Equal(decimal.NewFromInt(500)), "IRA money lands in retirement")
}

// Traditional and Roth share one annual limit, drawn traditional-first.
func TestHSAIRASharedLimitTraditionalFirst(t *testing.T) {
	s := newTestState()
	s.Limits = NewLimitTracker(domain.ContributionLimits{}, decimal.Zero, decimal.NewFromInt(6500))
	s.Tax = domain.TaxAllocations{
		TraditionalIRA: decimal.NewFromInt(400),
		RothIRA:        decimal.NewFromInt(400),
	}

	box := &hsaIRABox{}
	used := box.Allocate(s, decimal.NewFromInt(1000))

	// 500 of headroom: traditional takes its full 400, roth gets the last 100.
	assert.True(t, used.Equal(decimal.NewFromInt(500)), "got %s", used)
	assert.True(t, s.Limits.Remaining(LimitIRA).IsZero())
	assert.True(t, box.Need(s).IsZero(), "box complete once the shared limit is exhausted")
}

func TestHSADisabledWhenNotContributing(t *testing.T) {
	s := newTestState()
	s.Settings = domain.FireSettings{HasHSA: true, IsContributingToHSA: false}
	s.Tax = domain.TaxAllocations{HSA: decimal.NewFromInt(300)}

	box := &hsaIRABox{}
	used := box.Allocate(s, decimal.NewFromInt(1000))
	assert.True(t, used.IsZero())
	assert.True(t, s.Buckets.Taxable.IsZero())
}

func TestMax401kBoxHonorsAnnualLimit(t *testing.T) {
	s := newTestState()
	s.Limits = NewLimitTracker(domain.ContributionLimits{}, decimal.NewFromInt(23000), decimal.Zero)
	s.Tax = domain.TaxAllocations{FourOhOneK: decimal.NewFromInt(800)}

	box := &max401kBox{}
	used := box.Allocate(s, decimal.NewFromInt(800))

	assert.True(t, used.Equal(decimal.NewFromInt(500)), "capped at remaining headroom, got %s", used)
	assert.True(t, s.Buckets.Retirement.Equal(decimal.NewFromInt(500)))
}

func TestTaxableInvestingNeverCompletes(t *testing.T) {
	s := newTestState()
	box := &taxableInvestingBox{}

	used := box.Allocate(s, decimal.NewFromInt(1234))
	assert.True(t, used.Equal(decimal.NewFromInt(1234)))
	assert.True(t, s.Buckets.Taxable.Equal(decimal.NewFromInt(1234)))
	assert.False(t, box.Need(s).IsZero())
}

func TestBuildBoxesFallsBackOnMalformedOrder(t *testing.T) {
	boxes := buildBoxes([]string{"a", "b"}, nil)
	require.Len(t, boxes, 5)
	keys := make([]string, len(boxes))
	for i, b := range boxes {
		keys[i] = b.Key()
	}
	assert.Equal(t, domain.DefaultBoxOrder(), keys)
}

func TestBuildBoxesKeepsValidOrder(t *testing.T) {
	order := []string{
		domain.BoxTaxableInvesting,
		domain.BoxMax401k,
		domain.BoxModerateDebt,
		domain.BoxHSAIRA,
		domain.BoxHighInterestDebt,
	}
	boxes := buildBoxes(order, nil)
	require.Len(t, boxes, 5)
	for i, b := range boxes {
		assert.Equal(t, order[i], b.Key())
	}
}
