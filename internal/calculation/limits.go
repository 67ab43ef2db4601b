package calculation

import (
	"github.com/fireplan/fireplan/internal/domain"
	"github.com/fireplan/fireplan/pkg/money"
	"github.com/shopspring/decimal"
)

// Limited contribution categories.
type LimitCategory int

const (
	Limit401k LimitCategory = iota
	LimitIRA                // Traditional and Roth share this one
	LimitHSA
)

// Default annual limits used when the caller supplies none.
var (
	defaultLimit401k = decimal.NewFromInt(23500)
	defaultLimitIRA  = decimal.NewFromInt(7000)
	defaultLimitHSA  = decimal.NewFromInt(4300)
)

// LimitTracker keeps year-to-date contributions against the annual limits and
// resets at simulated year boundaries. One tracker belongs to exactly one
// simulation run; nothing is shared across runs.
type LimitTracker struct {
	limits domain.ContributionLimits
	ytd    [3]decimal.Decimal
}

// NewLimitTracker builds a tracker, filling in default limits for any zero
// values and seeding the 401(k)/IRA year-to-date sums from the caller's
// snapshot.
func NewLimitTracker(limits domain.ContributionLimits, ytd401k, ytdIRA decimal.Decimal) *LimitTracker {
	if limits.FourOhOneK.IsZero() {
		limits.FourOhOneK = defaultLimit401k
	}
	if limits.IRA.IsZero() {
		limits.IRA = defaultLimitIRA
	}
	if limits.HSA.IsZero() {
		limits.HSA = defaultLimitHSA
	}
	t := &LimitTracker{limits: limits}
	t.ytd[Limit401k] = money.NonNegative(ytd401k)
	t.ytd[LimitIRA] = money.NonNegative(ytdIRA)
	return t
}

// ResetYear zeroes all year-to-date sums. The simulator calls this at month m
// when m > 0 and m mod 12 == 0; month 0 keeps the caller-seeded sums.
func (t *LimitTracker) ResetYear() {
	for i := range t.ytd {
		t.ytd[i] = decimal.Zero
	}
}

func (t *LimitTracker) limit(c LimitCategory) decimal.Decimal {
	switch c {
	case Limit401k:
		return t.limits.FourOhOneK
	case LimitIRA:
		return t.limits.IRA
	default:
		return t.limits.HSA
	}
}

// Remaining returns max(0, annualLimit - ytd) for a category.
func (t *LimitTracker) Remaining(c LimitCategory) decimal.Decimal {
	return money.NonNegative(t.limit(c).Sub(t.ytd[c]))
}

// YTD returns the cumulative contributions recorded this simulated year.
func (t *LimitTracker) YTD(c LimitCategory) decimal.Decimal {
	return t.ytd[c]
}

// Record caps a requested contribution at the category's remaining headroom,
// books the capped amount, and returns it.
func (t *LimitTracker) Record(c LimitCategory, requested decimal.Decimal) decimal.Decimal {
	amount := money.Min(money.NonNegative(requested), t.Remaining(c))
	t.ytd[c] = t.ytd[c].Add(amount)
	return amount
}
