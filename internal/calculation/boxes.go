package calculation

import (
	"github.com/fireplan/fireplan/internal/domain"
	"github.com/fireplan/fireplan/pkg/money"
	"github.com/shopspring/decimal"
)

// Rate bands for debt paydown boxes, in annual percent.
var (
	highInterestFloor = decimal.NewFromInt(10) // exclusive: rate > 10
	moderateFloor     = decimal.NewFromInt(5)  // inclusive: 5 <= rate <= 10
)

// flexibleBox is one user-orderable goal in the waterfall. Allocate mutates
// the state (bucket balances, debt balances, limit tracker), spends at most
// cash, and returns the amount used. Need reports how much the box could still
// absorb, honoring annual limits but not the per-box monthly cap; a zero need
// marks the box complete.
type flexibleBox interface {
	Key() string
	Need(s *WaterfallState) decimal.Decimal
	Allocate(s *WaterfallState, cash decimal.Decimal) decimal.Decimal
}

type boxFactory func(cap *decimal.Decimal) flexibleBox

// boxRegistry maps box key -> constructor. The waterfall loop is a uniform
// fold over the resolved order; adding a box means adding a registry entry,
// not a switch arm.
var boxRegistry = map[string]boxFactory{
	domain.BoxHighInterestDebt: func(cap *decimal.Decimal) flexibleBox {
		return &debtBandBox{key: domain.BoxHighInterestDebt, cap: cap, high: true}
	},
	domain.BoxHSAIRA: func(cap *decimal.Decimal) flexibleBox {
		return &hsaIRABox{cap: cap}
	},
	domain.BoxModerateDebt: func(cap *decimal.Decimal) flexibleBox {
		return &debtBandBox{key: domain.BoxModerateDebt, cap: cap, high: false}
	},
	domain.BoxMax401k: func(cap *decimal.Decimal) flexibleBox {
		return &max401kBox{cap: cap}
	},
	domain.BoxTaxableInvesting: func(cap *decimal.Decimal) flexibleBox {
		return &taxableInvestingBox{cap: cap}
	},
}

// buildBoxes resolves the user's stored order (falling back to the default
// order when malformed) and instantiates each box with its optional cap.
func buildBoxes(order []string, caps map[string]*decimal.Decimal) []flexibleBox {
	keys := domain.NormalizeBoxOrder(order)
	boxes := make([]flexibleBox, 0, len(keys))
	for _, k := range keys {
		boxes = append(boxes, boxRegistry[k](caps[k]))
	}
	return boxes
}

// capOr returns the box's fixed monthly cap, or fallback when the cap is nil
// ("consume all remaining cash flow this month").
func capOr(cap *decimal.Decimal, fallback decimal.Decimal) decimal.Decimal {
	if cap == nil {
		return fallback
	}
	return money.NonNegative(*cap)
}

// debtBandBox pays down debts whose rate falls in a band. Paydown within the
// band follows the array order presented by the caller; there is deliberately
// no internal sort by rate or balance.
type debtBandBox struct {
	key  string
	cap  *decimal.Decimal
	high bool
}

func (b *debtBandBox) Key() string { return b.key }

func (b *debtBandBox) matches(d *DebtState) bool {
	if d.IsMortgage() {
		return false
	}
	if b.high {
		return d.InterestRate.GreaterThan(highInterestFloor)
	}
	return d.InterestRate.GreaterThanOrEqual(moderateFloor) &&
		d.InterestRate.LessThanOrEqual(highInterestFloor)
}

func (b *debtBandBox) Need(s *WaterfallState) decimal.Decimal {
	total := decimal.Zero
	for _, d := range s.Debts {
		if b.matches(d) {
			total = total.Add(d.Balance)
		}
	}
	return total
}

func (b *debtBandBox) Allocate(s *WaterfallState, cash decimal.Decimal) decimal.Decimal {
	budget := money.Min(cash, capOr(b.cap, cash))
	budget = money.Min(budget, b.Need(s))
	spent := decimal.Zero
	for _, d := range s.Debts {
		if !b.matches(d) || !d.Active() {
			continue
		}
		pay := money.Min(budget.Sub(spent), d.Balance)
		if pay.LessThanOrEqual(decimal.Zero) {
			break
		}
		d.Balance = d.Balance.Sub(pay)
		spent = spent.Add(pay)
	}
	return spent
}

// hsaIRABox routes the tax engine's HSA and IRA recommendations. HSA money
// lands in the Taxable bucket, IRA money in Retirement. Traditional IRA is
// drawn before Roth when both are requested; the two share one annual limit.
type hsaIRABox struct {
	cap *decimal.Decimal
}

func (b *hsaIRABox) Key() string { return domain.BoxHSAIRA }

func (b *hsaIRABox) hsaEnabled(s *WaterfallState) bool {
	return s.Settings.HasHSA && s.Settings.IsContributingToHSA
}

func (b *hsaIRABox) Need(s *WaterfallState) decimal.Decimal {
	need := decimal.Zero
	if b.hsaEnabled(s) {
		need = need.Add(money.Min(money.NonNegative(s.Tax.HSA), s.Limits.Remaining(LimitHSA)))
	}
	iraWanted := money.NonNegative(s.Tax.TraditionalIRA).Add(money.NonNegative(s.Tax.RothIRA))
	need = need.Add(money.Min(iraWanted, s.Limits.Remaining(LimitIRA)))
	return need
}

func (b *hsaIRABox) Allocate(s *WaterfallState, cash decimal.Decimal) decimal.Decimal {
	budget := money.Min(cash, capOr(b.cap, cash))
	used := decimal.Zero

	if b.hsaEnabled(s) {
		want := money.Min(money.NonNegative(s.Tax.HSA), budget)
		got := s.Limits.Record(LimitHSA, want)
		s.Buckets.Taxable = s.Buckets.Taxable.Add(got)
		budget = budget.Sub(got)
		used = used.Add(got)
	}

	// Traditional before Roth against the shared limit.
	want := money.Min(money.NonNegative(s.Tax.TraditionalIRA), budget)
	got := s.Limits.Record(LimitIRA, want)
	s.Buckets.Retirement = s.Buckets.Retirement.Add(got)
	budget = budget.Sub(got)
	used = used.Add(got)

	want = money.Min(money.NonNegative(s.Tax.RothIRA), budget)
	got = s.Limits.Record(LimitIRA, want)
	s.Buckets.Retirement = s.Buckets.Retirement.Add(got)
	used = used.Add(got)

	return used
}

// max401kBox routes the tax engine's 401(k) recommendation into Retirement,
// capped by remaining cash and the 401(k) annual limit.
type max401kBox struct {
	cap *decimal.Decimal
}

func (b *max401kBox) Key() string { return domain.BoxMax401k }

func (b *max401kBox) Need(s *WaterfallState) decimal.Decimal {
	return money.Min(money.NonNegative(s.Tax.FourOhOneK), s.Limits.Remaining(Limit401k))
}

func (b *max401kBox) Allocate(s *WaterfallState, cash decimal.Decimal) decimal.Decimal {
	budget := money.Min(cash, capOr(b.cap, cash))
	want := money.Min(money.NonNegative(s.Tax.FourOhOneK), budget)
	got := s.Limits.Record(Limit401k, want)
	s.Buckets.Retirement = s.Buckets.Retirement.Add(got)
	return got
}

// taxableInvestingBox absorbs whatever cash remains, subject only to its
// optional cap. It is never complete.
type taxableInvestingBox struct {
	cap *decimal.Decimal
}

func (b *taxableInvestingBox) Key() string { return domain.BoxTaxableInvesting }

func (b *taxableInvestingBox) Need(s *WaterfallState) decimal.Decimal {
	return money.MaxBalance
}

func (b *taxableInvestingBox) Allocate(s *WaterfallState, cash decimal.Decimal) decimal.Decimal {
	amount := money.Min(cash, capOr(b.cap, cash))
	s.Buckets.Taxable = s.Buckets.Taxable.Add(amount)
	return amount
}
