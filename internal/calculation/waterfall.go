package calculation

import (
	"github.com/fireplan/fireplan/internal/domain"
	"github.com/fireplan/fireplan/pkg/money"
	"github.com/shopspring/decimal"
)

// starterEFTarget is the fixed starter emergency fund goal. It is never
// inflated.
var starterEFTarget = decimal.NewFromInt(1000)

// DebtState is the mutable per-run view of a debt. MinPayment is fixed at
// simulation start from the original balance/rate/term and never re-amortized.
type DebtState struct {
	domain.Debt
	MinPayment    decimal.Decimal
	RemainingTerm int
	InterestPaid  decimal.Decimal
}

// Active reports whether the debt still carries a balance. A zero-balance
// debt is inert for the rest of the run.
func (d *DebtState) Active() bool { return d.Balance.GreaterThan(decimal.Zero) }

// NewDebtState clamps the input debt and derives its fixed minimum payment.
func NewDebtState(d domain.Debt) *DebtState {
	d.Balance = money.ClampBalance(d.Balance)
	d.InterestRate = money.ClampRatePercent(d.InterestRate)
	if d.TermMonths < 0 {
		d.TermMonths = 0
	}
	return &DebtState{
		Debt:          d,
		MinPayment:    MonthlyPayment(d.Balance, d.InterestRate, d.TermMonths),
		RemainingTerm: d.TermMonths,
	}
}

// WaterfallState is everything one month of allocation reads and mutates.
type WaterfallState struct {
	Buckets *domain.BucketBalances
	Debts   []*DebtState
	Limits  *LimitTracker

	Settings domain.FireSettings
	Tax      domain.TaxAllocations

	// MonthlyGross drives the employer match; InflatedExpense drives the full
	// emergency fund target. Both are recomputed by the simulator each month.
	MonthlyGross    decimal.Decimal
	InflatedExpense decimal.Decimal
}

// MonthAllocation is the per-box outcome of one waterfall pass.
type MonthAllocation struct {
	Foundation domain.FoundationStatus
	Boxes      []domain.BoxStatus
}

// Total sums every dollar the waterfall placed this month.
func (a MonthAllocation) Total() decimal.Decimal {
	t := a.Foundation.StarterEFAllocated.
		Add(a.Foundation.MatchAllocated).
		Add(a.Foundation.FullEFAllocated)
	for _, b := range a.Boxes {
		t = t.Add(b.Allocated)
	}
	return t
}

// WaterfallAllocator distributes a month's free cash across the foundation
// goals (fixed order) and the flexible boxes (user order). The box order is
// resolved once at construction; a malformed stored order falls back to the
// documented default.
type WaterfallAllocator struct {
	boxes []flexibleBox
}

// NewWaterfallAllocator builds an allocator from the user's settings.
func NewWaterfallAllocator(settings domain.FireSettings) *WaterfallAllocator {
	return &WaterfallAllocator{boxes: buildBoxes(settings.BoxOrder, settings.Allocations)}
}

// BoxOrder returns the resolved flexible box order.
func (w *WaterfallAllocator) BoxOrder() []string {
	keys := make([]string, len(w.boxes))
	for i, b := range w.boxes {
		keys[i] = b.Key()
	}
	return keys
}

// Run performs one month's allocation. availableCash is the month's base cash
// flow plus any freed cash flow; a negative value is the shortfall condition
// and nothing proceeds. Boxes reached after cash is exhausted receive zero but
// still report their own completion state.
func (w *WaterfallAllocator) Run(s *WaterfallState, availableCash decimal.Decimal) MonthAllocation {
	alloc := MonthAllocation{}
	if availableCash.IsNegative() {
		alloc.Foundation.Shortfall = true
		alloc.Foundation.StarterEFComplete = s.Buckets.Savings.GreaterThanOrEqual(starterEFTarget)
		alloc.Foundation.MatchCaptured = w.matchCaptured(s)
		alloc.Foundation.FullEFComplete = s.Buckets.Savings.GreaterThanOrEqual(w.fullEFTarget(s))
		alloc.Boxes = w.idleBoxStatuses(s)
		return alloc
	}

	cash := availableCash

	// Starter emergency fund: top up savings toward the fixed target.
	starterNeed := money.NonNegative(starterEFTarget.Sub(s.Buckets.Savings))
	starter := money.Min(starterNeed, cash)
	s.Buckets.Savings = s.Buckets.Savings.Add(starter)
	cash = cash.Sub(starter)
	alloc.Foundation.StarterEFAllocated = starter
	alloc.Foundation.StarterEFComplete = s.Buckets.Savings.GreaterThanOrEqual(starterEFTarget)

	// Employer match: when enabled and not already captured through payroll,
	// steer the match amount into Retirement before anything flexible runs.
	if s.Settings.HasEmployerMatch && !s.Settings.IsGettingMatch {
		matchAmount := s.MonthlyGross.Mul(money.ClampRatePercent(s.Settings.EmployerMatchPercent)).
			Div(decimal.NewFromInt(100))
		match := money.Min(matchAmount, cash)
		s.Buckets.Retirement = s.Buckets.Retirement.Add(match)
		cash = cash.Sub(match)
		alloc.Foundation.MatchAllocated = match
	}
	alloc.Foundation.MatchCaptured = w.matchCaptured(s)

	// Full emergency fund: inflated expenses x configured months, on top of
	// the starter amount.
	fullTarget := w.fullEFTarget(s)
	fullNeed := money.NonNegative(fullTarget.Sub(s.Buckets.Savings))
	full := money.Min(fullNeed, cash)
	s.Buckets.Savings = s.Buckets.Savings.Add(full)
	cash = cash.Sub(full)
	alloc.Foundation.FullEFAllocated = full
	alloc.Foundation.FullEFComplete = s.Buckets.Savings.GreaterThanOrEqual(fullTarget)

	// Flexible section, user order, short-circuiting once cash is exhausted.
	for _, box := range w.boxes {
		st := domain.BoxStatus{Key: box.Key()}
		if cash.GreaterThan(decimal.Zero) {
			used := box.Allocate(s, cash)
			cash = cash.Sub(used)
			st.Allocated = used
		}
		st.Complete = box.Need(s).IsZero()
		alloc.Boxes = append(alloc.Boxes, st)
	}
	return alloc
}

func (w *WaterfallAllocator) matchCaptured(s *WaterfallState) bool {
	if !s.Settings.HasEmployerMatch {
		return true
	}
	return s.Settings.IsGettingMatch
}

func (w *WaterfallAllocator) fullEFTarget(s *WaterfallState) decimal.Decimal {
	months := s.Settings.EmergencyFundMonths
	if months < 0 {
		months = 0
	}
	return s.InflatedExpense.Mul(decimal.NewFromInt(int64(months))).Add(starterEFTarget)
}

func (w *WaterfallAllocator) idleBoxStatuses(s *WaterfallState) []domain.BoxStatus {
	statuses := make([]domain.BoxStatus, 0, len(w.boxes))
	for _, box := range w.boxes {
		statuses = append(statuses, domain.BoxStatus{
			Key:      box.Key(),
			Complete: box.Need(s).IsZero(),
		})
	}
	return statuses
}
