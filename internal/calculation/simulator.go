package calculation

import (
	"github.com/fireplan/fireplan/internal/domain"
	"github.com/fireplan/fireplan/pkg/money"
	"github.com/fireplan/fireplan/pkg/timeline"
	"github.com/shopspring/decimal"
)

// defaultInflationRate is the annual inflation assumption applied when the
// plan does not supply one.
var defaultInflationRate = decimal.NewFromFloat(0.03)

var (
	twelve     = decimal.NewFromInt(12)
	fireFactor = decimal.NewFromInt(25) // the 4% rule
)

// simulator holds the working state of one projection run. It is built fresh
// from the plan for every run and discarded afterwards; two concurrent runs
// share nothing.
type simulator struct {
	plan   *domain.Plan
	months int

	inflation decimal.Decimal
	growth    *GrowthModel
	allocator *WaterfallAllocator
	limits    *LimitTracker

	buckets domain.BucketBalances
	debts   []*DebtState

	// Sum of minimum payments for non-mortgage debts at simulation start.
	// The gap between this and the active sum is the freed cash flow.
	initialNonMortgageMin decimal.Decimal

	totalInterest decimal.Decimal
}

func newSimulator(plan *domain.Plan) *simulator {
	inv := plan.Investments
	s := &simulator{
		plan:      plan,
		months:    timeline.MonthsBetweenAges(plan.General.Age, plan.General.TargetRetirement),
		inflation: plan.Assumptions.InflationRate,
		buckets: domain.BucketBalances{
			Savings:    money.ClampBalance(inv.Savings),
			Taxable:    money.ClampBalance(inv.StocksBonds),
			Retirement: money.ClampBalance(inv.IRA.Add(inv.RothIRA).Add(inv.FourOhOneK)),
			RealEstate: money.ClampBalance(inv.RealEstate),
			Car:        money.ClampBalance(inv.CarValue),
			Other:      money.ClampBalance(inv.Other),
		},
	}
	if s.inflation.IsZero() {
		s.inflation = defaultInflationRate
	}
	s.growth = NewGrowthModel(plan.Assumptions.GrowthRates, inv.CarValue)
	s.allocator = NewWaterfallAllocator(plan.FireSettings)
	s.limits = NewLimitTracker(plan.Assumptions.Limits,
		plan.FireSettings.FourOhOneKContributionYTD,
		plan.FireSettings.IRAContributionYTD)

	s.debts = make([]*DebtState, 0, len(plan.Debts))
	for _, d := range plan.Debts {
		ds := NewDebtState(d)
		s.debts = append(s.debts, ds)
		if !ds.IsMortgage() {
			s.initialNonMortgageMin = s.initialNonMortgageMin.Add(ds.MinPayment)
		}
	}
	return s
}

// run executes the month-by-month state machine. Each iteration records the
// snapshot of the incoming state first, so month 0 mirrors the caller's input
// and month N is the terminal state with no further mutation.
func (s *simulator) run() *domain.ProjectionResult {
	result := &domain.ProjectionResult{}
	if s.months <= 0 {
		netWorth := s.snapshot(0, MonthAllocation{}).NetWorth
		result.Summary = s.summary(netWorth, netWorth)
		result.Summary.NotApplicable = true
		return result
	}

	var lastAlloc MonthAllocation
	result.Table = make([]domain.MonthlySnapshot, 0, s.months+1)

	for m := 0; ; m++ {
		if timeline.IsYearBoundary(m) {
			s.limits.ResetYear()
		}
		result.Table = append(result.Table, s.snapshot(m, lastAlloc))
		if m == s.months {
			break
		}

		inflFactor := money.AnnualFactor(s.inflation, timeline.YearIndex(m))

		s.growth.Apply(&s.buckets, m)
		s.amortize()

		freed := s.initialNonMortgageMin.Sub(s.activeNonMortgageMin())
		base := s.baseCashFlow(inflFactor)

		state := &WaterfallState{
			Buckets:         &s.buckets,
			Debts:           s.debts,
			Limits:          s.limits,
			Settings:        s.plan.FireSettings,
			Tax:             s.plan.TaxDestiny.Allocations,
			MonthlyGross:    s.plan.General.AnnualIncome.Div(twelve).Mul(inflFactor),
			InflatedExpense: s.plan.General.MonthlyExpense.Mul(inflFactor),
		}
		lastAlloc = s.allocator.Run(state, base.Add(freed))
	}

	first := result.Table[0]
	last := result.Table[len(result.Table)-1]
	result.Summary = s.summary(first.NetWorth, last.NetWorth)
	return result
}

// amortize applies each active debt's fixed minimum payment: interest accrues
// first, the remainder pays principal, clipped so the balance never goes
// negative.
func (s *simulator) amortize() {
	for _, d := range s.debts {
		if !d.Active() {
			continue
		}
		interest := InterestPortion(d.Balance, d.InterestRate)
		principal := PrincipalPortion(d.MinPayment, interest, d.Balance)
		d.Balance = money.NonNegative(d.Balance.Sub(principal))
		d.InterestPaid = d.InterestPaid.Add(interest)
		s.totalInterest = s.totalInterest.Add(interest)
		if d.RemainingTerm > 0 {
			d.RemainingTerm--
		}
	}
}

func (s *simulator) activeNonMortgageMin() decimal.Decimal {
	total := decimal.Zero
	for _, d := range s.debts {
		if d.Active() && !d.IsMortgage() {
			total = total.Add(d.MinPayment)
		}
	}
	return total
}

func (s *simulator) activeMortgageMin() decimal.Decimal {
	total := decimal.Zero
	for _, d := range s.debts {
		if d.Active() && d.IsMortgage() {
			total = total.Add(d.MinPayment)
		}
	}
	return total
}

// baseCashFlow is take-home minus expenses (both inflated from base values)
// minus the fixed non-mortgage obligation established at simulation start and
// the mortgage payment while it lasts. Freed cash flow is added back on top
// by the caller, so a paid-off debt raises the same month's available funds.
func (s *simulator) baseCashFlow(inflFactor decimal.Decimal) decimal.Decimal {
	net := s.plan.General.MonthlyTakeHome.Sub(s.plan.General.MonthlyExpense).Mul(inflFactor)
	return net.Sub(s.initialNonMortgageMin).Sub(s.activeMortgageMin())
}

func (s *simulator) snapshot(month int, alloc MonthAllocation) domain.MonthlySnapshot {
	debts := make([]domain.DebtBalance, 0, len(s.debts))
	owed := decimal.Zero
	for _, d := range s.debts {
		debts = append(debts, domain.DebtBalance{Label: d.Label, Balance: d.Balance})
		owed = owed.Add(d.Balance)
	}
	boxes := make([]domain.BoxStatus, len(alloc.Boxes))
	copy(boxes, alloc.Boxes)
	return domain.MonthlySnapshot{
		Month:      month,
		Age:        timeline.AgeAtMonth(s.plan.General.Age, month),
		NetWorth:   s.buckets.Total().Sub(owed),
		Buckets:    s.buckets,
		Debts:      debts,
		Foundation: alloc.Foundation,
		Boxes:      boxes,
	}
}

func (s *simulator) summary(starting, ending decimal.Decimal) domain.ProjectionSummary {
	target := s.plan.General.MonthlyExpense.Mul(twelve).Mul(fireFactor)
	return domain.ProjectionSummary{
		MonthsSimulated:   s.months,
		StartingNetWorth:  starting,
		EndingNetWorth:    ending,
		FireTarget:        target,
		Shortfall:         money.NonNegative(target.Sub(ending)),
		OnTrack:           ending.GreaterThanOrEqual(target),
		TotalInterestPaid: s.totalInterest,
	}
}
