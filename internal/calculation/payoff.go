package calculation

import (
	"sort"

	"github.com/fireplan/fireplan/internal/domain"
	"github.com/fireplan/fireplan/pkg/money"
	"github.com/shopspring/decimal"
)

// MaxPayoffMonths caps a payoff simulation at 50 years so minimum payments
// that cannot cover interest (negative amortization) terminate with
// ReachedMaxMonths instead of looping forever.
const MaxPayoffMonths = 600

var (
	// payoffTolerance is the residual balance treated as paid in full.
	payoffTolerance = decimal.NewFromFloat(0.01)

	// Recommendation thresholds: prefer avalanche when it saves more than
	// $1,000 of interest or any debt runs hotter than 15% APR.
	recommendInterestSavings = decimal.NewFromInt(1000)
	recommendRateCutoff      = decimal.NewFromInt(15)
)

// ComparePayoff runs the avalanche and snowball strategies over the supplied
// debts with the given extra monthly cash and compares them. Minimum payments
// are derived from each debt's original balance/rate/term and held fixed.
// With exactly one active debt the strategies are identical by definition, so
// the simulation runs once and both sides share the result.
func ComparePayoff(debts []domain.Debt, extraMonthlyCash decimal.Decimal) *domain.PayoffComparison {
	extraMonthlyCash = money.NonNegative(extraMonthlyCash)

	active := 0
	maxRate := decimal.Zero
	for _, d := range debts {
		if money.ClampBalance(d.Balance).GreaterThan(decimal.Zero) {
			active++
		}
		rate := money.ClampRatePercent(d.InterestRate)
		if rate.GreaterThan(maxRate) {
			maxRate = rate
		}
	}

	cmp := &domain.PayoffComparison{}
	if active <= 1 {
		shared := simulatePayoff(payoffDebts(debts, domain.MethodAvalanche), extraMonthlyCash, domain.MethodAvalanche)
		cmp.SingleDebt = true
		cmp.Avalanche = shared
		cmp.Snowball = shared
		cmp.Snowball.Method = domain.MethodSnowball
	} else {
		cmp.Avalanche = simulatePayoff(payoffDebts(debts, domain.MethodAvalanche), extraMonthlyCash, domain.MethodAvalanche)
		cmp.Snowball = simulatePayoff(payoffDebts(debts, domain.MethodSnowball), extraMonthlyCash, domain.MethodSnowball)
	}

	cmp.InterestSaved = money.NonNegative(cmp.Snowball.TotalInterestPaid.Sub(cmp.Avalanche.TotalInterestPaid))
	cmp.MonthsSaved = cmp.Snowball.MonthsToPayoff - cmp.Avalanche.MonthsToPayoff
	if cmp.InterestSaved.GreaterThan(recommendInterestSavings) || maxRate.GreaterThan(recommendRateCutoff) {
		cmp.Recommended = domain.MethodAvalanche
	} else {
		cmp.Recommended = domain.MethodSnowball
	}
	return cmp
}

// payoffDebts builds fresh per-run debt state sorted by strategy priority:
// avalanche pays the highest rate first, snowball the smallest balance first.
// The sort is stable so equal debts keep the caller's order.
func payoffDebts(debts []domain.Debt, method string) []*DebtState {
	states := make([]*DebtState, 0, len(debts))
	for _, d := range debts {
		states = append(states, NewDebtState(d))
	}
	if method == domain.MethodAvalanche {
		sort.SliceStable(states, func(i, j int) bool {
			return states[i].InterestRate.GreaterThan(states[j].InterestRate)
		})
	} else {
		sort.SliceStable(states, func(i, j int) bool {
			return states[i].Balance.LessThan(states[j].Balance)
		})
	}
	return states
}

// simulatePayoff drives one strategy to completion. Each month every active
// debt gets its fixed minimum payment (interest first, then principal,
// clipped to the remaining balance and remaining cash); all leftover cash
// goes to the single highest-priority debt still carrying a balance.
func simulatePayoff(debts []*DebtState, extraMonthlyCash decimal.Decimal, method string) domain.PayoffSimulationResult {
	result := domain.PayoffSimulationResult{Method: method}

	startedActive := make([]bool, len(debts))
	for i, d := range debts {
		startedActive[i] = d.Active()
	}

	// The monthly budget stays fixed: minimum payments freed by a payoff
	// remain in the pool as leftover cash for the priority debt.
	budget := extraMonthlyCash
	for _, d := range debts {
		budget = budget.Add(d.MinPayment)
	}

	month := 0
	for anyActive(debts) {
		if month >= MaxPayoffMonths {
			result.ReachedMaxMonths = true
			break
		}
		month++

		cash := budget
		interestAccrued := decimal.Zero
		paid := decimal.Zero

		for _, d := range debts {
			if !d.Active() {
				continue
			}
			interest := InterestPortion(d.Balance, d.InterestRate)
			interestAccrued = interestAccrued.Add(interest)

			payment := money.Min(d.MinPayment, d.Balance.Add(interest))
			payment = money.Min(payment, cash)
			principal := PrincipalPortion(payment, interest, d.Balance)
			d.Balance = money.NonNegative(d.Balance.Sub(principal))
			cash = cash.Sub(payment)
			paid = paid.Add(payment)
		}

		// Leftover cash attacks the highest-priority active debt only.
		if cash.GreaterThan(decimal.Zero) {
			for _, d := range debts {
				if !d.Active() {
					continue
				}
				extra := money.Min(cash, d.Balance)
				d.Balance = d.Balance.Sub(extra)
				paid = paid.Add(extra)
				break
			}
		}

		// Residuals within tolerance count as paid in full.
		for i, d := range debts {
			if d.Active() && d.Balance.LessThanOrEqual(payoffTolerance) {
				d.Balance = decimal.Zero
			}
			if startedActive[i] && !d.Active() && !milestoneRecorded(result.PaidOffMilestones, d.Label) {
				result.PaidOffMilestones = append(result.PaidOffMilestones, domain.PayoffMilestone{
					Label: d.Label,
					Month: month,
				})
			}
		}

		result.TotalInterestPaid = result.TotalInterestPaid.Add(interestAccrued)
		result.Timeline = append(result.Timeline, domain.PayoffMonth{
			Month:           month,
			TotalBalance:    totalBalance(debts),
			InterestAccrued: interestAccrued,
			TotalPaid:       paid,
		})
	}

	result.MonthsToPayoff = month
	return result
}

func anyActive(debts []*DebtState) bool {
	for _, d := range debts {
		if d.Active() {
			return true
		}
	}
	return false
}

func totalBalance(debts []*DebtState) decimal.Decimal {
	total := decimal.Zero
	for _, d := range debts {
		total = total.Add(d.Balance)
	}
	return total
}

func milestoneRecorded(milestones []domain.PayoffMilestone, label string) bool {
	for _, m := range milestones {
		if m.Label == label {
			return true
		}
	}
	return false
}
