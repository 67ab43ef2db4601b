package calculation

import (
	"context"
	"fmt"

	"github.com/fireplan/fireplan/internal/domain"
	"github.com/shopspring/decimal"
)

// Engine runs the projection simulator and the debt-payoff comparator. It is
// purely functional: every run builds its own working state from the input
// plan, so concurrent baseline and what-if runs share no counter, cache or
// accumulator.
type Engine struct {
	Logger Logger
}

// NewEngine creates an engine with a no-op logger.
func NewEngine() *Engine {
	return &Engine{Logger: NopLogger{}}
}

// SetLogger sets the engine's logger. A nil logger restores the no-op.
func (e *Engine) SetLogger(l Logger) {
	if l == nil {
		e.Logger = NopLogger{}
		return
	}
	e.Logger = l
}

// RunProjection steps the household's financial state forward one month at a
// time from the current age to the target retirement age and returns the
// snapshot table plus summary. A target at or before the current age yields a
// "not applicable" summary with no months simulated, not an error.
func (e *Engine) RunProjection(ctx context.Context, plan *domain.Plan) (*domain.ProjectionResult, error) {
	if plan == nil {
		return nil, fmt.Errorf("nil plan")
	}
	infl := plan.Assumptions.InflationRate
	if infl.LessThan(decimal.NewFromFloat(-0.10)) || infl.GreaterThan(decimal.NewFromFloat(0.20)) {
		return nil, fmt.Errorf("inflation rate must be between -10%% and 20%%, got %s",
			infl.Mul(decimal.NewFromInt(100)).StringFixed(2))
	}

	sim := newSimulator(plan)
	result := sim.run()

	if result.Summary.NotApplicable {
		e.Logger.Infof("projection not applicable: target retirement age %d <= current age %d",
			plan.General.TargetRetirement, plan.General.Age)
		return result, nil
	}
	e.Logger.Debugf("projection complete: %d months, net worth %s -> %s",
		result.Summary.MonthsSimulated,
		result.Summary.StartingNetWorth.StringFixed(2),
		result.Summary.EndingNetWorth.StringFixed(2))
	return result, nil
}

// ComparePayoff runs the avalanche and snowball strategies over the supplied
// debts and compares total interest and payoff time.
func (e *Engine) ComparePayoff(ctx context.Context, debts []domain.Debt, extraMonthlyCash decimal.Decimal) (*domain.PayoffComparison, error) {
	if len(debts) == 0 {
		return nil, fmt.Errorf("no debts provided")
	}
	cmp := ComparePayoff(debts, extraMonthlyCash)
	if cmp.Avalanche.ReachedMaxMonths || cmp.Snowball.ReachedMaxMonths {
		e.Logger.Warnf("payoff simulation hit the %d-month cap; minimum payments may not cover interest", MaxPayoffMonths)
	}
	e.Logger.Debugf("payoff comparison: avalanche %d months / %s interest, snowball %d months / %s interest",
		cmp.Avalanche.MonthsToPayoff, cmp.Avalanche.TotalInterestPaid.StringFixed(2),
		cmp.Snowball.MonthsToPayoff, cmp.Snowball.TotalInterestPaid.StringFixed(2))
	return cmp, nil
}
