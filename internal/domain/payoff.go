package domain

import (
	"github.com/shopspring/decimal"
)

// Payoff strategy identifiers.
const (
	MethodAvalanche = "avalanche"
	MethodSnowball  = "snowball"
)

// PayoffMonth is one row of a payoff simulation timeline.
type PayoffMonth struct {
	Month           int             `json:"month"`
	TotalBalance    decimal.Decimal `json:"totalBalance"`
	InterestAccrued decimal.Decimal `json:"interestAccrued"`
	TotalPaid       decimal.Decimal `json:"totalPaid"`
}

// PayoffMilestone records the first month a debt reached zero.
type PayoffMilestone struct {
	Label string `json:"label"`
	Month int    `json:"month"`
}

// PayoffSimulationResult is the outcome of running one extra-payment strategy
// to completion (or to the 600-month safety cap).
type PayoffSimulationResult struct {
	Method            string            `json:"method"`
	TotalInterestPaid decimal.Decimal   `json:"totalInterestPaid"`
	MonthsToPayoff    int               `json:"monthsToPayoff"`
	Timeline          []PayoffMonth     `json:"timeline"`
	PaidOffMilestones []PayoffMilestone `json:"paidOffMilestones"`
	ReachedMaxMonths  bool              `json:"reachedMaxMonths"`
}

// PayoffComparison holds both strategy results and the business-rule
// recommendation. With exactly one active debt the two sides are defined to be
// identical and SingleDebt is set.
type PayoffComparison struct {
	Avalanche     PayoffSimulationResult `json:"avalanche"`
	Snowball      PayoffSimulationResult `json:"snowball"`
	InterestSaved decimal.Decimal        `json:"interestSaved"` // snowball interest - avalanche interest, floored at 0
	MonthsSaved   int                    `json:"monthsSaved"`
	Recommended   string                 `json:"recommended"`
	SingleDebt    bool                   `json:"singleDebt"`
}
