package domain

import (
	"github.com/shopspring/decimal"
)

// BucketBalances are the six asset buckets tracked month over month.
// Retirement and Taxable are kept separate so downstream consumers can
// distinguish pre-59½-accessible funds.
type BucketBalances struct {
	Savings    decimal.Decimal `json:"savings"`
	Taxable    decimal.Decimal `json:"taxable"`
	Retirement decimal.Decimal `json:"retirement"`
	RealEstate decimal.Decimal `json:"realEstate"`
	Car        decimal.Decimal `json:"car"`
	Other      decimal.Decimal `json:"other"`
}

// Total returns the sum of all bucket balances.
func (b BucketBalances) Total() decimal.Decimal {
	return b.Savings.Add(b.Taxable).Add(b.Retirement).
		Add(b.RealEstate).Add(b.Car).Add(b.Other)
}

// DebtBalance is a single debt's balance at a point in time.
type DebtBalance struct {
	Label   string          `json:"label"`
	Balance decimal.Decimal `json:"balance"`
}

// FoundationStatus records the fixed-priority safety-net goals for a month.
// Shortfall is set when the month's available cash was negative, in which case
// nothing was allocated.
type FoundationStatus struct {
	Shortfall          bool            `json:"shortfall"`
	StarterEFComplete  bool            `json:"starterEfComplete"`
	MatchCaptured      bool            `json:"matchCaptured"`
	FullEFComplete     bool            `json:"fullEfComplete"`
	StarterEFAllocated decimal.Decimal `json:"starterEfAllocated"`
	MatchAllocated     decimal.Decimal `json:"matchAllocated"`
	FullEFAllocated    decimal.Decimal `json:"fullEfAllocated"`
}

// BoxStatus records one flexible box's outcome for a month, in waterfall order.
type BoxStatus struct {
	Key       string          `json:"key"`
	Allocated decimal.Decimal `json:"allocated"`
	Complete  bool            `json:"complete"`
}

// MonthlySnapshot is one immutable row of the projection table. Balances are
// the state at the start of the month, before that month's growth,
// amortization and allocations run; Foundation and Boxes describe the
// allocations of the preceding month (zero for month 0). Month 0 therefore
// reflects the caller's input exactly.
type MonthlySnapshot struct {
	Month      int              `json:"month"`
	Age        decimal.Decimal  `json:"age"`
	NetWorth   decimal.Decimal  `json:"netWorth"`
	Buckets    BucketBalances   `json:"buckets"`
	Debts      []DebtBalance    `json:"debts"`
	Foundation FoundationStatus `json:"foundation"`
	Boxes      []BoxStatus      `json:"boxes"`
}

// ProjectionSummary is the scalar digest of a projection run.
type ProjectionSummary struct {
	NotApplicable     bool            `json:"notApplicable"`
	MonthsSimulated   int             `json:"monthsSimulated"`
	StartingNetWorth  decimal.Decimal `json:"startingNetWorth"`
	EndingNetWorth    decimal.Decimal `json:"endingNetWorth"`
	FireTarget        decimal.Decimal `json:"fireTarget"` // annual expenses x 25
	Shortfall         decimal.Decimal `json:"shortfall"`
	OnTrack           bool            `json:"onTrack"`
	TotalInterestPaid decimal.Decimal `json:"totalInterestPaid"`
}

// ProjectionResult is the simulator's sole output artifact: the ordered,
// append-only monthly table plus the summary.
type ProjectionResult struct {
	Table   []MonthlySnapshot `json:"table"`
	Summary ProjectionSummary `json:"summary"`
}
