package domain

import (
	"github.com/shopspring/decimal"
)

// Flexible box keys. The waterfall iterates these in the user's stored order;
// the set itself is fixed.
const (
	BoxHighInterestDebt = "highInterestDebt"
	BoxHSAIRA           = "hsaIra"
	BoxModerateDebt     = "moderateDebt"
	BoxMax401k          = "max401k"
	BoxTaxableInvesting = "taxableInvesting"
)

// DebtCategoryMortgage marks the debt amortized against the real-estate bucket.
// Mortgage balances are excluded from freed-cash-flow accounting and from the
// high-interest/moderate paydown bands.
const DebtCategoryMortgage = "mortgage"

// General holds the household's timeline and income/expense baseline.
type General struct {
	Age              int             `yaml:"age" json:"age"`
	TargetRetirement int             `yaml:"targetRetirement" json:"targetRetirement"`
	AnnualIncome     decimal.Decimal `yaml:"annualIncome" json:"annualIncome"`
	MonthlyTakeHome  decimal.Decimal `yaml:"monthlyTakeHome" json:"monthlyTakeHome"`
	MonthlyExpense   decimal.Decimal `yaml:"monthlyExpense" json:"monthlyExpense"`
}

// Investments is the caller-supplied starting balance for each asset bucket.
// IRA, Roth IRA and 401(k) are folded into the single locked Retirement bucket
// at simulation start; they are listed separately here because the input
// contract distinguishes them.
type Investments struct {
	Savings     decimal.Decimal `yaml:"savings" json:"savings"`
	StocksBonds decimal.Decimal `yaml:"stocksBonds" json:"stocksBonds"`
	RealEstate  decimal.Decimal `yaml:"realEstate" json:"realEstate"`
	CarValue    decimal.Decimal `yaml:"carValue" json:"carValue"`
	IRA         decimal.Decimal `yaml:"ira" json:"ira"`
	RothIRA     decimal.Decimal `yaml:"rothIra" json:"rothIra"`
	FourOhOneK  decimal.Decimal `yaml:"fourOhOneK" json:"fourOhOneK"`
	Other       decimal.Decimal `yaml:"other" json:"other"`
}

// Debt is a single liability. MinPayment is derived once from the original
// balance/rate/term at simulation start and held fixed; it is not part of the
// input contract.
type Debt struct {
	Category     string          `yaml:"category" json:"category"`
	Label        string          `yaml:"label" json:"label"`
	Balance      decimal.Decimal `yaml:"balance" json:"balance"`
	InterestRate decimal.Decimal `yaml:"interestRate" json:"interestRate"` // annual %
	TermMonths   int             `yaml:"termMonths" json:"termMonths"`
}

// IsMortgage reports whether the debt belongs to the mortgage category.
func (d Debt) IsMortgage() bool { return d.Category == DebtCategoryMortgage }

// FireSettings carries the user's waterfall configuration.
type FireSettings struct {
	HasEmployerMatch     bool            `yaml:"hasEmployerMatch" json:"hasEmployerMatch"`
	EmployerMatchPercent decimal.Decimal `yaml:"employerMatchPercent" json:"employerMatchPercent"` // % of gross
	IsGettingMatch       bool            `yaml:"isGettingMatch" json:"isGettingMatch"`
	EmergencyFundMonths  int             `yaml:"emergencyFundMonths" json:"emergencyFundMonths"`
	HasHSA               bool            `yaml:"hasHSA" json:"hasHSA"`
	IsContributingToHSA  bool            `yaml:"isContributingToHSA" json:"isContributingToHSA"`

	// Allocations maps flexible box key -> optional fixed monthly cap.
	// A nil cap means "consume all remaining cash flow this month".
	Allocations map[string]*decimal.Decimal `yaml:"allocations" json:"allocations"`

	// BoxOrder is the persisted flexible-box priority order. Anything that is
	// not a permutation of the five known keys falls back to DefaultBoxOrder.
	BoxOrder []string `yaml:"boxOrder" json:"boxOrder"`

	IRAContributionYTD        decimal.Decimal `yaml:"iraContributionYTD" json:"iraContributionYTD"`
	FourOhOneKContributionYTD decimal.Decimal `yaml:"fourOhOneKContributionYTD" json:"fourOhOneKContributionYTD"`
}

// TaxAllocations are the monthly dollar amounts the external tax engine
// recommends steering into each tax-advantaged vehicle. This core never
// computes them; it only caps and routes them.
type TaxAllocations struct {
	HSA            decimal.Decimal `yaml:"hsa" json:"hsa"`
	TraditionalIRA decimal.Decimal `yaml:"traditionalIra" json:"traditionalIra"`
	RothIRA        decimal.Decimal `yaml:"rothIra" json:"rothIra"`
	FourOhOneK     decimal.Decimal `yaml:"fourOhOneK" json:"fourOhOneK"`
}

// TaxDestiny is the tax-engine-owned slice of the input contract.
type TaxDestiny struct {
	Allocations TaxAllocations `yaml:"allocations" json:"allocations"`
}

// ContributionLimits are the annual regulatory limits tracked by the
// year-to-date tracker. Traditional and Roth IRA share the combined IRA limit.
type ContributionLimits struct {
	FourOhOneK decimal.Decimal `yaml:"fourOhOneK" json:"fourOhOneK"`
	IRA        decimal.Decimal `yaml:"ira" json:"ira"`
	HSA        decimal.Decimal `yaml:"hsa" json:"hsa"`
}

// GrowthRates are annual growth (or depreciation) assumptions per bucket,
// expressed as fractions (0.07 = 7%). The car does not appear here; its
// depreciation is straight-line and fixed.
type GrowthRates struct {
	Savings    decimal.Decimal `yaml:"savings" json:"savings"`
	Taxable    decimal.Decimal `yaml:"taxable" json:"taxable"`
	Retirement decimal.Decimal `yaml:"retirement" json:"retirement"`
	RealEstate decimal.Decimal `yaml:"realEstate" json:"realEstate"`
	Other      decimal.Decimal `yaml:"other" json:"other"`
}

// Assumptions collects the global simulation assumptions.
type Assumptions struct {
	InflationRate decimal.Decimal    `yaml:"inflationRate" json:"inflationRate"` // fraction, default 0.03
	GrowthRates   GrowthRates        `yaml:"growthRates" json:"growthRates"`
	Limits        ContributionLimits `yaml:"limits" json:"limits"`
}

// Plan is the complete financial snapshot plus settings supplied by the
// presentation layer. A Plan is read-only to the simulator; every run builds
// its own working state from it.
type Plan struct {
	General      General      `yaml:"general" json:"general"`
	Investments  Investments  `yaml:"investments" json:"investments"`
	Debts        []Debt       `yaml:"debts" json:"debts"`
	FireSettings FireSettings `yaml:"fireSettings" json:"fireSettings"`
	TaxDestiny   TaxDestiny   `yaml:"taxDestiny" json:"taxDestiny"`
	Assumptions  Assumptions  `yaml:"assumptions" json:"assumptions"`
}

// DefaultBoxOrder returns the documented fallback priority order used whenever
// the stored order is missing or malformed.
func DefaultBoxOrder() []string {
	return []string{
		BoxHighInterestDebt,
		BoxHSAIRA,
		BoxModerateDebt,
		BoxMax401k,
		BoxTaxableInvesting,
	}
}

// ValidBoxOrder reports whether keys is a permutation of exactly the five
// flexible box keys.
func ValidBoxOrder(keys []string) bool {
	if len(keys) != 5 {
		return false
	}
	seen := make(map[string]bool, 5)
	known := map[string]bool{
		BoxHighInterestDebt: true,
		BoxHSAIRA:           true,
		BoxModerateDebt:     true,
		BoxMax401k:          true,
		BoxTaxableInvesting: true,
	}
	for _, k := range keys {
		if !known[k] || seen[k] {
			return false
		}
		seen[k] = true
	}
	return true
}

// NormalizeBoxOrder returns keys unchanged when valid, the default order
// otherwise. Malformed persisted settings never fail a simulation.
func NormalizeBoxOrder(keys []string) []string {
	if ValidBoxOrder(keys) {
		out := make([]string, len(keys))
		copy(out, keys)
		return out
	}
	return DefaultBoxOrder()
}
