package config

import (
	"fmt"
	"os"

	"github.com/fireplan/fireplan/internal/domain"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// InputParser handles parsing of plan input files.
type InputParser struct{}

// NewInputParser creates a new input parser.
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile loads a plan from a YAML file. Missing numeric fields default
// to zero; only structurally invalid input fails.
func (ip *InputParser) LoadFromFile(filename string) (*domain.Plan, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return ip.Parse(data)
}

// Parse unmarshals and validates a YAML plan.
func (ip *InputParser) Parse(data []byte) (*domain.Plan, error) {
	var plan domain.Plan
	if err := yaml.Unmarshal(data, &plan); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	if err := ip.ValidatePlan(&plan); err != nil {
		return nil, fmt.Errorf("plan validation failed: %w", err)
	}
	return &plan, nil
}

// ValidatePlan rejects only call shapes the simulators cannot recover from
// locally. Out-of-range rates and balances are clamped downstream, a
// malformed box order falls back to the default, and a retirement age at or
// before the current age produces a "not applicable" result rather than an
// error here.
func (ip *InputParser) ValidatePlan(plan *domain.Plan) error {
	if plan.General.Age < 0 || plan.General.Age > 120 {
		return fmt.Errorf("age must be between 0 and 120, got %d", plan.General.Age)
	}
	if plan.General.TargetRetirement < 0 || plan.General.TargetRetirement > 120 {
		return fmt.Errorf("target retirement age must be between 0 and 120, got %d", plan.General.TargetRetirement)
	}
	for i, d := range plan.Debts {
		if d.Label == "" {
			return fmt.Errorf("debt %d: label is required", i)
		}
		if d.TermMonths < 0 {
			return fmt.Errorf("debt %q: term months cannot be negative", d.Label)
		}
	}
	infl := plan.Assumptions.InflationRate
	if infl.LessThan(decimal.NewFromFloat(-0.10)) || infl.GreaterThan(decimal.NewFromFloat(0.20)) {
		return fmt.Errorf("inflation rate must be between -10%% and 20%%")
	}
	for key := range plan.FireSettings.Allocations {
		if !knownBoxKey(key) {
			return fmt.Errorf("unknown flexible box key %q in allocations", key)
		}
	}
	return nil
}

func knownBoxKey(key string) bool {
	for _, k := range domain.DefaultBoxOrder() {
		if k == key {
			return true
		}
	}
	return false
}

// CreateExamplePlan returns a representative plan for documentation and
// first-run scaffolding.
func (ip *InputParser) CreateExamplePlan() *domain.Plan {
	taxableCap := decimal.NewFromInt(1500)
	return &domain.Plan{
		General: domain.General{
			Age:              32,
			TargetRetirement: 55,
			AnnualIncome:     decimal.NewFromInt(95000),
			MonthlyTakeHome:  decimal.NewFromInt(5800),
			MonthlyExpense:   decimal.NewFromInt(3900),
		},
		Investments: domain.Investments{
			Savings:     decimal.NewFromInt(4500),
			StocksBonds: decimal.NewFromInt(22000),
			RealEstate:  decimal.NewFromInt(310000),
			CarValue:    decimal.NewFromInt(18000),
			IRA:         decimal.NewFromInt(15000),
			RothIRA:     decimal.NewFromInt(9000),
			FourOhOneK:  decimal.NewFromInt(61000),
			Other:       decimal.Zero,
		},
		Debts: []domain.Debt{
			{
				Category:     "creditCard",
				Label:        "Visa",
				Balance:      decimal.NewFromInt(6200),
				InterestRate: decimal.NewFromFloat(22.9),
				TermMonths:   36,
			},
			{
				Category:     "auto",
				Label:        "Car loan",
				Balance:      decimal.NewFromInt(14500),
				InterestRate: decimal.NewFromFloat(6.4),
				TermMonths:   60,
			},
			{
				Category:     domain.DebtCategoryMortgage,
				Label:        "Mortgage",
				Balance:      decimal.NewFromInt(248000),
				InterestRate: decimal.NewFromFloat(4.1),
				TermMonths:   360,
			},
		},
		FireSettings: domain.FireSettings{
			HasEmployerMatch:     true,
			EmployerMatchPercent: decimal.NewFromInt(4),
			IsGettingMatch:       false,
			EmergencyFundMonths:  6,
			HasHSA:               true,
			IsContributingToHSA:  true,
			Allocations: map[string]*decimal.Decimal{
				domain.BoxTaxableInvesting: &taxableCap,
			},
			BoxOrder: domain.DefaultBoxOrder(),
		},
		TaxDestiny: domain.TaxDestiny{
			Allocations: domain.TaxAllocations{
				HSA:            decimal.NewFromInt(300),
				TraditionalIRA: decimal.NewFromInt(250),
				RothIRA:        decimal.NewFromInt(250),
				FourOhOneK:     decimal.NewFromInt(800),
			},
		},
		Assumptions: domain.Assumptions{
			InflationRate: decimal.NewFromFloat(0.03),
			GrowthRates: domain.GrowthRates{
				Savings:    decimal.NewFromFloat(0.005),
				Taxable:    decimal.NewFromFloat(0.07),
				Retirement: decimal.NewFromFloat(0.07),
				RealEstate: decimal.NewFromFloat(0.03),
				Other:      decimal.Zero,
			},
		},
	}
}

// WriteExamplePlan writes the example plan to a YAML file.
func (ip *InputParser) WriteExamplePlan(filename string) error {
	data, err := yaml.Marshal(ip.CreateExamplePlan())
	if err != nil {
		return fmt.Errorf("failed to marshal example plan: %w", err)
	}
	if err := os.WriteFile(filename, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", filename, err)
	}
	return nil
}
