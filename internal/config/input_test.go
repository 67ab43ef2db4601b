package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/fireplan/fireplan/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMinimalPlan(t *testing.T) {
	yaml := `
general:
  age: 30
  targetRetirement: 45
  annualIncome: 72000
  monthlyTakeHome: 6000
  monthlyExpense: 4000
investments:
  savings: 2500
debts:
  - category: creditCard
    label: Visa
    balance: 4200
    interestRate: 22.9
    termMonths: 36
fireSettings:
  emergencyFundMonths: 6
`
	plan, err := NewInputParser().Parse([]byte(yaml))
	require.NoError(t, err)

	assert.Equal(t, 30, plan.General.Age)
	assert.Equal(t, 45, plan.General.TargetRetirement)
	assert.True(t, plan.Investments.Savings.Equal(decimal.NewFromInt(2500)))
	require.Len(t, plan.Debts, 1)
	assert.Equal(t, "Visa", plan.Debts[0].Label)
	assert.True(t, plan.Debts[0].InterestRate.Equal(decimal.NewFromFloat(22.9)))
	assert.Equal(t, 6, plan.FireSettings.EmergencyFundMonths)
}

func TestParseRejectsBadYAML(t *testing.T) {
	_, err := NewInputParser().Parse([]byte("general: [not a map"))
	assert.Error(t, err)
}

func TestValidatePlan(t *testing.T) {
	parser := NewInputParser()

	tests := []struct {
		name    string
		mutate  func(*domain.Plan)
		wantErr bool
	}{
		{"example plan is valid", func(p *domain.Plan) {}, false},
		{"negative age", func(p *domain.Plan) { p.General.Age = -1 }, true},
		{"age beyond range", func(p *domain.Plan) { p.General.Age = 130 }, true},
		{"target beyond range", func(p *domain.Plan) { p.General.TargetRetirement = 200 }, true},
		{"target before current age is allowed", func(p *domain.Plan) { p.General.TargetRetirement = 20 }, false},
		{"missing debt label", func(p *domain.Plan) { p.Debts[0].Label = "" }, true},
		{"negative term", func(p *domain.Plan) { p.Debts[0].TermMonths = -1 }, true},
		{"inflation out of range", func(p *domain.Plan) {
			p.Assumptions.InflationRate = decimal.NewFromFloat(0.25)
		}, true},
		{"deflation within range", func(p *domain.Plan) {
			p.Assumptions.InflationRate = decimal.NewFromFloat(-0.05)
		}, false},
		{"unknown allocation key", func(p *domain.Plan) {
			cap := decimal.NewFromInt(100)
			p.FireSettings.Allocations["crypto"] = &cap
		}, true},
		{"malformed box order passes validation", func(p *domain.Plan) {
			p.FireSettings.BoxOrder = []string{"bogus"}
		}, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			plan := parser.CreateExamplePlan()
			tc.mutate(plan)
			err := parser.ValidatePlan(plan)
			if tc.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestExamplePlanRoundTrip(t *testing.T) {
	parser := NewInputParser()
	path := filepath.Join(t.TempDir(), "plan.yaml")

	require.NoError(t, parser.WriteExamplePlan(path))

	loaded, err := parser.LoadFromFile(path)
	require.NoError(t, err)

	want := parser.CreateExamplePlan()
	assert.Equal(t, want.General.Age, loaded.General.Age)
	assert.Equal(t, want.General.TargetRetirement, loaded.General.TargetRetirement)
	assert.True(t, loaded.Investments.FourOhOneK.Equal(want.Investments.FourOhOneK))
	require.Len(t, loaded.Debts, len(want.Debts))
	assert.Equal(t, domain.DefaultBoxOrder(), loaded.FireSettings.BoxOrder)
	require.Contains(t, loaded.FireSettings.Allocations, domain.BoxTaxableInvesting)
	assert.True(t, loaded.FireSettings.Allocations[domain.BoxTaxableInvesting].Equal(decimal.NewFromInt(1500)))
}

func TestLoadFromMissingFile(t *testing.T) {
	_, err := NewInputParser().LoadFromFile(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadServerConfigDefaults(t *testing.T) {
	os.Unsetenv("FIREPLAN_LISTEN_ADDR")
	os.Unsetenv("FIREPLAN_REDIS_ADDR")
	os.Unsetenv("FIREPLAN_SETTINGS_PATH")
	os.Unsetenv("FIREPLAN_ENV")

	cfg := LoadServerConfig()
	assert.Equal(t, ":8080", cfg.ListenAddr)
	assert.Empty(t, cfg.RedisAddr)
	assert.Equal(t, "fireplan.db", cfg.SettingsPath)
	assert.True(t, cfg.Pretty)
}

func TestLoadServerConfigFromEnv(t *testing.T) {
	t.Setenv("FIREPLAN_LISTEN_ADDR", ":9090")
	t.Setenv("FIREPLAN_REDIS_ADDR", "localhost:6379")
	t.Setenv("FIREPLAN_ENV", "production")

	cfg := LoadServerConfig()
	assert.Equal(t, ":9090", cfg.ListenAddr)
	assert.Equal(t, "localhost:6379", cfg.RedisAddr)
	assert.False(t, cfg.Pretty)
}
