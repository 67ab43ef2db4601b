package integration

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fireplan/fireplan/internal/calculation"
	"github.com/fireplan/fireplan/internal/config"
	"github.com/fireplan/fireplan/internal/domain"
	"github.com/fireplan/fireplan/internal/output"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadFullPlan(t *testing.T) *domain.Plan {
	t.Helper()
	plan, err := config.NewInputParser().LoadFromFile(filepath.Join("..", "testdata", "full_plan.yaml"))
	require.NoError(t, err)
	return plan
}

// Full pipeline: YAML in, 16-year projection out, rendered by every formatter.
func TestFullProjectionPipeline(t *testing.T) {
	plan := loadFullPlan(t)
	engine := calculation.NewEngine()

	result, err := engine.RunProjection(context.Background(), plan)
	require.NoError(t, err)

	require.Equal(t, 192, result.Summary.MonthsSimulated)
	require.Len(t, result.Table, 193)

	first := result.Table[0]
	assert.True(t, first.Buckets.Retirement.Equal(decimal.NewFromInt(94000)), "IRA+Roth+401k folded, got %s", first.Buckets.Retirement)
	assert.Equal(t, 0, first.Month)

	last := result.Table[len(result.Table)-1]
	assert.True(t, last.NetWorth.GreaterThan(first.NetWorth),
		"sixteen years of surplus should raise net worth: %s -> %s", first.NetWorth, last.NetWorth)

	for _, name := range []string{"console", "csv", "json"} {
		data, err := output.Render(result, name)
		require.NoError(t, err, "format %s", name)
		assert.NotEmpty(t, data)
	}
}

// The credit card sits in the high-interest band, so it retires long before
// its 36-month term and its minimum payment becomes freed cash flow.
func TestHighInterestDebtRetiresEarly(t *testing.T) {
	plan := loadFullPlan(t)

	result, err := calculation.NewEngine().RunProjection(context.Background(), plan)
	require.NoError(t, err)

	visaGone := -1
	for _, snap := range result.Table {
		for _, d := range snap.Debts {
			if d.Label == "Visa" && d.Balance.IsZero() {
				visaGone = snap.Month
			}
		}
		if visaGone >= 0 {
			break
		}
	}
	require.GreaterOrEqual(t, visaGone, 0, "card never paid off")
	assert.Less(t, visaGone, 36, "waterfall paydown beats plain amortization")
}

func TestProjectionMatchesCSVExport(t *testing.T) {
	plan := loadFullPlan(t)
	result, err := calculation.NewEngine().RunProjection(context.Background(), plan)
	require.NoError(t, err)

	data, err := output.Render(result, "csv")
	require.NoError(t, err)
	records, err := csv.NewReader(strings.NewReader(string(data))).ReadAll()
	require.NoError(t, err)

	require.Len(t, records, len(result.Table)+1)
	assert.Equal(t, "debt_Visa", records[0][9])
	assert.Equal(t, "debt_Car loan", records[0][10])
	assert.Equal(t, "debt_Mortgage", records[0][11])
}

func TestPayoffPipeline(t *testing.T) {
	plan := loadFullPlan(t)
	engine := calculation.NewEngine()

	cmp, err := engine.ComparePayoff(context.Background(), plan.Debts, decimal.NewFromInt(400))
	require.NoError(t, err)

	assert.False(t, cmp.SingleDebt)
	assert.False(t, cmp.Avalanche.ReachedMaxMonths)
	assert.False(t, cmp.Avalanche.TotalInterestPaid.GreaterThan(cmp.Snowball.TotalInterestPaid))
	assert.Equal(t, domain.MethodAvalanche, cmp.Recommended, "a 23.4%% card forces the avalanche recommendation")

	data, err := output.FormatPayoffJSON(cmp)
	require.NoError(t, err)
	var decoded domain.PayoffComparison
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, cmp.Recommended, decoded.Recommended)
}

// Two engines running the same plan concurrently must not interfere.
func TestConcurrentRunsShareNothing(t *testing.T) {
	plan := loadFullPlan(t)
	engine := calculation.NewEngine()

	type outcome struct {
		data []byte
		err  error
	}
	results := make(chan outcome, 4)
	for i := 0; i < 4; i++ {
		go func() {
			r, err := engine.RunProjection(context.Background(), plan)
			if err != nil {
				results <- outcome{err: err}
				return
			}
			data, err := json.Marshal(r)
			results <- outcome{data: data, err: err}
		}()
	}

	var first []byte
	for i := 0; i < 4; i++ {
		o := <-results
		require.NoError(t, o.err)
		if first == nil {
			first = o.data
			continue
		}
		assert.Equal(t, first, o.data)
	}
}
