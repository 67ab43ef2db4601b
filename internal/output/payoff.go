package output

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/fireplan/fireplan/internal/domain"
)

// FormatPayoffConsole renders a strategy comparison for terminal use.
func FormatPayoffConsole(cmp *domain.PayoffComparison) []byte {
	buf := &bytes.Buffer{}
	fmt.Fprintln(buf, "DEBT PAYOFF COMPARISON")
	fmt.Fprintln(buf, "======================")
	if cmp.SingleDebt {
		fmt.Fprintln(buf, "Single active debt: both strategies are identical.")
	}
	writePayoffSide(buf, "Avalanche (highest rate first)", cmp.Avalanche)
	writePayoffSide(buf, "Snowball (smallest balance first)", cmp.Snowball)
	fmt.Fprintf(buf, "Interest saved by avalanche: $%s\n", cmp.InterestSaved.StringFixed(2))
	fmt.Fprintf(buf, "Months saved by avalanche:   %d\n", cmp.MonthsSaved)
	fmt.Fprintf(buf, "Recommended strategy:        %s\n", cmp.Recommended)
	return buf.Bytes()
}

func writePayoffSide(buf *bytes.Buffer, title string, r domain.PayoffSimulationResult) {
	fmt.Fprintf(buf, "\n%s\n", title)
	fmt.Fprintf(buf, "  Months to payoff:    %d\n", r.MonthsToPayoff)
	fmt.Fprintf(buf, "  Total interest paid: $%s\n", r.TotalInterestPaid.StringFixed(2))
	if r.ReachedMaxMonths {
		fmt.Fprintln(buf, "  WARNING: hit the 600-month cap; payments do not retire these debts.")
	}
	for _, m := range r.PaidOffMilestones {
		fmt.Fprintf(buf, "  %s paid off in month %d\n", m.Label, m.Month)
	}
	fmt.Fprintln(buf)
}

// FormatPayoffCSV writes both timelines as CSV: method, month, total_balance,
// interest_accrued, total_paid.
func FormatPayoffCSV(cmp *domain.PayoffComparison) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	if err := w.Write([]string{"method", "month", "total_balance", "interest_accrued", "total_paid"}); err != nil {
		return nil, err
	}
	for _, side := range []domain.PayoffSimulationResult{cmp.Avalanche, cmp.Snowball} {
		for _, m := range side.Timeline {
			record := []string{
				side.Method,
				strconv.Itoa(m.Month),
				m.TotalBalance.StringFixed(2),
				m.InterestAccrued.StringFixed(2),
				m.TotalPaid.StringFixed(2),
			}
			if err := w.Write(record); err != nil {
				return nil, err
			}
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// FormatPayoffJSON emits the comparison as indented JSON.
func FormatPayoffJSON(cmp *domain.PayoffComparison) ([]byte, error) {
	return json.MarshalIndent(cmp, "", "  ")
}
