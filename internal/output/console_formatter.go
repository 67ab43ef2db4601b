package output

import (
	"bytes"
	"fmt"

	"github.com/fireplan/fireplan/internal/domain"
)

// ConsoleFormatter renders the summary plus a yearly digest of the table for
// terminal use.
type ConsoleFormatter struct{}

func (ConsoleFormatter) Name() string { return "console" }
func (ConsoleFormatter) Ext() string  { return "txt" }

func (ConsoleFormatter) Format(result *domain.ProjectionResult) ([]byte, error) {
	buf := &bytes.Buffer{}
	s := result.Summary

	fmt.Fprintln(buf, "PROJECTION SUMMARY")
	fmt.Fprintln(buf, "==================")
	if s.NotApplicable {
		fmt.Fprintln(buf, "Not applicable: target retirement age is not after the current age.")
		return buf.Bytes(), nil
	}
	fmt.Fprintf(buf, "Months simulated:    %d\n", s.MonthsSimulated)
	fmt.Fprintf(buf, "Starting net worth:  $%s\n", s.StartingNetWorth.StringFixed(2))
	fmt.Fprintf(buf, "Ending net worth:    $%s\n", s.EndingNetWorth.StringFixed(2))
	fmt.Fprintf(buf, "FIRE target (25x):   $%s\n", s.FireTarget.StringFixed(2))
	fmt.Fprintf(buf, "Shortfall:           $%s\n", s.Shortfall.StringFixed(2))
	fmt.Fprintf(buf, "On track:            %t\n", s.OnTrack)
	fmt.Fprintf(buf, "Interest paid:       $%s\n", s.TotalInterestPaid.StringFixed(2))

	fmt.Fprintln(buf)
	fmt.Fprintln(buf, "YEAR-BY-YEAR NET WORTH")
	fmt.Fprintln(buf, "----------------------")
	for _, row := range result.Table {
		if row.Month%12 != 0 {
			continue
		}
		fmt.Fprintf(buf, "age %s  month %4d  net worth $%s\n",
			row.Age.StringFixed(1), row.Month, row.NetWorth.StringFixed(2))
	}
	return buf.Bytes(), nil
}
