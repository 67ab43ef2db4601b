package output

import (
	"bytes"
	"encoding/csv"
	"strconv"

	"github.com/fireplan/fireplan/internal/domain"
)

// CSVExporter writes one row per simulated month. The column order is part of
// the export contract consumed by the presentation layer and must stay
// stable: month, age, net_worth, the six buckets, then one column per debt in
// the caller's input order.
type CSVExporter struct{}

func (CSVExporter) Name() string { return "csv" }
func (CSVExporter) Ext() string  { return "csv" }

func (CSVExporter) Format(result *domain.ProjectionResult) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)

	header := []string{"month", "age", "net_worth", "savings", "taxable", "retirement", "real_estate", "car", "other"}
	if len(result.Table) > 0 {
		for _, d := range result.Table[0].Debts {
			header = append(header, "debt_"+d.Label)
		}
	}
	if err := w.Write(header); err != nil {
		return nil, err
	}

	for _, row := range result.Table {
		record := []string{
			strconv.Itoa(row.Month),
			row.Age.StringFixed(2),
			row.NetWorth.StringFixed(2),
			row.Buckets.Savings.StringFixed(2),
			row.Buckets.Taxable.StringFixed(2),
			row.Buckets.Retirement.StringFixed(2),
			row.Buckets.RealEstate.StringFixed(2),
			row.Buckets.Car.StringFixed(2),
			row.Buckets.Other.StringFixed(2),
		}
		for _, d := range row.Debts {
			record = append(record, d.Balance.StringFixed(2))
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
